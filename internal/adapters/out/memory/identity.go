package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain/account"
)

// MinPasswordLength は Firebase Auth と同じ 6 文字。
const MinPasswordLength = 6

// Identity はローカル用のメール/パスワード認証です。
// パスワードは bcrypt ハッシュで保持し、ID トークンは不透明なランダム文字列。
type Identity struct {
	mu      sync.Mutex
	cost    int
	byEmail map[string]*identityUser
	tokens  map[string]string // idToken -> uid
}

type identityUser struct {
	uid   string
	email string
	hash  []byte
}

var (
	_ account.IdentityProvider = (*Identity)(nil)
	_ account.TokenVerifier    = (*Identity)(nil)
)

func NewIdentity() *Identity {
	return NewIdentityWithCost(bcrypt.DefaultCost)
}

// NewIdentityWithCost はテストで bcrypt.MinCost を使うためのもの。
func NewIdentityWithCost(cost int) *Identity {
	return &Identity{
		cost:    cost,
		byEmail: map[string]*identityUser{},
		tokens:  map[string]string{},
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}

// CreateUser は uid を指定してユーザーを作成します（ローカル管理者の投入用）。
func (m *Identity) CreateUser(ctx context.Context, uid, email, password string) error {
	_, err := m.create(strings.TrimSpace(uid), email, password)
	return err
}

func (m *Identity) SignUp(ctx context.Context, email, password string) (*account.Credential, error) {
	u, err := m.create(strings.ReplaceAll(uuid.NewString(), "-", ""), email, password)
	if err != nil {
		return nil, err
	}
	return m.issue(u), nil
}

func (m *Identity) create(uid, email, password string) (*identityUser, error) {
	key := normalizeEmail(email)
	if !validEmail(key) {
		return nil, account.ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return nil, account.ErrWeakPassword
	}
	if uid == "" {
		uid = strings.ReplaceAll(uuid.NewString(), "-", "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byEmail[key]; exists {
		return nil, account.ErrEmailAlreadyInUse
	}
	u := &identityUser{uid: uid, email: strings.TrimSpace(email), hash: hash}
	m.byEmail[key] = u
	return u, nil
}

func (m *Identity) SignIn(ctx context.Context, email, password string) (*account.Credential, error) {
	m.mu.Lock()
	u, ok := m.byEmail[normalizeEmail(email)]
	m.mu.Unlock()
	if !ok {
		return nil, account.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.hash, []byte(password)); err != nil {
		return nil, account.ErrInvalidCredentials
	}
	return m.issue(u), nil
}

// SignOut は uid に発行済みのトークンをすべて無効にする。
func (m *Identity) SignOut(ctx context.Context, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for tok, owner := range m.tokens {
		if owner == uid {
			delete(m.tokens, tok)
		}
	}
	return nil
}

func (m *Identity) VerifyIDToken(ctx context.Context, idToken string) (*account.User, error) {
	idToken = strings.TrimSpace(idToken)

	m.mu.Lock()
	defer m.mu.Unlock()
	uid, ok := m.tokens[idToken]
	if !ok || idToken == "" {
		return nil, account.ErrInvalidToken
	}
	for _, u := range m.byEmail {
		if u.uid == uid {
			return &account.User{UID: u.uid, Email: u.email}, nil
		}
	}
	return nil, account.ErrInvalidToken
}

func (m *Identity) issue(u *identityUser) *account.Credential {
	idToken := "local-" + uuid.NewString()
	refresh := "local-refresh-" + uuid.NewString()

	m.mu.Lock()
	m.tokens[idToken] = u.uid
	m.mu.Unlock()

	return &account.Credential{
		User:         account.User{UID: u.uid, Email: u.email},
		IDToken:      idToken,
		RefreshToken: refresh,
	}
}
