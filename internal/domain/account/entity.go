// internal/domain/account/entity.go
package account

import (
	"errors"
	"strings"
)

// User は Identity サービスが返す認証済みユーザーの最小表現です。
// users/{uid} のミラードキュメントとは別物（こちらは認証結果）。
type User struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// Credential はサインアップ/サインイン結果。
// IDToken はクライアントが Authorization: Bearer に載せるトークン。
type Credential struct {
	User         User   `json:"user"`
	IDToken      string `json:"idToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

var (
	ErrEmailAlreadyInUse  = errors.New("account: email already in use")
	ErrInvalidCredentials = errors.New("account: invalid credentials")
	ErrInvalidToken       = errors.New("account: invalid id token")
	ErrInvalidEmail       = errors.New("account: invalid email")
	ErrWeakPassword       = errors.New("account: weak password")
)

// Authenticated は uid を持つユーザーかどうか。
func (u *User) Authenticated() bool {
	return u != nil && strings.TrimSpace(u.UID) != ""
}

// AdminPolicy は単一の管理者 UID と一致するかを判定します。
type AdminPolicy struct {
	AdminUID string
}

func NewAdminPolicy(adminUID string) AdminPolicy {
	return AdminPolicy{AdminUID: strings.TrimSpace(adminUID)}
}

// IsAdmin: user が nil、または AdminUID 未設定なら false。
func (p AdminPolicy) IsAdmin(u *User) bool {
	if u == nil || p.AdminUID == "" {
		return false
	}
	return u.UID == p.AdminUID
}
