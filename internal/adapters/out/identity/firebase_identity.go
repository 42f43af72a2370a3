// internal/adapters/out/identity/firebase_identity.go
package identity

import (
	"context"
	"strings"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"

	"storefront/internal/domain/account"
)

// AdminAuth は Firebase Admin SDK のうち、ここで使う部分だけを切り出したもの。
// *firebaseauth.Client がそのまま満たす。
type AdminAuth interface {
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*firebaseauth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// FirebaseIdentity は Firebase Authentication を使った
// account.IdentityProvider / account.TokenVerifier の実装です。
//
//   - パスワード認証（signUp / signIn）は Identity Toolkit REST (API Key)
//   - ID トークン検証と失効は Admin SDK
type FirebaseIdentity struct {
	toolkit *identitytoolkit.Service
	admin   AdminAuth
	log     logrus.FieldLogger
}

var (
	_ account.IdentityProvider = (*FirebaseIdentity)(nil)
	_ account.TokenVerifier    = (*FirebaseIdentity)(nil)
)

func NewFirebaseIdentity(toolkit *identitytoolkit.Service, admin AdminAuth, log logrus.FieldLogger) *FirebaseIdentity {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &FirebaseIdentity{
		toolkit: toolkit,
		admin:   admin,
		log:     log.WithField("component", "firebase_identity"),
	}
}

func (f *FirebaseIdentity) SignUp(ctx context.Context, email, password string) (*account.Credential, error) {
	if f == nil || f.toolkit == nil {
		return nil, errors.New("firebase_identity: identity toolkit is not configured")
	}

	resp, err := f.toolkit.Relyingparty.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:    email,
		Password: password,
	}).Context(ctx).Do()
	if err != nil {
		return nil, mapToolkitError(err)
	}

	return &account.Credential{
		User:         account.User{UID: resp.LocalId, Email: firstNonEmpty(resp.Email, email)},
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

func (f *FirebaseIdentity) SignIn(ctx context.Context, email, password string) (*account.Credential, error) {
	if f == nil || f.toolkit == nil {
		return nil, errors.New("firebase_identity: identity toolkit is not configured")
	}

	resp, err := f.toolkit.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, mapToolkitError(err)
	}

	return &account.Credential{
		User:         account.User{UID: resp.LocalId, Email: firstNonEmpty(resp.Email, email)},
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// SignOut は uid の refresh token を失効させる（発行済み ID トークンも以後 revoked 扱い）。
func (f *FirebaseIdentity) SignOut(ctx context.Context, uid string) error {
	if f == nil || f.admin == nil {
		return errors.New("firebase_identity: admin auth is not configured")
	}
	if err := f.admin.RevokeRefreshTokens(ctx, uid); err != nil {
		return errors.Wrapf(err, "firebase_identity: revoke uid=%s", uid)
	}
	return nil
}

func (f *FirebaseIdentity) VerifyIDToken(ctx context.Context, idToken string) (*account.User, error) {
	if f == nil || f.admin == nil {
		return nil, errors.New("firebase_identity: admin auth is not configured")
	}
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return nil, account.ErrInvalidToken
	}

	tok, err := f.admin.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		f.log.WithError(err).Debug("[identity] id token rejected")
		return nil, errors.WithMessage(account.ErrInvalidToken, err.Error())
	}

	email, _ := tok.Claims["email"].(string)
	return &account.User{UID: tok.UID, Email: email}, nil
}

// mapToolkitError は Identity Toolkit のエラーコード（message 先頭）を domain エラーへ寄せる。
// 元のメッセージは WithMessage で残す。
func mapToolkitError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return errors.Wrap(err, "firebase_identity")
	}

	code := strings.TrimSpace(gerr.Message)
	if i := strings.IndexAny(code, " :"); i > 0 {
		code = code[:i]
	}

	switch code {
	case "EMAIL_EXISTS":
		return errors.WithMessage(account.ErrEmailAlreadyInUse, gerr.Message)
	case "INVALID_EMAIL", "MISSING_EMAIL":
		return errors.WithMessage(account.ErrInvalidEmail, gerr.Message)
	case "WEAK_PASSWORD", "MISSING_PASSWORD":
		return errors.WithMessage(account.ErrWeakPassword, gerr.Message)
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED":
		return errors.WithMessage(account.ErrInvalidCredentials, gerr.Message)
	default:
		return errors.Wrap(err, "firebase_identity")
	}
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
