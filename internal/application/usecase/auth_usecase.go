// internal/application/usecase/auth_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain/account"
)

// AuthDeps は AuthUsecase の依存一式。Mailer / Tracker / Logger は任意。
type AuthDeps struct {
	Identity account.IdentityProvider
	Profiles account.ProfileRepository
	Admin    account.AdminPolicy
	Session  *Session
	Mailer   WelcomeMailer
	Tracker  EventTracker
	Logger   logrus.FieldLogger
}

// AuthUsecase は登録/ログイン/ログアウトと現在ユーザーの監視をまとめます。
type AuthUsecase struct {
	identity account.IdentityProvider
	profiles account.ProfileRepository
	admin    account.AdminPolicy
	session  *Session
	mailer   WelcomeMailer
	tracker  EventTracker
	log      logrus.FieldLogger
}

func NewAuthUsecase(d AuthDeps) *AuthUsecase {
	s := d.Session
	if s == nil {
		s = NewSession()
	}
	return &AuthUsecase{
		identity: d.Identity,
		profiles: d.Profiles,
		admin:    d.Admin,
		session:  s,
		mailer:   d.Mailer,
		tracker:  d.Tracker,
		log:      loggerOrDiscard(d.Logger).WithField("component", "auth_usecase"),
	}
}

// Observe は現在ユーザーの変化を購読します（登録直後に現在値で 1 回呼ばれる）。
func (uc *AuthUsecase) Observe(cb func(*account.User)) func() {
	return uc.session.Observe(cb)
}

// CurrentUser はこのプロセスでサインイン中のユーザー。
func (uc *AuthUsecase) CurrentUser() *account.User {
	return uc.session.Current()
}

func (uc *AuthUsecase) IsAdmin(u *account.User) bool {
	return uc.admin.IsAdmin(u)
}

// Register は identity を作成（=サインイン）し、users/{uid} に
// {email, createdAt: serverTime} をマージします。
// identity / Firestore のエラーはそのまま返す。
func (uc *AuthUsecase) Register(ctx context.Context, email, password string) (*account.Credential, error) {
	if uc.identity == nil || uc.profiles == nil {
		return nil, errors.New("auth_usecase: not configured")
	}

	cred, err := uc.identity.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	uc.session.Set(&cred.User)

	if err := uc.profiles.MergeProfile(ctx, cred.User.UID, email); err != nil {
		return nil, err
	}

	track(uc.tracker, ctx, "sign_up", map[string]string{"method": "password"})

	if uc.mailer != nil && strings.TrimSpace(email) != "" {
		if err := uc.mailer.SendWelcome(ctx, email); err != nil {
			uc.log.WithError(err).WithField("uid", cred.User.UID).Warn("[auth] welcome mail failed")
		}
	}

	uc.log.WithField("uid", cred.User.UID).Info("[auth] registered")
	return cred, nil
}

func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (*account.Credential, error) {
	if uc.identity == nil {
		return nil, errors.New("auth_usecase: not configured")
	}

	cred, err := uc.identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	uc.session.Set(&cred.User)

	track(uc.tracker, ctx, "login", map[string]string{"method": "password"})
	return cred, nil
}

// Logout はこのプロセスのセッションだけを終了します。
// 他の端末の refresh token には触れない（全端末の失効は RevokeSessions）。
func (uc *AuthUsecase) Logout(ctx context.Context) error {
	if uc.session.Current() == nil {
		return nil
	}
	uc.session.Set(nil)
	track(uc.tracker, ctx, "logout", nil)
	return nil
}

// RevokeSessions は uid の全セッションをサーバー側で失効させます（HTTP 用）。
func (uc *AuthUsecase) RevokeSessions(ctx context.Context, uid string) error {
	if uc.identity == nil {
		return errors.New("auth_usecase: not configured")
	}
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return ErrAuthRequired
	}
	if err := uc.identity.SignOut(ctx, uid); err != nil {
		return err
	}
	track(uc.tracker, ctx, "logout", nil)
	return nil
}
