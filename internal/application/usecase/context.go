// internal/application/usecase/context.go
package usecase

import (
	"context"

	"storefront/internal/domain/account"
)

// usecase 層で使う context key
type ctxKey string

const ctxKeyUser ctxKey = "currentUser"

// ミドルウェアなど外側から認証済みユーザーを注入するためのヘルパー
func WithUser(ctx context.Context, u *account.User) context.Context {
	if !u.Authenticated() {
		return ctx
	}
	cp := *u
	return context.WithValue(ctx, ctxKeyUser, &cp)
}

// UserFromContext は未認証なら nil を返す。
func UserFromContext(ctx context.Context) *account.User {
	u, ok := ctx.Value(ctxKeyUser).(*account.User)
	if !ok || u == nil {
		return nil
	}
	return u
}
