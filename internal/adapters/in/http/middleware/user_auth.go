// internal/adapters/in/http/middleware/user_auth.go
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	usecase "storefront/internal/application/usecase"
	"storefront/internal/domain/account"
)

// UserAuthMiddleware verifies the Firebase ID token and stores the user in context.
//
//   - Authorization ヘッダが無い: 匿名のまま通す（参照系は空、変更系は usecase が AUTH_REQUIRED）
//   - Bearer トークンが不正: 401
type UserAuthMiddleware struct {
	Verifier account.TokenVerifier
	Log      logrus.FieldLogger
}

func (m *UserAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}
		if m == nil || m.Verifier == nil {
			writeAuthError(w, http.StatusServiceUnavailable, "user auth middleware not initialized")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeAuthError(w, http.StatusUnauthorized, "unauthorized: missing bearer token")
			return
		}
		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			writeAuthError(w, http.StatusUnauthorized, "unauthorized: empty bearer token")
			return
		}

		u, err := m.Verifier.VerifyIDToken(r.Context(), idToken)
		if err != nil || !u.Authenticated() {
			if m.Log != nil {
				m.Log.WithError(err).Debug("[user_auth] invalid token")
			}
			writeAuthError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(usecase.WithUser(r.Context(), u)))
	})
}

// RequireUser は認証済みユーザーが無ければ 401 AUTH_REQUIRED を返す。
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if usecase.UserFromContext(r.Context()) == nil {
			writeAuthError(w, http.StatusUnauthorized, usecase.ErrAuthRequired.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeAuthError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
