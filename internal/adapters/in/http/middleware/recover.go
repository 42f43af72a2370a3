// internal/adapters/in/http/middleware/recover.go
package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

func Recover(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					// panic の真因をログに残す
					log.WithFields(logrus.Fields{
						"panic": rec,
						"path":  r.URL.Path,
						"stack": string(debug.Stack()),
					}).Error("[recover] PANIC")

					// 必ず JSON で返す（CORS は外側で付ける）
					w.Header().Set("Content-Type", "application/json; charset=utf-8")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error":"internal server error"}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
