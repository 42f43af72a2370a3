package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLog はリクエストごとに method/path/status/latency を 1 行出す。
func RequestLog(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			entry := log.WithFields(logrus.Fields{
				"method":    r.Method,
				"path":      r.URL.Path,
				"status":    rec.status,
				"latencyMs": time.Since(start).Milliseconds(),
			})
			if rec.status >= http.StatusInternalServerError {
				entry.Error("[http] request")
				return
			}
			entry.Debug("[http] request")
		})
	}
}
