// internal/adapters/in/http/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	usecase "storefront/internal/application/usecase"
	"storefront/internal/domain/account"
	cartdom "storefront/internal/domain/cart"
)

const maxJSONBody = 1 << 20

var errBadRequest = errors.New("bad request")

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeError は usecase / adapter のエラーを HTTP ステータスに写す。
// 5xx は詳細を返さずログにだけ残す。
func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	code, msg := classify(err)
	if code >= http.StatusInternalServerError && log != nil {
		log.WithError(err).Error("[http] internal error")
	}
	writeErrorMessage(w, code, msg)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrAuthRequired):
		return http.StatusUnauthorized, usecase.ErrAuthRequired.Error()
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "bad request"
	case errors.Is(err, cartdom.ErrInvalidItemName),
		errors.Is(err, usecase.ErrInvalidImage),
		errors.Is(err, account.ErrInvalidEmail),
		errors.Is(err, account.ErrWeakPassword):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, account.ErrEmailAlreadyInUse):
		return http.StatusConflict, err.Error()
	case errors.Is(err, account.ErrInvalidCredentials),
		errors.Is(err, account.ErrInvalidToken):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, usecase.ErrImageStoreNotConfigured):
		return http.StatusServiceUnavailable, "image upload is not configured"
	}

	switch status.Code(err) {
	case codes.NotFound:
		return http.StatusNotFound, "not found"
	case codes.PermissionDenied:
		return http.StatusForbidden, "forbidden"
	}
	return http.StatusInternalServerError, "internal server error"
}

// decodeJSON は body を v に読み込む。壊れた JSON は errBadRequest。
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return errors.Join(errBadRequest, err)
	}
	return nil
}

func parseIntDefault(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Join(errBadRequest, err)
	}
	return n, nil
}

func currentUser(r *http.Request) *account.User {
	return usecase.UserFromContext(r.Context())
}
