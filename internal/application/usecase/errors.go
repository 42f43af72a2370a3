// internal/application/usecase/errors.go
package usecase

import "errors"

var (
	// ErrAuthRequired は未ログインでカート/ウィッシュリストを変更しようとした場合。
	ErrAuthRequired = errors.New("AUTH_REQUIRED")

	ErrForbidden               = errors.New("usecase: forbidden")
	ErrImageStoreNotConfigured = errors.New("usecase: image store not configured")
	ErrInvalidImage            = errors.New("usecase: invalid image")
)
