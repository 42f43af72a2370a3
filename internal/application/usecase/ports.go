// internal/application/usecase/ports.go
package usecase

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

// EventTracker は analytics 送信のアウトバウンドポート。
// 送信失敗は呼び出し側に返さない（業務処理は analytics に依存しない）。
type EventTracker interface {
	Track(ctx context.Context, name string, attrs map[string]string)
}

// WelcomeMailer は新規登録時のメール送信ポート（任意）。
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, toEmail string) error
}

// ImageStore はカタログ画像の保存先。公開 URL を返す。
type ImageStore interface {
	Put(ctx context.Context, objectName, contentType string, r io.Reader) (string, error)
}

func track(t EventTracker, ctx context.Context, name string, attrs map[string]string) {
	if t == nil {
		return
	}
	t.Track(ctx, name, attrs)
}

func loggerOrDiscard(l logrus.FieldLogger) logrus.FieldLogger {
	if l != nil {
		return l
	}
	lg := logrus.New()
	lg.Out = io.Discard
	return lg
}
