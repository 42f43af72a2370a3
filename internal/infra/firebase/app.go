// internal/infra/firebase/app.go
package firebaseinfra

import (
	"context"
	"strings"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// NewAuth は Firebase App を初期化し Admin Auth クライアントを返します。
// ID トークン検証と refresh token 失効に使う。
func NewAuth(ctx context.Context, projectID string, opts ...option.ClientOption) (*firebaseauth.Client, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, errors.New("firebaseinfra: projectID is empty")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "firebaseinfra: firebase app init failed")
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "firebaseinfra: firebase auth init failed")
	}
	return authClient, nil
}
