// internal/infra/firestore/client.go
package firestoreinfra

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// ClientWrapper は Firestore クライアントとその設定をラップします。
type ClientWrapper struct {
	Client    *firestore.Client
	ProjectID string
}

// NewClient は Firestore クライアントを初期化します。
// opts が空の場合、ADC(Application Default Credentials)を使用します。
// FIRESTORE_EMULATOR_HOST が設定されていればエミュレータへ接続する（SDK の挙動）。
func NewClient(ctx context.Context, projectID string, log logrus.FieldLogger, opts ...option.ClientOption) (*ClientWrapper, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, errors.New("firestoreinfra: projectID is empty")
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create firestore client (project=%s)", projectID)
	}

	if log != nil {
		log.WithField("project", projectID).Info("Firestore connected")
	}
	return &ClientWrapper{Client: client, ProjectID: projectID}, nil
}

// Close は Firestore クライアントをクローズします。
func (cw *ClientWrapper) Close() error {
	if cw == nil || cw.Client == nil {
		return nil
	}
	return cw.Client.Close()
}
