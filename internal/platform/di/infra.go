// internal/platform/di/infra.go
package di

import (
	"context"
	"path/filepath"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	identityadapter "storefront/internal/adapters/out/identity"
	"storefront/internal/infra/config"
	firebaseinfra "storefront/internal/infra/firebase"
	firestoreinfra "storefront/internal/infra/firestore"
	"storefront/internal/infra/secret"
)

// Infra は Firestore バックエンドで使う外部クライアント一式です。
// Firestore / Firebase Auth / Identity Toolkit は必須（エラーを返す）。
// Secret Manager は best-effort、GCS はバケット指定時のみ。
type Infra struct {
	Firestore     *firestoreinfra.ClientWrapper
	GCS           *storage.Client
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secretmanager.Client
	Secrets       *secret.Provider
	Toolkit       *identitytoolkit.Service
}

func NewInfra(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*Infra, error) {
	if cfg == nil {
		return nil, errors.New("di.infra: config is nil")
	}

	var clientOpts []option.ClientOption
	if credFile := cfg.CredentialsFile(); credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.WithField("file", filepath.Base(credFile)).Info("[di.infra] using credentials file for GCP clients")
	} else {
		log.Info("[di.infra] using Application Default Credentials")
	}

	inf := &Infra{}

	// 1) Secret Manager (best-effort)
	sm, err := secretmanager.NewClient(ctx, clientOpts...)
	if err != nil {
		log.WithError(err).Warn("[di.infra] secretmanager.NewClient failed (secret lookups disabled)")
		sm = nil
	}
	inf.SecretManager = sm
	inf.Secrets = secret.NewProvider(sm, cfg.FirebaseProjectID)

	// 2) Firestore (strict)
	fs, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, log, clientOpts...)
	if err != nil {
		_ = inf.Close()
		return nil, err
	}
	inf.Firestore = fs

	// 3) Firebase Auth (strict): Bearer トークン検証に必要
	authClient, err := firebaseinfra.NewAuth(ctx, cfg.FirebaseProjectID, clientOpts...)
	if err != nil {
		_ = inf.Close()
		return nil, err
	}
	inf.FirebaseAuth = authClient

	// 4) Identity Toolkit (strict): パスワード認証は Web API Key で呼ぶ
	apiKey, err := inf.Secrets.ResolveAPIKey(ctx, cfg.FirebaseAPIKey, cfg.FirebaseAPIKeySecret)
	if err != nil {
		_ = inf.Close()
		return nil, errors.Wrap(err, "di.infra: firebase api key")
	}
	toolkit, err := identityadapter.NewToolkitService(ctx, apiKey)
	if err != nil {
		_ = inf.Close()
		return nil, err
	}
	inf.Toolkit = toolkit

	// 5) GCS (バケット指定時のみ)
	if cfg.CatalogImageBucket != "" {
		gcs, err := storage.NewClient(ctx, clientOpts...)
		if err != nil {
			_ = inf.Close()
			return nil, errors.Wrap(err, "di.infra: storage.NewClient failed")
		}
		inf.GCS = gcs
		log.WithField("bucket", cfg.CatalogImageBucket).Info("[di.infra] catalog image bucket configured")
	} else {
		log.Warn("[di.infra] CATALOG_IMAGE_BUCKET is empty (image upload disabled)")
	}

	return inf, nil
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	var firstErr error
	if i.Firestore != nil {
		if err := i.Firestore.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if i.GCS != nil {
		if err := i.GCS.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if i.SecretManager != nil {
		if err := i.SecretManager.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
