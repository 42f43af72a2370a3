// internal/platform/di/container.go
package di

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	httpin "storefront/internal/adapters/in/http"
	fs "storefront/internal/adapters/out/firestore"
	gcsadapter "storefront/internal/adapters/out/gcs"
	identityadapter "storefront/internal/adapters/out/identity"
	"storefront/internal/adapters/out/mail"
	"storefront/internal/adapters/out/memory"
	usecase "storefront/internal/application/usecase"
	"storefront/internal/domain/account"
	cartdom "storefront/internal/domain/cart"
	catalogdom "storefront/internal/domain/catalog"
	"storefront/internal/infra/analytics"
	"storefront/internal/infra/config"
)

// Container は main.go から使う依存オブジェクトの束。
type Container struct {
	Config *config.Config

	AuthUC    *usecase.AuthUsecase
	CartUC    *usecase.CartUsecase
	CatalogUC *usecase.CatalogUsecase
	Verifier  account.TokenVerifier

	// Firestore バックエンド時のみ
	Infra *Infra

	log         logrus.FieldLogger
	analytics   *analytics.Collector
	unsubscribe func()
}

// backend は選択したストア実装（memory / firestore）の組み合わせ。
type backend struct {
	identity account.IdentityProvider
	verifier account.TokenVerifier
	profiles account.ProfileRepository
	carts    cartdom.Repository
	catalog  catalogdom.Repository
	images   usecase.ImageStore
}

// NewContainer は cfg.StoreBackend に応じてアダプタを組み立て、usecase を配線します。
func NewContainer(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("di: config is nil")
	}
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}

	c := &Container{Config: cfg, log: log}

	var b backend
	if cfg.UseMemoryStore() {
		mb, err := newMemoryBackend(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		b = mb
	} else {
		inf, err := NewInfra(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		c.Infra = inf
		b = newFirestoreBackend(cfg, inf, log)
	}

	// analytics は best-effort（失敗しても起動は続ける）
	var tracker usecase.EventTracker
	col, err := analytics.New(ctx, analytics.Options{Enabled: cfg.AnalyticsEnabled, Endpoint: cfg.OTLPEndpoint}, log)
	if err != nil {
		log.WithError(err).Warn("[di] analytics disabled")
	} else if col != nil {
		c.analytics = col
		tracker = col
	}

	var mailer usecase.WelcomeMailer
	if m := mail.NewWelcomeMailerWithSendGrid(cfg.SendGridAPIKey, cfg.SendGridFrom, log); m != nil {
		mailer = m
	}

	admin := account.NewAdminPolicy(cfg.AdminUID)

	c.AuthUC = usecase.NewAuthUsecase(usecase.AuthDeps{
		Identity: b.identity,
		Profiles: b.profiles,
		Admin:    admin,
		Mailer:   mailer,
		Tracker:  tracker,
		Logger:   log,
	})
	c.CartUC = usecase.NewCartUsecase(b.carts, tracker)
	c.CatalogUC = usecase.NewCatalogUsecase(usecase.CatalogDeps{
		Repo:    b.catalog,
		Images:  b.images,
		Admin:   admin,
		Tracker: tracker,
		Logger:  log,
	})
	c.Verifier = b.verifier

	c.unsubscribe = c.AuthUC.Observe(func(u *account.User) {
		if u == nil {
			log.Debug("[auth] signed out")
			return
		}
		log.WithField("uid", u.UID).Info("[auth] signed in")
	})

	return c, nil
}

func newMemoryBackend(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (backend, error) {
	store := memory.NewStore()
	ident := memory.NewIdentity()

	// 管理者アカウントを AdminUID で作っておく（ローカル開発用）
	email := strings.TrimSpace(cfg.MemoryAdminEmail)
	if email != "" && cfg.MemoryAdminPassword != "" {
		if err := ident.CreateUser(ctx, cfg.AdminUID, email, cfg.MemoryAdminPassword); err != nil {
			return backend{}, errors.Wrap(err, "di: seed memory admin")
		}
		if err := store.MergeProfile(ctx, cfg.AdminUID, email); err != nil {
			return backend{}, errors.Wrap(err, "di: seed memory admin profile")
		}
		log.WithField("email", email).Info("[di] memory admin account created")
	}

	log.Warn("[di] STORE_BACKEND=memory: data is lost on restart")
	return backend{
		identity: ident,
		verifier: ident,
		profiles: store,
		carts:    store,
		catalog:  store,
	}, nil
}

func newFirestoreBackend(cfg *config.Config, inf *Infra, log logrus.FieldLogger) backend {
	client := inf.Firestore.Client
	ident := identityadapter.NewFirebaseIdentity(inf.Toolkit, inf.FirebaseAuth, log)

	b := backend{
		identity: ident,
		verifier: ident,
		profiles: fs.NewUserRepositoryFS(client),
		carts:    fs.NewCartRepositoryFS(client),
		catalog:  fs.NewCatalogRepositoryFS(client),
	}
	if inf.GCS != nil {
		b.images = gcsadapter.NewCatalogImageRepositoryGCS(inf.GCS, cfg.CatalogImageBucket)
	}
	return b
}

// RouterDeps は HTTP ルーターへ渡す依存を返します。
func (c *Container) RouterDeps() httpin.RouterDeps {
	return httpin.RouterDeps{
		AuthUC:            c.AuthUC,
		CartUC:            c.CartUC,
		CatalogUC:         c.CatalogUC,
		Verifier:          c.Verifier,
		Logger:            c.log,
		CORSAllowedOrigin: c.Config.CORSAllowedOrigin,
		Instrument:        c.analytics != nil,
	}
}

// Close は analytics をフラッシュし、外部クライアントを閉じます。
func (c *Container) Close(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	var firstErr error
	if err := c.analytics.Shutdown(ctx); err != nil {
		firstErr = err
	}
	if err := c.Infra.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
