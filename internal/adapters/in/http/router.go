// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"storefront/internal/adapters/in/http/handlers"
	"storefront/internal/adapters/in/http/middleware"
	usecase "storefront/internal/application/usecase"
	"storefront/internal/domain/account"
)

// RouterDeps collects all usecases (and other dependencies) injected from DI.
type RouterDeps struct {
	AuthUC    *usecase.AuthUsecase
	CartUC    *usecase.CartUsecase
	CatalogUC *usecase.CatalogUsecase

	// Bearer ID トークンの検証
	Verifier account.TokenVerifier

	Logger            logrus.FieldLogger
	CORSAllowedOrigin string

	// true なら otelhttp でリクエストを計測する（analytics 有効時）
	Instrument bool
}

// NewRouter builds the HTTP handler.
//
// チェーン順（外→内）: CORS → Recover → RequestLog → (otelhttp) → mux
// mux 内: UserAuth（任意認証）→ 各ハンドラ。/auth/logout と /me は RequireUser。
func NewRouter(deps RouterDeps) http.Handler {
	log := deps.Logger
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}

	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	authMW := &middleware.UserAuthMiddleware{Verifier: deps.Verifier, Log: log}
	r.Use(authMW.Handler)

	authH := handlers.NewAuthHandler(deps.AuthUC, log)
	authH.RegisterPublicRoutes(r)

	users := r.NewRoute().Subrouter()
	users.Use(middleware.RequireUser)
	authH.RegisterUserRoutes(users)

	handlers.NewCartHandler(deps.CartUC, log).RegisterRoutes(r)
	handlers.NewCatalogHandler(deps.CatalogUC, deps.AuthUC, log).RegisterRoutes(r)

	var h http.Handler = r
	if deps.Instrument {
		h = otelhttp.NewHandler(h, "storefront-api")
	}
	h = middleware.RequestLog(log)(h)
	h = middleware.Recover(log)(h)
	h = middleware.CORS(deps.CORSAllowedOrigin)(h)
	return h
}
