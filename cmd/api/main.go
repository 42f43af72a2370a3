// cmd/api/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/infra/config"
	"storefront/internal/infra/logging"
	"storefront/internal/platform/di"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	// ─────────────────────────────────────────────────────────────
	// Lightweight healthz first so PORT is LISTENed quickly
	// ─────────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// ─────────────────────────────────────────────────────────────
	// DI container & heavy deps; keep /healthz even on failure
	// ─────────────────────────────────────────────────────────────
	var cont *di.Container
	if c, err := di.NewContainer(ctx, cfg, log); err != nil {
		log.WithError(err).Warn("[boot] di init failed (serving /healthz only)")
	} else {
		cont = c
		log.WithField("backend", cfg.StoreBackend).Info("[boot] container ready")
		mux.Handle("/", httpin.NewRouter(cont.RouterDeps()))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─────────────────────────────────────────────────────────────
	// Graceful shutdown for Cloud Run
	// ─────────────────────────────────────────────────────────────
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		sig := <-c
		log.WithField("signal", sig.String()).Info("[boot] shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("[boot] server shutdown error")
		}
		if err := cont.Close(shutdownCtx); err != nil {
			log.WithError(err).Warn("[boot] container close error")
		}
		close(idleConnsClosed)
	}()

	log.WithField("port", cfg.Port).Info("[boot] listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("[boot] server error")
	}

	<-idleConnsClosed
	log.Info("[boot] server stopped")
}
