package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	certhandler "skillchain/internal/certification/handler"
	certmetrics "skillchain/internal/certification/metrics"
	"skillchain/internal/certification/service"
	"skillchain/internal/certification/store"
	"skillchain/internal/filestore"
	"skillchain/internal/notification"
	"skillchain/internal/platform/config"
	"skillchain/internal/platform/health"
	"skillchain/internal/platform/httpserver"
	"skillchain/internal/platform/logger"
	httptransport "skillchain/internal/transport/http"
	id "skillchain/pkg/domain"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	admin, err := id.ParseIdentity(cfg.AdminIdentity)
	if err != nil {
		log.Error("invalid admin identity", "error", err)
		os.Exit(1)
	}

	log.Info("initializing skillchain ledger",
		"addr", cfg.Addr,
		"admin", admin,
		"max_certs_per_owner", cfg.MaxCertsPerOwner,
		"lock_duration", cfg.LockDuration,
		"cooldown_duration", cfg.CooldownDuration,
	)

	notifier := notification.NewPublisher(notification.NewInMemoryStore(),
		notification.WithAsyncBuffer(256),
		notification.WithPublisherLogger(log),
	)
	defer notifier.Close()

	ledger, err := service.New(store.NewInMemory(), admin,
		service.Config{
			MaxCertificatesPerOwner: cfg.MaxCertsPerOwner,
			LockDuration:            cfg.LockDuration,
			CooldownDuration:        cfg.CooldownDuration,
		},
		service.WithLogger(log),
		service.WithNotifier(notifier),
		service.WithMetrics(certmetrics.New()),
	)
	if err != nil {
		log.Error("failed to construct ledger service", "error", err)
		os.Exit(1)
	}

	documents := filestore.New(filestore.NewInMemoryStore(), cfg.FilestoreBaseURL)

	healthHandler := health.New(envOr("SKILLCHAIN_ENV", "development"))
	healthHandler.RegisterCheck("ledger", func() error { return nil })

	router := httptransport.NewRouter(
		httptransport.Config{
			JWTSigningKey:  cfg.JWTSigningKey,
			TrustedProxies: cfg.TrustedProxies,
		},
		certhandler.New(ledger, log),
		filestore.NewHandler(documents, log),
		healthHandler,
		log,
	)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
