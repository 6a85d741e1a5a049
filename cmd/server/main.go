package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ketchupdev/ketchup/internal/application/actions"
	"github.com/ketchupdev/ketchup/internal/application/auth"
	"github.com/ketchupdev/ketchup/internal/application/pomodoro"
	"github.com/ketchupdev/ketchup/internal/application/task"
	"github.com/ketchupdev/ketchup/internal/application/view"
	"github.com/ketchupdev/ketchup/internal/config"
	"github.com/ketchupdev/ketchup/internal/http/handler"
	"github.com/ketchupdev/ketchup/internal/infrastructure/persistence/postgres"
	"github.com/ketchupdev/ketchup/internal/infrastructure/persistence/sqlite"
	"github.com/ketchupdev/ketchup/pkg/observability"
)

const serviceName = "ketchup"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

// backends is the backend-independent view of a store.
type backends struct {
	tasks    task.Repository
	sessions pomodoro.Repository
	auth     auth.Repository
	close    func() error
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Root context for all normal operations, cancelled on SIGTERM/SIGINT.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Observability: logger, tracer, meter. Endpoint and headers come from
	// the standard OTEL_* env vars.
	lp, logger, err := observability.InitLogger(ctx, serviceName, cfg.OTelEnabled)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer shutdownProvider(lp.Shutdown, "logger provider")
	slog.SetDefault(logger)

	tp, err := observability.InitTracerProvider(ctx, serviceName, cfg.OTelEnabled)
	if err != nil {
		return fmt.Errorf("failed to init tracer provider: %w", err)
	}
	defer shutdownProvider(tp.Shutdown, "tracer provider")

	mp, err := observability.InitMeterProvider(ctx, serviceName, cfg.OTelEnabled)
	if err != nil {
		return fmt.Errorf("failed to init meter provider: %w", err)
	}
	defer shutdownProvider(mp.Shutdown, "meter provider")

	slog.InfoContext(ctx, "starting ketchup service", "env", cfg.Env)

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.close()

	slog.InfoContext(ctx, "storage initialized", "backend", cfg.Storage.Type)

	tasks := task.NewService(store.tasks)
	sessions := pomodoro.NewService(store.sessions)
	views := view.NewTracker()

	authenticator := auth.NewAuthenticator(ctx, store.auth, auth.Config{})
	defer authenticator.Shutdown()

	acts := actions.New(tasks, sessions, auth.ContextIdentity{}, views)

	srv := handler.NewServer(acts, views)
	router := handler.NewRouter(srv, authenticator)

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           otelhttp.NewHandler(router, serviceName),
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	errResult := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "http server listening", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errResult <- fmt.Errorf("failed to serve http: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.WarnContext(shutdownCtx, "http server shutdown timed out", "error", err)
		} else {
			slog.InfoContext(shutdownCtx, "http server shutdown complete")
		}

		// Drains pending last_used_at updates before the store closes.
		authenticator.Shutdown()
		return nil

	case err := <-errResult:
		return err
	}
}

// openStore picks the persistence backend from the config.
func openStore(ctx context.Context, cfg *config.Config) (*backends, error) {
	switch cfg.Storage.Type {
	case config.StoragePostgres:
		store, err := postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
			DSN:             cfg.Storage.DSN,
			MaxOpenConns:    cfg.Storage.MaxOpenConns,
			MaxIdleConns:    cfg.Storage.MaxIdleConns,
			ConnMaxLifetime: cfg.Storage.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Storage.ConnMaxIdleTime,
			AutoMigrate:     cfg.Storage.AutoMigrate,
		})
		if err != nil {
			return nil, err
		}
		return &backends{
			tasks:    store.Tasks(),
			sessions: store.Sessions(),
			auth:     store.Auth(),
			close:    store.Close,
		}, nil
	case config.StorageSQLite:
		store, err := sqlite.Open(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		return &backends{
			tasks:    store.Tasks(),
			sessions: store.Sessions(),
			auth:     store.Auth(),
			close:    store.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Storage.Type)
	}
}

// shutdownProvider shuts an OTel provider down with a bounded timeout so an
// unreachable collector cannot hang exit.
func shutdownProvider(shutdown func(context.Context) error, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown "+name, "error", err)
	}
}
