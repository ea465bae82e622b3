package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emotube/backend/internal/config"
	"github.com/emotube/backend/internal/db"
	"github.com/emotube/backend/internal/handlers"
	"github.com/emotube/backend/internal/httpserver"
	"github.com/emotube/backend/internal/middleware"
)

// Run bootstraps the Emotube backend application.
func Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("expected command: serve, migrate, or analyze")
	}

	switch args[0] {
	case "serve":
		return serve(ctx)
	case "migrate":
		return runMigrations(ctx, args[1:])
	case "analyze":
		return runAnalyze(ctx, args[1:], os.Stdout)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	return newLoggerTo(os.Stdout, cfg)
}

func newLoggerTo(w io.Writer, cfg config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{AddSource: true, Level: cfg.SlogLevel()}))
}

// openStore connects to the database when the cache lives in PostgreSQL. The
// returned pool is nil for the in-memory backend.
func openStore(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	if cfg.CacheBackend != config.CacheBackendPostgres {
		return nil, nil
	}
	return db.Connect(ctx, cfg.DatabaseURL)
}

func wire(ctx context.Context, cfg config.Config) (handlers.Dependencies, func(), error) {
	pool, err := openStore(ctx, cfg)
	if err != nil {
		return handlers.Dependencies{}, nil, err
	}

	collab, err := dialCollaborators(ctx, cfg)
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return handlers.Dependencies{}, nil, err
	}

	cleanup := func() {
		if err := collab.close(); err != nil {
			slog.Default().Warn("close collaborators", "error", err)
		}
		if pool != nil {
			pool.Close()
		}
	}

	var dbPool db.Pool
	if pool != nil {
		dbPool = pool
	}
	deps, err := buildDependencies(dbPool, cfg, collab)
	if err != nil {
		cleanup()
		return handlers.Dependencies{}, nil, err
	}
	if pool != nil {
		deps.HealthChecks = map[string]handlers.HealthCheck{"cache": pool.Ping}
	}
	return deps, cleanup, nil
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	deps, cleanup, err := wire(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, deps)

	handler := middleware.RequestLogger(logger)(mux)
	srv := httpserver.New(cfg.AppPort, handler, cfg.RequestTimeout)

	logger.Info("starting http server",
		"port", cfg.AppPort,
		"cache_backend", cfg.CacheBackend,
		"report_ttl", cfg.ReportTTL.String(),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		return err
	}
	logger.Info("http server stopped")
	return nil
}

// runAnalyze computes or fetches the report for one video reference and
// prints it as JSON.
func runAnalyze(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("expected a video url or id")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// stdout carries the report, so logs go to stderr.
	slog.SetDefault(newLoggerTo(os.Stderr, cfg))

	deps, cleanup, err := wire(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return printReport(ctx, deps.Reports, args[0], out)
}

func printReport(ctx context.Context, service handlers.ReportService, ref string, out io.Writer) error {
	report, err := service.GetReport(ctx, ref)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
