// Command server runs the canteen recipe service.
//
// Configuration is layered: built-in defaults, then an optional YAML
// file (-config flag, CANTEEN_CONFIG env, ./config.yaml,
// /etc/canteen/config.yaml), then CANTEEN_* environment overrides.
//
//	CANTEEN_DATABASE_URL - PostgreSQL DSN (required)
//	CANTEEN_JWT_SECRET   - HMAC secret for bearer tokens (required)
//	CANTEEN_API_KEY      - static key gating account creation (required)
//	CANTEEN_PORT         - listen port (default: 8080)
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crymall/canteen-service/pkg/auth/apikey"
	"github.com/crymall/canteen-service/pkg/auth/jwt"
	"github.com/crymall/canteen-service/pkg/config"
	"github.com/crymall/canteen-service/pkg/observability"
	"github.com/crymall/canteen-service/pkg/storage/postgres"
	"github.com/crymall/canteen-service/pkg/transport"
	transporthttp "github.com/crymall/canteen-service/pkg/transport/http"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()

	store, err := postgres.New(ctx, postgres.Config{
		DSN:             cfg.Storage.Postgres.DSN,
		MaxConns:        cfg.Storage.Postgres.MaxConns,
		MinConns:        cfg.Storage.Postgres.MinConns,
		MaxConnLifetime: cfg.Storage.Postgres.MaxConnLifetime,
		MigrateOnStart:  cfg.Storage.Postgres.MigrateOnStart,
	})
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer store.Close()
	logger.Info("storage connected", "migrate_on_start", cfg.Storage.Postgres.MigrateOnStart)

	tokens := jwt.New(jwt.Config{
		Secret: cfg.Auth.JWTSecret,
		Issuer: cfg.Auth.JWTIssuer,
	})
	keys := apikey.New(cfg.Auth.APIKey)

	opts := []transporthttp.ServerOption{
		transporthttp.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		transporthttp.WithMaxBodySize(cfg.Server.MaxBodySize),
		transporthttp.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		transporthttp.WithLogger(logger),
		transporthttp.WithHealthCheck(store.HealthCheck),
	}
	if cfg.Observability.Metrics.Enabled {
		opts = append(opts,
			transporthttp.WithMetricsHandler(promhttp.Handler()),
			transporthttp.WithMiddleware(transport.Middleware(observability.MetricsMiddleware)),
		)
	}

	srv := transporthttp.NewServer(store, tokens, keys, opts...)
	return srv.ListenAndServe()
}
