package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/Trippy-actions/server/internal/agent/actions"
	"github.com/Trippy-actions/server/internal/agent/backend"
	"github.com/Trippy-actions/server/internal/agent/graph/tools"
	"github.com/Trippy-actions/server/internal/agent/model"
	"github.com/Trippy-actions/server/internal/agent/server"
	"github.com/Trippy-actions/server/internal/core"
	logx "github.com/Trippy-actions/server/pkg/logger"
	pkgredis "github.com/Trippy-actions/server/pkg/redis"
)

// AppConfig defines all configurable parameters of the action server,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL"`

	// Infrastructure
	Redis pkgredis.Config

	Server  model.ServerConfig
	Backend model.BackendConfig
	Catalog model.CatalogConfig
	Cache   model.CacheConfig
}

func main() {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		logx.Warn().Err(err).Msg("Could not load .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Fatal().Err(err).Msg("Failed to process environment config")
	}

	env := core.ParseEnvironment(cfg.Environment)
	logx.Init(logx.LoggerOpts{Environment: env, Level: cfg.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := backend.NewClient(cfg.Backend)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to create backend client")
	}

	deps := actions.Deps{Backend: client, Catalog: cfg.Catalog}
	if cfg.Redis.Enabled() {
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			logx.Fatal().Err(err).Msg("Failed to initialise Redis client")
		}
		defer rdb.Close()
		deps.Info = backend.NewRedisInfoCache(rdb, client, cfg.Cache.InfoTTL)
		logx.Info().Dur("ttl", cfg.Cache.InfoTTL).Msg("Company info cache enabled")
	}

	registry := actions.Default(deps)
	runner, err := tools.NewRunner(ctx, registry)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build action tools")
	}

	logx.Info().
		Str("environment", env.String()).
		Str("backend", cfg.Backend.URL).
		Int("actions", len(registry.Names())).
		Msg("Trippy action server starting")

	if err := server.New(env, cfg.Server, registry, runner).Run(ctx); err != nil {
		logx.Fatal().Err(err).Msg("Action server stopped")
	}
}
