package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/target/sortparam/config"
	"github.com/target/sortparam/internal/bootstrap"
)

func main() {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
	logger := bootstrap.InitLogger(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &cfg, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		stop()
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) error {
	logStartupInfo(ctx, logger, cfg)

	infra, err := bootstrap.ConnectInfrastructure(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := infra.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close infrastructure failed", "error", cerr)
		}
	}()

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config: cfg,
		DB:     infra.DB,
		Redis:  infra.Redis,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	srv := bootstrap.NewHTTPServer(bootstrap.HTTPServerConfig{
		Config:   cfg.HTTP,
		Services: services,
		Logger:   logger,
	})
	return bootstrap.RunHTTPServer(ctx, srv, nil, cfg.HTTP.ShutdownTimeout, logger)
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting sortparam service",
		"sort_parameter", cfg.Sort.Parameter,
		"property_delimiter", cfg.Sort.PropertyDelimiter,
		"fallback", cfg.Sort.Fallback,
		"legacy_fold", cfg.Sort.LegacyFold,
		"defaults_source", cfg.Defaults.Source,
		"defaults_cache", cfg.Defaults.CacheEnabled,
		"http_addr", cfg.HTTP.Addr)
}
