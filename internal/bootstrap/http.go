package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/target/sortparam/config"
	httpx "github.com/target/sortparam/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   config.HTTPConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

// NewHTTPServer builds the server with the router and middleware chain.
func NewHTTPServer(cfg HTTPServerConfig) *http.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	addr := cfg.Config.Addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	return &http.Server{
		Addr:              addr,
		Handler:           BuildHTTPHandler(cfg.Config, cfg.Services, logger),
		ReadHeaderTimeout: cfg.Config.ReadHeaderTimeout,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// BuildHTTPHandler wires the router and wraps it in middleware.
// Order: RequestID -> Recover -> Logging -> LimitBody -> Router.
func BuildHTTPHandler(cfg config.HTTPConfig, services *ServiceContainer, logger *slog.Logger) http.Handler {
	router := httpx.NewRouter(httpx.RouterServices{
		SortParams:   services.SortParams,
		SortApply:    services.SortApply,
		SortDefaults: services.SortDefaults,
		HealthChecks: services.HealthChecks,
		Logger:       logger,
	})

	h := httpx.LimitBody(cfg.MaxBodyBytes)(router)
	h = httpx.Logging(logger)(h)
	h = httpx.Recover(logger)(h)
	h = httpx.RequestID()(h)
	return h
}

// RunHTTPServer serves until ctx is canceled, then shuts down within shutdownTimeout.
// The listener is optional; when nil the server listens on its Addr.
func RunHTTPServer(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(gctx, "starting HTTP server", "addr", srv.Addr)
		var err error
		if ln != nil {
			err = srv.Serve(ln)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		logger.Info("HTTP server stopped")
		return nil
	})

	return g.Wait()
}
