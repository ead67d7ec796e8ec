package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/llmarch/core/cmd/api/middleware"
	"github.com/llmarch/core/internal/config"
	"github.com/llmarch/core/internal/content"
	"github.com/llmarch/core/internal/handlers"
	"github.com/llmarch/core/internal/logging"
	"github.com/llmarch/core/internal/registry"
	"github.com/llmarch/core/internal/router"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the diagram web server",
		Long: `Start the HTTP server. The diagram catalog is loaded and validated first;
any authoring error stops the server from starting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyServeFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			handler, reg, err := buildHandler(cfg, logger)
			if err != nil {
				return err
			}
			logger.WithField("diagrams", reg.Len()).Info("catalog loaded")

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
			}
			return serve(ctx, ln, handler, logger)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default: LLMARCH_ADDR or :8080)")
	cmd.Flags().String("log-level", "", "Log level: debug, info, warn or error (default: LLMARCH_LOG_LEVEL or info)")
	cmd.Flags().String("log-format", "", "Log format: text or json (default: LLMARCH_LOG_FORMAT or text)")
	return cmd
}

func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		cfg.Addr = v
	}
	if v, _ := cmd.Flags().GetString("content"); v != "" {
		cfg.ContentDir = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.LogFormat = v
	}
}

// buildHandler loads the catalog and wires the routes behind the middleware
// chain. Any content error is returned before a socket is opened.
func buildHandler(cfg *config.Config, logger *logrus.Logger) (http.Handler, *registry.Registry, error) {
	fsys, err := contentFS(cfg.ContentDir)
	if err != nil {
		return nil, nil, err
	}
	reg, catalog, err := registry.Load(fsys)
	if err != nil {
		return nil, nil, err
	}
	r, err := router.New(reg, catalog)
	if err != nil {
		return nil, nil, err
	}
	assets, err := content.Assets(fsys)
	if err != nil {
		return nil, nil, err
	}

	mux, err := handlers.NewMux(handlers.Options{
		Registry:    reg,
		Router:      r,
		Assets:      assets,
		RendererURL: cfg.RendererURL,
		Logger:      logger,
	})
	if err != nil {
		return nil, nil, err
	}

	handler := middleware.Chain(mux,
		middleware.RequestID,
		middleware.AccessLog(logger),
		middleware.RateLimit(cfg.RateLimit, cfg.RateBurst),
		middleware.Cors(cfg.AllowedOrigin),
	)
	return handler, reg, nil
}

// serve runs an HTTP server on ln until ctx is cancelled, then shuts it down
// gracefully.
func serve(ctx context.Context, ln net.Listener, handler http.Handler, logger *logrus.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", ln.Addr().String()).Info("server starting")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
