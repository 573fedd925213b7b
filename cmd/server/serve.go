package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lilw3n/multisite-platform-sub002/internal/config"
	"github.com/Lilw3n/multisite-platform-sub002/internal/mcp"
	"github.com/Lilw3n/multisite-platform-sub002/internal/metrics"
	"github.com/Lilw3n/multisite-platform-sub002/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the REST API and MCP over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runServe(cmd.Context(), cfg)
	},
}

func runServe(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer a.Close()
	logger := a.logger

	mcpServer := mcp.NewServer(mcp.Config{
		Projects:      a.projects,
		TransportMode: "http",
		Version:       Version,
		Logger:        logger,
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	httpServer := &http.Server{
		Addr: cfg.Server.Addr(),
		Handler: transport.NewServer(transport.Options{
			Projects: a.projects,
			MCP:      mcpHandler,
			Logger:   logger,
			RateLimit: transport.RateLimitConfig{
				RPS:   cfg.RateLimit.RPS,
				Burst: cfg.RateLimit.Burst,
			},
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewServer(cfg.Metrics.Addr, logger)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})
	if metricsServer != nil {
		g.Go(metricsServer.Start)
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		if metricsServer != nil {
			err = errors.Join(err, metricsServer.Shutdown(shutdownCtx))
		}
		return err
	})
	return g.Wait()
}
