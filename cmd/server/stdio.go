package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lilw3n/multisite-platform-sub002/internal/config"
	"github.com/Lilw3n/multisite-platform-sub002/internal/mcp"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var defaultActor string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve MCP over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runMCP(cmd.Context(), cfg)
	},
}

func init() {
	mcpCmd.Flags().StringVar(&defaultActor, "actor", "", "actor recorded when a call carries no _meta.actor_id")
}

func runMCP(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// stdout carries JSON-RPC
	a, err := newApp(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer a.Close()

	a.logger.Info("starting stdio transport")
	server := mcp.NewServer(mcp.Config{
		Projects:      a.projects,
		DefaultActor:  defaultActor,
		TransportMode: "stdio",
		Version:       Version,
		Logger:        a.logger,
	})

	// Run blocks until stdin closes or the context is cancelled
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}
