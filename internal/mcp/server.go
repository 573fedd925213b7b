package mcp

import (
	"log/slog"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/activity"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Config contains server configuration.
type Config struct {
	Projects      ProjectService
	DefaultActor  string
	TransportMode string // "stdio" or "http"
	Version       string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	defaultActor := cfg.DefaultActor
	if defaultActor == "" {
		defaultActor = activity.SystemActor
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "multisite-projects",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server)

	// the last middleware added runs first, so the actor is resolved before traffic is logged
	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddReceivingMiddleware(actorMiddleware(defaultActor))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, NewHandler(cfg.Projects), logger.With("transport", cfg.TransportMode))

	return server
}
