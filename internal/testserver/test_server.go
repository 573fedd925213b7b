// Package testserver starts a fully wired server for functional tests.
package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/activity"
	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
	"github.com/Lilw3n/multisite-platform-sub002/internal/mcp"
	"github.com/Lilw3n/multisite-platform-sub002/internal/sqlite"
	"github.com/Lilw3n/multisite-platform-sub002/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Repo     *sqlite.SnapshotRepository
	Projects *project.Service
}

// Options tweak the wired server.
type Options struct {
	SeedDemo  bool
	RateLimit transport.RateLimitConfig
}

// New starts a REST + MCP server over a private in-memory SQLite database.
func New(t *testing.T, opts Options) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	repo := sqlite.NewSnapshotRepository(db, sqlite.DefaultSnapshotKey)
	projects := project.NewService(repo, nil, project.WithDemoFallback(opts.SeedDemo))
	projects.Load(context.Background())

	mcpServer := mcp.NewServer(mcp.Config{Projects: projects, TransportMode: "http", Version: "test"})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
	)

	server := httptest.NewServer(transport.NewServer(transport.Options{
		Projects:  projects,
		MCP:       mcpHandler,
		RateLimit: opts.RateLimit,
	}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:   server,
		DB:       db,
		Repo:     repo,
		Projects: projects,
	}
}

// Reload builds a second service from what the server has persisted so far.
func (ts *TestServer) Reload(t *testing.T) *project.Service {
	t.Helper()
	svc := project.NewService(ts.Repo, nil, project.WithDemoFallback(false))
	svc.Load(context.Background())
	return svc
}

// ConnectMCP opens an MCP client session over streamable HTTP. A non-empty
// actor is sent as the X-Actor-Id header on every request.
func (ts *TestServer) ConnectMCP(t *testing.T, actor string) *sdkmcp.ClientSession {
	t.Helper()

	httpClient := ts.Server.Client()
	if actor != "" {
		httpClient = &http.Client{Transport: actorTransport{actor: actor, next: ts.Server.Client().Transport}}
	}

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "functional-test", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: httpClient,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

type actorTransport struct {
	actor string
	next  http.RoundTripper
}

func (a actorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(activity.ActorHeader, a.actor)
	return a.next.RoundTrip(req)
}
