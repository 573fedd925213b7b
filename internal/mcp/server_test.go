package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func connectTestClient(t *testing.T, svc *project.Service) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := NewServer(Config{Projects: svc, TransportMode: "stdio"})
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()

	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}

func toolText(t *testing.T, res *sdkmcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestServer_ListsCatalogTools(t *testing.T) {
	cs := connectTestClient(t, project.NewService(nil, nil, project.WithDemoFallback(false)))

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := map[string]bool{}
	for _, tool := range res.Tools {
		names[tool.Name] = true
	}
	for _, def := range buildToolCatalog() {
		require.True(t, names[def.Name], "missing tool %s", def.Name)
	}
	require.Len(t, res.Tools, 13)
}

func TestServer_CallToolRecordsActorFromMeta(t *testing.T) {
	svc := project.NewService(nil, nil, project.WithDemoFallback(false))
	cs := connectTestClient(t, svc)
	ctx := context.Background()

	res, err := cs.CallTool(ctx, &sdkmcp.CallToolParams{
		Meta:      sdkmcp.Meta{"actor_id": "claire"},
		Name:      "create_project",
		Arguments: map[string]any{"name": "Audit RGPD", "type": "legal"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	var created project.Project
	require.NoError(t, json.Unmarshal([]byte(toolText(t, res)), &created))
	require.Equal(t, "Audit RGPD", created.Name)
	require.Equal(t, project.TypeLegal, created.Type)
	require.Equal(t, "claire", created.CreatedBy)

	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "claire", stored.Activities[0].UserID)
}

func TestServer_CallToolDefaultsActor(t *testing.T) {
	svc := project.NewService(nil, nil, project.WithDemoFallback(false))
	cs := connectTestClient(t, svc)

	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "create_project",
		Arguments: map[string]any{"name": "Sans auteur"},
	})
	require.NoError(t, err)

	var created project.Project
	require.NoError(t, json.Unmarshal([]byte(toolText(t, res)), &created))
	require.Equal(t, "system", created.CreatedBy)
}

func TestServer_CallToolError(t *testing.T) {
	cs := connectTestClient(t, project.NewService(nil, nil, project.WithDemoFallback(false)))

	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "get_project",
		Arguments: map[string]any{"id": "missing"},
	})
	require.NoError(t, err)
	require.True(t, res.IsError)

	var apiErr APIError
	require.NoError(t, json.Unmarshal([]byte(toolText(t, res)), &apiErr))
	require.Equal(t, "PROJECT_NOT_FOUND", apiErr.Code)
	require.NotEmpty(t, apiErr.RecoveryHint)
}

func TestServer_DocResources(t *testing.T) {
	cs := connectTestClient(t, project.NewService(nil, nil, project.WithDemoFallback(false)))
	ctx := context.Background()

	list, err := cs.ListResources(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list.Resources, len(docResources))

	res, err := cs.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "projects://docs/moving"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "move_into")
}
