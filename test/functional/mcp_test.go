package functional_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/activity"
	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
	"github.com/Lilw3n/multisite-platform-sub002/internal/testserver"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// callTool calls a tool and decodes its JSON text payload into out.
func callTool(t *testing.T, cs *sdkmcp.ClientSession, name string, args map[string]any, out any) {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	require.False(t, res.IsError, "tool error: %s", text.Text)
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(text.Text), out))
	}
}

// toolError calls a tool that is expected to fail and returns its error code.
func toolError(t *testing.T, cs *sdkmcp.ClientSession, name string, args map[string]any) string {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.True(t, res.IsError)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	var apiErr struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &apiErr))
	return apiErr.Code
}

func TestFunctional_MCPInitialize(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})
	cs := ts.ConnectMCP(t, "")

	init := cs.InitializeResult()
	require.NotNil(t, init)
	require.Equal(t, "multisite-projects", init.ServerInfo.Name)
	require.Equal(t, "test", init.ServerInfo.Version)
	require.NotEmpty(t, init.Instructions)

	tools, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 13)
}

func TestFunctional_MCPTreeWorkflow(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})
	cs := ts.ConnectMCP(t, "claire")

	var root, child, other project.Project
	callTool(t, cs, "create_project", map[string]any{"name": "Flotte", "type": "insurance"}, &root)
	callTool(t, cs, "create_project", map[string]any{"name": "Sinistre", "parent_id": root.ID}, &child)
	callTool(t, cs, "create_project", map[string]any{"name": "Audit"}, &other)
	require.Equal(t, "claire", root.CreatedBy)
	require.Equal(t, []string{root.ID}, child.Path)

	require.Equal(t, "CYCLIC_MOVE", toolError(t, cs, "move_project", map[string]any{
		"source_id": root.ID, "target_id": child.ID, "operation": "move_into",
	}))

	var moved project.Project
	callTool(t, cs, "move_project", map[string]any{
		"source_id": other.ID, "target_id": root.ID, "operation": "move_before",
	}, &moved)
	require.Nil(t, moved.ParentID)

	var tree []*project.TreeNode
	callTool(t, cs, "get_project_tree", nil, &tree)
	require.Len(t, tree, 2)
	require.Equal(t, other.ID, tree[0].Project.ID)
	require.Equal(t, root.ID, tree[1].Project.ID)
	require.Len(t, tree[1].Children, 1)

	var item project.Item
	callTool(t, cs, "add_project_item", map[string]any{
		"project_id": child.ID, "title": "Constat", "status": "completed",
	}, &item)

	var stats project.Statistics
	callTool(t, cs, "get_project_statistics", nil, &stats)
	require.Equal(t, 3, stats.TotalProjects)
	require.Equal(t, 1, stats.TotalItems)

	var recent []activity.RecentEntry
	callTool(t, cs, "get_recent_activity", map[string]any{"limit": 1}, &recent)
	require.Len(t, recent, 1)
	require.Equal(t, child.ID, recent[0].ProjectID)
	require.Equal(t, "claire", recent[0].UserID)

	// The store persisted every change.
	reloaded := ts.Reload(t)
	got, err := reloaded.Get(context.Background(), child.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.TotalItems)
	require.NoError(t, project.Validate(reloaded.GetAll(context.Background())))
}

func TestFunctional_MCPDocsResources(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})
	cs := ts.ConnectMCP(t, "")

	res, err := cs.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "projects://docs/moving"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "move_into")
}

func TestFunctional_MCPSearchDemoData(t *testing.T) {
	ts := testserver.New(t, testserver.Options{SeedDemo: true})
	cs := ts.ConnectMCP(t, "")

	var list struct {
		Projects []project.Project `json:"projects"`
		Total    int               `json:"total"`
	}
	callTool(t, cs, "search_projects", map[string]any{"query": "flotte"}, &list)
	require.Equal(t, 1, list.Total)
	require.Equal(t, "demo-1", list.Projects[0].ID)

	require.Equal(t, "PROJECT_NOT_FOUND", toolError(t, cs, "get_project", map[string]any{"id": "missing"}))
}
