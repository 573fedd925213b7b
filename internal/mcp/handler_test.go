package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/activity"
	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*Handler, *project.Service) {
	t.Helper()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
	svc := project.NewService(nil, nil, project.WithDemoFallback(false), project.WithClock(clock))
	return NewHandler(svc), svc
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func handle[T any](t *testing.T, h *Handler, method string, params any) T {
	t.Helper()
	res, err := h.Handle(context.Background(), method, mustJSON(t, params))
	require.NoError(t, err)
	out, ok := res.(T)
	require.True(t, ok, "unexpected result type %T", res)
	return out
}

func TestHandler_ProjectLifecycle(t *testing.T) {
	h, svc := newTestHandler(t)

	root := handle[*project.Project](t, h, "create_project", CreateProjectParams{
		Name:      "Flotte",
		Type:      project.TypeInsurance,
		StartDate: "2024-01-15",
	})
	require.Equal(t, "Flotte", root.Name)
	require.NotNil(t, root.StartDate)
	require.Equal(t, 15, root.StartDate.Day())

	child := handle[*project.Project](t, h, "create_project", CreateProjectParams{Name: "Sinistre", ParentID: &root.ID})
	require.Equal(t, []string{root.ID}, child.Path)

	got := handle[*project.Project](t, h, "get_project", GetProjectParams{ID: child.ID})
	require.Equal(t, child.ID, got.ID)

	newName := "Sinistre AB-123"
	updated := handle[*project.Project](t, h, "update_project", UpdateProjectParams{ID: child.ID, Name: &newName})
	require.Equal(t, newName, updated.Name)

	item := handle[*project.Item](t, h, "add_project_item", AddProjectItemParams{ProjectID: child.ID, Title: "Constat", Type: project.ItemDocument})
	require.NotEmpty(t, item.ID)

	removed := handle[DeleteResponse](t, h, "remove_project_item", RemoveProjectItemParams{ProjectID: child.ID, ItemID: item.ID})
	require.True(t, removed.Deleted)

	tree := handle[[]*project.TreeNode](t, h, "get_project_tree", GetProjectTreeParams{})
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)

	nav := handle[*project.Navigation](t, h, "get_project_navigation", GetProjectNavigationParams{ID: child.ID})
	require.Len(t, nav.Breadcrumbs, 2)

	deleted := handle[DeleteResponse](t, h, "delete_project", DeleteProjectParams{ID: root.ID})
	require.True(t, deleted.Deleted)
	require.Empty(t, svc.GetAll(context.Background()))
}

func TestHandler_ListAndSearch(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, p := range []CreateProjectParams{
		{Name: "Beta", Status: project.StatusActive, Priority: project.PriorityLow},
		{Name: "Alpha", Status: project.StatusActive, Priority: project.PriorityUrgent},
		{Name: "Gamma", Status: project.StatusDraft, Tags: []project.Tag{{ID: "t1", Name: "Renouvellement"}}},
	} {
		handle[*project.Project](t, h, "create_project", p)
	}

	list := handle[ProjectListResponse](t, h, "list_projects", ListProjectsParams{
		ProjectFilterParams: ProjectFilterParams{Status: []project.Status{project.StatusActive}},
		SortBy:              project.SortByPriority,
		SortDirection:       project.SortDesc,
	})
	require.Equal(t, 2, list.Total)
	require.Equal(t, "Alpha", list.Projects[0].Name)
	require.Equal(t, "Beta", list.Projects[1].Name)

	all := handle[ProjectListResponse](t, h, "list_projects", ListProjectsParams{})
	require.Equal(t, 3, all.Total)

	found := handle[ProjectListResponse](t, h, "search_projects", SearchProjectsParams{Query: "renouv"})
	require.Equal(t, 1, found.Total)
	require.Equal(t, "Gamma", found.Projects[0].Name)

	stats := handle[project.Statistics](t, h, "get_project_statistics", nil)
	require.Equal(t, 3, stats.TotalProjects)
	require.Equal(t, 2, stats.ActiveProjects)

	recent := handle[[]activity.RecentEntry](t, h, "get_recent_activity", GetRecentActivityParams{Limit: 2, Types: []string{"created"}})
	require.Len(t, recent, 2)
	require.Equal(t, "Gamma", recent[0].ProjectName)
}

func TestHandler_Move(t *testing.T) {
	h, _ := newTestHandler(t)

	a := handle[*project.Project](t, h, "create_project", CreateProjectParams{Name: "A"})
	b := handle[*project.Project](t, h, "create_project", CreateProjectParams{Name: "B"})

	moved := handle[*project.Project](t, h, "move_project", MoveProjectParams{SourceID: a.ID, TargetID: b.ID, Operation: project.MoveInto})
	require.Equal(t, b.ID, *moved.ParentID)
	require.Equal(t, 1, moved.Level)

	_, err := h.Handle(context.Background(), "move_project", mustJSON(t, MoveProjectParams{SourceID: b.ID, TargetID: a.ID, Operation: project.MoveInto}))
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	require.Equal(t, "CYCLIC_MOVE", apiErr.Code)
}

func TestHandler_ErrorMapping(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()

	cases := []struct {
		method string
		params any
		code   string
	}{
		{"get_project", GetProjectParams{ID: "missing"}, "PROJECT_NOT_FOUND"},
		{"create_project", CreateProjectParams{Name: ""}, "INVALID_INPUT"},
		{"create_project", CreateProjectParams{Name: "x", ParentID: ptr("missing")}, "PARENT_NOT_FOUND"},
		{"create_project", CreateProjectParams{Name: "x", StartDate: "yesterday"}, "INVALID_INPUT"},
		{"list_projects", ListProjectsParams{ProjectFilterParams: ProjectFilterParams{CreatedFrom: "soon"}}, "INVALID_INPUT"},
		{"move_project", MoveProjectParams{SourceID: "a", TargetID: "b", Operation: "sideways"}, "INVALID_MOVE_OPERATION"},
		{"remove_project_item", RemoveProjectItemParams{ProjectID: "missing", ItemID: "i"}, "PROJECT_NOT_FOUND"},
	}
	for _, tc := range cases {
		_, err := h.Handle(ctx, tc.method, mustJSON(t, tc.params))
		require.Error(t, err, tc.method)
		apiErr, ok := err.(*APIError)
		require.True(t, ok, "%s: %v", tc.method, err)
		require.Equal(t, tc.code, apiErr.Code, tc.method)
	}

	_, err := h.Handle(ctx, "create_project", json.RawMessage(`{"name": 12}`))
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	require.Equal(t, "INVALID_ARGUMENTS", apiErr.Code)

	_, err = h.Handle(ctx, "no_such_tool", nil)
	require.ErrorContains(t, err, "unknown method")
}

func TestProjectFilterParams_Filter(t *testing.T) {
	f, err := ProjectFilterParams{}.Filter()
	require.NoError(t, err)
	require.Nil(t, f)

	f, err = ProjectFilterParams{CreatedFrom: "2024-01-01", CreatedTo: "2024-01-31T23:59:59Z"}.Filter()
	require.NoError(t, err)
	require.NotNil(t, f.DateRange)
	require.Equal(t, 2024, f.DateRange.Start.Year())
	require.Equal(t, 31, f.DateRange.End.Day())

	f, err = ProjectFilterParams{CreatedFrom: "2024-01-01"}.Filter()
	require.NoError(t, err)
	require.True(t, f.DateRange.End.After(f.DateRange.Start))
}

func ptr(s string) *string { return &s }
