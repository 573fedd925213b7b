package functional_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/activity"
	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
	"github.com/Lilw3n/multisite-platform-sub002/internal/testserver"
	"github.com/Lilw3n/multisite-platform-sub002/internal/transport"
	"github.com/stretchr/testify/require"
)

type envelope[T any] struct {
	Data  T                `json:"data"`
	Error *transport.Error `json:"error"`
}

func restCall[T any](t *testing.T, ts *testserver.TestServer, method, path string, body any, wantStatus int) T {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.Server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(activity.ActorHeader, "julien")

	resp, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, wantStatus, resp.StatusCode)

	var env envelope[T]
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return env.Data
}

func TestFunctional_RESTLifecycle(t *testing.T) {
	ts := testserver.New(t, testserver.Options{})

	root := restCall[project.Project](t, ts, http.MethodPost, "/api/v1/projects", map[string]any{"name": "Flotte"}, http.StatusCreated)
	child := restCall[project.Project](t, ts, http.MethodPost, "/api/v1/projects", map[string]any{"name": "Sinistre", "parentId": root.ID}, http.StatusCreated)
	leaf := restCall[project.Project](t, ts, http.MethodPost, "/api/v1/projects", map[string]any{"name": "Expertise", "parentId": child.ID}, http.StatusCreated)
	require.Equal(t, 2, leaf.Level)
	require.Equal(t, "julien", leaf.CreatedBy)

	restCall[project.Project](t, ts, http.MethodPost, "/api/v1/projects/"+root.ID+"/move",
		map[string]any{"targetId": leaf.ID, "operation": "move_into"}, http.StatusConflict)

	restCall[project.Project](t, ts, http.MethodPost, "/api/v1/projects/"+child.ID+"/move",
		map[string]any{"targetId": root.ID, "operation": "move_after"}, http.StatusOK)

	moved := restCall[project.Project](t, ts, http.MethodGet, "/api/v1/projects/"+leaf.ID, nil, http.StatusOK)
	require.Equal(t, []string{child.ID}, moved.Path)
	require.Equal(t, 1, moved.Level)

	restCall[any](t, ts, http.MethodDelete, "/api/v1/projects/"+child.ID, nil, http.StatusNoContent)
	restCall[any](t, ts, http.MethodGet, "/api/v1/projects/"+leaf.ID, nil, http.StatusNotFound)

	reloaded := ts.Reload(t)
	all := reloaded.GetAll(context.Background())
	require.Len(t, all, 1)
	require.Equal(t, root.ID, all[0].ID)
	require.Empty(t, all[0].Children)

	revision, err := ts.Repo.Revision(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(5), revision)
}

func TestFunctional_RESTRateLimit(t *testing.T) {
	ts := testserver.New(t, testserver.Options{RateLimit: transport.RateLimitConfig{RPS: 0.01, Burst: 1}})

	restCall[any](t, ts, http.MethodGet, "/api/v1/projects/statistics", nil, http.StatusOK)
	restCall[any](t, ts, http.MethodGet, "/api/v1/projects/statistics", nil, http.StatusTooManyRequests)
}
