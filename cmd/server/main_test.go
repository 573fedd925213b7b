package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("MULTISITE_CONFIG_PATH", "")
	t.Setenv("MULTISITE_DB_PATH", ":memory:")
	t.Setenv("MULTISITE_LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestTreeCommand_PrintsDemoForest(t *testing.T) {
	out := runCLI(t, "tree")

	require.Contains(t, out, "- Assurance Flotte Automobile [active, high] 1/2 items  demo-1\n")
	require.Contains(t, out, "  - Sinistre véhicule AB-123-CD")
	require.Contains(t, out, "    - Expertise carrosserie")
}

func TestStatsCommand(t *testing.T) {
	out := runCLI(t, "stats")

	var stats struct {
		TotalProjects     int `json:"totalProjects"`
		CompletedProjects int `json:"completedProjects"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	require.Equal(t, 6, stats.TotalProjects)
	require.Equal(t, 1, stats.CompletedProjects)
}

func TestExportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	out := runCLI(t, "export", "--out", path)

	require.Contains(t, out, "wrote "+path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Positive(t, info.Size())
}

func TestSeedCommand(t *testing.T) {
	out := runCLI(t, "seed", "--count", "2", "--seed", "3")
	require.Contains(t, out, "(2 roots)")
}

func TestVersionCommand(t *testing.T) {
	out := runCLI(t, "version")
	require.Equal(t, "multisite-server dev\n", out)
}
