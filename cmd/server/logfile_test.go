package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	require.Equal(t, slog.LevelWarn, parseLogLevel("WARN"))
	require.Equal(t, slog.LevelError, parseLogLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLogLevel(""))
	require.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestCappedLog_KeepsTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")
	l, err := openCappedLog(path, 20, 10)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	_, err = l.Write([]byte("0123456789"))
	require.NoError(t, err)
	_, err = l.Write([]byte("abcdefghij"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "0123456789abcdefghij", string(data))

	_, err = l.Write([]byte("XYZ"))
	require.NoError(t, err)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "defghijXYZ", string(data))

	_, err = l.Write([]byte("!"))
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(string(data), "XYZ!"))
}

func TestCappedLog_TrimsOnOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("a", 30)+"tail"), 0o644))

	l, err := openCappedLog(path, 20, 8)
	require.NoError(t, err)
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "aaaatail", string(data))
}
