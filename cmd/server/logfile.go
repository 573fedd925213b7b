package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// cappedLog is an append-only log file that keeps only its newest keep bytes
// once it grows past max.
type cappedLog struct {
	mu   sync.Mutex
	file *os.File
	max  int64
	keep int64
}

func openCappedLog(path string, maxSize, keepSize int64) (*cappedLog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	l := &cappedLog{file: file, max: maxSize, keep: min(keepSize, maxSize)}
	if err := l.trim(); err != nil {
		file.Close()
		return nil, err
	}
	return l, nil
}

func (l *cappedLog) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n, err := l.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, l.trim()
}

func (l *cappedLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

// trim keeps the tail of the file; callers hold mu or own l exclusively.
func (l *cappedLog) trim() error {
	info, err := l.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= l.max {
		return nil
	}

	tail := make([]byte, l.keep)
	n, err := l.file.ReadAt(tail, size-l.keep)
	if err != nil && err != io.EOF {
		return err
	}
	tail = tail[:n]

	if err := l.file.Truncate(0); err != nil {
		return err
	}
	if _, err := l.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := l.file.Write(tail); err != nil {
		return err
	}
	_, err = l.file.Seek(0, io.SeekEnd)
	return err
}
