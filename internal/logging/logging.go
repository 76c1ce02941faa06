// Package logging builds the CLI logger: text on stderr, plus JSON into a
// rotating file when one is configured.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aretw0/atcdesk/internal/config"
)

// ParseLevel maps a config level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q", name)
}

// New returns a logger and a closer for its file. verbose forces debug on
// stderr regardless of cfg.Level.
func New(cfg config.Log, stderr io.Writer, verbose bool) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	consoleLevel := level
	if verbose {
		consoleLevel = slog.LevelDebug
	}
	console := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: consoleLevel})

	if cfg.File == "" {
		return slog.New(console), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	w := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB, // MB
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	file := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})

	logger := slog.New(slog.NewMultiHandler(console, file))
	logger.Info("logging started",
		slog.String("file", w.Filename),
		slog.String("GOOS", runtime.GOOS),
		slog.String("GOARCH", runtime.GOARCH))
	return logger, w, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
