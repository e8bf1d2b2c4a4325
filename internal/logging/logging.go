// Package logging builds the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jeanpaul/shelf/internal/config"
)

// New creates a *slog.Logger writing to w and sets it as the slog default.
//
// Format "json" produces structured JSON output. Format "text" produces
// human-readable output, with source locations at debug level. Level is one of debug, info,
// warn, error (case-insensitive) and defaults to info. Every record carries
// a per-process session id.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	logger := newLogger(cfg, w).With("session", uuid.NewString())
	slog.SetDefault(logger)
	return logger
}

// NewFile is New writing to cfg.File, for runs where the terminal belongs
// to the TUI. Falls back to discarding output when the file cannot be
// opened.
func NewFile(cfg config.LogConfig) (*slog.Logger, io.Closer) {
	if cfg.File == "" {
		return New(cfg, io.Discard), io.NopCloser(nil)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return New(cfg, io.Discard), io.NopCloser(nil)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return New(cfg, io.Discard), io.NopCloser(nil)
	}
	return New(cfg, f), f
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text") && parseLevel(cfg.Level) == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
