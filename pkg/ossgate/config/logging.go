package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig selects level, format and destination of the process logger
type LogConfig struct {
	Level      string `env:"LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	Format     string `env:"LOG_FORMAT" env-default:"text" env-description:"text or json"`
	File       string `env:"LOG_FILE" env-description:"Log file path; stderr when empty"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" env-default:"100" env-description:"Rotate the log file at this size"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" env-default:"5" env-description:"Rotated files to keep"`
}

// Validate checks level and format
func (l LogConfig) Validate() error {
	if _, err := parseLevel(l.Level); err != nil {
		return err
	}
	switch strings.ToLower(l.Format) {
	case "", "text", "json":
		return nil
	default:
		return fmt.Errorf("unsupported log format %q", l.Format)
	}
}

// NewLogger builds a slog logger for l. The returned closer releases the log
// file and is a no-op when logging to stderr.
func (l LogConfig) NewLogger() (*slog.Logger, io.Closer, error) {
	level, err := parseLevel(l.Level)
	if err != nil {
		return nil, nil, err
	}

	var out io.WriteCloser = nopCloser{os.Stderr}
	if l.File != "" {
		out = &lumberjack.Logger{
			Filename:   l.File,
			MaxSize:    l.MaxSizeMB,
			MaxBackups: l.MaxBackups,
			Compress:   true,
		}
	}

	return slog.New(newHandler(out, l.Format, level)), out, nil
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
