// Package logsink builds the process logger: leveled slog entries written
// to a size-rotated file, optionally mirrored to stdout.
package logsink

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Defaults for the rotating file.
const (
	DefaultMaxSizeMB  = 1
	DefaultMaxBackups = 5
)

// Config configures a Sink.
type Config struct {
	Level  string
	Format string // "json" or "text"

	// File is the log file path. Empty disables the file and logs to
	// stdout only.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// Stdout mirrors entries to standard output when File is set.
	Stdout bool
}

// Sink owns the logger and its rotating file.
type Sink struct {
	logger *slog.Logger
	file   *lumberjack.Logger
}

// New creates a sink. The log directory is created if it does not exist.
func New(cfg Config) (*Sink, error) {
	return newSink(cfg, os.Stdout)
}

func newSink(cfg Config, stdout io.Writer) (*Sink, error) {
	var (
		out  io.Writer = stdout
		file *lumberjack.Logger
	)

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, err
		}
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    orDefault(cfg.MaxSizeMB, DefaultMaxSizeMB),
			MaxBackups: orDefault(cfg.MaxBackups, DefaultMaxBackups),
			MaxAge:     cfg.MaxAgeDays,
		}
		out = file
		if cfg.Stdout {
			out = io.MultiWriter(file, stdout)
		}
	}

	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	return &Sink{logger: slog.New(handler), file: file}, nil
}

// Logger returns the sink's logger.
func (s *Sink) Logger() *slog.Logger {
	return s.logger
}

// Rotate forces a rotation of the log file. It is a no-op without a file.
func (s *Sink) Rotate() error {
	if s.file == nil {
		return nil
	}
	return s.file.Rotate()
}

// Close closes the log file.
func (s *Sink) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

// ParseLevel maps a level name to a slog level. Unknown names yield info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
