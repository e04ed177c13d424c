package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls log level, format and optional file output.
type Config struct {
	Level  string
	Format string
	File   FileConfig
}

// FileConfig enables a rotating log file next to stderr output.
type FileConfig struct {
	Enabled    bool
	Path       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// Setup builds the process logger writing to stderr.
func Setup(cfg Config) (Logger, func() error, error) {
	return SetupWithWriter(cfg, os.Stderr)
}

// SetupWithWriter builds a logger writing to w, plus the log file when enabled.
// The returned cleanup closes the file writer.
func SetupWithWriter(cfg Config, w io.Writer) (Logger, func() error, error) {
	cleanup := func() error { return nil }

	invalidLevel := false
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		invalidLevel = cfg.Level != ""
		level = zerolog.InfoLevel
	}

	var out io.Writer = w
	if strings.EqualFold(cfg.Format, "console") || cfg.Format == "" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	if cfg.File.Enabled {
		if cfg.File.Path == "" {
			return Nop(), cleanup, fmt.Errorf("log file enabled without a path")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.File.Path), 0o700); err != nil {
			return Nop(), cleanup, fmt.Errorf("failed to create log directory: %w", err)
		}
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSize,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAge,
			Compress:   cfg.File.Compress,
		}
		// The file always gets JSON lines.
		out = io.MultiWriter(out, fileWriter)
		cleanup = fileWriter.Close
	}

	logger := New(zerolog.New(out).Level(level).With().Timestamp().Logger())
	if invalidLevel {
		logger.Warn().Str("invalid_level", cfg.Level).Msg("invalid log level, using info")
	}

	return logger, cleanup, nil
}
