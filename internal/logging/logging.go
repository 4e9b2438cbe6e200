package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thenoetrevino/lanes/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// DefaultPath returns ~/.lanes/logs/lanes.log
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".lanes", "logs", "lanes.log"), nil
}

// Init initializes the logging system from cfg. File output is rotated by
// size; text format is used unless json is configured.
func Init(cfg config.LogConfig) error {
	writer, err := newWriter(cfg)
	if err != nil {
		return err
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	// Redirect standard log package output to the same destination
	log.SetOutput(writer)
	log.SetFlags(log.LstdFlags)

	return nil
}

func newWriter(cfg config.LogConfig) (io.Writer, error) {
	if cfg.Output == "stderr" {
		return os.Stderr, nil
	}

	path := cfg.FilePath
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
	if cfg.Output == "both" {
		return io.MultiWriter(file, os.Stderr), nil
	}
	return file, nil
}

// ParseLevel maps a config level name to slog.Level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch level {
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
