// Package logger sets up the structured application log.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const envDebug = "SLUMBER_DEBUG"

// Config holds logger configuration.
type Config struct {
	// Writer overrides the rotating log file. Used in tests.
	Writer  io.Writer
	Path    string
	Debug   bool
	Verbose bool
}

// New creates a slog logger backed by a charmbracelet/log handler that
// writes to a rotating file.
func New(cfg Config) (*slog.Logger, io.Closer, error) {
	writer := cfg.Writer

	var closer io.Closer = nopCloser{}

	if writer == nil {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
			return nil, nil, err
		}

		fileWriter := &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}

		writer, closer = fileWriter, fileWriter
	}

	debug := cfg.Debug || os.Getenv(envDebug) != ""

	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	// echo to stderr only when explicitly asked, the session screen owns
	// the terminal
	if cfg.Verbose {
		writer = io.MultiWriter(os.Stderr, writer)
	}

	handler := log.NewWithOptions(writer, log.Options{
		ReportCaller:    debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "slumber",
	})

	return slog.New(handler), closer, nil
}

// Init creates the logger and installs it as the slog default.
func Init(cfg Config) (io.Closer, error) {
	l, closer, err := New(cfg)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(l)

	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
