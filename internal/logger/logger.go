// Package logger constructs the application's slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/prrkit/prr/internal/config"
)

// New initializes an slog logger from the logging configuration. A nil
// output defaults to stderr, keeping stdout free for review output.
func New(cfg config.LoggingConfig, output io.Writer) *slog.Logger {
	if output == nil {
		output = os.Stderr
	}

	level := new(slog.Level)
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = new(slog.Level)
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})
	default:
		handler = slog.NewTextHandler(output, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}
