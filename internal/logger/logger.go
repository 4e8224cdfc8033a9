package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/polkiloo/storefront/internal/config"
)

// New creates a preconfigured slog.Logger. Debug mode lowers the level to debug.
func New(cfg *config.Config) *slog.Logger {
	return newWithWriter(os.Stdout, cfg.Debug)
}

func newWithWriter(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("service", "storefront"))
}
