package app

import (
	"log/slog"
	"os"
)

// NewLogger returns a slog.Logger matching the configured format. The
// default "pretty" format keeps source locations for local development,
// "text" drops them for compact output, and "json" is for log shippers.
func NewLogger(cfg *Config) *slog.Logger {
	format := "pretty"
	if cfg != nil && cfg.LogFormat != "" {
		format = cfg.LogFormat
	}
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	case "text":
		return slog.New(slog.NewTextHandler(os.Stdout, nil))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{AddSource: true}))
	}
}
