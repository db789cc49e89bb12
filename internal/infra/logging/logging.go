// Package logging configures the process-wide slog default logger.
package logging

import (
	"log/slog"
	"os"
)

// SetupJSON installs a JSON handler at the given level as slog's default.
// Used by the service binaries; log collection expects one JSON object
// per line on stdout.
func SetupJSON(level slog.Level) {
	slog.SetDefault(slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}),
	))
}

// SetupText installs a human-readable handler, for local runs and tools.
func SetupText(level slog.Level) {
	slog.SetDefault(slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	))
}
