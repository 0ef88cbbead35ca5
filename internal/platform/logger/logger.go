package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Handlers attach request_id
// via middleware; services receive the logger through constructors.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
