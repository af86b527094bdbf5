package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New returns the process logger. Level comes from WIKISITE_LOG_LEVEL
// (debug, info, warn, error); default is info.
func New() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("WIKISITE_LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
