package provision

import (
	"io"
	"log/slog"
	"strings"
)

// LogLevelEnv selects the handler log level.
const LogLevelEnv = "LOG_LEVEL"

// NewLogger returns a JSON logger writing to w. Unrecognized levels fall back to info.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		l = slog.LevelDebug
	case "warn", "warning":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: l}))
}
