package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LevelOff is above every level slog emits, silencing the logger.
const LevelOff = slog.Level(16)

// ParseLevel accepts the level names used in PIBENCH_LOG_LEVEL.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	case "OFF", "NONE":
		return LevelOff, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

// Setup installs a PrettyHandler writing to w as the default logger.
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(NewPrettyHandler(w, PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: level},
	}))
	slog.SetDefault(logger)
	return logger
}
