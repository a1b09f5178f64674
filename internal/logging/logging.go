// Package logging configures the structured logger used by the bump command.
//
// Logs are JSON lines on stderr carrying the module name and version of the
// tool. Debug logs also carry the source location. The level comes from the
// --log-level flag or the LOG_LEVEL environment variable and defaults to warn,
// so a normal run prints nothing but its summary.
//
//	logging.SetDefaultStructuredLoggerWithLevel("bump", Version, "debug")
//	slog.Debug("bumped file", "path", path)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// DefaultLevel is used when no level is configured or the level is not recognised.
const DefaultLevel = slog.LevelWarn

// ParseLogLevel converts a case-insensitive level name to a slog.Level.
// "warning" is accepted for warn. Unknown names map to DefaultLevel.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return DefaultLevel
	}
}

// NewStructuredLogger returns a JSON logger on stderr tagged with module and version.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	return newLogger(os.Stderr, module, version, ParseLogLevel(level))
}

func newLogger(w io.Writer, module, version string, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: level <= slog.LevelDebug,
		Level:     level,
	})
	return slog.New(h).With(
		slog.String("module", module),
		slog.String("version", version),
	)
}

// SetDefaultStructuredLogger installs a structured logger as the slog default
// with its level taken from the LOG_LEVEL environment variable.
func SetDefaultStructuredLogger(module, version string) {
	SetDefaultStructuredLoggerWithLevel(module, version, os.Getenv("LOG_LEVEL"))
}

// SetDefaultStructuredLoggerWithLevel installs a structured logger with an
// explicit level as the slog default.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(module, version, level))
}
