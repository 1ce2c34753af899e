package logging

import (
	"log/slog"
	"strings"

	"github.com/giygas/myoncologist-api/config"
)

// parseLogLevel maps a LOG_LEVEL value to a slog level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetConsoleLogLevel picks the console level. An explicit LOG_LEVEL wins,
// except under test where the console stays at error to keep output quiet.
func GetConsoleLogLevel(env config.Environment, level string) slog.Level {
	if env == config.EnvTest {
		return slog.LevelError
	}

	if level != "" {
		return parseLogLevel(level)
	}

	switch env {
	case config.EnvProduction, config.EnvStaging:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// GetFileLogLevel returns the level for the rotating file, which keeps everything.
func GetFileLogLevel() slog.Level {
	return slog.LevelDebug
}
