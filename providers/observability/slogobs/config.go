package slogobs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces the environment variables read by this package.
// CALCLOGIC_LOG_LEVEL wins over LOG_LEVEL, CALCLOGIC_LOG_FORMAT over LOG_FORMAT.
const EnvPrefix = "CALCLOGIC"

// LevelTrace sits below slog.LevelDebug and is filtered out unless requested.
const LevelTrace = slog.LevelDebug - 4

// envConfig is decoded by envconfig; an explicit tag makes envconfig fall
// back to the unprefixed name when the prefixed variable is unset.
type envConfig struct {
	Level  string `envconfig:"LOG_LEVEL"`
	Format string `envconfig:"LOG_FORMAT"`
}

func loadEnv() envConfig {
	var cfg envConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: reading %s_* environment: %v\n", EnvPrefix, err)
		return envConfig{}
	}
	return cfg
}

// GetLogLevelFromEnv returns the level configured in CALCLOGIC_LOG_LEVEL or
// LOG_LEVEL, defaulting to INFO.
func GetLogLevelFromEnv() slog.Level {
	level := loadEnv().Level
	if strings.TrimSpace(level) == "" {
		return slog.LevelInfo
	}
	return ParseLogLevel(level)
}

// GetFormatFromEnv returns the format configured in CALCLOGIC_LOG_FORMAT or
// LOG_FORMAT, defaulting to FormatCompact.
func GetFormatFromEnv() Format {
	return ParseFormat(loadEnv().Format)
}

// ParseLogLevel parses TRACE, DEBUG, INFO, WARN/WARNING or ERROR, ignoring
// case and surrounding whitespace. Unknown values yield INFO; a non-empty
// unknown value also prints a warning to stderr.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return slog.LevelDebug
	case "INFO", "":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		fmt.Fprintf(os.Stderr, "Warning: Unknown log level '%s', using INFO\n", level)
		return slog.LevelInfo
	}
}

// levelString maps a level to its five-letter-or-less label.
func levelString(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return "TRACE"
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}
