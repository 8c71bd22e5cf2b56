package logger

import (
	"log/slog"
	"strings"
)

// Log level and format values accepted in configuration.
const (
	LevelDebug   = "debug"
	LevelInfo    = "info"
	LevelWarn    = "warn"
	LevelWarning = "warning"
	LevelError   = "error"

	FormatJSON = "json"
	FormatText = "text"
)

// DefaultServiceName is attached to every record as the service attribute.
const DefaultServiceName = "shortname"

// Config represents logger configuration
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Format      string // "json", "text"
	ServiceName string
	Version     string
	AddSource   bool
}

// DefaultConfig returns defaults used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Level:       LevelInfo,
		Format:      FormatText,
		ServiceName: DefaultServiceName,
		Version:     "dev",
	}
}

// LogLevel converts the string level to slog.Level
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn, LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsJSON returns true if format is JSON
func (c Config) IsJSON() bool {
	return strings.ToLower(c.Format) == FormatJSON
}

func (c Config) baseAttrs() []any {
	var attrs []any
	if c.ServiceName != "" {
		attrs = append(attrs, "service", c.ServiceName)
	}
	if c.Version != "" {
		attrs = append(attrs, "version", c.Version)
	}
	return attrs
}
