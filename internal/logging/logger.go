// Package logging builds the zerolog logger shared by docproxy components.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/docproxy/internal/config"
)

// Environment variables that override the configured logging settings.
const (
	EnvLevel  = "DOCPROXY_LOG_LEVEL"
	EnvFormat = "DOCPROXY_LOG_FORMAT"
)

// Levels lists the level names ParseLevel recognizes.
var Levels = []string{"trace", "debug", "info", "warn", "warning", "error", "disabled", "off"}

// ParseLevel converts a level name to a zerolog level.
// Unknown names fall back to info.
func ParseLevel(name string) zerolog.Level {
	level, _ := lookupLevel(name)
	return level
}

// ValidLevel reports whether name is one of Levels, ignoring case.
func ValidLevel(name string) bool {
	_, ok := lookupLevel(name)
	return ok
}

func lookupLevel(name string) (zerolog.Level, bool) {
	switch strings.ToLower(name) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

// New creates a logger writing to w. A nil w writes to stderr.
func New(cfg config.Logging, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	out := w
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    w != os.Stderr,
		}
	}

	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// FromEnv applies DOCPROXY_LOG_LEVEL and DOCPROXY_LOG_FORMAT to cfg.
func FromEnv(cfg config.Logging) config.Logging {
	if level := os.Getenv(EnvLevel); level != "" {
		cfg.Level = level
	}
	if format := os.Getenv(EnvFormat); format != "" {
		switch format {
		case "json", "console":
			cfg.Format = format
		}
	}
	return cfg
}
