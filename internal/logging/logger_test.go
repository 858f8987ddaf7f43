package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dshills/docproxy/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.name); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValidLevel(t *testing.T) {
	for _, name := range Levels {
		if !ValidLevel(name) {
			t.Errorf("ValidLevel(%q) = false", name)
		}
		if !ValidLevel(strings.ToUpper(name)) {
			t.Errorf("ValidLevel(%q) = false", strings.ToUpper(name))
		}
	}
	for _, name := range []string{"", "verbose", "loud"} {
		if ValidLevel(name) {
			t.Errorf("ValidLevel(%q) = true", name)
		}
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.Logging{Level: "warn", Format: "json"}, &buf)

	log.Info().Msg("hidden")
	log.Warn().Str("op", "insert_text").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if entry["message"] != "shown" || entry["op"] != "insert_text" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.Logging{Level: "debug", Format: "console"}, &buf)

	log.Debug().Msg("document proxy call degraded")

	if !strings.Contains(buf.String(), "document proxy call degraded") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	t.Setenv(EnvFormat, "xml")

	cfg := FromEnv(config.Logging{Level: "info", Format: "json"})

	if cfg.Level != "debug" {
		t.Errorf("Level = %q", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, unknown formats should be ignored", cfg.Format)
	}
}
