package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunScript(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "docproxy.toml", "[logging]\nlevel = \"error\"\n\n[profile]\nkeyboard_type = \"url\"\n")
	script := writeFile(t, dir, "edit.lua", `
local ks = require("ks")
ks.doc.insert(".example")
ks.doc.set_return_key("go")
print("before: " .. ks.doc.before())
print("length: " .. ks.text.length(ks.doc.before()))
`)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-c", cfg, "-text", "www", "-s", script}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{
		"before: www.example\n",
		"length: 11\n",
		"text: \"www.example\"\n",
		"keyboard_type: url\n",
		"return_key_type: go\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunScriptError(t *testing.T) {
	script := writeFile(t, t.TempDir(), "bad.lua", `error("boom")`)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-script", script}, &stdout, &stderr)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "boom") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunWithoutScript(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-text", "plain", "-log-level", "error"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "text: \"plain\"\n") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunFlagErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unknown flag", []string{"-nope"}, 2},
		{"bad log level", []string{"-log-level", "loud"}, 2},
		{"trace log level", []string{"-log-level", "trace", "-text", "x"}, 0},
		{"disabled log level", []string{"-log-level", "disabled", "-text", "x"}, 0},
		{"upper case log level", []string{"-log-level", "WARNING", "-text", "x"}, 0},
		{"watch without config", []string{"-watch"}, 2},
		{"help", []string{"-h"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(context.Background(), tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("exit code = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "docproxy.yaml", "profile:\n  return_key_type: launch\n")

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-config", cfg}, &stdout, &stderr); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "docproxy dev") {
		t.Errorf("stdout = %q", stdout.String())
	}
}
