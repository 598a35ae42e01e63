package telemetry

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, false)
	l.Info("app.start", map[string]any{"session": "abc", "workers": 4})
	l.Debug("dropped.at.info", nil)
	l.With(map[string]any{"slug": "two-sum"}).Error("dispatch.request_failed", map[string]any{"error": "boom"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if first["msg"] != "app.start" || first["session"] != "abc" || first["level"] != "info" {
		t.Fatalf("unexpected entry %#v", first)
	}
	var second map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatal(err)
	}
	if second["slug"] != "two-sum" || second["error"] != "boom" {
		t.Fatalf("expected inherited fields, got %#v", second)
	}
}

func TestNewCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "leetui.log")
	l, err := New(path, true)
	if err != nil {
		t.Fatal(err)
	}
	l.Debug("debug.on", map[string]any{"n": 1})
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"debug.on"`) {
		t.Fatalf("expected debug entry, got %q", b)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Info("x", nil)
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
}
