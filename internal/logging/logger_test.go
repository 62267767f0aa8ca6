package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"appxify/internal/converr"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Fatalf("parseLevel(%q): got %v want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "nested", "app.log")

	logger, err := New(Options{Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("converted manifest", slog.String("format", "w3c"))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	line := string(data)
	if !strings.Contains(line, `"msg":"converted manifest"`) {
		t.Fatalf("unexpected log line: %s", line)
	}
	if !strings.Contains(line, `"format":"w3c"`) {
		t.Fatalf("attribute missing: %s", line)
	}
	if !strings.Contains(line, `"level":"info"`) {
		t.Fatalf("level missing: %s", line)
	}
}

func TestJSONHandlerExpandsCatalogErrors(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")

	logger, err := New(Options{Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatal(err)
	}
	logger.Error("conversion failed", slog.Any("error", converr.ManifestNotFound("/tmp/manifest.json")))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	line := string(data)
	if !strings.Contains(line, `"error":{`) {
		t.Fatalf("expected structured error group: %s", line)
	}
	for _, want := range []string{`"code":1`, `"type":"ManifestNotFound"`, `"severity":"ERROR"`, "/tmp/manifest.json"} {
		if !strings.Contains(line, want) {
			t.Fatalf("missing %s in: %s", want, line)
		}
	}
}

func TestConsoleHandlerFormatsAttrs(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "console.log")

	logger, err := New(Options{Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatal(err)
	}
	logger.With(slog.String("slot", "StoreLogo")).Info("resolved icon", slog.String("path", "img/a b.png"))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	line := string(data)
	if !strings.Contains(line, "INFO") || !strings.Contains(line, "resolved icon") {
		t.Fatalf("unexpected line: %s", line)
	}
	if !strings.Contains(line, "slot=StoreLogo") {
		t.Fatalf("with-attr missing: %s", line)
	}
	if !strings.Contains(line, `path="img/a b.png"`) {
		t.Fatalf("quoting missing: %s", line)
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error("should not panic")
}
