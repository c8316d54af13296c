package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "recap.log")

	logger, err := New(Options{Level: "debug", Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hello", String("component", "test"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"component":"test"`) {
		t.Fatalf("expected component attribute in output, got %q", string(data))
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	for _, input := range []string{"", "verbose", "INFO"} {
		if got := parseLevel(input); got != slog.LevelInfo {
			t.Fatalf("parseLevel(%q) = %v, want info", input, got)
		}
	}
	if got := parseLevel("debug"); got != slog.LevelDebug {
		t.Fatalf("parseLevel(debug) = %v", got)
	}
}

func TestWithContextAddsRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	id, ok := RequestIDFromContext(ctx)
	if !ok || id != "req-123" {
		t.Fatalf("expected request id round trip, got %q ok=%v", id, ok)
	}
	if _, ok := RequestIDFromContext(context.Background()); ok {
		t.Fatal("expected missing request id on fresh context")
	}
}
