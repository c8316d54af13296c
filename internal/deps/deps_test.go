package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"recap/internal/config"
)

func TestCheckBinariesMissing(t *testing.T) {
	results := CheckBinaries([]Requirement{
		{Name: "phantom", Command: "definitely-not-a-real-binary-12345"},
	})
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if results[0].Available {
		t.Fatal("missing binary should be unavailable")
	}
	if results[0].Detail == "" {
		t.Fatal("missing binary should carry a detail message")
	}
}

func TestCheckBinariesUnconfigured(t *testing.T) {
	results := CheckBinaries([]Requirement{{Name: "empty"}})
	if results[0].Available {
		t.Fatal("unconfigured command should be unavailable")
	}
	if results[0].Detail != "command not configured" {
		t.Fatalf("detail = %q", results[0].Detail)
	}
}

func TestCheckBinariesFound(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH layout differs on windows")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "fake-tool")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)

	results := CheckBinaries([]Requirement{{Name: "fake", Command: "fake-tool"}})
	if !results[0].Available {
		t.Fatalf("expected fake-tool to be found: %+v", results[0])
	}
}

func TestDefaultRequirements(t *testing.T) {
	cfg := config.Default()
	reqs := Default(&cfg)
	if len(reqs) != 2 {
		t.Fatalf("requirements = %d, want 2", len(reqs))
	}
	if reqs[0].Command != "yt-dlp" || reqs[0].Optional {
		t.Fatalf("first requirement = %+v", reqs[0])
	}
	if !reqs[1].Optional {
		t.Fatal("js runtime should be optional")
	}
}
