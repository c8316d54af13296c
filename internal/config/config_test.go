package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"recap/internal/config"
)

func TestLoadDefaultsWhenNoFilePresent(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("RECAP_LLM_API_KEY", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Paths.LogDir != filepath.Join(tempHome, ".local", "share", "recap", "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Paths.APIBind != "127.0.0.1:8321" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.Subtitles.DefaultLangs != "ru,ru-orig" {
		t.Fatalf("unexpected default langs: %q", cfg.Subtitles.DefaultLangs)
	}
	if !cfg.Subtitles.ManualMode {
		t.Fatal("expected manual mode on by default")
	}
	if cfg.Subtitles.IncludeRegularSubs {
		t.Fatal("expected regular subs off by default")
	}
	if cfg.Cache.TTLSeconds != 900 {
		t.Fatalf("unexpected cache ttl: %d", cfg.Cache.TTLSeconds)
	}
	if cfg.LLM.Model != "openai/gpt-4o-mini" {
		t.Fatalf("unexpected model: %q", cfg.LLM.Model)
	}
}

func TestLoadReadsFileAndStripsLanguageWhitespace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[subtitles]
default_langs = "en, en-orig"
cookies_path = ""

[cache]
ttl_seconds = 0

[llm]
api_key = "file-key"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q to be used, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Subtitles.DefaultLangs != "en,en-orig" {
		t.Fatalf("expected whitespace stripped, got %q", cfg.Subtitles.DefaultLangs)
	}
	if cfg.Cache.TTLSeconds != 0 {
		t.Fatalf("expected zero ttl preserved, got %d", cfg.Cache.TTLSeconds)
	}
	if cfg.LLM.APIKey != "file-key" {
		t.Fatalf("unexpected api key: %q", cfg.LLM.APIKey)
	}
}

func TestLoadHonoursEnvAPIKeyFallback(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("RECAP_LLM_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "env-key")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Fatalf("expected env fallback key, got %q", cfg.LLM.APIKey)
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for log format")
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty sample config")
	}
}
