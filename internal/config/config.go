package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory, database, and bind address configuration.
type Paths struct {
	LogDir    string `toml:"log_dir"`
	WorkDir   string `toml:"work_dir"`
	HistoryDB string `toml:"history_db"`
	APIBind   string `toml:"api_bind"`
	APIToken  string `toml:"api_token"`
}

// Subtitles contains configuration for subtitle extraction via yt-dlp.
type Subtitles struct {
	Binary                 string `toml:"binary"`
	DefaultLangs           string `toml:"default_langs"`
	FallbackLangs          string `toml:"fallback_langs"`
	ManualMode             bool   `toml:"manual_mode"`
	IncludeRegularSubs     bool   `toml:"include_regular_subs"`
	FallbackRegularOnEmpty bool   `toml:"fallback_regular_on_empty"`
	FallbackLangsOnEmpty   bool   `toml:"fallback_langs_on_empty"`
	CookiesPath            string `toml:"cookies_path"`
	JSRuntime              string `toml:"js_runtime"`
	RemoteComponents       string `toml:"remote_components"`
	ExtractorArgs          string `toml:"extractor_args"`
	KeepWorkDirs           bool   `toml:"keep_workdirs"`
	Debug                  bool   `toml:"debug"`
}

// Cache contains configuration for the analysis result cache.
type Cache struct {
	TTLSeconds int `toml:"ttl_seconds"`
}

// TTL returns the entry lifetime as a duration. Non-positive means caching
// is disabled.
func (c Cache) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// LLM contains connection settings for the summarization service.
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for recap.
//
// Sections by subsystem:
//   - Paths: directories, history database, and API bind address
//   - Subtitles: yt-dlp invocation shape, language lists, fallback toggles
//   - Cache: analysis result cache TTL (zero or negative disables caching)
//   - LLM: summarization service connection settings
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Subtitles Subtitles `toml:"subtitles"`
	Cache     Cache     `toml:"cache"`
	LLM       LLM       `toml:"llm"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/recap/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized. When no file exists at the
// resolved location the defaults are returned with exists=false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("recap.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir, c.Paths.WorkDir}
	if strings.TrimSpace(c.Paths.HistoryDB) != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.HistoryDB))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// YtdlpBinary returns the subtitle extraction executable name.
func (c *Config) YtdlpBinary() string {
	if strings.TrimSpace(c.Subtitles.Binary) != "" {
		return c.Subtitles.Binary
	}
	return defaultYtdlpBinary
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// LLMConfig contains the summarizer connection settings as an immutable snapshot.
type LLMConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
}

// GetLLM returns the summarizer connection settings.
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		APIKey:         strings.TrimSpace(c.LLM.APIKey),
		BaseURL:        strings.TrimSpace(c.LLM.BaseURL),
		Model:          strings.TrimSpace(c.LLM.Model),
		Referer:        strings.TrimSpace(c.LLM.Referer),
		Title:          strings.TrimSpace(c.LLM.Title),
		TimeoutSeconds: c.LLM.TimeoutSeconds,
	}
}
