package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSubtitles(); err != nil {
		return err
	}
	c.normalizeLLM()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	c.Paths.HistoryDB = strings.TrimSpace(c.Paths.HistoryDB)
	if c.Paths.HistoryDB != "" {
		if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
			return fmt.Errorf("paths.history_db: %w", err)
		}
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	return nil
}

func (c *Config) normalizeSubtitles() error {
	c.Subtitles.Binary = strings.TrimSpace(c.Subtitles.Binary)
	if c.Subtitles.Binary == "" {
		c.Subtitles.Binary = defaultYtdlpBinary
	}
	c.Subtitles.DefaultLangs = stripSpaces(c.Subtitles.DefaultLangs)
	if c.Subtitles.DefaultLangs == "" {
		c.Subtitles.DefaultLangs = defaultSubLangs
	}
	c.Subtitles.FallbackLangs = stripSpaces(c.Subtitles.FallbackLangs)
	c.Subtitles.JSRuntime = strings.TrimSpace(c.Subtitles.JSRuntime)
	if c.Subtitles.JSRuntime == "" {
		c.Subtitles.JSRuntime = defaultJSRuntime
	}
	c.Subtitles.RemoteComponents = strings.TrimSpace(c.Subtitles.RemoteComponents)
	if c.Subtitles.RemoteComponents == "" {
		c.Subtitles.RemoteComponents = defaultRemoteComponents
	}
	c.Subtitles.ExtractorArgs = strings.TrimSpace(c.Subtitles.ExtractorArgs)
	if c.Subtitles.ExtractorArgs == "" {
		c.Subtitles.ExtractorArgs = defaultExtractorArgs
	}
	c.Subtitles.CookiesPath = strings.TrimSpace(c.Subtitles.CookiesPath)
	if c.Subtitles.CookiesPath != "" {
		expanded, err := expandPath(c.Subtitles.CookiesPath)
		if err != nil {
			return fmt.Errorf("subtitles.cookies_path: %w", err)
		}
		c.Subtitles.CookiesPath = expanded
	}
	return nil
}

func (c *Config) normalizeLLM() {
	if c.LLM.APIKey == "" {
		for _, key := range []string{"RECAP_LLM_API_KEY", "OPENROUTER_API_KEY"} {
			if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
				c.LLM.APIKey = strings.TrimSpace(value)
				break
			}
		}
	}
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func stripSpaces(value string) string {
	return strings.ReplaceAll(strings.TrimSpace(value), " ", "")
}
