package subtitles

import (
	"strings"

	"recap/internal/config"
)

// NormalizeLangs resolves a raw language preference string to the list handed
// to yt-dlp. Empty, whitespace-only, and legacy sentinel-default input all
// collapse to the configured default list; anything else passes through with
// internal whitespace removed. Normalization is reproducible, so the result
// doubles as the language component of a request's cache identity.
func NormalizeLangs(cfg config.Subtitles, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == config.SentinelLangs {
		return cfg.DefaultLangs
	}
	return strings.ReplaceAll(raw, " ", "")
}

// FallbackLangs returns the configured fallback language list with whitespace
// removed.
func FallbackLangs(cfg config.Subtitles) string {
	return strings.ReplaceAll(cfg.FallbackLangs, " ", "")
}
