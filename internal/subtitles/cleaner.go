package subtitles

import (
	"regexp"
	"strings"
)

var (
	cueTimingPattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{3}\s+-->\s+\d{2}:\d{2}:\d{2}\.\d{3}`)
	inlineTagPattern = regexp.MustCompile(`<[^>]+>`)
)

var headerPrefixes = []string{"WEBVTT", "Kind:", "Language:"}

// Clean converts raw WebVTT subtitle text into deduplicated plain text.
//
// Header lines, cue timing lines, and inline styling or per-word timing tags
// are removed. A line identical to its immediate predecessor is dropped;
// auto-generated captions scroll, repeating each cue's text in the next cue,
// and adjacent-only deduplication collapses exactly that repetition without
// touching legitimate non-adjacent repeats. Clean is a pure function and is
// idempotent.
func Clean(raw string) string {
	var cleaned []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || hasHeaderPrefix(line) {
			continue
		}
		if cueTimingPattern.MatchString(line) {
			continue
		}
		line = strings.TrimSpace(inlineTagPattern.ReplaceAllString(line, ""))
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}

	deduped := make([]string, 0, len(cleaned))
	prev := ""
	for _, line := range cleaned {
		if line != prev {
			deduped = append(deduped, line)
		}
		prev = line
	}

	return strings.TrimSpace(strings.Join(deduped, "\n"))
}

func hasHeaderPrefix(line string) bool {
	for _, prefix := range headerPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
