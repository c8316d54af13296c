package main

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// statusLabel turns a machine status like "blocked_by_youtube" into a
// display label like "Blocked By Youtube".
func statusLabel(status string) string {
	cleaned := strings.ReplaceAll(strings.TrimSpace(status), "_", " ")
	if cleaned == "" {
		return "Unknown"
	}
	return cases.Title(language.Und).String(cleaned)
}
