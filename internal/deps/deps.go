// Package deps reports the availability of external binaries the daemon
// shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"recap/internal/config"
)

// Requirement defines an external dependency the daemon relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// Default returns the dependency set for the given configuration. The JS
// runtime is optional: yt-dlp only needs it for player challenge solving.
func Default(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "yt-dlp",
			Command:     cfg.YtdlpBinary(),
			Description: "subtitle extraction",
		},
		{
			Name:        "js runtime",
			Command:     cfg.Subtitles.JSRuntime,
			Description: "player challenge solving",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
