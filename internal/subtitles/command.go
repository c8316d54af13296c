package subtitles

import "recap/internal/config"

// CommandOptions carries per-attempt inputs for the yt-dlp argument builder.
type CommandOptions struct {
	URL   string
	Langs string
	// CookiesPath is the prepared scratch-directory cookie file, empty when
	// cookies are not in play for this request.
	CookiesPath string
	// IncludeRegular is a three-valued override for the include_regular_subs
	// toggle: nil leaves the configured value in effect.
	IncludeRegular *bool
}

// BuildCommand assembles the yt-dlp argument vector for one extraction
// attempt. The command always requests auto-generated subtitles, skips the
// media download, and writes subtitle files keyed by the remote video id so
// the runner can find them by extension afterwards.
//
// Regular (human-authored) subtitles are requested only when the toggle
// resolves on and manual mode permits it; every extra track request counts
// against the upstream rate limit, so the default shape stays minimal. The
// orchestrator escalates by passing an explicit override instead of mutating
// configuration.
func BuildCommand(binary string, cfg config.Subtitles, opts CommandOptions) []string {
	langs := NormalizeLangs(cfg, opts.Langs)

	includeRegular := cfg.IncludeRegularSubs
	overrideTrue := false
	if opts.IncludeRegular != nil {
		includeRegular = *opts.IncludeRegular
		overrideTrue = *opts.IncludeRegular
	}

	cmd := make([]string, 0, 20)
	cmd = append(cmd, binary, "--write-auto-subs")
	if includeRegular && (overrideTrue || !cfg.ManualMode) {
		cmd = append(cmd, "--write-subs")
	}
	cmd = append(cmd,
		"--sub-langs", langs,
		"--skip-download",
		"--ignore-no-formats-error",
		"--js-runtimes", cfg.JSRuntime,
		"--remote-components", cfg.RemoteComponents,
		"--extractor-args", cfg.ExtractorArgs,
	)

	if opts.CookiesPath != "" {
		cmd = append(cmd, "--cookies", opts.CookiesPath)
	}

	cmd = append(cmd, "-o", "%(id)s.%(ext)s", opts.URL)
	return cmd
}
