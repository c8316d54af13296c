package subtitles

import (
	"context"
	"regexp"
	"strings"

	"recap/internal/logging"
	"recap/internal/services"
)

// botChallengePattern matches the interstitial yt-dlp surfaces when the
// platform demands an interactive sign-in before serving captions. Matched
// against stderr and error text; loose on apostrophe variants because the
// wording has shifted between rollouts.
var botChallengePattern = regexp.MustCompile(`(?i)sign in to confirm (?:you['’]?re|you are) not a bot`)

// IsBotChallenge reports whether tool output indicates an access challenge
// rather than an ordinary extraction failure.
func IsBotChallenge(output string) bool {
	return botChallengePattern.MatchString(output)
}

// ExtractResult aggregates a full fallback ladder run.
type ExtractResult struct {
	// Text is the raw subtitle content of the first attempt that produced
	// any, or empty when every attempt came up dry.
	Text string
	// Stderr is the newline-joined stderr of all attempts made.
	Stderr string
	// Command is the argument vector of the attempt that produced Text, or
	// of the last attempt made when none did.
	Command []string
}

type attemptSpec struct {
	langs          string
	includeRegular *bool
}

// buildAttemptPlan expands the configuration into the ordered ladder of
// extraction attempts. The primary attempt always runs; the rest are gated on
// the fallback toggles, and fallback-language attempts are skipped when the
// fallback list is empty or identical to the primary one. The first
// fallback-language attempt forces regular subtitles off regardless of the
// configured toggle so it mirrors the auto-only primary attempt, leaving the
// forced-on escalation to the final attempt.
func buildAttemptPlan(cfg attemptConfig, langs string) []attemptSpec {
	plan := []attemptSpec{{langs: langs}}
	if cfg.fallbackRegular {
		plan = append(plan, attemptSpec{langs: langs, includeRegular: boolPtr(true)})
	}
	if cfg.fallbackLangsEnabled && cfg.fallbackLangs != "" && cfg.fallbackLangs != langs {
		plan = append(plan, attemptSpec{langs: cfg.fallbackLangs, includeRegular: boolPtr(false)})
		if cfg.fallbackRegular {
			plan = append(plan, attemptSpec{langs: cfg.fallbackLangs, includeRegular: boolPtr(true)})
		}
	}
	return plan
}

type attemptConfig struct {
	fallbackRegular      bool
	fallbackLangsEnabled bool
	fallbackLangs        string
}

// ExtractWithFallback runs the extraction ladder for url inside workdir.
// langs must already be normalized. A failure on the primary attempt is
// fatal: it either signals an access challenge or a broken tool setup, and
// retrying the same URL with different flags will not recover from either.
// Failures on later attempts are logged and swallowed so earlier diagnostics
// survive.
func (r *Runner) ExtractWithFallback(ctx context.Context, workdir, url, langs string) (ExtractResult, error) {
	plan := buildAttemptPlan(attemptConfig{
		fallbackRegular:      r.cfg.FallbackRegularOnEmpty,
		fallbackLangsEnabled: r.cfg.FallbackLangsOnEmpty,
		fallbackLangs:        FallbackLangs(r.cfg),
	}, langs)

	var stderrParts []string
	var lastCommand []string
	for i, spec := range plan {
		attempt, err := r.Extract(ctx, workdir, CommandOptions{
			URL:            url,
			Langs:          spec.langs,
			IncludeRegular: spec.includeRegular,
		})
		if attempt.Stderr != "" {
			stderrParts = append(stderrParts, attempt.Stderr)
		}
		if len(attempt.Command) > 0 {
			lastCommand = attempt.Command
		}
		if err != nil {
			if i == 0 {
				result := ExtractResult{
					Stderr:  strings.Join(stderrParts, "\n"),
					Command: attempt.Command,
				}
				if IsBotChallenge(attempt.Stderr) || IsBotChallenge(err.Error()) {
					return result, services.Wrap(services.ErrBlocked, "extractor", "extract",
						"platform requires interactive sign-in", err)
				}
				return result, err
			}
			r.logger.Warn("fallback extraction attempt failed",
				logging.String("langs", spec.langs),
				logging.Error(err),
			)
			continue
		}
		if strings.TrimSpace(attempt.Text) != "" {
			return ExtractResult{
				Text:    attempt.Text,
				Stderr:  strings.Join(stderrParts, "\n"),
				Command: attempt.Command,
			}, nil
		}
		r.logger.Info("extraction attempt produced no subtitles",
			logging.String("langs", spec.langs),
			logging.Int("attempt", i+1),
		)
	}

	return ExtractResult{
		Stderr:  strings.Join(stderrParts, "\n"),
		Command: lastCommand,
	}, nil
}

func boolPtr(v bool) *bool {
	return &v
}
