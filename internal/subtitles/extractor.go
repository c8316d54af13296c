package subtitles

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"recap/internal/config"
	"recap/internal/logging"
	"recap/internal/services"
)

// subtitleExtensions lists recognized subtitle file extensions in priority
// order; the first match in the scratch directory wins.
var subtitleExtensions = []string{".vtt", ".srt"}

const stderrTailLimit = 3000

// Attempt captures the outcome of one yt-dlp invocation.
type Attempt struct {
	// Text is the raw subtitle file content, empty when the tool exited
	// cleanly without producing a recognized file.
	Text    string
	Stderr  string
	Command []string
}

// ExecuteFunc runs the supplied command with the scratch directory as its
// working directory and returns the captured standard error stream.
type ExecuteFunc func(ctx context.Context, workdir string, command []string) (string, error)

// Runner drives single extraction attempts against the external tool.
type Runner struct {
	binary  string
	cfg     config.Subtitles
	logger  *slog.Logger
	execute ExecuteFunc
}

// NewRunner constructs a Runner over the given configuration snapshot.
func NewRunner(cfg config.Subtitles, binary string, logger *slog.Logger) *Runner {
	if binary == "" {
		binary = "yt-dlp"
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		binary: binary,
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "extractor"),
	}
}

// WithExecutor sets a custom command executor (for testing).
func (r *Runner) WithExecutor(fn ExecuteFunc) {
	r.execute = fn
}

// Config returns the configuration snapshot the runner was built with.
func (r *Runner) Config() config.Subtitles {
	return r.cfg
}

// CommandPreview returns the argument vector a plain primary attempt would
// use, without staging cookies. Debug reporting only.
func (r *Runner) CommandPreview(url, langs string) []string {
	return BuildCommand(r.binary, r.cfg, CommandOptions{URL: url, Langs: langs})
}

// Extract performs one extraction attempt: cookies are staged, the command is
// built and executed inside workdir, and the directory is scanned for a
// produced subtitle file. A clean exit with no file is not an error; the tool
// reports "no caption track" that way.
func (r *Runner) Extract(ctx context.Context, workdir string, opts CommandOptions) (Attempt, error) {
	cookiesPath, err := PrepareCookies(r.cfg.CookiesPath, workdir, r.logger)
	if err != nil {
		return Attempt{}, services.Wrap(services.ErrConfiguration, "extractor", "prepare cookies", "", err)
	}
	opts.CookiesPath = cookiesPath

	cmd := BuildCommand(r.binary, r.cfg, opts)
	r.logger.Debug("running extraction command",
		logging.String("command", strings.Join(cmd, " ")),
		logging.String("workdir", workdir),
	)

	stderr, runErr := r.run(ctx, workdir, cmd)
	attempt := Attempt{Stderr: stderr, Command: cmd}
	if runErr != nil {
		message := fmt.Sprintf("command failed: %s\n%s", strings.Join(cmd, " "), tail(stderr, stderrTailLimit))
		return attempt, services.Wrap(services.ErrExternalTool, "extractor", "run", message, runErr)
	}

	text, path := scanSubtitleFile(workdir)
	if path == "" {
		r.logger.Debug("no subtitle files found", logging.String("workdir", workdir))
		return attempt, nil
	}
	r.logger.Debug("using subtitle file", logging.String("path", path))
	attempt.Text = text
	return attempt, nil
}

func (r *Runner) run(ctx context.Context, workdir string, command []string) (string, error) {
	if r.execute != nil {
		return r.execute(ctx, workdir, command)
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = workdir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}

// scanSubtitleFile looks for produced subtitle files by extension priority and
// returns the decoded text of the first match. Invalid byte sequences are
// replaced rather than treated as fatal; auto-generated tracks occasionally
// carry them.
func scanSubtitleFile(workdir string) (string, string) {
	for _, ext := range subtitleExtensions {
		matches, err := filepath.Glob(filepath.Join(workdir, "*"+ext))
		if err != nil || len(matches) == 0 {
			continue
		}
		data, err := os.ReadFile(matches[0])
		if err != nil {
			continue
		}
		return strings.ToValidUTF8(string(data), "�"), matches[0]
	}
	return "", ""
}

func tail(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[len(runes)-limit:])
}
