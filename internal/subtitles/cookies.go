package subtitles

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"recap/internal/logging"
)

const cookieFileName = "cookies.txt"

// PrepareCookies stages the configured cookie file into the scratch directory
// and returns the staged path. yt-dlp tries to persist refreshed cookies back
// to the file it was given, which fails when the source sits on a read-only
// mount, so each request works on its own writable copy.
//
// An unconfigured, missing, or directory path yields an empty result and no
// error; only a failed copy is reported.
func PrepareCookies(sourcePath, workdir string, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if sourcePath == "" {
		logger.Debug("cookies path is not configured")
		return "", nil
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		logger.Debug("cookies file does not exist", logging.String("path", sourcePath))
		return "", nil
	}
	if info.IsDir() {
		logger.Debug("cookies path points to a directory, expected file", logging.String("path", sourcePath))
		return "", nil
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return "", fmt.Errorf("read cookies file: %w", err)
	}
	staged := filepath.Join(workdir, cookieFileName)
	if err := os.WriteFile(staged, data, 0o600); err != nil {
		return "", fmt.Errorf("stage cookies file: %w", err)
	}

	logger.Debug("copied cookies file to scratch path", logging.String("path", staged))
	return staged, nil
}
