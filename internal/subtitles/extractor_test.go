package subtitles

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recap/internal/services"
)

func TestExtractReadsProducedVTT(t *testing.T) {
	workdir := t.TempDir()
	runner := NewRunner(testSubtitlesConfig(), "yt-dlp", nil)
	runner.WithExecutor(func(_ context.Context, dir string, command []string) (string, error) {
		if dir != workdir {
			t.Fatalf("executor workdir = %q, want %q", dir, workdir)
		}
		if command[0] != "yt-dlp" {
			t.Fatalf("command[0] = %q, want yt-dlp", command[0])
		}
		writeFile(t, filepath.Join(dir, "abc.ru.vtt"), "WEBVTT\n\nHello\n")
		return "some progress output", nil
	})

	attempt, err := runner.Extract(context.Background(), workdir, CommandOptions{URL: "u", Langs: "ru"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if attempt.Text != "WEBVTT\n\nHello\n" {
		t.Fatalf("text = %q", attempt.Text)
	}
	if attempt.Stderr != "some progress output" {
		t.Fatalf("stderr = %q", attempt.Stderr)
	}
}

func TestExtractPrefersVTTOverSRT(t *testing.T) {
	workdir := t.TempDir()
	runner := NewRunner(testSubtitlesConfig(), "yt-dlp", nil)
	runner.WithExecutor(func(_ context.Context, dir string, _ []string) (string, error) {
		writeFile(t, filepath.Join(dir, "abc.srt"), "srt content")
		writeFile(t, filepath.Join(dir, "abc.vtt"), "vtt content")
		return "", nil
	})

	attempt, err := runner.Extract(context.Background(), workdir, CommandOptions{URL: "u", Langs: "ru"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if attempt.Text != "vtt content" {
		t.Fatalf("text = %q, want vtt content", attempt.Text)
	}
}

func TestExtractNoFileIsNotAnError(t *testing.T) {
	workdir := t.TempDir()
	runner := NewRunner(testSubtitlesConfig(), "yt-dlp", nil)
	runner.WithExecutor(func(context.Context, string, []string) (string, error) {
		return "", nil
	})

	attempt, err := runner.Extract(context.Background(), workdir, CommandOptions{URL: "u", Langs: "ru"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if attempt.Text != "" {
		t.Fatalf("text = %q, want empty", attempt.Text)
	}
}

func TestExtractCommandFailure(t *testing.T) {
	workdir := t.TempDir()
	runner := NewRunner(testSubtitlesConfig(), "yt-dlp", nil)
	runner.WithExecutor(func(context.Context, string, []string) (string, error) {
		return "ERROR: unable to download", errors.New("exit status 1")
	})

	attempt, err := runner.Extract(context.Background(), workdir, CommandOptions{URL: "u", Langs: "ru"})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("error = %v, want ErrExternalTool", err)
	}
	if !strings.Contains(err.Error(), "yt-dlp") {
		t.Fatalf("error should include the command, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "unable to download") {
		t.Fatalf("error should include stderr, got %q", err.Error())
	}
	if attempt.Stderr != "ERROR: unable to download" {
		t.Fatalf("stderr = %q", attempt.Stderr)
	}
	if len(attempt.Command) == 0 {
		t.Fatal("failed attempt should still report its command")
	}
}

func TestExtractReplacesInvalidUTF8(t *testing.T) {
	workdir := t.TempDir()
	runner := NewRunner(testSubtitlesConfig(), "yt-dlp", nil)
	runner.WithExecutor(func(_ context.Context, dir string, _ []string) (string, error) {
		if err := os.WriteFile(filepath.Join(dir, "abc.vtt"), []byte{'o', 'k', 0xff, 0xfe}, 0o644); err != nil {
			t.Fatal(err)
		}
		return "", nil
	})

	attempt, err := runner.Extract(context.Background(), workdir, CommandOptions{URL: "u", Langs: "ru"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.HasPrefix(attempt.Text, "ok") {
		t.Fatalf("text = %q", attempt.Text)
	}
	if strings.ContainsRune(attempt.Text, 0xff) {
		t.Fatal("invalid bytes should be replaced")
	}
}

func TestExtractStagesCookies(t *testing.T) {
	source := filepath.Join(t.TempDir(), "cookies.txt")
	writeFile(t, source, "# Netscape HTTP Cookie File\n")

	cfg := testSubtitlesConfig()
	cfg.CookiesPath = source

	workdir := t.TempDir()
	var captured []string
	runner := NewRunner(cfg, "yt-dlp", nil)
	runner.WithExecutor(func(_ context.Context, _ string, command []string) (string, error) {
		captured = command
		return "", nil
	})

	if _, err := runner.Extract(context.Background(), workdir, CommandOptions{URL: "u", Langs: "ru"}); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := filepath.Join(workdir, "cookies.txt")
	if got := argValue(captured, "--cookies"); got != want {
		t.Fatalf("--cookies = %q, want %q", got, want)
	}
}

func TestTail(t *testing.T) {
	if got := tail("hello", 10); got != "hello" {
		t.Fatalf("tail short = %q", got)
	}
	if got := tail("abcdef", 3); got != "def" {
		t.Fatalf("tail = %q, want def", got)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
