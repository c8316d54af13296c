package subtitles

import (
	"reflect"
	"strings"
	"testing"

	"recap/internal/config"
)

func testSubtitlesConfig() config.Subtitles {
	cfg := config.Default().Subtitles
	return cfg
}

func TestBuildCommandBaseShape(t *testing.T) {
	cfg := testSubtitlesConfig()
	cmd := BuildCommand("yt-dlp", cfg, CommandOptions{URL: "https://youtu.be/abc", Langs: "ru,ru-orig"})

	want := []string{
		"yt-dlp",
		"--write-auto-subs",
		"--sub-langs", "ru,ru-orig",
		"--skip-download",
		"--ignore-no-formats-error",
		"--js-runtimes", "node",
		"--remote-components", "ejs:github",
		"--extractor-args", "youtube:player_client=web",
		"-o", "%(id)s.%(ext)s",
		"https://youtu.be/abc",
	}
	if !reflect.DeepEqual(cmd, want) {
		t.Fatalf("BuildCommand = %v, want %v", cmd, want)
	}
}

func TestBuildCommandNormalizesLangs(t *testing.T) {
	cfg := testSubtitlesConfig()

	cmd := BuildCommand("yt-dlp", cfg, CommandOptions{URL: "u", Langs: ""})
	if got := argValue(cmd, "--sub-langs"); got != cfg.DefaultLangs {
		t.Fatalf("empty langs resolved to %q, want default %q", got, cfg.DefaultLangs)
	}

	cmd = BuildCommand("yt-dlp", cfg, CommandOptions{URL: "u", Langs: "ru,en"})
	if got := argValue(cmd, "--sub-langs"); got != cfg.DefaultLangs {
		t.Fatalf("sentinel langs resolved to %q, want default %q", got, cfg.DefaultLangs)
	}

	cmd = BuildCommand("yt-dlp", cfg, CommandOptions{URL: "u", Langs: "de, de-orig"})
	if got := argValue(cmd, "--sub-langs"); got != "de,de-orig" {
		t.Fatalf("langs = %q, want whitespace stripped", got)
	}
}

func TestBuildCommandManualModeSuppressesRegularSubs(t *testing.T) {
	cfg := testSubtitlesConfig()
	cfg.IncludeRegularSubs = true
	cfg.ManualMode = true

	cmd := BuildCommand("yt-dlp", cfg, CommandOptions{URL: "u", Langs: "en"})
	if contains(cmd, "--write-subs") {
		t.Fatalf("manual mode must suppress --write-subs, got %v", cmd)
	}

	// An explicit override true wins over manual mode.
	cmd = BuildCommand("yt-dlp", cfg, CommandOptions{URL: "u", Langs: "en", IncludeRegular: boolPtr(true)})
	if !contains(cmd, "--write-subs") {
		t.Fatalf("override true must force --write-subs, got %v", cmd)
	}
	if cmd[2] != "--write-subs" {
		t.Fatalf("--write-subs must follow --write-auto-subs, got %v", cmd)
	}
}

func TestBuildCommandRegularSubsWithoutManualMode(t *testing.T) {
	cfg := testSubtitlesConfig()
	cfg.IncludeRegularSubs = true
	cfg.ManualMode = false

	cmd := BuildCommand("yt-dlp", cfg, CommandOptions{URL: "u", Langs: "en"})
	if !contains(cmd, "--write-subs") {
		t.Fatalf("expected --write-subs when regular subs enabled outside manual mode, got %v", cmd)
	}

	cmd = BuildCommand("yt-dlp", cfg, CommandOptions{URL: "u", Langs: "en", IncludeRegular: boolPtr(false)})
	if contains(cmd, "--write-subs") {
		t.Fatalf("override false must drop --write-subs, got %v", cmd)
	}
}

func TestBuildCommandCookies(t *testing.T) {
	cfg := testSubtitlesConfig()

	cmd := BuildCommand("yt-dlp", cfg, CommandOptions{URL: "u", Langs: "en"})
	if contains(cmd, "--cookies") {
		t.Fatalf("no cookie path configured but --cookies present: %v", cmd)
	}

	cmd = BuildCommand("yt-dlp", cfg, CommandOptions{URL: "u", Langs: "en", CookiesPath: "/tmp/work/cookies.txt"})
	if got := argValue(cmd, "--cookies"); got != "/tmp/work/cookies.txt" {
		t.Fatalf("cookie arg = %q, want exact prepared path", got)
	}
}

func TestBuildCommandEndsWithOutputTemplateAndURL(t *testing.T) {
	cfg := testSubtitlesConfig()
	cmd := BuildCommand("yt-dlp", cfg, CommandOptions{URL: "https://example.com/v", Langs: "en", CookiesPath: "/c"})
	n := len(cmd)
	if n < 3 || cmd[n-3] != "-o" || cmd[n-2] != "%(id)s.%(ext)s" || cmd[n-1] != "https://example.com/v" {
		t.Fatalf("command tail malformed: %v", cmd[max(0, n-3):])
	}
}

func argValue(cmd []string, flag string) string {
	for i, arg := range cmd {
		if arg == flag && i+1 < len(cmd) {
			return cmd[i+1]
		}
	}
	return ""
}

func contains(cmd []string, flag string) bool {
	for _, arg := range cmd {
		if arg == flag {
			return true
		}
	}
	return false
}

func TestNormalizeLangsIdentity(t *testing.T) {
	cfg := testSubtitlesConfig()
	cases := []struct{ in, want string }{
		{"", cfg.DefaultLangs},
		{"   ", cfg.DefaultLangs},
		{"ru,en", cfg.DefaultLangs},
		{"en, en-orig", "en,en-orig"},
		{"pt", "pt"},
	}
	for _, tc := range cases {
		if got := NormalizeLangs(cfg, tc.in); got != tc.want {
			t.Fatalf("NormalizeLangs(%q) = %q, want %q", tc.in, got, tc.want)
		}
		// Reproducible: same input, same key.
		if got := NormalizeLangs(cfg, tc.in); got != tc.want {
			t.Fatalf("NormalizeLangs(%q) second call = %q", tc.in, got)
		}
	}
	if strings.Contains(NormalizeLangs(cfg, "a, b , c"), " ") {
		t.Fatal("internal whitespace must be removed")
	}
}
