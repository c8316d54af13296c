package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"recap/internal/config"
	"recap/internal/services"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(root, "logs")
	cfg.Paths.WorkDir = filepath.Join(root, "work")
	cfg.Paths.HistoryDB = filepath.Join(root, "history", "recap.db")

	store, err := Open(&cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return store
}

func TestRecordAndDescribe(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.Record(ctx, Entry{
		URL:             "https://youtu.be/abc",
		Langs:           "ru,ru-orig",
		Status:          "ok",
		Summary:         "a summary",
		KeyPointCount:   5,
		TranscriptChars: 1234,
		CacheHit:        false,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	entry, err := store.Describe(ctx, id)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if entry.URL != "https://youtu.be/abc" || entry.Status != "ok" {
		t.Fatalf("entry = %+v", entry)
	}
	if entry.KeyPointCount != 5 || entry.TranscriptChars != 1234 {
		t.Fatalf("entry = %+v", entry)
	}
	if entry.CreatedAt.IsZero() {
		t.Fatal("created_at should round-trip")
	}
}

func TestDescribeMissing(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Describe(context.Background(), 42)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, url := range []string{"u1", "u2", "u3"} {
		if _, err := store.Record(ctx, Entry{URL: url, Langs: "ru", Status: "ok"}); err != nil {
			t.Fatalf("Record %s: %v", url, err)
		}
	}

	entries, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].URL != "u3" || entries[1].URL != "u2" {
		t.Fatalf("order = %q, %q", entries[0].URL, entries[1].URL)
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
}

func TestCountAndClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.Record(ctx, Entry{URL: "u", Langs: "ru", Status: "no_subtitles"}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 3 {
		t.Fatalf("removed = %d, want 3", removed)
	}
	count, err = store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Fatalf("count after clear = %d", count)
	}
}

func TestCacheHitRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.Record(ctx, Entry{URL: "u", Langs: "ru", Status: "ok", CacheHit: true})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	entry, err := store.Describe(ctx, id)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if !entry.CacheHit {
		t.Fatal("cache_hit should round-trip")
	}
}
