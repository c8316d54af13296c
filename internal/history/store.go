package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"recap/internal/config"
	"recap/internal/services"
)

// Entry is one recorded analysis.
type Entry struct {
	ID              int64
	URL             string
	Langs           string
	Status          string
	Summary         string
	KeyPointCount   int
	TranscriptChars int
	CacheHit        bool
	CreatedAt       time.Time
}

// Store manages analysis history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database and applies the
// schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.Paths.HistoryDB
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) applySchema(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS analyses (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        url TEXT NOT NULL,
        langs TEXT NOT NULL,
        status TEXT NOT NULL,
        summary TEXT NOT NULL DEFAULT '',
        key_point_count INTEGER NOT NULL DEFAULT 0,
        transcript_chars INTEGER NOT NULL DEFAULT 0,
        cache_hit INTEGER NOT NULL DEFAULT 0,
        created_at TEXT NOT NULL
    )`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Record inserts one completed analysis and returns its identifier.
func (s *Store) Record(ctx context.Context, entry Entry) (int64, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO analyses (
            url, langs, status, summary, key_point_count,
            transcript_chars, cache_hit, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.URL,
		entry.Langs,
		entry.Status,
		entry.Summary,
		entry.KeyPointCount,
		entry.TranscriptChars,
		boolToInt(entry.CacheHit),
		timestamp,
	)
	if err != nil {
		return 0, fmt.Errorf("insert analysis: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// List returns the most recent entries, newest first. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, url, langs, status, summary, key_point_count,
        transcript_chars, cache_hit, created_at
        FROM analyses ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}
	return entries, nil
}

// Describe fetches one entry by identifier.
func (s *Store) Describe(ctx context.Context, id int64) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, url, langs, status, summary, key_point_count,
            transcript_chars, cache_hit, created_at
            FROM analyses WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, services.Wrap(services.ErrNotFound, "history", "describe",
			fmt.Sprintf("analysis %d", id), nil)
	}
	return entry, err
}

// Count returns the number of recorded analyses.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count analyses: %w", err)
	}
	return count, nil
}

// Clear removes all entries and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses`)
	if err != nil {
		return 0, fmt.Errorf("clear analyses: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var entry Entry
	var cacheHit int
	var createdAt string
	err := row.Scan(
		&entry.ID,
		&entry.URL,
		&entry.Langs,
		&entry.Status,
		&entry.Summary,
		&entry.KeyPointCount,
		&entry.TranscriptChars,
		&cacheHit,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("scan analysis: %w", err)
	}
	entry.CacheHit = cacheHit != 0
	if parsed, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
		entry.CreatedAt = parsed
	}
	return entry, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
