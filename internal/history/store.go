// Package history keeps a journal of descriptor saves in sqlite so that a
// save can be undone by restoring the text the file had before it.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

// Entry is one save of one descriptor file.
type Entry struct {
	ID    string
	Path  string
	Label string

	// Before is the file content prior to the save. HadBefore is false
	// when the save created the file.
	Before    string
	HadBefore bool
	After     string

	SavedAt     time.Time
	ReloadError string
}

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal at path and migrates it.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		db.Close() //nolint:errcheck
		return nil, err
	}
	if err := os.Chmod(path, 0o600); err != nil && !errors.Is(err, os.ErrNotExist) {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("chmod history db: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores e, filling in ID and SavedAt when they are empty.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.Path == "" {
		return Entry{}, fmt.Errorf("path is required")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.SavedAt.IsZero() {
		e.SavedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO saves(id, path, label, before_text, after_text, had_before, saved_at, reload_error)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, e.ID, e.Path, e.Label, e.Before, e.After, boolToInt(e.HadBefore), ts(e.SavedAt), e.ReloadError)
	if err != nil {
		return Entry{}, fmt.Errorf("record save: %w", err)
	}
	return e, nil
}

// SetReloadError attaches a reload failure to an entry recorded earlier.
func (s *Store) SetReloadError(ctx context.Context, id, msg string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE saves SET reload_error = ? WHERE id = ?`, msg, id)
	if err != nil {
		return fmt.Errorf("set reload error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set reload error: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns saves of path, newest first. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, path string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, path, label, before_text, after_text, had_before, saved_at, reload_error
FROM saves
WHERE path = ?
ORDER BY saved_at DESC, rowid DESC
LIMIT ?
`, path, limit)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saves: %w", err)
	}
	return out, nil
}

// Latest returns the most recent save of path.
func (s *Store) Latest(ctx context.Context, path string) (Entry, error) {
	entries, err := s.List(ctx, path, 1)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, ErrNotFound
	}
	return entries[0], nil
}

// Prune deletes all but the newest keep saves of path and reports how many
// rows went away. keep <= 0 disables pruning.
func (s *Store) Prune(ctx context.Context, path string, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx, `
DELETE FROM saves
WHERE path = ? AND id NOT IN (
	SELECT id FROM saves WHERE path = ? ORDER BY saved_at DESC, rowid DESC LIMIT ?
)
`, path, path, keep)
	if err != nil {
		return 0, fmt.Errorf("prune saves: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune saves: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		e         Entry
		hadBefore int
		savedAt   string
	)
	if err := row.Scan(&e.ID, &e.Path, &e.Label, &e.Before, &e.After, &hadBefore, &savedAt, &e.ReloadError); err != nil {
		return Entry{}, fmt.Errorf("scan save: %w", err)
	}
	t, err := parseTS(savedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("parse saved_at: %w", err)
	}
	e.SavedAt = t
	e.HadBefore = hadBefore != 0
	return e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// tsLayout is fixed width so saved_at sorts as text.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

func ts(t time.Time) string {
	return t.UTC().Format(tsLayout)
}

func parseTS(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
