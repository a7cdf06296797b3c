package launchd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/billie-coop/agentdeck/internal/history"
	"github.com/billie-coop/agentdeck/internal/plist"
	"go.uber.org/zap"
)

// ErrNoDocument is returned when there is nothing to save.
var ErrNoDocument = errors.New("no document loaded")

// Journal records saves so they can be reverted.
type Journal interface {
	Record(ctx context.Context, e history.Entry) (history.Entry, error)
	SetReloadError(ctx context.Context, id, msg string) error
	Prune(ctx context.Context, path string, keep int) (int64, error)
	Latest(ctx context.Context, path string) (history.Entry, error)
}

// Loader reloads a descriptor after it changes on disk.
type Loader interface {
	Reload(ctx context.Context, path string) error
}

// SaveResult describes a save that wrote the file. ReloadErr is set when
// launchctl could not pick up the new contents.
type SaveResult struct {
	Path      string
	Filename  string
	Saved     bool
	ReloadErr error
	Entry     history.Entry
}

// Message is the one-line status for the result.
func (r SaveResult) Message() string {
	if r.ReloadErr != nil {
		return fmt.Sprintf("✓ Saved %s but reload failed: %v", r.Filename, r.ReloadErr)
	}
	return fmt.Sprintf("✓ Saved and reloaded %s", r.Filename)
}

// Saver writes documents back to disk, journals the previous contents and
// reloads the agent.
type Saver struct {
	journal Journal
	loader  Loader
	keep    int
	log     *zap.SugaredLogger
}

// NewSaver creates a saver. journal may be nil to skip history; keep is
// the number of journal entries retained per file.
func NewSaver(journal Journal, loader Loader, keep int, log *zap.SugaredLogger) *Saver {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Saver{journal: journal, loader: loader, keep: keep, log: log}
}

// Save encodes doc into path. A failed write returns an error and nothing
// is reloaded.
func (s *Saver) Save(ctx context.Context, path string, doc *plist.Document) (SaveResult, error) {
	if doc == nil {
		return SaveResult{}, ErrNoDocument
	}
	res := SaveResult{Path: path, Filename: filepath.Base(path)}
	text := plist.Encode(doc)

	before, hadBefore, err := readExisting(path)
	if err != nil {
		return res, err
	}

	if err := writeAtomic(path, text); err != nil {
		return res, err
	}
	res.Saved = true
	s.log.Infow("Saved descriptor", "path", path, "bytes", len(text))

	if s.journal != nil {
		entry, err := s.journal.Record(ctx, history.Entry{
			Path:      path,
			Label:     doc.DisplayLabel(path),
			Before:    before,
			HadBefore: hadBefore,
			After:     text,
		})
		if err != nil {
			s.log.Warnw("Failed to record save", "path", path, "error", err)
		} else {
			res.Entry = entry
			if _, err := s.journal.Prune(ctx, path, s.keep); err != nil {
				s.log.Warnw("Failed to prune history", "path", path, "error", err)
			}
		}
	}

	if s.loader != nil {
		if err := s.loader.Reload(ctx, path); err != nil {
			res.ReloadErr = err
			if res.Entry.ID != "" {
				if err := s.journal.SetReloadError(ctx, res.Entry.ID, err.Error()); err != nil {
					s.log.Warnw("Failed to record reload error", "path", path, "error", err)
				}
			}
		}
	}
	return res, nil
}

// Previous returns the document path held before its most recent save.
// It does not touch the file.
func (s *Saver) Previous(ctx context.Context, path string) (*plist.Document, history.Entry, error) {
	if s.journal == nil {
		return nil, history.Entry{}, history.ErrNotFound
	}
	entry, err := s.journal.Latest(ctx, path)
	if err != nil {
		return nil, history.Entry{}, err
	}
	if !entry.HadBefore {
		return nil, entry, fmt.Errorf("%s was created by its last save: %w", filepath.Base(path), history.ErrNotFound)
	}
	return plist.Decode(entry.Before), entry, nil
}

func readExisting(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), true, nil
}

// writeAtomic replaces path with text through a temp file in the same
// directory, keeping the old file's permissions.
func writeAtomic(path, text string) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { os.Remove(tmpName) } //nolint:errcheck

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close() //nolint:errcheck
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		cleanup()
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
