package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() }) //nolint:errcheck
	return store
}

func TestRecordAndLatest(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	first, err := store.Record(ctx, Entry{Path: "/a.plist", Label: "a", Before: "v0", HadBefore: true, After: "v1", SavedAt: base})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if first.ID == "" {
		t.Fatal("record should assign an id")
	}
	if _, err := store.Record(ctx, Entry{Path: "/a.plist", Label: "a", Before: "v1", HadBefore: true, After: "v2", SavedAt: base.Add(time.Second)}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := store.Record(ctx, Entry{Path: "/b.plist", After: "b1", SavedAt: base.Add(2 * time.Second)}); err != nil {
		t.Fatalf("record: %v", err)
	}

	latest, err := store.Latest(ctx, "/a.plist")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Before != "v1" || latest.After != "v2" || !latest.HadBefore {
		t.Errorf("latest = %+v", latest)
	}
	if !latest.SavedAt.Equal(base.Add(time.Second)) {
		t.Errorf("saved_at = %v", latest.SavedAt)
	}

	created, err := store.Latest(ctx, "/b.plist")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if created.HadBefore {
		t.Error("a save that created the file has no before text")
	}

	if _, err := store.Latest(ctx, "/missing.plist"); !errors.Is(err, ErrNotFound) {
		t.Errorf("latest of unknown path error = %v, want ErrNotFound", err)
	}
}

func TestListOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, after := range []string{"one", "two", "three"} {
		// Sub-second offsets exercise the fixed-width timestamp layout.
		at := base.Add(time.Duration(i) * 100 * time.Millisecond)
		if _, err := store.Record(ctx, Entry{Path: "/x.plist", After: after, SavedAt: at}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	all, err := store.List(ctx, "/x.plist", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []string
	for _, e := range all {
		got = append(got, e.After)
	}
	want := []string{"three", "two", "one"}
	if len(got) != len(want) {
		t.Fatalf("list = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("list = %v, want %v", got, want)
		}
	}

	two, err := store.List(ctx, "/x.plist", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(two) != 2 {
		t.Errorf("limit 2 returned %d entries", len(two))
	}
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if _, err := store.Record(ctx, Entry{Path: "/p.plist", After: "x", SavedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if _, err := store.Record(ctx, Entry{Path: "/other.plist", After: "y"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	n, err := store.Prune(ctx, "/p.plist", 2)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 3 {
		t.Errorf("pruned %d rows, want 3", n)
	}
	left, _ := store.List(ctx, "/p.plist", 0)
	if len(left) != 2 || !left[0].SavedAt.Equal(base.Add(4*time.Minute)) {
		t.Errorf("remaining = %+v", left)
	}
	other, _ := store.List(ctx, "/other.plist", 0)
	if len(other) != 1 {
		t.Error("prune must not touch other paths")
	}

	if n, _ := store.Prune(ctx, "/p.plist", 0); n != 0 {
		t.Error("keep 0 should disable pruning")
	}
}

func TestSetReloadError(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	e, err := store.Record(ctx, Entry{Path: "/r.plist", After: "x"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.SetReloadError(ctx, e.ID, "Load failed: boom"); err != nil {
		t.Fatalf("set reload error: %v", err)
	}
	latest, _ := store.Latest(ctx, "/r.plist")
	if latest.ReloadError != "Load failed: boom" {
		t.Errorf("reload_error = %q", latest.ReloadError)
	}
	if err := store.SetReloadError(ctx, "nope", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id error = %v, want ErrNotFound", err)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	store, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.Record(ctx, Entry{Path: "/k.plist", After: "kept"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	store.Close() //nolint:errcheck

	store, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close() //nolint:errcheck
	latest, err := store.Latest(ctx, "/k.plist")
	if err != nil || latest.After != "kept" {
		t.Errorf("after reopen: %+v, %v", latest, err)
	}
}
