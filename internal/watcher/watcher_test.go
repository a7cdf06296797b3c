package watcher

import (
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"
)

type collector struct {
	mu    sync.Mutex
	calls [][]string
	ch    chan struct{}
}

func newCollector() *collector {
	return &collector{ch: make(chan struct{}, 16)}
}

func (c *collector) onChange(paths []string) {
	c.mu.Lock()
	c.calls = append(c.calls, paths)
	c.mu.Unlock()
	c.ch <- struct{}{}
}

func (c *collector) wait(t *testing.T) []string {
	t.Helper()
	select {
	case <-c.ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change callback")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[len(c.calls)-1]
}

func TestDebounceCoalesces(t *testing.T) {
	c := newCollector()
	w := NewWatcher(50*time.Millisecond, c.onChange)
	defer w.Stop()

	w.FileChanged("/a/b.plist")
	w.FileChanged("/a/a.plist")
	w.FileChanged("/a/b.plist")
	w.FilesChanged([]string{"/a/.b.plist.1234", "/a/notes.txt"})

	got := c.wait(t)
	want := []string{"/a/a.plist", "/a/b.plist"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("onChange(%v), want %v", got, want)
	}

	time.Sleep(100 * time.Millisecond)
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.calls) != 1 {
		t.Errorf("onChange called %d times, want 1", len(c.calls))
	}
}

func TestIgnoredOnlyNeverFires(t *testing.T) {
	c := newCollector()
	w := NewWatcher(10*time.Millisecond, c.onChange)
	defer w.Stop()

	w.FilesChanged([]string{"/a/.hidden.plist", "/a/readme.md"})
	select {
	case <-c.ch:
		t.Error("ignored paths should not trigger a callback")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestStopDropsPending(t *testing.T) {
	c := newCollector()
	w := NewWatcher(50*time.Millisecond, c.onChange)
	w.FileChanged("/a/x.plist")
	w.Stop()
	w.Stop()
	w.FileChanged("/a/y.plist")

	select {
	case <-c.ch:
		t.Error("no callback expected after Stop")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatchDirectory(t *testing.T) {
	dir := t.TempDir()
	c := newCollector()
	w := NewWatcher(50*time.Millisecond, c.onChange)
	if err := w.Watch(dir, filepath.Join(dir, "missing")); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Stop()

	path := filepath.Join(dir, "com.example.plist")
	if err := os.WriteFile(path, []byte("<plist/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := c.wait(t)
	if !reflect.DeepEqual(got, []string{path}) {
		t.Errorf("onChange(%v), want [%s]", got, path)
	}
}

func TestDirs(t *testing.T) {
	got := Dirs([]string{"/b/x.plist", "/a/y.plist", "/b/z.plist"})
	want := []string{"/a", "/b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Dirs() = %v, want %v", got, want)
	}
}
