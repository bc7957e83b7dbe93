package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defaults.toml")
	if err := os.WriteFile(path, []byte("[tooltip]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fired := make(chan string, 4)
	w, err := New(path, func(p string) { fired <- p }, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[tooltip]\nplacement = \"bottom\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-fired:
		if p != w.Path() {
			t.Errorf("handler path = %q, want %q", p, w.Path())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called after file write")
	}
}

func TestWatcherFiresOnCreate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defaults.toml")

	fired := make(chan string, 4)
	w, err := New(path, func(p string) { fired <- p }, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[popover]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called after file create")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defaults.toml")

	fired := make(chan string, 4)
	w, err := New(path, func(p string) { fired <- p }, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
		t.Fatal("handler fired for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defaults.toml")

	w, err := New(path, func(string) {})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
