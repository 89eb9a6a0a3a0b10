package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsSourceChanges(t *testing.T) {
	dir := writeSources(t, map[string]string{"a.nkl": helloSource})
	w, err := NewWatcher([]string{dir})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := make(chan []string, 4)
	go func() {
		_ = w.Run(ctx, 20*time.Millisecond, func(paths []string) { changes <- paths })
	}()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "a.nkl")
	if err := os.WriteFile(target, []byte(helloSource+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-changes:
		abs, _ := filepath.Abs(target)
		if len(paths) != 1 || paths[0] != abs {
			t.Fatalf("changes = %v, want [%s]", paths, abs)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no change reported")
	}
}
