package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"nkl/internal/diag"
)

func writeSources(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCheckDir(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"a.nkl":     helloSource,
		"sub/b.nkl": "main :: () -> int { 0 }\n",
		"notes.txt": "not source",
		"sub/c.nkl": "x := 1\n",
	})

	results, err := CheckDir(context.Background(), dir, CheckOptions{Jobs: 2, MaxDiagnostics: 10})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	want := []struct {
		name string
		code diag.Code
	}{
		{"a.nkl", diag.UnknownCode},
		{"sub/b.nkl", diag.SemaBadMainSignature},
		{"sub/c.nkl", diag.SemaOnlyConstantsInGlobalScope},
	}
	for i, w := range want {
		r := results[i]
		if rel, _ := filepath.Rel(dir, r.Path); filepath.ToSlash(rel) != w.name {
			t.Fatalf("result %d is %s, want %s", i, rel, w.name)
		}
		if w.code == diag.UnknownCode {
			if r.Bag.Len() != 0 {
				t.Fatalf("%s: unexpected diagnostics", w.name)
			}
			continue
		}
		if got := firstCode(t, r.Bag); got != w.code {
			t.Fatalf("%s: code %s, want %s", w.name, got.ID(), w.code.ID())
		}
	}
}

func TestCheckFilesMissingFile(t *testing.T) {
	results, err := CheckFiles(context.Background(), []string{filepath.Join(t.TempDir(), "gone.nkl")}, CheckOptions{MaxDiagnostics: 1})
	if err != nil {
		t.Fatalf("CheckFiles: %v", err)
	}
	if got := firstCode(t, results[0].Bag); got != diag.IOLoadFileError {
		t.Fatalf("code = %s", got.ID())
	}
}

func TestCheckFilesUsesCache(t *testing.T) {
	dir := writeSources(t, map[string]string{"bad.nkl": "main :: () -> int { 0 }\n"})
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := CheckOptions{MaxDiagnostics: 5, Cache: cache}

	first, err := CheckDir(context.Background(), dir, opts)
	if err != nil || first[0].Cached {
		t.Fatalf("first run: cached=%v err=%v", first[0].Cached, err)
	}
	second, err := CheckDir(context.Background(), dir, opts)
	if err != nil || !second[0].Cached {
		t.Fatalf("second run: cached=%v err=%v", second[0].Cached, err)
	}
	a, b := first[0].Bag.Items()[0], second[0].Bag.Items()[0]
	if a.Code != b.Code || a.Message != b.Message || a.Primary != b.Primary {
		t.Fatalf("cached diagnostic differs:\n%+v\n%+v", a, b)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	third, err := CheckDir(context.Background(), dir, opts)
	if err != nil || third[0].Cached {
		t.Fatalf("after DropAll: cached=%v err=%v", third[0].Cached, err)
	}
}

func TestCheckFilesEmitsEvents(t *testing.T) {
	dir := writeSources(t, map[string]string{"a.nkl": helloSource, "b.nkl": "x :: y\n"})
	events := make(chan Event)
	var (
		mu   sync.Mutex
		seen = map[string][]Status{}
		wg   sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ev := range events {
			mu.Lock()
			seen[filepath.Base(ev.File)] = append(seen[filepath.Base(ev.File)], ev.Status)
			mu.Unlock()
		}
	}()
	_, err := CheckDir(context.Background(), dir, CheckOptions{MaxDiagnostics: 5, Events: events})
	close(events)
	wg.Wait()
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}

	last := func(name string) Status {
		s := seen[name]
		if len(s) == 0 {
			t.Fatalf("no events for %s", name)
		}
		if s[0] != StatusQueued {
			t.Fatalf("%s: first status %d, want queued", name, s[0])
		}
		return s[len(s)-1]
	}
	if last("a.nkl") != StatusDone || last("b.nkl") != StatusError {
		t.Fatalf("final statuses: %v", seen)
	}
}

func TestCheckTestdata(t *testing.T) {
	root := filepath.Join("..", "..", "testdata")
	ok, err := CheckDir(context.Background(), filepath.Join(root, "ok"), CheckOptions{MaxDiagnostics: 10})
	if err != nil {
		t.Fatalf("CheckDir ok: %v", err)
	}
	if len(ok) == 0 {
		t.Fatalf("no sources under testdata/ok")
	}
	for _, res := range ok {
		if res.Bag.Len() != 0 {
			t.Fatalf("%s: unexpected diagnostic %s: %s", res.Path, res.Bag.Items()[0].Code.ID(), res.Bag.Items()[0].Message)
		}
	}

	want := map[string]diag.Code{
		"bad_main.nkl":    diag.SemaBadMainSignature,
		"global_decl.nkl": diag.SemaOnlyConstantsInGlobalScope,
		"overflow.nkl":    diag.SemaIntegerOverflow,
		"undefined.nkl":   diag.SemaUndefinedName,
	}
	bad, err := CheckDir(context.Background(), filepath.Join(root, "errors"), CheckOptions{MaxDiagnostics: 10})
	if err != nil {
		t.Fatalf("CheckDir errors: %v", err)
	}
	if len(bad) != len(want) {
		t.Fatalf("got %d results, want %d", len(bad), len(want))
	}
	for _, res := range bad {
		code, known := want[filepath.Base(res.Path)]
		if !known {
			t.Fatalf("unexpected file %s", res.Path)
		}
		if got := firstCode(t, res.Bag); got != code {
			t.Fatalf("%s: got %s, want %s", res.Path, got.ID(), code.ID())
		}
	}
}
