package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"nkl/internal/bound"
	"nkl/internal/driver"
)

const helloSource = "main :: (args: [][^]u8) -> int {\n\t0\n}\n"

func TestVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, versionOptions{showHash: true}); err != nil {
		t.Fatalf("renderVersionJSON: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if payload.Tool != "nkl" || payload.Version == "" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.GitCommit == "" {
		t.Fatalf("--hash must fill git_commit")
	}
	if payload.BuildDate != "" {
		t.Fatalf("build_date must be omitted without --date")
	}
}

func TestVersionPrettyNoColor(t *testing.T) {
	var buf bytes.Buffer
	renderVersionPretty(&buf, versionOptions{showDate: true})
	out := buf.String()
	if !strings.HasPrefix(out, "nkl 0.1.0-dev\n") {
		t.Fatalf("unexpected version line: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("colour escapes with colour disabled: %q", out)
	}
	if !strings.Contains(out, "built:  unknown") {
		t.Fatalf("missing build date line: %q", out)
	}
}

func TestWriteDumpFormats(t *testing.T) {
	res := driver.CompileSource(context.Background(), "hello.nkl", []byte(helloSource), driver.CompileOptions{MaxDiagnostics: 10})
	if !res.Succeeded() {
		t.Fatalf("compile failed: %d diagnostics", res.Bag.Len())
	}
	dump := res.Universe.Dumper().Dump(res.Root)

	var js bytes.Buffer
	if err := writeDump(&js, "json", dump); err != nil {
		t.Fatalf("json: %v", err)
	}
	var fromJSON bound.DumpNode
	if err := json.Unmarshal(js.Bytes(), &fromJSON); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if fromJSON.Kind != "block" || len(fromJSON.Children) != 1 {
		t.Fatalf("unexpected json root: %+v", fromJSON)
	}

	var ym bytes.Buffer
	if err := writeDump(&ym, "yaml", dump); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	var fromYAML bound.DumpNode
	if err := yaml.Unmarshal(ym.Bytes(), &fromYAML); err != nil {
		t.Fatalf("yaml decode: %v", err)
	}
	if fromYAML.Children[0].Name != "main" {
		t.Fatalf("expected main constant, got %+v", fromYAML.Children[0])
	}

	var pretty bytes.Buffer
	if err := writeDump(&pretty, "pretty", dump); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	if !strings.Contains(pretty.String(), "main") {
		t.Fatalf("pretty dump lacks main:\n%s", pretty.String())
	}
}

func TestExpandRoots(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{filepath.Join(dir, "b.nkl"), filepath.Join(sub, "a.nkl"), filepath.Join(dir, "notes.txt")} {
		if err := os.WriteFile(name, []byte(helloSource), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	single := filepath.Join(dir, "b.nkl")

	files, err := expandRoots([]string{single, dir})
	if err != nil {
		t.Fatalf("expandRoots: %v", err)
	}
	want := []string{single, filepath.Join(dir, "b.nkl"), filepath.Join(sub, "a.nkl")}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}

	if _, err := expandRoots([]string{filepath.Join(dir, "missing.nkl")}); err == nil {
		t.Fatalf("expected error for a missing root")
	}
}

func TestCheckJSONOutput(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.nkl")
	bad := filepath.Join(dir, "bad.nkl")
	if err := os.WriteFile(good, []byte(helloSource), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("x :: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	run := &checkRun{
		format: "json",
		roots:  []string{dir},
		opts:   driver.CheckOptions{Jobs: 2, MaxDiagnostics: 10},
	}
	var buf bytes.Buffer
	err := run.once(context.Background(), &buf)
	var de errDiagnostics
	if !errors.As(err, &de) || de.errors != 1 {
		t.Fatalf("expected one error, got %v", err)
	}

	var out checkOutputJSON
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if len(out.Files) != 2 || out.Failed != 1 {
		t.Fatalf("unexpected output: %+v", out)
	}
	// файлы отсортированы: bad.nkl раньше good.nkl
	if out.Files[0].Diagnostics.Count != 1 || out.Files[1].Diagnostics.Count != 0 {
		t.Fatalf("unexpected per-file counts: %+v", out.Files)
	}
	if got := out.Files[0].Diagnostics.Diagnostics[0].Code; !strings.HasPrefix(got, "SEM") {
		t.Fatalf("expected a SEM code, got %q", got)
	}
}

func TestErrDiagnosticsMessage(t *testing.T) {
	if got := (errDiagnostics{errors: 1}).Error(); got != "1 error" {
		t.Fatalf("got %q", got)
	}
	if got := (errDiagnostics{errors: 3}).Error(); got != "3 errors" {
		t.Fatalf("got %q", got)
	}
}

func TestOpenCheckCacheClear(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	stale := filepath.Join(base, "nkl", "results", "ab", "stale.mp")
	seed := func() {
		t.Helper()
		if err := os.MkdirAll(filepath.Dir(stale), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(stale, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	tests := []struct {
		name      string
		noCache   bool
		clear     bool
		wantCache bool
		wantStale bool
	}{
		{"default", false, false, true, true},
		{"no-cache", true, false, false, true},
		{"clear", false, true, true, false},
		{"clear without cache", true, true, false, false},
	}
	for _, tt := range tests {
		seed()
		cache, err := openCheckCache("nkl", tt.noCache, tt.clear)
		if err != nil {
			t.Fatalf("%s: openCheckCache: %v", tt.name, err)
		}
		if (cache != nil) != tt.wantCache {
			t.Fatalf("%s: cache = %v, want present=%v", tt.name, cache, tt.wantCache)
		}
		_, statErr := os.Stat(stale)
		if got := statErr == nil; got != tt.wantStale {
			t.Fatalf("%s: stale entry present=%v, want %v", tt.name, got, tt.wantStale)
		}
	}
}
