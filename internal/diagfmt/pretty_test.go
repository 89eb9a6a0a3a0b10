package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"nkl/internal/diag"
	"nkl/internal/source"
)

func sampleBag(t *testing.T) (*source.FileSet, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	content := []byte("a :: 1\nb :: zz\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.nkl", content)
	bag := diag.NewBag(10)
	d := diag.NewError(diag.SemaUndefinedName, source.Span{File: fileID, Start: 12, End: 14}, `undefined name "zz"`).
		WithNote(source.Span{File: fileID, Start: 0, End: 1}, "a is declared here")
	bag.Add(d)
	return fs, bag
}

func TestPathModes(t *testing.T) {
	fs, bag := sampleBag(t)
	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"relative", PathModeRelative, "src/test.nkl:2:6"},
		{"basename", PathModeBasename, "test.nkl:2:6"},
		{"auto", PathModeAuto, "/home/user/project/src/test.nkl:2:6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := PrettyOpts{Context: 1, PathMode: tt.mode, BaseDir: "/home/user/project"}
			if err := Pretty(&buf, bag, fs, opts); err != nil {
				t.Fatalf("Pretty: %v", err)
			}
			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Fatalf("output lacks %q:\n%s", tt.contains, out)
			}
			if !strings.Contains(out, "ERROR SEM3002") {
				t.Fatalf("output lacks severity and code:\n%s", out)
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	fs, bag := sampleBag(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename, ShowNotes: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "test.nkl:2:6: ERROR SEM3002: undefined name \"zz\"\n" +
		"1 | a :: 1\n" +
		"2 | b :: zz\n" +
		"  |      ^~\n" +
		"  note: test.nkl:1:1: a is declared here\n"
	if got := buf.String(); got != want {
		t.Fatalf("Pretty output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyKeepsTabs(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.nkl", []byte("f :: () -> int {\n\tq\n}\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SemaUndefinedName, source.Span{File: fileID, Start: 18, End: 19}, "undefined"))
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if !strings.Contains(buf.String(), " | \t^\n") {
		t.Fatalf("caret not aligned under tab:\n%q", buf.String())
	}
}

func TestPrettyWithoutFile(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file"))
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, source.NewFileSet(), PrettyOpts{}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	if got := buf.String(); got != "<unknown>: ERROR IO4001: failed to load file\n" {
		t.Fatalf("got %q", got)
	}
}
