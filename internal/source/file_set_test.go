package source

import "testing"

func TestResolveLineColumns(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("main.nkl", []byte("a :: 1\nbb :: a\n"))
	f := fs.Get(id)

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{5, LineCol{Line: 1, Col: 6}},
		{6, LineCol{Line: 1, Col: 7}}, // the newline itself
		{7, LineCol{Line: 2, Col: 1}},
		{10, LineCol{Line: 2, Col: 4}},
	}
	for _, tt := range tests {
		got, _ := f.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if got != tt.want {
			t.Fatalf("offset %d: got %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestLocationAndText(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("dir/../main.nkl", []byte("x :: 1\ny :: x\n"))
	f := fs.Get(id)
	sp := Span{File: id, Start: 7, End: 8}
	if got := f.Location(sp); got != "main.nkl:2:1" {
		t.Fatalf("Location = %q", got)
	}
	if got := f.Text(sp); got != "y" {
		t.Fatalf("Text = %q", got)
	}
	if got := f.GetLine(2); got != "y :: x" {
		t.Fatalf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(3); got != "" {
		t.Fatalf("GetLine(3) = %q, want empty", got)
	}
}

func TestAddVersionsSamePath(t *testing.T) {
	fs := NewFileSet()
	first := fs.AddVirtual("a.nkl", []byte("one"))
	second := fs.AddVirtual("a.nkl", []byte("two"))
	if first == second {
		t.Fatalf("expected a new FileID per Add")
	}
	latest, ok := fs.GetLatest("a.nkl")
	if !ok || latest != second {
		t.Fatalf("GetLatest = %v,%v want %v", latest, ok, second)
	}
	if string(fs.Get(first).Content) != "one" {
		t.Fatalf("old version must stay readable")
	}
}

func TestNormalizeCRLFAndBOM(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed || string(out) != "a\nb\rc" {
		t.Fatalf("normalizeCRLF = %q, %v", out, changed)
	}
	out, had := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	if !had || string(out) != "x" {
		t.Fatalf("removeBOM = %q, %v", out, had)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 6}
	b := Span{File: 1, Start: 2, End: 5}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 6}) {
		t.Fatalf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 9}); got != a {
		t.Fatalf("cross-file Cover must be a no-op, got %v", got)
	}
}
