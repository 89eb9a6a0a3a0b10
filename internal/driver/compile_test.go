package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nkl/internal/diag"
	"nkl/internal/token"
	"nkl/internal/trace"
)

const helloSource = "main :: (args: [][^]u8) -> int {\n\t0\n}\n"

func firstCode(t *testing.T, bag *diag.Bag) diag.Code {
	t.Helper()
	if bag.Len() == 0 {
		t.Fatalf("no diagnostics")
	}
	return bag.Items()[0].Code
}

func TestCompileSourceSucceeds(t *testing.T) {
	res := CompileSource(context.Background(), "hello.nkl", []byte(helloSource), CompileOptions{MaxDiagnostics: 10})
	if !res.Succeeded() {
		t.Fatalf("compile failed: %+v", res.Bag.Items())
	}
	if !res.Main.IsValid() {
		t.Fatalf("main not recorded")
	}
	names := make([]string, 0, len(res.Timing.Phases))
	for _, p := range res.Timing.Phases {
		names = append(names, p.Name)
	}
	if got := strings.Join(names, ","); got != "parse,bind,entry" {
		t.Fatalf("phases = %s", got)
	}
}

func TestCompileStopsAtFirstFailingStage(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		code   diag.Code
		stages string
	}{
		{"syntax", "main :: (\n", diag.SynUnexpectedEOF, "parse"},
		{"bind", "main :: (args: [][^]u8) -> int { nope }\n", diag.SemaUndefinedName, "parse,bind"},
		{"missing main", "answer :: 42\n", diag.SemaMissingMain, "parse,bind,entry"},
		{"bad main", "main :: () -> int { 0 }\n", diag.SemaBadMainSignature, "parse,bind,entry"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stages []string
			res := CompileSource(context.Background(), "t.nkl", []byte(tt.src), CompileOptions{
				MaxDiagnostics: 10,
				Observer:       func(s Stage) { stages = append(stages, s.String()) },
			})
			if res.Succeeded() {
				t.Fatalf("compile succeeded")
			}
			if got := firstCode(t, res.Bag); got != tt.code {
				t.Fatalf("code = %s, want %s", got.ID(), tt.code.ID())
			}
			if got := strings.Join(stages, ","); got != tt.stages {
				t.Fatalf("stages = %s, want %s", got, tt.stages)
			}
		})
	}
}

func TestBadMainMessage(t *testing.T) {
	res := CompileSource(context.Background(), "t.nkl", []byte("main :: () -> int { 0 }\n"), CompileOptions{MaxDiagnostics: 1})
	want := "Expected the main function to have the type ([][^]u8) -> int, but got () -> int"
	if msg := res.Bag.Items()[0].Message; msg != want {
		t.Fatalf("message = %q", msg)
	}
}

func TestSkipEntry(t *testing.T) {
	res := CompileSource(context.Background(), "lib.nkl", []byte("answer :: 42\n"), CompileOptions{MaxDiagnostics: 1, SkipEntry: true})
	if !res.Succeeded() || res.Main.IsValid() {
		t.Fatalf("SkipEntry: succeeded=%v main=%v", res.Succeeded(), res.Main)
	}
}

func TestCompileTracesPasses(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)
	CompileSource(ctx, "hello.nkl", []byte(helloSource), CompileOptions{MaxDiagnostics: 1})
	out := buf.String()
	for _, want := range []string{"file:hello.nkl", "parse", "bind:Procedure", "entry"} {
		if !strings.Contains(out, want) {
			t.Fatalf("trace lacks %q:\n%s", want, out)
		}
	}
}

func TestFileEntryPoints(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.nkl")
	if err := os.WriteFile(path, []byte(helloSource), 0o600); err != nil {
		t.Fatal(err)
	}

	tok, err := Tokenize(path, 10)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if tok.Bag.HasErrors() || tok.Tokens[len(tok.Tokens)-1].Kind != token.EOF {
		t.Fatalf("tokens: %d, bag %d", len(tok.Tokens), tok.Bag.Len())
	}

	pr, err := Parse(path, 10)
	if err != nil || pr.Failed || len(pr.AST.Items) != 1 {
		t.Fatalf("Parse: %v failed=%v", err, pr.Failed)
	}

	cr, err := Compile(context.Background(), path, CompileOptions{MaxDiagnostics: 10})
	if err != nil || !cr.Succeeded() {
		t.Fatalf("Compile: %v", err)
	}

	if _, err := Compile(context.Background(), filepath.Join(dir, "missing.nkl"), CompileOptions{}); err == nil {
		t.Fatalf("missing file compiled")
	}
}
