package parser

import (
	"fmt"
	"strings"
	"testing"

	"nkl/internal/ast"
	"nkl/internal/diag"
	"nkl/internal/lexer"
	"nkl/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, input string) (*ast.Builder, Result) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.nkl", []byte(input))
	file := fs.Get(fileID)
	bag := diag.NewBag(16)
	rep := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	b := ast.NewBuilder(0)
	return b, ParseFile(file, lx, b, Options{Reporter: rep})
}

func mustParse(t *testing.T, input string) (*ast.Builder, *ast.File) {
	t.Helper()
	b, res := parseSource(t, input)
	if res.Failed || res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %s", input, diagnosticsSummary(res.Bag))
	}
	return b, res.File
}

func outline(t *testing.T, b *ast.Builder, f *ast.File) string {
	t.Helper()
	var sb strings.Builder
	if err := ast.Fprint(&sb, b, f); err != nil {
		t.Fatalf("Fprint: %v", err)
	}
	return sb.String()
}
