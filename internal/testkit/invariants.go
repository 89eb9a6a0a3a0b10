package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"nkl/internal/ast"
	"nkl/internal/source"
)

// CheckSpanInvariants runs span invariants on a parsed file:
// 1) every expression span is non-empty, points at sf and lies within its content
// 2) every child span is contained in its parent span
// 3) file.Span covers every top-level item
func CheckSpanInvariants(b *ast.Builder, file *ast.File, sf *source.File) error {
	if b == nil || file == nil || sf == nil {
		return fmt.Errorf("nil builder, file or source")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	c := checker{b: b, file: sf.ID, size: lenContent}
	for _, it := range file.Items {
		if err := c.expr(it, file.Span); err != nil {
			return err
		}
	}
	if len(file.Items) > 0 && file.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", file.Span.File, sf.ID)
	}
	return nil
}

type checker struct {
	b    *ast.Builder
	file source.FileID
	size uint32
}

func (c *checker) expr(id ast.ExprID, parent source.Span) error {
	if !id.IsValid() {
		return nil
	}
	e := c.b.Get(id)
	sp := e.Span
	if sp.End <= sp.Start {
		return fmt.Errorf("%s: empty span %v", e.Kind, sp)
	}
	if sp.File != c.file {
		return fmt.Errorf("%s: span file mismatch: got=%d want=%d", e.Kind, sp.File, c.file)
	}
	if sp.End > c.size {
		return fmt.Errorf("%s: span end beyond content: %d > %d", e.Kind, sp.End, c.size)
	}
	if sp.Start < parent.Start || sp.End > parent.End {
		return fmt.Errorf("%s: span %v is outside parent span %v", e.Kind, sp, parent)
	}
	if e.Kind != ast.ExprIntLit && e.Name != "" && (e.NameSpan.Start < sp.Start || e.NameSpan.End > sp.End) {
		return fmt.Errorf("%s %q: name span %v is outside %v", e.Kind, e.Name, e.NameSpan, sp)
	}

	for _, child := range []ast.ExprID{e.Type, e.Value, e.Body} {
		if err := c.expr(child, sp); err != nil {
			return err
		}
	}
	for _, child := range e.List {
		if err := c.expr(child, sp); err != nil {
			return err
		}
	}
	return nil
}
