package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented outline of the file, one node per line.
func Fprint(w io.Writer, b *Builder, file *File) error {
	for _, id := range file.Items {
		if err := fprintExpr(w, b, id, 0); err != nil {
			return err
		}
	}
	return nil
}

func fprintExpr(w io.Writer, b *Builder, id ExprID, depth int) error {
	if !id.IsValid() {
		return nil
	}
	e := b.Get(id)
	line := strings.Repeat("  ", depth) + e.Kind.String()
	if e.Name != "" {
		line += " " + e.Name
	}
	if _, err := fmt.Fprintf(w, "%s [%d..%d]\n", line, e.Span.Start, e.Span.End); err != nil {
		return err
	}
	// порядок дочерних узлов совпадает с порядком в исходнике
	children := make([]ExprID, 0, len(e.List)+3)
	switch e.Kind {
	case ExprArrayType:
		children = append(children, e.Value, e.Type)
	case ExprConstant, ExprDeclaration:
		children = append(children, e.Type, e.Value)
	case ExprProcedure, ExprProcedureType:
		children = append(children, e.List...)
		children = append(children, e.Type, e.Body)
	default:
		children = append(children, e.Value, e.Type)
		children = append(children, e.List...)
		children = append(children, e.Body)
	}
	for _, c := range children {
		if err := fprintExpr(w, b, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
