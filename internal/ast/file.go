package ast

import "nkl/internal/source"

// File is one parsed source file: its top-level expressions in order.
type File struct {
	Path  string
	Span  source.Span
	Items []ExprID
}
