// Package ast holds the untyped syntax tree produced by the parser.
package ast

import (
	"nkl/internal/arena"
	"nkl/internal/source"
)

type ExprID = arena.ID[Expr]

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	// ExprName: Name.
	ExprName
	// ExprIntLit: Name holds the literal text.
	ExprIntLit
	// ExprBlock: List.
	ExprBlock
	// ExprConstant `name :: v` / `name : T : v`: Name, Type (optional), Value.
	ExprConstant
	// ExprDeclaration `name : T`, `name : T = v`, `name := v`: Name, Type, Value (both optional).
	ExprDeclaration
	// ExprParen: Value.
	ExprParen
	// ExprMember `v.name`: Value, Name.
	ExprMember
	// ExprCall `v(args)`: Value, List.
	ExprCall
	// ExprProcedure `(params) -> R { body }`: List (declarations), Type, Body.
	ExprProcedure
	// ExprProcedureType `(params) -> R`: List, Type.
	ExprProcedureType
	// ExprStructType `(a: T, b: U)`: List.
	ExprStructType
	// ExprArrayType `[N]T`: Value (length), Type.
	ExprArrayType
	// ExprSliceType `[]T`: Type.
	ExprSliceType
	// ExprMultipointerType `[^]T`: Type.
	ExprMultipointerType
	// ExprPointerType `^T`: Type.
	ExprPointerType
)

var exprKindNames = [...]string{
	ExprInvalid:          "Invalid",
	ExprName:             "Name",
	ExprIntLit:           "IntLit",
	ExprBlock:            "Block",
	ExprConstant:         "Constant",
	ExprDeclaration:      "Declaration",
	ExprParen:            "Paren",
	ExprMember:           "Member",
	ExprCall:             "Call",
	ExprProcedure:        "Procedure",
	ExprProcedureType:    "ProcedureType",
	ExprStructType:       "StructType",
	ExprArrayType:        "ArrayType",
	ExprSliceType:        "SliceType",
	ExprMultipointerType: "MultipointerType",
	ExprPointerType:      "PointerType",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "ExprKind(?)"
}

// Expr is a syntax node. Which fields are meaningful depends on Kind, see
// the ExprKind constants; unused ids are zero.
type Expr struct {
	Kind ExprKind
	Span source.Span
	// NameSpan covers Name for constants, declarations and members.
	NameSpan source.Span
	Name     string
	Type     ExprID
	Value    ExprID
	Body     ExprID
	List     []ExprID
}

type Exprs struct {
	Arena *arena.Arena[Expr]
}

func NewExprs(capHint uint) *Exprs {
	return &Exprs{Arena: arena.New[Expr](capHint)}
}

func (e *Exprs) New(expr Expr) ExprID {
	return e.Arena.Insert(expr)
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.At(id)
}
