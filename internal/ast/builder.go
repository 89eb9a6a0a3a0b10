package ast

import (
	"nkl/internal/source"
)

type Builder struct {
	Exprs *Exprs
}

func NewBuilder(capHint uint) *Builder {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Builder{Exprs: NewExprs(capHint)}
}

func (b *Builder) Get(id ExprID) *Expr {
	return b.Exprs.Get(id)
}

func (b *Builder) Name(sp source.Span, name string) ExprID {
	return b.Exprs.New(Expr{Kind: ExprName, Span: sp, NameSpan: sp, Name: name})
}

func (b *Builder) IntLit(sp source.Span, text string) ExprID {
	return b.Exprs.New(Expr{Kind: ExprIntLit, Span: sp, Name: text})
}

func (b *Builder) Block(sp source.Span, list []ExprID) ExprID {
	return b.Exprs.New(Expr{Kind: ExprBlock, Span: sp, List: list})
}

func (b *Builder) Constant(sp, nameSpan source.Span, name string, typ, value ExprID) ExprID {
	return b.Exprs.New(Expr{Kind: ExprConstant, Span: sp, NameSpan: nameSpan, Name: name, Type: typ, Value: value})
}

func (b *Builder) Declaration(sp, nameSpan source.Span, name string, typ, value ExprID) ExprID {
	return b.Exprs.New(Expr{Kind: ExprDeclaration, Span: sp, NameSpan: nameSpan, Name: name, Type: typ, Value: value})
}

func (b *Builder) Paren(sp source.Span, inner ExprID) ExprID {
	return b.Exprs.New(Expr{Kind: ExprParen, Span: sp, Value: inner})
}

func (b *Builder) Member(sp source.Span, operand ExprID, nameSpan source.Span, name string) ExprID {
	return b.Exprs.New(Expr{Kind: ExprMember, Span: sp, Value: operand, NameSpan: nameSpan, Name: name})
}

func (b *Builder) Call(sp source.Span, operand ExprID, args []ExprID) ExprID {
	return b.Exprs.New(Expr{Kind: ExprCall, Span: sp, Value: operand, List: args})
}

func (b *Builder) Procedure(sp source.Span, params []ExprID, ret, body ExprID) ExprID {
	return b.Exprs.New(Expr{Kind: ExprProcedure, Span: sp, List: params, Type: ret, Body: body})
}

func (b *Builder) ProcedureType(sp source.Span, params []ExprID, ret ExprID) ExprID {
	return b.Exprs.New(Expr{Kind: ExprProcedureType, Span: sp, List: params, Type: ret})
}

func (b *Builder) StructType(sp source.Span, fields []ExprID) ExprID {
	return b.Exprs.New(Expr{Kind: ExprStructType, Span: sp, List: fields})
}

func (b *Builder) ArrayType(sp source.Span, length, elem ExprID) ExprID {
	return b.Exprs.New(Expr{Kind: ExprArrayType, Span: sp, Value: length, Type: elem})
}

func (b *Builder) SliceType(sp source.Span, elem ExprID) ExprID {
	return b.Exprs.New(Expr{Kind: ExprSliceType, Span: sp, Type: elem})
}

func (b *Builder) MultipointerType(sp source.Span, elem ExprID) ExprID {
	return b.Exprs.New(Expr{Kind: ExprMultipointerType, Span: sp, Type: elem})
}

func (b *Builder) PointerType(sp source.Span, elem ExprID) ExprID {
	return b.Exprs.New(Expr{Kind: ExprPointerType, Span: sp, Type: elem})
}
