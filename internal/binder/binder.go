package binder

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"nkl/internal/ast"
	"nkl/internal/bound"
	"nkl/internal/diag"
	"nkl/internal/dialect"
	"nkl/internal/eval"
	"nkl/internal/source"
	"nkl/internal/trace"
	"nkl/internal/types"
)

// Slice members, by index.
const (
	memberData   = 0
	memberLength = 1
)

// Options configure binding of one file.
type Options struct {
	Tracer trace.Tracer
	// Parent is the trace span node events nest under.
	Parent uint64
}

type binder struct {
	u      *Universe
	exprs  *ast.Builder
	nodes  *bound.Nodes
	types  *types.Interner
	b      types.Builtins
	tracer trace.Tracer
	parent uint64
}

// BindFile binds the top-level items of file in u.Root and returns the
// root block wrapping them. Only constants may appear at the top level.
// Names bound by the file stay in u.Root afterwards.
func BindFile(u *Universe, exprs *ast.Builder, file *ast.File, opts Options) (bound.NodeID, error) {
	bd := &binder{
		u:      u,
		exprs:  exprs,
		nodes:  u.Nodes,
		types:  u.Types,
		b:      u.Builtins,
		tracer: opts.Tracer,
		parent: opts.Parent,
	}
	if bd.tracer == nil {
		bd.tracer = trace.Nop
	}

	items := make([]bound.NodeID, 0, len(file.Items))
	for _, id := range file.Items {
		e := exprs.Get(id)
		if e.Kind != ast.ExprConstant {
			return bound.NodeID{}, bd.errorf(diag.SemaOnlyConstantsInGlobalScope, e.Span,
				"Only constants are allowed in the global scope")
		}
		n, err := bd.bind(id, u.Root, types.NoTypeID)
		if err != nil {
			return bound.NodeID{}, err
		}
		items = append(items, n)
	}
	return bd.nodes.NewBlock(source.Span{File: file.Span.File}, items, bd.b.Void), nil
}

func (bd *binder) errorf(code diag.Code, sp source.Span, format string, args ...any) *Error {
	return Errorf(bd.u.Files, code, sp, format, args...)
}

func (bd *binder) format(id types.TypeID) string {
	return bd.types.Format(id)
}

// bind lowers one expression. hint is the type the context expects, or
// NoTypeID; it guides literals and procedure parameters but is never
// enforced here.
func (bd *binder) bind(id ast.ExprID, scope *Scope, hint types.TypeID) (bound.NodeID, error) {
	e := bd.exprs.Get(id)
	if bd.tracer.Level().ShouldEmit(trace.ScopeNode) {
		span := trace.Begin(bd.tracer, trace.ScopeNode, "bind:"+e.Kind.String(), bd.parent)
		parent := bd.parent
		bd.parent = span.ID()
		defer func() {
			bd.parent = parent
			span.End("")
		}()
	}

	switch e.Kind {
	case ast.ExprBlock:
		return bd.bindBlock(e, scope, hint)
	case ast.ExprConstant:
		return bd.bindConstant(e, scope, hint)
	case ast.ExprDeclaration:
		return bd.bindDeclaration(e, scope, hint)
	case ast.ExprName:
		return bd.bindName(e, scope)
	case ast.ExprIntLit:
		return bd.bindIntLit(e, hint)
	case ast.ExprParen:
		return bd.bind(e.Value, scope.Child(), hint)
	case ast.ExprMember:
		return bd.bindMember(e, scope)
	case ast.ExprProcedure:
		return bd.bindProcedure(e, scope, hint)
	case ast.ExprCall:
		return bd.bindCall(e, scope)
	case ast.ExprSliceType, ast.ExprMultipointerType, ast.ExprPointerType:
		return bd.bindWrapperType(e, scope, hint)
	case ast.ExprStructType:
		return bound.NodeID{}, bd.errorf(diag.SemaUnimplemented, e.Span, "struct types are not supported yet")
	case ast.ExprArrayType:
		return bound.NodeID{}, bd.errorf(diag.SemaUnimplemented, e.Span, "array types are not supported yet")
	case ast.ExprProcedureType:
		return bound.NodeID{}, bd.errorf(diag.SemaUnimplemented, e.Span, "procedure types without a body are not supported yet")
	}
	return bound.NodeID{}, bd.errorf(diag.UnknownCode, e.Span, "cannot bind %s expression", e.Kind)
}

// bindBlock: children see a fresh frame. The last child inherits the
// block's hint so that `() -> uint { 0 }` types the literal as uint.
func (bd *binder) bindBlock(e *ast.Expr, scope *Scope, hint types.TypeID) (bound.NodeID, error) {
	inner := scope.Child()
	list := make([]bound.NodeID, 0, len(e.List))
	for i, child := range e.List {
		childHint := types.NoTypeID
		if i == len(e.List)-1 {
			childHint = hint
		}
		n, err := bd.bind(child, inner, childHint)
		if err != nil {
			return bound.NodeID{}, err
		}
		list = append(list, n)
	}

	result := bd.b.Void
	switch {
	case len(list) > 0:
		result = bd.nodes.TypeOf(list[len(list)-1])
	case hint.IsValid() && bd.types.Kind(hint) == types.KindVoid:
		result = hint
	}
	return bd.nodes.NewBlock(e.Span, list, result), nil
}

func (bd *binder) bindConstant(e *ast.Expr, scope *Scope, hint types.TypeID) (bound.NodeID, error) {
	var annotated types.TypeID
	if e.Type.IsValid() {
		t, err := bd.bindTypeExpr(e.Type, scope, "type annotation of "+strconv.Quote(e.Name))
		if err != nil {
			return bound.NodeID{}, err
		}
		annotated = t
	}

	valueHint := hint
	if annotated.IsValid() {
		valueHint = annotated
	}
	value, err := bd.bind(e.Value, scope.Child(), valueHint)
	if err != nil {
		return bound.NodeID{}, err
	}
	valueSpan := bd.exprs.Get(e.Value).Span
	if !bd.nodes.IsConstant(value) {
		return bound.NodeID{}, bd.errorf(diag.SemaNotConstant, valueSpan,
			"value of constant %q must be a compile-time constant", e.Name)
	}

	typ := bd.nodes.TypeOf(value)
	if annotated.IsValid() && typ != annotated {
		return bound.NodeID{}, bd.errorf(diag.SemaTypeMismatch, valueSpan,
			"constant %q is declared as %s, but its value has type %s",
			e.Name, bd.format(annotated), bd.format(typ)).
			WithNote(bd.exprs.Get(e.Type).Span, "declared type")
	}

	v, err := bd.evaluate(value, valueSpan)
	if err != nil {
		return bound.NodeID{}, err
	}
	c := bd.nodes.NewConstant(e.Span, e.Name, typ, v)
	scope.Insert(e.Name, c)
	return c, nil
}

// bindDeclaration is the storage counterpart of bindConstant: the value is
// optional and need not be constant. hint only types a declaration that
// has neither annotation nor value.
func (bd *binder) bindDeclaration(e *ast.Expr, scope *Scope, hint types.TypeID) (bound.NodeID, error) {
	var annotated types.TypeID
	if e.Type.IsValid() {
		t, err := bd.bindTypeExpr(e.Type, scope, "type annotation of "+strconv.Quote(e.Name))
		if err != nil {
			return bound.NodeID{}, err
		}
		annotated = t
	}

	var init bound.NodeID
	if e.Value.IsValid() {
		n, err := bd.bind(e.Value, scope.Child(), annotated)
		if err != nil {
			return bound.NodeID{}, err
		}
		if got := bd.nodes.TypeOf(n); annotated.IsValid() && got != annotated {
			return bound.NodeID{}, bd.errorf(diag.SemaTypeMismatch, bd.exprs.Get(e.Value).Span,
				"%q is declared as %s, but its value has type %s",
				e.Name, bd.format(annotated), bd.format(got)).
				WithNote(bd.exprs.Get(e.Type).Span, "declared type")
		}
		init = n
	}

	typ := annotated
	switch {
	case typ.IsValid():
	case init.IsValid():
		typ = bd.nodes.TypeOf(init)
	case hint.IsValid():
		typ = hint
	default:
		return bound.NodeID{}, bd.errorf(diag.SemaMissingType, e.Span,
			"declaration of %q needs a type or a value", e.Name)
	}

	d := bd.nodes.NewDeclaration(e.Span, e.Name, typ, init)
	scope.Insert(e.Name, d)
	return d, nil
}

func (bd *binder) bindName(e *ast.Expr, scope *Scope) (bound.NodeID, error) {
	target, ok := scope.Lookup(e.Name)
	if !ok {
		err := bd.errorf(diag.SemaUndefinedName, e.Span, "undefined name %q", e.Name)
		if h, foreign := dialect.Lookup(e.Name); foreign {
			err = err.WithNote(e.Span, h.Note())
		}
		return bound.NodeID{}, err
	}
	return bd.nodes.NewName(e.Span, target), nil
}

// bindIntLit types the literal by an integer hint, int otherwise.
func (bd *binder) bindIntLit(e *ast.Expr, hint types.TypeID) (bound.NodeID, error) {
	typ := bd.b.Int
	if hint.IsValid() && bd.types.Kind(hint).IsInteger() {
		typ = hint
	}

	var limit uint64
	switch bd.types.Kind(typ) {
	case types.KindU8:
		limit = math.MaxUint8
	case types.KindUint:
		limit = math.MaxUint64
	default:
		limit = math.MaxInt64
	}
	v, err := strconv.ParseUint(strings.ReplaceAll(e.Name, "_", ""), 10, 64)
	if err != nil || v > limit {
		return bound.NodeID{}, bd.errorf(diag.SemaIntegerOverflow, e.Span,
			"integer literal %s does not fit in %s", e.Name, bd.format(typ))
	}
	return bd.nodes.NewConstant(e.Span, "", typ, bound.IntValue(v)), nil
}

func (bd *binder) bindMember(e *ast.Expr, scope *Scope) (bound.NodeID, error) {
	operand, err := bd.bind(e.Value, scope, types.NoTypeID)
	if err != nil {
		return bound.NodeID{}, err
	}
	opType := bd.nodes.TypeOf(operand)
	t := *bd.types.Lookup(opType)
	if t.Kind != types.KindSlice {
		return bound.NodeID{}, bd.errorf(diag.SemaNoMembers, e.Span,
			"values of type %s have no members", bd.format(opType))
	}
	switch e.Name {
	case "data":
		return bd.nodes.NewMember(e.Span, operand, memberData, bd.types.Multipointer(t.Elem)), nil
	case "length":
		return bd.nodes.NewMember(e.Span, operand, memberLength, bd.b.Uint), nil
	}
	return bound.NodeID{}, bd.errorf(diag.SemaUnknownMember, e.NameSpan,
		"type %s has no member %q", bd.format(opType), e.Name)
}

func (bd *binder) bindProcedure(e *ast.Expr, scope *Scope, hint types.TypeID) (bound.NodeID, error) {
	// параметры и тело живут в одном кадре
	inner := scope.Child()
	var hinted types.Type
	if hint.IsValid() {
		hinted = *bd.types.Lookup(hint)
	}

	params := make([]bound.NodeID, 0, len(e.List))
	paramTypes := make([]types.TypeID, 0, len(e.List))
	for i, p := range e.List {
		pe := bd.exprs.Get(p)
		if pe.Kind != ast.ExprDeclaration {
			return bound.NodeID{}, bd.errorf(diag.SynExpectDeclaration, pe.Span,
				"procedure parameters must be declarations")
		}
		if pe.Value.IsValid() {
			return bound.NodeID{}, bd.errorf(diag.SemaDefaultParameterValue, bd.exprs.Get(pe.Value).Span,
				"default values for procedure parameters are not supported")
		}
		paramHint := types.NoTypeID
		if hinted.Kind == types.KindProcedure && i < len(hinted.Params) {
			paramHint = hinted.Params[i]
		}
		n, err := bd.bind(p, inner, paramHint)
		if err != nil {
			return bound.NodeID{}, err
		}
		params = append(params, n)
		paramTypes = append(paramTypes, bd.nodes.TypeOf(n))
	}

	ret, err := bd.bindTypeExpr(e.Type, inner, "return type")
	if err != nil {
		return bound.NodeID{}, err
	}
	body, err := bd.bind(e.Body, inner, ret)
	if err != nil {
		return bound.NodeID{}, err
	}
	if got := bd.nodes.TypeOf(body); got != ret {
		return bound.NodeID{}, bd.errorf(diag.SemaReturnTypeMismatch, bd.exprs.Get(e.Body).Span,
			"procedure body has type %s, but the return type is %s", bd.format(got), bd.format(ret)).
			WithNote(bd.exprs.Get(e.Type).Span, "return type")
	}

	var typ types.TypeID
	if hint.IsValid() && bd.types.IsProcedure(hint, paramTypes, ret) {
		typ = hint
	} else {
		typ = bd.types.Procedure(paramTypes, ret)
	}
	return bd.nodes.NewProcedure(e.Span, params, ret, typ, body), nil
}

func (bd *binder) bindCall(e *ast.Expr, scope *Scope) (bound.NodeID, error) {
	operand, err := bd.bind(e.Value, scope, types.NoTypeID)
	if err != nil {
		return bound.NodeID{}, err
	}
	opType := bd.nodes.TypeOf(operand)
	switch t := *bd.types.Lookup(opType); t.Kind {
	case types.KindType:
		return bd.bindConversion(e, scope, operand)
	case types.KindProcedure:
		return bd.bindInvocation(e, scope, operand, t)
	}
	return bound.NodeID{}, bd.errorf(diag.SemaNotCallable, bd.exprs.Get(e.Value).Span,
		"values of type %s are not callable", bd.format(opType))
}

// bindConversion handles `T(x)`. Only identity and uint -> int exist.
func (bd *binder) bindConversion(e *ast.Expr, scope *Scope, operand bound.NodeID) (bound.NodeID, error) {
	target, err := bd.typeValue(operand, bd.exprs.Get(e.Value).Span, "conversion target")
	if err != nil {
		return bound.NodeID{}, err
	}

	args := make([]bound.NodeID, 0, len(e.List))
	for _, a := range e.List {
		argHint := types.NoTypeID
		if len(e.List) == 1 {
			argHint = target
		}
		n, err := bd.bind(a, scope.Child(), argHint)
		if err != nil {
			return bound.NodeID{}, err
		}
		args = append(args, n)
	}
	if len(args) != 1 {
		return bound.NodeID{}, bd.errorf(diag.SemaArityMismatch, e.Span,
			"conversion to %s takes exactly one argument, got %d", bd.format(target), len(args))
	}

	from := bd.nodes.TypeOf(args[0])
	switch {
	case from == target:
		return args[0], nil
	case bd.types.Kind(target) == types.KindInt && bd.types.Kind(from) == types.KindUint:
		return bd.nodes.NewCast(e.Span, target, args), nil
	}
	return bound.NodeID{}, bd.errorf(diag.SemaUnsupportedConversion, e.Span,
		"cannot convert %s to %s", bd.format(from), bd.format(target))
}

func (bd *binder) bindInvocation(e *ast.Expr, scope *Scope, operand bound.NodeID, proc types.Type) (bound.NodeID, error) {
	if len(e.List) != len(proc.Params) {
		return bound.NodeID{}, bd.errorf(diag.SemaArityMismatch, e.Span,
			"procedure of type %s takes %d argument(s), got %d",
			bd.format(bd.nodes.TypeOf(operand)), len(proc.Params), len(e.List))
	}
	args := make([]bound.NodeID, 0, len(e.List))
	for i, a := range e.List {
		n, err := bd.bind(a, scope.Child(), proc.Params[i])
		if err != nil {
			return bound.NodeID{}, err
		}
		if got := bd.nodes.TypeOf(n); got != proc.Params[i] {
			return bound.NodeID{}, bd.errorf(diag.SemaArgumentTypeMismatch, bd.exprs.Get(a).Span,
				"argument %d has type %s, but the parameter has type %s",
				i+1, bd.format(got), bd.format(proc.Params[i]))
		}
		args = append(args, n)
	}
	return bd.nodes.NewCall(e.Span, operand, args, proc.Result), nil
}

// bindWrapperType handles []T, [^]T and ^T. The literal itself has type
// `type`, or the hint when the hint is a type-of-types.
func (bd *binder) bindWrapperType(e *ast.Expr, scope *Scope, hint types.TypeID) (bound.NodeID, error) {
	elem, err := bd.bindTypeExpr(e.Type, scope, "element type")
	if err != nil {
		return bound.NodeID{}, err
	}
	var denoted types.TypeID
	switch e.Kind {
	case ast.ExprSliceType:
		denoted = bd.types.Slice(elem)
	case ast.ExprMultipointerType:
		denoted = bd.types.Multipointer(elem)
	default:
		denoted = bd.types.Pointer(elem)
	}

	typeOfType := bd.b.Type
	if hint.IsValid() && bd.types.Kind(hint) == types.KindType {
		typeOfType = hint
	}
	return bd.nodes.NewTypeLiteral(e.Span, denoted, typeOfType), nil
}

// bindTypeExpr binds id in a child frame and folds it to the type it
// denotes.
func (bd *binder) bindTypeExpr(id ast.ExprID, scope *Scope, what string) (types.TypeID, error) {
	n, err := bd.bind(id, scope.Child(), bd.b.Type)
	if err != nil {
		return types.NoTypeID, err
	}
	return bd.typeValue(n, bd.exprs.Get(id).Span, what)
}

// typeValue checks that n is a constant of type `type` and evaluates it.
func (bd *binder) typeValue(n bound.NodeID, sp source.Span, what string) (types.TypeID, error) {
	if !bd.nodes.IsConstant(n) {
		return types.NoTypeID, bd.errorf(diag.SemaNotConstant, sp, "%s must be a compile-time constant", what)
	}
	if t := bd.nodes.TypeOf(n); bd.types.Kind(t) != types.KindType {
		return types.NoTypeID, bd.errorf(diag.SemaNotAType, sp,
			"%s must be a type, but it has type %s", what, bd.format(t))
	}
	v, err := bd.evaluate(n, sp)
	if err != nil {
		return types.NoTypeID, err
	}
	if v.Kind != bound.ValueType {
		return types.NoTypeID, bd.errorf(diag.SemaNotAType, sp, "%s must be a type, but it is %s", what, v)
	}
	return v.Type, nil
}

func (bd *binder) evaluate(n bound.NodeID, sp source.Span) (bound.Value, error) {
	v, err := eval.Evaluate(bd.nodes, n)
	if err == nil {
		return v, nil
	}
	var ue *eval.UnsupportedError
	if errors.As(err, &ue) {
		be := bd.errorf(diag.SemaUnimplemented, sp, "constant evaluation of %s nodes is not supported yet", ue.Kind)
		be.Err = err
		return bound.Value{}, be
	}
	return bound.Value{}, err
}
