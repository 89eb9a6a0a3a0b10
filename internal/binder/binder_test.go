package binder

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"nkl/internal/ast"
	"nkl/internal/bound"
	"nkl/internal/diag"
	"nkl/internal/eval"
	"nkl/internal/source"
	"nkl/internal/trace"
	"nkl/internal/types"
)

func TestMainProcedureType(t *testing.T) {
	r := mustBind(t, "main :: (args: [][^]u8) -> int {\n\t0\n}\n")
	in := r.u.Types
	want := in.Procedure([]types.TypeID{in.Slice(in.Multipointer(r.u.Builtins.U8))}, r.u.Builtins.Int)
	c := r.constant(t, "main")
	if c.Type != want {
		t.Fatalf("main : %s, want %s", in.Format(c.Type), in.Format(want))
	}
	if got := in.Format(c.Type); got != "([][^]u8) -> int" {
		t.Fatalf("Format = %q", got)
	}

	root := r.u.Nodes.Get(r.root)
	if root.Kind != bound.NodeBlock || root.Type != r.u.Builtins.Void || len(root.Exprs) != 1 {
		t.Fatalf("root = %s : %s with %d items", root.Kind, in.Format(root.Type), len(root.Exprs))
	}
	if pos := r.u.Files.Get(root.Span.File).Location(root.Span); pos != "test.nkl:1:1" {
		t.Fatalf("root located at %s", pos)
	}
}

func TestOnlyConstantsAtTopLevel(t *testing.T) {
	be := expectCode(t, "x := 1\n", diag.SemaOnlyConstantsInGlobalScope)
	if got := be.Error(); got != "test.nkl:1:1: Only constants are allowed in the global scope" {
		t.Fatalf("Error() = %q", got)
	}
	expectCode(t, "a :: 1\nb : int\n", diag.SemaOnlyConstantsInGlobalScope)
}

func TestNamesAreVisibleAfterTheirBinding(t *testing.T) {
	r := mustBind(t, "a :: 1\nb :: a\n")
	if v := r.constant(t, "b").Value; v.Kind != bound.ValueInt || v.Int != 1 {
		t.Fatalf("b = %s, want 1", v)
	}

	be := expectCode(t, "b :: a\na :: 1\n", diag.SemaUndefinedName)
	if got := be.Error(); got != `test.nkl:1:6: undefined name "a"` {
		t.Fatalf("Error() = %q", got)
	}
	expectCode(t, "f :: () -> int { f() }\n", diag.SemaUndefinedName)
}

func TestBlockScopes(t *testing.T) {
	mustBind(t, "main :: () -> int {\n\tx := 1\n\t{ x : uint = 2; x }\n\tx\n}\n")
	// the inner x must not replace the outer one
	expectCode(t, "main :: () -> uint {\n\tx := 1\n\t{ x : uint = 2 }\n\tx\n}\n", diag.SemaReturnTypeMismatch)
	expectCode(t, "main :: () -> int {\n\t{ y := 1 }\n\ty\n}\n", diag.SemaUndefinedName)
	expectCode(t, "main :: () -> int {\n\t(y :: 1)\n\ty\n}\n", diag.SemaUndefinedName)
}

func TestBlockTypes(t *testing.T) {
	r := mustBind(t, "f :: () -> void {}\ng :: (n: uint) -> uint { n }\n")
	body := r.u.Nodes.Get(r.procedure(t, "f").Body)
	if body.Type != r.u.Builtins.Void {
		t.Fatalf("empty body : %s", r.u.Types.Format(body.Type))
	}
	expectCode(t, "f :: () -> int {}\n", diag.SemaReturnTypeMismatch)
}

func TestTypePositionsRequireTypes(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{"x : 5 : 1\n", diag.SemaNotAType},
		{"f :: (x: 1) -> int { 0 }\n", diag.SemaNotAType},
		{"f :: () -> 0 { 0 }\n", diag.SemaNotAType},
		{"p :: []3\n", diag.SemaNotAType},
		{"f :: (t: type) -> int {\n\ty : t : 1\n\ty\n}\n", diag.SemaNotConstant},
		{"f :: (t: type) -> t { 0 }\n", diag.SemaNotConstant},
	}
	for _, tt := range tests {
		expectCode(t, tt.input, tt.code)
	}
}

func TestConstantsMustBeConstant(t *testing.T) {
	be := expectCode(t, "f :: (x: int) -> int {\n\ty :: x\n\ty\n}\n", diag.SemaNotConstant)
	if !strings.Contains(be.Message, `"y"`) {
		t.Fatalf("message %q does not name y", be.Message)
	}
	mustBind(t, "f :: (x: int) -> int {\n\ty := x\n\ty\n}\n")
}

func TestAnnotatedConstants(t *testing.T) {
	r := mustBind(t, "a : u8 : 255\nb : uint : 18446744073709551615\nT :: []u8\n")
	if c := r.constant(t, "a"); c.Type != r.u.Builtins.U8 || c.Value.Int != 255 {
		t.Fatalf("a : %s = %s", r.u.Types.Format(c.Type), c.Value)
	}
	if c := r.constant(t, "b"); c.Type != r.u.Builtins.Uint {
		t.Fatalf("b : %s", r.u.Types.Format(c.Type))
	}
	tc := r.constant(t, "T")
	if tc.Type != r.u.Builtins.Type || tc.Value.Kind != bound.ValueType ||
		r.u.Types.Format(tc.Value.Type) != "[]u8" {
		t.Fatalf("T : %s = %s", r.u.Types.Format(tc.Type), tc.Value)
	}

	be := expectCode(t, "x : uint : int(1)\n", diag.SemaTypeMismatch)
	if len(be.Notes) != 1 || be.Diagnostic().Notes[0].Msg != "declared type" {
		t.Fatalf("notes = %+v", be.Notes)
	}
	expectCode(t, "f :: () -> int {\n\tx : uint = int(1)\n\t0\n}\n", diag.SemaTypeMismatch)
}

func TestIntegerLiteralRanges(t *testing.T) {
	tests := []string{
		"a : u8 : 256\n",
		"a :: 9223372036854775808\n",
		"a : uint : 18446744073709551616\n",
	}
	for _, input := range tests {
		expectCode(t, input, diag.SemaIntegerOverflow)
	}
	r := mustBind(t, "a :: 9223372036854775807\nb :: 1_000\n")
	if v := r.constant(t, "b").Value.Int; v != 1000 {
		t.Fatalf("b = %d", v)
	}
}

func TestSliceMembers(t *testing.T) {
	r := mustBind(t, "d :: (s: []u8) -> [^]u8 { s.data }\nn :: (s: []u8) -> uint { s.length }\n")
	data := r.lastInBody(t, "d")
	if data.Kind != bound.NodeMember || data.Member != 0 || r.u.Types.Format(data.Type) != "[^]u8" {
		t.Fatalf("s.data = %s #%d : %s", data.Kind, data.Member, r.u.Types.Format(data.Type))
	}
	length := r.lastInBody(t, "n")
	if length.Member != 1 || length.Type != r.u.Builtins.Uint {
		t.Fatalf("s.length = #%d : %s", length.Member, r.u.Types.Format(length.Type))
	}
	if got := r.u.MemberName(r.u.Nodes.TypeOf(length.Operand), length.Member); got != "length" {
		t.Fatalf("MemberName = %q", got)
	}

	be := expectCode(t, "f :: (s: []u8) -> uint { s.size }\n", diag.SemaUnknownMember)
	if be.Pos.Col != 28 {
		t.Fatalf("unknown member reported at column %d, want the member name", be.Pos.Col)
	}
	expectCode(t, "f :: (s: u8) -> uint { s.length }\n", diag.SemaNoMembers)
}

func TestConversions(t *testing.T) {
	r := mustBind(t, "widen :: (n: uint) -> int { int(n) }\nsame :: (n: int) -> int { int(n) }\nlit :: () -> uint { uint(7) }\n")
	if n := r.lastInBody(t, "widen"); n.Kind != bound.NodeCast || n.Type != r.u.Builtins.Int {
		t.Fatalf("int(uint) = %s", n.Kind)
	}
	if n := r.lastInBody(t, "same"); n.Kind != bound.NodeName {
		t.Fatalf("int(int) = %s, want the argument itself", n.Kind)
	}
	if n := r.lastInBody(t, "lit"); n.Kind != bound.NodeConstant || n.Type != r.u.Builtins.Uint {
		t.Fatalf("uint(7) = %s : %s", n.Kind, r.u.Types.Format(n.Type))
	}

	expectCode(t, "f :: (n: int) -> uint { uint(n) }\n", diag.SemaUnsupportedConversion)
	expectCode(t, "f :: (n: uint) -> int { int(n, n) }\n", diag.SemaArityMismatch)
	expectCode(t, "f :: () -> int { int() }\n", diag.SemaArityMismatch)
	expectCode(t, "f :: (t: type) -> int { t(0) }\n", diag.SemaNotConstant)
}

func TestProcedureCalls(t *testing.T) {
	r := mustBind(t, "id :: (x: int) -> int { x }\nmain :: (args: [][^]u8) -> int { id(0) }\n")
	call := r.lastInBody(t, "main")
	if call.Kind != bound.NodeCall || call.Type != r.u.Builtins.Int || len(call.Exprs) != 1 {
		t.Fatalf("id(0) = %s : %s", call.Kind, r.u.Types.Format(call.Type))
	}

	expectCode(t, "id :: (x: int) -> int { x }\nf :: () -> int { id() }\n", diag.SemaArityMismatch)
	expectCode(t, "id :: (x: int) -> int { x }\nf :: (s: []u8) -> int { id(s) }\n", diag.SemaArgumentTypeMismatch)
	expectCode(t, "f :: (x: int) -> int { x(1) }\n", diag.SemaNotCallable)
}

func TestProcedureTypesAreShared(t *testing.T) {
	r := mustBind(t, "a :: (x: int) -> int { x }\nb :: (y: int) -> int { y }\n")
	if r.constant(t, "a").Type != r.constant(t, "b").Type {
		t.Fatalf("structurally equal procedures got distinct types")
	}
	expectCode(t, "f :: (x: int) -> uint { x }\n", diag.SemaReturnTypeMismatch)
	expectCode(t, "f :: (x: int = 1) -> int { x }\n", diag.SemaDefaultParameterValue)
}

func TestUnimplementedForms(t *testing.T) {
	inputs := []string{
		"S :: (a: int, b: int)\n",
		"A :: [4]u8\n",
		"P :: (x: int) -> int\n",
		"x :: int(uint(1))\n",
	}
	for _, input := range inputs {
		r := bindSource(t, input)
		if !IsUnimplemented(r.err) {
			t.Fatalf("bind %q: %v, want an unimplemented error", input, r.err)
		}
	}
	r := bindSource(t, "x :: int(uint(1))\n")
	if !errors.Is(r.err, eval.ErrNotYetSupported) {
		t.Fatalf("cast folding error does not wrap ErrNotYetSupported: %v", r.err)
	}
}

func TestPointerTypes(t *testing.T) {
	r := mustBind(t, "P :: ^u8\nf :: (p: ^u8) -> ^u8 { p }\n")
	if got := r.u.Types.Format(r.constant(t, "P").Value.Type); got != "^u8" {
		t.Fatalf("P = %s", got)
	}
}

func TestParameterTypesFromHint(t *testing.T) {
	u := NewUniverse(nil)
	fileID := u.Files.AddVirtual("hint.nkl", []byte("(x) -> int { x }"))
	sp := func(a, b uint32) source.Span { return source.Span{File: fileID, Start: a, End: b} }

	b := ast.NewBuilder(0)
	param := b.Declaration(sp(1, 2), sp(1, 2), "x", ast.ExprID{}, ast.ExprID{})
	ret := b.Name(sp(7, 10), "int")
	body := b.Block(sp(11, 16), []ast.ExprID{b.Name(sp(13, 14), "x")})
	proc := b.Procedure(sp(0, 16), []ast.ExprID{param}, ret, body)

	bd := &binder{u: u, exprs: b, nodes: u.Nodes, types: u.Types, b: u.Builtins, tracer: trace.Nop}
	hint := u.Types.Procedure([]types.TypeID{u.Builtins.Int}, u.Builtins.Int)
	id, err := bd.bind(proc, u.Root, hint)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	n := u.Nodes.Get(id)
	if n.Type != hint {
		t.Fatalf("procedure : %s, want the hint", u.Types.Format(n.Type))
	}
	if pt := u.Nodes.TypeOf(n.Exprs[0]); pt != u.Builtins.Int {
		t.Fatalf("x : %s, want int from the hint", u.Types.Format(pt))
	}

	if _, err := bd.bind(proc, u.Root, types.NoTypeID); CodeOf(err) != diag.SemaMissingType {
		t.Fatalf("without a hint: %v, want %s", err, diag.SemaMissingType.ID())
	}
}

func TestErrorDiagnostic(t *testing.T) {
	be := expectCode(t, "f :: (x: int) -> uint { x }\n", diag.SemaReturnTypeMismatch)
	d := be.Diagnostic()
	if d.Severity != diag.SevError || d.Code != diag.SemaReturnTypeMismatch || d.Primary != be.Span {
		t.Fatalf("diagnostic = %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Msg != "return type" {
		t.Fatalf("notes = %+v", d.Notes)
	}
	if CodeOf(errors.New("plain")) != diag.UnknownCode {
		t.Fatalf("CodeOf(plain error) is not UnknownCode")
	}
}

func TestBindEmitsNodeEvents(t *testing.T) {
	u := NewUniverse(nil)
	fileID := u.Files.AddVirtual("t.nkl", []byte("a :: 1"))
	b := ast.NewBuilder(0)
	lit := b.IntLit(source.Span{File: fileID, Start: 5, End: 6}, "1")
	c := b.Constant(source.Span{File: fileID, Start: 0, End: 6}, source.Span{File: fileID, Start: 0, End: 1}, "a", ast.ExprID{}, lit)
	file := &ast.File{Path: "t.nkl", Span: source.Span{File: fileID, End: 6}, Items: []ast.ExprID{c}}

	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	if _, err := BindFile(u, b, file, Options{Tracer: tr}); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if err := tr.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"bind:Constant", "bind:IntLit"} {
		if !strings.Contains(out, want) {
			t.Fatalf("trace output lacks %q:\n%s", want, out)
		}
	}
}

func TestDumpNamesMembers(t *testing.T) {
	r := mustBind(t, "n :: (s: []u8) -> uint { s.length }\n")
	var sb strings.Builder
	if err := bound.Fprint(&sb, r.u.Dumper().Dump(r.root)); err != nil {
		t.Fatalf("Fprint: %v", err)
	}
	out := sb.String()
	for _, want := range []string{".length", "procedure", "test.nkl:1:1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump lacks %q:\n%s", want, out)
		}
	}
}

func TestForeignKeywordNote(t *testing.T) {
	be := expectCode(t, "f :: () -> int { return }\n", diag.SemaUndefinedName)
	if len(be.Notes) != 1 || !strings.Contains(be.Notes[0].Msg, "last expression") {
		t.Fatalf("notes = %+v", be.Notes)
	}
	plain := expectCode(t, "f :: () -> int { nothing }\n", diag.SemaUndefinedName)
	if len(plain.Notes) != 0 {
		t.Fatalf("unexpected notes for a plain name: %+v", plain.Notes)
	}
}
