package binder

import (
	"testing"

	"nkl/internal/ast"
	"nkl/internal/bound"
	"nkl/internal/diag"
	"nkl/internal/lexer"
	"nkl/internal/parser"
)

type bindResult struct {
	u    *Universe
	root bound.NodeID
	err  error
}

func bindSource(t *testing.T, input string) bindResult {
	t.Helper()
	u := NewUniverse(nil)
	fileID := u.Files.AddVirtual("test.nkl", []byte(input))
	file := u.Files.Get(fileID)
	bag := diag.NewBag(16)
	rep := &diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(0)
	res := parser.ParseFile(file, lexer.New(file, lexer.Options{Reporter: rep}), b, parser.Options{Reporter: rep})
	if res.Failed || bag.HasErrors() {
		msg := "<none>"
		if bag.Len() > 0 {
			msg = bag.Items()[0].Message
		}
		t.Fatalf("parse %q: %d diagnostics, first: %s", input, bag.Len(), msg)
	}
	root, err := BindFile(u, b, res.File, Options{})
	return bindResult{u: u, root: root, err: err}
}

func mustBind(t *testing.T, input string) bindResult {
	t.Helper()
	r := bindSource(t, input)
	if r.err != nil {
		t.Fatalf("bind %q: %v", input, r.err)
	}
	return r
}

func expectCode(t *testing.T, input string, want diag.Code) *Error {
	t.Helper()
	r := bindSource(t, input)
	if r.err == nil {
		t.Fatalf("bind %q: expected %s, got success", input, want.ID())
	}
	be, ok := r.err.(*Error)
	if !ok {
		t.Fatalf("bind %q: error %T is not *Error: %v", input, r.err, r.err)
	}
	if be.Code != want {
		t.Fatalf("bind %q: code %s (%v), want %s", input, be.Code.ID(), be, want.ID())
	}
	return be
}

// constant returns the top-level constant called name.
func (r bindResult) constant(t *testing.T, name string) *bound.Node {
	t.Helper()
	id, ok := r.u.Root.Lookup(name)
	if !ok {
		t.Fatalf("constant %q not bound", name)
	}
	n := r.u.Nodes.Get(id)
	if n.Kind != bound.NodeConstant {
		t.Fatalf("%q is a %s, want constant", name, n.Kind)
	}
	return n
}

// procedure returns the procedure node a top-level constant holds.
func (r bindResult) procedure(t *testing.T, name string) *bound.Node {
	t.Helper()
	c := r.constant(t, name)
	if c.Value.Kind != bound.ValueProcedure {
		t.Fatalf("%q holds %s, want a procedure", name, c.Value)
	}
	return r.u.Nodes.Get(c.Value.Procedure)
}

// lastInBody returns the last node of a procedure's body block.
func (r bindResult) lastInBody(t *testing.T, name string) *bound.Node {
	t.Helper()
	body := r.u.Nodes.Get(r.procedure(t, name).Body)
	if len(body.Exprs) == 0 {
		t.Fatalf("%q has an empty body", name)
	}
	return r.u.Nodes.Get(body.Exprs[len(body.Exprs)-1])
}
