// Package eval folds constant bound nodes into compile-time values.
package eval

import (
	"errors"
	"fmt"

	"nkl/internal/bound"
	"nkl/internal/source"
)

// ErrNotYetSupported marks node kinds whose constant folding does not exist yet.
var ErrNotYetSupported = errors.New("constant evaluation not yet supported")

// UnsupportedError reports which node could not be folded.
type UnsupportedError struct {
	Kind bound.NodeKind
	Span source.Span
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, ErrNotYetSupported)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrNotYetSupported
}

// Evaluate returns the value of id. The caller must have checked
// nodes.IsConstant(id); evaluating anything else panics.
func Evaluate(nodes *bound.Nodes, id bound.NodeID) (bound.Value, error) {
	if !nodes.IsConstant(id) {
		panic(fmt.Sprintf("eval: node %s is not constant", id))
	}
	return evaluate(nodes, id)
}

func evaluate(nodes *bound.Nodes, id bound.NodeID) (bound.Value, error) {
	node := nodes.Get(id)
	switch node.Kind {
	case bound.NodeConstant:
		return node.Value, nil
	case bound.NodeTypeLiteral:
		return bound.TypeValue(node.Denoted), nil
	case bound.NodeName:
		return evaluate(nodes, node.Target)
	case bound.NodeProcedure:
		return bound.ProcedureValue(id), nil
	case bound.NodeBlock, bound.NodeMember, bound.NodeCall, bound.NodeCast, bound.NodeDeclaration:
		return bound.Value{}, &UnsupportedError{Kind: node.Kind, Span: node.Span}
	}
	panic(fmt.Sprintf("eval: unexpected %s node %s", node.Kind, id))
}
