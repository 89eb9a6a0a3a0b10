// Package bound holds the output graph of the binder. Every edge between
// nodes is a NodeID into one Nodes arena, so forward and self references
// never alias.
package bound

import (
	"nkl/internal/arena"
	"nkl/internal/source"
	"nkl/internal/types"
)

type NodeID = arena.ID[Node]

type NodeKind uint8

const (
	NodeInvalid NodeKind = iota
	// NodeBlock: Exprs, Type (result).
	NodeBlock
	// NodeConstant: Type, Value.
	NodeConstant
	// NodeDeclaration: Type, Init (optional).
	NodeDeclaration
	// NodeTypeLiteral: Denoted, Type (always a type-of-types).
	NodeTypeLiteral
	// NodeName: Target.
	NodeName
	// NodeMember: Operand, Member, Type.
	NodeMember
	// NodeCall: Operand, Exprs (arguments), Type.
	NodeCall
	// NodeCast: Type (target), Exprs (sources).
	NodeCast
	// NodeProcedure: Exprs (parameter declarations), Return, Type (own procedure type), Body.
	NodeProcedure
)

var nodeKindNames = [...]string{
	NodeInvalid:     "invalid",
	NodeBlock:       "block",
	NodeConstant:    "constant",
	NodeDeclaration: "declaration",
	NodeTypeLiteral: "type",
	NodeName:        "name",
	NodeMember:      "member",
	NodeCall:        "call",
	NodeCast:        "cast",
	NodeProcedure:   "procedure",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(?)"
}

// Node is a bound node. The meaningful fields depend on Kind, see the
// NodeKind constants.
type Node struct {
	Kind NodeKind
	Span source.Span
	// Name is the source name of constants and declarations, for dumps.
	Name    string
	Exprs   []NodeID
	Target  NodeID
	Operand NodeID
	Init    NodeID
	Body    NodeID
	Type    types.TypeID
	Denoted types.TypeID
	Return  types.TypeID
	Member  int
	Value   Value
}
