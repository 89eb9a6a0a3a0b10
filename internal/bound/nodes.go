package bound

import (
	"fmt"

	"nkl/internal/arena"
	"nkl/internal/source"
	"nkl/internal/types"
)

// Nodes owns the bound nodes of one compilation.
type Nodes struct {
	Arena *arena.Arena[Node]
}

func NewNodes(capHint uint) *Nodes {
	return &Nodes{Arena: arena.New[Node](capHint)}
}

func (n *Nodes) Get(id NodeID) *Node {
	return n.Arena.At(id)
}

// Lookup is the non-panicking Get.
func (n *Nodes) Lookup(id NodeID) (*Node, bool) {
	return n.Arena.Get(id)
}

func (n *Nodes) Len() int {
	return n.Arena.Len()
}

func (n *Nodes) insert(node Node) NodeID {
	return n.Arena.Insert(node)
}

func (n *Nodes) NewBlock(sp source.Span, exprs []NodeID, result types.TypeID) NodeID {
	return n.insert(Node{Kind: NodeBlock, Span: sp, Exprs: exprs, Type: result})
}

func (n *Nodes) NewConstant(sp source.Span, name string, typ types.TypeID, value Value) NodeID {
	return n.insert(Node{Kind: NodeConstant, Span: sp, Name: name, Type: typ, Value: value})
}

func (n *Nodes) NewDeclaration(sp source.Span, name string, typ types.TypeID, init NodeID) NodeID {
	return n.insert(Node{Kind: NodeDeclaration, Span: sp, Name: name, Type: typ, Init: init})
}

func (n *Nodes) NewTypeLiteral(sp source.Span, denoted, typeOfType types.TypeID) NodeID {
	return n.insert(Node{Kind: NodeTypeLiteral, Span: sp, Denoted: denoted, Type: typeOfType})
}

// NewName panics if target is not an existing node: names only ever refer
// back to nodes that were bound earlier.
func (n *Nodes) NewName(sp source.Span, target NodeID) NodeID {
	n.Get(target)
	return n.insert(Node{Kind: NodeName, Span: sp, Target: target})
}

func (n *Nodes) NewMember(sp source.Span, operand NodeID, member int, result types.TypeID) NodeID {
	return n.insert(Node{Kind: NodeMember, Span: sp, Operand: operand, Member: member, Type: result})
}

func (n *Nodes) NewCall(sp source.Span, operand NodeID, args []NodeID, result types.TypeID) NodeID {
	return n.insert(Node{Kind: NodeCall, Span: sp, Operand: operand, Exprs: args, Type: result})
}

func (n *Nodes) NewCast(sp source.Span, target types.TypeID, from []NodeID) NodeID {
	return n.insert(Node{Kind: NodeCast, Span: sp, Type: target, Exprs: from})
}

func (n *Nodes) NewProcedure(sp source.Span, params []NodeID, ret, typ types.TypeID, body NodeID) NodeID {
	return n.insert(Node{Kind: NodeProcedure, Span: sp, Exprs: params, Return: ret, Type: typ, Body: body})
}

// IsConstant reports whether the node denotes a compile-time value.
// Declarations denote storage and are never constant.
func (n *Nodes) IsConstant(id NodeID) bool {
	node := n.Get(id)
	switch node.Kind {
	case NodeConstant, NodeTypeLiteral, NodeProcedure:
		return true
	case NodeDeclaration:
		return false
	case NodeName:
		return n.IsConstant(node.Target)
	case NodeMember:
		return n.IsConstant(node.Operand)
	case NodeCall:
		return n.IsConstant(node.Operand) && n.allConstant(node.Exprs)
	case NodeBlock, NodeCast:
		return n.allConstant(node.Exprs)
	}
	panic(fmt.Sprintf("bound: IsConstant on %s node %s", node.Kind, id))
}

func (n *Nodes) allConstant(ids []NodeID) bool {
	for _, id := range ids {
		if !n.IsConstant(id) {
			return false
		}
	}
	return true
}

// TypeOf returns the type of the value the node produces. Names are
// followed to their target.
func (n *Nodes) TypeOf(id NodeID) types.TypeID {
	node := n.Get(id)
	for node.Kind == NodeName {
		node = n.Get(node.Target)
	}
	if node.Kind == NodeInvalid {
		panic(fmt.Sprintf("bound: TypeOf on invalid node %s", id))
	}
	return node.Type
}
