package bound

import (
	"fmt"
	"io"
	"strings"

	"nkl/internal/source"
	"nkl/internal/types"
)

// DumpNode is a serialisable view of a bound node and its children.
// Name references are not expanded; Target holds the referenced id.
type DumpNode struct {
	ID       uint32      `json:"id" yaml:"id" msgpack:"id"`
	Kind     string      `json:"kind" yaml:"kind" msgpack:"kind"`
	Name     string      `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Type     string      `json:"type,omitempty" yaml:"type,omitempty" msgpack:"type,omitempty"`
	Denotes  string      `json:"denotes,omitempty" yaml:"denotes,omitempty" msgpack:"denotes,omitempty"`
	Returns  string      `json:"returns,omitempty" yaml:"returns,omitempty" msgpack:"returns,omitempty"`
	Value    string      `json:"value,omitempty" yaml:"value,omitempty" msgpack:"value,omitempty"`
	Member   string      `json:"member,omitempty" yaml:"member,omitempty" msgpack:"member,omitempty"`
	Target   uint32      `json:"target,omitempty" yaml:"target,omitempty" msgpack:"target,omitempty"`
	At       string      `json:"at" yaml:"at" msgpack:"at"`
	Children []*DumpNode `json:"children,omitempty" yaml:"children,omitempty" msgpack:"children,omitempty"`
}

// Dumper converts bound nodes into DumpNode trees.
type Dumper struct {
	Nodes *Nodes
	Types *types.Interner
	// Files resolves spans to "path:line:col"; nil prints raw offsets.
	Files *source.FileSet
	// MemberName maps a member index of the operand's type to its name.
	MemberName func(operand types.TypeID, index int) string
}

func (d *Dumper) Dump(id NodeID) *DumpNode {
	node := d.Nodes.Get(id)
	out := &DumpNode{
		ID:   id.Index(),
		Kind: node.Kind.String(),
		Name: node.Name,
		At:   d.location(node.Span),
	}
	if node.Kind != NodeName && node.Type.IsValid() {
		out.Type = d.Types.Format(node.Type)
	}

	var children []NodeID
	switch node.Kind {
	case NodeBlock, NodeCast:
		children = node.Exprs
	case NodeConstant:
		out.Value = d.value(node.Value)
		if node.Value.Kind == ValueProcedure {
			children = []NodeID{node.Value.Procedure}
		}
	case NodeDeclaration:
		if node.Init.IsValid() {
			children = []NodeID{node.Init}
		}
	case NodeTypeLiteral:
		out.Denotes = d.Types.Format(node.Denoted)
	case NodeName:
		out.Target = node.Target.Index()
		out.Type = d.Types.Format(d.Nodes.TypeOf(id))
		if target := d.Nodes.Get(node.Target); target.Name != "" {
			out.Name = target.Name
		}
	case NodeMember:
		out.Member = fmt.Sprintf("%d", node.Member)
		if d.MemberName != nil {
			if name := d.MemberName(d.Nodes.TypeOf(node.Operand), node.Member); name != "" {
				out.Member = name
			}
		}
		children = []NodeID{node.Operand}
	case NodeCall:
		children = append([]NodeID{node.Operand}, node.Exprs...)
	case NodeProcedure:
		out.Returns = d.Types.Format(node.Return)
		children = append(append([]NodeID(nil), node.Exprs...), node.Body)
	}
	for _, c := range children {
		out.Children = append(out.Children, d.Dump(c))
	}
	return out
}

func (d *Dumper) value(v Value) string {
	switch v.Kind {
	case ValueType:
		return "type " + d.Types.Format(v.Type)
	case ValueProcedure:
		return "procedure #" + fmt.Sprint(v.Procedure.Index())
	}
	return v.String()
}

func (d *Dumper) location(sp source.Span) string {
	if d.Files == nil || int(sp.File) >= d.Files.Len() {
		return sp.String()
	}
	return d.Files.Get(sp.File).Location(sp)
}

// Fprint writes the tree in an indented one-node-per-line form.
func Fprint(w io.Writer, root *DumpNode) error {
	return fprint(w, root, 0)
}

func fprint(w io.Writer, n *DumpNode, depth int) error {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(&sb, "#%d %s", n.ID, n.Kind)
	if n.Name != "" {
		sb.WriteString(" " + n.Name)
	}
	if n.Member != "" {
		sb.WriteString(" ." + n.Member)
	}
	if n.Target != 0 {
		fmt.Fprintf(&sb, " -> #%d", n.Target)
	}
	if n.Type != "" {
		sb.WriteString(" : " + n.Type)
	}
	if n.Denotes != "" {
		sb.WriteString(" = " + n.Denotes)
	}
	if n.Value != "" {
		sb.WriteString(" = " + n.Value)
	}
	if n.Returns != "" {
		sb.WriteString(" returns " + n.Returns)
	}
	fmt.Fprintf(&sb, " @%s\n", n.At)
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := fprint(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
