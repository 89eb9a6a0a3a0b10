package binder

import (
	"strings"

	"nkl/internal/bound"
	"nkl/internal/source"
	"nkl/internal/types"
)

// BuiltinPath is the virtual file the builtin type names live in.
const BuiltinPath = "builtin.nkl"

// Universe is the shared state of one compilation: files, the node and
// type arenas, and the root scope seeded with the builtin types.
type Universe struct {
	Files    *source.FileSet
	Nodes    *bound.Nodes
	Types    *types.Interner
	Builtins types.Builtins
	Root     *Scope
	// BuiltinFile holds one line per builtin name.
	BuiltinFile source.FileID
}

// NewUniverse registers the builtin file in files (a fresh set when nil)
// and binds type, void, u8, int and uint in the root scope.
func NewUniverse(files *source.FileSet) *Universe {
	if files == nil {
		files = source.NewFileSet()
	}
	store := types.NewStore()
	builtins := types.InsertBuiltins(store)
	named := builtins.Named()

	var sb strings.Builder
	for _, nt := range named {
		sb.WriteString(nt.Name)
		sb.WriteByte('\n')
	}
	fileID := files.AddVirtual(BuiltinPath, []byte(sb.String()))

	u := &Universe{
		Files:       files,
		Nodes:       bound.NewNodes(0),
		Types:       types.NewInterner(store, builtins),
		Builtins:    builtins,
		Root:        NewScope(nil),
		BuiltinFile: fileID,
	}
	var off uint32
	for _, nt := range named {
		sp := source.Span{File: fileID, Start: off, End: off + uint32(len(nt.Name))} // #nosec G115 -- builtin names are short
		u.Root.Insert(nt.Name, u.Nodes.NewTypeLiteral(sp, nt.ID, builtins.Type))
		off = sp.End + 1
	}
	return u
}

// MemberName names member index of values of type operand, for dumps.
func (u *Universe) MemberName(operand types.TypeID, index int) string {
	if u.Types.Kind(operand) == types.KindSlice {
		switch index {
		case memberData:
			return "data"
		case memberLength:
			return "length"
		}
	}
	return ""
}

// Dumper returns a bound.Dumper over this universe.
func (u *Universe) Dumper() *bound.Dumper {
	return &bound.Dumper{
		Nodes:      u.Nodes,
		Types:      u.Types,
		Files:      u.Files,
		MemberName: u.MemberName,
	}
}
