package driver

import (
	"nkl/internal/binder"
	"nkl/internal/bound"
	"nkl/internal/diag"
	"nkl/internal/source"
	"nkl/internal/types"
)

// EntryName is the procedure a program starts at.
const EntryName = "main"

// MainType returns ([][^]u8) -> int in u.
func MainType(u *binder.Universe) types.TypeID {
	args := u.Types.Slice(u.Types.Multipointer(u.Builtins.U8))
	return u.Types.Procedure([]types.TypeID{args}, u.Builtins.Int)
}

// CheckEntry looks up main in the root scope of a bound file and checks
// its type. file locates the error when main is missing.
func CheckEntry(u *binder.Universe, file source.FileID) (bound.NodeID, error) {
	id, ok := u.Root.Lookup(EntryName)
	if !ok {
		return bound.NodeID{}, binder.Errorf(u.Files, diag.SemaMissingMain, source.Span{File: file},
			"Expected a procedure called main")
	}
	want := MainType(u)
	if got := u.Nodes.TypeOf(id); got != want {
		return bound.NodeID{}, binder.Errorf(u.Files, diag.SemaBadMainSignature, u.Nodes.Get(id).Span,
			"Expected the main function to have the type %s, but got %s",
			u.Types.Format(want), u.Types.Format(got))
	}
	return id, nil
}
