// Package types describes the structural types of the language and interns
// compound ones, so that type equality is TypeID equality.
package types

import (
	"nkl/internal/arena"
)

// TypeID identifies a Type inside one type arena.
type TypeID = arena.ID[Type]

// NoTypeID is the zero id; it is never issued.
var NoTypeID TypeID

// Kind enumerates type categories.
type Kind uint8

const (
	// KindType is the type of expressions that denote types.
	KindType Kind = iota
	KindVoid
	KindInt
	KindUint
	KindU8
	KindSlice
	KindPointer
	KindMultipointer
	KindProcedure
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindVoid:
		return "void"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindU8:
		return "u8"
	case KindSlice:
		return "slice"
	case KindPointer:
		return "pointer"
	case KindMultipointer:
		return "multipointer"
	case KindProcedure:
		return "procedure"
	}
	return "Kind(?)"
}

// Type is a compact descriptor. Elem is set for slices and both pointer
// kinds; Params and Result for procedures.
type Type struct {
	Kind   Kind
	Elem   TypeID
	Params []TypeID
	Result TypeID
}

// IsPrimitive reports whether the kind has no component types.
func (k Kind) IsPrimitive() bool {
	return k <= KindU8
}

// IsInteger reports whether values of the kind are integers.
func (k Kind) IsInteger() bool {
	return k == KindInt || k == KindUint || k == KindU8
}

// Store owns the type descriptors of one compilation.
type Store = arena.Arena[Type]

// NewStore creates an empty type arena.
func NewStore() *Store {
	return arena.New[Type](64)
}
