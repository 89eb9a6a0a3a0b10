package types

// Builtins stores TypeIDs for the primitive types.
type Builtins struct {
	Type TypeID
	Void TypeID
	Int  TypeID
	Uint TypeID
	U8   TypeID
}

// InsertBuiltins adds one descriptor per primitive kind to store.
// The interner never creates primitives itself.
func InsertBuiltins(store *Store) Builtins {
	return Builtins{
		Type: store.Insert(Type{Kind: KindType}),
		Void: store.Insert(Type{Kind: KindVoid}),
		Int:  store.Insert(Type{Kind: KindInt}),
		Uint: store.Insert(Type{Kind: KindUint}),
		U8:   store.Insert(Type{Kind: KindU8}),
	}
}

// Named returns the builtin names in a fixed order, for seeding scopes.
func (b Builtins) Named() []NamedType {
	return []NamedType{
		{"type", b.Type},
		{"void", b.Void},
		{"u8", b.U8},
		{"int", b.Int},
		{"uint", b.Uint},
	}
}

type NamedType struct {
	Name string
	ID   TypeID
}
