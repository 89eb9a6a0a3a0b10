package types

import (
	"strconv"
	"strings"
)

// Interner returns one TypeID per structural shape. Memo tables are keyed
// by component ids, which are themselves canonical.
type Interner struct {
	store         *Store
	builtins      Builtins
	slices        map[TypeID]TypeID
	pointers      map[TypeID]TypeID
	multipointers map[TypeID]TypeID
	// procedures: encoded parameter list -> result -> procedure type.
	procedures map[string]map[TypeID]TypeID
}

// NewInterner wraps store; builtins must already live in it.
func NewInterner(store *Store, builtins Builtins) *Interner {
	return &Interner{
		store:         store,
		builtins:      builtins,
		slices:        make(map[TypeID]TypeID),
		pointers:      make(map[TypeID]TypeID),
		multipointers: make(map[TypeID]TypeID),
		procedures:    make(map[string]map[TypeID]TypeID),
	}
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Store returns the underlying type arena.
func (in *Interner) Store() *Store {
	return in.store
}

// Lookup returns the descriptor for id. Unknown ids panic.
func (in *Interner) Lookup(id TypeID) *Type {
	return in.store.At(id)
}

// Kind is a shortcut for Lookup(id).Kind.
func (in *Interner) Kind(id TypeID) Kind {
	return in.store.At(id).Kind
}

func (in *Interner) Slice(elem TypeID) TypeID {
	return in.wrap(in.slices, KindSlice, elem)
}

func (in *Interner) Pointer(elem TypeID) TypeID {
	return in.wrap(in.pointers, KindPointer, elem)
}

func (in *Interner) Multipointer(elem TypeID) TypeID {
	return in.wrap(in.multipointers, KindMultipointer, elem)
}

func (in *Interner) wrap(memo map[TypeID]TypeID, kind Kind, elem TypeID) TypeID {
	if id, ok := memo[elem]; ok {
		return id
	}
	in.store.At(elem) // чужой или неизвестный id паникует здесь, а не позже
	id := in.store.Insert(Type{Kind: kind, Elem: elem})
	memo[elem] = id
	return id
}

// Procedure interns the signature (params) -> result.
func (in *Interner) Procedure(params []TypeID, result TypeID) TypeID {
	key := in.paramsKey(params)
	byResult, ok := in.procedures[key]
	if !ok {
		byResult = make(map[TypeID]TypeID)
		in.procedures[key] = byResult
	}
	if id, ok := byResult[result]; ok {
		return id
	}
	in.store.At(result)
	id := in.store.Insert(Type{
		Kind:   KindProcedure,
		Params: append([]TypeID(nil), params...),
		Result: result,
	})
	byResult[result] = id
	return id
}

func (in *Interner) paramsKey(params []TypeID) string {
	var sb strings.Builder
	for i, p := range params {
		in.store.At(p)
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(p.Index()), 10))
	}
	return sb.String()
}

// IsProcedure reports whether id is a procedure type with exactly the
// given signature.
func (in *Interner) IsProcedure(id TypeID, params []TypeID, result TypeID) bool {
	t := in.Lookup(id)
	if t.Kind != KindProcedure || t.Result != result || len(t.Params) != len(params) {
		return false
	}
	for i := range params {
		if t.Params[i] != params[i] {
			return false
		}
	}
	return true
}
