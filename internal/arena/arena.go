// Package arena provides the append-only node storage shared by the syntax
// tree, the bound graph and the type table.
package arena

import (
	"fmt"
	"sync/atomic"

	"fortio.org/safecast"
)

// lastTag hands out arena-instance tags; indices themselves are arena-local.
var lastTag atomic.Uint32

// Arena owns every value inserted into it. Values are never removed, so an
// ID stays valid for the arena's whole lifetime.
type Arena[T any] struct {
	tag  uint32
	data []T
}

// New creates an arena whose storage is preallocated for capHint values;
// zero is allowed.
func New[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		tag:  lastTag.Add(1),
		data: make([]T, 0, capHint),
	}
}

// Insert stores value and returns its fresh id.
func (a *Arena[T]) Insert(value T) ID[T] {
	a.data = append(a.data, value)
	index, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return ID[T]{tag: a.tag, index: index}
}

// Get returns a pointer to the stored value. Callers may mutate through it.
// Ids issued by another arena and the zero id report false.
func (a *Arena[T]) Get(id ID[T]) (*T, bool) {
	if id.index == 0 || id.tag != a.tag || int(id.index) > len(a.data) {
		return nil, false
	}
	return &a.data[id.index-1], true
}

// At is Get for ids whose validity is already an invariant. Unknown ids
// are a programming error and panic.
func (a *Arena[T]) At(id ID[T]) *T {
	v, ok := a.Get(id)
	if !ok {
		if id.index != 0 && id.tag != a.tag {
			panic(fmt.Sprintf("arena: id %s belongs to arena %d, not %d", id, id.tag, a.tag))
		}
		panic(fmt.Sprintf("arena: unknown id %s", id))
	}
	return v
}

func (a *Arena[T]) Len() int {
	return len(a.data)
}
