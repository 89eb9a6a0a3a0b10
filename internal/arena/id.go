package arena

import "fmt"

// ID is a handle into exactly one Arena[T]. The zero ID is never issued.
//
// Besides the 1-based index, every ID carries the tag of the arena that
// issued it, so indexing the wrong arena fails loudly instead of returning
// an unrelated node.
type ID[T any] struct {
	tag   uint32
	index uint32
}

// IsValid reports whether the id was issued by some arena.
func (id ID[T]) IsValid() bool { return id.index != 0 }

// Index returns the 1-based position of the node inside its arena.
func (id ID[T]) Index() uint32 { return id.index }

func (id ID[T]) String() string {
	if !id.IsValid() {
		return "#none"
	}
	return fmt.Sprintf("#%d", id.index)
}
