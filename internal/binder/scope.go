package binder

import "nkl/internal/bound"

// Scope is one frame of the name environment. Lookups walk the parent
// chain; inserts only touch the frame itself, so a child never changes
// what its parent sees.
type Scope struct {
	parent *Scope
	names  map[string]bound.NodeID
}

func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, names: make(map[string]bound.NodeID)}
}

// Child opens a nested frame.
func (s *Scope) Child() *Scope {
	return NewScope(s)
}

func (s *Scope) Lookup(name string) (bound.NodeID, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if id, ok := cur.names[name]; ok {
			return id, true
		}
	}
	return bound.NodeID{}, false
}

// Insert binds name in this frame, replacing an earlier binding of the
// same name here and shadowing any in the parents.
func (s *Scope) Insert(name string, id bound.NodeID) {
	s.names[name] = id
}

// Len returns the number of names bound in this frame only.
func (s *Scope) Len() int {
	return len(s.names)
}
