package xsd

import (
	"sync"

	"github.com/IndependentIP/xsd-reader/xmltree"
)

// A slot holds a lazily computed value. The value is computed outside
// of the lock, so a computation may consult other slots, including
// those of its own Node. If two goroutines race, both compute the
// same value and the first one stored wins.
type slot[T any] struct {
	mu   sync.Mutex
	done bool
	v    T
}

func (s *slot[T]) get(compute func() T) T {
	s.mu.Lock()
	if s.done {
		v := s.v
		s.mu.Unlock()
		return v
	}
	s.mu.Unlock()

	v := compute()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.done {
		s.v, s.done = v, true
	}
	return s.v
}

// slotMap is a slot per key.
type slotMap[K comparable, T any] struct {
	mu sync.Mutex
	m  map[K]T
}

func (s *slotMap[K, T]) get(key K, compute func() T) T {
	s.mu.Lock()
	if v, ok := s.m[key]; ok {
		s.mu.Unlock()
		return v
	}
	s.mu.Unlock()

	v := compute()

	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.m[key]; ok {
		return prev
	}
	if s.m == nil {
		s.m = make(map[K]T)
	}
	s.m[key] = v
	return v
}

// A visitKey identifies a construct by the document it belongs to
// and its element within that document.
type visitKey struct {
	doc, el *xmltree.Element
}

// visitSet tracks the constructs on the current path of a recursive
// resolution. Entering a construct that is already on the path means
// the schema refers back to itself, and the caller cuts the recursion
// short with an empty result.
type visitSet map[visitKey]bool

func (v visitSet) enter(n *Node) bool {
	k := n.key()
	if v[k] {
		return false
	}
	v[k] = true
	return true
}

func (v visitSet) leave(n *Node) {
	delete(v, n.key())
}
