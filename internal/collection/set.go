package collection

// Set stores unique elements on top of List. Clients use one for the plates
// of the vehicles they own.
type Set[T comparable] struct {
	items *List[T]
}

// NewSet returns an empty set.
func NewSet[T comparable]() *Set[T] {
	return &Set[T]{items: NewList[T]()}
}

// Add inserts v and reports whether it was absent before the call.
func (s *Set[T]) Add(v T) bool {
	if s.items.Contains(v) {
		return false
	}
	s.items.Append(v)
	return true
}

// Contains reports whether v is in the set.
func (s *Set[T]) Contains(v T) bool { return s.items.Contains(v) }

// Remove deletes v and reports whether it was present.
func (s *Set[T]) Remove(v T) bool { return s.items.Remove(v) }

// Len returns the number of elements.
func (s *Set[T]) Len() int { return s.items.Len() }

// IsEmpty reports whether the set has no elements.
func (s *Set[T]) IsEmpty() bool { return s.items.IsEmpty() }

// Values returns the elements in insertion order.
func (s *Set[T]) Values() []T { return s.items.ToSlice() }
