package collection

// Stack is a LIFO built on the same linked nodes as List. The engine uses
// one as the ticket history: check-in pushes, nothing pops except an
// explicit scan that restores the original order afterwards.
type Stack[T comparable] struct {
	top  *node[T]
	size int
}

// NewStack returns an empty stack.
func NewStack[T comparable]() *Stack[T] {
	return &Stack[T]{}
}

// Len returns the number of stacked elements.
func (s *Stack[T]) Len() int { return s.size }

// IsEmpty reports whether the stack has no elements.
func (s *Stack[T]) IsEmpty() bool { return s.size == 0 }

// Push places v on top of the stack.
func (s *Stack[T]) Push(v T) {
	s.top = &node[T]{value: v, next: s.top}
	s.size++
}

// Pop removes and returns the top element.
func (s *Stack[T]) Pop() (T, error) {
	var zero T
	if s.top == nil {
		return zero, ErrEmptyCollection
	}
	v := s.top.value
	s.top = s.top.next
	s.size--
	return v, nil
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (T, error) {
	var zero T
	if s.top == nil {
		return zero, ErrEmptyCollection
	}
	return s.top.value, nil
}

// Contains reports whether v is somewhere in the stack.
func (s *Stack[T]) Contains(v T) bool {
	for cur := s.top; cur != nil; cur = cur.next {
		if cur.value == v {
			return true
		}
	}
	return false
}

// Clear removes all elements.
func (s *Stack[T]) Clear() {
	s.top = nil
	s.size = 0
}

// Drain empties the stack into a list in top-to-bottom order.
func (s *Stack[T]) Drain() *List[T] {
	out := NewList[T]()
	for s.top != nil {
		out.Append(s.top.value)
		s.top = s.top.next
		s.size--
	}
	return out
}
