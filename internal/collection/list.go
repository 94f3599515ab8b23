// Package collection implements the linked data structures the parking
// engine is built on: an ordered singly linked list, a LIFO stack, a FIFO
// queue, a small set and a comparator-ordered binary search tree. All of
// them share the same node-per-element representation and none of them are
// safe for concurrent use; the engine serializes access with its own lock.
package collection

import "errors"

// ErrOutOfRange is returned by positional list operations when the index
// does not address an existing element. Receiving it indicates a bug in the
// caller, not a runtime condition to recover from.
var ErrOutOfRange = errors.New("index out of range")

// ErrEmptyCollection is returned when an element is requested from an empty
// stack or queue. Like ErrOutOfRange it signals caller error.
var ErrEmptyCollection = errors.New("empty collection")

// node is the single-link cell shared by List, Stack and Queue.
type node[T any] struct {
	value T
	next  *node[T]
}

// List is an insertion-order-preserving singly linked list. There is no
// tail pointer, so Append and positional access are O(n); the sizes this
// service handles make that acceptable.
type List[T comparable] struct {
	head *node[T]
	size int
}

// NewList returns an empty list.
func NewList[T comparable]() *List[T] {
	return &List[T]{}
}

// Len returns the number of elements in the list.
func (l *List[T]) Len() int { return l.size }

// IsEmpty reports whether the list has no elements.
func (l *List[T]) IsEmpty() bool { return l.size == 0 }

// Append adds v at the end of the list.
func (l *List[T]) Append(v T) {
	n := &node[T]{value: v}
	if l.head == nil {
		l.head = n
	} else {
		cur := l.head
		for cur.next != nil {
			cur = cur.next
		}
		cur.next = n
	}
	l.size++
}

// Remove deletes the first element equal to v and reports whether one was
// found.
func (l *List[T]) Remove(v T) bool {
	if l.head == nil {
		return false
	}
	if l.head.value == v {
		l.head = l.head.next
		l.size--
		return true
	}
	for cur := l.head; cur.next != nil; cur = cur.next {
		if cur.next.value == v {
			cur.next = cur.next.next
			l.size--
			return true
		}
	}
	return false
}

// Get returns the element at position i (0-based).
func (l *List[T]) Get(i int) (T, error) {
	var zero T
	if i < 0 || i >= l.size {
		return zero, ErrOutOfRange
	}
	cur := l.head
	for ; i > 0; i-- {
		cur = cur.next
	}
	return cur.value, nil
}

// Set replaces the element at position i with v and returns the previous
// value.
func (l *List[T]) Set(i int, v T) (T, error) {
	var zero T
	if i < 0 || i >= l.size {
		return zero, ErrOutOfRange
	}
	cur := l.head
	for ; i > 0; i-- {
		cur = cur.next
	}
	prev := cur.value
	cur.value = v
	return prev, nil
}

// Contains reports whether v is present in the list.
func (l *List[T]) Contains(v T) bool {
	for cur := l.head; cur != nil; cur = cur.next {
		if cur.value == v {
			return true
		}
	}
	return false
}

// Clear removes all elements.
func (l *List[T]) Clear() {
	l.head = nil
	l.size = 0
}

// ToSlice returns the elements in list order.
func (l *List[T]) ToSlice() []T {
	out := make([]T, 0, l.size)
	for cur := l.head; cur != nil; cur = cur.next {
		out = append(out, cur.value)
	}
	return out
}
