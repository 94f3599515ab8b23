package collection

// Queue is a FIFO with head and tail pointers. The engine queues waiting
// requests on it when check-in finds no free slot.
type Queue[T comparable] struct {
	front *node[T]
	back  *node[T]
	size  int
}

// NewQueue returns an empty queue.
func NewQueue[T comparable]() *Queue[T] {
	return &Queue[T]{}
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int { return q.size }

// IsEmpty reports whether the queue has no elements.
func (q *Queue[T]) IsEmpty() bool { return q.size == 0 }

// Enqueue appends v at the back of the queue.
func (q *Queue[T]) Enqueue(v T) {
	n := &node[T]{value: v}
	if q.back == nil {
		q.front = n
	} else {
		q.back.next = n
	}
	q.back = n
	q.size++
}

// Dequeue removes and returns the front element.
func (q *Queue[T]) Dequeue() (T, error) {
	var zero T
	if q.front == nil {
		return zero, ErrEmptyCollection
	}
	v := q.front.value
	q.front = q.front.next
	if q.front == nil {
		q.back = nil
	}
	q.size--
	return v, nil
}

// Front returns the element at the head of the queue without removing it.
func (q *Queue[T]) Front() (T, error) {
	var zero T
	if q.front == nil {
		return zero, ErrEmptyCollection
	}
	return q.front.value, nil
}

// Back returns the most recently enqueued element without removing it.
func (q *Queue[T]) Back() (T, error) {
	var zero T
	if q.back == nil {
		return zero, ErrEmptyCollection
	}
	return q.back.value, nil
}

// Contains reports whether v is somewhere in the queue.
func (q *Queue[T]) Contains(v T) bool {
	for cur := q.front; cur != nil; cur = cur.next {
		if cur.value == v {
			return true
		}
	}
	return false
}

// Clear removes all elements.
func (q *Queue[T]) Clear() {
	q.front = nil
	q.back = nil
	q.size = 0
}

// Drain empties the queue into a list in front-to-back order.
func (q *Queue[T]) Drain() *List[T] {
	out := NewList[T]()
	for q.front != nil {
		out.Append(q.front.value)
		q.front = q.front.next
		q.size--
	}
	q.back = nil
	return out
}

// ToSlice returns a snapshot of the queue in front-to-back order without
// consuming it.
func (q *Queue[T]) ToSlice() []T {
	out := make([]T, 0, q.size)
	for cur := q.front; cur != nil; cur = cur.next {
		out = append(out, cur.value)
	}
	return out
}
