package collection

// treeNode is a binary search tree node with owned child pointers.
type treeNode[T any] struct {
	value T
	left  *treeNode[T]
	right *treeNode[T]
}

// Tree is a plain comparator-ordered binary search tree. It does no
// rebalancing, so a degenerate insertion order gives O(n) operations; that
// trade-off is deliberate and must not be changed without revisiting the
// engine's lookup guarantees. Duplicate inserts are silent no-ops.
type Tree[T comparable] struct {
	root    *treeNode[T]
	size    int
	compare func(a, b T) int
}

// NewTree returns an empty tree ordered by the given three-way comparator.
func NewTree[T comparable](compare func(a, b T) int) *Tree[T] {
	return &Tree[T]{compare: compare}
}

// Len returns the number of stored elements.
func (t *Tree[T]) Len() int { return t.size }

// IsEmpty reports whether the tree has no elements.
func (t *Tree[T]) IsEmpty() bool { return t.root == nil }

// Insert adds v to the tree. If an element comparing equal to v already
// exists the tree is left untouched and false is returned.
func (t *Tree[T]) Insert(v T) bool {
	var inserted bool
	t.root, inserted = t.insert(t.root, v)
	if inserted {
		t.size++
	}
	return inserted
}

func (t *Tree[T]) insert(n *treeNode[T], v T) (*treeNode[T], bool) {
	if n == nil {
		return &treeNode[T]{value: v}, true
	}
	var inserted bool
	switch c := t.compare(v, n.value); {
	case c < 0:
		n.left, inserted = t.insert(n.left, v)
	case c > 0:
		n.right, inserted = t.insert(n.right, v)
	}
	return n, inserted
}

// Contains reports whether an element comparing equal to v exists.
func (t *Tree[T]) Contains(v T) bool {
	_, ok := t.Get(v)
	return ok
}

// Get returns the stored element comparing equal to the probe v. The probe
// only needs the fields the comparator looks at.
func (t *Tree[T]) Get(v T) (T, bool) {
	cur := t.root
	for cur != nil {
		switch c := t.compare(v, cur.value); {
		case c == 0:
			return cur.value, true
		case c < 0:
			cur = cur.left
		default:
			cur = cur.right
		}
	}
	var zero T
	return zero, false
}

// Remove deletes the element comparing equal to v and reports whether one
// was found. A node with two children is replaced by its in-order
// successor, which is then deleted from the right subtree.
func (t *Tree[T]) Remove(v T) bool {
	if !t.Contains(v) {
		return false
	}
	t.root = t.remove(t.root, v)
	t.size--
	return true
}

func (t *Tree[T]) remove(n *treeNode[T], v T) *treeNode[T] {
	if n == nil {
		return nil
	}
	switch c := t.compare(v, n.value); {
	case c < 0:
		n.left = t.remove(n.left, v)
	case c > 0:
		n.right = t.remove(n.right, v)
	default:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		succ := n.right
		for succ.left != nil {
			succ = succ.left
		}
		n.value = succ.value
		n.right = t.remove(n.right, succ.value)
	}
	return n
}

// InOrder returns the elements in ascending comparator order.
func (t *Tree[T]) InOrder() *List[T] {
	out := NewList[T]()
	var walk func(*treeNode[T])
	walk = func(n *treeNode[T]) {
		if n == nil {
			return
		}
		walk(n.left)
		out.Append(n.value)
		walk(n.right)
	}
	walk(t.root)
	return out
}

// PreOrder returns the elements root-first.
func (t *Tree[T]) PreOrder() *List[T] {
	out := NewList[T]()
	var walk func(*treeNode[T])
	walk = func(n *treeNode[T]) {
		if n == nil {
			return
		}
		out.Append(n.value)
		walk(n.left)
		walk(n.right)
	}
	walk(t.root)
	return out
}

// PostOrder returns the elements children-first.
func (t *Tree[T]) PostOrder() *List[T] {
	out := NewList[T]()
	var walk func(*treeNode[T])
	walk = func(n *treeNode[T]) {
		if n == nil {
			return
		}
		walk(n.left)
		walk(n.right)
		out.Append(n.value)
	}
	walk(t.root)
	return out
}

// Height returns the depth of the tree; an empty tree has height 0 and a
// single root has height 1.
func (t *Tree[T]) Height() int {
	var depth func(*treeNode[T]) int
	depth = func(n *treeNode[T]) int {
		if n == nil {
			return 0
		}
		l, r := depth(n.left), depth(n.right)
		if l > r {
			return l + 1
		}
		return r + 1
	}
	return depth(t.root)
}
