package dlist

// ReverseCursor is a backward position in a List that can modify the element
// it denotes.
//
// Unlike Cursor it refers directly to the node of its element. RBegin is the
// tail and REnd is the sentinel; Inc moves toward the front and Dec toward
// the back, so Dec from REnd lands on the first element.
//
// Moving past REnd or after RBegin is undefined, dereferencing REnd panics.
type ReverseCursor[T any] struct {
	n *node[T]
}

func (c ReverseCursor[T]) Value() T {
	return c.n.self("Value").value
}

func (c ReverseCursor[T]) Ref() *T {
	return &c.n.self("Ref").value
}

func (c ReverseCursor[T]) Set(v T) {
	c.n.self("Set").value = v
}

// Next moves toward the front.
func (c ReverseCursor[T]) Next() ReverseCursor[T] {
	return ReverseCursor[T]{c.n.prev}
}

// Prev moves toward the back.
func (c ReverseCursor[T]) Prev() ReverseCursor[T] {
	return ReverseCursor[T]{c.n.next}
}

func (c *ReverseCursor[T]) Inc() ReverseCursor[T] {
	c.n = c.n.prev
	return *c
}

func (c *ReverseCursor[T]) PostInc() ReverseCursor[T] {
	old := *c
	c.n = c.n.prev
	return old
}

func (c *ReverseCursor[T]) Dec() ReverseCursor[T] {
	c.n = c.n.next
	return *c
}

func (c *ReverseCursor[T]) PostDec() ReverseCursor[T] {
	old := *c
	c.n = c.n.next
	return old
}

func (c ReverseCursor[T]) Equal(o ReverseCursor[T]) bool {
	return c.n == o.n
}

func (c ReverseCursor[T]) Const() ConstReverseCursor[T] {
	return ConstReverseCursor[T]{c.n}
}

type ConstReverseCursor[T any] struct {
	n *node[T]
}

func (c ConstReverseCursor[T]) Value() T {
	return c.n.self("Value").value
}

func (c ConstReverseCursor[T]) Next() ConstReverseCursor[T] {
	return ConstReverseCursor[T]{c.n.prev}
}

func (c ConstReverseCursor[T]) Prev() ConstReverseCursor[T] {
	return ConstReverseCursor[T]{c.n.next}
}

func (c *ConstReverseCursor[T]) Inc() ConstReverseCursor[T] {
	c.n = c.n.prev
	return *c
}

func (c *ConstReverseCursor[T]) PostInc() ConstReverseCursor[T] {
	old := *c
	c.n = c.n.prev
	return old
}

func (c *ConstReverseCursor[T]) Dec() ConstReverseCursor[T] {
	c.n = c.n.next
	return *c
}

func (c *ConstReverseCursor[T]) PostDec() ConstReverseCursor[T] {
	old := *c
	c.n = c.n.next
	return old
}

func (c ConstReverseCursor[T]) Equal(o ConstReverseCursor[T]) bool {
	return c.n == o.n
}
