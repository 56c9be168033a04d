package dlist

// Cursor is a forward position in a List that can modify the element it denotes.
//
// A Cursor lags: it refers to the node before its element. Begin is the
// sentinel and End is the tail, so an empty list has Begin == End without
// special casing. Cursors compare equal when they refer to the same node.
//
// Moving past End or before Begin is undefined, dereferencing End panics.
type Cursor[T any] struct {
	n *node[T]
}

func (c Cursor[T]) Value() T {
	return c.n.successor("Value").value
}

// Ref allows assignment through the cursor.
func (c Cursor[T]) Ref() *T {
	return &c.n.successor("Ref").value
}

func (c Cursor[T]) Set(v T) {
	c.n.successor("Set").value = v
}

func (c Cursor[T]) Next() Cursor[T] {
	return Cursor[T]{c.n.next}
}

func (c Cursor[T]) Prev() Cursor[T] {
	return Cursor[T]{c.n.prev}
}

// Inc advances c and returns the advanced position.
func (c *Cursor[T]) Inc() Cursor[T] {
	c.n = c.n.next
	return *c
}

// PostInc advances c and returns the position before advancing.
func (c *Cursor[T]) PostInc() Cursor[T] {
	old := *c
	c.n = c.n.next
	return old
}

func (c *Cursor[T]) Dec() Cursor[T] {
	c.n = c.n.prev
	return *c
}

func (c *Cursor[T]) PostDec() Cursor[T] {
	old := *c
	c.n = c.n.prev
	return old
}

func (c Cursor[T]) Equal(o Cursor[T]) bool {
	return c.n == o.n
}

// Const returns a read-only cursor at the same position.
func (c Cursor[T]) Const() ConstCursor[T] {
	return ConstCursor[T]{c.n}
}

// ConstCursor is a read-only Cursor. There is no conversion back to Cursor.
type ConstCursor[T any] struct {
	n *node[T]
}

func (c ConstCursor[T]) Value() T {
	return c.n.successor("Value").value
}

func (c ConstCursor[T]) Next() ConstCursor[T] {
	return ConstCursor[T]{c.n.next}
}

func (c ConstCursor[T]) Prev() ConstCursor[T] {
	return ConstCursor[T]{c.n.prev}
}

func (c *ConstCursor[T]) Inc() ConstCursor[T] {
	c.n = c.n.next
	return *c
}

func (c *ConstCursor[T]) PostInc() ConstCursor[T] {
	old := *c
	c.n = c.n.next
	return old
}

func (c *ConstCursor[T]) Dec() ConstCursor[T] {
	c.n = c.n.prev
	return *c
}

func (c *ConstCursor[T]) PostDec() ConstCursor[T] {
	old := *c
	c.n = c.n.prev
	return old
}

func (c ConstCursor[T]) Equal(o ConstCursor[T]) bool {
	return c.n == o.n
}
