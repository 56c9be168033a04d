package dlist

import (
	"iter"
	"slices"

	"github.com/graxinc/dlist/alloc"
	"github.com/graxinc/errutil"
	"golang.org/x/exp/constraints"
)

type Options[T any] struct {
	Allocator alloc.Allocator[T] // Defaults to alloc.NewHeap[T](nil).
}

// List is a doubly traversable sequence with O(1) push and pop at both ends.
//
// The list holds a sentinel node in place of the position before the first
// element and a tail pointing at the last node, or at the sentinel when empty.
// Nodes come from the Options allocator rebound to the node type.
//
// The zero value is an empty list ready to use. A List must not be copied
// by value after first use, see Clone and Move.
// Not concurrent safe.
type List[T any] struct {
	head  node[T] // sentinel, value never used
	tail  *node[T]
	len   int
	alloc alloc.Allocator[T]
	nodes alloc.Allocator[node[T]]
}

func New[T any](o Options[T]) *List[T] {
	l := &List[T]{}
	l.init(o.Allocator)
	return l
}

// Make returns a list of count zero values.
func Make[T any, N constraints.Integer](count N, o Options[T]) (*List[T], error) {
	var zero T
	return Repeat(count, zero, o)
}

// Repeat returns a list of count copies of value.
func Repeat[T any, N constraints.Integer](count N, value T, o Options[T]) (*List[T], error) {
	if count < 0 {
		return nil, errutil.New(errutil.Tags{"negativeCount": count})
	}
	l := New(o)
	for i := N(0); i < count; i++ {
		if err := l.PushBack(value); err != nil {
			l.Clear()
			return nil, err
		}
	}
	return l, nil
}

// Iterator is satisfied by every cursor type of this package. Integer types
// never satisfy it, which keeps FromRange and Repeat apart at compile time.
type Iterator[T, C any] interface {
	comparable
	Value() T
	Next() C
}

// FromRange returns a list of the values in [first, last).
func FromRange[T any, C Iterator[T, C]](first, last C, o Options[T]) (*List[T], error) {
	l := New(o)
	for c := first; c != last; c = c.Next() {
		if err := l.PushBack(c.Value()); err != nil {
			l.Clear()
			return nil, err
		}
	}
	return l, nil
}

func FromSeq[T any](seq iter.Seq[T], o Options[T]) (*List[T], error) {
	l := New(o)
	for v := range seq {
		if err := l.PushBack(v); err != nil {
			l.Clear()
			return nil, err
		}
	}
	return l, nil
}

// Of uses the default allocator, which does not fail.
func Of[T any](values ...T) *List[T] {
	l, err := FromSeq(slices.Values(values), Options[T]{})
	if err != nil {
		panic(err)
	}
	return l
}

// Clone returns a deep copy using the same allocator.
func (l *List[T]) Clone() (*List[T], error) {
	return l.CloneWith(Options[T]{Allocator: l.Allocator()})
}

func (l *List[T]) CloneWith(o Options[T]) (*List[T], error) {
	return FromRange(l.CBegin(), l.CEnd(), o)
}

// Move transfers the elements and allocator of l to a new list in O(1).
// l is left empty and usable.
func (l *List[T]) Move() *List[T] {
	l.lazyInit()
	m := &List[T]{alloc: l.alloc, nodes: l.nodes}
	m.tail = &m.head
	Swap(m, l)
	return m
}

func (l *List[T]) init(a alloc.Allocator[T]) {
	if a == nil {
		a = alloc.NewHeap[T](nil)
	}
	l.alloc = a
	l.nodes = alloc.Rebind[node[T]](a)
	l.tail = &l.head
}

// lazyInit lazily initializes a zero List value.
func (l *List[T]) lazyInit() {
	if l.tail == nil {
		l.init(nil)
	}
}

func (l *List[T]) Len() int {
	return l.len
}

func (l *List[T]) Empty() bool {
	return l.len == 0
}

func (l *List[T]) Allocator() alloc.Allocator[T] {
	l.lazyInit()
	return l.alloc
}

// Front returns the first element for reading or assignment.
// Panics when empty.
func (l *List[T]) Front() *T {
	l.panicEmpty("Front")
	return &l.head.next.value
}

// Back returns the last element for reading or assignment.
// Panics when empty.
func (l *List[T]) Back() *T {
	l.panicEmpty("Back")
	return &l.tail.value
}

// PushBack does not invalidate any cursor.
func (l *List[T]) PushBack(v T) error {
	l.lazyInit()
	n, err := makeNode(l.nodes, v, l.tail)
	if err != nil {
		return err
	}
	l.tail.setNext(l.nodes, n) // tail owns nothing, so nothing is released.
	l.tail = n
	l.len++
	return nil
}

// PushFront does not invalidate any cursor, but Begin now denotes the new element.
func (l *List[T]) PushFront(v T) error {
	l.lazyInit()
	_, err := l.insertAfter(&l.head, v)
	return err
}

// PopBack invalidates cursors denoting the last element. Panics when empty.
func (l *List[T]) PopBack() {
	l.panicEmpty("PopBack")
	prev := l.tail.prev
	prev.setNext(l.nodes, nil)
	l.tail = prev
	l.len--
}

// PopFront invalidates cursors denoting the first element. Panics when empty.
func (l *List[T]) PopFront() {
	l.panicEmpty("PopFront")
	l.head.removeSuccessor(l.nodes)
	l.len--
	if l.len == 0 {
		l.tail = &l.head
	}
}

// Insert adds v before the element pos denotes and returns a cursor denoting v.
// pos may be End. Cursors stay valid, though a cursor equal to pos now denotes v.
func (l *List[T]) Insert(pos Cursor[T], v T) (Cursor[T], error) {
	l.lazyInit()
	if _, err := l.insertAfter(pos.n, v); err != nil {
		return Cursor[T]{}, err
	}
	return pos, nil
}

// Erase removes the element pos denotes and returns a cursor denoting the
// element that followed it. Invalidates cursors denoting the removed element.
func (l *List[T]) Erase(pos Cursor[T]) Cursor[T] {
	at := pos.n
	if at.successor("Erase") == l.tail {
		l.tail = at
	}
	at.removeSuccessor(l.nodes)
	l.len--
	return pos
}

// Clear removes all elements, leaving tail at the sentinel.
func (l *List[T]) Clear() {
	l.lazyInit()
	l.head.setNext(l.nodes, nil)
	l.tail = &l.head
	l.len = 0
}

func (l *List[T]) insertAfter(at *node[T], v T) (*node[T], error) {
	n, err := makeNode(l.nodes, v, at)
	if err != nil {
		return nil, err
	}
	n.next = at.next // ownership moves to n, nothing released.
	if n.next != nil {
		n.next.prev = n
	} else {
		l.tail = n
	}
	at.next = n
	l.len++
	return n, nil
}

func (l *List[T]) panicEmpty(op string) {
	if l.len == 0 {
		panic(errutil.New(errutil.Tags{"emptyList": op}))
	}
}

// Swap exchanges the contents and allocators of a and b in O(1).
// No node is copied or moved.
func Swap[T any](a, b *List[T]) {
	a.lazyInit()
	b.lazyInit()

	a.head, b.head = b.head, a.head
	a.tail, b.tail = b.tail, a.tail
	a.len, b.len = b.len, a.len
	a.alloc, b.alloc = b.alloc, a.alloc
	a.nodes, b.nodes = b.nodes, a.nodes

	a.relinkHead()
	b.relinkHead()
}

func (l *List[T]) Swap(other *List[T]) {
	Swap(l, other)
}

// relinkHead repairs the links into the sentinel after it changed address.
func (l *List[T]) relinkHead() {
	if first := l.head.next; first != nil {
		first.prev = &l.head
	}
	if l.len == 0 {
		l.tail = &l.head
	}
}

// Assign replaces the contents of l with a copy of other, keeping the
// allocator of l. On error l is unchanged.
func (l *List[T]) Assign(other *List[T]) error {
	tmp, err := other.CloneWith(Options[T]{Allocator: l.Allocator()})
	if err != nil {
		return err
	}
	l.replace(tmp)
	return nil
}

// AssignMove replaces the contents and allocator of l with those of other,
// leaving other empty.
func (l *List[T]) AssignMove(other *List[T]) {
	if l == other {
		return
	}
	l.replace(other.Move())
}

// AssignValues replaces the contents of l with values. On error l is unchanged.
func (l *List[T]) AssignValues(values ...T) error {
	tmp, err := FromSeq(slices.Values(values), Options[T]{Allocator: l.Allocator()})
	if err != nil {
		return err
	}
	l.replace(tmp)
	return nil
}

// replace swaps tmp in and releases what l held.
func (l *List[T]) replace(tmp *List[T]) {
	Swap(l, tmp)
	tmp.Clear()
}

func (l *List[T]) Begin() Cursor[T] {
	l.lazyInit()
	return Cursor[T]{&l.head}
}

func (l *List[T]) End() Cursor[T] {
	l.lazyInit()
	return Cursor[T]{l.tail}
}

func (l *List[T]) CBegin() ConstCursor[T] {
	return l.Begin().Const()
}

func (l *List[T]) CEnd() ConstCursor[T] {
	return l.End().Const()
}

func (l *List[T]) RBegin() ReverseCursor[T] {
	l.lazyInit()
	return ReverseCursor[T]{l.tail}
}

func (l *List[T]) REnd() ReverseCursor[T] {
	l.lazyInit()
	return ReverseCursor[T]{&l.head}
}

func (l *List[T]) CRBegin() ConstReverseCursor[T] {
	return l.RBegin().Const()
}

func (l *List[T]) CREnd() ConstReverseCursor[T] {
	return l.REnd().Const()
}

// First to last. l must not change during iteration.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for c, end := l.CBegin(), l.CEnd(); c != end; c.Inc() {
			if !yield(c.Value()) {
				return
			}
		}
	}
}

// Last to first. l must not change during iteration.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for c, end := l.CRBegin(), l.CREnd(); c != end; c.Inc() {
			if !yield(c.Value()) {
				return
			}
		}
	}
}

func Equal[T comparable](a, b *List[T]) bool {
	if a.Len() != b.Len() {
		return false
	}
	bc := b.CBegin()
	for ac, end := a.CBegin(), a.CEnd(); ac != end; ac.Inc() {
		if ac.Value() != bc.Value() {
			return false
		}
		bc.Inc()
	}
	return true
}
