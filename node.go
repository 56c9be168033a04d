package dlist

import (
	"github.com/graxinc/dlist/alloc"
	"github.com/graxinc/errutil"
)

// node is a link of the chain. A node owns everything reachable through
// next; prev is only used for moving backward and never for release.
type node[T any] struct {
	value T
	prev  *node[T]
	next  *node[T]
}

// makeNode allocates and constructs a node. On a failed Construct the
// storage is deallocated before returning.
func makeNode[T any](a alloc.Allocator[node[T]], value T, prev *node[T]) (*node[T], error) {
	n, err := a.Allocate()
	if err != nil {
		return nil, err
	}
	if err := a.Construct(n, node[T]{value: value, prev: prev}); err != nil {
		a.Deallocate(n)
		return nil, err
	}
	return n, nil
}

func dispose[T any](a alloc.Allocator[node[T]], n *node[T]) {
	a.Destroy(n)
	a.Deallocate(n)
}

// releaseChain disposes n and everything it owns, front to back.
// Iterative so that stack depth does not grow with the chain.
func releaseChain[T any](a alloc.Allocator[node[T]], n *node[T]) {
	for n != nil {
		next := n.next
		n.next = nil
		dispose(a, n)
		n = next
	}
}

// setNext releases the chain owned by n, then takes ownership of next.
func (n *node[T]) setNext(a alloc.Allocator[node[T]], next *node[T]) {
	releaseChain(a, n.next)
	n.next = next
}

// removeSuccessor disposes only the node after n: a -> b -> c becomes a -> c.
func (n *node[T]) removeSuccessor(a alloc.Allocator[node[T]]) {
	b := n.next
	c := b.next

	b.next = nil
	dispose(a, b)

	n.next = c
	if c != nil {
		c.prev = n
	}
}

// successor is the node a lagging cursor at n dereferences.
func (n *node[T]) successor(op string) *node[T] {
	if n.next == nil {
		panic(errutil.New(errutil.Tags{"pastEnd": op}))
	}
	return n.next
}

// self is the node a direct cursor at n dereferences. Only the sentinel
// has no prev.
func (n *node[T]) self(op string) *node[T] {
	if n.prev == nil {
		panic(errutil.New(errutil.Tags{"beforeBegin": op}))
	}
	return n
}
