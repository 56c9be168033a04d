package alloc

import (
	"github.com/graxinc/errutil"
	"github.com/graxinc/syncmap"
)

// Bound hands out U on behalf of an allocator for T outside this package.
//
// Every U is paired with a T slot from the parent, so the parent sees each
// Allocate, Construct, Destroy and Deallocate and its failures reach the
// caller. The U storage itself comes from a Heap that reserves nothing, the
// parent budgets per element.
// Concurrent safe.
type Bound[U, T any] struct {
	// immutable
	parent Allocator[T]
	shells *Heap[U]

	slots syncmap.Map[*U, *T]
}

func NewBound[U, T any](parent Allocator[T]) *Bound[U, T] {
	return &Bound[U, T]{parent: parent, shells: NewHeap[U](Unbounded{})}
}

func (b *Bound[U, T]) Allocate() (*U, error) {
	t, err := b.parent.Allocate()
	if err != nil {
		return nil, err
	}
	u, err := b.shells.Allocate()
	if err != nil {
		b.parent.Deallocate(t)
		return nil, err
	}
	b.slots.Swap(u, t)
	return u, nil
}

func (b *Bound[U, T]) Construct(u *U, v U) error {
	var zero T
	if err := b.parent.Construct(b.slot(u), zero); err != nil {
		return err
	}
	return b.shells.Construct(u, v)
}

func (b *Bound[U, T]) Destroy(u *U) {
	b.parent.Destroy(b.slot(u))
	b.shells.Destroy(u)
}

func (b *Bound[U, T]) Deallocate(u *U) {
	t, ok := b.slots.LoadAndDelete(u)
	if !ok {
		panic(errutil.New(errutil.Tags{"notBound": u}))
	}
	b.parent.Deallocate(t)
	b.shells.Deallocate(u)
}

func (b *Bound[U, T]) Resource() Resource {
	return b.parent.Resource()
}

func (b *Bound[U, T]) slot(u *U) *T {
	t, ok := b.slots.Load(u)
	if !ok {
		panic(errutil.New(errutil.Tags{"notBound": u}))
	}
	return t
}
