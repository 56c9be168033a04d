package alloc

import (
	"errors"
	"sync"
	"unsafe"
)

// ErrExhausted indicates a Resource refused a reservation.
var ErrExhausted = errors.New("allocator resource exhausted")

// Allocator hands out storage for single values of T.
//
// Allocate and Deallocate bracket the storage lifetime, Construct and Destroy
// bracket the value lifetime inside it. Storage that was allocated but never
// constructed must still be deallocated.
type Allocator[T any] interface {
	Allocate() (*T, error)
	Construct(p *T, v T) error
	Destroy(p *T)
	Deallocate(p *T)

	// Shared by every allocator rebound from this one.
	Resource() Resource
}

// Resource is the untyped budget behind a family of allocators.
// Implementations must be concurrent safe.
type Resource interface {
	Reserve(size uintptr) error
	Release(size uintptr)
}

// Observer is optionally implemented by a Resource that wants to see each
// pointer handed out and returned.
type Observer interface {
	Allocated(p any, size uintptr)
	Freed(p any, size uintptr)
}

// Rebind returns an allocator for U from the same family and Resource as a.
// Heap and Pool rebind to themselves over the shared Resource, other
// allocators are wrapped in a Bound so they still serve every allocation.
func Rebind[U, T any](a Allocator[T]) Allocator[U] {
	if u, ok := a.(Allocator[U]); ok {
		return u
	}
	switch a := a.(type) {
	case *Heap[T]:
		return NewHeap[U](a.Resource())
	case *Pool[T]:
		return NewPool[U](a.Resource())
	default:
		return NewBound[U](a)
	}
}

// Heap allocates every value with new.
// Concurrent safe.
type Heap[T any] struct {
	// immutable
	r    Resource
	size uintptr
}

// r defaults to Unbounded.
func NewHeap[T any](r Resource) *Heap[T] {
	if r == nil {
		r = Unbounded{}
	}
	return &Heap[T]{r: r, size: sizeOf[T]()}
}

func (h *Heap[T]) Allocate() (*T, error) {
	if err := h.r.Reserve(h.size); err != nil {
		return nil, err
	}
	p := new(T)
	observeAllocated(h.r, p, h.size)
	return p, nil
}

func (h *Heap[T]) Construct(p *T, v T) error {
	*p = v
	return nil
}

// Zeroes the value so whatever it referenced can be collected.
func (h *Heap[T]) Destroy(p *T) {
	var zero T
	*p = zero
}

func (h *Heap[T]) Deallocate(p *T) {
	observeFreed(h.r, p, h.size)
	h.r.Release(h.size)
}

func (h *Heap[T]) Resource() Resource {
	return h.r
}

// Pool reuses deallocated storage through a sync.Pool.
// Concurrent safe.
type Pool[T any] struct {
	// immutable
	r    Resource
	size uintptr

	pool sync.Pool
}

// r defaults to Unbounded.
func NewPool[T any](r Resource) *Pool[T] {
	if r == nil {
		r = Unbounded{}
	}
	return &Pool[T]{r: r, size: sizeOf[T]()}
}

func (a *Pool[T]) Allocate() (*T, error) {
	if err := a.r.Reserve(a.size); err != nil {
		return nil, err
	}
	p, ok := a.pool.Get().(*T)
	if !ok {
		p = new(T)
	}
	observeAllocated(a.r, p, a.size)
	return p, nil
}

func (a *Pool[T]) Construct(p *T, v T) error {
	*p = v
	return nil
}

func (a *Pool[T]) Destroy(p *T) {
	var zero T
	*p = zero
}

// p must have been destroyed.
func (a *Pool[T]) Deallocate(p *T) {
	observeFreed(a.r, p, a.size)
	a.r.Release(a.size)
	a.pool.Put(p)
}

func (a *Pool[T]) Resource() Resource {
	return a.r
}

func sizeOf[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

func observeAllocated(r Resource, p any, size uintptr) {
	if o, ok := r.(Observer); ok {
		o.Allocated(p, size)
	}
}

func observeFreed(r Resource, p any, size uintptr) {
	if o, ok := r.(Observer); ok {
		o.Freed(p, size)
	}
}
