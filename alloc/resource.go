package alloc

import (
	"sync/atomic"

	"github.com/graxinc/errutil"
	"github.com/graxinc/syncmap"
	"github.com/puzpuzpuz/xsync/v2"
)

// Unbounded never refuses a reservation.
type Unbounded struct{}

func (Unbounded) Reserve(uintptr) error { return nil }
func (Unbounded) Release(uintptr)       {}

// Limit refuses reservations that would take it past a byte budget.
// Concurrent safe.
type Limit struct {
	max  atomic.Int64
	used atomic.Int64
}

// Non-positive max refuses everything.
func NewLimit(max int64) *Limit {
	l := &Limit{}
	l.max.Store(max)
	return l
}

func (l *Limit) Reserve(size uintptr) error {
	for {
		used := l.used.Load()
		new := used + int64(size)
		if new > l.max.Load() {
			return ErrExhausted
		}
		if l.used.CompareAndSwap(used, new) {
			return nil
		} // else concurrent, try again
	}
}

func (l *Limit) Release(size uintptr) {
	l.used.Add(-int64(size))
}

func (l *Limit) Used() int64 {
	return l.used.Load()
}

func (l *Limit) Max() int64 {
	return l.max.Load()
}

// Does not release anything already reserved past the new max.
func (l *Limit) SetMax(max int64) (old int64) {
	return l.max.Swap(max)
}

// Tracker records every pointer allocated through it so leaks and double
// frees can be observed. Reservations are forwarded to the wrapped Resource.
// Zero-size values may share an address, they are counted but not registered.
// Concurrent safe.
type Tracker struct {
	// immutable
	r       Resource
	objects *xsync.Counter
	bytes   *xsync.Counter

	live syncmap.Map[any, uintptr]
}

var _ Observer = (*Tracker)(nil)

// r defaults to Unbounded.
func NewTracker(r Resource) *Tracker {
	if r == nil {
		r = Unbounded{}
	}
	return &Tracker{r: r, objects: xsync.NewCounter(), bytes: xsync.NewCounter()}
}

func (t *Tracker) Reserve(size uintptr) error {
	return t.r.Reserve(size)
}

func (t *Tracker) Release(size uintptr) {
	t.r.Release(size)
}

func (t *Tracker) Allocated(p any, size uintptr) {
	if size == 0 {
		t.objects.Add(1)
		return
	}
	if _, exists := t.live.Swap(p, size); exists {
		panic(errutil.New(errutil.Tags{"alreadyLive": p}))
	}
	t.objects.Add(1)
	t.bytes.Add(int64(size))
}

func (t *Tracker) Freed(p any, size uintptr) {
	if size == 0 {
		t.objects.Add(-1)
		return
	}
	if _, exists := t.live.LoadAndDelete(p); !exists {
		panic(errutil.New(errutil.Tags{"notLive": p}))
	}
	t.objects.Add(-1)
	t.bytes.Add(-int64(size))
}

func (t *Tracker) IsLive(p any) bool {
	_, ok := t.live.Load(p)
	return ok
}

// Intended for metrics.
func (t *Tracker) Live() int {
	return int(t.objects.Value())
}

// Intended for metrics.
func (t *Tracker) Bytes() int64 {
	return t.bytes.Value()
}
