package alloc_test

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/graxinc/dlist/alloc"

	"github.com/google/go-cmp/cmp"
)

func TestHeap_lifecycle(t *testing.T) {
	t.Parallel()

	tr := alloc.NewTracker(nil)
	a := alloc.NewHeap[string](tr)

	p, err := a.Allocate()
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Construct(p, "a"); err != nil {
		t.Fatal(err)
	}
	if *p != "a" {
		t.Fatal(*p)
	}
	if !tr.IsLive(p) || tr.Live() != 1 {
		t.Fatal(tr.Live())
	}

	a.Destroy(p)
	if *p != "" {
		t.Fatal("expected zeroed", *p)
	}
	a.Deallocate(p)

	if tr.IsLive(p) || tr.Live() != 0 || tr.Bytes() != 0 {
		t.Fatal(tr.Live(), tr.Bytes())
	}
}

func TestPool_reuse(t *testing.T) {
	t.Parallel()

	tr := alloc.NewTracker(nil)
	a := alloc.NewPool[[4]int64](tr)

	var ps []*[4]int64
	for range 10 {
		p, err := a.Allocate()
		if err != nil {
			t.Fatal(err)
		}
		if *p != [4]int64{} {
			t.Fatal("expected zero storage", *p)
		}
		*p = [4]int64{1, 2, 3, 4}
		ps = append(ps, p)
	}
	if tr.Live() != 10 || tr.Bytes() != 10*4*8 {
		t.Fatal(tr.Live(), tr.Bytes())
	}

	for _, p := range ps {
		a.Destroy(p)
		a.Deallocate(p)
	}
	if tr.Live() != 0 || tr.Bytes() != 0 {
		t.Fatal(tr.Live(), tr.Bytes())
	}
}

func TestRebind(t *testing.T) {
	t.Parallel()

	type pair struct{ a, b int64 }

	limit := alloc.NewLimit(1 << 20)

	heap := alloc.Rebind[pair](alloc.NewHeap[int8](limit))
	if _, ok := heap.(*alloc.Heap[pair]); !ok {
		t.Fatalf("%T", heap)
	}
	if heap.Resource() != limit {
		t.Fatal("resource not shared")
	}

	pool := alloc.Rebind[pair](alloc.NewPool[int8](limit))
	if _, ok := pool.(*alloc.Pool[pair]); !ok {
		t.Fatalf("%T", pool)
	}

	p, err := pool.Allocate()
	if err != nil {
		t.Fatal(err)
	}
	// rebound storage is sized for the new type.
	if limit.Used() != 16 {
		t.Fatal(limit.Used())
	}
	pool.Deallocate(p)
	if limit.Used() != 0 {
		t.Fatal(limit.Used())
	}
}

func TestRebind_bound(t *testing.T) {
	t.Parallel()

	tr := alloc.NewTracker(nil)
	parent := foreign[string]{alloc.NewHeap[string](tr)}

	if same := alloc.Rebind[string](parent); same != alloc.Allocator[string](parent) {
		t.Fatalf("%T", same)
	}

	a := alloc.Rebind[int](parent)
	if _, ok := a.(*alloc.Bound[int, string]); !ok {
		t.Fatalf("%T", a)
	}
	if a.Resource() != tr {
		t.Fatal("resource not shared")
	}

	p, err := a.Allocate()
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Construct(p, 7); err != nil {
		t.Fatal(err)
	}
	// the slot comes from the parent.
	if *p != 7 || tr.Live() != 1 {
		t.Fatal(*p, tr.Live())
	}

	a.Destroy(p)
	a.Deallocate(p)
	if tr.Live() != 0 || tr.Bytes() != 0 {
		t.Fatal(tr.Live(), tr.Bytes())
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	a.Deallocate(p)
}

func TestBound_constructFailure(t *testing.T) {
	t.Parallel()

	tr := alloc.NewTracker(nil)
	a := alloc.NewBound[int](refuseConstruct[string]{alloc.NewHeap[string](tr)})

	p, err := a.Allocate()
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Construct(p, 1); !errors.Is(err, errRefused) {
		t.Fatal(err)
	}
	a.Deallocate(p)

	if tr.Live() != 0 {
		t.Fatal(tr.Live())
	}
}

func TestLimit_exhausted(t *testing.T) {
	t.Parallel()

	limit := alloc.NewLimit(16)
	a := alloc.NewHeap[int64](limit)

	p1, err := a.Allocate()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Allocate(); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Allocate(); !errors.Is(err, alloc.ErrExhausted) {
		t.Fatal(err)
	}
	if limit.Used() != 16 {
		t.Fatal(limit.Used())
	}

	a.Deallocate(p1)

	if _, err := a.Allocate(); err != nil {
		t.Fatal(err)
	}

	if old := limit.SetMax(0); old != 16 {
		t.Fatal(old)
	}
	if _, err := a.Allocate(); !errors.Is(err, alloc.ErrExhausted) {
		t.Fatal(err)
	}
}

func TestLimit_random(t *testing.T) {
	t.Parallel()

	const max = 8 * 100

	limit := alloc.NewLimit(max)
	tr := alloc.NewTracker(limit)
	a := alloc.NewPool[int64](tr)

	do := func(seed int64) {
		rando := rand.New(rand.NewSource(seed)) //nolint:gosec

		var held []*int64
		for range 1000 {
			if rando.Intn(2) == 0 || len(held) == 0 {
				p, err := a.Allocate()
				if errors.Is(err, alloc.ErrExhausted) {
					continue
				}
				if err != nil {
					t.Error(err)
					return
				}
				held = append(held, p)
				continue
			}
			p := held[len(held)-1]
			held = held[:len(held)-1]
			a.Destroy(p)
			a.Deallocate(p)
		}
		for _, p := range held {
			a.Deallocate(p)
		}
	}

	rando := rand.New(rand.NewSource(5)) //nolint:gosec

	var wg sync.WaitGroup
	for range 10 {
		seed := rando.Int63()
		wg.Add(1)
		go func() {
			defer wg.Done()
			do(seed)
		}()
	}
	wg.Wait()

	if limit.Used() != 0 || tr.Live() != 0 {
		t.Fatal(limit.Used(), tr.Live())
	}
}

func TestTracker_doubleFree(t *testing.T) {
	t.Parallel()

	tr := alloc.NewTracker(nil)
	a := alloc.NewHeap[int](tr)

	p, err := a.Allocate()
	if err != nil {
		t.Fatal(err)
	}
	a.Deallocate(p)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	a.Deallocate(p)
}

func TestTracker_zeroSize(t *testing.T) {
	t.Parallel()

	tr := alloc.NewTracker(nil)
	a := alloc.NewHeap[struct{}](tr)

	p1, err := a.Allocate()
	if err != nil {
		t.Fatal(err)
	}
	p2, err := a.Allocate()
	if err != nil {
		t.Fatal(err)
	}
	if tr.Live() != 2 || tr.Bytes() != 0 {
		t.Fatal(tr.Live(), tr.Bytes())
	}

	a.Deallocate(p1)
	a.Deallocate(p2)
	if tr.Live() != 0 {
		t.Fatal(tr.Live())
	}
}

func TestTracker_counts(t *testing.T) {
	t.Parallel()

	tr := alloc.NewTracker(nil)
	ints := alloc.NewHeap[int32](tr)
	strs := alloc.Rebind[[2]int64](ints)

	var got []int64
	record := func() { got = append(got, int64(tr.Live()), tr.Bytes()) }

	i, _ := ints.Allocate()
	record()
	s, _ := strs.Allocate()
	record()
	ints.Deallocate(i)
	record()
	strs.Deallocate(s)
	record()

	want := []int64{1, 4, 2, 4 + 16, 1, 16, 0, 0}
	diffFatal(t, want, got)
}

type foreign[T any] struct {
	alloc.Allocator[T]
}

var errRefused = errors.New("refused")

type refuseConstruct[T any] struct {
	alloc.Allocator[T]
}

func (refuseConstruct[T]) Construct(*T, T) error {
	return errRefused
}

func diffFatal(t testing.TB, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Fatalf("(-want +got):\n%v", d)
	}
}
