// Command selfcheck exercises the list and its cursors and exits non-zero
// if any check failed.
package main

import (
	"os"
	"slices"

	"github.com/graxinc/dlist"
	"github.com/graxinc/dlist/internal/check"
)

func main() {
	r := check.New(os.Stdout)
	run(r)
	r.Summary()
	os.Exit(r.ExitCode())
}

func run(r *check.Recorder) {
	checkEmpty(r)
	checkConstructors(r)
	checkPush(r)
	checkPopBack(r)
	checkPopFront(r)
	checkForwardForward(r)
	checkForwardBackward(r)
	checkReverseForward(r)
	checkReverseBackward(r)
	checkMutation(r)
	checkConstConversion(r)
}

func checkEmpty(r *check.Recorder) {
	var l dlist.List[int]
	r.True("empty", l.Empty())
	r.Equal("empty len", l.Len(), 0)
}

func checkConstructors(r *check.Recorder) {
	l1 := dlist.Of(1, 2, 3)
	r.True("values not empty", !l1.Empty())
	r.Equal("values len", l1.Len(), 3)
	r.Equal("values back", *l1.Back(), 3)

	count, err := dlist.Make[int](3, dlist.Options[int]{})
	if r.True("count err", err == nil) {
		r.Equal("count len", count.Len(), 3)
	}

	countValue, err := dlist.Repeat(3, 5, dlist.Options[int]{})
	if r.True("count value err", err == nil) {
		r.Equal("count value len", countValue.Len(), 3)
		r.Equal("count value front", *countValue.Front(), 5)
		r.Equal("count value back", *countValue.Back(), 5)
	}

	ranged, err := dlist.FromRange(l1.CBegin(), l1.CEnd(), dlist.Options[int]{})
	if !r.True("range err", err == nil) {
		return
	}
	r.Equal("range len", ranged.Len(), 3)
	r.Equal("range back", *ranged.Back(), 3)

	copied, err := ranged.Clone()
	if !r.True("copy err", err == nil) {
		return
	}
	r.Equal("copy len", copied.Len(), ranged.Len())
	r.Equal("copy back", *copied.Back(), *ranged.Back())

	*ranged.Front() = 19
	*copied.Front() = 92
	r.Equal("source front", *ranged.Front(), 19)
	r.Equal("copy front", *copied.Front(), 92)

	moved := ranged.Move()
	r.True("moved not empty", !moved.Empty())
	r.True("moved-from empty", ranged.Empty())
}

func checkPush(r *check.Recorder) {
	var l dlist.List[int]
	for _, v := range []int{1, 2, 3} {
		r.True("push err", l.PushBack(v) == nil)
	}
	r.Equal("push len", l.Len(), 3)
	r.True("push not empty", !l.Empty())
}

func checkPopBack(r *check.Recorder) {
	l := dlist.Of(1, 2, 3)
	l.PopBack()
	r.Equal("pop back len", l.Len(), 2)
	r.Equal("pop back back", *l.Back(), 2)
}

func checkPopFront(r *check.Recorder) {
	l := dlist.Of(1, 2, 3)
	l.PopFront()
	r.Equal("pop front len", l.Len(), 2)
	r.Equal("pop front front", *l.Front(), 2)
}

func checkForwardForward(r *check.Recorder) {
	l := dlist.Of(1, 2, 3)

	i := 1
	for c := l.Begin(); c != l.End(); c.Inc() {
		r.Equal("forward inc", c.Value(), i)
		i++
	}
	i = 1
	for c := l.CBegin(); c != l.CEnd(); c = c.Next() {
		r.Equal("forward next", c.Value(), i)
		i++
	}

	it := l.Begin()
	pre := it.Inc()
	post := it.PostInc()
	r.True("pre == post", pre == post)
	r.Equal("pre value", pre.Value(), post.Value())
	r.Equal("advanced", it.Value(), 3)

	var sum int
	for v := range l.All() {
		sum += v
	}
	r.Equal("sum", sum, 1+2+3)
}

func checkForwardBackward(r *check.Recorder) {
	l := dlist.Of(1, 2, 3)
	i := 3
	for c := l.End(); c != l.Begin(); i-- {
		r.Equal("forward dec", c.Dec().Value(), i)
	}
}

func checkReverseForward(r *check.Recorder) {
	l := dlist.Of(1, 2, 3)
	i := 3
	for c := l.RBegin(); c != l.REnd(); c.Inc() {
		r.Equal("reverse inc", c.Value(), i)
		i--
	}
}

func checkReverseBackward(r *check.Recorder) {
	l := dlist.Of(1, 2, 3)
	i := 1
	for c := l.REnd(); c != l.RBegin(); i++ {
		r.Equal("reverse dec", c.Dec().Value(), i)
	}
}

func checkMutation(r *check.Recorder) {
	l := dlist.Of(1, 2, 3)
	v := []int{1, 2, 3}

	r.Equal("before mutation", slices.Collect(l.All()), v)

	for i := range v {
		v[i] *= 3
	}
	for c := l.Begin(); c != l.End(); c.Inc() {
		*c.Ref() *= 3
	}

	r.Equal("after mutation", slices.Collect(l.All()), v)
}

func checkConstConversion(r *check.Recorder) {
	l := dlist.Of(1, 2, 3)

	it := l.Begin()
	constIt := it.Const()
	var constAssign dlist.ConstCursor[int]
	constAssign = it.Const()

	r.Equal("const value", constIt.Value(), it.Value())
	r.Equal("const assign value", constAssign.Value(), constIt.Value())
	r.True("const equal", constIt == constAssign)
}
