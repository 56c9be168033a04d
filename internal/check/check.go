package check

import (
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"
)

// Recorder collects assertion results without stopping at the first failure.
// Not concurrent safe.
type Recorder struct {
	out      io.Writer
	passed   int
	failures []string
}

// out receives a line per failure, nil discards.
func New(out io.Writer) *Recorder {
	if out == nil {
		out = io.Discard
	}
	return &Recorder{out: out}
}

// Equal records whether got and want are equal per cmp.Diff.
func (r *Recorder) Equal(name string, got, want any, opts ...cmp.Option) bool {
	if d := cmp.Diff(want, got, opts...); d != "" {
		r.fail(name, fmt.Sprintf("(-want +got):\n%v", d))
		return false
	}
	r.passed++
	return true
}

func (r *Recorder) True(name string, cond bool) bool {
	if !cond {
		r.fail(name, "expected true")
		return false
	}
	r.passed++
	return true
}

func (r *Recorder) Passed() int {
	return r.passed
}

// Names of failed assertions, in order.
func (r *Recorder) Failures() []string {
	return r.failures
}

func (r *Recorder) Failed() bool {
	return len(r.failures) > 0
}

// 0 when everything passed.
func (r *Recorder) ExitCode() int {
	if r.Failed() {
		return 1
	}
	return 0
}

func (r *Recorder) Summary() {
	fmt.Fprintf(r.out, "passed %v, failed %v\n", r.passed, len(r.failures))
}

func (r *Recorder) fail(name, detail string) {
	r.failures = append(r.failures, name)
	fmt.Fprintf(r.out, "FAIL %v: %v\n", name, detail)
}
