package launchd

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
)

// fakeRunner answers commands by their joined argv.
type fakeRunner struct {
	mu      sync.Mutex
	replies map[string]fakeReply
	calls   []string
}

type fakeReply struct {
	out Output
	err error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{replies: make(map[string]fakeReply)}
}

func (f *fakeRunner) on(cmdline string, out Output, err error) *fakeRunner {
	f.replies[cmdline] = fakeReply{out: out, err: err}
	return f
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cmdline := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, cmdline)
	r, ok := f.replies[cmdline]
	if !ok {
		return Output{}, errors.New("exec: not found")
	}
	return r.out, r.err
}

func (f *fakeRunner) count(cmdline string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == cmdline {
			n++
		}
	}
	return n
}

// exitFailure stands in for a command that ran and exited non-zero.
func exitFailure() error { return &exec.ExitError{} }
