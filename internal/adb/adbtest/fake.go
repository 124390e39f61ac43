// Package adbtest provides a scripted adb.Runner for tests.
package adbtest

import (
	"context"
	"strings"
	"sync"

	"github.com/muurk/adb-autoconnect/internal/adb"
)

// Response is one scripted reply.
type Response struct {
	Result adb.Result
	Err    error
}

// Runner replays scripted responses keyed by the joined argument list,
// e.g. "connect 10.0.0.1:5555". Responses for a key are consumed in order
// and the last one repeats. Unscripted commands return exit code 0 with
// empty output.
type Runner struct {
	mu        sync.Mutex
	responses map[string][]Response
	calls     []string
}

// NewRunner returns an empty fake.
func NewRunner() *Runner {
	return &Runner{responses: make(map[string][]Response)}
}

// On appends responses for the command identified by args.
func (r *Runner) On(args string, responses ...Response) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[args] = append(r.responses[args], responses...)
	return r
}

// Stdout is shorthand for a successful response with the given stdout.
func Stdout(out string) Response {
	return Response{Result: adb.Result{Stdout: out}}
}

// Exit is shorthand for a response with the given exit code and stderr.
func Exit(code int, stderr string) Response {
	return Response{Result: adb.Result{ExitCode: code, Stderr: stderr}}
}

// Run implements adb.Runner.
func (r *Runner) Run(_ context.Context, args ...string) (adb.Result, error) {
	key := strings.Join(args, " ")

	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, key)

	queue := r.responses[key]
	if len(queue) == 0 {
		return adb.Result{}, nil
	}
	resp := queue[0]
	if len(queue) > 1 {
		r.responses[key] = queue[1:]
	}
	return resp.Result, resp.Err
}

// Calls returns every command run so far, in order.
func (r *Runner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// CallsWithPrefix returns the recorded commands starting with prefix.
func (r *Runner) CallsWithPrefix(prefix string) []string {
	var out []string
	for _, call := range r.Calls() {
		if strings.HasPrefix(call, prefix) {
			out = append(out, call)
		}
	}
	return out
}
