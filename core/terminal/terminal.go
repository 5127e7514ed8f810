// Package terminal feeds submitted lines to an interpreter one at a time.
//
// Submitting never blocks: lines queue up while an earlier command, such as a
// slow network scan, is still running. A single worker executes them in
// submission order so session state is only ever touched by one goroutine.
package terminal

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned when submitting to a closed terminal.
var ErrClosed = errors.New("terminal closed")

// Executor runs one line of input.
type Executor interface {
	Execute(ctx context.Context, line string) int
}

// ExecutorFunc adapts a function to an Executor.
type ExecutorFunc func(ctx context.Context, line string) int

// Execute implements Executor.
func (f ExecutorFunc) Execute(ctx context.Context, line string) int {
	return f(ctx, line)
}

// Terminal is an unbounded input queue drained by a single worker.
type Terminal struct {
	exec   Executor
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []string
	busy   bool
	closed bool

	done chan struct{}
}

// New starts a terminal whose worker runs lines with exec. Cancelling ctx is
// passed on to running commands, queued lines still drain.
func New(ctx context.Context, exec Executor) *Terminal {
	ctx, cancel := context.WithCancel(ctx)
	t := &Terminal{
		exec:   exec,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	t.cond = sync.NewCond(&t.mu)

	go t.work()
	return t
}

// Submit queues a line for execution.
func (t *Terminal) Submit(line string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrClosed
	}

	t.queue = append(t.queue, line)
	t.cond.Broadcast()
	return nil
}

// Pending returns the number of lines queued or executing.
func (t *Terminal) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.queue)
	if t.busy {
		n++
	}
	return n
}

// Flush blocks until every submitted line has finished executing.
func (t *Terminal) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for len(t.queue) > 0 || t.busy {
		t.cond.Wait()
	}
}

// Close stops accepting input and waits for queued lines to finish.
func (t *Terminal) Close() {
	t.mu.Lock()
	if !t.closed {
		t.closed = true
		t.cond.Broadcast()
	}
	t.mu.Unlock()

	<-t.done
	t.cancel()
}

// Abort cancels the running command and discards anything still queued.
func (t *Terminal) Abort() {
	t.mu.Lock()
	t.queue = nil
	t.closed = true
	t.cond.Broadcast()
	t.mu.Unlock()

	t.cancel()
	<-t.done
}

func (t *Terminal) work() {
	defer close(t.done)

	for {
		line, ok := t.next()
		if !ok {
			return
		}

		t.exec.Execute(t.ctx, line)

		t.mu.Lock()
		t.busy = false
		t.cond.Broadcast()
		t.mu.Unlock()
	}
}

// next waits for a line, it returns false once the terminal is closed and
// drained.
func (t *Terminal) next() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for len(t.queue) == 0 {
		if t.closed {
			return "", false
		}
		t.cond.Wait()
	}

	line := t.queue[0]
	t.queue = t.queue[1:]
	t.busy = true
	return line, true
}
