package terminal

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *recorder) Execute(ctx context.Context, line string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
	return 0
}

func (r *recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func ExampleTerminal() {
	term := New(context.Background(), ExecutorFunc(func(_ context.Context, line string) int {
		fmt.Println("ran", line)
		return 0
	}))
	term.Submit("pwd")
	term.Submit("ls")
	term.Close()

	// Output: ran pwd
	// ran ls
}

func TestTerminal_order(t *testing.T) {
	rec := &recorder{}
	term := New(context.Background(), rec)

	var want []string
	for i := 0; i < 100; i++ {
		line := fmt.Sprintf("echo %d", i)
		want = append(want, line)
		require.NoError(t, term.Submit(line))
	}
	term.Flush()

	assert.Equal(t, want, rec.Lines())
	assert.Equal(t, 0, term.Pending())
	term.Close()
}

func TestTerminal_submitDoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	rec := &recorder{}

	term := New(context.Background(), ExecutorFunc(func(ctx context.Context, line string) int {
		if line == "slow" {
			close(started)
			<-release
		}
		return rec.Execute(ctx, line)
	}))

	require.NoError(t, term.Submit("slow"))
	<-started

	submitted := make(chan struct{})
	go func() {
		term.Submit("fast 1")
		term.Submit("fast 2")
		close(submitted)
	}()

	select {
	case <-submitted:
	case <-time.After(5 * time.Second):
		t.Fatal("Submit blocked behind a running command")
	}
	assert.Equal(t, 3, term.Pending())
	assert.Empty(t, rec.Lines())

	close(release)
	term.Close()
	assert.Equal(t, []string{"slow", "fast 1", "fast 2"}, rec.Lines())
}

func TestTerminal_closed(t *testing.T) {
	rec := &recorder{}
	term := New(context.Background(), rec)
	require.NoError(t, term.Submit("pwd"))
	term.Close()

	assert.ErrorIs(t, term.Submit("ls"), ErrClosed)
	assert.Equal(t, []string{"pwd"}, rec.Lines())

	// Closing twice is harmless.
	term.Close()
}

func TestTerminal_abort(t *testing.T) {
	started := make(chan struct{})
	rec := &recorder{}

	term := New(context.Background(), ExecutorFunc(func(ctx context.Context, line string) int {
		if line == "nmap" {
			close(started)
			<-ctx.Done()
		}
		return rec.Execute(ctx, line)
	}))

	require.NoError(t, term.Submit("nmap"))
	require.NoError(t, term.Submit("never"))
	<-started
	term.Abort()

	assert.Equal(t, []string{"nmap"}, rec.Lines())
}
