package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type countingRunner struct {
	runs atomic.Int64
	seen chan string
}

func (r *countingRunner) Run(_ context.Context, seed string) {
	r.runs.Add(1)
	select {
	case r.seen <- seed:
	default:
	}
}

func TestSchedulerRunsUntilCancelled(t *testing.T) {
	runner := &countingRunner{seen: make(chan string, 1)}
	s := New(runner, "https://seed.example.com", time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	// The first run happens immediately, before any interval elapses.
	select {
	case seed := <-runner.seen:
		assert.Equal(t, "https://seed.example.com", seed)
	case <-time.After(time.Second):
		t.Fatal("scheduler never invoked the runner")
	}

	// Let a few ticks pass, then stop.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}

	first := runner.runs.Load()
	assert.GreaterOrEqual(t, first, int64(2))

	// No further runs after Start returned.
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, first, runner.runs.Load())
}
