package pool

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitAndWaitCompletion(t *testing.T) {
	// MaxThreads must cover every concurrent submit here: Submit now acquires
	// a slot with a non-blocking select, so a pool narrower than the burst
	// would legitimately see some submits rejected as saturated.
	p := New(Config{MaxThreads: 20})
	defer p.Close()

	var done atomic.Int32
	for i := 0; i < 20; i++ {
		ok := p.Submit(func(ctx context.Context) {
			done.Add(1)
		})
		assert.True(t, ok)
	}

	ok := p.Wait(context.Background())
	assert.True(t, ok)
	assert.Equal(t, int32(20), done.Load())

	stats := p.Stats()
	assert.Equal(t, int64(0), stats.Active)
	assert.Equal(t, int64(0), stats.Queued)
	assert.Equal(t, int64(20), stats.Completed)
	assert.Equal(t, int64(20), stats.Submitted)
}

func TestSubmitAfterStopReturnsFalse(t *testing.T) {
	p := New(Config{MaxThreads: 2})
	defer p.Close()

	p.cfg.StopFlag.Store(true)
	ok := p.Submit(func(ctx context.Context) {})
	assert.False(t, ok)
}

func TestWaitHonorsContextDeadline(t *testing.T) {
	p := New(Config{MaxThreads: 1})
	defer p.Close()

	block := make(chan struct{})
	p.Submit(func(ctx context.Context) {
		<-block
	})
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	ok := p.Wait(ctx)
	assert.False(t, ok)
}

func TestPanicInWorkIsRecoveredAndCounted(t *testing.T) {
	p := New(Config{MaxThreads: 2})
	defer p.Close()

	p.Submit(func(ctx context.Context) {
		panic("boom")
	})

	ok := p.Wait(context.Background())
	assert.True(t, ok)

	stats := p.Stats()
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, int64(0), stats.Active)
}

func TestProgressCallbackCanCancel(t *testing.T) {
	stop := &atomic.Bool{}
	calls := atomic.Int32{}

	p := New(Config{
		MaxThreads:   1,
		StopFlag:     stop,
		PollInterval: 5 * time.Millisecond,
		Progress: func(s Stats) bool {
			calls.Add(1)
			return false
		},
	})
	defer p.Close()

	block := make(chan struct{})
	p.Submit(func(ctx context.Context) {
		<-block
	})
	defer close(block)

	ok := p.Wait(context.Background())
	assert.False(t, ok)
	assert.True(t, stop.Load(), "progress callback returning false should set the stop flag")
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

// TestNestedSubmitNeverBlocks reproduces a worker that, from inside its own
// running work function, tries to submit a child unit against an already
// saturated pool (MaxThreads: 1). A blocking submit here would deadlock
// forever, since the one worker that could free a slot is the one blocked
// trying to acquire a second. Submit must return false immediately instead.
func TestNestedSubmitNeverBlocks(t *testing.T) {
	p := New(Config{MaxThreads: 1})
	defer p.Close()

	var nestedOK atomic.Bool
	var nestedReturned atomic.Bool
	done := make(chan struct{})

	ok := p.Submit(func(ctx context.Context) {
		defer close(done)
		// The pool's single slot is occupied by this very work unit, so this
		// nested submit must be rejected rather than block.
		nestedOK.Store(p.Submit(func(ctx context.Context) {}))
		nestedReturned.Store(true)
	})
	require.True(t, ok)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("nested Submit blocked instead of returning immediately")
	}

	assert.True(t, nestedReturned.Load())
	assert.False(t, nestedOK.Load(), "nested submit against a saturated pool must be rejected, not queued")

	assert.True(t, p.Wait(context.Background()))
}
