// Package pool implements the bounded Work Pool: a goroutine pool, built on
// top of github.com/sourcegraph/conc's panic-safe WaitGroup, that tracks
// in-flight work with atomic counters, honors a shared stop flag, and polls
// an optional progress callback while waiting for completion.
//
// This generalizes two things the teacher and its C ancestor each did
// separately: the teacher's sync.WaitGroup-per-root-directory fan-out
// (internal/search.Searcher.Search), and original_source/src/thread_pool.c's
// spawn_directory_thread, which spawns a new OS thread per directory without
// ever blocking the caller and bounds concurrency only through the work
// itself finishing. Concurrency here is bounded the same way: Submit acquires
// a slot from a buffered channel with a non-blocking select, never a blocking
// send, so a worker submitting its own child work from inside fn can never
// deadlock against a saturated pool — it just gets told no and falls back to
// running synchronously, exactly as original_source's thread_pool falls back
// to direct recursion when pthread_create fails.
package pool

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc"
)

// ProgressFunc is polled while waiting for completion. Returning false
// requests cancellation. It is invoked only from the goroutine calling Wait,
// never concurrently, satisfying the spec's callback re-entrancy requirement
// by construction.
type ProgressFunc func(stats Stats) bool

// Logger receives non-fatal diagnostics, such as recovered panics. It is the
// pool's equivalent of traversal.Logger — diagnostics never go to stdout,
// since that stream is reserved for result output.
type Logger func(format string, args ...interface{})

// Config configures a Pool.
type Config struct {
	// MaxThreads caps concurrent work units. 0 means runtime.NumCPU().
	MaxThreads int
	// Progress, if set, is polled during Wait.
	Progress ProgressFunc
	// StopFlag is shared with the caller (typically a Session); either side
	// may set it to request cancellation.
	StopFlag *atomic.Bool
	// PollInterval controls how often Wait checks for completion and invokes
	// Progress. Defaults to 10ms, the spec's required upper bound.
	PollInterval time.Duration
	// Log receives recovered-panic diagnostics. Defaults to a no-op.
	Log Logger
}

// Stats is a snapshot of pool counters.
type Stats struct {
	Active    int64
	Queued    int64
	Completed int64
	Submitted int64
}

// Pool is a bounded worker set executing submitted work units concurrently.
// Concurrency is bounded by a counting semaphore (sem) that Submit acquires
// with a non-blocking select; the underlying conc.WaitGroup itself spawns
// goroutines without any limit or blocking, matching original_source's
// unbounded-spawn thread model.
type Pool struct {
	cfg    Config
	wg     conc.WaitGroup
	sem    chan struct{}
	ctx    context.Context
	cancel context.CancelFunc

	active    atomic.Int64
	queued    atomic.Int64
	completed atomic.Int64
	submitted atomic.Int64
}

// New creates a Pool. It never returns nil: unlike the C ancestor, goroutine
// creation in Go cannot fail the way OS thread creation can, so there is no
// fallible create() path to mirror.
func New(cfg Config) *Pool {
	if cfg.MaxThreads <= 0 {
		cfg.MaxThreads = runtime.NumCPU()
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Millisecond
	}
	if cfg.StopFlag == nil {
		cfg.StopFlag = &atomic.Bool{}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		cfg:    cfg,
		sem:    make(chan struct{}, cfg.MaxThreads),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (p *Pool) logf(format string, args ...interface{}) {
	if p.cfg.Log != nil {
		p.cfg.Log(format, args...)
	}
}

// Submit tries to place fn on the pool without blocking. It returns false,
// without running fn, if the stop flag is set or every slot is already
// occupied. The acquire is a non-blocking channel select, never a blocking
// send: a worker calling Submit for a child unit from inside its own fn
// always gets an immediate answer, even when every slot — including its own
// — is occupied. Callers must then run fn synchronously (or drop it) to
// preserve completeness, per the spec's documented fallback.
func (p *Pool) Submit(fn func(ctx context.Context)) bool {
	if p.cfg.StopFlag.Load() {
		return false
	}

	select {
	case p.sem <- struct{}{}:
	default:
		return false
	}

	p.queued.Add(1)
	p.submitted.Add(1)
	p.active.Add(1)

	p.wg.Go(func() {
		p.queued.Add(-1)
		defer func() {
			<-p.sem
			if r := recover(); r != nil {
				// A work-function panic must never crash the pool: it is
				// absorbed here, counted as completed like any other unit.
				p.logf("rq: recovered panic in work unit: %v", r)
			}
			p.completed.Add(1)
			p.active.Add(-1)
		}()

		if p.cfg.StopFlag.Load() {
			return
		}

		fn(p.ctx)
	})

	return true
}

// Wait blocks until active work reaches zero, ctx is done, or the stop flag
// becomes true. It returns true iff completion was reached cleanly (not via
// ctx cancellation or the stop flag). While waiting it polls Stats at
// PollInterval and invokes Progress between polls; a false return from
// Progress sets the stop flag.
func (p *Pool) Wait(ctx context.Context) bool {
	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if p.active.Load() == 0 {
			return true
		}
		if p.cfg.StopFlag.Load() {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			if p.cfg.Progress != nil {
				if !p.cfg.Progress(p.Stats()) {
					p.cfg.StopFlag.Store(true)
					return false
				}
			}
		}
	}
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Active:    p.active.Load(),
		Queued:    p.queued.Load(),
		Completed: p.completed.Load(),
		Submitted: p.submitted.Load(),
	}
}

// Close sets the stop flag, cancels the context handed to in-flight work, and
// waits for every spawned goroutine to return.
func (p *Pool) Close() {
	p.cfg.StopFlag.Store(true)
	p.cancel()
	p.wg.Wait()
}
