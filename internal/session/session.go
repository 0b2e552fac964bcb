// Package session implements the single public entry point: Search takes a
// criteria.Criteria and drives one complete traversal, wiring together the
// pool, sink, and traversal engine behind a small options-based API.
//
// This generalizes the teacher's internal/search.Searcher.Search (which owns
// the same validate-then-fan-out-then-join shape, minus the timeout/grace
// period handling) and original_source/src/search.c's search_execute, which
// is where the timeout-then-grace-period-then-force-stop sequence comes from.
package session

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"

	"github.com/msoap/rq/internal/criteria"
	"github.com/msoap/rq/internal/pool"
	"github.com/msoap/rq/internal/predicate"
	"github.com/msoap/rq/internal/sink"
	"github.com/msoap/rq/internal/traversal"
)

// Status describes how a search concluded.
type Status int

const (
	// StatusOK means the criteria's Timeout did not elapse: either the
	// traversal ran to completion, or the result cap, a result callback or a
	// progress callback stopped it early, in which case Results is partial.
	StatusOK Status = iota
	// StatusTimeout means the criteria's Timeout elapsed before completion;
	// Results holds whatever was collected before the grace period expired.
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Outcome is returned by Search.
type Outcome struct {
	Status         Status
	Results        []sink.Result
	ProcessedFiles int64
	Elapsed        time.Duration
}

// ResultCallback is invoked for every result as it is produced, in addition to
// it being collected into the final Outcome. Returning false requests
// cancellation.
type ResultCallback func(sink.Result) bool

// ProgressCallback is polled roughly every 10ms while waiting for completion,
// with the number of files examined so far, the number of directories
// submitted but not yet finished, and the number of results collected so far.
// Returning false requests cancellation.
type ProgressCallback func(processedFiles, queuedDirs, totalResults uint64) bool

// Option configures a Search call.
type Option func(*options)

type options struct {
	fs       afero.Fs
	onResult ResultCallback
	onProgress ProgressCallback
	log      traversal.Logger
}

// WithResultCallback registers a callback invoked as each result streams in.
func WithResultCallback(cb ResultCallback) Option {
	return func(o *options) { o.onResult = cb }
}

// WithProgressCallback registers a callback polled while waiting.
func WithProgressCallback(cb ProgressCallback) Option {
	return func(o *options) { o.onProgress = cb }
}

// WithFS overrides the filesystem Search traverses. Defaults to
// afero.NewOsFs(); tests substitute afero.NewMemMapFs().
func WithFS(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithLogger registers a diagnostics sink for non-fatal traversal errors
// (directories that fail to open, stat failures on followed symlinks).
func WithLogger(log traversal.Logger) Option {
	return func(o *options) { o.log = log }
}

// Search validates c, then runs one complete traversal starting at
// c.RootPath, returning every matching result (subject to c.MaxResults) along
// with how the search concluded.
func Search(ctx context.Context, c *criteria.Criteria, opts ...Option) (*Outcome, error) {
	start := time.Now()

	if err := c.Validate(); err != nil {
		return nil, err
	}

	o := &options{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(o)
	}

	if info, err := o.fs.Stat(c.RootPath); err != nil {
		return nil, fmt.Errorf("session: root path %q is not accessible: %w", c.RootPath, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("session: root path %q is not a directory", c.RootPath)
	}

	pe, err := predicate.New(c)
	if err != nil {
		return nil, fmt.Errorf("session: invalid pattern: %w", err)
	}

	var stop atomic.Bool
	var queuedDirs, processedFiles atomic.Int64

	var onResult sink.StreamFunc
	if o.onResult != nil {
		onResult = func(r sink.Result) bool { return o.onResult(r) }
	}
	resultSink := sink.New(c.MaxResults, onResult, &stop)

	var onProgress pool.ProgressFunc
	if o.onProgress != nil {
		onProgress = func(pool.Stats) bool {
			return o.onProgress(uint64(processedFiles.Load()), uint64(queuedDirs.Load()), uint64(resultSink.Total()))
		}
	}

	var poolLog pool.Logger
	if o.log != nil {
		poolLog = pool.Logger(o.log)
	}

	maxThreads := c.MaxThreads
	p := pool.New(pool.Config{
		MaxThreads: maxThreads,
		Progress:   onProgress,
		StopFlag:   &stop,
		Log:        poolLog,
	})

	eng := &traversal.Engine{
		FS:             o.fs,
		Criteria:       c,
		Predicate:      pe,
		Sink:           resultSink,
		Pool:           p,
		StopFlag:       &stop,
		QueuedDirs:     &queuedDirs,
		ProcessedFiles: &processedFiles,
		Log:            o.log,
	}

	waitCtx := ctx
	var cancel context.CancelFunc
	if c.Timeout > 0 {
		waitCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	eng.Submit(waitCtx, c.RootPath, 1)

	completed := p.Wait(waitCtx)

	// waitCtx only carries a deadline when c.Timeout > 0, so a deadline
	// actually elapsing is the one case that means "the search timed out".
	// Any other reason Wait returned false — the result cap, a streaming
	// callback or progress callback returning false — already set stop via
	// the sink or the pool itself, and that's a clean early stop, not a
	// timeout: Results are partial but Status is ok.
	status := StatusOK
	if !completed {
		stop.Store(true)

		if waitCtx.Err() == context.DeadlineExceeded {
			status = StatusTimeout
		}

		grace := c.GracePeriod
		if grace <= 0 {
			grace = 5 * time.Second
		}
		graceCtx, graceCancel := context.WithTimeout(context.Background(), grace)
		p.Wait(graceCtx)
		graceCancel()
	}

	p.Close()

	return &Outcome{
		Status:         status,
		Results:        resultSink.Take(),
		ProcessedFiles: processedFiles.Load(),
		Elapsed:        time.Since(start),
	}, nil
}
