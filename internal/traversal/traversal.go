// Package traversal implements the work function submitted once per
// discovered directory: it lists entries via a Directory Iterator, tests
// files through the Predicate Engine, forwards matches to the Result Sink,
// and submits one new work unit per recursable subdirectory.
//
// This generalizes two sources: the teacher's internal/search.Searcher
// (filepath.Walk plus an exclude list) and
// original_source/src/search.c's process_directory_safe (explicit
// FindFirstFile/FindNextFile loop, system-path blacklist, common-skip set,
// and synchronous thread spawn per subdirectory).
package traversal

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/spf13/afero"

	"github.com/msoap/rq/internal/criteria"
	"github.com/msoap/rq/internal/fsiter"
	"github.com/msoap/rq/internal/pool"
	"github.com/msoap/rq/internal/predicate"
	"github.com/msoap/rq/internal/sink"
)

// Logger receives non-fatal diagnostics (directory open failures, etc). It is
// only invoked when verbose logging is enabled by the caller.
type Logger func(format string, args ...interface{})

// Engine owns everything one search needs to process directories: the
// filesystem, criteria, predicate stack, destination sink, worker pool, and
// the shared counters/stop-flag the spec's completion detection depends on.
type Engine struct {
	FS        afero.Fs
	Criteria  *criteria.Criteria
	Predicate *predicate.Engine
	Sink      *sink.Sink
	Pool      *pool.Pool
	StopFlag  *atomic.Bool

	QueuedDirs     *atomic.Int64
	ProcessedFiles *atomic.Int64

	Log Logger
}

func (e *Engine) logf(format string, args ...interface{}) {
	if e.Log != nil {
		e.Log(format, args...)
	}
}

// Submit enqueues path at depth as a new work unit: increments QueuedDirs,
// then tries the pool; on submit failure (saturated or cancelled) it falls
// back to running the work synchronously on the caller's goroutine, which
// the spec requires to preserve completeness under steady state.
func (e *Engine) Submit(ctx context.Context, path string, depth int) {
	e.QueuedDirs.Add(1)

	work := func(ctx context.Context) {
		e.process(ctx, path, depth)
	}

	if !e.Pool.Submit(work) {
		// Pool saturated or cancelled: run synchronously to preserve
		// completeness. The pool's own goroutines recover panics in work();
		// this fallback runs outside the pool, so it needs the same guarantee.
		func() {
			defer e.Recover()
			work(ctx)
		}()
	}
}

// process is the work function for one directory. It is the traversal
// engine's single entry point once a work unit starts running.
func (e *Engine) process(ctx context.Context, dir string, depth int) {
	defer e.QueuedDirs.Add(-1)

	if e.StopFlag.Load() {
		return
	}

	if e.Criteria.MaxDepth > 0 && depth > e.Criteria.MaxDepth {
		return
	}

	if isBlacklisted(dir) {
		return
	}

	it, err := fsiter.Open(e.FS, dir)
	if err != nil {
		e.logf("rq: cannot open %s: %v", dir, err)
		return
	}
	defer it.Close()

	for {
		if e.StopFlag.Load() {
			break
		}

		entry, ok := it.Next()
		if !ok {
			break
		}

		if !e.Criteria.IncludeHidden && entry.Hidden() {
			continue
		}

		childPath := filepath.Join(dir, entry.Name)
		isDir := entry.IsDir

		if entry.Mode&os.ModeSymlink != 0 {
			if !e.Criteria.FollowSymlinks {
				// A symlinked directory is a non-recursable entry, and a
				// symlinked file's target is never stat'd either: both are
				// just skipped. Cycle detection for followed symlinks is
				// left to the caller.
				continue
			}
			info, err := e.FS.Stat(childPath)
			if err != nil {
				e.logf("rq: cannot stat %s: %v", childPath, err)
				continue
			}
			isDir = info.IsDir()
		}

		if isDir {
			e.processSubdir(ctx, childPath, entry, depth)
			continue
		}

		e.ProcessedFiles.Add(1)

		if e.Predicate.Match(entry) {
			if !e.Sink.Append(sink.Result{
				Path:    childPath,
				Size:    entry.Size,
				ModTime: entry.ModTime,
			}) {
				break
			}
		}
	}
}

func (e *Engine) processSubdir(ctx context.Context, childPath string, entry fsiter.Entry, depth int) {
	if e.Criteria.SkipCommonDirs && isCommonSkip(entry.Name) {
		return
	}

	e.Submit(ctx, childPath, depth+1)
}

// Recover turns a panic into a logged, non-fatal event. Exposed so callers
// that run work synchronously (the Submit fallback path) still get the
// "work-function panics never crash the search" guarantee the pool itself
// provides for pooled execution.
func (e *Engine) Recover() {
	if r := recover(); r != nil {
		e.logf("rq: recovered panic during traversal: %v", r)
	}
}
