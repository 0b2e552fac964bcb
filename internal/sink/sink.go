// Package sink implements the Result Sink: an append-only singly linked list
// guarded by a mutex, with a lock-free atomic mirror of its length, an
// optional streaming callback, and a max-results cap.
//
// The linked-list shape — rather than a mutex-guarded slice, which is what
// the teacher's internal/search.Searcher.Search used for its result
// collector — grounds original_source/src/search.c's add_result_safe, which
// guards a manually-linked results_head/results_tail pair under a
// CRITICAL_SECTION. A linked list keeps Append O(1) regardless of how many
// results have already accumulated, and lets Take hand ownership to the
// caller without copying.
package sink

import (
	"sync"
	"sync/atomic"
	"time"
)

// Result is one match produced by the traversal engine.
type Result struct {
	Path    string
	Size    uint64
	ModTime time.Time
}

// StreamFunc is invoked with each newly appended result. Returning false
// requests cancellation (the spec's streaming-mode cancellation source).
type StreamFunc func(Result) bool

type node struct {
	value Result
	next  *node
}

// Sink collects results from concurrent workers.
type Sink struct {
	maxResults int // 0 = unlimited
	stream     StreamFunc
	stopFlag   *atomic.Bool

	mu   sync.Mutex
	head *node
	tail *node

	total atomic.Int64
}

// New creates a Sink. maxResults <= 0 means unlimited. stream may be nil.
// stopFlag is shared with the rest of the search (pool, traversal engine);
// Append sets it whenever it signals stop, so cap and streaming-callback
// cancellation actually halt the traversal instead of only affecting the
// sink's own return value.
func New(maxResults int, stream StreamFunc, stopFlag *atomic.Bool) *Sink {
	if stopFlag == nil {
		stopFlag = &atomic.Bool{}
	}
	return &Sink{maxResults: maxResults, stream: stream, stopFlag: stopFlag}
}

// Append adds r to the list unless the shared stop flag is already set or the
// max-results cap has already been reached, in which case it drops r and
// returns false to signal the caller to stop. The cap check and the append
// happen under the same lock, so concurrent appends never exceed the cap. A
// false return from the streaming callback also signals stop, even though r
// was already appended — callback cancellation is "stop after this one", not
// "undo this one". Every false return also sets the shared stop flag, so
// callers elsewhere in the pool see the same signal.
func (s *Sink) Append(r Result) bool {
	if s.stopFlag.Load() {
		return false
	}

	n := &node{value: r}

	s.mu.Lock()
	if s.maxResults > 0 && s.total.Load() >= int64(s.maxResults) {
		s.mu.Unlock()
		s.stopFlag.Store(true)
		return false
	}
	if s.head == nil {
		s.head = n
		s.tail = n
	} else {
		s.tail.next = n
		s.tail = n
	}
	s.total.Add(1)
	s.mu.Unlock()

	if s.stream != nil && !s.stream(r) {
		s.stopFlag.Store(true)
		return false
	}

	return true
}

// Total returns the number of results appended so far, lock-free.
func (s *Sink) Total() int64 {
	return s.total.Load()
}

// Take detaches the list and returns its contents as a slice, the hand-off
// point between the sink's internal linked-list representation and the rest
// of the program (output rendering, the session's return value), which works
// with slices.
func (s *Sink) Take() []Result {
	s.mu.Lock()
	head := s.head
	s.head, s.tail = nil, nil
	s.mu.Unlock()

	out := make([]Result, 0, s.total.Load())
	for n := head; n != nil; n = n.next {
		out = append(out, n.value)
	}
	return out
}
