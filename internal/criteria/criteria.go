// Package criteria defines the immutable configuration bundle for one search —
// the root path, name pattern, and the composite filter stack applied to every
// file — along with validation and the string-parsing helpers the CLI adapter
// uses to build one from flags.
package criteria

import (
	"fmt"
	"strings"
	"time"
)

// SizeBand bounds matched file sizes. Exact is mutually exclusive with
// Min/Max — this generalizes original_source/src/criteria.c, which tracked
// min/max/exact simultaneously without enforcing exclusivity; the spec declares
// them exclusive and Validate enforces it.
type SizeBand struct {
	Min      uint64
	Max      uint64
	Exact    uint64
	HasMin   bool
	HasMax   bool
	HasExact bool
}

// TimeWindow bounds matched modification times.
type TimeWindow struct {
	After      time.Time
	Before     time.Time
	HasAfter   bool
	HasBefore  bool
}

// Criteria is the immutable configuration for one search call.
type Criteria struct {
	RootPath   string
	SearchTerm string
	Extensions []string // lowercase, dot-stripped
	Size       SizeBand
	MTime      TimeWindow

	CaseSensitive   bool
	UseGlob         bool
	UseRegex        bool // supplemental: see original_source pattern_matches' use_regex
	SkipCommonDirs  bool
	FollowSymlinks  bool
	IncludeHidden   bool

	MaxThreads    int // 0 = auto (runtime.NumCPU())
	Timeout       time.Duration
	MaxResults    int // 0 = unlimited
	MaxDepth      int // 0 = unlimited
	GracePeriod   time.Duration
}

// Default returns a Criteria with the same defaults the original C
// implementation's criteria_init seeds (5 minute timeout, unlimited results and
// depth, skip_common_dirs on, everything else off), plus a 5 second grace
// period after a timeout.
func Default() Criteria {
	return Criteria{
		SkipCommonDirs: true,
		Timeout:        5 * time.Minute,
		GracePeriod:    5 * time.Second,
	}
}

// Validate checks the invariants from the data model: min <= max when both
// set, after <= before when both set, and search_term absent only if some
// other positive filter is set. It also rejects RootPath being empty and
// Exact combined with Min/Max.
func (c *Criteria) Validate() error {
	if strings.TrimSpace(c.RootPath) == "" {
		return fmt.Errorf("criteria: root path cannot be empty")
	}

	if c.Size.HasExact && (c.Size.HasMin || c.Size.HasMax) {
		return fmt.Errorf("criteria: exact size is mutually exclusive with min/max size")
	}

	if c.Size.HasMin && c.Size.HasMax && c.Size.Min > c.Size.Max {
		return fmt.Errorf("criteria: min size %d exceeds max size %d", c.Size.Min, c.Size.Max)
	}

	if c.MTime.HasAfter && c.MTime.HasBefore && c.MTime.After.After(c.MTime.Before) {
		return fmt.Errorf("criteria: after time is later than before time")
	}

	if c.SearchTerm == "" && len(c.Extensions) == 0 &&
		!c.Size.HasMin && !c.Size.HasMax && !c.Size.HasExact &&
		!c.MTime.HasAfter && !c.MTime.HasBefore {
		return fmt.Errorf("criteria: search term may only be empty when some other positive filter is set")
	}

	return nil
}

// NormalizeExtensions returns a new slice holding every extension lowercased,
// trimmed and dot-stripped, with empty entries dropped, so callers building Criteria from raw flag values don't need to duplicate the
// normalization the predicate engine assumes has already happened.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		e = strings.TrimPrefix(e, ".")
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}
