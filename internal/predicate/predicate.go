// Package predicate applies a Criteria's filter stack to one directory entry,
// in the fixed order that gives the cheapest checks first: type, size, time,
// extension, then name pattern (the only one requiring string matching).
package predicate

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/msoap/rq/internal/criteria"
	"github.com/msoap/rq/internal/fsiter"
	"github.com/msoap/rq/internal/glob"
)

// Engine evaluates one Criteria's filter stack against entries. It holds a
// compiled regex matcher (when UseRegex is set) so that pattern compilation
// happens once per search, not once per entry.
type Engine struct {
	c     *criteria.Criteria
	regex *glob.Regex
}

// New builds an Engine for c. It returns an error only if UseRegex is set and
// SearchTerm fails to compile.
func New(c *criteria.Criteria) (*Engine, error) {
	e := &Engine{c: c}

	if c.UseRegex && c.SearchTerm != "" {
		re, err := glob.CompileRegex(c.SearchTerm, c.CaseSensitive)
		if err != nil {
			return nil, err
		}
		e.regex = re
	}

	return e, nil
}

// Match applies the full predicate stack to entry and reports whether it is a
// result. Directories are always rejected — only the traversal engine acts on
// them, by recursing rather than matching.
func (e *Engine) Match(entry fsiter.Entry) bool {
	if entry.IsDir {
		return false
	}

	if !e.matchSize(entry.Size) {
		return false
	}

	if !e.matchTime(entry.ModTime) {
		return false
	}

	if !e.matchExtension(entry.Name) {
		return false
	}

	return e.matchName(entry.Name)
}

func (e *Engine) matchSize(size uint64) bool {
	s := e.c.Size
	if s.HasMin && size < s.Min {
		return false
	}
	if s.HasMax && size > s.Max {
		return false
	}
	if s.HasExact && size != s.Exact {
		return false
	}
	return true
}

func (e *Engine) matchTime(mtime time.Time) bool {
	w := e.c.MTime
	if w.HasAfter && mtime.Before(w.After) {
		return false
	}
	if w.HasBefore && mtime.After(w.Before) {
		return false
	}
	return true
}

func (e *Engine) matchExtension(name string) bool {
	if len(e.c.Extensions) == 0 {
		return true
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	for _, allowed := range e.c.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (e *Engine) matchName(name string) bool {
	if e.c.SearchTerm == "" {
		return true
	}

	if e.c.UseRegex {
		if e.regex == nil {
			return false
		}
		return e.regex.MatchString(name)
	}

	return glob.Matches(name, e.c.SearchTerm, e.c.CaseSensitive, e.c.UseGlob)
}
