package predicate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msoap/rq/internal/criteria"
	"github.com/msoap/rq/internal/fsiter"
)

func newEngine(t *testing.T, c criteria.Criteria) *Engine {
	t.Helper()
	e, err := New(&c)
	require.NoError(t, err)
	return e
}

func TestMatchRejectsDirectories(t *testing.T) {
	c := criteria.Default()
	c.SearchTerm = "*"
	c.UseGlob = true
	e := newEngine(t, c)

	assert.False(t, e.Match(fsiter.Entry{Name: "sub", IsDir: true}))
}

func TestMatchSizeBand(t *testing.T) {
	c := criteria.Default()
	c.SearchTerm = "*"
	c.UseGlob = true
	c.Size = criteria.SizeBand{HasMin: true, Min: 1024, HasMax: true, Max: 4096}
	e := newEngine(t, c)

	assert.True(t, e.Match(fsiter.Entry{Name: "f.txt", Size: 2048}))
	assert.False(t, e.Match(fsiter.Entry{Name: "f.txt", Size: 8192}))
	assert.False(t, e.Match(fsiter.Entry{Name: "f.txt", Size: 100}))
}

func TestMatchTimeWindow(t *testing.T) {
	after := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	c := criteria.Default()
	c.SearchTerm = "*"
	c.UseGlob = true
	c.MTime = criteria.TimeWindow{HasAfter: true, After: after, HasBefore: true, Before: before}
	e := newEngine(t, c)

	assert.True(t, e.Match(fsiter.Entry{Name: "f.txt", ModTime: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}))
	assert.False(t, e.Match(fsiter.Entry{Name: "f.txt", ModTime: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}))
	assert.False(t, e.Match(fsiter.Entry{Name: "f.txt", ModTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}))
}

func TestMatchExtension(t *testing.T) {
	c := criteria.Default()
	c.Extensions = []string{"go", "md"}
	e := newEngine(t, c)

	assert.True(t, e.Match(fsiter.Entry{Name: "main.go"}))
	assert.True(t, e.Match(fsiter.Entry{Name: "README.MD"}))
	assert.False(t, e.Match(fsiter.Entry{Name: "main.rs"}))
}

func TestMatchNamePatternGlob(t *testing.T) {
	c := criteria.Default()
	c.SearchTerm = "*.txt"
	c.UseGlob = true
	e := newEngine(t, c)

	assert.True(t, e.Match(fsiter.Entry{Name: "notes.txt"}))
	assert.False(t, e.Match(fsiter.Entry{Name: "notes.md"}))
}

func TestMatchNamePatternRegex(t *testing.T) {
	c := criteria.Default()
	c.SearchTerm = `^file[0-9]+\.log$`
	c.UseRegex = true
	e := newEngine(t, c)

	assert.True(t, e.Match(fsiter.Entry{Name: "file42.log"}))
	assert.False(t, e.Match(fsiter.Entry{Name: "file.log"}))
}

func TestOrderingIsEarlyOut(t *testing.T) {
	// A directory entry should never reach the (expensive) name-pattern check.
	c := criteria.Default()
	c.SearchTerm = "[" // invalid glob-ish pattern but never used since entry is a dir
	c.UseGlob = true
	e := newEngine(t, c)

	assert.False(t, e.Match(fsiter.Entry{Name: "anything", IsDir: true}))
}
