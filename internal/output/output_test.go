package output

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/msoap/rq/internal/sink"
)

func TestFormatSize(t *testing.T) {
	f := New(nil)

	cases := []struct {
		size uint64
		want string
	}{
		{0, "0B"},
		{1023, "1023B"},
		{1024, "1.0K"},
		{1536, "1.5K"},
		{1 << 20, "1.0M"},
		{1 << 30, "1.0G"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, f.formatSize(c.size))
	}
}

func TestGetResultStats(t *testing.T) {
	f := New(nil)
	results := []sink.Result{
		{Path: "/a.txt", Size: 100},
		{Path: "/b.txt", Size: 200},
		{Path: "/c.log", Size: 50},
	}

	stats := f.GetResultStats(results)
	assert.Equal(t, 3, stats["total_results"])
	assert.EqualValues(t, 350, stats["total_size"])

	exts := stats["extensions"].(map[string]int)
	assert.Equal(t, 2, exts[".txt"])
	assert.Equal(t, 1, exts[".log"])
}

func TestPrintEmptyResultsIsQuietByDefault(t *testing.T) {
	f := New(&Config{Format: "path"})
	assert.NoError(t, f.Print(nil))
}

func TestPrintUnknownFormatFallsBackToPath(t *testing.T) {
	f := New(&Config{Format: "nonsense"})
	results := []sink.Result{{Path: "/a.txt", ModTime: time.Now()}}
	assert.NoError(t, f.Print(results))
}
