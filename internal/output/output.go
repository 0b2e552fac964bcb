// Package output renders a completed search's results: as bare paths, a
// detailed columnar view, or a JSON envelope.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/msoap/rq/internal/sink"
)

// Config holds output configuration.
type Config struct {
	Format  string
	Verbose bool
	Color   bool
}

// Formatter handles result output formatting.
type Formatter struct {
	config *Config
}

// New creates a Formatter. A nil config yields the "path" format with color
// enabled.
func New(config *Config) *Formatter {
	if config == nil {
		config = &Config{Format: "path", Color: true}
	}
	return &Formatter{config: config}
}

// Print renders results according to the configured format.
func (f *Formatter) Print(results []sink.Result) error {
	if len(results) == 0 {
		if f.config.Verbose {
			fmt.Println("No results found")
		}
		return nil
	}

	switch f.config.Format {
	case "json":
		return f.printJSON(results)
	case "detailed":
		return f.printDetailed(results)
	default:
		return f.printPath(results)
	}
}

func (f *Formatter) printPath(results []sink.Result) error {
	for _, r := range results {
		fmt.Println(r.Path)
	}
	return nil
}

func (f *Formatter) printDetailed(results []sink.Result) error {
	for _, r := range results {
		sizeStr := f.formatSize(r.Size)
		timeStr := r.ModTime.Format("2006-01-02 15:04:05")

		if f.config.Color {
			fmt.Printf("%8s %s \033[34m%s\033[0m\n", sizeStr, timeStr, r.Path)
		} else {
			fmt.Printf("%8s %s %s\n", sizeStr, timeStr, r.Path)
		}
	}
	return nil
}

// jsonResult is the shape of one entry in the JSON envelope.
type jsonResult struct {
	Path     string `json:"path"`
	Size     uint64 `json:"size"`
	Modified string `json:"modified"`
}

// jsonEnvelope is the top-level JSON object printJSON emits.
type jsonEnvelope struct {
	Type    string       `json:"type"`
	Version int          `json:"version"`
	Count   int          `json:"count"`
	Results []jsonResult `json:"results"`
}

func (f *Formatter) printJSON(results []sink.Result) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	env := jsonEnvelope{
		Type:    "search_results",
		Version: 1,
		Count:   len(results),
		Results: make([]jsonResult, len(results)),
	}
	for i, r := range results {
		env.Results[i] = jsonResult{
			Path:     r.Path,
			Size:     r.Size,
			Modified: r.ModTime.Local().Format("2006-01-02T15:04:05"),
		}
	}

	return encoder.Encode(env)
}

// formatSize formats a byte count in human-readable binary units.
func (f *Formatter) formatSize(size uint64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%dB", size)
	}

	div, exp := uint64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"K", "M", "G", "T", "P", "E"}
	return fmt.Sprintf("%.1f%s", float64(size)/float64(div), units[exp])
}

// PrintSummary prints a one-line summary of the search to stderr when
// verbose output is enabled.
func (f *Formatter) PrintSummary(results []sink.Result, duration time.Duration) {
	if !f.config.Verbose {
		return
	}

	var totalSize uint64
	for _, r := range results {
		totalSize += r.Size
	}

	fmt.Fprintf(os.Stderr, "\nSearch completed in %v\n", duration)
	fmt.Fprintf(os.Stderr, "Found %d files (%s total)\n", len(results), f.formatSize(totalSize))
}

// PrintError prints an error message.
func (f *Formatter) PrintError(err error) {
	if f.config.Color {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// PrintWarning prints a warning message, only when verbose output is enabled.
func (f *Formatter) PrintWarning(msg string) {
	if !f.config.Verbose {
		return
	}

	if f.config.Color {
		fmt.Fprintf(os.Stderr, "\033[33mWarning:\033[0m %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
	}
}

// GetResultStats returns summary statistics about a result set, used by
// --verbose.
func (f *Formatter) GetResultStats(results []sink.Result) map[string]interface{} {
	var totalSize uint64
	extensions := make(map[string]int)

	for _, r := range results {
		totalSize += r.Size
		ext := strings.ToLower(filepath.Ext(r.Path))
		if ext != "" {
			extensions[ext]++
		}
	}

	return map[string]interface{}{
		"total_results":        len(results),
		"total_size":           totalSize,
		"total_size_formatted": f.formatSize(totalSize),
		"extensions":           extensions,
	}
}
