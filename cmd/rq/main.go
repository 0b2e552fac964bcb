// Package main provides the rq command-line interface.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/msoap/rq/internal/config"
	"github.com/msoap/rq/internal/criteria"
	"github.com/msoap/rq/internal/output"
	"github.com/msoap/rq/internal/session"
	"github.com/msoap/rq/internal/version"
)

// rootCmd is the root command for rq.
var rootCmd = &cobra.Command{
	Use:   "rq [pattern]",
	Short: "Modern file search tool",
	Long: `rq is a modern, fast file search tool that replaces the outdated locate command.
It provides real-time file system searching without relying on outdated databases.`,
	Version: version.GetVersion(),
	Args:    cobra.MaximumNArgs(1),
	RunE:    runSearch,
}

// versionCmd shows detailed version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display detailed version and build information for rq",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.GetFullVersionInfo())
	},
}

var (
	cfgFile        string
	watchConfig    bool
	root           string
	useGlob        bool
	useRegex       bool
	caseSensitive  bool
	extensions     []string
	sizeStr        string
	mtimeAfterStr  string
	mtimeBeforeStr string
	mtimeRelStr    string
	threads        int
	depth          int
	followLinks    bool
	includeHidden  bool
	skipCommon     bool
	format         string
	maxResults     int
	timeoutStr     string
	verbose        bool
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.rq.toml)")
	rootCmd.PersistentFlags().BoolVar(&watchConfig, "watch-config", false, "reload config file on change")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.Flags().StringVar(&root, "root", ".", "directory to search from")
	rootCmd.Flags().BoolVar(&useGlob, "glob", false, "interpret the pattern as a shell glob (*, ?, [...], {...})")
	rootCmd.Flags().BoolVar(&useRegex, "regex", false, "interpret the pattern as a regular expression")
	rootCmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "case-sensitive name matching")
	rootCmd.Flags().StringSliceVar(&extensions, "ext", nil, "filter by file extensions (comma-separated)")
	rootCmd.Flags().StringVar(&sizeStr, "size", "", "filter by file size (+100M, -1K, 2G)")
	rootCmd.Flags().StringVar(&mtimeAfterStr, "mtime-after", "", "filter by modification date after (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&mtimeBeforeStr, "mtime-before", "", "filter by modification date before (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&mtimeRelStr, "mtime", "", "filter by relative modification time (-7d, +1h)")

	rootCmd.Flags().IntVar(&threads, "threads", 0, "number of worker goroutines (default: CPU cores)")
	rootCmd.Flags().IntVar(&depth, "depth", 0, "maximum search depth (0 = use config default)")
	rootCmd.Flags().BoolVar(&followLinks, "follow-symlinks", false, "follow symbolic links")
	rootCmd.Flags().BoolVar(&includeHidden, "hidden", false, "include hidden files and directories")
	rootCmd.Flags().BoolVar(&skipCommon, "skip-common-dirs", true, "skip common build/VCS directories (node_modules, .git, ...)")

	rootCmd.Flags().StringVar(&format, "format", "path", "output format (path, detailed, json)")
	rootCmd.Flags().IntVar(&maxResults, "max-results", 0, "maximum number of results (0 = use config default)")
	rootCmd.Flags().StringVar(&timeoutStr, "timeout", "", "search timeout (e.g. 30s, 5m); 0 disables")
}

func initConfig() {
	if cfgFile != "" {
		config.SetConfigFile(cfgFile)
	}

	if err := config.Load(watchConfig, nil); err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Warning: could not load config: %v\n", err)
		}
	}
}

func buildCriteria(pattern string) (criteria.Criteria, error) {
	cfg := config.Get()

	c := criteria.Default()
	c.RootPath = root
	c.SearchTerm = pattern
	c.UseGlob = useGlob
	c.UseRegex = useRegex
	c.CaseSensitive = caseSensitive
	c.Extensions = criteria.NormalizeExtensions(extensions)
	c.FollowSymlinks = followLinks || cfg.Search.FollowSymlinks
	c.IncludeHidden = includeHidden || cfg.Search.IncludeHidden
	c.SkipCommonDirs = skipCommon

	c.MaxThreads = threads
	if c.MaxThreads == 0 {
		c.MaxThreads = cfg.Search.DefaultThreads
	}

	c.MaxDepth = depth
	if c.MaxDepth == 0 {
		c.MaxDepth = cfg.Search.MaxDepth
	}

	c.MaxResults = maxResults
	if c.MaxResults == 0 {
		c.MaxResults = cfg.Output.MaxResults
	}

	if timeoutStr != "" {
		d, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return c, fmt.Errorf("invalid --timeout: %w", err)
		}
		c.Timeout = d
	} else if cfg.Search.TimeoutSeconds > 0 {
		c.Timeout = time.Duration(cfg.Search.TimeoutSeconds) * time.Second
	}

	if cfg.Search.GracePeriodMS > 0 {
		c.GracePeriod = time.Duration(cfg.Search.GracePeriodMS) * time.Millisecond
	}

	if sizeStr != "" {
		band, err := criteria.ParseSize(sizeStr)
		if err != nil {
			return c, err
		}
		c.Size = band
	}

	if mtimeAfterStr != "" {
		t, err := criteria.ParseDate(mtimeAfterStr)
		if err != nil {
			return c, err
		}
		c.MTime.HasAfter = true
		c.MTime.After = t
	}
	if mtimeBeforeStr != "" {
		t, err := criteria.ParseDate(mtimeBeforeStr)
		if err != nil {
			return c, err
		}
		c.MTime.HasBefore = true
		c.MTime.Before = t
	}
	if mtimeRelStr != "" {
		d, err := criteria.ParseRelativeDuration(mtimeRelStr)
		if err != nil {
			return c, err
		}
		c.MTime.HasAfter = true
		c.MTime.After = time.Now().Add(-d)
	}

	return c, nil
}

func runSearch(_ *cobra.Command, args []string) error {
	var pattern string
	if len(args) > 0 {
		pattern = args[0]
	}

	c, err := buildCriteria(pattern)
	if err != nil {
		return err
	}

	ctx := context.Background()
	outcome, err := session.Search(ctx, &c)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	formatter := output.New(&output.Config{Format: format, Verbose: verbose})

	if outcome.Status == session.StatusTimeout {
		fmt.Fprintln(os.Stderr, "Warning: search timed out; showing partial results")
	}

	if err := formatter.Print(outcome.Results); err != nil {
		return err
	}

	formatter.PrintSummary(outcome.Results, outcome.Elapsed)

	if verbose {
		stats := formatter.GetResultStats(outcome.Results)
		fmt.Fprintf(os.Stderr, "Total size: %s across %d extension(s)\n",
			stats["total_size_formatted"], len(stats["extensions"].(map[string]int)))
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		output.New(nil).PrintError(err)
		os.Exit(1)
	}
}
