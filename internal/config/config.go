// Package config loads persistent defaults for rq from a TOML file (.rq.toml
// in $HOME or the working directory) via viper, to be layered under whatever
// flags the CLI adapter parses.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Search SearchConfig `mapstructure:"search"`
	Output OutputConfig `mapstructure:"output"`
}

// SearchConfig holds search-related configuration, mirroring the fuller
// criteria.Criteria field set rather than the exclude/include-only shape a
// plain directory walker needs.
type SearchConfig struct {
	ExcludeDirs    []string `mapstructure:"exclude_dirs"`
	IncludeDirs    []string `mapstructure:"include_dirs"`
	MaxDepth       int      `mapstructure:"max_depth"`
	FollowSymlinks bool     `mapstructure:"follow_symlinks"`
	SkipCommonDirs bool     `mapstructure:"skip_common_dirs"`
	IncludeHidden  bool     `mapstructure:"include_hidden"`
	UseRegex       bool     `mapstructure:"use_regex"`
	DefaultThreads int      `mapstructure:"default_threads"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds"`
	GracePeriodMS  int      `mapstructure:"grace_period_ms"`
}

// OutputConfig holds output-related configuration.
type OutputConfig struct {
	Format     string `mapstructure:"format"`
	Color      bool   `mapstructure:"color"`
	MaxResults int    `mapstructure:"max_results"`
}

var (
	cfg        *Config
	configFile string
)

// SetConfigFile sets the config file path explicitly, overriding the default
// search paths.
func SetConfigFile(file string) {
	configFile = file
}

const (
	// DefaultMaxDepth is the default maximum search depth.
	DefaultMaxDepth = 20
	// DefaultMaxResults is the default maximum number of results.
	DefaultMaxResults = 1000
	// DefaultTimeoutSeconds is the default search timeout.
	DefaultTimeoutSeconds = 300
	// DefaultGracePeriodMS is the default grace period after a timeout before
	// workers are forcibly joined.
	DefaultGracePeriodMS = 5000
)

// Load loads the configuration from file, falling back to defaults when no
// config file is found. If watch is true, viper.WatchConfig() is enabled so
// edits to the file are picked up without restarting (useful for long-running
// invocations with a generous timeout).
func Load(watch bool, onChange func()) error {
	viper.SetConfigName(".rq")
	viper.SetConfigType("toml")

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
	}

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			cfg = &Config{}
			if uerr := viper.Unmarshal(cfg); uerr != nil {
				return fmt.Errorf("error unmarshaling default config: %w", uerr)
			}
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	if watch {
		viper.OnConfigChange(func(e fsnotify.Event) {
			reloaded := &Config{}
			if err := viper.Unmarshal(reloaded); err == nil {
				cfg = reloaded
			}
			if onChange != nil {
				onChange()
			}
		})
		viper.WatchConfig()
	}

	return nil
}

// Get returns the current configuration, initializing it with defaults if
// Load has not been called yet.
func Get() *Config {
	if cfg == nil {
		cfg = &Config{}
		setDefaults()
		_ = viper.Unmarshal(cfg)
	}
	return cfg
}

func setDefaults() {
	viper.SetDefault("search.exclude_dirs", []string{"/proc", "/sys", "/dev", "/tmp"})
	viper.SetDefault("search.include_dirs", []string{})
	viper.SetDefault("search.max_depth", DefaultMaxDepth)
	viper.SetDefault("search.follow_symlinks", false)
	viper.SetDefault("search.skip_common_dirs", true)
	viper.SetDefault("search.include_hidden", false)
	viper.SetDefault("search.use_regex", false)
	viper.SetDefault("search.default_threads", 0) // 0 means use CPU count
	viper.SetDefault("search.timeout_seconds", DefaultTimeoutSeconds)
	viper.SetDefault("search.grace_period_ms", DefaultGracePeriodMS)

	viper.SetDefault("output.format", "path")
	viper.SetDefault("output.color", true)
	viper.SetDefault("output.max_results", DefaultMaxResults)
}

// GetConfigPath returns the path rq would load a config file from.
func GetConfigPath() string {
	if configFile != "" {
		return configFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".rq.toml"
	}

	return filepath.Join(home, ".rq.toml")
}
