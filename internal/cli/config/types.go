// Package config provides configuration management for the maki CLI.
//
// Configuration is merged from four layers with increasing precedence:
// built-in defaults, a maki.yaml project file, MAKI_-prefixed
// environment variables, and command-line flags.
package config

import "github.com/maki-build/maki/pkg/task"

// Config holds all CLI configuration options.
type Config struct {
	File        string   `koanf:"file"`
	All         bool     `koanf:"all"`
	Patterns    bool     `koanf:"patterns"`
	Recursive   bool     `koanf:"recursive"`
	NoCache     bool     `koanf:"no_cache"`
	DryRun      bool     `koanf:"dry_run"`
	Verbose     bool     `koanf:"verbose"`
	Output      string   `koanf:"output"`
	StatePath   string   `koanf:"state_path"`
	ExcludeVars []string `koanf:"exclude_vars"`

	// ProjectRoot is the resolved working directory, not a config key.
	ProjectRoot string `koanf:"-"`
}

// FilterOptions maps the config flags onto the target filter.
func (c *Config) FilterOptions() task.FilterOptions {
	return task.FilterOptions{
		IncludePrivate:  c.All,
		IncludePatterns: c.Patterns,
	}
}

// Default configuration values.
const (
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
