// Package config defines core configuration types for mdcard.
// These types are pure data structures; layered loading lives in
// internal/configloader.
package config

import "github.com/yaklabco/mdcard/pkg/card"

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// OutputFormat selects what render writes for each document.
type OutputFormat string

const (
	// FormatHTML writes the rendered HTML.
	FormatHTML OutputFormat = "html"
	// FormatTree writes an outline of the rewritten tree.
	FormatTree OutputFormat = "tree"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatHTML, FormatTree:
		return true
	default:
		return false
	}
}

// Extension returns the file extension used for output files.
func (f OutputFormat) Extension() string {
	if f == FormatTree {
		return ".tree.txt"
	}
	return ".html"
}

// Config is the root configuration structure for mdcard.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor" toml:"flavor"`

	// Cards holds the card rewrite options. Unset fields keep their defaults.
	Cards *card.Options `yaml:"cards,omitempty" toml:"cards,omitempty"`

	// Ignore contains glob patterns for files to skip during discovery.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Extensions lists the file extensions treated as Markdown.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`

	// OutDir is where rendered files go. Empty writes next to each source.
	OutDir string `yaml:"out_dir,omitempty" toml:"out_dir,omitempty"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// Watch re-renders inputs when they change.
	Watch bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Flavor: FlavorCommonMark,
		Cards:  card.OptionsFromConfig(card.DefaultConfig()),
		Format: FormatHTML,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// CardConfig returns the fully resolved card configuration.
func (c *Config) CardConfig() card.Config {
	if c == nil {
		return card.DefaultConfig()
	}
	return card.Resolve(card.DefaultConfig(), c.Cards)
}
