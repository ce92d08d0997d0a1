// Package config holds the run options for recase and their validation.
package config

import (
	"fmt"
	"time"
)

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType string

const (
	MissingArgument   ConfigErrorType = "MISSING_ARGUMENT"
	InvalidIdentifier ConfigErrorType = "INVALID_IDENTIFIER"
	InvalidOption     ConfigErrorType = "INVALID_OPTION"
)

// ConfigError represents an error found while validating options.
type ConfigError struct {
	Type    ConfigErrorType
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	switch e.Type {
	case MissingArgument:
		return fmt.Sprintf("missing argument: %s", e.Message)
	case InvalidIdentifier:
		return fmt.Sprintf("invalid %s identifier: %s", e.Field, e.Message)
	case InvalidOption:
		return fmt.Sprintf("invalid option %s: %s", e.Field, e.Message)
	default:
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
}

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Symlink policy constants
const (
	SymlinkPolicyFollow = "follow"
	SymlinkPolicySkip   = "skip"
	SymlinkPolicyError  = "error"
)

// Options holds all settings for a recase run.
type Options struct {
	Search      string
	Replacement string
	// Paths are files or directories to rewrite. Empty means stdin to stdout.
	Paths []string

	InPlace       bool // rewrite files instead of printing them
	Recursive     bool
	MaxDepth      int    // directory depth when Recursive (-1 = unlimited)
	SymlinkPolicy string // "skip", "follow" or "error"
	IncludeHidden bool   // also process dot files and dot directories

	Watch          bool
	Debounce       time.Duration
	IgnorePatterns []string

	PrintTable bool
	Format     string
	Verbose    bool
}

// Default returns Options with defaults applied.
func Default() *Options {
	return &Options{
		MaxDepth:      -1,
		SymlinkPolicy: SymlinkPolicySkip,
		Debounce:      500 * time.Millisecond,
		Format:        FormatText,
	}
}

// ApplyDefaults fills zero values with defaults.
func (o *Options) ApplyDefaults() {
	if o.Format == "" {
		o.Format = FormatText
	}
	if o.SymlinkPolicy == "" {
		o.SymlinkPolicy = SymlinkPolicySkip
	}
	if o.Debounce == 0 {
		o.Debounce = Default().Debounce
	}
}

// Validate checks the options and returns the first error found, or nil.
func (o *Options) Validate() error {
	result := ValidateOptions(o)
	if result.Valid {
		return nil
	}
	return result.Errors[0].Err
}

// ScanDepth translates the recursion options into a scanner depth.
func (o *Options) ScanDepth() int {
	if !o.Recursive {
		return 0
	}
	return o.MaxDepth
}
