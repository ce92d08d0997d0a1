package watcher

import (
	"path/filepath"
)

// DefaultIgnorePatterns returns the patterns for editor and tool scratch
// files, including the temporary files recase itself writes.
func DefaultIgnorePatterns() []string {
	return []string{
		"*.tmp",
		"*.swp",
		"*.swx",
		"*~",
		"#*#",
		".#*",
		".*.recase-*",
	}
}

// FileFilter handles filtering of files based on ignore patterns.
type FileFilter struct {
	patterns []string
}

// NewFileFilter creates a new FileFilter with the given patterns.
// If patterns is nil or empty, default patterns are used.
func NewFileFilter(patterns []string) *FileFilter {
	if len(patterns) == 0 {
		patterns = DefaultIgnorePatterns()
	}
	return &FileFilter{patterns: patterns}
}

// ShouldIgnore checks if a file path matches any of the ignore patterns.
// It matches against the base name only, with filepath.Match syntax.
func (f *FileFilter) ShouldIgnore(path string) bool {
	filename := filepath.Base(path)
	for _, pattern := range f.patterns {
		if matched, err := filepath.Match(pattern, filename); err == nil && matched {
			return true
		}
	}
	return false
}

// GetPatterns returns the current ignore patterns.
func (f *FileFilter) GetPatterns() []string {
	result := make([]string, len(f.patterns))
	copy(result, f.patterns)
	return result
}

// AddPattern adds a new pattern to the filter.
func (f *FileFilter) AddPattern(pattern string) {
	f.patterns = append(f.patterns, pattern)
}
