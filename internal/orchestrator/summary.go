package orchestrator

import (
	"fmt"
	"strings"
	"time"

	"recase/internal/replacer"
	"recase/internal/table"
)

// Result represents the outcome of processing a single file.
type Result struct {
	SourcePath   string         `json:"path" yaml:"path"`
	Changed      bool           `json:"changed" yaml:"changed"`
	Binary       bool           `json:"binary,omitempty" yaml:"binary,omitempty"`
	Replacements int            `json:"replacements" yaml:"replacements"`
	Stats        replacer.Stats `json:"-" yaml:"-"`
	Error        error          `json:"-" yaml:"-"`
}

// Summary represents the overall results of a run.
type Summary struct {
	TotalFiles   int
	ChangedFiles int
	SkippedFiles int
	ErrorCount   int
	Stats        replacer.Stats
	Results      []Result
	ScanErrors   []error
	Duration     time.Duration

	conventions []string
}

func newSummary(tbl *table.Table) *Summary {
	return &Summary{
		Stats:       replacer.Stats{Matches: make([]int, tbl.Len())},
		conventions: table.Conventions(),
	}
}

func (s *Summary) addStats(stats replacer.Stats) {
	s.Stats.Add(stats)
}

func (s *Summary) record(r Result) {
	s.Results = append(s.Results, r)
	switch {
	case r.Error != nil:
		s.ErrorCount++
	case r.Binary:
		s.SkippedFiles++
	case r.Changed:
		s.ChangedFiles++
	}
	s.addStats(r.Stats)
}

// Replacements returns the total number of replacements made.
func (s *Summary) Replacements() int {
	return s.Stats.Total()
}

// ByConvention returns replacement counts keyed by convention label,
// omitting conventions that never matched.
func (s *Summary) ByConvention() map[string]int {
	counts := make(map[string]int)
	for i, n := range s.Stats.Matches {
		if n > 0 && i < len(s.conventions) {
			counts[s.conventions[i]] += n
		}
	}
	return counts
}

// HasErrors returns true if there were any errors during the run.
func (s *Summary) HasErrors() bool {
	return s.ErrorCount > 0 || len(s.ScanErrors) > 0
}

// PrintSummary returns a formatted summary string.
func (s *Summary) PrintSummary() string {
	var b strings.Builder
	if s.TotalFiles > 0 {
		fmt.Fprintf(&b, "Processed %d files: %d changed, %d skipped, %d errors; ",
			s.TotalFiles, s.ChangedFiles, s.SkippedFiles, s.ErrorCount)
	}
	fmt.Fprintf(&b, "%d replacements", s.Replacements())

	var parts []string
	for i, name := range s.conventions {
		if i < len(s.Stats.Matches) && s.Stats.Matches[i] > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", name, s.Stats.Matches[i]))
		}
	}
	if len(parts) > 0 {
		b.WriteString(" (" + strings.Join(parts, ", ") + ")")
	}
	return b.String()
}
