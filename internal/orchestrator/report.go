package orchestrator

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"go.yaml.in/yaml/v4"

	"recase/internal/config"
	"recase/internal/table"
)

// Report is the structured form of a Summary.
type Report struct {
	Files        int            `json:"files" yaml:"files"`
	Changed      int            `json:"changed" yaml:"changed"`
	Skipped      int            `json:"skipped" yaml:"skipped"`
	Errors       int            `json:"errors" yaml:"errors"`
	Replacements int            `json:"replacements" yaml:"replacements"`
	ByConvention map[string]int `json:"byConvention,omitempty" yaml:"byConvention,omitempty"`
	Results      []Result       `json:"results,omitempty" yaml:"results,omitempty"`
	Duration     string         `json:"duration" yaml:"duration"`
}

// Report converts the summary for structured output.
func (s *Summary) Report() Report {
	return Report{
		Files:        s.TotalFiles,
		Changed:      s.ChangedFiles,
		Skipped:      s.SkippedFiles,
		Errors:       s.ErrorCount + len(s.ScanErrors),
		Replacements: s.Replacements(),
		ByConvention: s.ByConvention(),
		Results:      s.Results,
		Duration:     s.Duration.String(),
	}
}

// WriteSummary writes the summary in the given format.
func WriteSummary(w io.Writer, s *Summary, format string) error {
	if format == config.FormatText {
		_, err := fmt.Fprintln(w, s.PrintSummary())
		return err
	}
	return writeStructured(w, s.Report(), format)
}

// WriteTable writes the pattern table in the given format.
func WriteTable(w io.Writer, tbl *table.Table, format string) error {
	entries := tbl.Entries()
	if format != config.FormatText {
		return writeStructured(w, entries, format)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONVENTION\tPATTERN\tREPLACEMENT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Convention, e.Pattern, e.Replacement)
	}
	return tw.Flush()
}

func writeStructured(w io.Writer, data any, format string) error {
	var out []byte
	var err error

	switch format {
	case config.FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
		out = append(out, '\n')
	case config.FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	_, err = w.Write(out)
	return err
}
