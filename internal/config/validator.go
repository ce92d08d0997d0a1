package config

import (
	"strconv"
	"time"
	"unicode/utf8"
)

// ValidationSeverity represents the severity of a validation issue.
type ValidationSeverity string

const (
	SeverityError   ValidationSeverity = "error"
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationIssue represents a single validation finding.
type ValidationIssue struct {
	Err      *ConfigError
	Severity ValidationSeverity
}

func (v ValidationIssue) String() string {
	return string(v.Severity) + ": " + v.Err.Error()
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
	Valid    bool // True if no errors (warnings OK)
}

func (r *ValidationResult) add(severity ValidationSeverity, typ ConfigErrorType, field, message string) {
	issue := ValidationIssue{
		Err:      &ConfigError{Type: typ, Field: field, Message: message},
		Severity: severity,
	}
	if severity == SeverityError {
		r.Errors = append(r.Errors, issue)
	} else {
		r.Warnings = append(r.Warnings, issue)
	}
}

// ValidateOptions checks the options for errors and returns all findings.
// Missing identifiers are reported first so callers fail before any input
// is read.
func ValidateOptions(o *Options) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationIssue{},
		Warnings: []ValidationIssue{},
	}

	validateIdentifiers(o, result)
	validateModes(o, result)

	result.Valid = len(result.Errors) == 0
	return result
}

func validateIdentifiers(o *Options, result *ValidationResult) {
	for _, id := range []struct {
		field string
		value string
	}{
		{"search", o.Search},
		{"replacement", o.Replacement},
	} {
		switch {
		case id.value == "":
			result.add(SeverityError, MissingArgument, id.field, "no "+id.field+" identifier provided")
		case !utf8.ValidString(id.value):
			result.add(SeverityError, InvalidIdentifier, id.field, strconv.Quote(id.value)+" is not valid UTF-8")
		}
	}

	if o.Search != "" && o.Search == o.Replacement {
		result.add(SeverityWarning, InvalidIdentifier, "replacement", "identical to the search identifier")
	}
}

func validateModes(o *Options, result *ValidationResult) {
	switch o.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		result.add(SeverityError, InvalidOption, "-format",
			strconv.Quote(o.Format)+". Valid formats: "+FormatText+", "+FormatJSON+", "+FormatYAML)
	}

	switch o.SymlinkPolicy {
	case SymlinkPolicySkip, SymlinkPolicyFollow, SymlinkPolicyError:
	default:
		result.add(SeverityError, InvalidOption, "-symlinks",
			strconv.Quote(o.SymlinkPolicy)+`. Must be "follow", "skip", or "error"`)
	}

	if o.Watch {
		if !o.InPlace {
			result.add(SeverityError, InvalidOption, "-watch", "requires -w")
		}
		if len(o.Paths) == 0 {
			result.add(SeverityError, InvalidOption, "-watch", "requires at least one path")
		}
		if o.Debounce < 0 {
			result.add(SeverityError, InvalidOption, "-debounce", "must not be negative")
		} else if o.Debounce > time.Minute {
			result.add(SeverityWarning, InvalidOption, "-debounce", o.Debounce.String()+" is unusually long")
		}
	}

	if o.PrintTable && len(o.Paths) > 0 {
		result.add(SeverityWarning, InvalidOption, "-print-table", "paths are ignored when printing the table")
	}

	if o.InPlace && len(o.Paths) == 0 && !o.PrintTable {
		result.add(SeverityWarning, InvalidOption, "-w", "ignored without paths; reading stdin")
	}

	if o.Recursive && o.MaxDepth < -1 {
		result.add(SeverityError, InvalidOption, "-depth", "must be -1 (unlimited) or a non-negative integer")
	}
	if !o.Recursive && o.MaxDepth != -1 {
		result.add(SeverityWarning, InvalidOption, "-depth", "ignored without -r")
	}
}
