// Package table builds the paired search/replacement spellings for a run.
package table

import (
	"errors"
	"fmt"

	"recase/internal/tokenizer"
	"recase/internal/variant"
)

// LiteralConvention labels entry 0, the identifiers exactly as given.
const LiteralConvention = "literal"

var (
	// ErrEmptyIdentifier is returned when an identifier is the empty string.
	ErrEmptyIdentifier = errors.New("identifier is empty")
	// ErrNoTokens is returned when an identifier holds nothing but separators.
	ErrNoTokens = errors.New("identifier contains no word characters")
)

// IdentifierError reports which identifier could not be turned into spellings.
type IdentifierError struct {
	Role       string // "search" or "replacement"
	Identifier string
	Err        error
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("%s identifier %q: %v", e.Role, e.Identifier, e.Err)
}

func (e *IdentifierError) Unwrap() error {
	return e.Err
}

// Table holds parallel search and replacement spellings. Patterns[i] is
// always replaced by Replacements[i]. Entry 0 is the verbatim identifiers,
// entries 1 through 6 the built-in conventions in variant.Strategies order.
type Table struct {
	Patterns     []string `json:"patterns" yaml:"patterns"`
	Replacements []string `json:"replacements" yaml:"replacements"`
}

// Entry is one labelled row of a Table.
type Entry struct {
	Convention  string `json:"convention" yaml:"convention"`
	Pattern     string `json:"pattern" yaml:"pattern"`
	Replacement string `json:"replacement" yaml:"replacement"`
}

// Build derives the pattern table from the search and replacement identifiers.
func Build(search, replacement string) (*Table, error) {
	searchVariants, err := spellings("search", search)
	if err != nil {
		return nil, err
	}
	replacementVariants, err := spellings("replacement", replacement)
	if err != nil {
		return nil, err
	}

	return &Table{
		Patterns:     append([]string{search}, searchVariants...),
		Replacements: append([]string{replacement}, replacementVariants...),
	}, nil
}

func spellings(role, identifier string) ([]string, error) {
	if identifier == "" {
		return nil, &IdentifierError{Role: role, Identifier: identifier, Err: ErrEmptyIdentifier}
	}
	tokens, err := tokenizer.Tokenize(identifier)
	if err != nil {
		return nil, &IdentifierError{Role: role, Identifier: identifier, Err: err}
	}
	if len(tokens) == 0 {
		return nil, &IdentifierError{Role: role, Identifier: identifier, Err: ErrNoTokens}
	}
	return variant.Generate(tokens), nil
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.Patterns)
}

// Conventions returns the label of every entry, in table order.
func Conventions() []string {
	names := []string{LiteralConvention}
	for _, s := range variant.Strategies() {
		names = append(names, s.Name())
	}
	return names
}

// Entries returns the table as labelled rows.
func (t *Table) Entries() []Entry {
	names := Conventions()
	entries := make([]Entry, t.Len())
	for i := range t.Patterns {
		entries[i] = Entry{
			Convention:  names[i],
			Pattern:     t.Patterns[i],
			Replacement: t.Replacements[i],
		}
	}
	return entries
}
