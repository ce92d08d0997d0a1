// Package tokenizer cuts identifiers into word tokens.
package tokenizer

import (
	"errors"
	"unicode/utf8"

	"recase/internal/boundary"
)

// ErrInvalidUTF8 is returned when an identifier is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("identifier is not valid UTF-8")

// Tokenize splits identifier into its word tokens, in order, with their
// original casing. Separator characters are dropped; separators in a row
// never produce empty tokens.
func Tokenize(identifier string) ([]string, error) {
	if !utf8.ValidString(identifier) {
		return nil, ErrInvalidUTF8
	}

	runes := []rune(identifier)
	indices := boundary.FindBoundaryIndices(identifier)

	tokens := make([]string, 0, len(indices))
	for i := 1; i < len(indices); i++ {
		segment := runes[indices[i-1]:indices[i]]
		if len(segment) == 1 && boundary.IsSeparator(segment[0]) {
			continue
		}
		tokens = append(tokens, string(segment))
	}
	return tokens, nil
}
