// Package boundary finds the offsets where words begin inside an identifier.
package boundary

import "unicode"

// class is the case classification of a single character.
type class int

const (
	neutral class = iota // lowercase letters, digits and anything uncased
	upper
	separator
)

// state is the scanner state carried from one character to the next.
type state int

const (
	// atBoundary means the current character opens a new segment, so no
	// case transition can place a boundary before it.
	atBoundary state = iota
	insideRun
)

// IsSeparator reports whether r is an explicit word separator.
func IsSeparator(r rune) bool {
	return r == '_' || r == '-'
}

func classify(r rune) class {
	switch {
	case IsSeparator(r):
		return separator
	case unicode.IsUpper(r):
		return upper
	default:
		return neutral
	}
}

// isMark reports whether r is a combining mark.
func isMark(r rune) bool {
	return unicode.Is(unicode.M, r)
}

// FindBoundaryIndices returns the strictly increasing character offsets at
// which a new segment starts in identifier. Offset 0 and the identifier's
// character length are always present.
//
// A boundary is placed:
//   - immediately before and after every separator character ('_' or '-'),
//   - before an uppercase character that follows a lowercase or neutral one,
//   - before the last uppercase character of an uppercase run that is
//     followed by a lowercase letter ("HTTPVerb" splits as "HTTP", "Verb").
//
// Offsets count runes, not bytes. Digits are neutral and never start a
// segment on their own. A combining mark belongs to the character before
// it: it takes that character's class and never starts a segment, so
// decomposed "E\u0301COLE" stays one word.
func FindBoundaryIndices(identifier string) []int {
	runes := []rune(identifier)
	n := len(runes)

	classes := make([]class, n)
	attached := make([]bool, n)
	for i, r := range runes {
		if isMark(r) && i > 0 && classes[i-1] != separator {
			classes[i] = classes[i-1]
			attached[i] = true
			continue
		}
		classes[i] = classify(r)
	}

	// nextIsLower reports whether the next base character after i is lowercase.
	nextIsLower := func(i int) bool {
		j := i + 1
		for j < n && attached[j] {
			j++
		}
		return j < n && unicode.IsLower(runes[j])
	}

	indices := []int{0}
	emit := func(offset int) {
		if indices[len(indices)-1] != offset {
			indices = append(indices, offset)
		}
	}

	st := atBoundary
	for i := range runes {
		cur := classes[i]
		if cur == separator {
			emit(i)
			emit(i + 1)
			st = atBoundary
			continue
		}
		if attached[i] {
			continue
		}
		if st == atBoundary {
			st = insideRun
			continue
		}

		prev := classes[i-1]
		switch {
		case prev == neutral && cur == upper:
			emit(i)
		case prev == upper && cur == upper && nextIsLower(i):
			emit(i)
		}
	}

	emit(n)
	return indices
}
