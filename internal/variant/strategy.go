// Package variant renders token sequences in the supported case conventions.
package variant

import (
	"errors"
	"fmt"
	"strings"
)

// Rule is a set of capitalization rules applied while rendering tokens.
type Rule uint8

const (
	// CapitalizeFirstToken uppercases the first grapheme of the first token.
	CapitalizeFirstToken Rule = 1 << iota
	// CapitalizeTokenInitials uppercases the first grapheme of every token
	// after the first.
	CapitalizeTokenInitials
	// CapitalizeAll uppercases every grapheme.
	CapitalizeAll
	// CapitalizeNone lowercases every grapheme. It cannot be combined with
	// any other rule.
	CapitalizeNone
)

var (
	// ErrExclusiveRule is returned when CapitalizeNone is combined with another rule.
	ErrExclusiveRule = errors.New("CapitalizeNone cannot be combined with other rules")
	// ErrNoRule is returned when a strategy is built from an empty rule set.
	ErrNoRule = errors.New("strategy needs at least one capitalization rule")
)

func (r Rule) String() string {
	var names []string
	for _, rn := range []struct {
		rule Rule
		name string
	}{
		{CapitalizeFirstToken, "first-token"},
		{CapitalizeTokenInitials, "token-initials"},
		{CapitalizeAll, "all"},
		{CapitalizeNone, "none"},
	} {
		if r&rn.rule != 0 {
			names = append(names, rn.name)
		}
	}
	if len(names) == 0 {
		return "empty"
	}
	return strings.Join(names, "|")
}

// Strategy is a capitalization rule set paired with the joiner placed
// between tokens.
type Strategy struct {
	name   string
	rules  Rule
	joiner string
}

// NewStrategy validates rules and returns a Strategy.
func NewStrategy(name string, rules Rule, joiner string) (Strategy, error) {
	if rules == 0 {
		return Strategy{}, fmt.Errorf("strategy %q: %w", name, ErrNoRule)
	}
	if rules&CapitalizeNone != 0 && rules != CapitalizeNone {
		return Strategy{}, fmt.Errorf("strategy %q (%s): %w", name, rules, ErrExclusiveRule)
	}
	return Strategy{name: name, rules: rules, joiner: joiner}, nil
}

func mustStrategy(name string, rules Rule, joiner string) Strategy {
	s, err := NewStrategy(name, rules, joiner)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the convention name, e.g. "camelCase".
func (s Strategy) Name() string { return s.name }

// Rules returns the strategy's capitalization rules.
func (s Strategy) Rules() Rule { return s.rules }

// Joiner returns the string placed between tokens.
func (s Strategy) Joiner() string { return s.joiner }

// Built-in conventions.
var (
	Camel    = mustStrategy("camelCase", CapitalizeTokenInitials, "")
	Pascal   = mustStrategy("PascalCase", CapitalizeFirstToken|CapitalizeTokenInitials, "")
	Snake    = mustStrategy("snake_case", CapitalizeNone, "_")
	Kebab    = mustStrategy("kebab-case", CapitalizeNone, "-")
	Title    = mustStrategy("Title_Case", CapitalizeFirstToken|CapitalizeTokenInitials, "_")
	Constant = mustStrategy("CONSTANT_CASE", CapitalizeAll, "_")
)

// Strategies returns the built-in conventions in their fixed order.
func Strategies() []Strategy {
	return []Strategy{Camel, Pascal, Snake, Kebab, Title, Constant}
}
