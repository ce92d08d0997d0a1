package variant

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// renderer holds the casers used while rendering. cases.Caser is stateful,
// so a renderer must not be shared between goroutines.
type renderer struct {
	upper cases.Caser
	lower cases.Caser
}

func newRenderer() *renderer {
	return &renderer{
		upper: cases.Upper(language.Und),
		lower: cases.Lower(language.Und),
	}
}

func (rr *renderer) render(s Strategy, tokens []string) string {
	var b strings.Builder
	for i, token := range tokens {
		if i > 0 {
			b.WriteString(s.joiner)
		}
		capInitial := s.rules&CapitalizeAll != 0 ||
			(i == 0 && s.rules&CapitalizeFirstToken != 0) ||
			(i > 0 && s.rules&CapitalizeTokenInitials != 0)

		g := uniseg.NewGraphemes(token)
		first := true
		for g.Next() {
			cluster := g.Str()
			switch {
			case s.rules&CapitalizeAll != 0, first && capInitial:
				b.WriteString(rr.upper.String(cluster))
			default:
				b.WriteString(rr.lower.String(cluster))
			}
			first = false
		}
	}
	return b.String()
}

// Render joins tokens under the strategy. Casing is applied per grapheme
// cluster with full Unicode case mapping; the source casing of the tokens
// does not affect the result.
func (s Strategy) Render(tokens []string) string {
	return newRenderer().render(s, tokens)
}

// Generate renders tokens under every built-in strategy, in the order
// returned by Strategies.
func Generate(tokens []string) []string {
	rr := newRenderer()
	strategies := Strategies()
	variants := make([]string, len(strategies))
	for i, s := range strategies {
		variants[i] = rr.render(s, tokens)
	}
	return variants
}
