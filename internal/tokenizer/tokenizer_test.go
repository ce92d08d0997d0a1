package tokenizer

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		identifier string
		want       []string
	}{
		{"HTTPVerb", []string{"HTTP", "Verb"}},
		{"aCamelCase", []string{"a", "Camel", "Case"}},
		{"A_B", []string{"A", "B"}},
		{"camelCase", []string{"camel", "Case"}},
		{"PascalCase", []string{"Pascal", "Case"}},
		{"snake_case", []string{"snake", "case"}},
		{"kebab-case", []string{"kebab", "case"}},
		{"Title_Case", []string{"Title", "Case"}},
		{"CONSTANT_CASE", []string{"CONSTANT", "CASE"}},
		{"double__under", []string{"double", "under"}},
		{"-mixed_Sep-", []string{"mixed", "Sep"}},
		{"v2Api", []string{"v2", "Api"}},
		{"E\u0301COLE", []string{"E\u0301COLE"}},
		{"fooE\u0301TE\u0301", []string{"foo", "E\u0301TE\u0301"}},
		{"HTTPE\u0301cole", []string{"HTTP", "E\u0301cole"}},
		{"_", []string{}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			got, err := Tokenize(tt.identifier)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizeRejectsInvalidUTF8(t *testing.T) {
	_, err := Tokenize("foo\xffBar")
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

// Token concatenation covers every non-separator character exactly once, in order.
func TestTokensCoverIdentifier(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	genIdentifier := gen.SliceOf(gen.OneGenOf(
		gen.AlphaChar(),
		gen.AlphaChar(),
		gen.OneConstOf('_', '-'),
	)).Map(func(rs []rune) string { return string(rs) })

	properties.Property("joined tokens equal the identifier without separators", prop.ForAll(
		func(identifier string) bool {
			tokens, err := Tokenize(identifier)
			if err != nil {
				t.Logf("unexpected error for %q: %v", identifier, err)
				return false
			}
			want := strings.NewReplacer("_", "", "-", "").Replace(identifier)
			if got := strings.Join(tokens, ""); got != want {
				t.Logf("tokens %q of %q join to %q, want %q", tokens, identifier, got, want)
				return false
			}
			for _, tok := range tokens {
				if tok == "" || strings.ContainsAny(tok, "_-") {
					t.Logf("bad token %q from %q", tok, identifier)
					return false
				}
			}
			return true
		},
		genIdentifier,
	))

	properties.TestingRun(t)
}
