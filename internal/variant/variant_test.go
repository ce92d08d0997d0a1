package variant

import (
	"reflect"
	"testing"
	"unicode"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recase/internal/tokenizer"
)

func TestGenerate(t *testing.T) {
	want := []string{
		"allCasesCovered",
		"AllCasesCovered",
		"all_cases_covered",
		"all-cases-covered",
		"All_Cases_Covered",
		"ALL_CASES_COVERED",
	}

	assert.Equal(t, want, Generate([]string{"all", "cases", "covered"}))
	assert.Equal(t, want, Generate([]string{"AlL", "cAsES", "cOvErED"}))
}

func TestGenerateSingleToken(t *testing.T) {
	assert.Equal(t,
		[]string{"http", "Http", "http", "http", "Http", "HTTP"},
		Generate([]string{"HTTP"}))
}

func TestGenerateEmpty(t *testing.T) {
	assert.Equal(t, []string{"", "", "", "", "", ""}, Generate(nil))
}

func TestRenderUnicode(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		tokens   []string
		want     string
	}{
		{"accented pascal", Pascal, []string{"école", "ÉTÉ"}, "ÉcoleÉté"},
		{"sharp s constant", Constant, []string{"straße"}, "STRASSE"},
		{"greek camel", Camel, []string{"ΑΛΦΑ", "βήτα"}, "αλφαΒήτα"},
		// e + combining acute accent is a single grapheme cluster
		{"combining mark", Title, []string{"e\u0301te", "x"}, "E\u0301te_X"},
		{"digits untouched", Snake, []string{"V2", "API"}, "v2_api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.strategy.Render(tt.tokens))
		})
	}
}

func TestStrategiesOrder(t *testing.T) {
	var names []string
	for _, s := range Strategies() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"camelCase", "PascalCase", "snake_case", "kebab-case", "Title_Case", "CONSTANT_CASE"}, names)
}

func TestNewStrategy(t *testing.T) {
	t.Run("none combined with another rule", func(t *testing.T) {
		for _, other := range []Rule{CapitalizeFirstToken, CapitalizeTokenInitials, CapitalizeAll} {
			_, err := NewStrategy("bad", CapitalizeNone|other, "_")
			assert.ErrorIs(t, err, ErrExclusiveRule, "rules %s", CapitalizeNone|other)
		}
	})

	t.Run("empty rule set", func(t *testing.T) {
		_, err := NewStrategy("empty", 0, "")
		assert.ErrorIs(t, err, ErrNoRule)
	})

	t.Run("custom joiner", func(t *testing.T) {
		dot, err := NewStrategy("dot.case", CapitalizeNone, ".")
		require.NoError(t, err)
		assert.Equal(t, "dot.case", dot.Render([]string{"Dot", "CASE"}))
		assert.Equal(t, ".", dot.Joiner())
		assert.Equal(t, CapitalizeNone, dot.Rules())
	})
}

func TestRuleString(t *testing.T) {
	assert.Equal(t, "first-token|token-initials", (CapitalizeFirstToken | CapitalizeTokenInitials).String())
	assert.Equal(t, "none", CapitalizeNone.String())
	assert.Equal(t, "empty", Rule(0).String())
}

// genWord generates lowercase words of at least two letters. Runs of
// single-letter tokens are ambiguous once joined without separators
// ("aBC" cannot tell "a","b","c" from "a","bc"), so they are excluded.
func genWord() gopter.Gen {
	return gen.IntRange(2, 8).FlatMap(func(length interface{}) gopter.Gen {
		return gen.SliceOfN(length.(int), gen.AlphaLowerChar())
	}, reflect.TypeOf([]rune{})).Map(func(chars []rune) string {
		return string(chars)
	})
}

func genTokens() gopter.Gen {
	return gen.IntRange(1, 5).FlatMap(func(length interface{}) gopter.Gen {
		return gen.SliceOfN(length.(int), genWord())
	}, reflect.TypeOf([]string{}))
}

func TestVariantsAreIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("re-tokenizing a variant regenerates the same variant", prop.ForAll(
		func(tokens []string) bool {
			variants := Generate(tokens)
			for i, v := range variants {
				retokenized, err := tokenizer.Tokenize(v)
				if err != nil {
					t.Logf("tokenize %q: %v", v, err)
					return false
				}
				if again := Generate(retokenized)[i]; again != v {
					t.Logf("variant %d of %q: %q re-rendered as %q", i, tokens, v, again)
					return false
				}
			}
			return true
		},
		genTokens(),
	))

	properties.Property("source casing does not affect variants", prop.ForAll(
		func(tokens []string, seed int64) bool {
			shuffled := make([]string, len(tokens))
			for i, tok := range tokens {
				shuffled[i] = randomizeCase(tok, seed+int64(i))
			}
			return reflect.DeepEqual(Generate(tokens), Generate(shuffled))
		},
		genTokens(),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

// randomizeCase applies random casing to a string based on a seed
func randomizeCase(s string, seed int64) string {
	runes := []rune(s)
	for i := range runes {
		if (seed>>uint(i%64))&1 == 1 {
			runes[i] = unicode.ToUpper(runes[i])
		}
	}
	return string(runes)
}
