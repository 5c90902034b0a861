package rngc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cognitoiq/xbgen/rng"
	"github.com/cognitoiq/xbgen/rngc"
)

// TestParseScenarioF exercises §8 Scenario F's RNC source: an implicit
// grammar whose start is an addressBook element containing one or
// more card elements.
func TestParseScenarioF(t *testing.T) {
	src := `
default namespace = "urn:test"
start = element addressBook {
  element card {
    attribute type { string },
    element name { text },
    element email { text }
  }+
}
`
	g, err := rngc.Parse(src)
	require.NoError(t, err)
	require.Equal(t, rng.PatternGrammar, g.Kind)
	require.Len(t, g.Defines, 1)

	addressBook := g.Defines[0].Body
	require.Equal(t, rng.PatternElement, addressBook.Kind)
	require.Equal(t, "addressBook", addressBook.Name.Local)
	require.Equal(t, "urn:test", addressBook.Name.NS)
	require.Equal(t, rng.PatternOneOrMore, addressBook.Content.Kind)

	card := addressBook.Content.Content
	require.Equal(t, rng.PatternElement, card.Kind)
	require.Equal(t, "card", card.Name.Local)
}

// TestParseOperatorMixingError exercises the documented parse error:
// "a, b | c" without parentheses must not parse.
func TestParseOperatorMixingError(t *testing.T) {
	_, err := rngc.Parse(`start = element e { text }, element f { text } | element g { text }`)
	require.Error(t, err)
}

// TestParseEscapedKeyword exercises "\element" parsing as an
// identifier rather than the element keyword.
func TestParseEscapedKeyword(t *testing.T) {
	g, err := rngc.Parse(`start = \element`)
	require.NoError(t, err)
	require.Equal(t, rng.PatternRef, g.Defines[0].Body.Kind)
	require.Equal(t, "element", g.Defines[0].Body.RefName)
}
