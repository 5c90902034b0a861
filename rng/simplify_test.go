package rng_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cognitoiq/xbgen/rng"
)

// TestSimplifyAttributeNotAllowed exercises the rule table entry
// attribute(n, notAllowed) -> notAllowed.
func TestSimplifyAttributeNotAllowed(t *testing.T) {
	p := &rng.Pattern{
		Kind:    rng.PatternAttribute,
		Name:    rng.NameClass{Kind: rng.NameSpecific, Local: "name"},
		Content: &rng.Pattern{Kind: rng.PatternNotAllowed},
	}
	out, err := rng.Simplify(p, nil)
	require.NoError(t, err)
	require.Equal(t, rng.PatternNotAllowed, out.Kind)
}

// TestSimplifyUnreachableDefineDropped exercises the grammar
// reachability rule: a define never reached from start is removed.
func TestSimplifyUnreachableDefineDropped(t *testing.T) {
	g := &rng.Pattern{
		Kind:  rng.PatternGrammar,
		Start: &rng.Pattern{Kind: rng.PatternRef, RefName: "used"},
		Defines: []rng.Define{
			{Name: "used", Body: &rng.Pattern{Kind: rng.PatternText}},
			{Name: "orphan", Body: &rng.Pattern{Kind: rng.PatternEmpty}},
		},
	}
	out, err := rng.Simplify(g, nil)
	require.NoError(t, err)
	require.Len(t, out.Defines, 1)
	require.Equal(t, "used", out.Defines[0].Name)
}

// TestSimplifyMixedOptionalZeroOrMore exercises the mixed/optional/
// zeroOrMore expansions together.
func TestSimplifyMixedOptionalZeroOrMore(t *testing.T) {
	mixed := &rng.Pattern{Kind: rng.PatternMixed, Content: &rng.Pattern{Kind: rng.PatternText}}
	out, err := rng.Simplify(mixed, nil)
	require.NoError(t, err)
	require.Equal(t, rng.PatternInterleave, out.Kind)
	require.Equal(t, rng.PatternText, out.Right.Kind)

	optional := &rng.Pattern{Kind: rng.PatternOptional, Content: &rng.Pattern{Kind: rng.PatternText}}
	out, err = rng.Simplify(optional, nil)
	require.NoError(t, err)
	require.Equal(t, rng.PatternChoice, out.Kind)
	require.Equal(t, rng.PatternEmpty, out.Right.Kind)

	zom := &rng.Pattern{Kind: rng.PatternZeroOrMore, Content: &rng.Pattern{Kind: rng.PatternText}}
	out, err = rng.Simplify(zom, nil)
	require.NoError(t, err)
	require.Equal(t, rng.PatternChoice, out.Kind)
	require.Equal(t, rng.PatternOneOrMore, out.Left.Kind)
	require.Equal(t, rng.PatternEmpty, out.Right.Kind)
}
