package rngtranslate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cognitoiq/xbgen/rng"
	"github.com/cognitoiq/xbgen/rngc"
	"github.com/cognitoiq/xbgen/rngtranslate"
	"github.com/cognitoiq/xbgen/schema"
)

// TestTranslateScenarioF drives §8 Scenario F end to end: rngc.Parse ->
// rng.Simplify -> rngtranslate.Translate -> schema.Set, the full RNG
// front-end path mirroring xsdparse's XSD path.
func TestTranslateScenarioF(t *testing.T) {
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
	parsed, err := rngc.Parse(src)
	require.NoError(t, err)

	simplified, err := rng.Simplify(parsed, nil)
	require.NoError(t, err)

	set, err := rngtranslate.Translate(simplified)
	require.NoError(t, err)

	require.Equal(t, "urn:test", set.TargetNamespace)

	addressBookName := schema.QName{Namespace: "urn:test", Local: "addressBook"}
	el, ok := set.Elements[addressBookName]
	require.True(t, ok)

	ct, ok := set.ComplexTypes[el.Type]
	require.True(t, ok)
	require.Equal(t, schema.ContentElementOnly, ct.Content.Kind)
	require.Equal(t, schema.CompositorSequence, ct.Content.Particle.Group.Compositor)
	require.Len(t, ct.Content.Particle.Group.Particles, 1)

	cardParticle := ct.Content.Particle.Group.Particles[0]
	require.Equal(t, "card", cardParticle.Element.Name.Local)
	require.True(t, cardParticle.Occurs.Unbounded())
	require.Equal(t, uint32(1), cardParticle.Occurs.Min)

	cardType, ok := set.ComplexTypes[cardParticle.Element.Type]
	require.True(t, ok)
	require.Len(t, cardType.Attributes, 1)
	require.Equal(t, "type", cardType.Attributes[0].Attribute.Name.Local)
	require.Equal(t, schema.QName{Namespace: "http://www.w3.org/2001/XMLSchema", Local: "string"}, cardType.Attributes[0].Attribute.Type)
	require.Len(t, cardType.Content.Particle.Group.Particles, 2)
	require.Equal(t, "name", cardType.Content.Particle.Group.Particles[0].Element.Name.Local)
	require.Equal(t, "email", cardType.Content.Particle.Group.Particles[1].Element.Name.Local)
}
