package sampledoc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cognitoiq/xbgen/sampledoc"
	"github.com/cognitoiq/xbgen/schema"
)

const testNS = "http://example.com/test"

var xsString = schema.QName{Namespace: "http://www.w3.org/2001/XMLSchema", Local: "string"}

func qn(local string) schema.QName { return schema.QName{Namespace: testNS, Local: local} }

func TestGenerateElementNotFound(t *testing.T) {
	set := schema.New(testNS)
	require.NoError(t, set.Resolve())

	_, err := sampledoc.GenerateDocument(set, qn("NonExistent"), sampledoc.DefaultOptions())
	require.Error(t, err)
}

func TestGenerateStringElement(t *testing.T) {
	set := schema.New(testNS)
	set.Elements[qn("Name")] = &schema.ElementDecl{Name: qn("Name"), Type: xsString}
	require.NoError(t, set.Resolve())

	out, err := sampledoc.GenerateDocument(set, qn("Name"), sampledoc.DefaultOptions())
	require.NoError(t, err)
	text := string(out)
	require.Contains(t, text, `xmlns="http://example.com/test"`)
	require.Contains(t, text, ">string</Name>")
}

func TestGenerateEmptyComplexType(t *testing.T) {
	set := schema.New(testNS)
	set.ComplexTypes[qn("EmptyType")] = &schema.ComplexType{Name: qn("EmptyType"), Content: schema.ContentType{Kind: schema.ContentEmpty}}
	set.Elements[qn("Empty")] = &schema.ElementDecl{Name: qn("Empty"), Type: qn("EmptyType")}
	require.NoError(t, set.Resolve())

	out, err := sampledoc.GenerateDocument(set, qn("Empty"), sampledoc.DefaultOptions())
	require.NoError(t, err)
	text := string(out)
	require.Contains(t, text, "<Empty")
	require.Contains(t, text, "</Empty>")
}

func TestGenerateSequenceOfTwoElements(t *testing.T) {
	set := schema.New(testNS)
	group := &schema.ModelGroup{Compositor: schema.CompositorSequence, Particles: []*schema.Particle{
		{Kind: schema.ParticleElement, Occurs: schema.Occurs{Min: 1, Max: 1}, Element: &schema.ElementDecl{Name: qn("First"), Type: xsString}},
		{Kind: schema.ParticleElement, Occurs: schema.Occurs{Min: 1, Max: 1}, Element: &schema.ElementDecl{Name: qn("Second"), Type: xsString}},
	}}
	set.ComplexTypes[qn("RootType")] = &schema.ComplexType{
		Name:    qn("RootType"),
		Content: schema.ContentType{Kind: schema.ContentElementOnly, Particle: &schema.Particle{Kind: schema.ParticleGroup, Occurs: schema.Occurs{Min: 1, Max: 1}, Group: group}},
	}
	set.Elements[qn("Root")] = &schema.ElementDecl{Name: qn("Root"), Type: qn("RootType")}
	require.NoError(t, set.Resolve())

	out, err := sampledoc.GenerateDocument(set, qn("Root"), sampledoc.DefaultOptions())
	require.NoError(t, err)
	text := string(out)
	require.Contains(t, text, ">string</First>")
	require.Contains(t, text, ">string</Second>")
}

func TestGenerateOptionalElementOmittedByDefault(t *testing.T) {
	set := schema.New(testNS)
	group := &schema.ModelGroup{Compositor: schema.CompositorSequence, Particles: []*schema.Particle{
		{Kind: schema.ParticleElement, Occurs: schema.Occurs{Min: 0, Max: 1}, Element: &schema.ElementDecl{Name: qn("Maybe"), Type: xsString}},
	}}
	set.ComplexTypes[qn("RootType")] = &schema.ComplexType{
		Name:    qn("RootType"),
		Content: schema.ContentType{Kind: schema.ContentElementOnly, Particle: &schema.Particle{Kind: schema.ParticleGroup, Occurs: schema.Occurs{Min: 1, Max: 1}, Group: group}},
	}
	set.Elements[qn("Root")] = &schema.ElementDecl{Name: qn("Root"), Type: qn("RootType")}
	require.NoError(t, set.Resolve())

	out, err := sampledoc.GenerateDocument(set, qn("Root"), sampledoc.DefaultOptions())
	require.NoError(t, err)
	require.NotContains(t, string(out), "Maybe")

	out, err = sampledoc.GenerateDocument(set, qn("Root"), sampledoc.Options{PopulateOptional: true, MaxDepth: 8})
	require.NoError(t, err)
	require.Contains(t, string(out), ">string</Maybe>")
}

func TestGenerateEnumerationPicksFirstValue(t *testing.T) {
	set := schema.New(testNS)
	set.SimpleTypes[qn("Color")] = &schema.SimpleType{Name: qn("Color"), Variety: schema.VarietyAtomic, Base: xsString, Enumeration: []string{"Red", "Green", "Blue"}}
	set.Elements[qn("Favorite")] = &schema.ElementDecl{Name: qn("Favorite"), Type: qn("Color")}
	require.NoError(t, set.Resolve())

	out, err := sampledoc.GenerateDocument(set, qn("Favorite"), sampledoc.DefaultOptions())
	require.NoError(t, err)
	require.Contains(t, string(out), ">Red<")
}

func TestGenerateSelfRecursiveTypeTerminates(t *testing.T) {
	set := schema.New(testNS)
	group := &schema.ModelGroup{Compositor: schema.CompositorSequence, Particles: []*schema.Particle{
		{Kind: schema.ParticleElement, Occurs: schema.Occurs{Min: 0, Max: 1}, Element: &schema.ElementDecl{Name: qn("Child"), Type: qn("NodeType")}},
	}}
	set.ComplexTypes[qn("NodeType")] = &schema.ComplexType{
		Name:    qn("NodeType"),
		Content: schema.ContentType{Kind: schema.ContentElementOnly, Particle: &schema.Particle{Kind: schema.ParticleGroup, Occurs: schema.Occurs{Min: 1, Max: 1}, Group: group}},
	}
	set.Elements[qn("Node")] = &schema.ElementDecl{Name: qn("Node"), Type: qn("NodeType")}
	require.NoError(t, set.Resolve())

	_, err := sampledoc.GenerateDocument(set, qn("Node"), sampledoc.Options{PopulateOptional: true, MaxDepth: 3})
	require.NoError(t, err)
}

func TestGenerateAbstractElementUsesSubstitutionMember(t *testing.T) {
	set := schema.New(testNS)
	head := qn("Shape")
	set.Elements[head] = &schema.ElementDecl{Name: head, Abstract: true, Type: xsString}
	set.Elements[qn("Circle")] = &schema.ElementDecl{Name: qn("Circle"), Type: xsString, SubstitutionHead: &head}
	require.NoError(t, set.Resolve())

	out, err := sampledoc.GenerateDocument(set, head, sampledoc.DefaultOptions())
	require.NoError(t, err)
	require.Contains(t, string(out), "<Circle")
}
