package dtd_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cognitoiq/xbgen/dtd"
	"github.com/cognitoiq/xbgen/schema"
)

func findComplexType(t *testing.T, set *schema.Set, local string) *schema.ComplexType {
	t.Helper()
	ct, ok := set.ComplexTypes[schema.QName{Local: local}]
	require.True(t, ok, "complex type %s not found", local)
	return ct
}

func TestTranslateEmptyElement(t *testing.T) {
	doc, err := dtd.Parse(`<!ELEMENT br EMPTY>`)
	require.NoError(t, err)

	set, err := dtd.Translate(doc)
	require.NoError(t, err)
	require.Equal(t, "", set.TargetNamespace)

	el, ok := set.Elements[schema.QName{Local: "br"}]
	require.True(t, ok)

	ct := findComplexType(t, set, "brType")
	require.Equal(t, schema.ContentEmpty, ct.Content.Kind)
	require.Equal(t, ct.Name, el.Type)
}

func TestTranslateAnyElement(t *testing.T) {
	doc, err := dtd.Parse(`<!ELEMENT doc ANY>`)
	require.NoError(t, err)

	set, err := dtd.Translate(doc)
	require.NoError(t, err)

	_, ok := set.Elements[schema.QName{Local: "doc"}]
	require.True(t, ok)
}

func TestTranslatePCDATAElement(t *testing.T) {
	doc, err := dtd.Parse(`<!ELEMENT title (#PCDATA)>`)
	require.NoError(t, err)

	set, err := dtd.Translate(doc)
	require.NoError(t, err)

	el, ok := set.Elements[schema.QName{Local: "title"}]
	require.True(t, ok)
	require.Equal(t, schema.QName{Namespace: "http://www.w3.org/2001/XMLSchema", Local: "string"}, el.Type)
}

func TestTranslateSequence(t *testing.T) {
	doc, err := dtd.Parse(`
<!ELEMENT root (a, b)>
<!ELEMENT a (#PCDATA)>
<!ELEMENT b (#PCDATA)>
`)
	require.NoError(t, err)

	set, err := dtd.Translate(doc)
	require.NoError(t, err)

	ct := findComplexType(t, set, "rootType")
	require.Equal(t, schema.ContentElementOnly, ct.Content.Kind)
	require.Equal(t, schema.CompositorSequence, ct.Content.Particle.Group.Compositor)
	require.Len(t, ct.Content.Particle.Group.Particles, 2)
}

func TestTranslateChoice(t *testing.T) {
	doc, err := dtd.Parse(`
<!ELEMENT root (a | b)>
<!ELEMENT a (#PCDATA)>
<!ELEMENT b (#PCDATA)>
`)
	require.NoError(t, err)

	set, err := dtd.Translate(doc)
	require.NoError(t, err)

	ct := findComplexType(t, set, "rootType")
	require.Equal(t, schema.CompositorChoice, ct.Content.Particle.Group.Compositor)
}

func TestTranslateQuantifiers(t *testing.T) {
	doc, err := dtd.Parse(`
<!ELEMENT root (item*)>
<!ELEMENT item (#PCDATA)>
`)
	require.NoError(t, err)
	set, err := dtd.Translate(doc)
	require.NoError(t, err)
	ct := findComplexType(t, set, "rootType")
	p := ct.Content.Particle.Group.Particles[0]
	require.Equal(t, uint32(0), p.Occurs.Min)
	require.True(t, p.Occurs.Unbounded())

	doc, err = dtd.Parse(`
<!ELEMENT root (item+)>
<!ELEMENT item (#PCDATA)>
`)
	require.NoError(t, err)
	set, err = dtd.Translate(doc)
	require.NoError(t, err)
	ct = findComplexType(t, set, "rootType")
	p = ct.Content.Particle.Group.Particles[0]
	require.Equal(t, uint32(1), p.Occurs.Min)
	require.True(t, p.Occurs.Unbounded())

	doc, err = dtd.Parse(`
<!ELEMENT root (item?)>
<!ELEMENT item (#PCDATA)>
`)
	require.NoError(t, err)
	set, err = dtd.Translate(doc)
	require.NoError(t, err)
	ct = findComplexType(t, set, "rootType")
	p = ct.Content.Particle.Group.Particles[0]
	require.Equal(t, uint32(0), p.Occurs.Min)
	require.Equal(t, uint32(1), p.Occurs.Max)
}

func TestTranslateMixedContent(t *testing.T) {
	doc, err := dtd.Parse(`
<!ELEMENT p (#PCDATA | em | strong)*>
<!ELEMENT em (#PCDATA)>
<!ELEMENT strong (#PCDATA)>
`)
	require.NoError(t, err)
	set, err := dtd.Translate(doc)
	require.NoError(t, err)
	ct := findComplexType(t, set, "pType")
	require.True(t, ct.Mixed)
	require.Equal(t, schema.ContentMixed, ct.Content.Kind)
}

func TestTranslateCDATAAttribute(t *testing.T) {
	doc, err := dtd.Parse(`
<!ELEMENT img EMPTY>
<!ATTLIST img src CDATA #REQUIRED>
`)
	require.NoError(t, err)
	set, err := dtd.Translate(doc)
	require.NoError(t, err)
	ct := findComplexType(t, set, "imgType")
	require.Len(t, ct.Attributes, 1)
	require.Equal(t, "src", ct.Attributes[0].Attribute.Name.Local)
	require.Equal(t, schema.QName{Namespace: "http://www.w3.org/2001/XMLSchema", Local: "string"}, ct.Attributes[0].Attribute.Type)
	require.Equal(t, schema.UseRequired, ct.Attributes[0].Attribute.Use)
}

func TestTranslateIDAttribute(t *testing.T) {
	doc, err := dtd.Parse(`
<!ELEMENT div EMPTY>
<!ATTLIST div id ID #IMPLIED>
`)
	require.NoError(t, err)
	set, err := dtd.Translate(doc)
	require.NoError(t, err)
	ct := findComplexType(t, set, "divType")
	require.Equal(t, schema.QName{Namespace: "http://www.w3.org/2001/XMLSchema", Local: "ID"}, ct.Attributes[0].Attribute.Type)
	require.Equal(t, schema.UseOptional, ct.Attributes[0].Attribute.Use)
}

func TestTranslateEnumerationAttribute(t *testing.T) {
	doc, err := dtd.Parse(`
<!ELEMENT book EMPTY>
<!ATTLIST book genre (fiction | nonfiction | poetry) "fiction">
`)
	require.NoError(t, err)
	set, err := dtd.Translate(doc)
	require.NoError(t, err)
	ct := findComplexType(t, set, "bookType")
	st, ok := set.SimpleTypes[ct.Attributes[0].Attribute.Type]
	require.True(t, ok)
	require.Len(t, st.Enumeration, 3)
}

func TestTranslateFixedAttribute(t *testing.T) {
	doc, err := dtd.Parse(`
<!ELEMENT doc EMPTY>
<!ATTLIST doc version CDATA #FIXED "1.0">
`)
	require.NoError(t, err)
	set, err := dtd.Translate(doc)
	require.NoError(t, err)
	ct := findComplexType(t, set, "docType")
	require.NotNil(t, ct.Attributes[0].Attribute.Fixed)
	require.Equal(t, "1.0", *ct.Attributes[0].Attribute.Fixed)
}
