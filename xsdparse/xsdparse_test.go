package xsdparse_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cognitoiq/xbgen/schema"
	"github.com/cognitoiq/xbgen/xsdparse"
)

// TestParseScenarioA exercises §8 Scenario A: a minimal sequence +
// attribute complex type.
func TestParseScenarioA(t *testing.T) {
	doc := []byte(`<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns="http://example.com/order"
           targetNamespace="http://example.com/order"
           elementFormDefault="qualified">
  <xs:simpleType name="Side">
    <xs:restriction base="xs:string">
      <xs:enumeration value="Buy"/>
      <xs:enumeration value="Sell"/>
    </xs:restriction>
  </xs:simpleType>
  <xs:complexType name="OrderType">
    <xs:sequence>
      <xs:element name="symbol" type="xs:string"/>
      <xs:element name="quantity" type="xs:int"/>
      <xs:element name="price" type="xs:double" minOccurs="0"/>
    </xs:sequence>
    <xs:attribute name="id" type="xs:string" use="required"/>
    <xs:attribute name="side" type="Side" use="required"/>
  </xs:complexType>
</xs:schema>`)

	set, err := xsdparse.Parse(doc)
	require.NoError(t, err)
	require.NoError(t, set.Resolve())

	ns := "http://example.com/order"
	ct, ok := set.ComplexTypes[schema.QName{Namespace: ns, Local: "OrderType"}]
	require.True(t, ok)
	require.Equal(t, schema.ContentElementOnly, ct.Content.Kind)
	require.Len(t, ct.Attributes, 2)
	require.NotNil(t, ct.Content.Particle)
	require.Equal(t, schema.CompositorSequence, ct.Content.Particle.Group.Compositor)
	require.Len(t, ct.Content.Particle.Group.Particles, 3)

	price := ct.Content.Particle.Group.Particles[2]
	require.Equal(t, uint32(0), price.Occurs.Min)

	side, ok := set.SimpleTypes[schema.QName{Namespace: ns, Local: "Side"}]
	require.True(t, ok)
	require.Equal(t, []string{"Buy", "Sell"}, side.Enumeration)
}

// TestParseScenarioB exercises §8 Scenario B: a choice content model.
func TestParseScenarioB(t *testing.T) {
	doc := []byte(`<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns="urn:test" targetNamespace="urn:test">
  <xs:complexType name="MessageType">
    <xs:choice>
      <xs:element name="text" type="xs:string"/>
      <xs:element name="code" type="xs:int"/>
    </xs:choice>
  </xs:complexType>
</xs:schema>`)

	set, err := xsdparse.Parse(doc)
	require.NoError(t, err)

	ct := set.ComplexTypes[schema.QName{Namespace: "urn:test", Local: "MessageType"}]
	require.NotNil(t, ct)
	require.Equal(t, schema.CompositorChoice, ct.Content.Particle.Group.Compositor)
	require.Len(t, ct.Content.Particle.Group.Particles, 2)
}

// TestParseScenarioD exercises §8 Scenario D: a self-recursive type.
func TestParseScenarioD(t *testing.T) {
	doc := []byte(`<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns="urn:tree" targetNamespace="urn:tree">
  <xs:complexType name="TreeNode">
    <xs:sequence>
      <xs:element name="value" type="xs:string"/>
      <xs:element name="left" type="TreeNode" minOccurs="0"/>
      <xs:element name="right" type="TreeNode" minOccurs="0"/>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`)

	set, err := xsdparse.Parse(doc)
	require.NoError(t, err)
	require.NoError(t, set.Resolve())

	ct := set.ComplexTypes[schema.QName{Namespace: "urn:tree", Local: "TreeNode"}]
	require.NotNil(t, ct)
	left := ct.Content.Particle.Group.Particles[1]
	require.Equal(t, schema.QName{Namespace: "urn:tree", Local: "TreeNode"}, left.Element.Type)
	require.Equal(t, uint32(0), left.Occurs.Min)
	require.Equal(t, uint32(1), left.Occurs.Max)
}
