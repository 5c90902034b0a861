package codegen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cognitoiq/xbgen/codegen"
	"github.com/cognitoiq/xbgen/emitter"
	"github.com/cognitoiq/xbgen/xsdparse"
)

// TestGenerateScenarioA drives §8 Scenario A through the full pipeline:
// xsdparse -> schema.Set -> codegen.Generate -> emitter.Emit, the
// end-to-end path none of this module's operations were previously
// exercised through.
func TestGenerateScenarioA(t *testing.T) {
	doc := []byte(`<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns="http://example.com/order"
           targetNamespace="http://example.com/order">
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

	files, warnings, err := codegen.Generate(set, nil)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.NotEmpty(t, files)

	var source []byte
	for _, f := range files {
		out, err := emitter.Emit(f)
		require.NoError(t, err)
		source = append(source, out...)
	}
	text := string(source)

	require.Contains(t, text, "type OrderType struct")
	require.Contains(t, text, "Quantity int32")
	require.Contains(t, text, "Price    *float64")
	require.Contains(t, text, "func WriteOrderType(")
	require.Contains(t, text, "func ReadOrderType(")
	require.Contains(t, text, "type Side string")
}

// TestGenerateScenarioD exercises §8 Scenario D: a self-recursive
// complex type must flatten its own-type fields to Go pointers, not
// plain values, or the generated struct would have infinite size.
func TestGenerateScenarioD(t *testing.T) {
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

	files, _, err := codegen.Generate(set, nil)
	require.NoError(t, err)

	var source []byte
	for _, f := range files {
		out, err := emitter.Emit(f)
		require.NoError(t, err)
		source = append(source, out...)
	}
	text := string(source)
	require.Contains(t, text, "Left  *TreeNode")
	require.Contains(t, text, "Right *TreeNode")
}

// TestGenerateScenarioC exercises §8 Scenario C: a complex type in one
// namespace referencing a simple type declared in another namespace
// must produce two files, with the referencing file importing the
// defining file's Go package and qualifying the field's type with it.
func TestGenerateScenarioC(t *testing.T) {
	idDoc := []byte(`<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns="http://example.com/idns"
           targetNamespace="http://example.com/idns">
  <xs:simpleType name="IDType">
    <xs:restriction base="xs:string"/>
  </xs:simpleType>
</xs:schema>`)
	entityDoc := []byte(`<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns="http://example.com/entityns"
           xmlns:idns="http://example.com/idns"
           targetNamespace="http://example.com/entityns">
  <xs:complexType name="EntityType">
    <xs:sequence>
      <xs:element name="name" type="xs:string"/>
    </xs:sequence>
    <xs:attribute name="id" type="idns:IDType" use="required"/>
  </xs:complexType>
</xs:schema>`)

	idSet, err := xsdparse.Parse(idDoc)
	require.NoError(t, err)
	entitySet, err := xsdparse.Parse(entityDoc)
	require.NoError(t, err)

	// Merge the two parsed documents into one set, as a resolved cross-
	// document reference (xs:import having already been fetched) would
	// appear to codegen: a single schema.Set spanning both namespaces.
	for q, st := range idSet.SimpleTypes {
		entitySet.SimpleTypes[q] = st
	}
	require.NoError(t, entitySet.Resolve())

	files, _, err := codegen.Generate(entitySet, nil, codegen.OutputMode_(codegen.ModeHeaderOnly))
	require.NoError(t, err)
	require.Len(t, files, 2)

	var entitySrc []byte
	var sawImport bool
	for _, f := range files {
		for _, inc := range f.Includes {
			if strings.Contains(inc, "idns") {
				sawImport = true
			}
		}
		out, err := emitter.Emit(f)
		require.NoError(t, err)
		if strings.Contains(string(out), "EntityType") {
			entitySrc = out
		}
	}
	require.True(t, sawImport, "entity file should import the idns package")
	require.Contains(t, string(entitySrc), "idns.IDType")
}

// TestGenerateScenarioE exercises §8 Scenario E: an enumeration must
// round-trip through its generated Go representation, and parsing an
// unrecognized string must fail rather than silently succeed.
func TestGenerateScenarioE(t *testing.T) {
	doc := []byte(`<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
           xmlns="urn:colors" targetNamespace="urn:colors">
  <xs:simpleType name="Color">
    <xs:restriction base="xs:string">
      <xs:enumeration value="Red"/>
      <xs:enumeration value="Green"/>
      <xs:enumeration value="Blue"/>
    </xs:restriction>
  </xs:simpleType>
</xs:schema>`)

	set, err := xsdparse.Parse(doc)
	require.NoError(t, err)
	require.NoError(t, set.Resolve())

	files, _, err := codegen.Generate(set, nil)
	require.NoError(t, err)

	var source []byte
	for _, f := range files {
		out, err := emitter.Emit(f)
		require.NoError(t, err)
		source = append(source, out...)
	}
	text := string(source)

	require.Contains(t, text, "type Color string")
	require.Contains(t, text, `ColorRed`)
	require.Contains(t, text, `"Red"`)
	require.Contains(t, text, `"Green"`)
	require.Contains(t, text, `"Blue"`)
	require.Contains(t, text, "func ParseColor(s string) (Color, error)")
	require.Contains(t, text, "case ColorRed:")
	require.Contains(t, text, "return ColorRed, nil")
	require.Contains(t, text, "xerr.ErrInvalidArgument")
}
