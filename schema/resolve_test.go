package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAcceptsBuiltins(t *testing.T) {
	s := New("urn:example")
	s.Elements[QName{Local: "root"}] = &ElementDecl{
		Name: QName{Local: "root"},
		Type: QName{Namespace: xsdNamespace, Local: "string"},
	}
	require.NoError(t, s.Resolve())
}

func TestResolveRejectsMissingType(t *testing.T) {
	s := New("urn:example")
	s.Elements[QName{Local: "root"}] = &ElementDecl{
		Name: QName{Local: "root"},
		Type: QName{Namespace: "urn:example", Local: "Missing"},
	}
	err := s.Resolve()
	assert.Error(t, err)
}

func TestResolveDetectsDerivationCycle(t *testing.T) {
	s := New("urn:example")
	a := QName{Namespace: "urn:example", Local: "A"}
	b := QName{Namespace: "urn:example", Local: "B"}
	s.ComplexTypes[a] = &ComplexType{Name: a, Derivation: DerivationExtension, Base: b}
	s.ComplexTypes[b] = &ComplexType{Name: b, Derivation: DerivationExtension, Base: a}
	err := s.Resolve()
	assert.Error(t, err)
}

func TestResolveAcceptsValidExtensionChain(t *testing.T) {
	s := New("urn:example")
	base := QName{Namespace: "urn:example", Local: "Base"}
	derived := QName{Namespace: "urn:example", Local: "Derived"}
	s.ComplexTypes[base] = &ComplexType{Name: base}
	s.ComplexTypes[derived] = &ComplexType{Name: derived, Derivation: DerivationExtension, Base: base}
	require.NoError(t, s.Resolve())
}

func TestResolveIsIdempotent(t *testing.T) {
	s := New("urn:example")
	require.NoError(t, s.Resolve())
	require.NoError(t, s.Resolve())
}
