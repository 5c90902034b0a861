package schema

import (
	"fmt"

	"github.com/cognitoiq/xbgen/runtime/xerr"
)

// Resolve validates that each top-level element's type and substitution
// head, and each derived complex type's base, name a component that is
// present (or an XSD builtin), that every content-model particle carries
// its declaration, and that complex-type derivation chains are acyclic.
// Types named by local element and attribute declarations and by simple
// types are not checked here. It is idempotent: calling it twice is
// harmless.
func (s *Set) Resolve() error {
	if s.resolved {
		return nil
	}
	for name, el := range s.Elements {
		if el.Type != (QName{}) {
			if err := s.requireType(el.Type); err != nil {
				return fmt.Errorf("element %s: %w", name, err)
			}
		}
		if el.SubstitutionHead != nil {
			if _, ok := s.Elements[*el.SubstitutionHead]; !ok {
				return fmt.Errorf("element %s: substitution head %s: %w", name, *el.SubstitutionHead, xerr.ErrResolution)
			}
		}
	}
	for name, ct := range s.ComplexTypes {
		if ct.Derivation != DerivationNone && ct.Base != (QName{}) {
			if err := s.requireType(ct.Base); err != nil {
				return fmt.Errorf("complex type %s: %w", name, err)
			}
		}
		if err := s.checkParticle(ct.Content.Particle); err != nil {
			return fmt.Errorf("complex type %s: %w", name, err)
		}
	}
	if err := s.checkDerivationCycles(); err != nil {
		return err
	}
	s.resolved = true
	return nil
}

func (s *Set) requireType(name QName) error {
	if _, ok := s.SimpleTypes[name]; ok {
		return nil
	}
	if _, ok := s.ComplexTypes[name]; ok {
		return nil
	}
	if isBuiltinQName(name) {
		return nil
	}
	return fmt.Errorf("type %s not found: %w", name, xerr.ErrResolution)
}

func (s *Set) checkParticle(p *Particle) error {
	if p == nil {
		return nil
	}
	switch p.Kind {
	case ParticleElement:
		if p.Element == nil {
			return fmt.Errorf("element particle with nil declaration: %w", xerr.ErrResolution)
		}
	case ParticleGroup:
		if p.Group == nil {
			return fmt.Errorf("group particle with nil group: %w", xerr.ErrResolution)
		}
		for _, child := range p.Group.Particles {
			if err := s.checkParticle(child); err != nil {
				return err
			}
		}
	case ParticleWildcard:
		if p.Wildcard == nil {
			return fmt.Errorf("wildcard particle with nil wildcard: %w", xerr.ErrResolution)
		}
	}
	return nil
}

// checkDerivationCycles walks every complex type's base chain looking
// for a cycle, using the standard white/gray/black DFS coloring.
func (s *Set) checkDerivationCycles() error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[QName]int, len(s.ComplexTypes))
	var visit func(name QName) error
	visit = func(name QName) error {
		switch color[name] {
		case black:
			return nil
		case gray:
			return fmt.Errorf("derivation cycle at %s: %w", name, xerr.ErrResolution)
		}
		color[name] = gray
		if ct, ok := s.ComplexTypes[name]; ok && ct.Derivation != DerivationNone {
			if _, isComplex := s.ComplexTypes[ct.Base]; isComplex {
				if err := visit(ct.Base); err != nil {
					return err
				}
			}
		}
		color[name] = black
		return nil
	}
	for name := range s.ComplexTypes {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}

// isBuiltinQName reports whether name refers to one of the XSD builtin
// simple types, which never appear in SimpleTypes/ComplexTypes but are
// always valid references.
func isBuiltinQName(name QName) bool {
	if name.Namespace != xsdNamespace {
		return false
	}
	_, ok := builtinNames[name.Local]
	return ok
}

const xsdNamespace = "http://www.w3.org/2001/XMLSchema"

var builtinNames = map[string]struct{}{
	"anyType": {}, "anySimpleType": {}, "anyAtomicType": {},
	"string": {}, "boolean": {}, "decimal": {}, "float": {}, "double": {},
	"duration": {}, "dateTime": {}, "time": {}, "date": {},
	"gYearMonth": {}, "gYear": {}, "gMonthDay": {}, "gDay": {}, "gMonth": {},
	"hexBinary": {}, "base64Binary": {}, "anyURI": {}, "QName": {}, "NOTATION": {},
	"normalizedString": {}, "token": {}, "language": {}, "NMTOKEN": {}, "NMTOKENS": {},
	"Name": {}, "NCName": {}, "ID": {}, "IDREF": {}, "IDREFS": {}, "ENTITY": {}, "ENTITIES": {},
	"integer": {}, "nonPositiveInteger": {}, "negativeInteger": {},
	"long": {}, "int": {}, "short": {}, "byte": {},
	"nonNegativeInteger": {}, "unsignedLong": {}, "unsignedInt": {}, "unsignedShort": {}, "unsignedByte": {},
	"positiveInteger": {},
	"yearMonthDuration": {}, "dayTimeDuration": {}, "dateTimeStamp": {},
}
