// Package rngtranslate implements §4.4's RNG-to-Schema-IR translator:
// it projects a simplified rng.Pattern grammar onto schema.Set, the
// same normalized IR xsdparse produces, so codegen never needs to
// know whether a schema.Set originated from XSD or RELAX NG.
package rngtranslate

import (
	"fmt"

	"github.com/cognitoiq/xbgen/rng"
	"github.com/cognitoiq/xbgen/schema"
)

const xsdNS = "http://www.w3.org/2001/XMLSchema"
const xsdDatatypesNS = "http://www.w3.org/2001/XMLSchema-datatypes"

// Translate projects simplified onto a schema.Set. simplified must be
// a grammar pattern — the output of rng.Simplify, never a raw parse.
func Translate(simplified *rng.Pattern) (*schema.Set, error) {
	if simplified == nil || simplified.Kind != rng.PatternGrammar {
		return nil, fmt.Errorf("rngtranslate: expected a grammar pattern (run rng.Simplify first)")
	}

	t := &translator{
		defineMap:         make(map[string]*rng.Define),
		translatedElement: make(map[string]bool),
		translatedByName:  make(map[string]schema.QName),
	}
	ns := t.inferNamespace(simplified)
	t.set = schema.New(ns)
	t.ns = ns

	for i := range simplified.Defines {
		t.defineMap[simplified.Defines[i].Name] = &simplified.Defines[i]
	}
	for _, d := range simplified.Defines {
		t.translateDefine(d)
	}

	if err := t.set.Resolve(); err != nil {
		return nil, fmt.Errorf("rngtranslate: %w", err)
	}
	return t.set, nil
}

type translator struct {
	set *schema.Set
	ns  string

	defineMap map[string]*rng.Define

	// translatedElement guards re-translating the same global element
	// (keyed by its qname string), the same role xsdparse's
	// already-qualified-name map lookups play.
	translatedElement map[string]bool

	// translatedByName records the type a given define name resolved
	// to, so a <ref name="…"/> to an already-translated element define
	// doesn't repeat the work.
	translatedByName map[string]schema.QName
}

// inferNamespace takes a grammar's target namespace to be the
// namespace of the first specifically-named element pattern found
// while walking defines — RELAX NG itself has no explicit
// targetNamespace declaration.
func (t *translator) inferNamespace(g *rng.Pattern) string {
	for _, d := range g.Defines {
		if ns, ok := firstElementNamespace(d.Body); ok {
			return ns
		}
	}
	return ""
}

func firstElementNamespace(p *rng.Pattern) (string, bool) {
	if p == nil {
		return "", false
	}
	switch p.Kind {
	case rng.PatternElement:
		if p.Name.Kind == rng.NameSpecific && p.Name.NS != "" {
			return p.Name.NS, true
		}
	case rng.PatternGroup, rng.PatternInterleave, rng.PatternChoice:
		if ns, ok := firstElementNamespace(p.Left); ok {
			return ns, true
		}
		return firstElementNamespace(p.Right)
	case rng.PatternOneOrMore, rng.PatternList, rng.PatternMixed:
		return firstElementNamespace(p.Content)
	}
	return "", false
}

func (t *translator) translateDefine(d rng.Define) {
	if d.Body == nil || d.Body.Kind != rng.PatternElement {
		return
	}
	elemName, typeName, ok := t.translateElementDefine(d)
	if !ok {
		return
	}
	t.translatedByName[d.Name] = typeName
	if t.translatedElement[elemName.String()] {
		return
	}
	t.translatedElement[elemName.String()] = true
	t.set.Elements[elemName] = &schema.ElementDecl{Name: elemName, Type: typeName}
}

// translateElementDefine resolves d's element name and its content
// type, translating the element's body into a complex type when the
// content is non-trivial. Safe to call more than once for the same
// define: the translatedElement guard makes the complex-type emission
// idempotent, which is what lets a self-recursive element (one whose
// own content refers back to itself) terminate instead of looping.
func (t *translator) translateElementDefine(d rng.Define) (schema.QName, schema.QName, bool) {
	if d.Body.Name.Kind != rng.NameSpecific {
		return schema.QName{}, schema.QName{}, false
	}
	elemName := schema.QName{Namespace: d.Body.Name.NS, Local: d.Body.Name.Local}

	if t.translatedElement[elemName.String()] {
		if existing, ok := t.set.Elements[elemName]; ok {
			return elemName, existing.Type, true
		}
	}

	var typeName schema.QName
	switch {
	case d.Body.Content == nil:
		typeName = schema.QName{Namespace: xsdNS, Local: "string"}
	default:
		typeName = t.contentTypeName(d.Body.Content)
		if typeName == (schema.QName{}) {
			typeName = elemName
			t.translatedElement[elemName.String()] = true
			t.set.Elements[elemName] = &schema.ElementDecl{Name: elemName, Type: typeName}
			t.translateElementBody(elemName, d.Body.Content)
		}
	}
	return elemName, typeName, true
}

// contentTypeName determines the XSD type a content pattern denotes
// directly (text/data map to built-ins; a ref to an already-resolvable
// define recurses), or the zero QName when the content needs an
// inline complex type instead.
func (t *translator) contentTypeName(p *rng.Pattern) schema.QName {
	if p == nil {
		return schema.QName{}
	}
	switch p.Kind {
	case rng.PatternText:
		return schema.QName{Namespace: xsdNS, Local: "string"}
	case rng.PatternData:
		return t.dataTypeQName(p)
	case rng.PatternEmpty:
		return schema.QName{}
	case rng.PatternRef:
		def, ok := t.defineMap[p.RefName]
		if !ok || def.Body == nil {
			return schema.QName{}
		}
		if def.Body.Kind == rng.PatternElement {
			if qn, ok := t.translatedByName[p.RefName]; ok {
				return qn
			}
			_, typeName, ok := t.translateElementDefine(*def)
			if !ok {
				return schema.QName{}
			}
			t.translatedByName[p.RefName] = typeName
			return typeName
		}
		return t.contentTypeName(def.Body)
	}
	return schema.QName{}
}

func (t *translator) dataTypeQName(p *rng.Pattern) schema.QName {
	if p.DatatypeLibrary == xsdDatatypesNS || p.DatatypeLibrary == xsdNS {
		return schema.QName{Namespace: xsdNS, Local: p.DataType}
	}
	if p.DatatypeLibrary == "" {
		switch p.DataType {
		case "string", "token":
			return schema.QName{Namespace: xsdNS, Local: p.DataType}
		}
	}
	return schema.QName{Namespace: xsdNS, Local: "string"}
}

// translateElementBody builds the complex type an element's content
// pattern denotes: particles/attribute uses from the content, under
// the compositor the top-level pattern calls for.
func (t *translator) translateElementBody(name schema.QName, body *rng.Pattern) {
	var particles []*schema.Particle
	var attrs []schema.AttributeParticle
	t.translateContentParticles(body, &particles, &attrs)

	ct := &schema.ComplexType{Name: name}
	switch {
	case len(particles) == 0 && len(attrs) == 0:
		ct.Content.Kind = schema.ContentEmpty
	case len(particles) == 0:
		ct.Content.Kind = schema.ContentEmpty
		ct.Attributes = attrs
	default:
		ct.Content.Kind = schema.ContentElementOnly
		ct.Attributes = attrs
		ct.Content.Particle = &schema.Particle{
			Kind:   schema.ParticleGroup,
			Occurs: schema.Occurs{Min: 1, Max: 1},
			Group:  &schema.ModelGroup{Compositor: patternCompositor(body), Particles: particles},
		}
	}
	t.set.ComplexTypes[name] = ct
}

// patternCompositor reports the sequence/choice/interleave discipline
// a content pattern's top level calls for. A choice with an empty
// branch is really an optional wrapper (handled in
// translateContentParticles), not a true choice, so it reads as a
// sequence here.
func patternCompositor(p *rng.Pattern) schema.GroupCompositor {
	switch p.Kind {
	case rng.PatternInterleave:
		return schema.CompositorInterleave
	case rng.PatternChoice:
		if isEmpty(p.Left) || isEmpty(p.Right) {
			return schema.CompositorSequence
		}
		return schema.CompositorChoice
	}
	return schema.CompositorSequence
}

func isEmpty(p *rng.Pattern) bool { return p != nil && p.Kind == rng.PatternEmpty }

// translateContentParticles walks a (simplified) content pattern,
// flattening group/interleave/choice structure into the particle and
// attribute-use lists a single model group holds — compositor
// selection happens once, at the enclosing complex type, not per
// nested node.
func (t *translator) translateContentParticles(p *rng.Pattern, particles *[]*schema.Particle, attrs *[]schema.AttributeParticle) {
	if p == nil {
		return
	}
	switch p.Kind {
	case rng.PatternElement:
		t.translateElementParticle(p, particles)

	case rng.PatternAttribute:
		t.translateAttributeParticle(p, attrs)

	case rng.PatternGroup, rng.PatternInterleave:
		t.translateContentParticles(p.Left, particles, attrs)
		t.translateContentParticles(p.Right, particles, attrs)

	case rng.PatternOneOrMore:
		var inner []*schema.Particle
		var innerAttrs []schema.AttributeParticle
		t.translateContentParticles(p.Content, &inner, &innerAttrs)
		for _, ip := range inner {
			ip.Occurs = schema.Occurs{Min: 1, Max: schema.MaxUnbounded}
			*particles = append(*particles, ip)
		}
		*attrs = append(*attrs, innerAttrs...)

	case rng.PatternChoice:
		switch {
		case isEmpty(p.Right) && p.Left != nil:
			t.appendOptional(p.Left, particles, attrs)
		case isEmpty(p.Left) && p.Right != nil:
			t.appendOptional(p.Right, particles, attrs)
		default:
			t.translateContentParticles(p.Left, particles, attrs)
			t.translateContentParticles(p.Right, particles, attrs)
		}

	case rng.PatternRef:
		def, ok := t.defineMap[p.RefName]
		if !ok || def.Body == nil {
			return
		}
		if def.Body.Kind == rng.PatternElement {
			// A ref to an element define is a reference to that
			// global element, not an inline expansion: expanding it
			// in place would never terminate for a self-recursive
			// grammar (a tree node referencing its own definition).
			elemName, typeName, ok := t.translateElementDefine(*def)
			if !ok {
				return
			}
			t.translatedByName[p.RefName] = typeName
			*particles = append(*particles, &schema.Particle{
				Kind: schema.ParticleElement, Occurs: schema.Occurs{Min: 1, Max: 1},
				Element: &schema.ElementDecl{Name: elemName, Type: typeName},
			})
			return
		}
		// A ref to a non-element define is a reusable content
		// fragment: inline its particles/attributes here.
		t.translateContentParticles(def.Body, particles, attrs)
	}
	// text, empty, data, value, notAllowed: no particles in content.
}

func (t *translator) translateElementParticle(p *rng.Pattern, particles *[]*schema.Particle) {
	if p.Name.Kind != rng.NameSpecific {
		return
	}
	elemName := schema.QName{Namespace: p.Name.NS, Local: p.Name.Local}
	var typeName schema.QName
	if p.Content != nil {
		typeName = t.contentTypeName(p.Content)
		if typeName == (schema.QName{}) {
			typeName = elemName
			t.translatedElement[elemName.String()] = true
			t.translateElementBody(elemName, p.Content)
		}
	} else {
		typeName = schema.QName{Namespace: xsdNS, Local: "string"}
	}
	*particles = append(*particles, &schema.Particle{
		Kind: schema.ParticleElement, Occurs: schema.Occurs{Min: 1, Max: 1},
		Element: &schema.ElementDecl{Name: elemName, Type: typeName},
	})
}

func (t *translator) translateAttributeParticle(p *rng.Pattern, attrs *[]schema.AttributeParticle) {
	if p.Name.Kind != rng.NameSpecific {
		return
	}
	attrName := schema.QName{Namespace: p.Name.NS, Local: p.Name.Local}
	typeName := schema.QName{Namespace: xsdNS, Local: "string"}
	if p.Content != nil && p.Content.Kind != rng.PatternText {
		if tn := t.contentTypeName(p.Content); tn != (schema.QName{}) {
			typeName = tn
		}
	}
	*attrs = append(*attrs, schema.AttributeParticle{
		Attribute: &schema.AttributeDecl{Name: attrName, Type: typeName, Use: schema.UseRequired},
	})
}

// appendOptional translates inner, then relaxes every resulting
// particle/attribute-use to optional — the translation of a
// choice(x, empty) / choice(empty, x) pattern, which rng.Simplify
// produces for both optional(x) and zeroOrMore(x).
func (t *translator) appendOptional(inner *rng.Pattern, particles *[]*schema.Particle, attrs *[]schema.AttributeParticle) {
	var innerParticles []*schema.Particle
	var innerAttrs []schema.AttributeParticle
	t.translateContentParticles(inner, &innerParticles, &innerAttrs)
	for _, ip := range innerParticles {
		if ip.Occurs.Unbounded() {
			ip.Occurs.Min = 0
		} else {
			ip.Occurs = schema.Occurs{Min: 0, Max: ip.Occurs.Max}
		}
		*particles = append(*particles, ip)
	}
	for i := range innerAttrs {
		if innerAttrs[i].Attribute != nil {
			innerAttrs[i].Attribute.Use = schema.UseOptional
		}
	}
	*attrs = append(*attrs, innerAttrs...)
}
