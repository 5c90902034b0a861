// Package sampledoc implements the sample-doc collaborator (§6.4): given
// a resolved schema.Set and an element name, emit one example XML
// document that instance would satisfy, walking the element's content
// model and filling leaves with a representative value per type.
//
// Grounded on the original's doc_generator.cpp: a single recursive
// writer tracking namespace prefixes, a type-recursion stack (so a
// self-referential complex type terminates instead of looping forever),
// and a depth counter bounding how many nested complex types are expanded.
package sampledoc

import (
	"bytes"
	"fmt"

	"github.com/cognitoiq/xbgen/runtime/xerr"
	"github.com/cognitoiq/xbgen/schema"
	"github.com/cognitoiq/xbgen/xmlio"
)

// GenerateDocument renders a complete sample document for elementName as
// bytes, the shape the sample-doc subcommand (§6.4) writes to --output.
func GenerateDocument(set *schema.Set, elementName schema.QName, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	w := xmlio.NewEncoderWriter(&buf)
	if err := New(set, opts).Generate(elementName, w); err != nil {
		return nil, err
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("sampledoc: %w", err)
	}
	return buf.Bytes(), nil
}

const xsdNS = "http://www.w3.org/2001/XMLSchema"

// Options controls how Generate fills in the structure a schema leaves
// optional (§6.4's --populate-optional/--max-depth flags).
type Options struct {
	// PopulateOptional, when true, also emits optional elements,
	// attributes, and particles instead of omitting them.
	PopulateOptional bool
	// MaxDepth bounds how many nested complex-type levels are expanded;
	// beyond it (and for any type already on the recursion stack) an
	// element is emitted empty rather than expanded further.
	MaxDepth int
}

// DefaultOptions returns Options that omit optional structure and expand
// at most 8 nested complex-type levels; the sample-doc command starts
// from these.
func DefaultOptions() Options {
	return Options{MaxDepth: 8}
}

// Generator writes example documents against a fixed schema.Set.
type Generator struct {
	set  *schema.Set
	opts Options

	w             xmlio.Writer
	nsPrefixes    map[string]string
	prefixCounter int
	depth         int
	typeStack     map[schema.QName]bool
}

// New returns a Generator drawing element, complex-type, and
// simple-type declarations from set.
func New(set *schema.Set, opts Options) *Generator {
	return &Generator{set: set, opts: opts}
}

// Generate writes a sample document rooted at elementName to w.
func (g *Generator) Generate(elementName schema.QName, w xmlio.Writer) error {
	g.w = w
	g.nsPrefixes = make(map[string]string)
	g.prefixCounter = 0
	g.depth = 0
	g.typeStack = make(map[schema.QName]bool)

	elem, ok := g.set.Elements[elementName]
	if !ok {
		return fmt.Errorf("sampledoc: element not found: %s: %w", elementName, xerr.ErrResolution)
	}
	return g.writeElement(elem)
}

func isXSDBuiltin(name schema.QName) bool {
	return name.Namespace == xsdNS
}

func (g *Generator) ensureNamespace(name schema.QName) error {
	uri := name.Namespace
	if uri == "" {
		return nil
	}
	if _, ok := g.nsPrefixes[uri]; ok {
		return nil
	}
	prefix := ""
	if len(g.nsPrefixes) > 0 {
		prefix = fmt.Sprintf("ns%d", g.prefixCounter)
		g.prefixCounter++
	}
	g.nsPrefixes[uri] = prefix
	return g.w.NamespaceDeclaration(prefix, uri)
}

func (g *Generator) writeElement(elem *schema.ElementDecl) error {
	if elem.Abstract {
		if concrete := g.findConcreteSubstitution(elem.Name); concrete != nil {
			return g.writeElement(concrete)
		}
		// No concrete substitution group member: fall through and emit
		// an empty element, matching the grounding source's behavior.
	}

	if err := g.w.StartElement(elem.Name); err != nil {
		return err
	}
	if err := g.ensureNamespace(elem.Name); err != nil {
		return err
	}

	switch {
	case elem.Fixed != nil:
		if err := g.w.Characters(*elem.Fixed); err != nil {
			return err
		}
	case elem.Default != nil:
		if err := g.w.Characters(*elem.Default); err != nil {
			return err
		}
	case elem.InlineType != nil:
		if err := g.writeComplexTypeContent(elem.InlineType); err != nil {
			return err
		}
	case elem.InlineSimpleType != nil:
		if err := g.w.Characters(g.resolveSimpleTypeValue(elem.InlineSimpleType)); err != nil {
			return err
		}
	default:
		if err := g.writeTypeContent(elem.Type); err != nil {
			return err
		}
	}

	return g.w.EndElement()
}

func (g *Generator) findConcreteSubstitution(abstractName schema.QName) *schema.ElementDecl {
	for _, e := range g.set.Elements {
		if e.SubstitutionHead != nil && *e.SubstitutionHead == abstractName && !e.Abstract {
			return e
		}
	}
	return nil
}

func (g *Generator) writeTypeContent(typeName schema.QName) error {
	if typeName == (schema.QName{}) {
		return nil
	}
	if isXSDBuiltin(typeName) {
		return g.w.Characters(defaultValueForBuiltin(typeName.Local))
	}
	if ct, ok := g.set.ComplexTypes[typeName]; ok {
		return g.writeComplexTypeContent(ct)
	}
	if st, ok := g.set.SimpleTypes[typeName]; ok {
		return g.w.Characters(g.resolveSimpleTypeValue(st))
	}
	// Unknown type: emit empty, matching the grounding source.
	return nil
}

func (g *Generator) writeComplexTypeContent(ct *schema.ComplexType) error {
	if g.depth >= g.opts.MaxDepth || g.typeStack[ct.Name] {
		return nil
	}
	g.depth++
	g.typeStack[ct.Name] = true
	defer func() {
		delete(g.typeStack, ct.Name)
		g.depth--
	}()

	if err := g.writeAttributes(ct.Attributes); err != nil {
		return err
	}

	switch ct.Content.Kind {
	case schema.ContentEmpty:
		return nil
	case schema.ContentSimple:
		base := schema.QName{Namespace: xsdNS, Local: "string"}
		if ct.Content.SimpleType != nil {
			base = ct.Content.SimpleType.Base
		}
		return g.w.Characters(g.resolveBaseChainValue(base))
	case schema.ContentElementOnly, schema.ContentMixed:
		if ct.Derivation == schema.DerivationExtension && ct.Base != (schema.QName{}) {
			if err := g.writeBaseTypeContent(ct.Base); err != nil {
				return err
			}
		}
		if ct.Content.Particle != nil {
			return g.writeParticle(ct.Content.Particle)
		}
	}
	return nil
}

// writeBaseTypeContent emits an extension base's own content model
// ahead of the derived type's, without counting against the recursion
// depth budget (the derived type already spent one level on itself).
func (g *Generator) writeBaseTypeContent(baseName schema.QName) error {
	if isXSDBuiltin(baseName) {
		return nil
	}
	baseCT, ok := g.set.ComplexTypes[baseName]
	if !ok {
		return nil
	}
	if baseCT.Derivation == schema.DerivationExtension && baseCT.Base != (schema.QName{}) {
		if err := g.writeBaseTypeContent(baseCT.Base); err != nil {
			return err
		}
	}
	if baseCT.Content.Particle != nil {
		return g.writeParticle(baseCT.Content.Particle)
	}
	return nil
}

func (g *Generator) writeAttributes(attrs []schema.AttributeParticle) error {
	for _, a := range attrs {
		if a.Wildcard != nil {
			continue
		}
		attr := a.Attribute
		if attr.Use != schema.UseRequired && !g.opts.PopulateOptional {
			continue
		}
		value := g.defaultValueForAttribute(attr)
		if err := g.w.Attribute(attr.Name, value); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) defaultValueForAttribute(attr *schema.AttributeDecl) string {
	if attr.Fixed != nil {
		return *attr.Fixed
	}
	if attr.Default != nil {
		return *attr.Default
	}
	return g.defaultValueForType(attr.Type)
}

func (g *Generator) defaultValueForType(typeName schema.QName) string {
	if isXSDBuiltin(typeName) {
		return defaultValueForBuiltin(typeName.Local)
	}
	if st, ok := g.set.SimpleTypes[typeName]; ok {
		return g.resolveSimpleTypeValue(st)
	}
	return "string"
}

// resolveBaseChainValue walks a simple-content base type's restriction
// chain looking for an enumeration facet before falling back to the
// eventual builtin's representative value.
func (g *Generator) resolveBaseChainValue(base schema.QName) string {
	current := base
	for !isXSDBuiltin(current) {
		st, ok := g.set.SimpleTypes[current]
		if !ok {
			break
		}
		if len(st.Enumeration) > 0 {
			return st.Enumeration[0]
		}
		current = st.Base
	}
	if isXSDBuiltin(current) {
		return defaultValueForBuiltin(current.Local)
	}
	return "string"
}

func (g *Generator) resolveSimpleTypeValue(st *schema.SimpleType) string {
	if len(st.Enumeration) > 0 {
		return st.Enumeration[0]
	}
	if st.MinInclusive != nil {
		return *st.MinInclusive
	}
	if st.Length != nil {
		return repeatA(int(*st.Length))
	}
	if st.MinLength != nil {
		return repeatA(int(*st.MinLength))
	}
	current := st.Base
	for !isXSDBuiltin(current) {
		base, ok := g.set.SimpleTypes[current]
		if !ok {
			break
		}
		if len(base.Enumeration) > 0 {
			return base.Enumeration[0]
		}
		if base.MinInclusive != nil {
			return *base.MinInclusive
		}
		current = base.Base
	}
	if isXSDBuiltin(current) {
		return defaultValueForBuiltin(current.Local)
	}
	return "string"
}

func repeatA(n int) string {
	if n < 0 {
		n = 0
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}

func (g *Generator) writeModelGroup(group *schema.ModelGroup) error {
	switch group.Compositor {
	case schema.CompositorChoice:
		if len(group.Particles) > 0 {
			return g.writeParticle(group.Particles[0])
		}
		return nil
	default:
		for _, p := range group.Particles {
			if err := g.writeParticle(p); err != nil {
				return err
			}
		}
		return nil
	}
}

func (g *Generator) writeParticle(p *schema.Particle) error {
	count := p.Occurs.Min
	if count == 0 && g.opts.PopulateOptional {
		count = 1
	}
	if count == 0 {
		return nil
	}

	for i := uint32(0); i < count; i++ {
		switch p.Kind {
		case schema.ParticleElement:
			if p.Element == nil {
				continue
			}
			elem := p.Element
			if resolved, ok := g.set.Elements[elem.Name]; ok {
				elem = resolved
			}
			if err := g.writeElement(elem); err != nil {
				return err
			}
		case schema.ParticleGroup:
			if p.Group == nil {
				continue
			}
			if err := g.writeModelGroup(p.Group); err != nil {
				return err
			}
		case schema.ParticleWildcard:
			// Wildcards have no declared shape to sample; skip.
		}
	}
	return nil
}

// defaultValueForBuiltin returns the representative lexical value
// Generate fills an xsd-builtin-typed leaf with, mirroring the
// grounding source's per-builtin table.
func defaultValueForBuiltin(local string) string {
	switch local {
	case "string", "normalizedString", "token", "Name", "NCName", "NMTOKEN", "QName":
		return "string"
	case "boolean":
		return "true"
	case "int", "integer", "long", "short", "byte",
		"unsignedInt", "unsignedLong", "unsignedShort", "unsignedByte",
		"nonNegativeInteger", "nonPositiveInteger":
		return "0"
	case "positiveInteger":
		return "1"
	case "negativeInteger":
		return "-1"
	case "decimal", "float", "double":
		return "0.0"
	case "date":
		return "2000-01-01"
	case "dateTime":
		return "2000-01-01T00:00:00"
	case "time":
		return "00:00:00"
	case "duration":
		return "PT0S"
	case "base64Binary", "hexBinary":
		return ""
	case "anyURI":
		return "http://example.com"
	case "language":
		return "en"
	case "ID", "IDREF":
		return "id1"
	case "gYear":
		return "2000"
	case "gYearMonth":
		return "2000-01"
	case "gMonth":
		return "--01"
	case "gMonthDay":
		return "--01-01"
	case "gDay":
		return "---01"
	case "anySimpleType", "anyType":
		return "string"
	default:
		return "0"
	}
}
