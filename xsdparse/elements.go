package xsdparse

import (
	"github.com/cognitoiq/xbgen/schema"
	"github.com/cognitoiq/xbgen/xmltree"
)

// parseElement handles both top-level and local xs:element declarations,
// including XSD 1.1 conditional type alternatives (xs:alternative).
func (p *parser) parseElement(el *xmltree.Element) *schema.ElementDecl {
	decl := &schema.ElementDecl{
		Name:     p.qualify(el.Attr("", "name")),
		Nillable: el.Attr("", "nillable") == "true",
		Abstract: el.Attr("", "abstract") == "true",
		Fixed:    optionalString(el, "fixed"),
		Default:  optionalString(el, "default"),
	}
	if ref := el.Attr("", "ref"); ref != "" {
		decl.Name = p.resolveRef(el, ref)
	}
	if sub := el.Attr("", "substitutionGroup"); sub != "" {
		head := p.resolveRef(el, sub)
		decl.SubstitutionHead = &head
	}
	if t := el.Attr("", "type"); t != "" {
		decl.Type = p.resolveRef(el, t)
	} else if ct := p.firstChild(el, "complexType"); ct != nil {
		decl.InlineType = p.parseComplexType(ct, decl.Name)
	} else if st := p.firstChild(el, "simpleType"); st != nil {
		decl.InlineSimpleType = p.parseSimpleType(st, decl.Name)
	}
	for _, alt := range p.children(el, "alternative") {
		decl.Alternatives = append(decl.Alternatives, p.parseAlternative(alt))
	}
	return decl
}

func (p *parser) parseAlternative(el *xmltree.Element) schema.TypeAlternative {
	alt := schema.TypeAlternative{}
	if test := el.Attr("", "test"); test != "" {
		alt.Test = &schema.Assertion{Kind: schema.AssertionComplexType, Test: test}
	}
	if t := el.Attr("", "type"); t != "" {
		alt.Type = p.resolveRef(el, t)
	} else if ct := p.firstChild(el, "complexType"); ct != nil {
		alt.Inline = p.parseComplexType(ct, schema.QName{})
	}
	return alt
}

// parseAttribute handles both top-level and local xs:attribute
// declarations.
func (p *parser) parseAttribute(el *xmltree.Element) *schema.AttributeDecl {
	decl := &schema.AttributeDecl{
		Name:    p.qualify(el.Attr("", "name")),
		Fixed:   optionalString(el, "fixed"),
		Default: optionalString(el, "default"),
	}
	if ref := el.Attr("", "ref"); ref != "" {
		decl.Name = p.resolveRef(el, ref)
	}
	if t := el.Attr("", "type"); t != "" {
		decl.Type = p.resolveRef(el, t)
	} else if st := p.firstChild(el, "simpleType"); st != nil {
		decl.Type = p.qualify(el.Attr("", "name") + "_inline")
		p.set.SimpleTypes[decl.Type] = p.parseSimpleType(st, decl.Type)
	}
	switch el.Attr("", "use") {
	case "required":
		decl.Use = schema.UseRequired
	case "prohibited":
		decl.Use = schema.UseProhibited
	default:
		decl.Use = schema.UseOptional
	}
	return decl
}
