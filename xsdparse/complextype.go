package xsdparse

import (
	"github.com/cognitoiq/xbgen/schema"
	"github.com/cognitoiq/xbgen/xmltree"
)

// parseComplexType handles xs:complexType's content-model forms:
// simpleContent (extension/restriction of a simple base), complexContent
// (extension/restriction of a complex base), and the bare
// sequence/choice/all/group/any shorthand for element-only content.
func (p *parser) parseComplexType(el *xmltree.Element, name schema.QName) *schema.ComplexType {
	ct := &schema.ComplexType{
		Name:     name,
		Abstract: el.Attr("", "abstract") == "true",
		Mixed:    el.Attr("", "mixed") == "true",
	}

	if sc := p.firstChild(el, "simpleContent"); sc != nil {
		p.parseSimpleContent(sc, ct)
	} else if cc := p.firstChild(el, "complexContent"); cc != nil {
		ct.Mixed = ct.Mixed || cc.Attr("", "mixed") == "true"
		p.parseComplexContent(cc, ct)
	} else {
		ct.Content.Particle = p.parseContentParticle(el)
		ct.Attributes = p.parseAttributeParticles(el)
		switch {
		case ct.Content.Particle == nil && !ct.Mixed:
			ct.Content.Kind = schema.ContentEmpty
		case ct.Mixed:
			ct.Content.Kind = schema.ContentMixed
		default:
			ct.Content.Kind = schema.ContentElementOnly
		}
	}

	ct.OpenContent = p.parseOpenContent(el)
	for _, a := range p.children(el, "assert") {
		ct.Asserts = append(ct.Asserts, schema.Assertion{Kind: schema.AssertionComplexType, Test: a.Attr("", "test")})
	}
	return ct
}

func (p *parser) parseSimpleContent(sc *xmltree.Element, ct *schema.ComplexType) {
	ct.Content.Kind = schema.ContentSimple
	if ext := p.firstChild(sc, "extension"); ext != nil {
		ct.Derivation = schema.DerivationExtension
		ct.Base = p.resolveRef(ext, ext.Attr("", "base"))
		ct.Attributes = p.parseAttributeParticles(ext)
		ct.Content.SimpleType = &schema.SimpleType{Base: ct.Base}
	} else if res := p.firstChild(sc, "restriction"); res != nil {
		ct.Derivation = schema.DerivationRestriction
		ct.Base = p.resolveRef(res, res.Attr("", "base"))
		ct.Attributes = p.parseAttributeParticles(res)
		st := p.parseSimpleType(res, schema.QName{})
		ct.Content.SimpleType = st
	}
}

func (p *parser) parseComplexContent(cc *xmltree.Element, ct *schema.ComplexType) {
	var body *xmltree.Element
	if ext := p.firstChild(cc, "extension"); ext != nil {
		ct.Derivation = schema.DerivationExtension
		ct.Base = p.resolveRef(ext, ext.Attr("", "base"))
		body = ext
	} else if res := p.firstChild(cc, "restriction"); res != nil {
		ct.Derivation = schema.DerivationRestriction
		ct.Base = p.resolveRef(res, res.Attr("", "base"))
		body = res
	}
	if body == nil {
		ct.Content.Kind = schema.ContentEmpty
		return
	}
	ct.Content.Particle = p.parseContentParticle(body)
	ct.Attributes = p.parseAttributeParticles(body)
	switch {
	case ct.Mixed:
		ct.Content.Kind = schema.ContentMixed
	case ct.Content.Particle != nil:
		ct.Content.Kind = schema.ContentElementOnly
	default:
		ct.Content.Kind = schema.ContentEmpty
	}
}

// parseContentParticle finds the single top-level sequence/choice/all/
// group/element/any particle a complex type's content model wraps, if
// any.
func (p *parser) parseContentParticle(el *xmltree.Element) *schema.Particle {
	for i := range el.Children {
		c := &el.Children[i]
		if c.Name.Space != xsdNS {
			continue
		}
		switch c.Name.Local {
		case "sequence", "choice", "all":
			return &schema.Particle{Kind: schema.ParticleGroup, Occurs: parseOccurs(c), Group: p.parseGroupBody(c)}
		case "group":
			return p.parseGroupRefParticle(c)
		case "element":
			return &schema.Particle{Kind: schema.ParticleElement, Occurs: parseOccurs(c), Element: p.parseElement(c)}
		case "any":
			return &schema.Particle{Kind: schema.ParticleWildcard, Occurs: parseOccurs(c), Wildcard: p.parseWildcard(c)}
		}
	}
	return nil
}

// parseGroupBody parses a sequence/choice/all element's children into a
// ModelGroup.
func (p *parser) parseGroupBody(el *xmltree.Element) *schema.ModelGroup {
	g := &schema.ModelGroup{Compositor: compositorFor(el.Name.Local)}
	for i := range el.Children {
		c := &el.Children[i]
		if c.Name.Space != xsdNS {
			continue
		}
		switch c.Name.Local {
		case "element":
			g.Particles = append(g.Particles, &schema.Particle{Kind: schema.ParticleElement, Occurs: parseOccurs(c), Element: p.parseElement(c)})
		case "sequence", "choice", "all":
			g.Particles = append(g.Particles, &schema.Particle{Kind: schema.ParticleGroup, Occurs: parseOccurs(c), Group: p.parseGroupBody(c)})
		case "group":
			g.Particles = append(g.Particles, p.parseGroupRefParticle(c))
		case "any":
			g.Particles = append(g.Particles, &schema.Particle{Kind: schema.ParticleWildcard, Occurs: parseOccurs(c), Wildcard: p.parseWildcard(c)})
		}
	}
	return g
}

func (p *parser) parseGroupRefParticle(c *xmltree.Element) *schema.Particle {
	ref := p.resolveRef(c, c.Attr("", "ref"))
	if g, ok := p.set.ModelGroups[ref]; ok {
		return &schema.Particle{Kind: schema.ParticleGroup, Occurs: parseOccurs(c), Group: g}
	}
	return &schema.Particle{Kind: schema.ParticleGroup, Occurs: parseOccurs(c), Group: &schema.ModelGroup{}}
}

func compositorFor(local string) schema.GroupCompositor {
	switch local {
	case "choice":
		return schema.CompositorChoice
	case "all":
		return schema.CompositorAll
	default:
		return schema.CompositorSequence
	}
}

func (p *parser) parseWildcard(el *xmltree.Element) *schema.Wildcard {
	w := &schema.Wildcard{}
	if ns := el.Attr("", "namespace"); ns != "" {
		w.Namespaces = []string{ns}
	} else {
		w.Namespaces = []string{"##any"}
	}
	switch el.Attr("", "processContents") {
	case "lax":
		w.ProcessContents = schema.ProcessLax
	case "skip":
		w.ProcessContents = schema.ProcessSkip
	default:
		w.ProcessContents = schema.ProcessStrict
	}
	return w
}

// parseAttributeParticles collects the direct xs:attribute/
// xs:attributeGroup/xs:anyAttribute children of a complex type body or
// extension/restriction element.
func (p *parser) parseAttributeParticles(el *xmltree.Element) []schema.AttributeParticle {
	var out []schema.AttributeParticle
	for i := range el.Children {
		c := &el.Children[i]
		if c.Name.Space != xsdNS {
			continue
		}
		switch c.Name.Local {
		case "attribute":
			out = append(out, schema.AttributeParticle{Attribute: p.parseAttribute(c)})
		case "attributeGroup":
			ref := p.resolveRef(c, c.Attr("", "ref"))
			out = append(out, p.set.AttributeGroups[ref]...)
		case "anyAttribute":
			out = append(out, schema.AttributeParticle{Wildcard: p.parseWildcard(c)})
		}
	}
	return out
}

func (p *parser) parseOpenContent(el *xmltree.Element) *schema.OpenContent {
	oc := p.firstChild(el, "openContent")
	if oc == nil {
		return nil
	}
	mode := schema.OpenContentInterleave
	if oc.Attr("", "mode") == "suffix" {
		mode = schema.OpenContentSuffix
	}
	result := &schema.OpenContent{Mode: mode}
	if any := p.firstChild(oc, "any"); any != nil {
		result.Wildcard = p.parseWildcard(any)
	}
	return result
}
