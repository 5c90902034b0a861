package codegen

import (
	"fmt"

	"github.com/cognitoiq/xbgen/schema"
	"github.com/cognitoiq/xbgen/targetast"
)

// rootGroup returns a content model's effective top-level model group:
// the particle's own group when it is one, or a synthetic one-particle
// sequence when the content model is a single bare element/wildcard.
func rootGroup(p *schema.Particle) *schema.ModelGroup {
	if p == nil {
		return nil
	}
	if p.Kind == schema.ParticleGroup {
		return p.Group
	}
	return &schema.ModelGroup{Compositor: schema.CompositorSequence, Particles: []*schema.Particle{p}}
}

// translateParticles implements §4.6.2: given a model group belonging
// to enclosingType, produce the ordered field list its compositor
// implies.
func (r *resolver) translateParticles(group *schema.ModelGroup, enclosingType schema.QName) []targetast.Field {
	if group == nil {
		return nil
	}
	if group.Compositor == schema.CompositorChoice {
		var alts []string
		for _, p := range group.Particles {
			alts = append(alts, r.termBaseType(p, enclosingType))
		}
		return []targetast.Field{{
			TypeExpr: fmt.Sprintf("interface{} /* choice: %v */", alts),
			Name:     "Choice",
		}}
	}
	var fields []targetast.Field
	for _, p := range group.Particles {
		fields = append(fields, r.translateParticle(p, enclosingType)...)
	}
	return fields
}

// translateParticle handles one particle, including flattening nested
// model groups (sequence/all/interleave) and group references inline
// at their point of occurrence.
func (r *resolver) translateParticle(p *schema.Particle, enclosingType schema.QName) []targetast.Field {
	if p == nil {
		return nil
	}
	switch p.Kind {
	case schema.ParticleWildcard:
		return []targetast.Field{{TypeExpr: "[]AnyElement", Name: "Any"}}
	case schema.ParticleGroup:
		if p.Group.Compositor == schema.CompositorChoice {
			return r.translateParticles(p.Group, enclosingType)
		}
		return r.translateParticles(p.Group, enclosingType)
	case schema.ParticleElement:
		return []targetast.Field{r.translateElementParticle(p, enclosingType)}
	}
	return nil
}

func (r *resolver) termBaseType(p *schema.Particle, enclosingType schema.QName) string {
	switch p.Kind {
	case schema.ParticleWildcard:
		return "[]AnyElement"
	case schema.ParticleElement:
		return r.elementBaseType(p.Element, enclosingType)
	case schema.ParticleGroup:
		return "struct{ /* nested group */ }"
	}
	return "interface{}"
}

func (r *resolver) elementBaseType(el *schema.ElementDecl, enclosingType schema.QName) string {
	if len(el.Alternatives) >= 2 {
		var alts []string
		for _, alt := range el.Alternatives {
			alts = append(alts, r.resolveType(alt.Type))
		}
		return unionTypeExpr(alts)
	}
	if el.Type != (schema.QName{}) {
		return r.resolveType(el.Type)
	}
	if el.InlineType != nil {
		return r.qualifiedTypeName(el.Name)
	}
	return "string"
}

// translateElementParticle applies the §4.6.2 field-type table to one
// element particle.
func (r *resolver) translateElementParticle(p *schema.Particle, enclosingType schema.QName) targetast.Field {
	el := p.Element
	base := r.elementBaseType(el, enclosingType)
	name := fieldIdentifier(el.Name.Local)
	field := targetast.Field{Name: name, Tag: fmt.Sprintf(`xml:"%s"`, el.Name.Local)}

	self := el.Type == enclosingType || (el.InlineType != nil && el.Name == enclosingType)
	switch {
	case self && p.Occurs.Min == 0 && p.Occurs.Max == 1:
		field.TypeExpr = "*" + base
	case el.Nillable:
		field.TypeExpr = "*" + base
	case p.Occurs.Unbounded() || p.Occurs.Max > 1:
		field.TypeExpr = "[]" + base
	case p.Occurs.Min == 0:
		field.TypeExpr = "*" + base
	default:
		field.TypeExpr = base
	}
	if el.Default != nil {
		field.Default = *el.Default
	} else if el.Fixed != nil {
		field.Default = *el.Fixed
	}
	return field
}

// translateAttributes maps a complex type's attribute uses to fields,
// quoting fixed string values per §4.6.2's defaults rule.
func (r *resolver) translateAttributes(attrs []schema.AttributeParticle) []targetast.Field {
	var fields []targetast.Field
	var wildcard *targetast.Field
	for _, a := range attrs {
		if a.Wildcard != nil {
			f := targetast.Field{TypeExpr: "map[string]string", Name: "AnyAttribute"}
			wildcard = &f
			continue
		}
		decl := a.Attribute
		typ := r.resolveType(decl.Type)
		name := fieldIdentifier(decl.Name.Local)
		field := targetast.Field{Name: name, Tag: fmt.Sprintf(`xml:"%s,attr"`, decl.Name.Local)}
		switch decl.Use {
		case schema.UseRequired:
			field.TypeExpr = typ
		default:
			field.TypeExpr = "*" + typ
		}
		if decl.Fixed != nil {
			field.Default = quoteIfString(typ, *decl.Fixed)
		} else if decl.Default != nil {
			field.Default = quoteIfString(typ, *decl.Default)
		}
		fields = append(fields, field)
	}
	if wildcard != nil {
		fields = append(fields, *wildcard)
	}
	return fields
}

func quoteIfString(typ, value string) string {
	if typ == "string" {
		return fmt.Sprintf("%q", value)
	}
	return value
}
