package dtd

import (
	"github.com/cognitoiq/xbgen/schema"
)

const xsdNS = "http://www.w3.org/2001/XMLSchema"

// Translate projects a parsed DTD Document onto a schema.Set. DTDs have
// no namespace, so the returned set's TargetNamespace is empty and
// every QName it produces also carries an empty namespace.
//
// Each <!ELEMENT> becomes a global element plus, except for the
// pure-PCDATA case, a "<Name>Type" complex type: EMPTY and ANY both
// become an empty-content complex type (ANY has no XSD equivalent, so
// this is a documented best approximation, matching the grounding
// source's own comment); mixed content with no element names becomes
// a direct xs:string element type; mixed content with element names
// becomes a mixed complex type with no particle model, since DTD mixed
// content imposes no sequence, count, or ordering constraint a
// particle tree could faithfully represent (also a documented
// best-approximation); children content becomes an element-only
// complex type whose particle tree mirrors the DTD content model, with
// SGML quantifiers mapped onto Occurs.
//
// Each <!ATTLIST> entry is attached to its element's complex type as
// an AttributeParticle, mapping the DTD attribute type onto the
// corresponding XSD builtin (or a generated enumeration/NOTATION
// simple type), and #REQUIRED/#IMPLIED/#FIXED onto AttributeUseKind
// plus an optional fixed/default value.
func Translate(doc *Document) (*schema.Set, error) {
	set := schema.New("")

	for _, ed := range doc.Elements {
		translateElement(set, ed)
	}
	for _, al := range doc.Attlists {
		translateAttlist(set, al)
	}

	if err := set.Resolve(); err != nil {
		return nil, err
	}
	return set, nil
}

func name(local string) schema.QName {
	return schema.QName{Local: local}
}

func xsType(local string) schema.QName {
	return schema.QName{Namespace: xsdNS, Local: local}
}

func translateElement(set *schema.Set, ed ElementDecl) {
	elemName := name(ed.Name)
	decl := &schema.ElementDecl{Name: elemName}
	set.Elements[elemName] = decl

	switch ed.Content.Kind {
	case ContentEmpty, ContentAny:
		typeName := name(ed.Name + "Type")
		set.ComplexTypes[typeName] = &schema.ComplexType{
			Name:    typeName,
			Content: schema.ContentType{Kind: schema.ContentEmpty},
		}
		decl.Type = typeName
	case ContentMixed:
		if len(ed.Content.MixedNames) == 0 {
			decl.Type = xsType("string")
			return
		}
		// §4.5: mixed content with element names gets the mixed flag
		// and no particle model — DTD mixed content imposes no
		// sequence, count, or ordering constraint a particle tree
		// could faithfully represent, so this is a documented
		// best-approximation rather than a synthesized choice group.
		typeName := name(ed.Name + "Type")
		set.ComplexTypes[typeName] = &schema.ComplexType{
			Name:    typeName,
			Mixed:   true,
			Content: schema.ContentType{Kind: schema.ContentMixed},
		}
		decl.Type = typeName
	case ContentChildren:
		typeName := name(ed.Name + "Type")
		set.ComplexTypes[typeName] = &schema.ComplexType{
			Name:    typeName,
			Content: schema.ContentType{Kind: schema.ContentElementOnly, Particle: translateParticle(*ed.Content.Particle)},
		}
		decl.Type = typeName
	}
}

func translateParticle(cp ContentParticle) *schema.Particle {
	occurs := translateQuantifier(cp.Quantifier)
	if cp.Kind == ParticleName {
		return &schema.Particle{
			Kind:    schema.ParticleElement,
			Occurs:  occurs,
			Element: &schema.ElementDecl{Name: name(cp.Name)},
		}
	}
	group := &schema.ModelGroup{Compositor: compositorFor(cp.Kind)}
	for _, child := range cp.Children {
		group.Particles = append(group.Particles, translateParticle(child))
	}
	return &schema.Particle{Kind: schema.ParticleGroup, Occurs: occurs, Group: group}
}

func compositorFor(k ParticleKind) schema.GroupCompositor {
	if k == ParticleChoice {
		return schema.CompositorChoice
	}
	return schema.CompositorSequence
}

func translateQuantifier(q Quantifier) schema.Occurs {
	switch q {
	case QuantifierZeroOrMore:
		return schema.Occurs{Min: 0, Max: schema.MaxUnbounded}
	case QuantifierOneOrMore:
		return schema.Occurs{Min: 1, Max: schema.MaxUnbounded}
	case QuantifierOptional:
		return schema.Occurs{Min: 0, Max: 1}
	default:
		return schema.Occurs{Min: 1, Max: 1}
	}
}

func translateAttlist(set *schema.Set, al AttlistDecl) {
	typeName := name(al.ElementName + "Type")
	ct, ok := set.ComplexTypes[typeName]
	if !ok {
		// No <!ELEMENT> declaration was seen for this ATTLIST; DTDs
		// permit this ordering, so synthesize the empty-content type
		// the attributes attach to.
		ct = &schema.ComplexType{Name: typeName, Content: schema.ContentType{Kind: schema.ContentEmpty}}
		set.ComplexTypes[typeName] = ct
		set.Elements[name(al.ElementName)] = &schema.ElementDecl{Name: name(al.ElementName), Type: typeName}
	}
	for _, ad := range al.Attributes {
		ct.Attributes = append(ct.Attributes, schema.AttributeParticle{Attribute: translateAttribute(al.ElementName, ad, set)})
	}
}

func translateAttribute(elementName string, ad AttributeDef, set *schema.Set) *schema.AttributeDecl {
	decl := &schema.AttributeDecl{Name: name(ad.Name)}

	switch ad.Type {
	case AttributeCDATA:
		decl.Type = xsType("string")
	case AttributeID:
		decl.Type = xsType("ID")
	case AttributeIDREF:
		decl.Type = xsType("IDREF")
	case AttributeIDREFS:
		decl.Type = xsType("IDREFS")
	case AttributeEntity:
		decl.Type = xsType("ENTITY")
	case AttributeEntities:
		decl.Type = xsType("ENTITIES")
	case AttributeNMToken:
		decl.Type = xsType("NMTOKEN")
	case AttributeNMTokens:
		decl.Type = xsType("NMTOKENS")
	case AttributeNotation:
		decl.Type = registerEnumType(set, elementName, ad.Name, xsType("NOTATION"), ad.EnumValues)
	case AttributeEnumeration:
		decl.Type = registerEnumType(set, elementName, ad.Name, xsType("NMTOKEN"), ad.EnumValues)
	}

	switch ad.DefaultKind {
	case DefaultRequired:
		decl.Use = schema.UseRequired
	case DefaultFixed:
		decl.Use = schema.UseOptional
		v := ad.DefaultValue
		decl.Fixed = &v
	case DefaultValue:
		decl.Use = schema.UseOptional
		v := ad.DefaultValue
		decl.Default = &v
	default:
		decl.Use = schema.UseOptional
	}
	return decl
}

// registerEnumType builds the anonymous simple type a NOTATION or
// enumerated attribute value needs, since XSD has no inline
// enumeration-in-attribute-declaration syntax the way DTD does.
func registerEnumType(set *schema.Set, elementName, attrName string, base schema.QName, values []string) schema.QName {
	typeName := name(elementName + "_" + attrName + "Type")
	set.SimpleTypes[typeName] = &schema.SimpleType{
		Name:        typeName,
		Variety:     schema.VarietyAtomic,
		Base:        base,
		Enumeration: values,
	}
	return typeName
}
