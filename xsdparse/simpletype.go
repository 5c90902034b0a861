package xsdparse

import (
	"strconv"
	"strings"

	"github.com/cognitoiq/xbgen/schema"
	"github.com/cognitoiq/xbgen/xmltree"
)

// parseSimpleType handles xs:simpleType's three variety forms:
// restriction (atomic, with facets), list, and union.
func (p *parser) parseSimpleType(el *xmltree.Element, name schema.QName) *schema.SimpleType {
	st := &schema.SimpleType{Name: name}

	if r := p.firstChild(el, "restriction"); r != nil {
		st.Variety = schema.VarietyAtomic
		if b := r.Attr("", "base"); b != "" {
			st.Base = p.resolveRef(r, b)
		} else if nested := p.firstChild(r, "simpleType"); nested != nil {
			inline := p.parseSimpleType(nested, schema.QName{})
			st.Base = inline.Base
		}
		p.parseFacets(r, st)
	} else if l := p.firstChild(el, "list"); l != nil {
		st.Variety = schema.VarietyList
		if it := l.Attr("", "itemType"); it != "" {
			st.ItemType = p.resolveRef(l, it)
		} else if nested := p.firstChild(l, "simpleType"); nested != nil {
			st.ItemType = p.qualify(name.Local + "_item")
			p.set.SimpleTypes[st.ItemType] = p.parseSimpleType(nested, st.ItemType)
		}
	} else if u := p.firstChild(el, "union"); u != nil {
		st.Variety = schema.VarietyUnion
		if mt := u.Attr("", "memberTypes"); mt != "" {
			for _, tok := range strings.Fields(mt) {
				st.Members = append(st.Members, p.resolveRef(u, tok))
			}
		}
		for i, nested := range p.children(u, "simpleType") {
			member := p.qualify(name.Local + "_member" + strconv.Itoa(i))
			p.set.SimpleTypes[member] = p.parseSimpleType(nested, member)
			st.Members = append(st.Members, member)
		}
	}
	return st
}

func (p *parser) parseFacets(restriction *xmltree.Element, st *schema.SimpleType) {
	for i := range restriction.Children {
		f := &restriction.Children[i]
		if f.Name.Space != xsdNS {
			continue
		}
		v := f.Attr("", "value")
		switch f.Name.Local {
		case "enumeration":
			st.Enumeration = append(st.Enumeration, v)
		case "pattern":
			st.Pattern = append(st.Pattern, v)
		case "minInclusive":
			st.MinInclusive = &v
		case "maxInclusive":
			st.MaxInclusive = &v
		case "minExclusive":
			st.MinExclusive = &v
		case "maxExclusive":
			st.MaxExclusive = &v
		case "totalDigits":
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				n32 := uint32(n)
				st.TotalDigits = &n32
			}
		case "fractionDigits":
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				n32 := uint32(n)
				st.FractionDigits = &n32
			}
		case "length":
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				n32 := uint32(n)
				st.Length = &n32
			}
		case "minLength":
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				n32 := uint32(n)
				st.MinLength = &n32
			}
		case "maxLength":
			if n, err := strconv.ParseUint(v, 10, 32); err == nil {
				n32 := uint32(n)
				st.MaxLength = &n32
			}
		case "whiteSpace":
			switch v {
			case "replace":
				st.WhiteSpace = schema.WhiteSpaceReplace
			case "collapse":
				st.WhiteSpace = schema.WhiteSpaceCollapse
			default:
				st.WhiteSpace = schema.WhiteSpacePreserve
			}
		}
	}
}
