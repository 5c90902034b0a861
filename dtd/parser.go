package dtd

import (
	"fmt"
	"strings"

	"github.com/cognitoiq/xbgen/runtime/xerr"
)

// Parse reads a DTD document's declarations into a Document. Unlike the
// schema front-ends, a DTD has no namespace: names are taken verbatim.
func Parse(source string) (*Document, error) {
	p := &parser{lex: newLexer(source), paramEntities: make(map[string]string)}
	if err := p.advance(); err != nil {
		return nil, fmt.Errorf("dtd: %w: %w", xerr.ErrParse, err)
	}
	for p.current.kind != tokEOF {
		if err := p.parseDeclaration(); err != nil {
			return nil, fmt.Errorf("dtd: %w: %w", xerr.ErrParse, err)
		}
	}
	return &p.doc, nil
}

type parser struct {
	lex           *lexer
	current       token
	paramEntities map[string]string
	doc           Document
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.current = t
	return nil
}

func (p *parser) expect(k tokenKind) error {
	if p.current.kind != k {
		return fmt.Errorf("unexpected token %q", p.current.value)
	}
	return p.advance()
}

func (p *parser) expectName() (string, error) {
	if p.current.kind != tokName {
		return "", fmt.Errorf("expected name, got %q", p.current.value)
	}
	v := p.current.value
	if err := p.advance(); err != nil {
		return "", err
	}
	return v, nil
}

func (p *parser) expectLiteral() (string, error) {
	if p.current.kind != tokLiteral {
		return "", fmt.Errorf("expected literal, got %q", p.current.value)
	}
	v := p.current.value
	if err := p.advance(); err != nil {
		return "", err
	}
	return v, nil
}

func (p *parser) parseDeclaration() error {
	switch p.current.kind {
	case tokElementDecl:
		return p.parseElementDecl()
	case tokAttlistDecl:
		return p.parseAttlistDecl()
	case tokEntityDecl:
		return p.parseEntityDecl()
	case tokNotationDecl:
		return p.skipToCloseAngle()
	default:
		return fmt.Errorf("unexpected token %q", p.current.value)
	}
}

func (p *parser) skipToCloseAngle() error {
	for p.current.kind != tokCloseAngle && p.current.kind != tokEOF {
		if err := p.advance(); err != nil {
			return err
		}
	}
	if p.current.kind == tokCloseAngle {
		return p.advance()
	}
	return nil
}

// <!ELEMENT name content-spec>
func (p *parser) parseElementDecl() error {
	if err := p.advance(); err != nil { // skip <!ELEMENT
		return err
	}
	name, err := p.expectName()
	if err != nil {
		return err
	}
	cs, err := p.parseContentSpec()
	if err != nil {
		return err
	}
	if err := p.expect(tokCloseAngle); err != nil {
		return err
	}
	p.doc.Elements = append(p.doc.Elements, ElementDecl{Name: name, Content: cs})
	return nil
}

func (p *parser) parseContentSpec() (ContentSpec, error) {
	switch p.current.kind {
	case tokEmpty:
		if err := p.advance(); err != nil {
			return ContentSpec{}, err
		}
		return ContentSpec{Kind: ContentEmpty}, nil
	case tokAny:
		if err := p.advance(); err != nil {
			return ContentSpec{}, err
		}
		return ContentSpec{Kind: ContentAny}, nil
	case tokOpenParen:
		return p.parseContentModel()
	default:
		return ContentSpec{}, fmt.Errorf("expected content spec, got %q", p.current.value)
	}
}

func (p *parser) parseContentModel() (ContentSpec, error) {
	if err := p.expect(tokOpenParen); err != nil {
		return ContentSpec{}, err
	}
	if p.current.kind == tokPCDATA {
		return p.parseMixedContent()
	}
	cp, err := p.parseGroupContent()
	if err != nil {
		return ContentSpec{}, err
	}
	return ContentSpec{Kind: ContentChildren, Particle: &cp}, nil
}

// (#PCDATA) or (#PCDATA | name1 | name2)*
func (p *parser) parseMixedContent() (ContentSpec, error) {
	if err := p.advance(); err != nil { // skip #PCDATA
		return ContentSpec{}, err
	}
	cs := ContentSpec{Kind: ContentMixed}

	if p.current.kind == tokCloseParen {
		if err := p.advance(); err != nil {
			return ContentSpec{}, err
		}
		if p.current.kind == tokStar {
			if err := p.advance(); err != nil {
				return ContentSpec{}, err
			}
		}
		return cs, nil
	}

	for p.current.kind == tokPipe {
		if err := p.advance(); err != nil { // skip |
			return ContentSpec{}, err
		}
		if p.current.kind == tokPercent {
			if err := p.advance(); err != nil { // skip %
				return ContentSpec{}, err
			}
			entName, err := p.expectName()
			if err != nil {
				return ContentSpec{}, err
			}
			if err := p.expect(tokSemicolon); err != nil {
				return ContentSpec{}, err
			}
			if expanded, ok := p.paramEntities[entName]; ok {
				cs.MixedNames = append(cs.MixedNames, splitNames(expanded)...)
			}
			continue
		}
		name, err := p.expectName()
		if err != nil {
			return ContentSpec{}, err
		}
		cs.MixedNames = append(cs.MixedNames, name)
	}

	if err := p.expect(tokCloseParen); err != nil {
		return ContentSpec{}, err
	}
	if p.current.kind == tokStar {
		if err := p.advance(); err != nil {
			return ContentSpec{}, err
		}
	}
	return cs, nil
}

// splitNames splits a parameter entity's expanded text ("em | strong")
// into its whitespace/pipe-separated names.
func splitNames(expanded string) []string {
	var names []string
	for _, f := range strings.FieldsFunc(expanded, func(r rune) bool {
		return r == '|' || r == ' ' || r == '\t'
	}) {
		if f != "" {
			names = append(names, f)
		}
	}
	return names
}

// parseGroupContent parses inside an already-consumed '(' for a
// children content model: a comma-separated sequence or a
// pipe-separated choice, never both at the same nesting level.
func (p *parser) parseGroupContent() (ContentParticle, error) {
	first, err := p.parseCP()
	if err != nil {
		return ContentParticle{}, err
	}

	switch p.current.kind {
	case tokComma:
		group := ContentParticle{Kind: ParticleSequence, Children: []ContentParticle{first}}
		for p.current.kind == tokComma {
			if err := p.advance(); err != nil {
				return ContentParticle{}, err
			}
			child, err := p.parseCP()
			if err != nil {
				return ContentParticle{}, err
			}
			group.Children = append(group.Children, child)
		}
		if err := p.expect(tokCloseParen); err != nil {
			return ContentParticle{}, err
		}
		q, err := p.parseQuantifier()
		if err != nil {
			return ContentParticle{}, err
		}
		group.Quantifier = q
		return group, nil
	case tokPipe:
		group := ContentParticle{Kind: ParticleChoice, Children: []ContentParticle{first}}
		for p.current.kind == tokPipe {
			if err := p.advance(); err != nil {
				return ContentParticle{}, err
			}
			child, err := p.parseCP()
			if err != nil {
				return ContentParticle{}, err
			}
			group.Children = append(group.Children, child)
		}
		if err := p.expect(tokCloseParen); err != nil {
			return ContentParticle{}, err
		}
		q, err := p.parseQuantifier()
		if err != nil {
			return ContentParticle{}, err
		}
		group.Quantifier = q
		return group, nil
	default:
		if err := p.expect(tokCloseParen); err != nil {
			return ContentParticle{}, err
		}
		q, err := p.parseQuantifier()
		if err != nil {
			return ContentParticle{}, err
		}
		return ContentParticle{Kind: ParticleSequence, Children: []ContentParticle{first}, Quantifier: q}, nil
	}
}

// parseCP parses a single content particle: a name or a parenthesized
// group, each with an optional trailing quantifier.
func (p *parser) parseCP() (ContentParticle, error) {
	if p.current.kind == tokOpenParen {
		if err := p.advance(); err != nil { // skip (
			return ContentParticle{}, err
		}
		return p.parseGroupContent() // consumes ')' and quantifier
	}
	name, err := p.expectName()
	if err != nil {
		return ContentParticle{}, err
	}
	q, err := p.parseQuantifier()
	if err != nil {
		return ContentParticle{}, err
	}
	return ContentParticle{Kind: ParticleName, Name: name, Quantifier: q}, nil
}

func (p *parser) parseQuantifier() (Quantifier, error) {
	switch p.current.kind {
	case tokStar:
		return QuantifierZeroOrMore, p.advance()
	case tokPlus:
		return QuantifierOneOrMore, p.advance()
	case tokQuestion:
		return QuantifierOptional, p.advance()
	default:
		return QuantifierOne, nil
	}
}

// <!ATTLIST element-name attribute-def+ >
func (p *parser) parseAttlistDecl() error {
	if err := p.advance(); err != nil { // skip <!ATTLIST
		return err
	}
	elementName, err := p.expectName()
	if err != nil {
		return err
	}
	al := AttlistDecl{ElementName: elementName}
	for p.current.kind != tokCloseAngle && p.current.kind != tokEOF {
		ad, err := p.parseAttributeDef()
		if err != nil {
			return err
		}
		al.Attributes = append(al.Attributes, ad)
	}
	if err := p.expect(tokCloseAngle); err != nil {
		return err
	}
	p.doc.Attlists = append(p.doc.Attlists, al)
	return nil
}

func (p *parser) parseAttributeDef() (AttributeDef, error) {
	name, err := p.expectName()
	if err != nil {
		return AttributeDef{}, err
	}
	ad := AttributeDef{Name: name}
	typ, enumVals, err := p.parseAttributeType()
	if err != nil {
		return AttributeDef{}, err
	}
	ad.Type = typ
	ad.EnumValues = enumVals
	if err := p.parseDefaultDecl(&ad); err != nil {
		return AttributeDef{}, err
	}
	return ad, nil
}

func (p *parser) parseAttributeType() (AttributeType, []string, error) {
	switch p.current.kind {
	case tokCDATA:
		return AttributeCDATA, nil, p.advance()
	case tokID:
		return AttributeID, nil, p.advance()
	case tokIDREF:
		return AttributeIDREF, nil, p.advance()
	case tokIDREFS:
		return AttributeIDREFS, nil, p.advance()
	case tokENTITY:
		return AttributeEntity, nil, p.advance()
	case tokENTITIES:
		return AttributeEntities, nil, p.advance()
	case tokNMTOKEN:
		return AttributeNMToken, nil, p.advance()
	case tokNMTOKENS:
		return AttributeNMTokens, nil, p.advance()
	case tokNOTATION:
		if err := p.advance(); err != nil {
			return 0, nil, err
		}
		vals, err := p.parseParenNameList()
		if err != nil {
			return 0, nil, err
		}
		return AttributeNotation, vals, nil
	case tokOpenParen:
		vals, err := p.parseParenNameList()
		if err != nil {
			return 0, nil, err
		}
		return AttributeEnumeration, vals, nil
	default:
		return 0, nil, fmt.Errorf("expected attribute type, got %q", p.current.value)
	}
}

// parseParenNameList parses "( name | name | ... )".
func (p *parser) parseParenNameList() ([]string, error) {
	if err := p.expect(tokOpenParen); err != nil {
		return nil, err
	}
	first, err := p.expectName()
	if err != nil {
		return nil, err
	}
	vals := []string{first}
	for p.current.kind == tokPipe {
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := p.expectName()
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	if err := p.expect(tokCloseParen); err != nil {
		return nil, err
	}
	return vals, nil
}

func (p *parser) parseDefaultDecl(ad *AttributeDef) error {
	switch p.current.kind {
	case tokRequired:
		ad.DefaultKind = DefaultRequired
		return p.advance()
	case tokImplied:
		ad.DefaultKind = DefaultImplied
		return p.advance()
	case tokFixed:
		ad.DefaultKind = DefaultFixed
		if err := p.advance(); err != nil {
			return err
		}
		v, err := p.expectLiteral()
		if err != nil {
			return err
		}
		ad.DefaultValue = v
		return nil
	case tokLiteral:
		ad.DefaultKind = DefaultValue
		v, err := p.expectLiteral()
		if err != nil {
			return err
		}
		ad.DefaultValue = v
		return nil
	default:
		ad.DefaultKind = DefaultImplied
		return nil
	}
}

// <!ENTITY [%] name literal-or-external-id >
func (p *parser) parseEntityDecl() error {
	if err := p.advance(); err != nil { // skip <!ENTITY
		return err
	}
	var ent EntityDecl
	if p.current.kind == tokPercent {
		if err := p.advance(); err != nil {
			return err
		}
		ent.IsParameter = true
	}
	name, err := p.expectName()
	if err != nil {
		return err
	}
	ent.Name = name

	switch p.current.kind {
	case tokLiteral:
		v, err := p.expectLiteral()
		if err != nil {
			return err
		}
		ent.Value = v
		if ent.IsParameter {
			p.paramEntities[ent.Name] = ent.Value
		}
	case tokSystem:
		if err := p.advance(); err != nil {
			return err
		}
		v, err := p.expectLiteral()
		if err != nil {
			return err
		}
		ent.SystemID = v
	case tokPublic:
		if err := p.advance(); err != nil {
			return err
		}
		pub, err := p.expectLiteral()
		if err != nil {
			return err
		}
		sys, err := p.expectLiteral()
		if err != nil {
			return err
		}
		ent.PublicID = pub
		ent.SystemID = sys
	}

	if p.current.kind == tokNDATA {
		if err := p.advance(); err != nil {
			return err
		}
		if _, err := p.expectName(); err != nil { // notation name, unused
			return err
		}
	}

	if err := p.expect(tokCloseAngle); err != nil {
		return err
	}
	p.doc.Entities = append(p.doc.Entities, ent)
	return nil
}
