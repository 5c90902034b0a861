package rngc

import (
	"fmt"
	"strings"

	"github.com/cognitoiq/xbgen/rng"
	"github.com/cognitoiq/xbgen/runtime/xerr"
)

// Parse reads a RELAX NG compact-syntax document and returns its
// pattern tree, wrapped in a synthetic grammar when the source is an
// implicit grammar (bare "start = …" / definitions with no enclosing
// "grammar { … }") or a bare top-level pattern.
func Parse(source string) (*rng.Pattern, error) {
	p := &parser{lex: newLexer(source), nsMap: map[string]string{}, dtMap: map[string]string{}}
	if err := p.advance(); err != nil {
		return nil, fmt.Errorf("rngc: %w: %w", xerr.ErrParse, err)
	}
	result, err := p.parseTopLevel()
	if err != nil {
		return nil, fmt.Errorf("rngc: %w: %w", xerr.ErrParse, err)
	}
	return result, nil
}

type parser struct {
	lex       *lexer
	current   token
	defaultNS string
	nsMap     map[string]string
	dtMap     map[string]string
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("parse error (line %d): %s", p.lex.lineNumber(), msg)
}

func (p *parser) expect(k tokenKind, what string) error {
	if p.current.kind != k {
		got := "'" + p.current.value + "'"
		if p.current.kind == tokEOF {
			got = "end of input"
		}
		return p.errorf("expected %s, got %s", what, got)
	}
	return p.advance()
}

func (p *parser) match(k tokenKind) (bool, error) {
	if p.current.kind == k {
		return true, p.advance()
	}
	return false, nil
}

func (p *parser) expectLiteral() (string, error) {
	if p.current.kind != tokLiteral {
		return "", p.errorf("expected string literal")
	}
	result := p.current.value
	if err := p.advance(); err != nil {
		return "", err
	}
	for p.current.kind == tokTilde {
		if err := p.advance(); err != nil {
			return "", err
		}
		if p.current.kind != tokLiteral {
			return "", p.errorf("expected string literal after '~'")
		}
		result += p.current.value
		if err := p.advance(); err != nil {
			return "", err
		}
	}
	return result, nil
}

func (p *parser) expectIdentifier() (string, error) {
	if p.current.kind != tokIdentifier {
		return "", p.errorf("expected identifier, got '%s'", p.current.value)
	}
	val := p.current.value
	return val, p.advance()
}

func (p *parser) parseTopLevel() (*rng.Pattern, error) {
	if err := p.parsePreamble(); err != nil {
		return nil, err
	}
	if p.isGrammarContentStart() {
		g := &rng.Pattern{Kind: rng.PatternGrammar}
		if err := p.parseGrammarContent(g); err != nil {
			return nil, err
		}
		return g, nil
	}
	body, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	return &rng.Pattern{Kind: rng.PatternGrammar, Start: body}, nil
}

func (p *parser) parsePreamble() error {
	for {
		switch p.current.kind {
		case tokKwNamespace:
			if err := p.parseNamespaceDecl(); err != nil {
				return err
			}
		case tokKwDefault:
			if err := p.parseDefaultDecl(); err != nil {
				return err
			}
		case tokKwDatatypes:
			if err := p.parseDatatypesDecl(); err != nil {
				return err
			}
		case tokCName:
			// Orphaned annotation-element CName; its bracket body was
			// already consumed by the lexer's whitespace skipper.
			if err := p.advance(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (p *parser) parseNamespaceDecl() error {
	if err := p.advance(); err != nil { // 'namespace'
		return err
	}
	prefix, err := p.expectIdentifier()
	if err != nil {
		return err
	}
	if err := p.expect(tokEq, "'='"); err != nil {
		return err
	}
	uri, err := p.expectLiteral()
	if err != nil {
		return err
	}
	p.nsMap[prefix] = uri
	return nil
}

func (p *parser) parseDefaultDecl() error {
	if err := p.advance(); err != nil { // 'default'
		return err
	}
	if err := p.expect(tokKwNamespace, "'namespace'"); err != nil {
		return err
	}
	if p.current.kind == tokIdentifier {
		prefix := p.current.value
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.expect(tokEq, "'='"); err != nil {
			return err
		}
		uri, err := p.expectLiteral()
		if err != nil {
			return err
		}
		p.defaultNS = uri
		p.nsMap[prefix] = uri
		return nil
	}
	if err := p.expect(tokEq, "'='"); err != nil {
		return err
	}
	uri, err := p.expectLiteral()
	if err != nil {
		return err
	}
	p.defaultNS = uri
	return nil
}

func (p *parser) parseDatatypesDecl() error {
	if err := p.advance(); err != nil { // 'datatypes'
		return err
	}
	prefix, err := p.expectIdentifier()
	if err != nil {
		return err
	}
	if err := p.expect(tokEq, "'='"); err != nil {
		return err
	}
	uri, err := p.expectLiteral()
	if err != nil {
		return err
	}
	p.dtMap[prefix] = uri
	return nil
}

func (p *parser) isGrammarContentStart() bool {
	switch p.current.kind {
	case tokKwStart, tokKwInclude, tokKwDiv:
		return true
	}
	return p.isDefineStart()
}

func (p *parser) isDefineStart() bool {
	if p.current.kind != tokIdentifier {
		return false
	}
	peek, err := p.lex.peek()
	if err != nil {
		return false
	}
	return peek.kind == tokEq || peek.kind == tokPipeEq || peek.kind == tokAmpEq
}

func (p *parser) parseGrammarContent(g *rng.Pattern) error {
	for p.current.kind != tokEOF && p.current.kind != tokRBrace {
		switch {
		case p.current.kind == tokKwStart:
			if err := p.parseStartDef(g); err != nil {
				return err
			}
		case p.current.kind == tokKwInclude:
			if err := p.parseInclude(g); err != nil {
				return err
			}
		case p.current.kind == tokKwDiv:
			if err := p.parseDiv(g); err != nil {
				return err
			}
		case p.current.kind == tokIdentifier:
			if err := p.parseDefine(g); err != nil {
				return err
			}
		case p.current.kind == tokCName:
			if err := p.advance(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

func (p *parser) parseAssignOp() (tokenKind, error) {
	switch p.current.kind {
	case tokEq, tokPipeEq, tokAmpEq:
		k := p.current.kind
		return k, p.advance()
	}
	return 0, p.errorf("expected '=', '|=', or '&='")
}

func (p *parser) parseStartDef(g *rng.Pattern) error {
	if err := p.advance(); err != nil { // 'start'
		return err
	}
	assignKind, err := p.parseAssignOp()
	if err != nil {
		return err
	}
	body, err := p.parsePattern()
	if err != nil {
		return err
	}

	if assignKind == tokEq {
		defName := "__start__"
		if body.Kind == rng.PatternElement && body.Name.Kind == rng.NameSpecific {
			defName = body.Name.Local
		}
		g.Start = &rng.Pattern{Kind: rng.PatternRef, RefName: defName}
		g.Defines = append(g.Defines, rng.Define{Name: defName, Body: body})
		return nil
	}

	cm := rng.CombineChoice
	if assignKind == tokAmpEq {
		cm = rng.CombineInterleave
	}
	g.Defines = append(g.Defines, rng.Define{Name: "__start__", Combine: cm, Body: body})
	if g.Start == nil {
		g.Start = &rng.Pattern{Kind: rng.PatternRef, RefName: "__start__"}
	}
	return nil
}

func (p *parser) parseDefine(g *rng.Pattern) error {
	name := p.current.value
	if err := p.advance(); err != nil {
		return err
	}
	assignKind, err := p.parseAssignOp()
	if err != nil {
		return err
	}
	body, err := p.parsePattern()
	if err != nil {
		return err
	}

	cm := rng.CombineNone
	switch assignKind {
	case tokPipeEq:
		cm = rng.CombineChoice
	case tokAmpEq:
		cm = rng.CombineInterleave
	}
	g.Defines = append(g.Defines, rng.Define{Name: name, Combine: cm, Body: body})
	return nil
}

func (p *parser) parseInclude(g *rng.Pattern) error {
	if err := p.advance(); err != nil { // 'include'
		return err
	}
	href, err := p.expectLiteral()
	if err != nil {
		return err
	}
	inc := rng.IncludeDirective{Href: href}

	if p.current.kind == tokKwInherit {
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.expect(tokEq, "'='"); err != nil {
			return err
		}
		if p.current.kind == tokIdentifier {
			inc.NS = p.nsMap[p.current.value]
			if err := p.advance(); err != nil {
				return err
			}
		}
	}

	if p.current.kind == tokLBrace {
		if err := p.advance(); err != nil {
			return err
		}
		for p.current.kind != tokRBrace && p.current.kind != tokEOF {
			switch p.current.kind {
			case tokKwStart:
				if err := p.advance(); err != nil {
					return err
				}
				if _, err := p.parseAssignOp(); err != nil {
					return err
				}
				body, err := p.parsePattern()
				if err != nil {
					return err
				}
				inc.Start = body
			case tokIdentifier:
				name := p.current.value
				if err := p.advance(); err != nil {
					return err
				}
				ak, err := p.parseAssignOp()
				if err != nil {
					return err
				}
				body, err := p.parsePattern()
				if err != nil {
					return err
				}
				cm := rng.CombineNone
				switch ak {
				case tokPipeEq:
					cm = rng.CombineChoice
				case tokAmpEq:
					cm = rng.CombineInterleave
				}
				inc.Overrides = append(inc.Overrides, rng.Define{Name: name, Combine: cm, Body: body})
			default:
				goto doneOverrides
			}
		}
	doneOverrides:
		if err := p.expect(tokRBrace, "'}'"); err != nil {
			return err
		}
	}

	g.Includes = append(g.Includes, inc)
	return nil
}

func (p *parser) parseDiv(g *rng.Pattern) error {
	if err := p.advance(); err != nil { // 'div'
		return err
	}
	if err := p.expect(tokLBrace, "'{'"); err != nil {
		return err
	}
	if err := p.parseGrammarContent(g); err != nil {
		return err
	}
	return p.expect(tokRBrace, "'}'")
}

// parsePattern parses the binary-operator level (,/|/&): operators at
// this level must not mix without parentheses.
func (p *parser) parsePattern() (*rng.Pattern, error) {
	left, err := p.parseParticle()
	if err != nil {
		return nil, err
	}
	switch p.current.kind {
	case tokComma:
		return p.parseBinaryChain(left, tokComma)
	case tokPipe:
		return p.parseBinaryChain(left, tokPipe)
	case tokAmp:
		return p.parseBinaryChain(left, tokAmp)
	}
	return left, nil
}

func (p *parser) parseBinaryChain(left *rng.Pattern, op tokenKind) (*rng.Pattern, error) {
	for p.current.kind == op {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseParticle()
		if err != nil {
			return nil, err
		}
		switch op {
		case tokComma:
			left = &rng.Pattern{Kind: rng.PatternGroup, Left: left, Right: right}
		case tokPipe:
			left = &rng.Pattern{Kind: rng.PatternChoice, Left: left, Right: right}
		case tokAmp:
			left = &rng.Pattern{Kind: rng.PatternInterleave, Left: left, Right: right}
		}
	}
	switch p.current.kind {
	case tokComma, tokPipe, tokAmp:
		if p.current.kind != op {
			return nil, p.errorf("cannot mix ',', '|', and '&' operators without parentheses")
		}
	}
	return left, nil
}

func (p *parser) parseParticle() (*rng.Pattern, error) {
	prim, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	switch p.current.kind {
	case tokStar:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &rng.Pattern{Kind: rng.PatternZeroOrMore, Content: prim}, nil
	case tokPlus:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &rng.Pattern{Kind: rng.PatternOneOrMore, Content: prim}, nil
	case tokQuestion:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &rng.Pattern{Kind: rng.PatternOptional, Content: prim}, nil
	}
	return prim, nil
}

func (p *parser) parsePrimary() (*rng.Pattern, error) {
	switch p.current.kind {
	case tokKwElement:
		return p.parseElement()
	case tokKwAttribute:
		return p.parseAttribute()
	case tokKwMixed:
		return p.parseWrapped(rng.PatternMixed, "mixed")
	case tokKwList:
		return p.parseWrapped(rng.PatternList, "list")
	case tokKwGrammar:
		return p.parseGrammarBlock()
	case tokKwExternal:
		return p.parseExternal()
	case tokKwParent:
		return p.parseParentRef()
	case tokKwEmpty:
		return &rng.Pattern{Kind: rng.PatternEmpty}, p.advance()
	case tokKwNotAllowed:
		return &rng.Pattern{Kind: rng.PatternNotAllowed}, p.advance()
	case tokKwText:
		return &rng.Pattern{Kind: rng.PatternText}, p.advance()
	case tokKwString:
		return p.parseBuiltinDatatype("string")
	case tokKwToken:
		return p.parseBuiltinDatatype("token")
	case tokIdentifier:
		return p.parseRef()
	case tokCName:
		return p.parseCNameDatatype()
	case tokLiteral:
		return p.parseValue()
	case tokLParen:
		return p.parseParen()
	}
	return nil, p.errorf("unexpected token: '%s'", p.current.value)
}

func (p *parser) parseElement() (*rng.Pattern, error) {
	if err := p.advance(); err != nil { // 'element'
		return nil, err
	}
	nc, err := p.parseNameClass()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokLBrace, "'{'"); err != nil {
		return nil, err
	}
	content, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return &rng.Pattern{Kind: rng.PatternElement, Name: nc, Content: content}, nil
}

func (p *parser) parseAttribute() (*rng.Pattern, error) {
	if err := p.advance(); err != nil { // 'attribute'
		return nil, err
	}
	nc, err := p.parseNameClassForAttr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokLBrace, "'{'"); err != nil {
		return nil, err
	}
	content, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return &rng.Pattern{Kind: rng.PatternAttribute, Name: nc, Content: content}, nil
}

func (p *parser) parseWrapped(kind rng.PatternKind, keyword string) (*rng.Pattern, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(tokLBrace, "'{'"); err != nil {
		return nil, err
	}
	content, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return &rng.Pattern{Kind: kind, Content: content}, nil
}

func (p *parser) parseGrammarBlock() (*rng.Pattern, error) {
	if err := p.advance(); err != nil { // 'grammar'
		return nil, err
	}
	if err := p.expect(tokLBrace, "'{'"); err != nil {
		return nil, err
	}
	g := &rng.Pattern{Kind: rng.PatternGrammar}
	if err := p.parseGrammarContent(g); err != nil {
		return nil, err
	}
	if err := p.expect(tokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return g, nil
}

func (p *parser) parseExternal() (*rng.Pattern, error) {
	if err := p.advance(); err != nil { // 'external'
		return nil, err
	}
	href, err := p.expectLiteral()
	if err != nil {
		return nil, err
	}
	var ns string
	if p.current.kind == tokKwInherit {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(tokEq, "'='"); err != nil {
			return nil, err
		}
		if p.current.kind == tokIdentifier {
			ns = p.nsMap[p.current.value]
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	return &rng.Pattern{Kind: rng.PatternExternalRef, Href: href, NS: ns}, nil
}

func (p *parser) parseParentRef() (*rng.Pattern, error) {
	if err := p.advance(); err != nil { // 'parent'
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	return &rng.Pattern{Kind: rng.PatternParentRef, RefName: name}, nil
}

func (p *parser) parseRef() (*rng.Pattern, error) {
	name := p.current.value
	return &rng.Pattern{Kind: rng.PatternRef, RefName: name}, p.advance()
}

func (p *parser) parseBuiltinDatatype(typ string) (*rng.Pattern, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.current.kind == tokLBrace {
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		return &rng.Pattern{Kind: rng.PatternData, DataType: typ, Params: params}, nil
	}
	if p.current.kind == tokLiteral {
		val, err := p.expectLiteral()
		if err != nil {
			return nil, err
		}
		return &rng.Pattern{Kind: rng.PatternValue, DataType: typ, Value: val, ValueNS: p.defaultNS}, nil
	}
	return &rng.Pattern{Kind: rng.PatternData, DataType: typ}, nil
}

func (p *parser) parseCNameDatatype() (*rng.Pattern, error) {
	cname := p.current.value
	if err := p.advance(); err != nil {
		return nil, err
	}
	prefix, local, _ := strings.Cut(cname, ":")
	dtLib := p.dtMap[prefix]

	if p.current.kind == tokLBrace {
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		var except *rng.Pattern
		if p.current.kind == tokMinus {
			if err := p.advance(); err != nil {
				return nil, err
			}
			except, err = p.parseParticle()
			if err != nil {
				return nil, err
			}
		}
		return &rng.Pattern{Kind: rng.PatternData, DatatypeLibrary: dtLib, DataType: local, Params: params, Except: except}, nil
	}
	if p.current.kind == tokLiteral {
		val, err := p.expectLiteral()
		if err != nil {
			return nil, err
		}
		return &rng.Pattern{Kind: rng.PatternValue, DatatypeLibrary: dtLib, DataType: local, Value: val, ValueNS: p.defaultNS}, nil
	}
	var except *rng.Pattern
	if p.current.kind == tokMinus {
		if err := p.advance(); err != nil {
			return nil, err
		}
		var err error
		except, err = p.parseParticle()
		if err != nil {
			return nil, err
		}
	}
	return &rng.Pattern{Kind: rng.PatternData, DatatypeLibrary: dtLib, DataType: local, Except: except}, nil
}

func (p *parser) parseValue() (*rng.Pattern, error) {
	val, err := p.expectLiteral()
	if err != nil {
		return nil, err
	}
	return &rng.Pattern{Kind: rng.PatternValue, DataType: "token", Value: val, ValueNS: p.defaultNS}, nil
}

func (p *parser) parseParen() (*rng.Pattern, error) {
	if err := p.advance(); err != nil { // '('
		return nil, err
	}
	inner, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	return inner, p.expect(tokRParen, "')'")
}

func (p *parser) parseParams() ([]rng.DataParam, error) {
	var params []rng.DataParam
	if err := p.advance(); err != nil { // '{'
		return nil, err
	}
	for p.current.kind != tokRBrace && p.current.kind != tokEOF {
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokEq, "'='"); err != nil {
			return nil, err
		}
		val, err := p.expectLiteral()
		if err != nil {
			return nil, err
		}
		params = append(params, rng.DataParam{Name: name, Value: val})
	}
	return params, p.expect(tokRBrace, "'}'")
}

// --- name classes ---

func (p *parser) isKeywordAsName() bool {
	switch p.current.kind {
	case tokKwAttribute, tokKwDefault, tokKwDatatypes, tokKwDiv, tokKwElement,
		tokKwEmpty, tokKwExternal, tokKwGrammar, tokKwInclude, tokKwInherit,
		tokKwList, tokKwMixed, tokKwNamespace, tokKwNotAllowed, tokKwParent,
		tokKwStart, tokKwString, tokKwToken, tokKwText:
		return true
	}
	return false
}

func (p *parser) parseNameClass() (rng.NameClass, error) {
	nc, err := p.parseSimpleNameClass(true)
	if err != nil {
		return rng.NameClass{}, err
	}
	if p.current.kind == tokPipe {
		return p.parseNameClassChoice(nc)
	}
	if p.current.kind == tokMinus {
		return p.parseNameClassExcept(nc)
	}
	return nc, nil
}

// parseNameClassForAttr parses an attribute's name class: unqualified
// names get the empty namespace, not the in-scope default namespace.
func (p *parser) parseNameClassForAttr() (rng.NameClass, error) {
	switch {
	case p.current.kind == tokStar:
		if err := p.advance(); err != nil {
			return rng.NameClass{}, err
		}
		if p.current.kind == tokMinus {
			return p.parseNameClassExcept(rng.NameClass{Kind: rng.NameAny})
		}
		return rng.NameClass{Kind: rng.NameAny}, nil
	case p.current.kind == tokNsName:
		prefix := p.current.value
		if err := p.advance(); err != nil {
			return rng.NameClass{}, err
		}
		return rng.NameClass{Kind: rng.NameNsName, NS: p.nsMap[prefix]}, nil
	case p.current.kind == tokCName:
		return p.parseCNameAsNameClass()
	case p.current.kind == tokIdentifier || p.isKeywordAsName():
		local := p.current.value
		if err := p.advance(); err != nil {
			return rng.NameClass{}, err
		}
		return rng.NameClass{Kind: rng.NameSpecific, NS: "", Local: local}, nil
	}
	return rng.NameClass{}, p.errorf("expected name class for attribute")
}

func (p *parser) parseSimpleNameClass(useDefaultNS bool) (rng.NameClass, error) {
	switch {
	case p.current.kind == tokStar:
		return rng.NameClass{Kind: rng.NameAny}, p.advance()
	case p.current.kind == tokNsName:
		prefix := p.current.value
		if err := p.advance(); err != nil {
			return rng.NameClass{}, err
		}
		return rng.NameClass{Kind: rng.NameNsName, NS: p.nsMap[prefix]}, nil
	case p.current.kind == tokCName:
		return p.parseCNameAsNameClass()
	case p.current.kind == tokIdentifier || p.isKeywordAsName():
		local := p.current.value
		if err := p.advance(); err != nil {
			return rng.NameClass{}, err
		}
		ns := ""
		if useDefaultNS {
			ns = p.defaultNS
		}
		return rng.NameClass{Kind: rng.NameSpecific, NS: ns, Local: local}, nil
	}
	return rng.NameClass{}, p.errorf("expected name class")
}

func (p *parser) parseCNameAsNameClass() (rng.NameClass, error) {
	cname := p.current.value
	if err := p.advance(); err != nil {
		return rng.NameClass{}, err
	}
	prefix, local, _ := strings.Cut(cname, ":")
	return rng.NameClass{Kind: rng.NameSpecific, NS: p.nsMap[prefix], Local: local}, nil
}

func (p *parser) parseNameClassChoice(left rng.NameClass) (rng.NameClass, error) {
	for p.current.kind == tokPipe {
		if err := p.advance(); err != nil {
			return rng.NameClass{}, err
		}
		right, err := p.parseSimpleNameClass(true)
		if err != nil {
			return rng.NameClass{}, err
		}
		l, r := left, right
		left = rng.NameClass{Kind: rng.NameChoice, Left: &l, Right: &r}
	}
	return left, nil
}

func (p *parser) parseNameClassExcept(base rng.NameClass) (rng.NameClass, error) {
	if err := p.advance(); err != nil { // '-'
		return rng.NameClass{}, err
	}
	exc, err := p.parseNameClassPrimary(true)
	if err != nil {
		return rng.NameClass{}, err
	}
	switch base.Kind {
	case rng.NameAny:
		return rng.NameClass{Kind: rng.NameAny, Except: &exc}, nil
	case rng.NameNsName:
		return rng.NameClass{Kind: rng.NameNsName, NS: base.NS, Except: &exc}, nil
	}
	return rng.NameClass{}, p.errorf("except only valid after * or nsName")
}

func (p *parser) parseNameClassPrimary(useDefaultNS bool) (rng.NameClass, error) {
	if p.current.kind == tokLParen {
		if err := p.advance(); err != nil {
			return rng.NameClass{}, err
		}
		nc, err := p.parseSimpleNameClass(useDefaultNS)
		if err != nil {
			return rng.NameClass{}, err
		}
		if p.current.kind == tokPipe {
			nc, err = p.parseNameClassChoice(nc)
			if err != nil {
				return rng.NameClass{}, err
			}
		}
		if p.current.kind == tokMinus {
			nc, err = p.parseNameClassExcept(nc)
			if err != nil {
				return rng.NameClass{}, err
			}
		}
		return nc, p.expect(tokRParen, "')'")
	}
	return p.parseSimpleNameClass(useDefaultNS)
}
