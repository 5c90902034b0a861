// Package rngx implements §4.4's RELAX NG XML-syntax parser: RNG IR
// (rng.Pattern) from the RELAX NG XML syntax. It walks the element
// tree xmltree.Parse builds, the same substrate xsdparse uses, since
// resolving an unqualified element's datatypeLibrary/ns inheritance
// needs the ancestor chain, not just the current element.
package rngx

import (
	"fmt"

	"github.com/cognitoiq/xbgen/rng"
	"github.com/cognitoiq/xbgen/runtime/xerr"
	"github.com/cognitoiq/xbgen/xmltree"
)

const rngNS = "http://relaxng.org/ns/structure/1.0"

// Parse reads a RELAX NG XML-syntax document and returns its pattern
// tree. The result is not simplified; call rng.Simplify before handing
// it to rngtranslate.
func Parse(doc []byte) (*rng.Pattern, error) {
	root, err := xmltree.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("rngx: %w: %w", xerr.ErrParse, err)
	}
	p, err := parsePattern(root, root.Attr("", "datatypeLibrary"), root.Attr("", "ns"))
	if err != nil {
		return nil, fmt.Errorf("rngx: %w: %w", xerr.ErrParse, err)
	}
	return p, nil
}

func isRNG(el *xmltree.Element) bool { return el.Name.Space == rngNS }

func inherited(el *xmltree.Element, local, fallback string) string {
	if v := el.Attr("", local); v != "" {
		return v
	}
	return fallback
}

// rngChildren returns el's direct children in the RELAX NG namespace,
// skipping foreign-namespace annotation elements.
func rngChildren(el *xmltree.Element) []*xmltree.Element {
	var out []*xmltree.Element
	for i := range el.Children {
		c := &el.Children[i]
		if c.Name.Space == rngNS {
			out = append(out, c)
		}
	}
	return out
}

func parsePattern(el *xmltree.Element, dtlib, ns string) (*rng.Pattern, error) {
	if !isRNG(el) {
		return nil, fmt.Errorf("unexpected element %s in namespace %s", el.Name.Local, el.Name.Space)
	}
	local := el.Name.Local
	dtlib = inherited(el, "datatypeLibrary", dtlib)
	ns = inherited(el, "ns", ns)

	switch local {
	case "empty":
		return &rng.Pattern{Kind: rng.PatternEmpty}, nil
	case "text":
		return &rng.Pattern{Kind: rng.PatternText}, nil
	case "notAllowed":
		return &rng.Pattern{Kind: rng.PatternNotAllowed}, nil
	case "ref":
		return &rng.Pattern{Kind: rng.PatternRef, RefName: el.Attr("", "name")}, nil
	case "parentRef":
		return &rng.Pattern{Kind: rng.PatternParentRef, RefName: el.Attr("", "name")}, nil
	case "element":
		return parseElementOrAttribute(el, true, dtlib, ns)
	case "attribute":
		return parseElementOrAttribute(el, false, dtlib, ns)
	case "group":
		return foldPatternChildren(el, dtlib, ns, rng.PatternGroup)
	case "interleave":
		return foldPatternChildren(el, dtlib, ns, rng.PatternInterleave)
	case "choice":
		return foldPatternChildren(el, dtlib, ns, rng.PatternChoice)
	case "oneOrMore":
		content, err := parseSingleOrGroup(el, dtlib, ns)
		if err != nil {
			return nil, err
		}
		return &rng.Pattern{Kind: rng.PatternOneOrMore, Content: content}, nil
	case "zeroOrMore":
		content, err := parseSingleOrGroup(el, dtlib, ns)
		if err != nil {
			return nil, err
		}
		return &rng.Pattern{Kind: rng.PatternZeroOrMore, Content: content}, nil
	case "optional":
		content, err := parseSingleOrGroup(el, dtlib, ns)
		if err != nil {
			return nil, err
		}
		return &rng.Pattern{Kind: rng.PatternOptional, Content: content}, nil
	case "mixed":
		content, err := parseSingleOrGroup(el, dtlib, ns)
		if err != nil {
			return nil, err
		}
		return &rng.Pattern{Kind: rng.PatternMixed, Content: content}, nil
	case "list":
		content, err := parseSingleOrGroup(el, dtlib, ns)
		if err != nil {
			return nil, err
		}
		return &rng.Pattern{Kind: rng.PatternList, Content: content}, nil
	case "data":
		return parseData(el, dtlib, ns)
	case "value":
		typ := el.Attr("", "type")
		if typ == "" {
			typ = "token"
		}
		return &rng.Pattern{Kind: rng.PatternValue, DataType: typ, Value: string(el.Content), ValueNS: ns}, nil
	case "externalRef":
		return &rng.Pattern{Kind: rng.PatternExternalRef, Href: el.Attr("", "href"), NS: ns}, nil
	case "grammar":
		return parseGrammar(el, dtlib, ns)
	}
	return nil, fmt.Errorf("unknown element <%s>", local)
}

func parseData(el *xmltree.Element, dtlib, ns string) (*rng.Pattern, error) {
	p := &rng.Pattern{Kind: rng.PatternData, DatatypeLibrary: dtlib, DataType: el.Attr("", "type")}
	for _, c := range rngChildren(el) {
		switch c.Name.Local {
		case "param":
			p.Params = append(p.Params, rng.DataParam{Name: c.Attr("", "name"), Value: string(c.Content)})
		case "except":
			children := rngChildren(c)
			if len(children) > 0 {
				except, err := parsePattern(children[0], dtlib, ns)
				if err != nil {
					return nil, err
				}
				p.Except = except
			}
		}
	}
	return p, nil
}

// foldPatternChildren right-folds a combinator element's pattern
// children into a binary tree of kind, matching the XML syntax's
// n-ary group/interleave/choice against the IR's binary form.
func foldPatternChildren(el *xmltree.Element, dtlib, ns string, kind rng.PatternKind) (*rng.Pattern, error) {
	children, err := parseChildren(el, dtlib, ns)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("combinator <%s> with no children", el.Name.Local)
	}
	return foldBinary(children, kind), nil
}

func parseChildren(el *xmltree.Element, dtlib, ns string) ([]*rng.Pattern, error) {
	var out []*rng.Pattern
	for _, c := range rngChildren(el) {
		p, err := parsePattern(c, dtlib, ns)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// parseSingleOrGroup parses oneOrMore/zeroOrMore/optional/mixed/list's
// single required child, implicitly grouping multiple siblings.
func parseSingleOrGroup(el *xmltree.Element, dtlib, ns string) (*rng.Pattern, error) {
	children, err := parseChildren(el, dtlib, ns)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return &rng.Pattern{Kind: rng.PatternEmpty}, nil
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return foldBinary(children, rng.PatternGroup), nil
}

func foldBinary(children []*rng.Pattern, kind rng.PatternKind) *rng.Pattern {
	result := children[len(children)-1]
	for i := len(children) - 2; i >= 0; i-- {
		result = &rng.Pattern{Kind: kind, Left: children[i], Right: result}
	}
	return result
}

func parseElementOrAttribute(el *xmltree.Element, isElement bool, dtlib, ns string) (*rng.Pattern, error) {
	nameAttr := el.Attr("", "name")
	elNS := inherited(el, "ns", ns)
	localDtlib := inherited(el, "datatypeLibrary", dtlib)

	var nc *rng.NameClass
	var contentChildren []*xmltree.Element
	for i := range el.Children {
		c := &el.Children[i]
		if c.Name.Space != rngNS {
			continue
		}
		switch c.Name.Local {
		case "name", "anyName", "nsName", "choice":
			if nameAttr == "" && nc == nil {
				parsed, err := parseNameClass(c, elNS)
				if err != nil {
					return nil, err
				}
				nc = &parsed
				continue
			}
			contentChildren = append(contentChildren, c)
		default:
			contentChildren = append(contentChildren, c)
		}
	}

	name := rng.NameClass{Kind: rng.NameAny}
	switch {
	case nameAttr != "":
		name = rng.NameClass{Kind: rng.NameSpecific, NS: elNS, Local: nameAttr}
	case nc != nil:
		name = *nc
	}

	var content *rng.Pattern
	switch len(contentChildren) {
	case 0:
		if isElement {
			content = &rng.Pattern{Kind: rng.PatternEmpty}
		} else {
			content = &rng.Pattern{Kind: rng.PatternText}
		}
	case 1:
		p, err := parsePattern(contentChildren[0], localDtlib, elNS)
		if err != nil {
			return nil, err
		}
		content = p
	default:
		var parsed []*rng.Pattern
		for _, c := range contentChildren {
			p, err := parsePattern(c, localDtlib, elNS)
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, p)
		}
		content = foldBinary(parsed, rng.PatternGroup)
	}

	kind := rng.PatternAttribute
	if isElement {
		kind = rng.PatternElement
	}
	return &rng.Pattern{Kind: kind, Name: name, Content: content}, nil
}

func parseNameClass(el *xmltree.Element, ns string) (rng.NameClass, error) {
	switch el.Name.Local {
	case "name":
		return rng.NameClass{Kind: rng.NameSpecific, NS: ns, Local: string(el.Content)}, nil
	case "anyName":
		nc := rng.NameClass{Kind: rng.NameAny}
		if except := firstRNGChild(el, "except"); except != nil {
			inner, err := exceptedNameClass(except, ns)
			if err != nil {
				return rng.NameClass{}, err
			}
			nc.Except = inner
		}
		return nc, nil
	case "nsName":
		nsAttr := inherited(el, "ns", ns)
		nc := rng.NameClass{Kind: rng.NameNsName, NS: nsAttr}
		if except := firstRNGChild(el, "except"); except != nil {
			inner, err := exceptedNameClass(except, ns)
			if err != nil {
				return rng.NameClass{}, err
			}
			nc.Except = inner
		}
		return nc, nil
	case "choice":
		var children []rng.NameClass
		for i := range el.Children {
			c := &el.Children[i]
			if c.Name.Space != rngNS {
				continue
			}
			childNS := inherited(c, "ns", ns)
			parsed, err := parseNameClass(c, childNS)
			if err != nil {
				return rng.NameClass{}, err
			}
			children = append(children, parsed)
		}
		if len(children) < 2 {
			return rng.NameClass{}, fmt.Errorf("name class choice requires at least 2 children")
		}
		result := children[len(children)-1]
		for i := len(children) - 2; i >= 0; i-- {
			left := children[i]
			result = rng.NameClass{Kind: rng.NameChoice, Left: &left, Right: &result}
		}
		return result, nil
	}
	return rng.NameClass{}, fmt.Errorf("unknown name class <%s>", el.Name.Local)
}

func firstRNGChild(el *xmltree.Element, local string) *xmltree.Element {
	for i := range el.Children {
		if el.Children[i].Name.Space == rngNS && el.Children[i].Name.Local == local {
			return &el.Children[i]
		}
	}
	return nil
}

func exceptedNameClass(except *xmltree.Element, ns string) (*rng.NameClass, error) {
	inner := firstRNGChild(except, "name")
	if inner == nil {
		for i := range except.Children {
			c := &except.Children[i]
			if c.Name.Space == rngNS {
				inner = c
				break
			}
		}
	}
	if inner == nil {
		return nil, nil
	}
	parsed, err := parseNameClass(inner, inherited(inner, "ns", ns))
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseGrammar(el *xmltree.Element, dtlib, ns string) (*rng.Pattern, error) {
	start, defines, includes, err := parseGrammarContent(el, dtlib, ns)
	if err != nil {
		return nil, err
	}
	return &rng.Pattern{Kind: rng.PatternGrammar, Start: start, Defines: defines, Includes: includes}, nil
}

// parseGrammarContent parses a grammar (or div, which is purely
// organizational and recurses into the same accumulators) element's
// start/define/include/div children.
func parseGrammarContent(el *xmltree.Element, dtlib, ns string) (*rng.Pattern, []rng.Define, []rng.IncludeDirective, error) {
	var start *rng.Pattern
	var defines []rng.Define
	var includes []rng.IncludeDirective

	for i := range el.Children {
		c := &el.Children[i]
		if c.Name.Space != rngNS {
			continue
		}
		localDtlib := inherited(c, "datatypeLibrary", dtlib)
		localNS := inherited(c, "ns", ns)

		switch c.Name.Local {
		case "start":
			content, err := parseSingleOrGroup(c, localDtlib, localNS)
			if err != nil {
				return nil, nil, nil, err
			}
			start = content
		case "define":
			name := c.Attr("", "name")
			cm := rng.CombineNone
			switch c.Attr("", "combine") {
			case "choice":
				cm = rng.CombineChoice
			case "interleave":
				cm = rng.CombineInterleave
			}
			body, err := parseSingleOrGroup(c, localDtlib, localNS)
			if err != nil {
				return nil, nil, nil, err
			}
			defines = append(defines, rng.Define{Name: name, Combine: cm, Body: body})
		case "include":
			incStart, overrides, _, err := parseGrammarContent(c, localDtlib, localNS)
			if err != nil {
				return nil, nil, nil, err
			}
			includes = append(includes, rng.IncludeDirective{
				Href: c.Attr("", "href"), NS: localNS, Overrides: overrides, Start: incStart,
			})
		case "div":
			divStart, divDefines, divIncludes, err := parseGrammarContent(c, localDtlib, localNS)
			if err != nil {
				return nil, nil, nil, err
			}
			if divStart != nil {
				start = divStart
			}
			defines = append(defines, divDefines...)
			includes = append(includes, divIncludes...)
		}
	}
	return start, defines, includes, nil
}
