package rng

// Resolver fetches and parses an externalRef's href into a Pattern.
// Absent a resolver, Simplify leaves externalRef nodes in place, same
// as the original implementation's unresolved-external behavior.
type Resolver func(href string) (*Pattern, error)

// Simplify rewrites p according to the canonical RELAX NG
// simplification rules (§4.4), bottom-up in one pass: mixed and
// optional and zeroOrMore expand to their defining combinators,
// notAllowed propagates up through every combinator that can't ignore
// it, and a grammar's defines are combined and pruned to what's
// reachable from start.
func Simplify(p *Pattern, resolve Resolver) (*Pattern, error) {
	if p == nil {
		return nil, nil
	}
	switch p.Kind {
	case PatternEmpty, PatternText, PatternNotAllowed, PatternRef, PatternParentRef, PatternValue:
		return p, nil

	case PatternMixed:
		content, err := Simplify(p.Content, resolve)
		if err != nil {
			return nil, err
		}
		return &Pattern{Kind: PatternInterleave, Left: content, Right: &Pattern{Kind: PatternText}}, nil

	case PatternOptional:
		content, err := Simplify(p.Content, resolve)
		if err != nil {
			return nil, err
		}
		return &Pattern{Kind: PatternChoice, Left: content, Right: &Pattern{Kind: PatternEmpty}}, nil

	case PatternZeroOrMore:
		content, err := Simplify(p.Content, resolve)
		if err != nil {
			return nil, err
		}
		return &Pattern{
			Kind: PatternChoice,
			Left: &Pattern{Kind: PatternOneOrMore, Content: content},
			Right: &Pattern{Kind: PatternEmpty},
		}, nil

	case PatternElement:
		content, err := Simplify(p.Content, resolve)
		if err != nil {
			return nil, err
		}
		return &Pattern{Kind: PatternElement, Name: p.Name, Content: content}, nil

	case PatternAttribute:
		content, err := Simplify(p.Content, resolve)
		if err != nil {
			return nil, err
		}
		if content != nil && content.Kind == PatternNotAllowed {
			return &Pattern{Kind: PatternNotAllowed}, nil
		}
		return &Pattern{Kind: PatternAttribute, Name: p.Name, Content: content}, nil

	case PatternGroup, PatternInterleave:
		left, err := Simplify(p.Left, resolve)
		if err != nil {
			return nil, err
		}
		right, err := Simplify(p.Right, resolve)
		if err != nil {
			return nil, err
		}
		if isNotAllowed(left) || isNotAllowed(right) {
			return &Pattern{Kind: PatternNotAllowed}, nil
		}
		return &Pattern{Kind: p.Kind, Left: left, Right: right}, nil

	case PatternChoice:
		left, err := Simplify(p.Left, resolve)
		if err != nil {
			return nil, err
		}
		right, err := Simplify(p.Right, resolve)
		if err != nil {
			return nil, err
		}
		if isNotAllowed(left) {
			return right, nil
		}
		if isNotAllowed(right) {
			return left, nil
		}
		return &Pattern{Kind: PatternChoice, Left: left, Right: right}, nil

	case PatternOneOrMore, PatternList:
		content, err := Simplify(p.Content, resolve)
		if err != nil {
			return nil, err
		}
		if isNotAllowed(content) {
			return &Pattern{Kind: PatternNotAllowed}, nil
		}
		return &Pattern{Kind: p.Kind, Content: content}, nil

	case PatternData:
		except, err := Simplify(p.Except, resolve)
		if err != nil {
			return nil, err
		}
		return &Pattern{
			Kind: PatternData, DatatypeLibrary: p.DatatypeLibrary, DataType: p.DataType,
			Params: p.Params, Except: except,
		}, nil

	case PatternExternalRef:
		if resolve == nil {
			return p, nil
		}
		expanded, err := resolve(p.Href)
		if err != nil {
			return nil, err
		}
		return Simplify(expanded, resolve)

	case PatternGrammar:
		return simplifyGrammar(p, resolve)

	default:
		return p, nil
	}
}

func isNotAllowed(p *Pattern) bool {
	return p != nil && p.Kind == PatternNotAllowed
}

func simplifyGrammar(g *Pattern, resolve Resolver) (*Pattern, error) {
	defines, err := mergeCombines(g.Defines)
	if err != nil {
		return nil, err
	}

	start, err := Simplify(g.Start, resolve)
	if err != nil {
		return nil, err
	}
	for i := range defines {
		body, err := Simplify(defines[i].Body, resolve)
		if err != nil {
			return nil, err
		}
		defines[i].Body = body
	}

	out := &Pattern{Kind: PatternGrammar, Start: start, Defines: defines}
	removeUnreachable(out)
	return out, nil
}

// mergeCombines merges defines that share a name using their combine
// method (choice or interleave). At most one define per name may omit
// combine; a second one doing so is a RELAX NG authoring error, but —
// matching the original translator's leniency — we default to choice
// rather than rejecting the document.
func mergeCombines(defines []Define) ([]Define, error) {
	index := make(map[string]int, len(defines))
	var merged []Define
	for _, d := range defines {
		if i, ok := index[d.Name]; ok {
			existing := &merged[i]
			cm := d.Combine
			if cm == CombineNone {
				cm = existing.Combine
			}
			if cm == CombineNone {
				cm = CombineChoice
			}
			kind := PatternChoice
			if cm == CombineInterleave {
				kind = PatternInterleave
			}
			existing.Body = &Pattern{Kind: kind, Left: existing.Body, Right: d.Body}
			existing.Combine = cm
			continue
		}
		index[d.Name] = len(merged)
		merged = append(merged, d)
	}
	return merged, nil
}

// removeUnreachable prunes defines unreachable from start, by
// fixed-point expansion of ref names starting from start's own refs.
func removeUnreachable(g *Pattern) {
	byName := make(map[string]*Pattern, len(g.Defines))
	for i := range g.Defines {
		byName[g.Defines[i].Name] = g.Defines[i].Body
	}

	reachable := make(map[string]bool)
	collectRefs(g.Start, reachable)
	for changed := true; changed; {
		changed = false
		for name := range reachable {
			body, ok := byName[name]
			if !ok {
				continue
			}
			fresh := make(map[string]bool)
			collectRefs(body, fresh)
			for r := range fresh {
				if !reachable[r] {
					reachable[r] = true
					changed = true
				}
			}
		}
	}

	kept := g.Defines[:0]
	for _, d := range g.Defines {
		if reachable[d.Name] {
			kept = append(kept, d)
		}
	}
	g.Defines = kept
}

func collectRefs(p *Pattern, refs map[string]bool) {
	if p == nil {
		return
	}
	switch p.Kind {
	case PatternRef:
		refs[p.RefName] = true
	case PatternElement, PatternAttribute, PatternOneOrMore, PatternList, PatternMixed, PatternOptional, PatternZeroOrMore:
		collectRefs(p.Content, refs)
	case PatternGroup, PatternInterleave, PatternChoice:
		collectRefs(p.Left, refs)
		collectRefs(p.Right, refs)
	case PatternData:
		collectRefs(p.Except, refs)
	case PatternGrammar:
		collectRefs(p.Start, refs)
		for _, d := range p.Defines {
			collectRefs(d.Body, refs)
		}
	}
}
