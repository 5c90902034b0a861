package codegen

import (
	"github.com/cognitoiq/xbgen/internal/dependency"
	"github.com/cognitoiq/xbgen/internal/ordered"
	"github.com/cognitoiq/xbgen/schema"
)

// declOrder is the result of the §4.6.9 ordering pass: a depth-first
// topological sort over "declaration depends on base/field type" edges
// (dependencies first; an edge that closes a cycle is skipped),
// computed with internal/dependency.Graph and seeded in deterministic
// (sorted) order via internal/ordered so the same Set always produces
// the same file.
type declOrder struct {
	keyed map[string]schema.QName
	order []string
}

func newDeclOrder(set *schema.Set, ns string) *declOrder {
	keyed := make(map[string]schema.QName)
	for q := range set.ComplexTypes {
		if q.Namespace == ns {
			keyed[q.String()] = q
		}
	}
	for q := range set.SimpleTypes {
		if q.Namespace == ns {
			keyed[q.String()] = q
		}
	}

	var graph dependency.Graph
	ordered.RangeStrings(keyed, func(k string) {
		q := keyed[k]
		deps := declDeps(set, q, ns)
		if len(deps) == 0 {
			// Register k as a graph node with no real outgoing edge:
			// Add requires a dependency argument, and Flatten's
			// already-visited guard makes a self-edge a no-op.
			graph.Add(k, k)
			return
		}
		for _, dep := range deps {
			graph.Add(k, dep)
		}
	})

	do := &declOrder{keyed: keyed}
	graph.Flatten(func(node string) {
		do.order = append(do.order, node)
	})
	return do
}

// declDeps returns the same-namespace declaration keys q's definition
// directly references: its base type (extension/restriction) and every
// element/attribute/member type its content model names.
func declDeps(set *schema.Set, q schema.QName, ns string) []string {
	var deps []string
	add := func(ref schema.QName) {
		if ref != (schema.QName{}) && ref.Namespace == ns && ref != q {
			deps = append(deps, ref.String())
		}
	}
	if ct, ok := set.ComplexTypes[q]; ok {
		add(ct.Base)
		walkParticleDeps(ct.Content.Particle, add)
		for _, a := range ct.Attributes {
			if a.Attribute != nil {
				add(a.Attribute.Type)
			}
		}
	}
	if st, ok := set.SimpleTypes[q]; ok {
		add(st.Base)
		add(st.ItemType)
		for _, m := range st.Members {
			add(m)
		}
	}
	return deps
}

func walkParticleDeps(p *schema.Particle, add func(schema.QName)) {
	if p == nil {
		return
	}
	switch p.Kind {
	case schema.ParticleGroup:
		for _, child := range p.Group.Particles {
			walkParticleDeps(child, add)
		}
	case schema.ParticleElement:
		add(p.Element.Type)
		for _, alt := range p.Element.Alternatives {
			add(alt.Type)
		}
	}
}
