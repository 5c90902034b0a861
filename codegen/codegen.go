// Package codegen implements §4.6: translating a resolved schema.Set
// into target-language declarations (targetast.File values), via type
// resolution, particle-to-field translation, complex-type flattening,
// serializer/deserializer/validator emission, declaration ordering, and
// file shaping.
package codegen

import (
	"github.com/cognitoiq/xbgen/internal/ordered"
	"github.com/cognitoiq/xbgen/schema"
	"github.com/cognitoiq/xbgen/targetast"
	"github.com/cognitoiq/xbgen/typemap"
)

// Warning records a non-fatal codegen diagnostic (§7): something the
// resolver or file-shaper couldn't fully honor (an untranslated
// assertion, an unmapped builtin) but recovered from by falling back to
// a documented default instead of failing the run.
type Warning struct {
	Namespace string
	Message   string
}

// Generate is the codegen entrypoint: given a resolved schema.Set and a
// type-map (nil selects typemap.Default()), produce the target-language
// files every namespace present in set needs, ordered per §4.6.9 and
// shaped per the configured OutputMode.
func Generate(set *schema.Set, tm *typemap.Map, opts ...Option) ([]*targetast.File, []Warning, error) {
	if tm == nil {
		tm = typemap.Default()
	}
	cfg := newConfig(opts)

	var files []*targetast.File
	var warnings []Warning

	for _, ns := range collectNamespaces(set) {
		r := newResolver(set, tm, cfg, ns)
		order := newDeclOrder(set, ns)

		var decls []targetast.Declaration
		for _, key := range order.order {
			q := order.keyed[key]
			if ct, ok := set.ComplexTypes[q]; ok {
				rec := r.translateComplexType(q, ct)
				decls = append(decls, rec)
				decls = append(decls, r.translateSerializer(q, ct, rec))
				decls = append(decls, r.translateDeserializer(q, ct, rec))
				if v := r.translateValidator(q, ct, rec); v != nil {
					decls = append(decls, v)
				}
				continue
			}
			if st, ok := set.SimpleTypes[q]; ok {
				decls = append(decls, r.translateSimpleType(q, st)...)
			}
		}
		if len(decls) == 0 {
			continue
		}

		cfg.logger.Info("generated namespace", "namespace", ns, "declarations", len(decls))
		files = append(files, shapeFiles(cfg, r, ns, decls)...)
	}
	return files, warnings, nil
}

func collectNamespaces(set *schema.Set) []string {
	seen := make(map[string]bool)
	for q := range set.ComplexTypes {
		seen[q.Namespace] = true
	}
	for q := range set.SimpleTypes {
		seen[q.Namespace] = true
	}
	var out []string
	ordered.RangeStrings(seen, func(k string) { out = append(out, k) })
	return out
}
