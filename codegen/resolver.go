package codegen

import (
	"fmt"

	"github.com/cognitoiq/xbgen/schema"
	"github.com/cognitoiq/xbgen/typemap"
)

// resolver resolves schema.QName values to Go type expressions,
// tracking which foreign namespaces and typemap headers a codegen run
// touches so computeIncludes (§4.6.10) can compute each file's imports.
type resolver struct {
	set             *schema.Set
	typeMap         *typemap.Map
	currentNS       string
	cfg             *Config
	foreignNS       map[string]bool
	goImports       map[string]bool
}

func newResolver(set *schema.Set, tm *typemap.Map, cfg *Config, currentNS string) *resolver {
	return &resolver{
		set: set, typeMap: tm, currentNS: currentNS, cfg: cfg,
		foreignNS: make(map[string]bool), goImports: make(map[string]bool),
	}
}

const xsdNS = "http://www.w3.org/2001/XMLSchema"

// resolveType implements the type resolver (§4.6.1): qname -> Go type
// expression, in the context of the schema whose namespace is r.currentNS.
func (r *resolver) resolveType(name schema.QName) string {
	if name == (schema.QName{}) {
		return "struct{}"
	}
	if name.Namespace == xsdNS {
		if e, ok := r.typeMap.Lookup(name.Local); ok {
			if e.GoImport != "" {
				r.goImports[e.GoImport] = true
			}
			return e.GoType
		}
		return name.Local
	}
	if st, ok := r.set.SimpleTypes[name]; ok {
		return r.resolveSimpleType(name, st)
	}
	if _, ok := r.set.ComplexTypes[name]; ok {
		return r.qualifiedTypeName(name)
	}
	if e, ok := r.typeMap.Lookup(name.Local); ok {
		return e.GoType
	}
	return typeIdentifier(name)
}

func (r *resolver) resolveSimpleType(name schema.QName, st *schema.SimpleType) string {
	if name.Namespace != r.currentNS && name.Namespace != "" {
		r.foreignNS[name.Namespace] = true
		return r.qualifiedTypeName(name)
	}
	if len(st.Enumeration) > 0 {
		return typeIdentifier(name)
	}
	switch st.Variety {
	case schema.VarietyList:
		return "[]" + r.resolveType(st.ItemType)
	case schema.VarietyUnion:
		var parts []string
		for _, m := range st.Members {
			parts = append(parts, r.resolveType(m))
		}
		return unionTypeExpr(parts)
	default:
		if st.Base == (schema.QName{}) {
			return "string"
		}
		return r.resolveType(st.Base)
	}
}

// qualifiedTypeName renders a possibly cross-namespace reference as a
// Go-qualified identifier, recording the foreign package as referenced.
func (r *resolver) qualifiedTypeName(name schema.QName) string {
	if name.Namespace == r.currentNS || name.Namespace == "" {
		return typeIdentifier(name)
	}
	r.foreignNS[name.Namespace] = true
	return r.cfg.moduleName(name.Namespace) + "." + typeIdentifier(name)
}

// unionTypeExpr renders a RELAX NG/XSD union as the corresponding
// variant expression; Go has no native sum type, so unions resolve to
// `interface{}` holding one of the member Go types, documented via a
// comment at the declaration site.
func unionTypeExpr(members []string) string {
	return fmt.Sprintf("interface{} /* union: %v */", members)
}
