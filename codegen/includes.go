package codegen

import "sort"

// computeIncludes implements §4.6.10: union the Go-import headers a
// namespace's declarations require (typemap-declared imports, other
// namespaces' generated packages) with the runtime-support headers
// every generated Write<T>/Read<T>/Validate<T> body references
// (xmlio.Reader/Writer, schema.QName, fmt.Sprint), regardless of output
// mode.
func (r *resolver) computeIncludes() []string {
	set := make(map[string]bool)
	for imp := range r.goImports {
		set[imp] = true
	}
	for ns := range r.foreignNS {
		set[r.cfg.moduleName(ns)] = true
	}
	set["fmt"] = true
	set["github.com/cognitoiq/xbgen/xmlio"] = true
	set["github.com/cognitoiq/xbgen/schema"] = true
	out := make([]string, 0, len(set))
	for imp := range set {
		out = append(out, imp)
	}
	sort.Strings(out)
	return out
}
