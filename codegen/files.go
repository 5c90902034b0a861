package codegen

import (
	"github.com/cognitoiq/xbgen/targetast"
)

// shapeFiles implements §4.6.8: distribute a namespace's declarations
// across one or more targetast.File values per cfg.mode.
//
//   - header_only: one file holding every declaration, procedures
//     rendered inline.
//   - split (the default): a header file with the type declarations and
//     a companion source file with the procedures, mirroring the
//     .h/.cc split the target-language AST's FileKind models.
//   - file_per_type: one source file per declaration, for callers that
//     want one generated file per schema type.
func shapeFiles(cfg *Config, r *resolver, ns string, decls []targetast.Declaration) []*targetast.File {
	pkg := cfg.moduleName(ns)
	includes := r.computeIncludes()

	switch cfg.mode {
	case ModeHeaderOnly:
		for _, d := range decls {
			if proc, ok := d.(*targetast.Procedure); ok {
				proc.Inline = true
			}
		}
		return []*targetast.File{{
			Name:       pkg + ".go",
			Kind:       targetast.FileHeader,
			Includes:   includes,
			Namespaces: []*targetast.Namespace{{Name: pkg, Declarations: decls}},
		}}
	case ModeFilePerType:
		files := make([]*targetast.File, 0, len(decls))
		for _, d := range decls {
			files = append(files, &targetast.File{
				Name:       pkg + "/" + declFileName(d) + ".go",
				Kind:       targetast.FileSource,
				Includes:   includes,
				Namespaces: []*targetast.Namespace{{Name: pkg, Declarations: []targetast.Declaration{d}}},
			})
		}
		return files
	default: // ModeSplit
		var headerDecls, sourceDecls []targetast.Declaration
		for _, d := range decls {
			if _, ok := d.(*targetast.Procedure); ok {
				sourceDecls = append(sourceDecls, d)
			} else {
				headerDecls = append(headerDecls, d)
			}
		}
		header := &targetast.File{
			Name:       pkg + ".go",
			Kind:       targetast.FileHeader,
			Includes:   includes,
			Namespaces: []*targetast.Namespace{{Name: pkg, Declarations: headerDecls}},
		}
		source := &targetast.File{
			Name:       pkg + "_impl.go",
			Kind:       targetast.FileSource,
			Includes:   includes,
			Namespaces: []*targetast.Namespace{{Name: pkg, Declarations: sourceDecls}},
		}
		return []*targetast.File{header, source}
	}
}

func declFileName(d targetast.Declaration) string {
	switch v := d.(type) {
	case *targetast.Record:
		return toSnakeCase(v.Name)
	case *targetast.Enum:
		return toSnakeCase(v.Name)
	case *targetast.Alias:
		return toSnakeCase(v.Name)
	case *targetast.Procedure:
		return toSnakeCase(v.Name)
	default:
		return "decl"
	}
}
