// Package emitter implements §4.7: the mechanical last stage that
// renders a targetast.File produced by codegen into formatted Go
// source, using the teacher's internal/gen go/ast helpers plus
// golang.org/x/tools/imports for import-block cleanup. Nothing in this
// package makes schema decisions; it only prints the AST codegen built.
package emitter

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"github.com/cognitoiq/xbgen/internal/gen"
	"github.com/cognitoiq/xbgen/targetast"
)

// Emit renders f as formatted, import-resolved Go source text.
func Emit(f *targetast.File) ([]byte, error) {
	file := &ast.File{Name: ast.NewIdent(packageName(f))}

	if len(f.Includes) > 0 {
		file.Decls = append(file.Decls, importDecl(f.Includes))
	}

	for _, ns := range f.Namespaces {
		for _, d := range ns.Declarations {
			decls, err := emitDeclaration(d)
			if err != nil {
				return nil, fmt.Errorf("emitting %s: %w", f.Name, err)
			}
			file.Decls = append(file.Decls, decls...)
		}
	}

	file = gen.PackageDoc(file, fileDoc(f))
	return gen.FormattedSource(file)
}

func packageName(f *targetast.File) string {
	for _, ns := range f.Namespaces {
		if ns.Name != "" {
			return gen.Sanitize(lastSegment(ns.Name))
		}
	}
	return "xbgenout"
}

func lastSegment(dotted string) string {
	if i := strings.LastIndexByte(dotted, '.'); i >= 0 {
		return dotted[i+1:]
	}
	return dotted
}

func fileDoc(f *targetast.File) string {
	kind := "source"
	if f.Kind == targetast.FileHeader {
		kind = "header"
	}
	return fmt.Sprintf("Code generated by xbgen. DO NOT EDIT.\n\nThis %s file was produced by the xbgen schema compiler.", kind)
}

// importDecl builds a single parenthesized import declaration from a
// sorted list of import paths.
func importDecl(paths []string) *ast.GenDecl {
	decl := &ast.GenDecl{Tok: token.IMPORT, Lparen: 1}
	for _, p := range paths {
		decl.Specs = append(decl.Specs, &ast.ImportSpec{
			Path: &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(p)},
		})
	}
	return decl
}
