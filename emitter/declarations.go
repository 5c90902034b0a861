package emitter

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/cognitoiq/xbgen/internal/gen"
	"github.com/cognitoiq/xbgen/targetast"
)

// emitDeclaration dispatches on the concrete targetast.Declaration
// variant, returning the one or more top-level ast.Decl nodes it prints
// as (an Enum prints both its underlying type and its const block).
func emitDeclaration(d targetast.Declaration) ([]ast.Decl, error) {
	switch v := d.(type) {
	case *targetast.Record:
		return emitRecord(v)
	case *targetast.Enum:
		return emitEnum(v), nil
	case *targetast.Alias:
		return emitAlias(v)
	case *targetast.Forward:
		return []ast.Decl{gen.TypeDecl(ast.NewIdent(v.Name), ast.NewIdent("struct{}"))}, nil
	case *targetast.Procedure:
		return emitProcedure(v)
	default:
		return nil, fmt.Errorf("unhandled declaration type %T", d)
	}
}

func emitRecord(r *targetast.Record) ([]ast.Decl, error) {
	fields := &ast.FieldList{}
	for _, f := range r.Fields {
		expr, err := parseTypeExpr(f.TypeExpr)
		if err != nil {
			return nil, fmt.Errorf("field %s of %s: %w", f.Name, r.Name, err)
		}
		field := &ast.Field{Names: []*ast.Ident{ast.NewIdent(f.Name)}, Type: expr}
		if f.Tag != "" {
			field.Tag = gen.String(f.Tag)
		}
		fields.List = append(fields.List, field)
	}
	decl := gen.TypeDecl(ast.NewIdent(r.Name), &ast.StructType{Fields: fields})
	if r.GenerateEquals {
		decl.Doc = gen.CommentGroup(r.Name + " supports value comparison via ==; no pointer or slice fields escape that guarantee except where the schema requires optionality or repetition.")
	}
	return []ast.Decl{decl}, nil
}

func emitEnum(e *targetast.Enum) []ast.Decl {
	decls := []ast.Decl{gen.TypeDecl(ast.NewIdent(e.Name), ast.NewIdent("string"))}
	args := make([]string, 0, len(e.Variants)*3)
	for _, v := range e.Variants {
		args = append(args, e.Name+v.Name, e.Name, v.External)
	}
	if len(args) > 0 {
		decls = append(decls, gen.ConstString(args...))
	}
	return decls
}

func emitAlias(a *targetast.Alias) ([]ast.Decl, error) {
	expr, err := parseTypeExpr(a.TargetExpr)
	if err != nil {
		return nil, fmt.Errorf("alias %s: %w", a.Name, err)
	}
	return []ast.Decl{gen.TypeDecl(ast.NewIdent(a.Name), expr)}, nil
}

func emitProcedure(p *targetast.Procedure) ([]ast.Decl, error) {
	fn := gen.Func(p.Name).Body(p.Body)
	if p.Doc != "" {
		fn = fn.Comment(p.Doc)
	}
	if p.Receiver != "" {
		fn = fn.Receiver(p.Receiver)
	}
	if p.ParamsExpr != "" {
		fn = fn.Args(splitTopLevel(p.ParamsExpr)...)
	}
	if p.ReturnExpr != "" {
		fn = fn.Returns(splitTopLevel(p.ReturnExpr)...)
	}
	decl, err := fn.Decl()
	if err != nil {
		return nil, fmt.Errorf("procedure %s: %w", p.Name, err)
	}
	return []ast.Decl{decl}, nil
}

// splitTopLevel splits a comma-joined parameter/return list on commas
// that sit outside any bracket/brace/paren nesting, so a generic type
// argument like ParseTextInto[T] or an inline struct type doesn't get
// cut in half.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

// parseTypeExpr parses a Go type expression. Codegen appends trailing
// `/* union: [...] */`/`/* choice: [...] */` annotations to unresolved
// union and choice fields; those are ordinary comments the scanner
// discards on its own, so they never reach the returned ast.Expr.
func parseTypeExpr(s string) (ast.Expr, error) {
	expr, err := parser.ParseExprFrom(token.NewFileSet(), "", s, 0)
	if err != nil {
		return nil, fmt.Errorf("parsing type expression %q: %w", s, err)
	}
	return expr, nil
}
