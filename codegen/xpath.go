package codegen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cognitoiq/xbgen/targetast"
)

// narrowXPath matches the narrow XPath subset §4.6.7 translates:
// `@attr = 'literal'` and `@attr != 'literal'`, the only assertion
// shape a conditional type alternative or xs:assert in this corpus
// needs to resolve at codegen time.
var narrowXPath = regexp.MustCompile(`^@([A-Za-z_][\w.-]*)\s*(=|!=)\s*'([^']*)'$`)

// translateXPathAssertion renders test as a Go boolean expression
// against rec's fields. Anything outside the narrow grammar falls back
// to an always-true expression carrying the untranslated source as a
// comment, rather than failing the whole codegen run.
func translateXPathAssertion(test string, rec *targetast.Record) string {
	m := narrowXPath.FindStringSubmatch(test)
	if m == nil {
		return fmt.Sprintf("true /* untranslated assertion: %s */", test)
	}
	field := fieldIdentifier(m[1])
	goOp := "=="
	if m[2] == "!=" {
		goOp = "!="
	}
	expr := "value." + field
	for _, f := range rec.Fields {
		if f.Name == field && strings.HasPrefix(f.TypeExpr, "*") {
			expr = "*value." + field
			break
		}
	}
	return fmt.Sprintf("%s %s %q", expr, goOp, m[3])
}
