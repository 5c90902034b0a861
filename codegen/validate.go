package codegen

import (
	"fmt"
	"strings"

	"github.com/cognitoiq/xbgen/schema"
	"github.com/cognitoiq/xbgen/targetast"
)

// translateValidator implements §4.6.6: emit Validate<T>(value T) bool
// from a complex type's xs:assert list, conjoining each narrow-XPath
// test translateXPathAssertion produces. Types with no assertions get
// no validator at all, rather than an always-true stub.
func (r *resolver) translateValidator(name schema.QName, ct *schema.ComplexType, rec *targetast.Record) *targetast.Procedure {
	if len(ct.Asserts) == 0 {
		return nil
	}
	conds := make([]string, 0, len(ct.Asserts))
	for _, a := range ct.Asserts {
		conds = append(conds, translateXPathAssertion(a.Test, rec))
	}
	return &targetast.Procedure{
		Name:       procedureName("validate", name),
		ReturnExpr: "bool",
		ParamsExpr: fmt.Sprintf("value %s", typeIdentifier(name)),
		Body:       fmt.Sprintf("return %s\n", strings.Join(conds, " && ")),
		Doc:        fmt.Sprintf("%s reports whether value satisfies %s's schema assertions.", procedureName("validate", name), typeIdentifier(name)),
	}
}
