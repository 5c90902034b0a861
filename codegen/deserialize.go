package codegen

import (
	"fmt"
	"strings"

	"github.com/cognitoiq/xbgen/schema"
	"github.com/cognitoiq/xbgen/targetast"
)

// translateDeserializer implements §4.6.5: emit Read<T>(r xmlio.Reader)
// (T, error), reading attributes from the current start element and
// then looping over child elements by depth.
func (r *resolver) translateDeserializer(name schema.QName, ct *schema.ComplexType, rec *targetast.Record) *targetast.Procedure {
	var b strings.Builder
	typeName := typeIdentifier(name)
	fmt.Fprintf(&b, "var out %s\n", typeName)
	b.WriteString("for i := 0; i < r.AttributeCount(); i++ {\n")
	b.WriteString("\tname, val := r.AttributeName(i), r.AttributeValue(i)\n")
	b.WriteString("\tswitch name.Local {\n")
	for _, f := range attributeFields(rec) {
		local := attrLocalName(f)
		if strings.HasPrefix(f.TypeExpr, "*") {
			base := strings.TrimPrefix(f.TypeExpr, "*")
			fmt.Fprintf(&b, "\tcase %q:\n\t\tv := %s\n\t\tout.%s = &v\n", local, parseExprFor(base, "val"), f.Name)
		} else {
			fmt.Fprintf(&b, "\tcase %q:\n\t\tout.%s = %s\n", local, f.Name, parseExprFor(f.TypeExpr, "val"))
		}
	}
	b.WriteString("\t}\n}\n")

	if ct.Content.Kind == schema.ContentSimple {
		b.WriteString("ok, err := r.Read()\nif err != nil {\n\treturn out, err\n}\nif ok && r.NodeType() == xmlio.NodeCharacters {\n")
		fmt.Fprintf(&b, "\tout.Value = %s\n", parseExprFor(firstNonAttrType(rec, "Value"), "r.Text()"))
		b.WriteString("}\n")
	} else if ct.Content.Kind == schema.ContentElementOnly {
		b.WriteString("startDepth := r.Depth()\n")
		b.WriteString("for {\n\tok, err := r.Read()\n\tif err != nil {\n\t\treturn out, err\n\t}\n\tif !ok {\n\t\tbreak\n\t}\n")
		b.WriteString("\tif r.NodeType() == xmlio.NodeEndElement && r.Depth() < startDepth {\n\t\tbreak\n\t}\n")
		b.WriteString("\tif r.NodeType() != xmlio.NodeStartElement {\n\t\tcontinue\n\t}\n")
		b.WriteString("\tswitch r.Name().Local {\n")
		for _, f := range elementFields(rec) {
			local := elementLocalName(f)
			fmt.Fprintf(&b, "\tcase %q:\n", local)
			switch {
			case strings.HasPrefix(f.TypeExpr, "[]"):
				base := strings.TrimPrefix(f.TypeExpr, "[]")
				fmt.Fprintf(&b, "\t\tr.Read()\n\t\tout.%s = append(out.%s, %s)\n", f.Name, f.Name, parseExprFor(base, "r.Text()"))
			case strings.HasPrefix(f.TypeExpr, "*"):
				base := strings.TrimPrefix(f.TypeExpr, "*")
				fmt.Fprintf(&b, "\t\tr.Read()\n\t\tv := %s\n\t\tout.%s = &v\n", parseExprFor(base, "r.Text()"), f.Name)
			default:
				fmt.Fprintf(&b, "\t\tr.Read()\n\t\tout.%s = %s\n", f.Name, parseExprFor(f.TypeExpr, "r.Text()"))
			}
		}
		b.WriteString("\tdefault:\n\t\txmlio.SkipElement(r)\n\t}\n}\n")
	}
	b.WriteString("return out, nil\n")

	return &targetast.Procedure{
		Name:       procedureName("read", name),
		ReturnExpr: typeName + ", error",
		ParamsExpr: "r xmlio.Reader",
		Body:       b.String(),
		Doc:        fmt.Sprintf("%s parses a %s value starting at the reader's current start element.", procedureName("read", name), typeName),
	}
}

func firstNonAttrType(rec *targetast.Record, fieldName string) string {
	for _, f := range rec.Fields {
		if f.Name == fieldName {
			return f.TypeExpr
		}
	}
	return "string"
}

// parseExprFor renders the Go expression that parses a string value
// into typ, falling back to a direct conversion/assignment for builtin
// scalar types and to the runtime value primitives' UnmarshalText-backed
// parse helpers otherwise.
func parseExprFor(typ, valueExpr string) string {
	switch typ {
	case "string":
		return valueExpr
	case "int32", "int64", "int16", "int8", "int":
		return fmt.Sprintf("xmlio.ParseInt(%s)", valueExpr)
	case "uint32", "uint64", "uint16", "uint8", "uint":
		return fmt.Sprintf("xmlio.ParseUint(%s)", valueExpr)
	case "float32", "float64":
		return fmt.Sprintf("xmlio.ParseFloat(%s)", valueExpr)
	case "bool":
		return fmt.Sprintf("xmlio.ParseBool(%s)", valueExpr)
	default:
		return fmt.Sprintf("xmlio.ParseTextInto[%s](%s)", typ, valueExpr)
	}
}
