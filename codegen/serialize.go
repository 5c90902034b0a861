package codegen

import (
	"fmt"
	"strings"

	"github.com/cognitoiq/xbgen/schema"
	"github.com/cognitoiq/xbgen/targetast"
)

// translateSerializer implements §4.6.4: emit Write<T>(value T, w
// xmlio.Writer) error for a complex type, in terms of the xmlio.Writer
// contract.
func (r *resolver) translateSerializer(name schema.QName, ct *schema.ComplexType, rec *targetast.Record) *targetast.Procedure {
	var b strings.Builder
	qname := fmt.Sprintf("schema.QName{Namespace: %q, Local: %q}", r.currentNS, name.Local)
	fmt.Fprintf(&b, "if err := w.StartElement(%s); err != nil {\n\treturn err\n}\n", qname)

	for _, f := range attributeFields(rec) {
		writeAttribute(&b, f)
	}
	switch ct.Content.Kind {
	case schema.ContentSimple:
		fmt.Fprintf(&b, "if err := w.Characters(fmt.Sprint(value.Value)); err != nil {\n\treturn err\n}\n")
	case schema.ContentElementOnly:
		for _, f := range elementFields(rec) {
			writeElementField(&b, f)
		}
	case schema.ContentMixed:
		b.WriteString("for _, c := range value.Content {\n\tif err := w.Characters(fmt.Sprint(c)); err != nil {\n\t\treturn err\n\t}\n}\n")
	}
	b.WriteString("return w.EndElement()\n")

	return &targetast.Procedure{
		Name:       procedureName("write", name),
		ReturnExpr: "error",
		ParamsExpr: fmt.Sprintf("value %s, w xmlio.Writer", typeIdentifier(name)),
		Body:       b.String(),
		Doc:        fmt.Sprintf("%s serializes a %s value to w, writing attributes before content in schema order.", procedureName("write", name), typeIdentifier(name)),
	}
}

func attributeFields(rec *targetast.Record) []targetast.Field {
	var out []targetast.Field
	for _, f := range rec.Fields {
		if strings.Contains(f.Tag, ",attr") {
			out = append(out, f)
		}
	}
	return out
}

func elementFields(rec *targetast.Record) []targetast.Field {
	var out []targetast.Field
	for _, f := range rec.Fields {
		if f.Tag != "" && !strings.Contains(f.Tag, ",attr") && !strings.Contains(f.Tag, ",chardata") {
			out = append(out, f)
		}
	}
	return out
}

func writeAttribute(b *strings.Builder, f targetast.Field) {
	qname := fmt.Sprintf("schema.QName{Local: %q}", attrLocalName(f))
	optional := strings.HasPrefix(f.TypeExpr, "*")
	if optional {
		fmt.Fprintf(b, "if value.%s != nil {\n\tif err := w.Attribute(%s, fmt.Sprint(*value.%s)); err != nil {\n\t\treturn err\n\t}\n}\n", f.Name, qname, f.Name)
	} else {
		fmt.Fprintf(b, "if err := w.Attribute(%s, fmt.Sprint(value.%s)); err != nil {\n\treturn err\n}\n", qname, f.Name)
	}
}

func writeElementField(b *strings.Builder, f targetast.Field) {
	local := elementLocalName(f)
	qname := fmt.Sprintf("schema.QName{Local: %q}", local)
	switch {
	case strings.HasPrefix(f.TypeExpr, "[]"):
		fmt.Fprintf(b, "for _, item := range value.%s {\n\tif err := w.StartElement(%s); err != nil {\n\t\treturn err\n\t}\n\tif err := w.Characters(fmt.Sprint(item)); err != nil {\n\t\treturn err\n\t}\n\tif err := w.EndElement(); err != nil {\n\t\treturn err\n\t}\n}\n", f.Name, qname)
	case strings.HasPrefix(f.TypeExpr, "*"):
		fmt.Fprintf(b, "if value.%s != nil {\n\tif err := w.StartElement(%s); err != nil {\n\t\treturn err\n\t}\n\tif err := w.Characters(fmt.Sprint(*value.%s)); err != nil {\n\t\treturn err\n\t}\n\tif err := w.EndElement(); err != nil {\n\t\treturn err\n\t}\n}\n", f.Name, qname, f.Name)
	default:
		fmt.Fprintf(b, "if err := w.StartElement(%s); err != nil {\n\treturn err\n}\nif err := w.Characters(fmt.Sprint(value.%s)); err != nil {\n\treturn err\n}\nif err := w.EndElement(); err != nil {\n\treturn err\n}\n", qname, f.Name)
	}
}

func attrLocalName(f targetast.Field) string {
	return tagLocalName(f.Tag)
}

func elementLocalName(f targetast.Field) string {
	return tagLocalName(f.Tag)
}

func tagLocalName(tag string) string {
	tag = strings.TrimPrefix(tag, `xml:"`)
	if i := strings.IndexByte(tag, ','); i >= 0 {
		tag = tag[:i]
	}
	return strings.TrimSuffix(tag, `"`)
}
