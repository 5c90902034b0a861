// Package typemap loads and holds the mapping from XSD builtin local
// names to target-language (Go) type expressions and their supporting
// import, per the "http://xb.dev/typemap" document format.
package typemap

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/cognitoiq/xbgen/runtime/xerr"
)

// Namespace is the XML namespace the typemap root element must carry.
const Namespace = "http://xb.dev/typemap"

// Entry is one xsd-type -> target-type-expression mapping.
type Entry struct {
	XSDType  string
	GoType   string
	GoImport string
}

// Map holds the resolved set of entries, keyed by XSD local name.
type Map struct {
	entries map[string]Entry
}

// Default returns the built-in mapping from every XSD 1.1 primitive and
// derived type to its Go runtime equivalent, grounded on runtime/integer,
// runtime/decimal, and runtime/xtime.
func Default() *Map {
	m := &Map{entries: make(map[string]Entry, 64)}
	add := func(xsdType, goType, goImport string) {
		m.entries[xsdType] = Entry{XSDType: xsdType, GoType: goType, GoImport: goImport}
	}
	add("string", "string", "")
	add("boolean", "bool", "")
	add("float", "float32", "")
	add("double", "float64", "")
	add("decimal", "decimal.Decimal", "github.com/cognitoiq/xbgen/runtime/decimal")
	add("integer", "integer.Int", "github.com/cognitoiq/xbgen/runtime/integer")
	add("nonPositiveInteger", "integer.Int", "github.com/cognitoiq/xbgen/runtime/integer")
	add("negativeInteger", "integer.Int", "github.com/cognitoiq/xbgen/runtime/integer")
	add("nonNegativeInteger", "integer.Int", "github.com/cognitoiq/xbgen/runtime/integer")
	add("positiveInteger", "integer.Int", "github.com/cognitoiq/xbgen/runtime/integer")
	add("long", "int64", "")
	add("int", "int32", "")
	add("short", "int16", "")
	add("byte", "int8", "")
	add("unsignedLong", "uint64", "")
	add("unsignedInt", "uint32", "")
	add("unsignedShort", "uint16", "")
	add("unsignedByte", "uint8", "")
	add("duration", "xtime.Duration", "github.com/cognitoiq/xbgen/runtime/xtime")
	add("yearMonthDuration", "xtime.YearMonthDuration", "github.com/cognitoiq/xbgen/runtime/xtime")
	add("dayTimeDuration", "xtime.DayTimeDuration", "github.com/cognitoiq/xbgen/runtime/xtime")
	add("dateTime", "xtime.DateTime", "github.com/cognitoiq/xbgen/runtime/xtime")
	add("dateTimeStamp", "xtime.DateTime", "github.com/cognitoiq/xbgen/runtime/xtime")
	add("time", "xtime.Time", "github.com/cognitoiq/xbgen/runtime/xtime")
	add("date", "xtime.Date", "github.com/cognitoiq/xbgen/runtime/xtime")
	add("gYearMonth", "string", "")
	add("gYear", "string", "")
	add("gMonthDay", "string", "")
	add("gDay", "string", "")
	add("gMonth", "string", "")
	add("hexBinary", "[]byte", "")
	add("base64Binary", "[]byte", "")
	add("anyURI", "string", "")
	add("QName", "schema.QName", "github.com/cognitoiq/xbgen/schema")
	add("NOTATION", "string", "")
	add("normalizedString", "string", "")
	add("token", "string", "")
	add("language", "string", "")
	add("NMTOKEN", "string", "")
	add("NMTOKENS", "[]string", "")
	add("Name", "string", "")
	add("NCName", "string", "")
	add("ID", "string", "")
	add("IDREF", "string", "")
	add("IDREFS", "[]string", "")
	add("ENTITY", "string", "")
	add("ENTITIES", "[]string", "")
	add("anyType", "interface{}", "")
	add("anySimpleType", "string", "")
	add("anyAtomicType", "string", "")
	return m
}

// Lookup returns the entry for xsdType, and whether it was found.
func (m *Map) Lookup(xsdType string) (Entry, bool) {
	e, ok := m.entries[xsdType]
	return e, ok
}

// Merge overlays entries from other onto m, in place, with other's
// entries taking precedence. Used when a user-supplied typemap file
// overrides part of the default mapping.
func (m *Map) Merge(other *Map) {
	for k, v := range other.entries {
		m.entries[k] = v
	}
}

type typemapXML struct {
	XMLName xml.Name     `xml:"typemap"`
	Entries []mappingXML `xml:"mapping"`
}

type mappingXML struct {
	XSDType string `xml:"xsd-type,attr"`
	GoType  string `xml:"cpp-type,attr"`
	Header  string `xml:"cpp-header,attr"`
}

// Load reads a typemap document (root element "typemap" in the
// http://xb.dev/typemap namespace) from r. An xsd-type with no entry in
// Default fails loading, per §6.5.
func Load(r io.Reader) (*Map, error) {
	var doc typemapXML
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("typemap: decode: %w", err)
	}
	if doc.XMLName.Space != "" && doc.XMLName.Space != Namespace {
		return nil, fmt.Errorf("typemap: unexpected root namespace %q: %w", doc.XMLName.Space, xerr.ErrInvalidArgument)
	}
	base := Default()
	out := &Map{entries: make(map[string]Entry, len(doc.Entries))}
	for _, e := range doc.Entries {
		if _, ok := base.Lookup(e.XSDType); !ok {
			return nil, fmt.Errorf("typemap: unknown xsd-type %q: %w", e.XSDType, xerr.ErrInvalidArgument)
		}
		out.entries[e.XSDType] = Entry{XSDType: e.XSDType, GoType: e.GoType, GoImport: e.Header}
	}
	return out, nil
}
