package codegen

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/cognitoiq/xbgen/internal/gen"
	"github.com/cognitoiq/xbgen/schema"
)

// moduleName resolves a namespace URI to a Go package identifier
// (§4.6.11): the user's namespace map wins verbatim; otherwise derive a
// snake_case identifier from the URI's last path segment.
func (cfg *Config) moduleName(namespace string) string {
	if namespace == "" {
		return "xbgenout"
	}
	if mapped, ok := cfg.namespaceMap[namespace]; ok {
		return mapped
	}
	u, err := url.Parse(namespace)
	seg := namespace
	if err == nil {
		seg = path.Base(u.Path)
	}
	return toSnakeCase(sanitizeModuleSeg(seg))
}

var nonIdentChar = regexp.MustCompile(`[^A-Za-z0-9]+`)

func sanitizeModuleSeg(s string) string {
	s = nonIdentChar.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "ns"
	}
	return s
}

// typeIdentifier derives the exported Go identifier for a record or
// enum declaration from its qname's local name. Go's own convention
// (capitalized exported identifiers) is substituted for the
// lower_snake_case convention §4.6.11 describes for the C++-flavored
// original design, since record/enum names must be exported for
// encoding/xml and cross-package references to work in Go.
func typeIdentifier(name schema.QName) string {
	return gen.Public(toGoWords(name.Local)).Name
}

// fieldIdentifier derives the exported Go struct field name for a
// particle or attribute's local name.
func fieldIdentifier(local string) string {
	return gen.Public(toGoWords(local)).Name
}

// procedureName builds the write_<T>/read_<T>/validate_<T> family from
// §4.6.4-4.6.6, rendered as idiomatic exported Go function names
// (WriteOrderType, ReadOrderType, ValidateOrderType) that implement the
// same contract the snake_case names describe.
func procedureName(verb string, t schema.QName) string {
	return gen.Public(verb).Name + typeIdentifier(t)
}

// toGoWords strips characters Go identifiers disallow and ensures the
// result doesn't start with a digit, without forcing casing -- gen.Public
// does the capitalization.
func toGoWords(s string) string {
	s = nonIdentChar.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "_"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return s
}

// toSnakeCase converts MixedCase/camelCase to lower_snake_case, used
// for module/package-level identifiers where Go convention favors
// lowercase package names.
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}
