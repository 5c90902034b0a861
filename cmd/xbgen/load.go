package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognitoiq/xbgen/dtd"
	"github.com/cognitoiq/xbgen/rng"
	"github.com/cognitoiq/xbgen/rngc"
	"github.com/cognitoiq/xbgen/rngtranslate"
	"github.com/cognitoiq/xbgen/rngx"
	"github.com/cognitoiq/xbgen/runtime/xerr"
	"github.com/cognitoiq/xbgen/schema"
	"github.com/cognitoiq/xbgen/xsdparse"
)

// loadSchemas parses every input file using the front-end its extension
// implies (XSD, RELAX NG XML, RELAX NG compact, or DTD) and merges the
// resulting schema.Set values into one. This stands in for a resolved
// xs:import/include chain: codegen sees a single set spanning every
// namespace the run touches, the same shape §8 Scenario C exercises.
func loadSchemas(paths []string) (*schema.Set, error) {
	merged := schema.New("")
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("xbgen: reading %s: %w: %w", path, xerr.ErrIO, err)
		}
		set, err := parseOne(path, data)
		if err != nil {
			return nil, fmt.Errorf("xbgen: parsing %s: %w", path, err)
		}
		mergeInto(merged, set)
	}
	if err := merged.Resolve(); err != nil {
		return nil, err
	}
	return merged, nil
}

func parseOne(path string, data []byte) (*schema.Set, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".rng":
		pat, err := rngx.Parse(data)
		if err != nil {
			return nil, err
		}
		simplified, err := rng.Simplify(pat, nil)
		if err != nil {
			return nil, err
		}
		return rngtranslate.Translate(simplified)
	case ".rnc":
		pat, err := rngc.Parse(string(data))
		if err != nil {
			return nil, err
		}
		simplified, err := rng.Simplify(pat, nil)
		if err != nil {
			return nil, err
		}
		return rngtranslate.Translate(simplified)
	case ".dtd":
		doc, err := dtd.Parse(string(data))
		if err != nil {
			return nil, err
		}
		return dtd.Translate(doc)
	default:
		return xsdparse.Parse(data)
	}
}

// mergeInto unions src's declarations into dst, last-writer-wins on a
// colliding qname, matching the schema_set's documented ownership model
// (§5): every declaration lives in exactly one owning index.
func mergeInto(dst, src *schema.Set) {
	for k, v := range src.Elements {
		dst.Elements[k] = v
	}
	for k, v := range src.Attributes {
		dst.Attributes[k] = v
	}
	for k, v := range src.SimpleTypes {
		dst.SimpleTypes[k] = v
	}
	for k, v := range src.ComplexTypes {
		dst.ComplexTypes[k] = v
	}
	for k, v := range src.ModelGroups {
		dst.ModelGroups[k] = v
	}
	for k, v := range src.AttributeGroups {
		dst.AttributeGroups[k] = v
	}
}
