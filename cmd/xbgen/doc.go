package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognitoiq/xbgen/runtime/xerr"
	"github.com/cognitoiq/xbgen/schema"
)

func newDocCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "doc [schema ...]",
		Short: "render a schema's structure as Markdown",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := loadSchemas(args)
			if err != nil {
				return err
			}
			md := renderMarkdown(set)
			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(md)
				return err
			}
			if err := os.WriteFile(output, md, 0o666); err != nil {
				return fmt.Errorf("xbgen: writing %s: %w: %w", output, xerr.ErrIO, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "-", "file the rendered Markdown is written to (- for stdout)")
	return cmd
}

// renderMarkdown walks a resolved schema.Set and renders its elements
// and types as a Markdown outline, grounded on doc_generator.cpp's
// recursive schema walk, but rendering structural documentation rather
// than a sample instance document.
func renderMarkdown(set *schema.Set) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# Schema: %s\n\n", orDefault(set.TargetNamespace, "(no namespace)"))

	fmt.Fprintln(&b, "## Elements")
	for _, q := range sortedKeys(set.Elements) {
		el := set.Elements[q]
		typeName := el.Type.String()
		if el.InlineType != nil {
			typeName = "(anonymous complex type)"
		} else if el.InlineSimpleType != nil {
			typeName = "(anonymous simple type)"
		}
		fmt.Fprintf(&b, "- `%s`: %s\n", q, typeName)
	}

	fmt.Fprintln(&b, "\n## Complex types")
	for _, q := range sortedComplexKeys(set.ComplexTypes) {
		ct := set.ComplexTypes[q]
		fmt.Fprintf(&b, "- `%s`", q)
		if ct.Base != (schema.QName{}) {
			fmt.Fprintf(&b, " extends `%s`", ct.Base)
		}
		b.WriteString("\n")
		for _, a := range ct.Attributes {
			if a.Attribute != nil {
				fmt.Fprintf(&b, "  - attribute `%s`: `%s`\n", a.Attribute.Name, a.Attribute.Type)
			}
		}
	}

	fmt.Fprintln(&b, "\n## Simple types")
	for _, q := range sortedSimpleKeys(set.SimpleTypes) {
		st := set.SimpleTypes[q]
		if len(st.Enumeration) > 0 {
			fmt.Fprintf(&b, "- `%s`: enumeration of %s\n", q, strings.Join(st.Enumeration, ", "))
		} else {
			fmt.Fprintf(&b, "- `%s`: restricts `%s`\n", q, st.Base)
		}
	}

	return []byte(b.String())
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func sortedKeys(m map[schema.QName]*schema.ElementDecl) []schema.QName {
	out := make([]schema.QName, 0, len(m))
	for q := range m {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func sortedComplexKeys(m map[schema.QName]*schema.ComplexType) []schema.QName {
	out := make([]schema.QName, 0, len(m))
	for q := range m {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func sortedSimpleKeys(m map[schema.QName]*schema.SimpleType) []schema.QName {
	out := make([]schema.QName, 0, len(m))
	for q := range m {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
