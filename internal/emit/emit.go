// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package emit serializes an extracted Document into a statically-typed
// source module for the knowledge-base feature. Go and TypeScript output
// formats are supported; both append the fixed trailing info sections.
package emit

import (
	"bytes"
	"fmt"
	"go/format"

	"github.com/pdiddy/rulebook/pkg/types"
)

// Options controls code generation.
type Options struct {
	// Format selects the output language (default Go).
	Format types.OutputFormat

	// Package is the package name for Go output (default "rules").
	Package string
}

// Generate renders the document in the requested format. Output is
// deterministic: the same document always yields byte-identical bytes.
func Generate(doc types.Document, opts Options) ([]byte, error) {
	sections := append(append([]types.Section{}, doc.Sections...), InfoSections()...)

	switch opts.Format {
	case types.OutputTypeScript:
		return generateTypeScript(sections), nil
	case types.OutputGo, "":
		return generateGo(sections, opts.Package)
	default:
		return nil, fmt.Errorf("unsupported output format %q: use go or typescript", opts.Format)
	}
}

// generateGo emits a Go source file with the Rule and Section type
// declarations and one exported Catalog variable holding every section.
func generateGo(sections []types.Section, pkg string) ([]byte, error) {
	if pkg == "" {
		pkg = "rules"
	}

	var buf bytes.Buffer

	buf.WriteString("// Code generated by rulebook. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)

	buf.WriteString("// Rule is one numbered procurement requirement.\n")
	buf.WriteString("type Rule struct {\n")
	buf.WriteString("\tNumber      int\n")
	buf.WriteString("\tTitle       string\n")
	buf.WriteString("\tDescription string\n")
	buf.WriteString("\tSource      string\n")
	buf.WriteString("}\n\n")

	buf.WriteString("// Section is a titled, priority-tagged grouping of rules in document order.\n")
	buf.WriteString("type Section struct {\n")
	buf.WriteString("\tTitle         string\n")
	buf.WriteString("\tPriority      string\n")
	buf.WriteString("\tRules         []Rule\n")
	buf.WriteString("\tIsInfoSection bool\n")
	buf.WriteString("\tContent       string\n")
	buf.WriteString("}\n\n")

	buf.WriteString("// Catalog holds the full rules catalog in source document order.\n")
	buf.WriteString("var Catalog = []Section{\n")

	for _, sec := range sections {
		buf.WriteString("\t{\n")
		fmt.Fprintf(&buf, "\t\tTitle:    %q,\n", sec.Title)
		fmt.Fprintf(&buf, "\t\tPriority: %q,\n", string(sec.Priority))
		if sec.IsInfoSection {
			buf.WriteString("\t\tIsInfoSection: true,\n")
			fmt.Fprintf(&buf, "\t\tContent: %q,\n", sec.Content)
		}
		if len(sec.Rules) > 0 {
			buf.WriteString("\t\tRules: []Rule{\n")
			for _, r := range sec.Rules {
				fmt.Fprintf(&buf, "\t\t\t{Number: %d, Title: %q, Description: %q, Source: %q},\n",
					r.Number, r.Title, r.Description, r.Source)
			}
			buf.WriteString("\t\t},\n")
		}
		buf.WriteString("\t},\n")
	}

	buf.WriteString("}\n")

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Emitted literals are %q-escaped, so this indicates a generator
		// bug rather than bad input. Surface it instead of writing
		// unparseable output.
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}
	return formatted, nil
}
