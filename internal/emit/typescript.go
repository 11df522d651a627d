// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package emit

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pdiddy/rulebook/pkg/types"
)

// generateTypeScript emits the TypeScript module consumed by the web
// knowledge-base feature: two interface declarations and one exported
// constant. Rule sections use double-quoted strings; info sections carry
// their multi-line prose as template literals.
func generateTypeScript(sections []types.Section) []byte {
	var buf bytes.Buffer

	buf.WriteString("// Code generated by rulebook. DO NOT EDIT.\n\n")

	buf.WriteString("export interface ProcurementRule {\n")
	buf.WriteString("    number: number;\n")
	buf.WriteString("    title: string;\n")
	buf.WriteString("    description: string;\n")
	buf.WriteString("    source: string;\n")
	buf.WriteString("}\n\n")

	buf.WriteString("export interface ProcurementSection {\n")
	buf.WriteString("    title: string;\n")
	buf.WriteString("    priority: 'critical' | 'high' | 'important' | 'info';\n")
	buf.WriteString("    rules: ProcurementRule[];\n")
	buf.WriteString("    isInfoSection?: boolean;\n")
	buf.WriteString("    content?: string;\n")
	buf.WriteString("}\n\n")

	buf.WriteString("export const procurementRulesContent: ProcurementSection[] = [\n")

	for _, sec := range sections {
		buf.WriteString("    {\n")
		fmt.Fprintf(&buf, "        title: \"%s\",\n", escapeTS(sec.Title))
		fmt.Fprintf(&buf, "        priority: \"%s\",\n", string(sec.Priority))

		if sec.IsInfoSection {
			buf.WriteString("        isInfoSection: true,\n")
			fmt.Fprintf(&buf, "        content: `%s`,\n", escapeTSTemplate(sec.Content))
			buf.WriteString("        rules: []\n")
			buf.WriteString("    },\n")
			continue
		}

		buf.WriteString("        rules: [\n")
		for _, r := range sec.Rules {
			buf.WriteString("            {\n")
			fmt.Fprintf(&buf, "                number: %d,\n", r.Number)
			fmt.Fprintf(&buf, "                title: \"%s\",\n", escapeTS(r.Title))
			fmt.Fprintf(&buf, "                description: \"%s\",\n", escapeTS(r.Description))
			fmt.Fprintf(&buf, "                source: \"%s\"\n", escapeTS(r.Source))
			buf.WriteString("            },\n")
		}
		buf.WriteString("        ]\n")
		buf.WriteString("    },\n")
	}

	buf.WriteString("];\n")

	return buf.Bytes()
}

// escapeTS escapes a string for a double-quoted TypeScript literal.
func escapeTS(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// escapeTSTemplate escapes a string for a TypeScript template literal.
func escapeTSTemplate(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "${", `\${`)
	return s
}
