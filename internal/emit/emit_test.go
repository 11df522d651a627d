package emit

import (
	"bytes"
	"go/parser"
	"go/token"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rulebook/internal/extract"
	"github.com/pdiddy/rulebook/pkg/types"
)

func testDocument() types.Document {
	return types.Document{Sections: []types.Section{
		{
			Title:    "Core Principles",
			Priority: types.PriorityCritical,
			Rules: []types.Rule{
				{Number: 1, Title: "First Rule", Description: "do the thing", Source: "PR2025, Section 1, p.1"},
				{Number: 2, Title: "Second Rule", Description: "do the other thing", Source: ""},
			},
		},
		{
			Title:    "Bid Requirements",
			Priority: types.PriorityHigh,
			Rules: []types.Rule{
				{Number: 3, Title: "Third Rule", Description: "", Source: "EVAL2024, Form 3, p.14"},
			},
		},
	}}
}

func TestGenerateGoIsValidSource(t *testing.T) {
	data, err := Generate(testDocument(), Options{})
	require.NoError(t, err)

	fset := token.NewFileSet()
	_, err = parser.ParseFile(fset, "rules_gen.go", data, 0)
	require.NoError(t, err, "generated Go must parse")

	out := string(data)
	assert.Contains(t, out, "// Code generated by rulebook. DO NOT EDIT.")
	assert.Contains(t, out, "package rules")
	assert.Contains(t, out, "type Rule struct")
	assert.Contains(t, out, "type Section struct")
	assert.Contains(t, out, "var Catalog = []Section{")
}

func TestGenerateGoPackageOption(t *testing.T) {
	data, err := Generate(testDocument(), Options{Package: "kb"})
	require.NoError(t, err)
	assert.Contains(t, string(data), "package kb")
}

var numberLitRe = regexp.MustCompile(`\{Number: (\d+),`)

func TestGenerateGoRoundTripsRuleNumbers(t *testing.T) {
	doc := testDocument()
	data, err := Generate(doc, Options{})
	require.NoError(t, err)

	matches := numberLitRe.FindAllStringSubmatch(string(data), -1)
	var got []int
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		got = append(got, n)
	}

	var want []int
	for _, sec := range doc.Sections {
		for _, r := range sec.Rules {
			want = append(want, r.Number)
		}
	}
	assert.Equal(t, want, got)
}

func TestGenerateGoEscapesQuotes(t *testing.T) {
	doc := types.Document{Sections: []types.Section{{
		Title:    "Section",
		Priority: types.PriorityCritical,
		Rules: []types.Rule{{
			Number: 1,
			Title:  `The "special" rule`,
		}},
	}}}

	data, err := Generate(doc, Options{})
	require.NoError(t, err)

	// The emitted file must still parse, and unquoting the emitted literal
	// must recover the original text exactly.
	fset := token.NewFileSet()
	_, err = parser.ParseFile(fset, "rules_gen.go", data, 0)
	require.NoError(t, err)

	titleRe := regexp.MustCompile(`Title: ("(?:[^"\\]|\\.)*special(?:[^"\\]|\\.)*")`)
	m := titleRe.FindStringSubmatch(string(data))
	require.NotNil(t, m, "emitted title literal not found")

	unquoted, err := strconv.Unquote(m[1])
	require.NoError(t, err)
	assert.Equal(t, `The "special" rule`, unquoted)
}

func TestGenerateGoAppendsInfoSections(t *testing.T) {
	data, err := Generate(testDocument(), Options{})
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "Document Prioritization Methodology")
	assert.Contains(t, out, "Notes on Citations")
	assert.Contains(t, out, "IsInfoSection: true")

	// Info sections come after all extracted sections.
	lastRule := strings.LastIndex(out, "Bid Requirements")
	methodology := strings.Index(out, "Document Prioritization Methodology")
	assert.Greater(t, methodology, lastRule)
}

func TestGenerateDeterministic(t *testing.T) {
	doc := testDocument()

	first, err := Generate(doc, Options{})
	require.NoError(t, err)
	second, err := Generate(doc, Options{})
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second), "output must be byte-identical across runs")
}

func TestExtractedCatalogRoundTrip(t *testing.T) {
	catalog := "## **CRITICAL MANDATORY REQUIREMENTS**\n" +
		"### **Core Principles**\n" +
		"**1. First**\n- body one\n- **Source**: PR2025, Section 1, p.1\n" +
		"**2. Second**\n- body two\n" +
		"## **HIGH PRIORITY REQUIREMENTS**\n" +
		"### **Complaints**\n" +
		"**3. Third**\n- body three\n- **Source**: PR2025, Section 9, p.44\n"

	doc := extract.Extract(catalog).Document
	data, err := Generate(doc, Options{})
	require.NoError(t, err)

	matches := numberLitRe.FindAllStringSubmatch(string(data), -1)
	var got []int
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		got = append(got, n)
	}
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	_, err := Generate(testDocument(), Options{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestGenerateTypeScript(t *testing.T) {
	data, err := Generate(testDocument(), Options{Format: types.OutputTypeScript})
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "export interface ProcurementRule {")
	assert.Contains(t, out, "export interface ProcurementSection {")
	assert.Contains(t, out, "export const procurementRulesContent: ProcurementSection[] = [")
	assert.Contains(t, out, "number: 1,")
	assert.Contains(t, out, `title: "First Rule",`)
	assert.Contains(t, out, "isInfoSection: true,")
}

func TestGenerateTypeScriptEscapesQuotes(t *testing.T) {
	doc := types.Document{Sections: []types.Section{{
		Title:    "Section",
		Priority: types.PriorityHigh,
		Rules: []types.Rule{{
			Number:      1,
			Title:       `A "quoted" title`,
			Description: `backslash \ and "quote"`,
		}},
	}}}

	data, err := Generate(doc, Options{Format: types.OutputTypeScript})
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `title: "A \"quoted\" title",`)
	assert.Contains(t, out, `description: "backslash \\ and \"quote\"",`)
}

func TestEscapeTSTemplate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain prose", "plain prose"},
		{"tick ` here", "tick \\` here"},
		{"interp ${x}", `interp \${x}`},
		{`back \ slash`, `back \\ slash`},
	}
	for _, tt := range tests {
		if got := escapeTSTemplate(tt.in); got != tt.want {
			t.Errorf("escapeTSTemplate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInfoSections(t *testing.T) {
	sections := InfoSections()
	require.Len(t, sections, 2)
	for _, sec := range sections {
		assert.True(t, sec.IsInfoSection)
		assert.Equal(t, types.PriorityInfo, sec.Priority)
		assert.Empty(t, sec.Rules)
		assert.NotEmpty(t, sec.Content)
	}
}
