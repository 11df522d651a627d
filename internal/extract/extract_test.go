package extract

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/rulebook/pkg/types"
)

const sampleCatalog = `# Procurement Rules

## **CRITICAL MANDATORY REQUIREMENTS**

### **Core Principles & Legal Framework**

**1. Core Procurement Principles**
- All procurement must reflect value for money, economy, integrity, fit for purpose, efficiency, transparency, and fairness
- **Source**: PR2025, Section 1, Para 1.2, p.1

**2. Legal Agreement Precedence**
- The Legal Agreement governs in case of conflict
- **Source**: PR2025, Section 2, Para 2.1, p.5

### **Prior Review Requirements**

**3. Mandatory Review Threshold**
- All contracts above $X require review
- **Source**: PR2025, Section 4, p.12

## **HIGH PRIORITY REQUIREMENTS**

### **Bid/Proposal Requirements**

**4. Bid Validity Period**
- Bids must remain valid for the period specified
- Extensions require written agreement
- **Source**: PR2025, Annex X, Para 3.1, p.89
`

// --- Extract ---

func TestExtractSampleCatalog(t *testing.T) {
	result := Extract(sampleCatalog)
	doc := result.Document

	if len(doc.Sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(doc.Sections))
	}

	wantSections := []struct {
		title    string
		priority types.Priority
		rules    int
	}{
		{"Core Principles & Legal Framework", types.PriorityCritical, 2},
		{"Prior Review Requirements", types.PriorityCritical, 1},
		{"Bid/Proposal Requirements", types.PriorityHigh, 1},
	}

	for i, want := range wantSections {
		sec := doc.Sections[i]
		if sec.Title != want.title {
			t.Errorf("section[%d].Title = %q, want %q", i, sec.Title, want.title)
		}
		if sec.Priority != want.priority {
			t.Errorf("section[%d].Priority = %q, want %q", i, sec.Priority, want.priority)
		}
		if len(sec.Rules) != want.rules {
			t.Errorf("section[%d] has %d rules, want %d", i, len(sec.Rules), want.rules)
		}
	}

	if doc.RuleCount() != 4 {
		t.Errorf("RuleCount() = %d, want 4", doc.RuleCount())
	}
	if len(result.DroppedSections) != 0 {
		t.Errorf("DroppedSections = %v, want none", result.DroppedSections)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}
}

func TestExtractRuleFields(t *testing.T) {
	input := "### **Prior Review**\n\n" +
		"**3. Mandatory Review Threshold**\n" +
		"- All contracts above $X require review\n" +
		"- **Source**: PR2025, Section 4, p.12\n"

	result := Extract(input)
	if result.Document.RuleCount() != 1 {
		t.Fatalf("got %d rules, want 1", result.Document.RuleCount())
	}

	got := result.Document.Sections[0].Rules[0]
	want := types.Rule{
		Number:      3,
		Title:       "Mandatory Review Threshold",
		Description: "All contracts above $X require review",
		Source:      "PR2025, Section 4, p.12",
	}
	if got != want {
		t.Errorf("rule = %+v, want %+v", got, want)
	}
}

func TestExtractDescriptionJoining(t *testing.T) {
	input := "### **Section**\n" +
		"**7. Multi Bullet Rule**\n" +
		"- first fragment\n" +
		"- second fragment\n" +
		"- third fragment\n"

	result := Extract(input)
	r := result.Document.Sections[0].Rules[0]
	want := "first fragment second fragment third fragment"
	if r.Description != want {
		t.Errorf("Description = %q, want %q", r.Description, want)
	}
	if r.Source != "" {
		t.Errorf("Source = %q, want empty", r.Source)
	}
}

func TestExtractRuleWithoutBullets(t *testing.T) {
	input := "### **Section**\n**5. Bare Rule**\n\nSome unrelated prose.\n"

	result := Extract(input)
	r := result.Document.Sections[0].Rules[0]
	if r.Description != "" {
		t.Errorf("Description = %q, want empty", r.Description)
	}
	if r.Source != "" {
		t.Errorf("Source = %q, want empty", r.Source)
	}
}

func TestExtractEmptySectionDropped(t *testing.T) {
	input := "### **Empty Section**\n\n" +
		"### **Real Section**\n" +
		"**1. A Rule**\n" +
		"- description\n"

	result := Extract(input)
	if len(result.Document.Sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(result.Document.Sections))
	}
	if result.Document.Sections[0].Title != "Real Section" {
		t.Errorf("title = %q, want %q", result.Document.Sections[0].Title, "Real Section")
	}
	if !reflect.DeepEqual(result.DroppedSections, []string{"Empty Section"}) {
		t.Errorf("DroppedSections = %v, want [Empty Section]", result.DroppedSections)
	}
}

func TestExtractTrailingEmptySectionDropped(t *testing.T) {
	input := "### **Real Section**\n**1. A Rule**\n- body\n\n### **Trailing Empty**\n"

	result := Extract(input)
	if len(result.Document.Sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(result.Document.Sections))
	}
	if !reflect.DeepEqual(result.DroppedSections, []string{"Trailing Empty"}) {
		t.Errorf("DroppedSections = %v", result.DroppedSections)
	}
}

func TestExtractTierHeaderKeepsSectionOpen(t *testing.T) {
	// A tier header between a section's rules must not close the section.
	input := "## **CRITICAL MANDATORY REQUIREMENTS**\n" +
		"### **Section A**\n" +
		"**1. First**\n" +
		"- body\n" +
		"## **HIGH PRIORITY REQUIREMENTS**\n" +
		"**2. Second**\n" +
		"- body\n"

	result := Extract(input)
	if len(result.Document.Sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(result.Document.Sections))
	}
	sec := result.Document.Sections[0]
	if len(sec.Rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(sec.Rules))
	}
	// The section keeps the tier it was opened under; the mid-section tier
	// change affects only sections opened afterwards.
	if sec.Priority != types.PriorityCritical {
		t.Errorf("Priority = %q, want %q", sec.Priority, types.PriorityCritical)
	}
}

func TestExtractTierBindsAtSectionOpen(t *testing.T) {
	input := "## **CRITICAL MANDATORY REQUIREMENTS**\n" +
		"### **Last Critical Section**\n" +
		"**1. First**\n" +
		"- body\n" +
		"## **HIGH PRIORITY REQUIREMENTS**\n" +
		"### **First High Section**\n" +
		"**2. Second**\n" +
		"- body\n"

	result := Extract(input)
	if len(result.Document.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(result.Document.Sections))
	}
	if got := result.Document.Sections[0].Priority; got != types.PriorityCritical {
		t.Errorf("sections[0].Priority = %q, want %q", got, types.PriorityCritical)
	}
	if got := result.Document.Sections[1].Priority; got != types.PriorityHigh {
		t.Errorf("sections[1].Priority = %q, want %q", got, types.PriorityHigh)
	}
}

func TestExtractMalformedRuleHeader(t *testing.T) {
	input := "### **Section**\n" +
		"**9. Unterminated Title\n" +
		"**10. Good Rule**\n" +
		"- body\n"

	result := Extract(input)
	if result.Document.RuleCount() != 1 {
		t.Fatalf("got %d rules, want 1", result.Document.RuleCount())
	}
	if len(result.MalformedRules) != 1 {
		t.Fatalf("MalformedRules = %v, want one entry", result.MalformedRules)
	}
	if !strings.Contains(result.MalformedRules[0], "Unterminated") {
		t.Errorf("MalformedRules[0] = %q", result.MalformedRules[0])
	}
}

func TestExtractIdempotent(t *testing.T) {
	first := Extract(sampleCatalog)
	second := Extract(sampleCatalog)
	if !reflect.DeepEqual(first, second) {
		t.Error("two extractions of identical input differ")
	}
}

func TestExtractArbitraryInput(t *testing.T) {
	// The scanner is total: arbitrary text produces an empty document, not
	// a failure.
	for _, input := range []string{"", "plain prose\nwith lines\n", "- stray bullet\n", "## unknown header\n"} {
		result := Extract(input)
		if len(result.Document.Sections) != 0 {
			t.Errorf("input %q produced %d sections", input, len(result.Document.Sections))
		}
	}
}

// --- Validate ---

func TestValidate(t *testing.T) {
	mkDoc := func(numbers ...int) types.Document {
		rules := make([]types.Rule, len(numbers))
		for i, n := range numbers {
			rules[i] = types.Rule{Number: n, Title: "t"}
		}
		return types.Document{Sections: []types.Section{
			{Title: "s", Priority: types.PriorityCritical, Rules: rules},
		}}
	}

	tests := []struct {
		name    string
		doc     types.Document
		wantLen int
		wantSub string
	}{
		{"contiguous", mkDoc(1, 2, 3, 4), 0, ""},
		{"single gap", mkDoc(1, 3), 1, "2 missing"},
		{"gap range", mkDoc(1, 5), 1, "2-4 missing"},
		{"duplicate", mkDoc(1, 2, 2, 3), 1, "duplicate rule number 2"},
		{"empty", types.Document{}, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := Validate(tt.doc)
			if len(warnings) != tt.wantLen {
				t.Fatalf("got %d warnings %v, want %d", len(warnings), warnings, tt.wantLen)
			}
			if tt.wantSub != "" && !strings.Contains(warnings[0], tt.wantSub) {
				t.Errorf("warning = %q, want substring %q", warnings[0], tt.wantSub)
			}
		})
	}
}
