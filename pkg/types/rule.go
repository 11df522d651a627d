// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Priority indicates the compliance severity of a section of rules.
type Priority string

const (
	PriorityCritical  Priority = "critical"
	PriorityHigh      Priority = "high"
	PriorityImportant Priority = "important"
	PriorityInfo      Priority = "info"
)

// ValidPriorities is the set of accepted Priority values.
var ValidPriorities = map[Priority]bool{
	PriorityCritical:  true,
	PriorityHigh:      true,
	PriorityImportant: true,
	PriorityInfo:      true,
}

// Rule is one numbered procurement requirement. Rules are constructed once
// during extraction and never mutated afterwards.
type Rule struct {
	// Number is the rule's catalog number as it appears in the source
	// document. Expected contiguous from 1 but not enforced here; see
	// extract.Validate.
	Number int `json:"number" yaml:"number"`

	// Title is the short rule title with markdown delimiters stripped.
	Title string `json:"title" yaml:"title"`

	// Description is the rule body, assembled from one or more source
	// bullet lines joined by single spaces. May be empty.
	Description string `json:"description" yaml:"description"`

	// Source is the citation string for the rule (e.g. "PR2025, Section 5,
	// Para 5.3, p.61"). Empty when the source document omits it.
	Source string `json:"source" yaml:"source"`
}

// Section is a titled, priority-tagged grouping of rules in document order.
type Section struct {
	// Title is the section heading with markdown delimiters stripped.
	Title string `json:"title" yaml:"title"`

	// Priority is the tier the section belongs to.
	Priority Priority `json:"priority" yaml:"priority"`

	// Rules holds the section's rules in source order. Empty for info sections.
	Rules []Rule `json:"rules" yaml:"rules"`

	// IsInfoSection marks trailing explanatory sections that carry prose
	// instead of numbered rules.
	IsInfoSection bool `json:"is_info_section,omitempty" yaml:"is_info_section,omitempty"`

	// Content holds the prose body of an info section. Empty for rule sections.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
}

// Document is the full ordered catalog produced by one extraction pass.
// Ordering reflects the source document and is significant.
type Document struct {
	Sections []Section `json:"sections" yaml:"sections"`
}

// RuleCount returns the total number of rules across all sections.
func (d Document) RuleCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Rules)
	}
	return n
}

// SourceRef is a structured, best-effort parse of a Rule.Source citation.
// Fields are empty (or zero for Page) when the citation does not carry them.
type SourceRef struct {
	// Document is the cited document identifier (e.g. "PR2025", "EVAL2024").
	Document string `json:"document" yaml:"document"`

	// Section is the cited section reference (e.g. "5", "B").
	Section string `json:"section,omitempty" yaml:"section,omitempty"`

	// Paragraph is the cited paragraph reference (e.g. "5.3").
	Paragraph string `json:"paragraph,omitempty" yaml:"paragraph,omitempty"`

	// Annex is the cited annex reference (e.g. "II").
	Annex string `json:"annex,omitempty" yaml:"annex,omitempty"`

	// Form is the cited form number for evaluation templates.
	Form string `json:"form,omitempty" yaml:"form,omitempty"`

	// Page is the cited page number, or 0 when absent.
	Page int `json:"page,omitempty" yaml:"page,omitempty"`
}
