// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract converts a procurement rules markdown catalog into the
// typed Document model. The scanner is total over arbitrary text: lines
// that match no pattern are ignored, and malformed entries are counted
// rather than treated as failures.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/rulebook/pkg/types"
)

// Priority tier headers are fixed literals in the source document.
// The methodology header opens the trailing info tier.
var tierHeaders = []struct {
	prefix   string
	priority types.Priority
}{
	{"## **CRITICAL MANDATORY REQUIREMENTS**", types.PriorityCritical},
	{"## **HIGH PRIORITY REQUIREMENTS**", types.PriorityHigh},
	{"## **IMPORTANT OPERATIONAL REQUIREMENTS**", types.PriorityImportant},
	{"## **DOCUMENT PRIORITIZATION METHODOLOGY**", types.PriorityInfo},
}

var (
	// ruleRe matches a complete rule header line like "**12. Title**".
	ruleRe = regexp.MustCompile(`^\*\*(\d+)\.\s+(.+)\*\*$`)

	// looseRuleRe matches anything that starts like a rule header. Lines
	// matching this but not ruleRe are reported as malformed.
	looseRuleRe = regexp.MustCompile(`^\*\*\d+\.`)
)

const sourceMarker = "**Source**"

// Result holds the extracted Document together with everything the scanner
// skipped or flagged along the way.
type Result struct {
	// Document is the ordered section catalog.
	Document types.Document

	// DroppedSections lists titles of section headers that had no rules
	// before the next header and were therefore not emitted.
	DroppedSections []string

	// MalformedRules lists lines that looked like rule headers but did not
	// match the full pattern (e.g. missing the closing delimiter).
	MalformedRules []string

	// Warnings holds rule-number validation findings: duplicates and gaps.
	Warnings []string
}

// scanner is the state threaded through one forward pass: the current
// priority tier and the accumulating open section. A section is tagged
// with the tier current when it opens, so a tier header appearing
// mid-section changes only the sections that follow.
type scanner struct {
	priority        types.Priority
	sectionTitle    string
	sectionPriority types.Priority
	sectionOpen     bool
	rules           []types.Rule

	result Result
}

// Extract scans content line by line and produces the section catalog.
// It never fails: unrecognized lines are no-ops for the state machine.
func Extract(content string) *Result {
	lines := strings.Split(content, "\n")

	s := &scanner{}

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		switch {
		case s.matchTierHeader(line):
			// Tier updated; the open section stays open.
			i++

		case isSectionHeader(line):
			s.flush()
			s.sectionTitle = stripBold(strings.TrimPrefix(line, "### "))
			s.sectionPriority = s.priority
			s.sectionOpen = true
			i++

		case ruleRe.MatchString(line):
			i = s.consumeRule(lines, i)

		case looseRuleRe.MatchString(line):
			s.result.MalformedRules = append(s.result.MalformedRules, line)
			i++

		default:
			i++
		}
	}

	s.flush()
	s.result.Warnings = Validate(s.result.Document)
	return &s.result
}

// matchTierHeader updates the current priority when the line is one of the
// four fixed tier headers.
func (s *scanner) matchTierHeader(line string) bool {
	for _, h := range tierHeaders {
		if strings.HasPrefix(line, h.prefix) {
			s.priority = h.priority
			return true
		}
	}
	return false
}

// isSectionHeader reports whether the line is a bold second-level section
// heading like "### **Title**".
func isSectionHeader(line string) bool {
	return strings.HasPrefix(line, "### **") && strings.HasSuffix(line, "**")
}

// stripBold removes all bold delimiters from a heading.
func stripBold(s string) string {
	return strings.ReplaceAll(s, "**", "")
}

// consumeRule parses the rule header at lines[i] plus its following bullet
// run and optional source line, and returns the index of the first
// unconsumed line.
func (s *scanner) consumeRule(lines []string, i int) int {
	m := ruleRe.FindStringSubmatch(strings.TrimSpace(lines[i]))
	number, err := strconv.Atoi(m[1])
	if err != nil {
		// Digits only by construction; overflow is the one way this fails.
		s.result.MalformedRules = append(s.result.MalformedRules, strings.TrimSpace(lines[i]))
		return i + 1
	}

	rule := types.Rule{
		Number: number,
		Title:  m[2],
	}

	// Bullet lines after the header are description fragments, joined by
	// single spaces, until a non-bullet line or the source bullet.
	i++
	var fragments []string
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, "-") || strings.Contains(trimmed, sourceMarker) {
			break
		}
		fragments = append(fragments, strings.TrimSpace(strings.TrimPrefix(trimmed, "-")))
		i++
	}
	rule.Description = strings.Join(fragments, " ")

	// The line that stopped the bullet run may carry the citation.
	if i < len(lines) {
		if trimmed := strings.TrimSpace(lines[i]); strings.Contains(trimmed, "- "+sourceMarker+":") {
			rule.Source = strings.TrimSpace(strings.Replace(trimmed, "- "+sourceMarker+":", "", 1))
			i++
		}
	}

	s.rules = append(s.rules, rule)
	return i
}

// flush appends the open section to the document when it has at least one
// rule. A header with no rules before the next header is dropped and
// recorded, not emitted.
func (s *scanner) flush() {
	if !s.sectionOpen {
		return
	}
	if len(s.rules) == 0 {
		s.result.DroppedSections = append(s.result.DroppedSections, s.sectionTitle)
		return
	}
	s.result.Document.Sections = append(s.result.Document.Sections, types.Section{
		Title:    s.sectionTitle,
		Priority: s.sectionPriority,
		Rules:    s.rules,
	})
	s.rules = nil
}

// Validate checks rule numbers across the document in order and returns a
// warning per duplicate and per gap. The source document promises contiguous
// numbering only by convention, so findings are warnings, never errors.
func Validate(doc types.Document) []string {
	var warnings []string

	seen := make(map[int]bool)
	prev := 0
	for _, sec := range doc.Sections {
		for _, r := range sec.Rules {
			if seen[r.Number] {
				warnings = append(warnings, fmt.Sprintf("duplicate rule number %d", r.Number))
			}
			seen[r.Number] = true

			if prev != 0 && r.Number > prev+1 {
				if r.Number == prev+2 {
					warnings = append(warnings, fmt.Sprintf("rule numbering gap: %d missing", prev+1))
				} else {
					warnings = append(warnings, fmt.Sprintf("rule numbering gap: %d-%d missing", prev+1, r.Number-1))
				}
			}
			if r.Number > prev {
				prev = r.Number
			}
		}
	}

	return warnings
}
