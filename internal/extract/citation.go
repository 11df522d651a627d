// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract identifies rules within a markdown catalog.
// citation.go parses source citation strings into structured references.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/rulebook/pkg/types"
)

// Citation component patterns. Citations follow the shapes
// "PR2025, Section 5, Para 5.3, Annex II, p.61" and
// "EVAL2024, Form 3, Section B, p.14".
var (
	// docRe matches a document identifier like PR2025 or EVAL2024.
	docRe = regexp.MustCompile(`^[A-Z]{2,}\d{4}$`)

	// pageRe matches a page reference like "p.12" or "p. 12".
	pageRe = regexp.MustCompile(`^p\.\s*(\d+)$`)

	// sectionRe matches "Section 5" or "Section B".
	sectionRe = regexp.MustCompile(`^Section\s+(\S.*)$`)

	// paraRe matches "Para 5.3" or "Paragraph 5.3".
	paraRe = regexp.MustCompile(`^Para(?:graph)?\.?\s+(\S.*)$`)

	// annexRe matches "Annex II" or "Annex 3".
	annexRe = regexp.MustCompile(`^Annex\s+(\S.*)$`)

	// formRe matches "Form 3".
	formRe = regexp.MustCompile(`^Form\s+(\S.*)$`)
)

// ParseSourceRef parses a rule's citation string into a structured reference.
// Parsing is best-effort: unrecognized fragments are skipped and an empty
// citation yields the zero value.
func ParseSourceRef(source string) types.SourceRef {
	var ref types.SourceRef

	for _, part := range strings.Split(source, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		switch {
		case ref.Document == "" && docRe.MatchString(part):
			ref.Document = part
		case sectionRe.MatchString(part):
			ref.Section = sectionRe.FindStringSubmatch(part)[1]
		case paraRe.MatchString(part):
			ref.Paragraph = paraRe.FindStringSubmatch(part)[1]
		case annexRe.MatchString(part):
			ref.Annex = annexRe.FindStringSubmatch(part)[1]
		case formRe.MatchString(part):
			ref.Form = formRe.FindStringSubmatch(part)[1]
		case pageRe.MatchString(part):
			// Digits only per the regex, so Atoi cannot fail here.
			ref.Page, _ = strconv.Atoi(pageRe.FindStringSubmatch(part)[1])
		}
	}

	return ref
}
