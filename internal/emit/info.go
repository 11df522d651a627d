// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package emit

import "github.com/pdiddy/rulebook/pkg/types"

// The two trailing info sections are fixed, hand-authored prose appended
// after the extracted sections in every output format.

const methodologyContent = `**CRITICAL MANDATORY REQUIREMENTS (Rules 1-46)**

Legal/regulatory requirements from Legal Agreement and Procurement Regulations

**Violation results in:** misprocurement declaration, contract cancellation, loan suspension/cancellation, financing withdrawal, reputational damage to Borrower and Bank

Non-negotiable compliance requirements

---

**HIGH PRIORITY REQUIREMENTS (Rules 47-100)**

Process integrity requirements ensuring fair competition and transparency

**Violation results in:** valid complaints from bidders/proposers, process delays, repeat of procurement activities, reputational damage, potential legal challenges

Critical for maintaining procurement process credibility

---

**IMPORTANT OPERATIONAL REQUIREMENTS (Rules 101-190)**

Best practice requirements ensuring efficient procurement and value for money

**Violation results in:** suboptimal outcomes, reduced value for money, implementation delays, missed opportunities for innovation/sustainability, weaker contract management

Essential for procurement excellence and project success`

const citationNotesContent = `All rules are derived from official World Bank procurement documents:

1. **PR2025**: References include Section number, Paragraph number, Annex number (if applicable), and page number
2. **EVAL2024**: References include Form number, Section name, Annex number (if applicable), and page number

**Abbreviations Used:**
- Para = Paragraph
- p. = page
- SPD = Standard Procurement Document
- PPSD = Project Procurement Strategy for Development
- VfM = Value for Money
- KPI = Key Performance Indicator
- SOE = State-Owned Enterprise
- SEA/SH = Sexual Exploitation and Abuse/Sexual Harassment
- BAFO = Best and Final Offer

**Document Availability:**
- PR2025 is publicly available at www.worldbank.org/procurement
- EVAL2024 templates are available at www.worldbank.org/procurement/standarddocuments`

// InfoSections returns the trailing explanatory sections in output order.
func InfoSections() []types.Section {
	return []types.Section{
		{
			Title:         "Document Prioritization Methodology",
			Priority:      types.PriorityInfo,
			IsInfoSection: true,
			Content:       methodologyContent,
		},
		{
			Title:         "Notes on Citations",
			Priority:      types.PriorityInfo,
			IsInfoSection: true,
			Content:       citationNotesContent,
		},
	}
}
