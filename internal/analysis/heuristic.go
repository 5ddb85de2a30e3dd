package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

// Tier-2 extraction treats the response as semi-structured prose: known
// section headers delimit blocks, and numbered or dashed lines inside a
// block become records. Header order in the response does not matter; the
// table below only names the sections we recognize.

type sectionKind int

const (
	sectionClauses sectionKind = iota
	sectionRisks
	sectionKeyTerms
	sectionRecommendations
)

var sectionHeaders = []struct {
	header string
	kind   sectionKind
}{
	{"KEY CLAUSES IDENTIFIED", sectionClauses},
	{"KEY CLAUSES", sectionClauses},
	{"CLAUSES IDENTIFIED", sectionClauses},
	{"RISKS IDENTIFIED", sectionRisks},
	{"RISKS", sectionRisks},
	{"KEY TERMS", sectionKeyTerms},
	{"RECOMMENDATIONS", sectionRecommendations},
}

var listItemRe = regexp.MustCompile(`^\s*(?:\d+[.)]|[-•*])\s+(.*)$`)

var docTypeLineRe = regexp.MustCompile(`(?im)^\s*DOCUMENT\s+TYPE\s*:\s*(.+)$`)

// extractFromText is the tier-2 normalizer. It succeeds when at least one
// known section header is present; a response with no recognizable structure
// falls through to the synthetic tier.
func extractFromText(raw, documentText string) (Analysis, bool) {
	sections := splitSections(raw)
	if len(sections) == 0 {
		return Analysis{}, false
	}

	a := Analysis{
		Clauses:         []Clause{},
		Risks:           []Risk{},
		KeyTerms:        []KeyTerm{},
		Recommendations: []Recommendation{},
	}

	for _, sec := range sections {
		items := listItems(sec.body)
		switch sec.kind {
		case sectionClauses:
			for _, it := range items {
				a.Clauses = append(a.Clauses, buildClause(len(a.Clauses)+1, it))
			}
		case sectionRisks:
			for _, it := range items {
				a.Risks = append(a.Risks, buildRisk(len(a.Risks)+1, it))
			}
		case sectionKeyTerms:
			for _, it := range items {
				a.KeyTerms = append(a.KeyTerms, buildKeyTerm(it))
			}
		case sectionRecommendations:
			for _, it := range items {
				a.Recommendations = append(a.Recommendations, buildRecommendation(it))
			}
		}
	}

	docType := documentTypeFromResponse(raw)
	if docType == "" {
		docType = DetectDocumentType(documentText)
	}
	a.Summary = Summary{
		DocumentType:      docType,
		Purpose:           fmt.Sprintf("Automated review of a %s", strings.ToLower(docType)),
		Parties:           []string{},
		CompletenessScore: clampScore(float64(25 * len(sections))),
	}

	// Headers present but no parseable clause lines: fall back to a single
	// generic clause so the array invariants still hold.
	if len(a.Clauses) == 0 {
		a.Clauses = append(a.Clauses, genericClause(documentText, docType))
	}

	a.QualityMetrics = QualityMetrics{
		Completeness:             a.Summary.CompletenessScore,
		PotentiallyMissedClauses: missedClauseTypes(a.Clauses),
	}
	return finalize(a, tierHeuristic), true
}

type section struct {
	kind      sectionKind
	start     int
	headerLen int
	body      string
}

func splitSections(raw string) []section {
	upper := strings.ToUpper(raw)

	var found []section
	for _, h := range sectionHeaders {
		idx := strings.Index(upper, h.header)
		if idx == -1 {
			continue
		}
		// Longer headers are listed first, so skip offsets a longer match
		// already claimed ("RISKS" inside "RISKS IDENTIFIED") and duplicate
		// kinds matched via a shorter alias.
		if covered(found, h.kind, idx) {
			continue
		}
		found = append(found, section{kind: h.kind, start: idx, headerLen: len(h.header)})
	}

	// Each body runs from past its header to the next section start.
	for i := range found {
		end := len(raw)
		for _, other := range found {
			if other.start > found[i].start && other.start < end {
				end = other.start
			}
		}
		body := raw[found[i].start+found[i].headerLen : end]
		body = strings.TrimPrefix(body, ":")
		found[i].body = body
	}
	return found
}

func covered(sections []section, kind sectionKind, idx int) bool {
	for _, s := range sections {
		if s.kind == kind {
			return true
		}
		if idx >= s.start && idx < s.start+s.headerLen {
			return true
		}
	}
	return false
}

type listItem struct {
	title string
	desc  string
}

func listItems(body string) []listItem {
	var items []listItem
	for _, line := range strings.Split(body, "\n") {
		m := listItemRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		content := strings.TrimSpace(m[1])
		if content == "" {
			continue
		}
		title, desc := content, ""
		if colon := strings.Index(content, ":"); colon != -1 {
			title = strings.TrimSpace(content[:colon])
			desc = strings.TrimSpace(content[colon+1:])
		}
		items = append(items, listItem{title: title, desc: desc})
	}
	return items
}

func documentTypeFromResponse(raw string) string {
	m := docTypeLineRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func buildClause(n int, it listItem) Clause {
	text := it.desc
	if text == "" {
		text = it.title
	}
	return Clause{
		ID:          fmt.Sprintf("clause_%d", n),
		Title:       it.title,
		Text:        text,
		Category:    ClassifyClauseCategory(it.title + " " + it.desc),
		RiskLevel:   ClassifySeverity(it.desc),
		Explanation: "Identified from the analysis narrative",
		Location:    "",
		KeyTerms:    matchedKeywords(it.title+" "+it.desc, 3),
	}
}

func buildRisk(n int, it listItem) Risk {
	desc := it.desc
	if desc == "" {
		desc = it.title
	}
	return Risk{
		ID:              fmt.Sprintf("risk_%d", n),
		Title:           it.title,
		Description:     desc,
		Severity:        ClassifySeverity(it.title + " " + it.desc),
		Category:        ClassifyRiskCategory(it.title + " " + it.desc),
		Recommendation:  "Review this provision with legal counsel",
		RelatedClauseID: GeneralClauseRef,
		Excerpt:         truncate(desc, 200),
	}
}

func buildKeyTerm(it listItem) KeyTerm {
	return KeyTerm{
		Term:       it.title,
		Definition: it.desc,
		Importance: termImportance(it.title + " " + it.desc),
		Context:    "",
	}
}

func buildRecommendation(it listItem) Recommendation {
	rationale := it.desc
	if rationale == "" {
		rationale = it.title
	}
	return Recommendation{
		Priority:       string(ClassifySeverity(it.title + " " + it.desc)),
		Action:         it.title,
		Rationale:      rationale,
		RelatedClauses: []string{},
	}
}

func termImportance(text string) string {
	switch ClassifySeverity(text) {
	case RiskCritical, RiskHigh:
		return "high"
	case RiskLow:
		return "low"
	default:
		return "medium"
	}
}

// matchedKeywords returns up to max clause-category keywords present in the
// text, used as the clause's extracted key terms.
func matchedKeywords(text string, max int) []string {
	lower := strings.ToLower(text)
	out := []string{}
	for _, rule := range clauseCategoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				out = append(out, kw)
				if len(out) == max {
					return out
				}
			}
		}
	}
	return out
}

var standardClauseTypes = []ClauseCategory{
	CategoryConfidentiality,
	CategoryPayment,
	CategoryTermination,
	CategoryLiability,
	CategoryGoverningLaw,
}

func missedClauseTypes(clauses []Clause) []string {
	present := make(map[ClauseCategory]bool, len(clauses))
	for _, c := range clauses {
		present[c.Category] = true
	}
	missed := []string{}
	for _, t := range standardClauseTypes {
		if !present[t] {
			missed = append(missed, string(t))
		}
	}
	return missed
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
