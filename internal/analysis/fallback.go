package analysis

import (
	"fmt"
	"strings"
)

const (
	excerptLen = 250

	// Detection confidence assigned to synthetic results, low enough to
	// signal degraded quality to the caller.
	syntheticConfidence = 50
)

// SyntheticAnalysis builds the tier-3 degraded result: a minimal but fully
// valid Analysis derived from the document itself, produced when no real
// structured data could be extracted from the provider response. reason
// describes the failure and surfaces in the generated risk.
func SyntheticAnalysis(documentText, reason string) Analysis {
	docType := DetectDocumentType(documentText)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "Automated analysis was unavailable"
	}

	a := Analysis{
		Summary: Summary{
			DocumentType:           docType,
			Purpose:                fmt.Sprintf("Automated review of a %s", strings.ToLower(docType)),
			Parties:                []string{},
			TotalClausesIdentified: 1,
			CompletenessScore:      25,
		},
		Clauses: []Clause{genericClause(documentText, docType)},
		Risks: []Risk{
			{
				ID:              "risk_1",
				Title:           "Analysis Incomplete",
				Description:     reason,
				Severity:        RiskMedium,
				Category:        RiskCategoryOperational,
				Recommendation:  "Have the document reviewed manually by legal counsel",
				RelatedClauseID: GeneralClauseRef,
				Excerpt:         "",
			},
		},
		KeyTerms: []KeyTerm{
			{
				Term:       "Agreement",
				Definition: "The legal document under review",
				Importance: "high",
				Context:    docType,
			},
		},
		Recommendations: []Recommendation{
			{
				Priority:       string(RiskHigh),
				Action:         "Obtain a manual review of this document",
				Rationale:      "The automated analysis could not be completed reliably",
				RelatedClauses: []string{"clause_1"},
			},
		},
		QualityMetrics: QualityMetrics{
			ClauseDetectionConfidence: syntheticConfidence,
			Completeness:              25,
			PotentiallyMissedClauses:  missedClauseTypes(nil),
		},
	}
	return finalize(a, tierSynthetic)
}

func genericClause(documentText, docType string) Clause {
	excerpt := strings.TrimSpace(documentText)
	if len(excerpt) > excerptLen {
		excerpt = excerpt[:excerptLen]
	}
	return Clause{
		ID:          "clause_1",
		Title:       "Document Content",
		Text:        excerpt,
		Category:    CategoryGeneral,
		RiskLevel:   RiskMedium,
		Explanation: fmt.Sprintf("Opening text of the %s; detailed clause extraction was not possible", strings.ToLower(docType)),
		Location:    "document start",
		KeyTerms:    []string{},
	}
}
