package analysis

// scoreConfidence applies the additive detection-confidence scheme used when
// the provider does not supply a score: points for a recognized document
// type and for minimum counts per section, capped at 100.
func scoreConfidence(a Analysis) float64 {
	score := 0.0
	if a.Summary.DocumentType != "" {
		score += 20
	}
	if len(a.Clauses) >= 3 {
		score += 30
	}
	if len(a.Risks) >= 2 {
		score += 25
	}
	if len(a.Recommendations) >= 2 {
		score += 15
	}
	if len(a.KeyTerms) >= 2 {
		score += 10
	}
	return clampScore(score)
}
