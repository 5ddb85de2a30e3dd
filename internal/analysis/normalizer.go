package analysis

import (
	"encoding/json"
	"strings"
)

// Normalize converts one raw provider response into the canonical Analysis
// schema. It never fails: strict JSON decoding is tried first, then heuristic
// text extraction, then a synthetic fallback built from the document itself.
func Normalize(raw, documentText string) Analysis {
	if a, ok := decodeStrict(raw); ok {
		return a
	}
	if a, ok := extractFromText(raw, documentText); ok {
		return a
	}
	return SyntheticAnalysis(documentText, "The analysis response could not be parsed")
}

// decodeStrict attempts tier-1 normalization: isolate the JSON object inside
// the response, repair common truncation damage, decode, and enforce the
// schema invariants. Responses are frequently wrapped in markdown fences or
// prefixed with prose, so the slice between the first '{' and the last '}'
// is what gets decoded.
func decodeStrict(raw string) (Analysis, bool) {
	slice, ok := isolateObject(raw)
	if !ok {
		return Analysis{}, false
	}

	var a Analysis
	if err := json.Unmarshal([]byte(slice), &a); err != nil {
		repaired, changed := repairTruncated(slice)
		if !changed {
			return Analysis{}, false
		}
		a = Analysis{}
		if err := json.Unmarshal([]byte(repaired), &a); err != nil {
			return Analysis{}, false
		}
	}

	if strings.TrimSpace(a.Summary.DocumentType) == "" {
		return Analysis{}, false
	}
	return finalize(a, tierStrict), true
}

func isolateObject(raw string) (string, bool) {
	text := stripFences(raw)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 {
		return "", false
	}
	if end > start {
		return text[start : end+1], true
	}
	// No closing brace at all: hand the tail to the repair step.
	return text[start:], true
}

func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	for _, marker := range []string{"```json", "```JSON", "```"} {
		if strings.HasPrefix(text, marker) {
			text = strings.TrimSpace(strings.TrimPrefix(text, marker))
			break
		}
	}
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// repairTruncated patches responses cut off by provider token limits. A
// dangling `"recommend` fragment (a known truncation point) is dropped back
// to the last comma, then the open/close brace and bracket deficit is
// appended. Best-effort only: tier 2/3 remains the safety net.
func repairTruncated(slice string) (string, bool) {
	text := slice
	if idx := strings.LastIndex(text, `"recommend`); idx != -1 && !strings.Contains(text[idx:], ":") {
		if comma := strings.LastIndex(text[:idx], ","); comma != -1 {
			text = text[:comma]
		}
	}

	opensBrace := strings.Count(text, "{")
	closesBrace := strings.Count(text, "}")
	opensBracket := strings.Count(text, "[")
	closesBracket := strings.Count(text, "]")
	if opensBrace <= closesBrace && opensBracket <= closesBracket && text == slice {
		return slice, false
	}
	if deficit := opensBracket - closesBracket; deficit > 0 {
		text += strings.Repeat("]", deficit)
	}
	if deficit := opensBrace - closesBrace; deficit > 0 {
		text += strings.Repeat("}", deficit)
	}
	return text, text != slice
}

type tier int

const (
	tierStrict tier = iota + 1
	tierHeuristic
	tierSynthetic
)

// finalize enforces the schema invariants shared by every tier: array fields
// are non-nil, scores are clamped, and a detection confidence is computed
// when the provider did not supply one. Tier 2 always recomputes the clause
// count; tier 1 trusts a provider-supplied count and only backfills it.
func finalize(a Analysis, t tier) Analysis {
	a.Clauses = ensureClauseList(a.Clauses)
	a.Risks = ensureRiskList(a.Risks)
	a.KeyTerms = ensureKeyTermList(a.KeyTerms)
	a.Recommendations = ensureRecommendationList(a.Recommendations)
	a.Summary.Parties = ensureStringSlice(a.Summary.Parties)
	a.QualityMetrics.PotentiallyMissedClauses = ensureStringSlice(a.QualityMetrics.PotentiallyMissedClauses)

	if t == tierHeuristic || a.Summary.TotalClausesIdentified == 0 {
		a.Summary.TotalClausesIdentified = len(a.Clauses)
	}
	a.Summary.CompletenessScore = clampScore(a.Summary.CompletenessScore)
	if a.QualityMetrics.ClauseDetectionConfidence == 0 {
		a.QualityMetrics.ClauseDetectionConfidence = scoreConfidence(a)
	}
	a.QualityMetrics.ClauseDetectionConfidence = clampScore(a.QualityMetrics.ClauseDetectionConfidence)
	a.QualityMetrics.Completeness = clampScore(a.QualityMetrics.Completeness)
	return a
}
