package analysis

// Canonical analysis schema (all paths converge here):
// {
//   "summary": {
//     "documentType": "string",
//     "purpose": "string",
//     "parties": ["string"],
//     "effectiveDate": "string",
//     "expirationDate": "string",
//     "totalClausesIdentified": "number",
//     "completenessScore": "number (0-100)"
//   },
//   "clauses": [
//     {
//       "id": "clause_N",
//       "title": "string",
//       "text": "string",
//       "category": "confidentiality | payment | termination | liability | intellectual_property | warranty | governing_law | general",
//       "riskLevel": "low | medium | high | critical",
//       "explanation": "string",
//       "location": "string",
//       "keyTerms": ["string"]
//     }
//   ],
//   "risks": [
//     {
//       "id": "risk_N",
//       "title": "string",
//       "description": "string",
//       "severity": "low | medium | high | critical",
//       "category": "financial | legal | operational",
//       "recommendation": "string",
//       "relatedClauseId": "clause_N | general",
//       "excerpt": "string"
//     }
//   ],
//   "keyTerms": [{"term", "definition", "importance", "context"}],
//   "recommendations": [{"priority", "action", "rationale", "relatedClauses"}],
//   "qualityMetrics": {
//     "clauseDetectionConfidence": "number (0-100)",
//     "completeness": "number (0-100)",
//     "potentiallyMissedClauses": ["string"]
//   }
// }

// Analysis is the single normalized result schema returned by the API.
// The four array fields are always present and never nil, even when empty.
type Analysis struct {
	Summary         Summary          `json:"summary"`
	Clauses         []Clause         `json:"clauses"`
	Risks           []Risk           `json:"risks"`
	KeyTerms        []KeyTerm        `json:"keyTerms"`
	Recommendations []Recommendation `json:"recommendations"`
	QualityMetrics  QualityMetrics   `json:"qualityMetrics"`
}

type Summary struct {
	DocumentType           string   `json:"documentType"`
	Purpose                string   `json:"purpose"`
	Parties                []string `json:"parties"`
	EffectiveDate          string   `json:"effectiveDate"`
	ExpirationDate         string   `json:"expirationDate"`
	TotalClausesIdentified int      `json:"totalClausesIdentified"`
	CompletenessScore      float64  `json:"completenessScore"`
}

type ClauseCategory string

const (
	CategoryConfidentiality      ClauseCategory = "confidentiality"
	CategoryPayment              ClauseCategory = "payment"
	CategoryTermination          ClauseCategory = "termination"
	CategoryLiability            ClauseCategory = "liability"
	CategoryIntellectualProperty ClauseCategory = "intellectual_property"
	CategoryWarranty             ClauseCategory = "warranty"
	CategoryGoverningLaw         ClauseCategory = "governing_law"
	CategoryGeneral              ClauseCategory = "general"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

type RiskCategory string

const (
	RiskCategoryFinancial   RiskCategory = "financial"
	RiskCategoryLegal       RiskCategory = "legal"
	RiskCategoryOperational RiskCategory = "operational"
)

type Clause struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Text        string         `json:"text"`
	Category    ClauseCategory `json:"category"`
	RiskLevel   RiskLevel      `json:"riskLevel"`
	Explanation string         `json:"explanation"`
	Location    string         `json:"location"`
	KeyTerms    []string       `json:"keyTerms"`
}

type Risk struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	Severity        RiskLevel    `json:"severity"`
	Category        RiskCategory `json:"category"`
	Recommendation  string       `json:"recommendation"`
	RelatedClauseID string       `json:"relatedClauseId"`
	Excerpt         string       `json:"excerpt"`
}

// GeneralClauseRef is the sentinel RelatedClauseID used when a risk does not
// point at a specific clause.
const GeneralClauseRef = "general"

type KeyTerm struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Importance string `json:"importance"`
	Context    string `json:"context"`
}

type Recommendation struct {
	Priority       string   `json:"priority"`
	Action         string   `json:"action"`
	Rationale      string   `json:"rationale"`
	RelatedClauses []string `json:"relatedClauses"`
}

type QualityMetrics struct {
	ClauseDetectionConfidence float64  `json:"clauseDetectionConfidence"`
	Completeness              float64  `json:"completeness"`
	PotentiallyMissedClauses  []string `json:"potentiallyMissedClauses"`
}

func ensureStringSlice(value []string) []string {
	if value == nil {
		return []string{}
	}
	return value
}

func ensureClauseList(value []Clause) []Clause {
	if value == nil {
		return []Clause{}
	}
	for i := range value {
		if value[i].KeyTerms == nil {
			value[i].KeyTerms = []string{}
		}
	}
	return value
}

func ensureRiskList(value []Risk) []Risk {
	if value == nil {
		return []Risk{}
	}
	for i := range value {
		if value[i].RelatedClauseID == "" {
			value[i].RelatedClauseID = GeneralClauseRef
		}
	}
	return value
}

func ensureKeyTermList(value []KeyTerm) []KeyTerm {
	if value == nil {
		return []KeyTerm{}
	}
	return value
}

func ensureRecommendationList(value []Recommendation) []Recommendation {
	if value == nil {
		return []Recommendation{}
	}
	for i := range value {
		if value[i].RelatedClauses == nil {
			value[i].RelatedClauses = []string{}
		}
	}
	return value
}

func clampScore(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
