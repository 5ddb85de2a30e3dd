package analysis

import "strings"

// Keyword cascades are ordered data, not control flow: the first matching
// rule wins, and rule order is significant for reproducibility.

type docTypeRule struct {
	keywords []string
	docType  string
}

var docTypeRules = []docTypeRule{
	{[]string{"non-disclosure", "confidential"}, "Non-Disclosure Agreement"},
	{[]string{"employment"}, "Employment Agreement"},
	{[]string{"service", "consulting"}, "Service Agreement"},
	{[]string{"license", "software"}, "License Agreement"},
	{[]string{"lease", "rent"}, "Lease Agreement"},
}

// DefaultDocumentType is used when no keyword rule matches.
const DefaultDocumentType = "Legal Agreement"

// DetectDocumentType maps document text to a document type label using the
// ordered keyword table above.
func DetectDocumentType(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range docTypeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.docType
			}
		}
	}
	return DefaultDocumentType
}

type categoryRule struct {
	keywords []string
	category ClauseCategory
}

var clauseCategoryRules = []categoryRule{
	{[]string{"confidential", "non-disclosure", "nda", "secrecy"}, CategoryConfidentiality},
	{[]string{"payment", "fee", "compensation", "invoice", "salary"}, CategoryPayment},
	{[]string{"termination", "terminate", "expiration", "cancel"}, CategoryTermination},
	{[]string{"liability", "indemnif", "damages", "limitation"}, CategoryLiability},
	{[]string{"intellectual property", "copyright", "patent", "trademark", "ip rights"}, CategoryIntellectualProperty},
	{[]string{"warranty", "warrant", "guarantee", "representation"}, CategoryWarranty},
	{[]string{"governing law", "jurisdiction", "venue", "dispute"}, CategoryGoverningLaw},
}

// ClassifyClauseCategory maps a clause title or text to a clause category.
func ClassifyClauseCategory(text string) ClauseCategory {
	lower := strings.ToLower(text)
	for _, rule := range clauseCategoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return CategoryGeneral
}

type severityRule struct {
	keywords []string
	level    RiskLevel
}

var severityRules = []severityRule{
	{[]string{"critical", "severe", "unlimited", "immediate"}, RiskCritical},
	{[]string{"high", "significant", "substantial", "material"}, RiskHigh},
	{[]string{"low", "minor", "minimal", "standard"}, RiskLow},
}

// ClassifySeverity maps a description to a risk level, defaulting to medium.
func ClassifySeverity(text string) RiskLevel {
	lower := strings.ToLower(text)
	for _, rule := range severityRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.level
			}
		}
	}
	return RiskMedium
}

type riskCategoryRule struct {
	keywords []string
	category RiskCategory
}

var riskCategoryRules = []riskCategoryRule{
	{[]string{"payment", "fee", "cost", "penalty", "financial", "money"}, RiskCategoryFinancial},
	{[]string{"liability", "legal", "lawsuit", "compliance", "breach", "indemnif"}, RiskCategoryLegal},
}

// ClassifyRiskCategory maps a risk description to its category, defaulting
// to operational.
func ClassifyRiskCategory(text string) RiskCategory {
	lower := strings.ToLower(text)
	for _, rule := range riskCategoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return RiskCategoryOperational
}
