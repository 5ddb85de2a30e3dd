package resilience

import (
	"strings"

	"contract-backend/internal/llm"
)

// ErrorCategory is the closed set of failure classifications. Exactly one
// category is assigned per failure.
type ErrorCategory string

const (
	CategoryAuthentication     ErrorCategory = "AUTHENTICATION_ERROR"
	CategoryRateLimit          ErrorCategory = "RATE_LIMIT_ERROR"
	CategoryContentSafety      ErrorCategory = "CONTENT_SAFETY_ERROR"
	CategoryNetwork            ErrorCategory = "NETWORK_ERROR"
	CategoryQuota              ErrorCategory = "QUOTA_ERROR"
	CategoryInvalidRequest     ErrorCategory = "INVALID_REQUEST_ERROR"
	CategoryServiceUnavailable ErrorCategory = "SERVICE_UNAVAILABLE_ERROR"
	CategoryGeneric            ErrorCategory = "GENERIC_ERROR"
)

// Classification precedence is data, not control flow: rules are tested in
// order and the first match wins.
type classifyRule struct {
	category ErrorCategory
	keywords []string
	statuses []int
}

var classifyRules = []classifyRule{
	{CategoryAuthentication, []string{"api key", "unauthorized", "authentication"}, []int{401}},
	{CategoryRateLimit, []string{"rate limit", "too many requests"}, []int{429}},
	{CategoryContentSafety, []string{"safety", "blocked", "content policy"}, nil},
	{CategoryNetwork, []string{"network", "connection", "timeout", "econnreset", "econnrefused", "enotfound"}, nil},
	{CategoryQuota, []string{"quota", "limit exceeded"}, []int{403}},
	{CategoryInvalidRequest, []string{"invalid", "bad request"}, []int{400}},
	{CategoryServiceUnavailable, []string{"unavailable", "service"}, []int{502, 503, 504}},
}

// Classify maps an arbitrary failure to exactly one ErrorCategory. It is a
// pure function of the error message and any carried provider status, and
// returns CategoryGeneric rather than failing for unrecognized input.
func Classify(err error) ErrorCategory {
	if err == nil {
		return CategoryGeneric
	}
	msg := strings.ToLower(err.Error())
	status := llm.StatusOf(err)

	for _, rule := range classifyRules {
		for _, code := range rule.statuses {
			if status == code {
				return rule.category
			}
		}
		for _, kw := range rule.keywords {
			if strings.Contains(msg, kw) {
				return rule.category
			}
		}
	}
	return CategoryGeneric
}

// Retryable reports whether failures in the category are transient enough to
// retry. Everything else is terminal for the current attempt.
func Retryable(cat ErrorCategory) bool {
	switch cat {
	case CategoryNetwork, CategoryRateLimit, CategoryQuota:
		return true
	default:
		return false
	}
}

// Detail carries the user-facing description of a category. The technical
// message stays in logs and is never exposed to the end user.
type Detail struct {
	Message     string
	Remediation string
}

var categoryDetails = map[ErrorCategory]Detail{
	CategoryAuthentication:     {"The analysis service rejected our credentials.", "Verify the provider API key configuration."},
	CategoryRateLimit:          {"The analysis service is receiving too many requests.", "Wait a moment and try again."},
	CategoryContentSafety:      {"The document was declined by the provider's content policy.", "Review the document for content that may trigger safety filters."},
	CategoryNetwork:            {"We could not reach the analysis service.", "Check network connectivity and try again."},
	CategoryQuota:              {"The analysis quota has been exhausted.", "Review the provider plan limits or wait for the quota to reset."},
	CategoryInvalidRequest:     {"The analysis request was malformed.", "Try again; if the problem persists, report the document that caused it."},
	CategoryServiceUnavailable: {"The analysis service is temporarily unavailable.", "Try again shortly."},
	CategoryGeneric:            {"The analysis failed unexpectedly.", "Try again; if the problem persists, contact support."},
}

// Describe returns the user-facing detail for a category.
func Describe(cat ErrorCategory) Detail {
	if d, ok := categoryDetails[cat]; ok {
		return d
	}
	return categoryDetails[CategoryGeneric]
}
