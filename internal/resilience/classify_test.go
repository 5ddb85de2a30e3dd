package resilience

import (
	"errors"
	"fmt"
	"testing"

	"contract-backend/internal/llm"
)

func TestClassify_Keywords(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"nil", nil, CategoryGeneric},
		{"api key", errors.New("Incorrect API key provided"), CategoryAuthentication},
		{"unauthorized", errors.New("request unauthorized"), CategoryAuthentication},
		{"rate limit", errors.New("Rate limit reached for requests"), CategoryRateLimit},
		{"too many requests", errors.New("429 too many requests"), CategoryRateLimit},
		{"safety", errors.New("response flagged by safety system"), CategoryContentSafety},
		{"content policy", errors.New("prompt violates content policy"), CategoryContentSafety},
		{"timeout", errors.New("openai request timeout: context deadline exceeded"), CategoryNetwork},
		{"connection", errors.New("dial tcp: connection refused"), CategoryNetwork},
		{"econnreset", errors.New("read: ECONNRESET"), CategoryNetwork},
		{"quota", errors.New("You exceeded your current quota"), CategoryQuota},
		{"invalid", errors.New("invalid request payload"), CategoryInvalidRequest},
		{"unavailable", errors.New("the engine is currently unavailable"), CategoryServiceUnavailable},
		{"unknown", errors.New("something odd happened"), CategoryGeneric},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.err); got != tc.want {
				t.Fatalf("Classify(%v) = %q, want %q", tc.err, got, tc.want)
			}
		})
	}
}

func TestClassify_ProviderStatus(t *testing.T) {
	cases := []struct {
		status int
		want   ErrorCategory
	}{
		{401, CategoryAuthentication},
		{429, CategoryRateLimit},
		{403, CategoryQuota},
		{400, CategoryInvalidRequest},
		{502, CategoryServiceUnavailable},
		{503, CategoryServiceUnavailable},
		{504, CategoryServiceUnavailable},
	}
	for _, tc := range cases {
		err := &llm.ProviderError{Provider: "openai", Status: tc.status, Message: "opaque upstream failure"}
		if got := Classify(err); got != tc.want {
			t.Fatalf("Classify(status %d) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestClassify_WrappedProviderError(t *testing.T) {
	inner := &llm.ProviderError{Provider: "openai", Status: 503, Message: "upstream overloaded"}
	err := fmt.Errorf("analyze: %w", inner)
	if got := Classify(err); got != CategoryServiceUnavailable {
		t.Fatalf("Classify(wrapped) = %q", got)
	}
}

func TestClassify_OrderPrecedence(t *testing.T) {
	// "invalid api key" mentions both authentication and invalid-request
	// keywords; the earlier rule wins.
	if got := Classify(errors.New("invalid api key")); got != CategoryAuthentication {
		t.Fatalf("Classify = %q, want authentication to outrank invalid", got)
	}
}

func TestRetryable(t *testing.T) {
	retryable := []ErrorCategory{CategoryNetwork, CategoryRateLimit, CategoryQuota}
	for _, cat := range retryable {
		if !Retryable(cat) {
			t.Fatalf("Retryable(%q) = false", cat)
		}
	}
	terminal := []ErrorCategory{
		CategoryAuthentication,
		CategoryContentSafety,
		CategoryInvalidRequest,
		CategoryServiceUnavailable,
		CategoryGeneric,
	}
	for _, cat := range terminal {
		if Retryable(cat) {
			t.Fatalf("Retryable(%q) = true", cat)
		}
	}
}

func TestDescribe_CoversEveryCategory(t *testing.T) {
	all := []ErrorCategory{
		CategoryAuthentication,
		CategoryRateLimit,
		CategoryContentSafety,
		CategoryNetwork,
		CategoryQuota,
		CategoryInvalidRequest,
		CategoryServiceUnavailable,
		CategoryGeneric,
	}
	for _, cat := range all {
		d := Describe(cat)
		if d.Message == "" || d.Remediation == "" {
			t.Fatalf("Describe(%q) incomplete: %+v", cat, d)
		}
	}
	if Describe(ErrorCategory("BOGUS")) != Describe(CategoryGeneric) {
		t.Fatal("unknown category should describe as generic")
	}
}
