package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client abstracts LLM providers for contract analysis. Implementations
// reduce their provider-specific response envelope to the raw analysis text;
// normalization into the canonical schema happens downstream.
type Client interface {
	Analyze(ctx context.Context, input AnalyzeInput) (string, error)
	Name() string
}

// AnalyzeInput captures the inputs needed for a document analysis call.
type AnalyzeInput struct {
	DocumentText string
	DocumentType string
}

// ProviderError carries the HTTP status and provider error code alongside
// the message so failures can be classified without string-parsing wrapped
// prefixes.
type ProviderError struct {
	Provider string
	Status   int
	Code     string
	Message  string
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.Status, e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s error (%s): %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Provider, e.Message)
}

// StatusOf extracts the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Status
	}
	return 0
}

// ErrNotConfigured is returned when a provider client is requested but its
// credentials are missing.
var ErrNotConfigured = errors.New("llm provider not configured")
