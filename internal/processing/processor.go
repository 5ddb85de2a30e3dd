package processing

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"contract-backend/internal/analysis"
	"contract-backend/internal/llm"
	"contract-backend/internal/resilience"
	"contract-backend/internal/shared/metrics"
	"contract-backend/internal/shared/telemetry"
)

// Options tunes the orchestrator. Zero values fall back to the defaults.
type Options struct {
	Retry            resilience.RetryConfig
	BreakerThreshold int
	BreakerTimeout   time.Duration
	FallbackEnabled  bool
}

// Processor routes one document-analysis request through the primary
// provider (with retry, behind a circuit breaker), the secondary provider,
// and finally the synthetic fallback. Its counters are process-wide state
// with no persistence across restarts.
type Processor struct {
	primary   llm.Client
	secondary llm.Client

	retry           resilience.RetryConfig
	fallbackEnabled bool

	primaryBreaker   *resilience.Breaker
	secondaryBreaker *resilience.Breaker

	totalRequests    atomic.Uint64
	primaryRequests  atomic.Uint64
	fallbackRequests atomic.Uint64
	failedRequests   atomic.Uint64
}

// ErrorDetails is the serializable failure description attached to degraded
// or failed results. Message and Remediation are user-facing; the technical
// error stays in logs.
type ErrorDetails struct {
	Type        resilience.ErrorCategory `json:"type"`
	Message     string                   `json:"message"`
	Remediation string                   `json:"remediation,omitempty"`
}

// Result is the uniform outcome shape regardless of which path produced the
// analysis. It serializes directly to the HTTP response body.
type Result struct {
	Success      bool               `json:"success"`
	Analysis     *analysis.Analysis `json:"analysis,omitempty"`
	Confidence   float64            `json:"confidence,omitempty"`
	UsingPrimary bool               `json:"usingPrimary"`
	ErrorDetails *ErrorDetails      `json:"errorDetails,omitempty"`
}

// Stats is a snapshot of the orchestrator's running counters and breaker
// states.
type Stats struct {
	TotalRequests    uint64                   `json:"totalRequests"`
	PrimaryRequests  uint64                   `json:"primaryRequests"`
	FallbackRequests uint64                   `json:"fallbackRequests"`
	FailedRequests   uint64                   `json:"failedRequests"`
	PrimaryBreaker   resilience.BreakerState  `json:"primaryBreaker"`
	SecondaryBreaker *resilience.BreakerState `json:"secondaryBreaker,omitempty"`
}

// ErrNoProviders is returned when neither provider is configured and
// fallback is disabled.
var ErrNoProviders = errors.New("no inference providers configured")

// New constructs a Processor. Either client may be nil when unconfigured.
func New(primary, secondary llm.Client, opts Options) *Processor {
	retry := opts.Retry
	if retry.MaxAttempts == 0 {
		retry = resilience.DefaultRetryConfig()
	}
	return &Processor{
		primary:          primary,
		secondary:        secondary,
		retry:            retry,
		fallbackEnabled:  opts.FallbackEnabled,
		primaryBreaker:   resilience.NewBreaker(opts.BreakerThreshold, opts.BreakerTimeout),
		secondaryBreaker: resilience.NewBreaker(opts.BreakerThreshold, opts.BreakerTimeout),
	}
}

// Process analyzes one document. The returned Result always has the same
// top-level shape whichever path produced it; the error is non-nil only when
// no path could produce an analysis.
func (p *Processor) Process(ctx context.Context, documentText, documentType string) (Result, error) {
	p.totalRequests.Add(1)
	metrics.IncAnalysisStarted()
	startedAt := time.Now()

	input := llm.AnalyzeInput{DocumentText: documentText, DocumentType: documentType}

	var lastErr error
	category := resilience.CategoryGeneric

	if p.primary != nil {
		if p.primaryBreaker.Allow() {
			raw, err := resilience.WithRetry(ctx, p.primary.Name(), p.retry, func(ctx context.Context) (string, error) {
				return p.primary.Analyze(ctx, input)
			})
			if err == nil {
				a := analysis.Normalize(raw, documentText)
				p.primaryRequests.Add(1)
				p.observeCompleted(startedAt, "primary")
				return Result{
					Success:      true,
					Analysis:     &a,
					Confidence:   a.QualityMetrics.ClauseDetectionConfidence,
					UsingPrimary: true,
				}, nil
			}
			lastErr = err
			category = resilience.Classify(err)
			p.primaryBreaker.Record(category)
			telemetry.Error("processing.primary_failed", map[string]any{
				"provider": p.primary.Name(),
				"category": string(category),
				"error":    sanitizeError(err),
			})
		} else {
			lastErr = resilience.ErrCircuitOpen
			category = resilience.CategoryServiceUnavailable
			telemetry.Info("processing.primary_skipped", map[string]any{
				"provider": p.primary.Name(),
				"reason":   "circuit open",
			})
		}
	} else {
		lastErr = llm.ErrNotConfigured
		category = resilience.CategoryServiceUnavailable
	}

	if p.secondary != nil && ctx.Err() == nil && p.secondaryBreaker.Allow() {
		// One call only; the secondary is the failover path, not another
		// retry budget.
		raw, err := p.secondary.Analyze(ctx, input)
		if err == nil {
			a := analysis.Normalize(raw, documentText)
			p.fallbackRequests.Add(1)
			p.observeCompleted(startedAt, "secondary")
			detail := resilience.Describe(category)
			return Result{
				Success:      true,
				Analysis:     &a,
				Confidence:   a.QualityMetrics.ClauseDetectionConfidence,
				UsingPrimary: false,
				ErrorDetails: &ErrorDetails{
					Type:        category,
					Message:     detail.Message,
					Remediation: detail.Remediation,
				},
			}, nil
		}
		secondaryCategory := resilience.Classify(err)
		p.secondaryBreaker.Record(secondaryCategory)
		telemetry.Error("processing.secondary_failed", map[string]any{
			"provider": p.secondary.Name(),
			"category": string(secondaryCategory),
			"error":    sanitizeError(err),
		})
		if lastErr == nil || errors.Is(lastErr, llm.ErrNotConfigured) {
			lastErr = err
			category = secondaryCategory
		}
	}

	detail := resilience.Describe(category)
	if p.fallbackEnabled {
		a := analysis.SyntheticAnalysis(documentText, detail.Message)
		p.fallbackRequests.Add(1)
		p.observeCompleted(startedAt, "synthetic")
		return Result{
			Success:      true,
			Analysis:     &a,
			Confidence:   a.QualityMetrics.ClauseDetectionConfidence,
			UsingPrimary: false,
			ErrorDetails: &ErrorDetails{
				Type:        category,
				Message:     detail.Message,
				Remediation: detail.Remediation,
			},
		}, nil
	}

	p.failedRequests.Add(1)
	metrics.IncAnalysisFailed()
	if lastErr == nil {
		lastErr = ErrNoProviders
	}
	return Result{
		Success:      false,
		UsingPrimary: false,
		ErrorDetails: &ErrorDetails{
			Type:        category,
			Message:     detail.Message,
			Remediation: detail.Remediation,
		},
	}, lastErr
}

// Stats returns a snapshot of the running counters.
func (p *Processor) Stats() Stats {
	s := Stats{
		TotalRequests:    p.totalRequests.Load(),
		PrimaryRequests:  p.primaryRequests.Load(),
		FallbackRequests: p.fallbackRequests.Load(),
		FailedRequests:   p.failedRequests.Load(),
		PrimaryBreaker:   p.primaryBreaker.State(),
	}
	if p.secondary != nil {
		state := p.secondaryBreaker.State()
		s.SecondaryBreaker = &state
	}
	return s
}

func (p *Processor) observeCompleted(startedAt time.Time, path string) {
	metrics.IncAnalysisCompleted(path)
	metrics.ObserveAnalysisDurationMs(float64(time.Since(startedAt).Microseconds()) / 1000.0)
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
