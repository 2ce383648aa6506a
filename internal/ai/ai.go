// Package ai defines the provider interface for AI-assisted schedule
// suggestions and the shared types exchanged with a provider.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/klinikwerk/shiftwarden/internal/domain"
)

// Provider defines the interface for AI-powered scheduling assistance.
type Provider interface {
	// SuggestSchedule proposes a revised shift plan for one employee that
	// resolves the compliance findings in the current plan.
	SuggestSchedule(ctx context.Context, params SuggestScheduleParams) (*SuggestionResult, error)
}

// SuggestScheduleParams contains everything a provider needs to reason about
// one employee's scheduling period.
type SuggestScheduleParams struct {
	EmployeeID string
	PeriodFrom string // inclusive, YYYY-MM-DD
	PeriodTo   string // inclusive, YYYY-MM-DD

	// Shifts is the current plan for the period.
	Shifts []domain.Shift

	// Rules are the working time limits the suggestion must respect.
	Rules domain.RuleSet

	// Violations are the findings in the current plan, if any.
	Violations []domain.ComplianceViolation
}

// SuggestionResult is a proposed shift plan with the provider's reasoning.
type SuggestionResult struct {
	Shifts    []SuggestedShift // Proposed replacement plan for the period
	Rationale string           // Plain-language explanation of the changes
	Usage     UsageInfo        // Token usage and cost information
}

// SuggestedShift is one shift in a proposed plan.
type SuggestedShift struct {
	Date         string `json:"date"`          // YYYY-MM-DD
	StartTime    string `json:"start_time"`    // HH:MM
	EndTime      string `json:"end_time"`      // HH:MM
	BreakMinutes int    `json:"break_minutes"` // Unpaid break during the shift
}

// UsageInfo tracks API usage for cost monitoring.
type UsageInfo struct {
	Model        string        // AI model used
	InputTokens  int           // Tokens in the request
	OutputTokens int           // Tokens in the response
	CostCents    int           // Estimated cost in cents
	Duration     time.Duration // Request duration
}

// ProviderConfig contains common configuration for AI providers.
type ProviderConfig struct {
	MaxRetries     int           // Maximum retry attempts for transient errors
	RetryBaseDelay time.Duration // Base delay for exponential backoff
	RequestTimeout time.Duration // Timeout for individual requests
}

// Error codes for AI provider operations
var (
	// EAIRateLimit indicates the API rate limit has been exceeded
	EAIRateLimit = errors.New("ai provider rate limit exceeded")

	// EAIInvalidInput indicates the request parameters cannot be processed
	EAIInvalidInput = errors.New("invalid suggestion input")

	// EAITimeout indicates the request timed out
	EAITimeout = errors.New("ai request timed out")

	// EAIUnavailable indicates the AI service is temporarily unavailable
	EAIUnavailable = errors.New("ai service temporarily unavailable")

	// EAIUnauthorized indicates invalid API credentials
	EAIUnauthorized = errors.New("ai provider authentication failed")
)

// IsRetryable returns true if the error is a transient error that can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, EAIRateLimit) ||
		errors.Is(err, EAITimeout) ||
		errors.Is(err, EAIUnavailable)
}

// WrapError wraps an error with context about the AI operation.
func WrapError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("ai %s: %w", operation, err)
}
