// Package mock provides a canned ai.Provider for testing and development.
package mock

import (
	"context"
	"log/slog"
	"time"

	"github.com/klinikwerk/shiftwarden/internal/ai"
)

// Provider is a mock AI provider for testing and development
type Provider struct {
	logger *slog.Logger

	// Configurable responses for testing
	SuggestScheduleResponse *ai.SuggestionResult
	SuggestScheduleError    error

	// Call tracking for testing
	SuggestScheduleCalls int
	LastParams           ai.SuggestScheduleParams
}

// New creates a new mock AI provider
func New(logger *slog.Logger) *Provider {
	return &Provider{
		logger: logger,
	}
}

// SuggestSchedule returns a canned compliant plan for the period.
func (p *Provider) SuggestSchedule(ctx context.Context, params ai.SuggestScheduleParams) (*ai.SuggestionResult, error) {
	p.SuggestScheduleCalls++
	p.LastParams = params

	// If a custom response or error is set, use it
	if p.SuggestScheduleError != nil {
		return nil, p.SuggestScheduleError
	}
	if p.SuggestScheduleResponse != nil {
		return p.SuggestScheduleResponse, nil
	}

	// Default canned response: trim every shift to a normal 8-hour day with
	// a half-hour break, keeping the original dates.
	shifts := make([]ai.SuggestedShift, 0, len(params.Shifts))
	for _, s := range params.Shifts {
		shifts = append(shifts, ai.SuggestedShift{
			Date:         s.Date,
			StartTime:    "08:00",
			EndTime:      "16:30",
			BreakMinutes: 30,
		})
	}

	return &ai.SuggestionResult{
		Shifts:    shifts,
		Rationale: "Normalized every shift to a standard day shift with a 30 minute break to stay within daily and rest limits.",
		Usage: ai.UsageInfo{
			Model:        "mock-ai-v1",
			InputTokens:  1250,
			OutputTokens: 850,
			CostCents:    5,
			Duration:     250 * time.Millisecond,
		},
	}, nil
}

// Reset clears call counters and custom responses for testing
func (p *Provider) Reset() {
	p.SuggestScheduleCalls = 0
	p.LastParams = ai.SuggestScheduleParams{}
	p.SuggestScheduleResponse = nil
	p.SuggestScheduleError = nil
}
