package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/klinikwerk/shiftwarden/internal/ai"
	"github.com/klinikwerk/shiftwarden/internal/domain"
	"github.com/klinikwerk/shiftwarden/internal/metrics"
	"github.com/klinikwerk/shiftwarden/internal/repository"
	"github.com/klinikwerk/shiftwarden/internal/service"
	"github.com/klinikwerk/shiftwarden/internal/worker"
)

// SuggestScheduleHandler processes jobs that ask the AI provider for a
// compliant revision of an employee's shift plan.
type SuggestScheduleHandler struct {
	queries    *repository.Queries
	schedules  service.ScheduleService
	compliance service.ComplianceService
	provider   ai.Provider
	logger     *slog.Logger
}

// NewSuggestScheduleHandler creates a new handler for suggestion jobs.
func NewSuggestScheduleHandler(
	queries *repository.Queries,
	schedules service.ScheduleService,
	compliance service.ComplianceService,
	provider ai.Provider,
	logger *slog.Logger,
) *SuggestScheduleHandler {
	return &SuggestScheduleHandler{
		queries:    queries,
		schedules:  schedules,
		compliance: compliance,
		provider:   provider,
		logger:     logger,
	}
}

// Type returns the job type identifier.
func (h *SuggestScheduleHandler) Type() string {
	return worker.JobTypeSuggestSchedule
}

// Handle executes the suggestion job.
func (h *SuggestScheduleHandler) Handle(ctx context.Context, payload []byte) error {
	var p worker.SuggestSchedulePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return worker.NewPermanentError(fmt.Errorf("invalid payload: %w", err))
	}

	h.logger.Info("Generating schedule suggestion",
		"suggestion_id", p.SuggestionID,
		"employee_id", p.EmployeeID,
		"period_from", p.PeriodFrom,
		"period_to", p.PeriodTo,
	)

	result, err := h.generate(ctx, p)
	if err != nil {
		// Record the failure on the suggestion row so the API can surface it,
		// then let the worker decide about retries.
		if dbErr := h.queries.FailSuggestion(ctx, repository.FailSuggestionParams{
			ID:           p.SuggestionID,
			ErrorMessage: sql.NullString{String: err.Error(), Valid: true},
		}); dbErr != nil {
			h.logger.Error("Failed to record suggestion failure", "suggestion_id", p.SuggestionID, "error", dbErr)
		}

		metrics.AIAPICalls.WithLabelValues("error").Inc()

		if !ai.IsRetryable(err) {
			return worker.NewPermanentError(err)
		}
		return err
	}

	content, err := json.Marshal(suggestionContent{
		Shifts:    result.Shifts,
		Rationale: result.Rationale,
	})
	if err != nil {
		return worker.NewPermanentError(fmt.Errorf("marshal suggestion content: %w", err))
	}

	if err := h.queries.CompleteSuggestion(ctx, repository.CompleteSuggestionParams{
		ID:           p.SuggestionID,
		Content:      string(content),
		Model:        result.Usage.Model,
		InputTokens:  int32(result.Usage.InputTokens),
		OutputTokens: int32(result.Usage.OutputTokens),
		CostCents:    int32(result.Usage.CostCents),
	}); err != nil {
		return fmt.Errorf("complete suggestion: %w", err)
	}

	metrics.AIAPICalls.WithLabelValues("success").Inc()
	metrics.AIUsage(result.Usage.InputTokens, result.Usage.OutputTokens, result.Usage.CostCents)

	h.logger.Info("Schedule suggestion completed",
		"suggestion_id", p.SuggestionID,
		"employee_id", p.EmployeeID,
		"model", result.Usage.Model,
		"proposed_shifts", len(result.Shifts),
		"cost_cents", result.Usage.CostCents,
	)

	return nil
}

// generate gathers the employee's plan and findings and calls the provider.
func (h *SuggestScheduleHandler) generate(ctx context.Context, p worker.SuggestSchedulePayload) (*ai.SuggestionResult, error) {
	period := domain.SchedulePeriodParams{
		EmployeeID: p.EmployeeID,
		From:       p.PeriodFrom,
		To:         p.PeriodTo,
	}

	stored, err := h.schedules.List(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}

	shifts := make([]domain.Shift, 0, len(stored))
	for _, row := range stored {
		shifts = append(shifts, row.ToShift())
	}

	complianceReport, err := h.compliance.Evaluate(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("evaluate compliance: %w", err)
	}

	return h.provider.SuggestSchedule(ctx, ai.SuggestScheduleParams{
		EmployeeID: p.EmployeeID,
		PeriodFrom: p.PeriodFrom,
		PeriodTo:   p.PeriodTo,
		Shifts:     shifts,
		Rules:      h.compliance.Rules(),
		Violations: complianceReport.Violations,
	})
}

// suggestionContent is the JSON stored in the suggestions.content column.
type suggestionContent struct {
	Shifts    []ai.SuggestedShift `json:"shifts"`
	Rationale string              `json:"rationale"`
}
