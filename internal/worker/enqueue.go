package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/klinikwerk/shiftwarden/internal/repository"
)

// Job type constants - these must match the JobHandler.Type() values.
const (
	JobTypeComplianceScan  = "compliance_scan"
	JobTypeExportReport    = "export_report"
	JobTypeSuggestSchedule = "suggest_schedule"
)

// Priority constants for job scheduling.
const (
	PriorityLow    = 0
	PriorityNormal = 10
	PriorityHigh   = 20
)

// ComplianceScanPayload is the payload for period-wide compliance scan jobs.
type ComplianceScanPayload struct {
	PeriodFrom string `json:"period_from"`
	PeriodTo   string `json:"period_to"`
}

// ExportReportPayload is the payload for report export jobs.
type ExportReportPayload struct {
	EmployeeID string `json:"employee_id"`
	PeriodFrom string `json:"period_from"`
	PeriodTo   string `json:"period_to"`
	Format     string `json:"format"` // "csv" or "html"
}

// SuggestSchedulePayload is the payload for AI schedule suggestion jobs.
type SuggestSchedulePayload struct {
	SuggestionID uuid.UUID `json:"suggestion_id"`
	EmployeeID   string    `json:"employee_id"`
	PeriodFrom   string    `json:"period_from"`
	PeriodTo     string    `json:"period_to"`
}

// EnqueueOption is a functional option for customizing job enqueue parameters.
type EnqueueOption func(*repository.EnqueueJobParams)

// WithPriority sets the job priority.
func WithPriority(priority int32) EnqueueOption {
	return func(p *repository.EnqueueJobParams) {
		p.Priority = priority
	}
}

// WithMaxAttempts sets the maximum number of retry attempts.
func WithMaxAttempts(attempts int32) EnqueueOption {
	return func(p *repository.EnqueueJobParams) {
		p.MaxAttempts = attempts
	}
}

// WithDelay schedules the job to run after a delay.
func WithDelay(delay time.Duration) EnqueueOption {
	return func(p *repository.EnqueueJobParams) {
		p.ScheduledAt = time.Now().Add(delay)
	}
}

// EnqueueJob marshals the payload and inserts a pending job.
func EnqueueJob(
	ctx context.Context,
	queries *repository.Queries,
	jobType string,
	payload interface{},
	opts ...EnqueueOption,
) (repository.Job, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return repository.Job{}, fmt.Errorf("marshal payload: %w", err)
	}

	params := repository.EnqueueJobParams{
		JobType:     jobType,
		Payload:     payloadJSON,
		Priority:    PriorityNormal,
		MaxAttempts: 3,
		ScheduledAt: time.Now(),
	}
	for _, opt := range opts {
		opt(&params)
	}

	job, err := queries.EnqueueJob(ctx, params)
	if err != nil {
		return repository.Job{}, fmt.Errorf("enqueue job: %w", err)
	}
	return job, nil
}
