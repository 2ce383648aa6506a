package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Suggestion is a suggestions table row: one AI schedule-suggestion request
// and, once completed, its generated text and usage accounting.
type Suggestion struct {
	ID           uuid.UUID
	EmployeeID   string
	PeriodFrom   string
	PeriodTo     string
	Status       string
	Content      string
	Model        string
	InputTokens  int32
	OutputTokens int32
	CostCents    int32
	LastError    sql.NullString
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateSuggestionParams contains the values for inserting a pending suggestion.
type CreateSuggestionParams struct {
	EmployeeID string
	PeriodFrom string
	PeriodTo   string
}

const createSuggestion = `
INSERT INTO suggestions (employee_id, period_from, period_to)
VALUES ($1, $2, $3)
RETURNING id, employee_id, period_from, period_to, status, content, model,
          input_tokens, output_tokens, cost_cents, last_error, created_at, updated_at
`

// CreateSuggestion inserts a pending suggestion request.
func (q *Queries) CreateSuggestion(ctx context.Context, arg CreateSuggestionParams) (Suggestion, error) {
	row := q.db.QueryRowContext(ctx, createSuggestion, arg.EmployeeID, arg.PeriodFrom, arg.PeriodTo)
	return scanSuggestion(row)
}

// CompleteSuggestionParams records a finished suggestion.
type CompleteSuggestionParams struct {
	ID           uuid.UUID
	Content      string
	Model        string
	InputTokens  int32
	OutputTokens int32
	CostCents    int32
}

const completeSuggestion = `
UPDATE suggestions
SET status = 'completed', content = $2, model = $3,
    input_tokens = $4, output_tokens = $5, cost_cents = $6,
    last_error = NULL, updated_at = now()
WHERE id = $1
`

// CompleteSuggestion stores the generated text and usage for a suggestion.
func (q *Queries) CompleteSuggestion(ctx context.Context, arg CompleteSuggestionParams) error {
	_, err := q.db.ExecContext(ctx, completeSuggestion,
		arg.ID, arg.Content, arg.Model, arg.InputTokens, arg.OutputTokens, arg.CostCents)
	return err
}

// FailSuggestionParams records a failed suggestion.
type FailSuggestionParams struct {
	ID           uuid.UUID
	ErrorMessage sql.NullString
}

const failSuggestion = `
UPDATE suggestions
SET status = 'failed', last_error = $2, updated_at = now()
WHERE id = $1
`

// FailSuggestion marks a suggestion request as failed.
func (q *Queries) FailSuggestion(ctx context.Context, arg FailSuggestionParams) error {
	_, err := q.db.ExecContext(ctx, failSuggestion, arg.ID, arg.ErrorMessage)
	return err
}

const getSuggestion = `
SELECT id, employee_id, period_from, period_to, status, content, model,
       input_tokens, output_tokens, cost_cents, last_error, created_at, updated_at
FROM suggestions
WHERE id = $1
`

// GetSuggestion fetches a suggestion by ID.
func (q *Queries) GetSuggestion(ctx context.Context, id uuid.UUID) (Suggestion, error) {
	row := q.db.QueryRowContext(ctx, getSuggestion, id)
	return scanSuggestion(row)
}

const getLatestSuggestion = `
SELECT id, employee_id, period_from, period_to, status, content, model,
       input_tokens, output_tokens, cost_cents, last_error, created_at, updated_at
FROM suggestions
WHERE employee_id = $1
ORDER BY created_at DESC
LIMIT 1
`

// GetLatestSuggestion fetches an employee's most recent suggestion.
func (q *Queries) GetLatestSuggestion(ctx context.Context, employeeID string) (Suggestion, error) {
	row := q.db.QueryRowContext(ctx, getLatestSuggestion, employeeID)
	return scanSuggestion(row)
}

func scanSuggestion(row *sql.Row) (Suggestion, error) {
	var s Suggestion
	err := row.Scan(&s.ID, &s.EmployeeID, &s.PeriodFrom, &s.PeriodTo, &s.Status,
		&s.Content, &s.Model, &s.InputTokens, &s.OutputTokens, &s.CostCents,
		&s.LastError, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}
