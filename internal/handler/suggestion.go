package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/klinikwerk/shiftwarden/internal/domain"
	"github.com/klinikwerk/shiftwarden/internal/repository"
	"github.com/klinikwerk/shiftwarden/internal/worker"
)

// SuggestionHandler serves the AI schedule suggestion endpoints.
type SuggestionHandler struct {
	queries *repository.Queries
	logger  *slog.Logger
}

// NewSuggestionHandler creates a new SuggestionHandler.
func NewSuggestionHandler(queries *repository.Queries, logger *slog.Logger) *SuggestionHandler {
	return &SuggestionHandler{queries: queries, logger: logger}
}

type suggestRequest struct {
	PeriodFrom string `json:"period_from"`
	PeriodTo   string `json:"period_to"`
}

type suggestAcceptedResponse struct {
	SuggestionID string `json:"suggestion_id"`
	Status       string `json:"status"`
}

// Create handles POST /api/schedules/{employeeID}/suggest.
// The suggestion is generated asynchronously; poll GET /api/suggestions/{id}.
func (h *SuggestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "SuggestionHandler.Create"
	employeeID := r.PathValue("employeeID")

	var req suggestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	if _, err := time.Parse(domain.DateLayout, req.PeriodFrom); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Invalid period_from date"))
		return
	}
	if _, err := time.Parse(domain.DateLayout, req.PeriodTo); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Invalid period_to date"))
		return
	}

	suggestion, err := h.queries.CreateSuggestion(r.Context(), repository.CreateSuggestionParams{
		EmployeeID: employeeID,
		PeriodFrom: req.PeriodFrom,
		PeriodTo:   req.PeriodTo,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Internal(err, op, "Failed to create suggestion"))
		return
	}

	// Suggestions run with high priority so planners get answers while
	// they still have the schedule open.
	_, err = worker.EnqueueJob(r.Context(), h.queries, worker.JobTypeSuggestSchedule,
		worker.SuggestSchedulePayload{
			SuggestionID: suggestion.ID,
			EmployeeID:   employeeID,
			PeriodFrom:   req.PeriodFrom,
			PeriodTo:     req.PeriodTo,
		},
		worker.WithPriority(worker.PriorityHigh),
	)
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Internal(err, op, "Failed to enqueue suggestion"))
		return
	}

	respondJSON(w, http.StatusAccepted, suggestAcceptedResponse{
		SuggestionID: suggestion.ID.String(),
		Status:       suggestion.Status,
	})
}

type suggestionResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	PeriodFrom   string          `json:"period_from"`
	PeriodTo     string          `json:"period_to"`
	Status       string          `json:"status"`
	Content      json.RawMessage `json:"content,omitempty"`
	Model        string          `json:"model,omitempty"`
	InputTokens  int32           `json:"input_tokens"`
	OutputTokens int32           `json:"output_tokens"`
	CostCents    int32           `json:"cost_cents"`
	Error        string          `json:"error,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Get handles GET /api/suggestions/{id}.
func (h *SuggestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "SuggestionHandler.Get"

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Invalid suggestion ID"))
		return
	}

	suggestion, err := h.queries.GetSuggestion(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ErrorResponse(w, r, h.logger, domain.NotFound(op, "suggestion", id.String()))
			return
		}
		ErrorResponse(w, r, h.logger, domain.Internal(err, op, "Failed to load suggestion"))
		return
	}

	respondJSON(w, http.StatusOK, toSuggestionResponse(suggestion))
}

// GetLatest handles GET /api/schedules/{employeeID}/suggestions/latest.
func (h *SuggestionHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	const op = "SuggestionHandler.GetLatest"
	employeeID := r.PathValue("employeeID")

	suggestion, err := h.queries.GetLatestSuggestion(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			ErrorResponse(w, r, h.logger, domain.NotFound(op, "suggestion for employee", employeeID))
			return
		}
		ErrorResponse(w, r, h.logger, domain.Internal(err, op, "Failed to load suggestion"))
		return
	}

	respondJSON(w, http.StatusOK, toSuggestionResponse(suggestion))
}

func toSuggestionResponse(s repository.Suggestion) suggestionResponse {
	resp := suggestionResponse{
		ID:           s.ID.String(),
		EmployeeID:   s.EmployeeID,
		PeriodFrom:   s.PeriodFrom,
		PeriodTo:     s.PeriodTo,
		Status:       s.Status,
		Model:        s.Model,
		InputTokens:  s.InputTokens,
		OutputTokens: s.OutputTokens,
		CostCents:    s.CostCents,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if s.Content != "" {
		resp.Content = json.RawMessage(s.Content)
	}
	if s.LastError.Valid {
		resp.Error = s.LastError.String
	}
	return resp
}
