package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/klinikwerk/shiftwarden/internal/domain"
	"github.com/klinikwerk/shiftwarden/internal/service"
)

// ScheduleHandler serves the schedule import and query endpoints.
type ScheduleHandler struct {
	schedules service.ScheduleService
	logger    *slog.Logger
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(schedules service.ScheduleService, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, logger: logger}
}

type shiftPayload struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	BreakMinutes int    `json:"break_minutes"`
}

type importRequest struct {
	PeriodFrom string         `json:"period_from"`
	PeriodTo   string         `json:"period_to"`
	Shifts     []shiftPayload `json:"shifts"`
}

type shiftResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	BreakMinutes int       `json:"break_minutes"`
	CreatedAt    time.Time `json:"created_at"`
}

type scheduleResponse struct {
	EmployeeID string          `json:"employee_id"`
	Shifts     []shiftResponse `json:"shifts"`
}

// Import handles PUT /api/schedules/{employeeID}.
// The request replaces the employee's stored shifts for the period.
func (h *ScheduleHandler) Import(w http.ResponseWriter, r *http.Request) {
	employeeID := r.PathValue("employeeID")

	var req importRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	shifts := make([]domain.Shift, 0, len(req.Shifts))
	for _, s := range req.Shifts {
		shifts = append(shifts, domain.Shift{
			ID:           s.ID,
			EmployeeID:   employeeID,
			Date:         s.Date,
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
			BreakMinutes: s.BreakMinutes,
		})
	}

	stored, err := h.schedules.Import(r.Context(), domain.ImportScheduleParams{
		EmployeeID: employeeID,
		PeriodFrom: req.PeriodFrom,
		PeriodTo:   req.PeriodTo,
		Shifts:     shifts,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, toScheduleResponse(employeeID, stored))
}

// Get handles GET /api/schedules/{employeeID}?from=...&to=...
func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	employeeID := r.PathValue("employeeID")
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	stored, err := h.schedules.List(r.Context(), domain.SchedulePeriodParams{
		EmployeeID: employeeID,
		From:       from,
		To:         to,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, toScheduleResponse(employeeID, stored))
}

func toScheduleResponse(employeeID string, stored []domain.StoredShift) scheduleResponse {
	shifts := make([]shiftResponse, 0, len(stored))
	for _, s := range stored {
		shifts = append(shifts, shiftResponse{
			ID:           s.ShiftID,
			EmployeeID:   s.EmployeeID,
			Date:         s.Date,
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
			BreakMinutes: s.BreakMinutes,
			CreatedAt:    s.CreatedAt,
		})
	}
	return scheduleResponse{EmployeeID: employeeID, Shifts: shifts}
}
