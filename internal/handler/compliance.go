package handler

import (
	"log/slog"
	"net/http"

	"github.com/klinikwerk/shiftwarden/internal/domain"
	"github.com/klinikwerk/shiftwarden/internal/service"
)

// ComplianceHandler serves the compliance evaluation endpoints.
type ComplianceHandler struct {
	compliance service.ComplianceService
	logger     *slog.Logger
}

// NewComplianceHandler creates a new ComplianceHandler.
func NewComplianceHandler(compliance service.ComplianceService, logger *slog.Logger) *ComplianceHandler {
	return &ComplianceHandler{compliance: compliance, logger: logger}
}

type violationResponse struct {
	Type     string  `json:"type"`
	Severity string  `json:"severity"`
	Message  string  `json:"message"`
	Date     string  `json:"date,omitempty"`
	Actual   float64 `json:"actual"`
	Limit    float64 `json:"limit"`
}

type complianceResponse struct {
	EmployeeID string              `json:"employee_id"`
	PeriodFrom string              `json:"period_from"`
	PeriodTo   string              `json:"period_to"`
	Compliant  bool                `json:"compliant"`
	Score      int                 `json:"score"`
	Violations []violationResponse `json:"violations"`
}

// Get handles GET /api/compliance/{employeeID}?from=...&to=...
// It runs a full compliance scan over the employee's stored shifts.
func (h *ComplianceHandler) Get(w http.ResponseWriter, r *http.Request) {
	employeeID := r.PathValue("employeeID")
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	report, err := h.compliance.Evaluate(r.Context(), domain.SchedulePeriodParams{
		EmployeeID: employeeID,
		From:       from,
		To:         to,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, complianceResponse{
		EmployeeID: employeeID,
		PeriodFrom: from,
		PeriodTo:   to,
		Compliant:  report.Compliant,
		Score:      report.Score,
		Violations: toViolationResponses(report.Violations),
	})
}

type weeklyResponse struct {
	EmployeeID string              `json:"employee_id"`
	WeekStart  string              `json:"week_start"`
	Violations []violationResponse `json:"violations"`
}

// GetWeekly handles GET /api/compliance/{employeeID}/weekly?week_start=...
// Weekly totals are not part of the full scan, so they have their own
// endpoint.
func (h *ComplianceHandler) GetWeekly(w http.ResponseWriter, r *http.Request) {
	employeeID := r.PathValue("employeeID")
	weekStart := r.URL.Query().Get("week_start")

	findings, err := h.compliance.EvaluateWeek(r.Context(), employeeID, weekStart)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, weeklyResponse{
		EmployeeID: employeeID,
		WeekStart:  weekStart,
		Violations: toViolationResponses(findings),
	})
}

type rulesResponse struct {
	MinDailyRestHours      float64 `json:"min_daily_rest_hours"`
	MaxDailyHours          float64 `json:"max_daily_hours"`
	NormalDailyHours       float64 `json:"normal_daily_hours"`
	NormalWeeklyHours      float64 `json:"normal_weekly_hours"`
	AvgWeeklyMaxHours      float64 `json:"avg_weekly_max_hours"`
	MaxWeeklyHours         float64 `json:"max_weekly_hours"`
	AveragingPeriodWeeks   int     `json:"averaging_period_weeks"`
	NightWorkStartHour     int     `json:"night_work_start_hour"`
	NightWorkEndHour       int     `json:"night_work_end_hour"`
	MaxNightShiftHours     float64 `json:"max_night_shift_hours"`
	BreakThresholdHours    float64 `json:"break_threshold_hours"`
	MinBreakMinutes        int     `json:"min_break_minutes"`
	MaxConsecutiveWorkDays int     `json:"max_consecutive_work_days"`
}

// GetRules handles GET /api/rules.
// It publishes the thresholds every schedule is evaluated against.
func (h *ComplianceHandler) GetRules(w http.ResponseWriter, r *http.Request) {
	rules := h.compliance.Rules()
	respondJSON(w, http.StatusOK, rulesResponse{
		MinDailyRestHours:      rules.MinDailyRestHours,
		MaxDailyHours:          rules.MaxDailyHours,
		NormalDailyHours:       rules.NormalDailyHours,
		NormalWeeklyHours:      rules.NormalWeeklyHours,
		AvgWeeklyMaxHours:      rules.AvgWeeklyMaxHours,
		MaxWeeklyHours:         rules.MaxWeeklyHours,
		AveragingPeriodWeeks:   rules.AveragingPeriodWeeks,
		NightWorkStartHour:     rules.NightWorkStartHour,
		NightWorkEndHour:       rules.NightWorkEndHour,
		MaxNightShiftHours:     rules.MaxNightShiftHours,
		BreakThresholdHours:    rules.BreakThresholdHours,
		MinBreakMinutes:        rules.MinBreakMinutes,
		MaxConsecutiveWorkDays: rules.MaxConsecutiveWorkDays,
	})
}

func toViolationResponses(violations []domain.ComplianceViolation) []violationResponse {
	out := make([]violationResponse, 0, len(violations))
	for _, v := range violations {
		out = append(out, violationResponse{
			Type:     string(v.Type),
			Severity: string(v.Severity),
			Message:  v.Message,
			Date:     v.Details.Date,
			Actual:   v.Details.Actual,
			Limit:    v.Details.Limit,
		})
	}
	return out
}
