package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/klinikwerk/shiftwarden/internal/compliance"
	"github.com/klinikwerk/shiftwarden/internal/domain"
	"github.com/klinikwerk/shiftwarden/internal/metrics"
)

// =============================================================================
// Interface Definition
// =============================================================================

// ComplianceService evaluates stored schedules against the working time rules.
type ComplianceService interface {
	// Evaluate runs a full compliance scan over an employee's stored shifts
	// in the period.
	// Returns domain.EINVALID if the stored shifts cannot be evaluated.
	Evaluate(ctx context.Context, params domain.SchedulePeriodParams) (domain.ComplianceReport, error)

	// EvaluateWeek checks the calendar week starting at weekStart against the
	// weekly hour thresholds. The full scan does not cover weekly totals, so
	// this is a separate call.
	EvaluateWeek(ctx context.Context, employeeID, weekStart string) ([]domain.ComplianceViolation, error)

	// Rules returns the thresholds the service evaluates against.
	Rules() domain.RuleSet
}

// =============================================================================
// Implementation
// =============================================================================

type complianceService struct {
	schedules ScheduleService
	checker   *compliance.Checker
	logger    *slog.Logger
}

// NewComplianceService creates a new ComplianceService instance.
func NewComplianceService(schedules ScheduleService, checker *compliance.Checker, logger *slog.Logger) ComplianceService {
	return &complianceService{
		schedules: schedules,
		checker:   checker,
		logger:    logger,
	}
}

// Evaluate runs a full compliance scan over an employee's stored shifts.
func (s *complianceService) Evaluate(ctx context.Context, params domain.SchedulePeriodParams) (domain.ComplianceReport, error) {
	const op = "ComplianceService.Evaluate"

	stored, err := s.schedules.List(ctx, params)
	if err != nil {
		return domain.ComplianceReport{}, err
	}

	shifts := make([]domain.Shift, 0, len(stored))
	for _, row := range stored {
		shifts = append(shifts, row.ToShift())
	}

	report, err := s.checker.CheckFullCompliance(shifts)
	if err != nil {
		return domain.ComplianceReport{}, domain.Errorf(domain.EINVALID, op, "stored schedule cannot be evaluated: %v", err)
	}

	metrics.ComplianceChecks.Inc()
	for _, v := range report.Violations {
		metrics.ComplianceFindings.WithLabelValues(string(v.Type), string(v.Severity)).Inc()
	}

	s.logger.Info("compliance evaluated",
		"employee_id", params.EmployeeID,
		"from", params.From,
		"to", params.To,
		"shifts", len(shifts),
		"findings", len(report.Violations),
		"score", report.Score,
		"compliant", report.Compliant,
	)

	return report, nil
}

// EvaluateWeek checks one calendar week against the weekly hour thresholds.
func (s *complianceService) EvaluateWeek(ctx context.Context, employeeID, weekStart string) ([]domain.ComplianceViolation, error) {
	const op = "ComplianceService.EvaluateWeek"

	start, err := time.Parse(domain.DateLayout, weekStart)
	if err != nil {
		return nil, domain.Invalid(op, "invalid week start date")
	}
	weekEnd := start.AddDate(0, 0, 6).Format(domain.DateLayout)

	stored, err := s.schedules.List(ctx, domain.SchedulePeriodParams{
		EmployeeID: employeeID,
		From:       weekStart,
		To:         weekEnd,
	})
	if err != nil {
		return nil, err
	}

	shifts := make([]domain.Shift, 0, len(stored))
	for _, row := range stored {
		shifts = append(shifts, row.ToShift())
	}

	findings, err := s.checker.ValidateWeeklyHours(shifts, weekStart)
	if err != nil {
		return nil, domain.Errorf(domain.EINVALID, op, "stored schedule cannot be evaluated: %v", err)
	}

	for _, v := range findings {
		metrics.ComplianceFindings.WithLabelValues(string(v.Type), string(v.Severity)).Inc()
	}

	return findings, nil
}

// Rules returns the thresholds the service evaluates against.
func (s *complianceService) Rules() domain.RuleSet {
	return s.checker.Rules()
}
