package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/klinikwerk/shiftwarden/internal/domain"
	"github.com/klinikwerk/shiftwarden/internal/metrics"
	"github.com/klinikwerk/shiftwarden/internal/repository"
)

// =============================================================================
// Interface Definition
// =============================================================================

// ScheduleService manages imported shift schedules.
type ScheduleService interface {
	// Import atomically replaces an employee's stored shifts for a period.
	// All shifts must belong to the employee and fall inside the period.
	// Returns domain.EINVALID for malformed input.
	Import(ctx context.Context, params domain.ImportScheduleParams) ([]domain.StoredShift, error)

	// List returns an employee's stored shifts in a period, ordered by date
	// then start time.
	List(ctx context.Context, params domain.SchedulePeriodParams) ([]domain.StoredShift, error)

	// ListEmployees returns every employee with at least one shift in the
	// period.
	ListEmployees(ctx context.Context, from, to string) ([]string, error)
}

// =============================================================================
// Implementation
// =============================================================================

type scheduleService struct {
	db      *sql.DB
	queries *repository.Queries
	logger  *slog.Logger
}

// NewScheduleService creates a new ScheduleService instance.
func NewScheduleService(db *sql.DB, queries *repository.Queries, logger *slog.Logger) ScheduleService {
	return &scheduleService{
		db:      db,
		queries: queries,
		logger:  logger,
	}
}

// Import atomically replaces an employee's stored shifts for a period.
//
// The previous shifts in the period are deleted and the new ones inserted in
// a single transaction, so a failed import never leaves a half-written plan.
func (s *scheduleService) Import(ctx context.Context, params domain.ImportScheduleParams) ([]domain.StoredShift, error) {
	const op = "ScheduleService.Import"

	if err := validateImportParams(params); err != nil {
		return nil, domain.Invalid(op, err.Error())
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to begin transaction")
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	removed, err := qtx.DeleteShiftsInPeriod(ctx, repository.DeleteShiftsInPeriodParams{
		EmployeeID: params.EmployeeID,
		From:       params.PeriodFrom,
		To:         params.PeriodTo,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to clear existing shifts")
	}

	stored := make([]domain.StoredShift, 0, len(params.Shifts))
	for _, shift := range params.Shifts {
		row, err := qtx.InsertShift(ctx, repository.InsertShiftParams{
			ShiftID:      shift.ID,
			EmployeeID:   params.EmployeeID,
			Date:         shift.Date,
			StartTime:    shift.StartTime,
			EndTime:      shift.EndTime,
			BreakMinutes: int32(shift.BreakMinutes),
		})
		if err != nil {
			return nil, domain.Internal(err, op, "Failed to store shift")
		}
		stored = append(stored, toStoredShift(row))
	}

	if err := tx.Commit(); err != nil {
		return nil, domain.Internal(err, op, "Failed to commit import")
	}

	metrics.SchedulesImported.Inc()
	metrics.ShiftsImported.Add(float64(len(stored)))

	s.logger.Info("schedule imported",
		"employee_id", params.EmployeeID,
		"period_from", params.PeriodFrom,
		"period_to", params.PeriodTo,
		"removed", removed,
		"stored", len(stored),
	)

	return stored, nil
}

// List returns an employee's stored shifts in a period.
func (s *scheduleService) List(ctx context.Context, params domain.SchedulePeriodParams) ([]domain.StoredShift, error) {
	const op = "ScheduleService.List"

	if params.EmployeeID == "" {
		return nil, domain.Invalid(op, "Employee ID is required")
	}
	if err := validatePeriod(params.From, params.To); err != nil {
		return nil, domain.Invalid(op, err.Error())
	}

	rows, err := s.queries.ListShifts(ctx, repository.ListShiftsParams{
		EmployeeID: params.EmployeeID,
		From:       params.From,
		To:         params.To,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to list shifts")
	}

	shifts := make([]domain.StoredShift, 0, len(rows))
	for _, row := range rows {
		shifts = append(shifts, toStoredShift(row))
	}
	return shifts, nil
}

// ListEmployees returns every employee with at least one shift in the period.
func (s *scheduleService) ListEmployees(ctx context.Context, from, to string) ([]string, error) {
	const op = "ScheduleService.ListEmployees"

	if err := validatePeriod(from, to); err != nil {
		return nil, domain.Invalid(op, err.Error())
	}

	employees, err := s.queries.ListEmployeesWithShifts(ctx, repository.ListEmployeesWithShiftsParams{
		From: from,
		To:   to,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to list employees")
	}
	return employees, nil
}

// =============================================================================
// Helpers
// =============================================================================

func toStoredShift(row repository.Shift) domain.StoredShift {
	return domain.StoredShift{
		ID:           row.ID,
		ShiftID:      row.ShiftID,
		EmployeeID:   row.EmployeeID,
		Date:         row.Date,
		StartTime:    row.StartTime,
		EndTime:      row.EndTime,
		BreakMinutes: int(row.BreakMinutes),
		CreatedAt:    row.CreatedAt,
	}
}

// validateImportParams checks the structural integrity of an import request.
func validateImportParams(params domain.ImportScheduleParams) error {
	if params.EmployeeID == "" {
		return fmt.Errorf("employee ID is required")
	}
	if err := validatePeriod(params.PeriodFrom, params.PeriodTo); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(params.Shifts))
	for i, shift := range params.Shifts {
		if shift.ID == "" {
			return fmt.Errorf("shift %d: ID is required", i)
		}
		if _, dup := seen[shift.ID]; dup {
			return fmt.Errorf("shift %d: duplicate shift ID %q", i, shift.ID)
		}
		seen[shift.ID] = struct{}{}

		if shift.EmployeeID != "" && shift.EmployeeID != params.EmployeeID {
			return fmt.Errorf("shift %q: employee ID %q does not match %q", shift.ID, shift.EmployeeID, params.EmployeeID)
		}
		if _, err := time.Parse(domain.DateLayout, shift.Date); err != nil {
			return fmt.Errorf("shift %q: invalid date %q", shift.ID, shift.Date)
		}
		if shift.Date < params.PeriodFrom || shift.Date > params.PeriodTo {
			return fmt.Errorf("shift %q: date %s is outside the period", shift.ID, shift.Date)
		}
		if _, err := time.Parse(domain.ClockLayout, shift.StartTime); err != nil {
			return fmt.Errorf("shift %q: invalid start time %q", shift.ID, shift.StartTime)
		}
		if _, err := time.Parse(domain.ClockLayout, shift.EndTime); err != nil {
			return fmt.Errorf("shift %q: invalid end time %q", shift.ID, shift.EndTime)
		}
		if shift.BreakMinutes < 0 {
			return fmt.Errorf("shift %q: break minutes must not be negative", shift.ID)
		}
	}
	return nil
}

// validatePeriod checks an inclusive date range.
func validatePeriod(from, to string) error {
	if _, err := time.Parse(domain.DateLayout, from); err != nil {
		return fmt.Errorf("invalid period start %q", from)
	}
	if _, err := time.Parse(domain.DateLayout, to); err != nil {
		return fmt.Errorf("invalid period end %q", to)
	}
	if to < from {
		return fmt.Errorf("period end %s is before start %s", to, from)
	}
	return nil
}
