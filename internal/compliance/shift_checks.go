package compliance

import (
	"fmt"

	"github.com/klinikwerk/shiftwarden/internal/domain"
)

// ValidateShift applies all per-shift checks to a single shift.
//
// Checks run in a fixed order, each contributing at most one finding:
//  1. daily hours cap (violation)
//  2. night-work hours cap (violation)
//  3. mandatory break (warning)
//
// The returned slice preserves that order and is empty for a clean shift.
func (c *Checker) ValidateShift(shift domain.Shift) ([]domain.ComplianceViolation, error) {
	hours, err := c.CalculateShiftHours(shift)
	if err != nil {
		return nil, err
	}

	var violations []domain.ComplianceViolation

	if hours > c.rules.MaxDailyHours {
		violations = append(violations, domain.ComplianceViolation{
			Type:     domain.ViolationMaxDailyHours,
			Severity: domain.SeverityViolation,
			Message: fmt.Sprintf("daily working time of %.1fh exceeds the maximum of %.0fh",
				hours, c.rules.MaxDailyHours),
			Details: domain.ViolationDetails{
				Actual:     hours,
				Limit:      c.rules.MaxDailyHours,
				Date:       shift.Date,
				EmployeeID: shift.EmployeeID,
			},
		})
	}

	night, err := c.IsNightWork(shift)
	if err != nil {
		return nil, err
	}
	if night && hours > c.rules.MaxNightShiftHours {
		violations = append(violations, domain.ComplianceViolation{
			Type:     domain.ViolationNightWorkLimit,
			Severity: domain.SeverityViolation,
			Message: fmt.Sprintf("night shift of %.1fh exceeds the night work limit of %.0fh",
				hours, c.rules.MaxNightShiftHours),
			Details: domain.ViolationDetails{
				Actual:     hours,
				Limit:      c.rules.MaxNightShiftHours,
				Date:       shift.Date,
				EmployeeID: shift.EmployeeID,
			},
		})
	}

	if hours > c.rules.BreakThresholdHours && shift.BreakMinutes < c.rules.MinBreakMinutes {
		violations = append(violations, domain.ComplianceViolation{
			Type:     domain.ViolationMissingBreak,
			Severity: domain.SeverityWarning,
			Message: fmt.Sprintf("shift of %.1fh has a %dmin break, at least %dmin required",
				hours, shift.BreakMinutes, c.rules.MinBreakMinutes),
			Details: domain.ViolationDetails{
				Actual:     float64(shift.BreakMinutes),
				Limit:      float64(c.rules.MinBreakMinutes),
				Date:       shift.Date,
				EmployeeID: shift.EmployeeID,
			},
		})
	}

	return violations, nil
}
