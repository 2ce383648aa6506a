package compliance

import (
	"github.com/klinikwerk/shiftwarden/internal/domain"
)

// CheckFullCompliance runs every scheduled check over one employee's shifts
// and aggregates the findings into a report.
//
// Per-shift findings come first, in input order, followed by rest-time and
// consecutive-day findings. The weekly-hours check is not part of the full
// scan; it covers a single explicit week and is invoked separately via
// ValidateWeeklyHours.
//
// An empty shift list yields a compliant report with a score of 100.
func (c *Checker) CheckFullCompliance(shifts []domain.Shift) (domain.ComplianceReport, error) {
	var violations []domain.ComplianceViolation

	for _, shift := range shifts {
		found, err := c.ValidateShift(shift)
		if err != nil {
			return domain.ComplianceReport{}, err
		}
		violations = append(violations, found...)
	}

	rest, err := c.ValidateRestTime(shifts)
	if err != nil {
		return domain.ComplianceReport{}, err
	}
	violations = append(violations, rest...)

	consecutive, err := c.ValidateConsecutiveDays(shifts)
	if err != nil {
		return domain.ComplianceReport{}, err
	}
	violations = append(violations, consecutive...)

	report := domain.ComplianceReport{
		Compliant:  true,
		Violations: violations,
		Score:      100,
	}
	for _, v := range violations {
		switch v.Severity {
		case domain.SeverityViolation:
			report.Compliant = false
			report.Score -= domain.ScorePenaltyViolation
		case domain.SeverityWarning:
			report.Score -= domain.ScorePenaltyWarning
		}
	}
	if report.Score < 0 {
		report.Score = 0
	}
	return report, nil
}
