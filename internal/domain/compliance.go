// Package domain contains core business types and interfaces.
//
// This file defines the compliance finding types produced by the rules
// engine: violation kinds, severities, individual findings and the
// aggregated report.
package domain

// =============================================================================
// Violation Type
// =============================================================================

// ViolationType identifies which working-time rule a finding relates to.
type ViolationType string

const (
	// ViolationMaxDailyHours indicates a single shift exceeded the daily cap.
	ViolationMaxDailyHours ViolationType = "max_daily_hours"

	// ViolationMinRestTime indicates insufficient rest between two shifts.
	ViolationMinRestTime ViolationType = "min_rest_time"

	// ViolationMaxWeeklyHours indicates a week exceeded a weekly threshold.
	ViolationMaxWeeklyHours ViolationType = "max_weekly_hours"

	// ViolationAvgWeeklyHours is reserved for the averaging-period check.
	// No current check emits it.
	ViolationAvgWeeklyHours ViolationType = "avg_weekly_hours"

	// ViolationConsecutiveDays indicates too many work-days without a day off.
	ViolationConsecutiveDays ViolationType = "consecutive_days"

	// ViolationNightWorkLimit indicates a night shift exceeded the night cap.
	ViolationNightWorkLimit ViolationType = "night_work_limit"

	// ViolationMissingBreak indicates a long shift without the mandated break.
	ViolationMissingBreak ViolationType = "missing_break"
)

// String returns the string representation of the violation type.
func (t ViolationType) String() string {
	return string(t)
}

// IsValid returns true if the type is a recognized value.
func (t ViolationType) IsValid() bool {
	switch t {
	case ViolationMaxDailyHours, ViolationMinRestTime, ViolationMaxWeeklyHours,
		ViolationAvgWeeklyHours, ViolationConsecutiveDays,
		ViolationNightWorkLimit, ViolationMissingBreak:
		return true
	}
	return false
}

// =============================================================================
// Severity
// =============================================================================

// Severity is the two-level ordinal scale for compliance findings.
// SeverityViolation is strictly more severe than SeverityWarning; only
// violations affect a report's compliant flag.
type Severity string

const (
	// SeverityWarning flags a finding that should be reviewed but does not
	// make the schedule non-compliant on its own.
	SeverityWarning Severity = "warning"

	// SeverityViolation flags a breach of a hard legal limit.
	SeverityViolation Severity = "violation"
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// IsValid returns true if the severity is a recognized value.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityWarning, SeverityViolation:
		return true
	}
	return false
}

// =============================================================================
// Compliance Violation
// =============================================================================

// ViolationDetails carries the numeric evidence behind a finding.
type ViolationDetails struct {
	Actual     float64 // Measured value (hours or days)
	Limit      float64 // Threshold it was compared against
	Date       string  // Calendar date the finding refers to, if any
	EmployeeID string  // Employee the finding is attributed to, if known
}

// ComplianceViolation is a single finding produced by a validator.
//
// Findings are immutable once created and are never merged or deduplicated
// by the engine; a rendering layer may group them by type for display.
type ComplianceViolation struct {
	Type     ViolationType
	Severity Severity
	Message  string // Human-readable description, actual vs. limit
	Details  ViolationDetails
}

// =============================================================================
// Compliance Report
// =============================================================================

// Scoring weights for the composite compliance score.
const (
	ScorePenaltyViolation = 20
	ScorePenaltyWarning   = 5
)

// ComplianceReport is the aggregated result of a full compliance scan over
// one employee's shifts.
type ComplianceReport struct {
	// Compliant is true iff the report contains zero violation-severity
	// findings. A compliant report may still carry warnings.
	Compliant bool

	// Violations holds all findings in evaluation order: per-shift findings
	// first (in shift iteration order), then rest-time findings, then
	// consecutive-day findings.
	Violations []ComplianceViolation

	// Score is a 0-100 integer summarizing violation severity. 100 means a
	// clean schedule; each violation costs 20 points, each warning 5.
	Score int
}

// CountBySeverity returns the number of findings with the given severity.
func (r *ComplianceReport) CountBySeverity(sev Severity) int {
	n := 0
	for _, v := range r.Violations {
		if v.Severity == sev {
			n++
		}
	}
	return n
}

// HasWarnings returns true if the report carries any warning-level findings.
func (r *ComplianceReport) HasWarnings() bool {
	return r.CountBySeverity(SeverityWarning) > 0
}
