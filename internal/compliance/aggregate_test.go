package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klinikwerk/shiftwarden/internal/domain"
)

func TestCheckFullCompliance_EmptySchedule(t *testing.T) {
	checker := NewChecker(domain.DefaultRuleSet())

	report, err := checker.CheckFullCompliance(nil)
	require.NoError(t, err)

	assert.True(t, report.Compliant)
	assert.Empty(t, report.Violations)
	assert.Equal(t, 100, report.Score)
}

func TestCheckFullCompliance_ScoreArithmetic(t *testing.T) {
	checker := NewChecker(domain.DefaultRuleSet())

	// Shifts a week apart so neither the rest nor the consecutive-day check
	// contributes: two violations and one warning, 100 - 40 - 5 = 55.
	shifts := []domain.Shift{
		// 12.5h day: daily cap violation, break satisfied.
		{ID: "s1", EmployeeID: "emp-1", Date: "2025-03-03", StartTime: "07:00", EndTime: "20:00", BreakMinutes: 30},
		// 10.25h night shift: night cap violation.
		{ID: "s2", EmployeeID: "emp-1", Date: "2025-03-10", StartTime: "22:00", EndTime: "09:00", BreakMinutes: 45},
		// 7h without a break: warning.
		{ID: "s3", EmployeeID: "emp-1", Date: "2025-03-17", StartTime: "08:00", EndTime: "15:00"},
	}

	report, err := checker.CheckFullCompliance(shifts)
	require.NoError(t, err)

	assert.False(t, report.Compliant)
	assert.Equal(t, 55, report.Score)
	require.Len(t, report.Violations, 3)

	// Per-shift findings in shift iteration order.
	assert.Equal(t, domain.ViolationMaxDailyHours, report.Violations[0].Type)
	assert.Equal(t, domain.ViolationNightWorkLimit, report.Violations[1].Type)
	assert.Equal(t, domain.ViolationMissingBreak, report.Violations[2].Type)
}

func TestCheckFullCompliance_ScoreClampsAtZero(t *testing.T) {
	checker := NewChecker(domain.DefaultRuleSet())

	// Eight consecutive 13h days without breaks: 8 daily-cap violations and
	// 8 break warnings from the per-shift checks, 2 consecutive-day
	// violations on top. Rest between shifts is exactly 11h (20:00 to 07:00)
	// and passes.
	var shifts []domain.Shift
	for _, date := range []string{
		"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06",
		"2025-03-07", "2025-03-08", "2025-03-09", "2025-03-10",
	} {
		shifts = append(shifts, domain.Shift{
			EmployeeID: "emp-1", Date: date, StartTime: "07:00", EndTime: "20:00",
		})
	}

	report, err := checker.CheckFullCompliance(shifts)
	require.NoError(t, err)

	assert.False(t, report.Compliant)
	assert.Equal(t, 0, report.Score)
	assert.Len(t, report.Violations, 18)
}

func TestCheckFullCompliance_CompliantWithWarnings(t *testing.T) {
	checker := NewChecker(domain.DefaultRuleSet())

	report, err := checker.CheckFullCompliance([]domain.Shift{
		{EmployeeID: "emp-1", Date: "2025-03-03", StartTime: "08:00", EndTime: "15:00"},
	})
	require.NoError(t, err)

	assert.True(t, report.Compliant, "warnings alone do not break compliance")
	assert.Equal(t, 95, report.Score)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, domain.SeverityWarning, report.Violations[0].Severity)
}

func TestCheckFullCompliance_FindingOrder(t *testing.T) {
	checker := NewChecker(domain.DefaultRuleSet())

	// Seven consecutive 8h days where day three starts too early after day
	// two: rest findings come before consecutive-day findings.
	shifts := []domain.Shift{
		{EmployeeID: "emp-1", Date: "2025-03-03", StartTime: "14:00", EndTime: "22:00", BreakMinutes: 30},
		{EmployeeID: "emp-1", Date: "2025-03-04", StartTime: "14:00", EndTime: "22:00", BreakMinutes: 30},
		{EmployeeID: "emp-1", Date: "2025-03-05", StartTime: "06:00", EndTime: "14:00", BreakMinutes: 30},
		{EmployeeID: "emp-1", Date: "2025-03-06", StartTime: "14:00", EndTime: "22:00", BreakMinutes: 30},
		{EmployeeID: "emp-1", Date: "2025-03-07", StartTime: "14:00", EndTime: "22:00", BreakMinutes: 30},
		{EmployeeID: "emp-1", Date: "2025-03-08", StartTime: "14:00", EndTime: "22:00", BreakMinutes: 30},
		{EmployeeID: "emp-1", Date: "2025-03-09", StartTime: "14:00", EndTime: "22:00", BreakMinutes: 30},
	}

	report, err := checker.CheckFullCompliance(shifts)
	require.NoError(t, err)

	require.Len(t, report.Violations, 2)
	assert.Equal(t, domain.ViolationMinRestTime, report.Violations[0].Type)
	assert.Equal(t, "2025-03-05", report.Violations[0].Details.Date)
	assert.Equal(t, domain.ViolationConsecutiveDays, report.Violations[1].Type)
	assert.Equal(t, "2025-03-09", report.Violations[1].Details.Date)
}

func TestCheckFullCompliance_WeeklyCheckIsSeparate(t *testing.T) {
	checker := NewChecker(domain.DefaultRuleSet())

	// 48h week: the standalone weekly check warns, the full scan does not
	// include it.
	var shifts []domain.Shift
	for _, date := range []string{
		"2025-03-03", "2025-03-04", "2025-03-05",
		"2025-03-06", "2025-03-07", "2025-03-08",
	} {
		shifts = append(shifts, domain.Shift{
			EmployeeID: "emp-1", Date: date, StartTime: "08:00", EndTime: "16:30", BreakMinutes: 30,
		})
	}

	report, err := checker.CheckFullCompliance(shifts)
	require.NoError(t, err)
	for _, v := range report.Violations {
		assert.NotEqual(t, domain.ViolationMaxWeeklyHours, v.Type)
	}

	weekly, err := checker.ValidateWeeklyHours(shifts, "2025-03-03")
	require.NoError(t, err)
	assert.Len(t, weekly, 1)
}

func TestCheckFullCompliance_Deterministic(t *testing.T) {
	checker := NewChecker(domain.DefaultRuleSet())

	shifts := []domain.Shift{
		{EmployeeID: "emp-1", Date: "2025-03-04", StartTime: "06:00", EndTime: "14:00"},
		{EmployeeID: "emp-1", Date: "2025-03-03", StartTime: "14:00", EndTime: "22:00"},
	}

	first, err := checker.CheckFullCompliance(shifts)
	require.NoError(t, err)
	second, err := checker.CheckFullCompliance(shifts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCheckFullCompliance_MalformedInput(t *testing.T) {
	checker := NewChecker(domain.DefaultRuleSet())

	_, err := checker.CheckFullCompliance([]domain.Shift{
		{EmployeeID: "emp-1", Date: "2025-03-03", StartTime: "25:00", EndTime: "14:00"},
	})
	assert.Error(t, err)
}
