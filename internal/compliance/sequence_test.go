package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klinikwerk/shiftwarden/internal/domain"
)

func TestValidateRestTime(t *testing.T) {
	checker := NewChecker(domain.DefaultRuleSet())

	t.Run("eight hours between shifts is flagged", func(t *testing.T) {
		shifts := []domain.Shift{
			{ID: "a", EmployeeID: "emp-1", Date: "2025-03-03", StartTime: "14:00", EndTime: "22:00"},
			{ID: "b", EmployeeID: "emp-1", Date: "2025-03-04", StartTime: "06:00", EndTime: "14:00"},
		}

		got, err := checker.ValidateRestTime(shifts)
		require.NoError(t, err)
		require.Len(t, got, 1)

		v := got[0]
		assert.Equal(t, domain.ViolationMinRestTime, v.Type)
		assert.Equal(t, domain.SeverityViolation, v.Severity)
		assert.Equal(t, "2025-03-04", v.Details.Date)
		assert.Equal(t, "emp-1", v.Details.EmployeeID)
		assert.InDelta(t, 8.0, v.Details.Actual, 1e-9)
		assert.InDelta(t, 11.0, v.Details.Limit, 1e-9)
	})

	t.Run("adequate rest passes", func(t *testing.T) {
		shifts := []domain.Shift{
			{Date: "2025-03-03", StartTime: "08:00", EndTime: "18:00"},
			{Date: "2025-03-04", StartTime: "08:00", EndTime: "18:00"},
		}

		got, err := checker.ValidateRestTime(shifts)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("input order does not matter", func(t *testing.T) {
		shifts := []domain.Shift{
			{ID: "b", EmployeeID: "emp-1", Date: "2025-03-04", StartTime: "06:00", EndTime: "14:00"},
			{ID: "a", EmployeeID: "emp-1", Date: "2025-03-03", StartTime: "14:00", EndTime: "22:00"},
		}

		got, err := checker.ValidateRestTime(shifts)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "2025-03-04", got[0].Details.Date)

		// The caller's slice is untouched.
		assert.Equal(t, "b", shifts[0].ID)
	})

	t.Run("overnight end instant is read literally", func(t *testing.T) {
		// The first shift really ends 07:00 the next morning, five hours
		// before the second begins. Because its end instant is read on its
		// start date the computed rest is 29h and nothing is flagged.
		shifts := []domain.Shift{
			{Date: "2025-03-03", StartTime: "23:00", EndTime: "07:00"},
			{Date: "2025-03-04", StartTime: "12:00", EndTime: "20:00"},
		}

		got, err := checker.ValidateRestTime(shifts)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("only adjacent pairs are compared", func(t *testing.T) {
		// Middle shift rests fine against both neighbours; first and last
		// would conflict if compared directly, but never are.
		shifts := []domain.Shift{
			{Date: "2025-03-03", StartTime: "08:00", EndTime: "16:00"},
			{Date: "2025-03-04", StartTime: "08:00", EndTime: "16:00"},
			{Date: "2025-03-05", StartTime: "08:00", EndTime: "16:00"},
		}

		got, err := checker.ValidateRestTime(shifts)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("empty and single inputs", func(t *testing.T) {
		got, err := checker.ValidateRestTime(nil)
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = checker.ValidateRestTime([]domain.Shift{
			{Date: "2025-03-03", StartTime: "08:00", EndTime: "16:00"},
		})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("malformed time propagates", func(t *testing.T) {
		_, err := checker.ValidateRestTime([]domain.Shift{
			{Date: "2025-03-03", StartTime: "08:00", EndTime: "sixteen"},
			{Date: "2025-03-04", StartTime: "08:00", EndTime: "16:00"},
		})
		assert.Error(t, err)
	})
}

func TestValidateWeeklyHours(t *testing.T) {
	checker := NewChecker(domain.DefaultRuleSet())

	week := func(employeeID string, dates []string, start, end string, breakMin int) []domain.Shift {
		shifts := make([]domain.Shift, 0, len(dates))
		for _, d := range dates {
			shifts = append(shifts, domain.Shift{
				EmployeeID: employeeID, Date: d,
				StartTime: start, EndTime: end, BreakMinutes: breakMin,
			})
		}
		return shifts
	}

	t.Run("normal week passes", func(t *testing.T) {
		shifts := week("emp-1", []string{"2025-03-03", "2025-03-04", "2025-03-05"}, "08:00", "16:30", 30)

		got, err := checker.ValidateWeeklyHours(shifts, "2025-03-03")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("over forty hours is a warning", func(t *testing.T) {
		// Six 8h days: 48h.
		shifts := week("emp-1", []string{
			"2025-03-03", "2025-03-04", "2025-03-05",
			"2025-03-06", "2025-03-07", "2025-03-08",
		}, "08:00", "16:30", 30)

		got, err := checker.ValidateWeeklyHours(shifts, "2025-03-03")
		require.NoError(t, err)
		require.Len(t, got, 1)

		v := got[0]
		assert.Equal(t, domain.ViolationMaxWeeklyHours, v.Type)
		assert.Equal(t, domain.SeverityWarning, v.Severity)
		assert.Equal(t, "2025-03-03", v.Details.Date)
		assert.Equal(t, "emp-1", v.Details.EmployeeID)
		assert.InDelta(t, 48.0, v.Details.Actual, 1e-9)
		assert.InDelta(t, 40.0, v.Details.Limit, 1e-9)
	})

	t.Run("over sixty hours is a violation and only one finding", func(t *testing.T) {
		// Six 11h days: 66h.
		shifts := week("emp-1", []string{
			"2025-03-03", "2025-03-04", "2025-03-05",
			"2025-03-06", "2025-03-07", "2025-03-08",
		}, "07:00", "18:30", 30)

		got, err := checker.ValidateWeeklyHours(shifts, "2025-03-03")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, domain.SeverityViolation, got[0].Severity)
		assert.InDelta(t, 66.0, got[0].Details.Actual, 1e-9)
		assert.InDelta(t, 60.0, got[0].Details.Limit, 1e-9)
	})

	t.Run("exactly sixty hours stays a warning", func(t *testing.T) {
		// Five 12h days.
		shifts := week("emp-1", []string{
			"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07",
		}, "08:00", "20:30", 30)

		got, err := checker.ValidateWeeklyHours(shifts, "2025-03-03")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, domain.SeverityWarning, got[0].Severity)
	})

	t.Run("shifts outside the week are ignored", func(t *testing.T) {
		shifts := week("emp-1", []string{
			"2025-03-02", // day before the week
			"2025-03-03", "2025-03-09", // first and last day of the span
			"2025-03-10", // day after
		}, "08:00", "16:30", 30)

		got, err := checker.ValidateWeeklyHours(shifts, "2025-03-03")
		require.NoError(t, err)
		assert.Empty(t, got) // only 16h fall inside
	})

	t.Run("empty input passes", func(t *testing.T) {
		got, err := checker.ValidateWeeklyHours(nil, "2025-03-03")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("malformed week start propagates", func(t *testing.T) {
		_, err := checker.ValidateWeeklyHours(nil, "03/03/2025")
		assert.Error(t, err)
	})
}

func TestValidateConsecutiveDays(t *testing.T) {
	checker := NewChecker(domain.DefaultRuleSet())

	days := func(employeeID string, dates ...string) []domain.Shift {
		shifts := make([]domain.Shift, 0, len(dates))
		for _, d := range dates {
			shifts = append(shifts, domain.Shift{
				EmployeeID: employeeID, Date: d, StartTime: "08:00", EndTime: "16:00",
			})
		}
		return shifts
	}

	t.Run("six consecutive days pass", func(t *testing.T) {
		got, err := checker.ValidateConsecutiveDays(days("emp-1",
			"2025-03-03", "2025-03-04", "2025-03-05",
			"2025-03-06", "2025-03-07", "2025-03-08"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("eight consecutive days flag day seven and eight", func(t *testing.T) {
		got, err := checker.ValidateConsecutiveDays(days("emp-1",
			"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06",
			"2025-03-07", "2025-03-08", "2025-03-09", "2025-03-10"))
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, "2025-03-09", got[0].Details.Date)
		assert.InDelta(t, 7.0, got[0].Details.Actual, 1e-9)
		assert.Equal(t, "2025-03-10", got[1].Details.Date)
		assert.InDelta(t, 8.0, got[1].Details.Actual, 1e-9)

		for _, v := range got {
			assert.Equal(t, domain.ViolationConsecutiveDays, v.Type)
			assert.Equal(t, domain.SeverityViolation, v.Severity)
			assert.InDelta(t, 6.0, v.Details.Limit, 1e-9)
		}
	})

	t.Run("a free day resets the run", func(t *testing.T) {
		got, err := checker.ValidateConsecutiveDays(days("emp-1",
			"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07",
			// 2025-03-08 off
			"2025-03-09", "2025-03-10", "2025-03-11", "2025-03-12", "2025-03-13"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("two shifts on one date count as one work day", func(t *testing.T) {
		shifts := days("emp-1",
			"2025-03-03", "2025-03-03", "2025-03-04", "2025-03-05",
			"2025-03-06", "2025-03-07", "2025-03-08")
		got, err := checker.ValidateConsecutiveDays(shifts)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("employee is taken from the first shift as given", func(t *testing.T) {
		shifts := days("emp-2", "2025-03-09")
		shifts = append(shifts, days("emp-1",
			"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06",
			"2025-03-07", "2025-03-08", "2025-03-10")...)

		got, err := checker.ValidateConsecutiveDays(shifts)
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, v := range got {
			assert.Equal(t, "emp-2", v.Details.EmployeeID)
		}
	})

	t.Run("empty input passes", func(t *testing.T) {
		got, err := checker.ValidateConsecutiveDays(nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("malformed date propagates", func(t *testing.T) {
		_, err := checker.ValidateConsecutiveDays(days("emp-1", "2025-03-03", "yesterday"))
		assert.Error(t, err)
	})
}
