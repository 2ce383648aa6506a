package compliance

import (
	"time"

	"github.com/klinikwerk/shiftwarden/internal/domain"
)

const minutesPerDay = 24 * 60

// clockToMinutes converts an HH:mm string to minutes since midnight.
func clockToMinutes(clock string) (int, error) {
	t, err := time.Parse(domain.ClockLayout, clock)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// clockHour returns the hour component of an HH:mm string.
func clockHour(clock string) (int, error) {
	t, err := time.Parse(domain.ClockLayout, clock)
	if err != nil {
		return 0, err
	}
	return t.Hour(), nil
}

// parseDate converts a YYYY-MM-DD string to a calendar date.
func parseDate(date string) (time.Time, error) {
	return time.Parse(domain.DateLayout, date)
}

// parseInstant combines a date and a clock time into a wall-clock instant.
// The clock time is taken literally: a shift that wraps past midnight still
// yields an instant on its start date.
func parseInstant(date, clock string) (time.Time, error) {
	return time.Parse(domain.DateLayout+" "+domain.ClockLayout, date+" "+clock)
}

// CalculateShiftHours returns the worked hours of a single shift.
//
// Start and end are converted to minutes since midnight; an end before the
// start means the shift crosses midnight and a full day is added. The break
// is subtracted before converting to hours. The result is not clamped: a
// break longer than the shift span yields a negative duration, which the
// threshold checks simply never trigger on.
func (c *Checker) CalculateShiftHours(shift domain.Shift) (float64, error) {
	start, err := clockToMinutes(shift.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := clockToMinutes(shift.EndTime)
	if err != nil {
		return 0, err
	}
	if end < start {
		end += minutesPerDay
	}
	return float64(end-start-shift.BreakMinutes) / 60, nil
}
