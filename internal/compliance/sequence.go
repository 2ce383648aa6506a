package compliance

import (
	"fmt"
	"sort"

	"github.com/klinikwerk/shiftwarden/internal/domain"
)

// ValidateRestTime checks the rest period between consecutive shifts of one
// employee.
//
// Shifts are ordered by (date, startTime); lexicographic comparison is safe
// because both are zero-padded. The sort is stable so ties keep their input
// order, and the caller's slice is never modified. Only adjacent pairs in
// the sorted order are compared.
//
// The earlier shift's end instant is read literally from date+endTime: an
// overnight shift's end is not rolled over to the next day, so such a shift
// can report more rest than was actually taken.
// TODO: confirm with the works council whether overnight end instants should
// roll over before changing this arithmetic.
func (c *Checker) ValidateRestTime(shifts []domain.Shift) ([]domain.ComplianceViolation, error) {
	sorted := make([]domain.Shift, len(shifts))
	copy(sorted, shifts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].StartTime < sorted[j].StartTime
	})

	var violations []domain.ComplianceViolation
	for i := 0; i+1 < len(sorted); i++ {
		a, b := sorted[i], sorted[i+1]

		end, err := parseInstant(a.Date, a.EndTime)
		if err != nil {
			return nil, err
		}
		start, err := parseInstant(b.Date, b.StartTime)
		if err != nil {
			return nil, err
		}

		rest := start.Sub(end).Hours()
		if rest < c.rules.MinDailyRestHours {
			violations = append(violations, domain.ComplianceViolation{
				Type:     domain.ViolationMinRestTime,
				Severity: domain.SeverityViolation,
				Message: fmt.Sprintf("rest time of %.1fh between shifts is below the required %.0fh",
					rest, c.rules.MinDailyRestHours),
				Details: domain.ViolationDetails{
					Actual:     rest,
					Limit:      c.rules.MinDailyRestHours,
					Date:       b.Date,
					EmployeeID: a.EmployeeID,
				},
			})
		}
	}
	return violations, nil
}

// ValidateWeeklyHours checks total worked hours in the inclusive 7-day span
// starting at weekStart (YYYY-MM-DD).
//
// Shifts are filtered by calendar date, worked hours are summed, and at most
// one finding is emitted: a violation above the hard weekly cap, otherwise a
// warning above the normal weekly hours. The finding's date is weekStart and
// its employee is taken from the first shift inside the span.
func (c *Checker) ValidateWeeklyHours(shifts []domain.Shift, weekStart string) ([]domain.ComplianceViolation, error) {
	start, err := parseDate(weekStart)
	if err != nil {
		return nil, err
	}
	end := start.AddDate(0, 0, 6)

	var total float64
	var employeeID string
	first := true
	for _, shift := range shifts {
		date, err := parseDate(shift.Date)
		if err != nil {
			return nil, err
		}
		if date.Before(start) || date.After(end) {
			continue
		}
		hours, err := c.CalculateShiftHours(shift)
		if err != nil {
			return nil, err
		}
		total += hours
		if first {
			employeeID = shift.EmployeeID
			first = false
		}
	}

	details := domain.ViolationDetails{
		Actual:     total,
		Date:       weekStart,
		EmployeeID: employeeID,
	}

	switch {
	case total > c.rules.MaxWeeklyHours:
		details.Limit = c.rules.MaxWeeklyHours
		return []domain.ComplianceViolation{{
			Type:     domain.ViolationMaxWeeklyHours,
			Severity: domain.SeverityViolation,
			Message: fmt.Sprintf("weekly working time of %.1fh exceeds the maximum of %.0fh",
				total, c.rules.MaxWeeklyHours),
			Details: details,
		}}, nil
	case total > c.rules.NormalWeeklyHours:
		details.Limit = c.rules.NormalWeeklyHours
		return []domain.ComplianceViolation{{
			Type:     domain.ViolationMaxWeeklyHours,
			Severity: domain.SeverityWarning,
			Message: fmt.Sprintf("weekly working time of %.1fh exceeds the normal %.0fh week",
				total, c.rules.NormalWeeklyHours),
			Details: details,
		}}, nil
	}
	return nil, nil
}

// ValidateConsecutiveDays checks for unbroken runs of calendar work-days.
//
// Duplicate shifts on the same date count as one work-day. The distinct
// dates are walked in ascending order with a run counter; every day on which
// the run exceeds the limit produces its own finding, so an eight-day run
// with a six-day limit reports days seven and eight.
//
// The employee on the findings is taken from the first shift of the input as
// given, not from the shift on the triggering date.
func (c *Checker) ValidateConsecutiveDays(shifts []domain.Shift) ([]domain.ComplianceViolation, error) {
	if len(shifts) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(shifts))
	dates := make([]string, 0, len(shifts))
	for _, shift := range shifts {
		if _, ok := seen[shift.Date]; ok {
			continue
		}
		seen[shift.Date] = struct{}{}
		dates = append(dates, shift.Date)
	}
	sort.Strings(dates)

	employeeID := shifts[0].EmployeeID

	var violations []domain.ComplianceViolation
	run := 1
	prev, err := parseDate(dates[0])
	if err != nil {
		return nil, err
	}
	for _, date := range dates[1:] {
		day, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		if day.Sub(prev).Hours() == 24 {
			run++
		} else {
			run = 1
		}
		prev = day

		if run > c.rules.MaxConsecutiveWorkDays {
			violations = append(violations, domain.ComplianceViolation{
				Type:     domain.ViolationConsecutiveDays,
				Severity: domain.SeverityViolation,
				Message: fmt.Sprintf("%d consecutive working days exceed the limit of %d",
					run, c.rules.MaxConsecutiveWorkDays),
				Details: domain.ViolationDetails{
					Actual:     float64(run),
					Limit:      float64(c.rules.MaxConsecutiveWorkDays),
					Date:       date,
					EmployeeID: employeeID,
				},
			})
		}
	}
	return violations, nil
}
