package compliance

import (
	"github.com/klinikwerk/shiftwarden/internal/domain"
)

// IsNightWork reports whether a shift intersects the legal night window.
//
// The check is deliberately coarse: only the hour components of start and
// end are inspected, minutes are ignored. A shift counts as night work when
// it starts at or after the night window opens, ends at or before the
// window closes, or wraps past midnight (end hour before start hour).
func (c *Checker) IsNightWork(shift domain.Shift) (bool, error) {
	startHour, err := clockHour(shift.StartTime)
	if err != nil {
		return false, err
	}
	endHour, err := clockHour(shift.EndTime)
	if err != nil {
		return false, err
	}
	return startHour >= c.rules.NightWorkStartHour ||
		endHour <= c.rules.NightWorkEndHour ||
		endHour < startHour, nil
}
