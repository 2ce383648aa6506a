// Package domain contains core business types and interfaces.
//
// This file defines the RuleSet type holding the AZG-style working-time
// thresholds every compliance check is evaluated against.
package domain

// RuleSet holds the fixed legal thresholds for working-time compliance.
//
// The values model a national working-time act (maximum daily and weekly
// hours, minimum rest, night-work window, mandatory breaks, consecutive
// work-day limits). They are constants of the law, not tunables: construct
// the set once at process start via DefaultRuleSet and pass it by value into
// the compliance checker. Nothing mutates a RuleSet at runtime.
//
// The same values are surfaced verbatim to two external collaborators: the
// presentation layer renders them as reference text, and the AI narrative
// layer embeds them into prompts (see internal/ai/anthropic).
type RuleSet struct {
	// Rest and daily limits (hours)
	MinDailyRestHours float64 // Minimum rest between two shifts
	MaxDailyHours     float64 // Hard cap on worked hours in one shift
	NormalDailyHours  float64 // Normal daily working time

	// Weekly limits (hours)
	NormalWeeklyHours float64 // Normal weekly working time, exceeding it is a warning
	AvgWeeklyMaxHours float64 // Maximum average over the averaging period
	MaxWeeklyHours    float64 // Hard weekly cap, exceeding it is a violation

	// AveragingPeriodWeeks is the window over which AvgWeeklyMaxHours is
	// averaged. Reserved: no current check computes the average.
	AveragingPeriodWeeks int

	// Night work window, wall-clock hours in [0,23]. The window wraps past
	// midnight (22 -> 5).
	NightWorkStartHour int
	NightWorkEndHour   int

	// MaxNightShiftHours caps worked hours for a shift classified as night work.
	MaxNightShiftHours float64

	// Break mandate
	BreakThresholdHours float64 // Shifts longer than this require a break
	MinBreakMinutes     int     // Minimum break length once required

	// MaxConsecutiveWorkDays caps an unbroken run of calendar work-days.
	MaxConsecutiveWorkDays int
}

// DefaultRuleSet returns the statutory thresholds for hospital shift work.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		MinDailyRestHours:      11,
		MaxDailyHours:          12,
		NormalDailyHours:       8,
		NormalWeeklyHours:      40,
		AvgWeeklyMaxHours:      48,
		MaxWeeklyHours:         60,
		AveragingPeriodWeeks:   17,
		NightWorkStartHour:     22,
		NightWorkEndHour:       5,
		MaxNightShiftHours:     10,
		BreakThresholdHours:    6,
		MinBreakMinutes:        30,
		MaxConsecutiveWorkDays: 6,
	}
}
