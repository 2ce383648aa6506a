package anthropic

import (
	"fmt"
	"strings"

	"github.com/klinikwerk/shiftwarden/internal/ai"
)

// buildSuggestSchedulePrompt creates the prompt for revising an employee's
// shift plan so that it satisfies the department's working time limits.
func buildSuggestSchedulePrompt(params ai.SuggestScheduleParams) string {
	var b strings.Builder

	b.WriteString(`You are an expert hospital workforce planner. Your task is to revise one employee's shift plan so it complies with the department's working time rules while keeping the plan as close to the original as possible.

**Working time rules (all limits are hard unless marked as a warning threshold):**
`)

	r := params.Rules
	fmt.Fprintf(&b, "- Minimum rest between two shifts: %.1f hours\n", r.MinDailyRestHours)
	fmt.Fprintf(&b, "- Maximum hours per shift: %.1f (normal day is %.1f, warning threshold)\n", r.MaxDailyHours, r.NormalDailyHours)
	fmt.Fprintf(&b, "- Maximum hours per calendar week: %.1f (normal week is %.1f, warning threshold)\n", r.MaxWeeklyHours, r.NormalWeeklyHours)
	fmt.Fprintf(&b, "- Night work window: %02d:00 to %02d:00; night shifts are limited to %.1f hours\n",
		r.NightWorkStartHour, r.NightWorkEndHour, r.MaxNightShiftHours)
	fmt.Fprintf(&b, "- Shifts longer than %.1f hours require a break of at least %d minutes\n",
		r.BreakThresholdHours, r.MinBreakMinutes)
	fmt.Fprintf(&b, "- No more than %d consecutive working days\n", r.MaxConsecutiveWorkDays)

	fmt.Fprintf(&b, "\n**Employee:** %s\n**Period:** %s to %s (inclusive)\n\n**Current plan:**\n",
		params.EmployeeID, params.PeriodFrom, params.PeriodTo)

	if len(params.Shifts) == 0 {
		b.WriteString("(no shifts planned)\n")
	}
	for _, s := range params.Shifts {
		fmt.Fprintf(&b, "- %s %s-%s, break %d min\n", s.Date, s.StartTime, s.EndTime, s.BreakMinutes)
	}

	if len(params.Violations) > 0 {
		b.WriteString("\n**Findings in the current plan:**\n")
		for _, v := range params.Violations {
			fmt.Fprintf(&b, "- [%s/%s] %s\n", v.Type, v.Severity, v.Message)
		}
	}

	b.WriteString(`
**Guidelines:**
- Keep shift dates, lengths and start times as close to the original plan as you can
- Times after midnight mean the shift crosses into the next day
- Prefer adding breaks or shortening shifts over dropping shifts entirely
- Every shift in your proposal must individually and jointly satisfy the rules above

**Response Format:**
Return your proposal as a JSON object with this exact structure:

{
  "shifts": [
    {
      "date": "YYYY-MM-DD",
      "start_time": "HH:MM",
      "end_time": "HH:MM",
      "break_minutes": 0
    }
  ],
  "rationale": "Plain-language explanation of what you changed and why"
}

**Important:** Return ONLY the JSON object, no additional text or explanation.`)

	return b.String()
}
