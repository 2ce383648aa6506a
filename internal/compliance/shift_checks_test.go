package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klinikwerk/shiftwarden/internal/domain"
)

func TestValidateShift(t *testing.T) {
	checker := NewChecker(domain.DefaultRuleSet())

	tests := []struct {
		name      string
		shift     domain.Shift
		wantTypes []domain.ViolationType
	}{
		{
			name:      "clean eight hour day",
			shift:     domain.Shift{Date: "2025-03-03", StartTime: "08:00", EndTime: "16:30", BreakMinutes: 30},
			wantTypes: nil,
		},
		{
			name:      "exactly twelve hours does not trigger the daily cap",
			shift:     domain.Shift{Date: "2025-03-03", StartTime: "08:00", EndTime: "20:30", BreakMinutes: 30},
			wantTypes: nil,
		},
		{
			name:      "one minute over the daily cap",
			shift:     domain.Shift{Date: "2025-03-03", StartTime: "08:00", EndTime: "20:31", BreakMinutes: 30},
			wantTypes: []domain.ViolationType{domain.ViolationMaxDailyHours},
		},
		{
			name:      "nine hour night shift stays under the night cap",
			shift:     domain.Shift{Date: "2025-03-03", StartTime: "21:00", EndTime: "06:00", BreakMinutes: 30},
			wantTypes: nil,
		},
		{
			name:      "eleven hour night shift breaks the night cap",
			shift:     domain.Shift{Date: "2025-03-03", StartTime: "21:00", EndTime: "08:30", BreakMinutes: 30},
			wantTypes: []domain.ViolationType{domain.ViolationNightWorkLimit},
		},
		{
			name:      "long shift without break",
			shift:     domain.Shift{Date: "2025-03-03", StartTime: "08:00", EndTime: "15:00"},
			wantTypes: []domain.ViolationType{domain.ViolationMissingBreak},
		},
		{
			name:      "exactly six hours needs no break",
			shift:     domain.Shift{Date: "2025-03-03", StartTime: "08:00", EndTime: "14:00"},
			wantTypes: nil,
		},
		{
			name:      "overlong day shift without break",
			shift:     domain.Shift{Date: "2025-03-03", StartTime: "07:00", EndTime: "20:00"},
			wantTypes: []domain.ViolationType{domain.ViolationMaxDailyHours, domain.ViolationMissingBreak},
		},
		{
			name:      "overlong night shift without break trips all three checks",
			shift:     domain.Shift{Date: "2025-03-03", StartTime: "20:00", EndTime: "09:30"},
			wantTypes: []domain.ViolationType{domain.ViolationMaxDailyHours, domain.ViolationNightWorkLimit, domain.ViolationMissingBreak},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.ValidateShift(tt.shift)
			require.NoError(t, err)

			gotTypes := make([]domain.ViolationType, 0, len(got))
			for _, v := range got {
				gotTypes = append(gotTypes, v.Type)
			}
			if tt.wantTypes == nil {
				assert.Empty(t, gotTypes)
			} else {
				assert.Equal(t, tt.wantTypes, gotTypes)
			}
		})
	}
}

func TestValidateShift_Severities(t *testing.T) {
	checker := NewChecker(domain.DefaultRuleSet())

	// 13h day shift without a break: hard violation plus break warning.
	got, err := checker.ValidateShift(domain.Shift{
		ID: "s1", EmployeeID: "emp-7", Date: "2025-03-03",
		StartTime: "07:00", EndTime: "20:00",
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, domain.SeverityViolation, got[0].Severity)
	assert.Equal(t, domain.SeverityWarning, got[1].Severity)

	// Findings carry the shift's date and owner.
	for _, v := range got {
		assert.Equal(t, "2025-03-03", v.Details.Date)
		assert.Equal(t, "emp-7", v.Details.EmployeeID)
		assert.NotEmpty(t, v.Message)
	}

	assert.InDelta(t, 13.0, got[0].Details.Actual, 1e-9)
	assert.InDelta(t, 12.0, got[0].Details.Limit, 1e-9)
}

func TestValidateShift_MalformedTime(t *testing.T) {
	checker := NewChecker(domain.DefaultRuleSet())

	_, err := checker.ValidateShift(domain.Shift{StartTime: "0800", EndTime: "16:00"})
	assert.Error(t, err)
}
