package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klinikwerk/shiftwarden/internal/domain"
)

func TestIsNightWork(t *testing.T) {
	checker := NewChecker(domain.DefaultRuleSet())

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"regular day shift", "08:00", "16:00", false},
		{"late evening but before window", "13:00", "21:00", false},
		{"starts inside night window", "22:00", "23:30", true},
		{"starts at 23", "23:00", "23:45", true},
		{"ends inside night window", "21:00", "05:00", true},
		{"ends at the window edge", "00:00", "05:59", true},
		{"early morning shift", "01:00", "04:00", true},
		{"wraps past midnight", "18:00", "02:00", true},
		{"wraps with end hour after window", "10:00", "06:30", true},
		{"minutes are ignored", "21:59", "21:30", false},
		{"six to nine evening", "06:30", "21:30", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.IsNightWork(domain.Shift{StartTime: tt.start, EndTime: tt.end})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsNightWork_MalformedTimes(t *testing.T) {
	checker := NewChecker(domain.DefaultRuleSet())

	_, err := checker.IsNightWork(domain.Shift{StartTime: "night", EndTime: "06:00"})
	assert.Error(t, err)

	_, err = checker.IsNightWork(domain.Shift{StartTime: "22:00", EndTime: "dawn"})
	assert.Error(t, err)
}
