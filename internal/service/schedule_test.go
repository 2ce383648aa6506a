package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/klinikwerk/shiftwarden/internal/domain"
)

func validImport() domain.ImportScheduleParams {
	return domain.ImportScheduleParams{
		EmployeeID: "emp-1",
		PeriodFrom: "2024-03-04",
		PeriodTo:   "2024-03-10",
		Shifts: []domain.Shift{
			{ID: "s1", EmployeeID: "emp-1", Date: "2024-03-04", StartTime: "08:00", EndTime: "16:30", BreakMinutes: 30},
			{ID: "s2", EmployeeID: "emp-1", Date: "2024-03-05", StartTime: "22:00", EndTime: "06:00", BreakMinutes: 0},
		},
	}
}

func TestValidateImportParams(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.ImportScheduleParams)
		wantErr string
	}{
		{
			name:   "valid params",
			mutate: func(p *domain.ImportScheduleParams) {},
		},
		{
			name:   "empty shift list is valid",
			mutate: func(p *domain.ImportScheduleParams) { p.Shifts = nil },
		},
		{
			name:    "missing employee ID",
			mutate:  func(p *domain.ImportScheduleParams) { p.EmployeeID = "" },
			wantErr: "employee ID is required",
		},
		{
			name:    "period end before start",
			mutate:  func(p *domain.ImportScheduleParams) { p.PeriodTo = "2024-03-01" },
			wantErr: "is before start",
		},
		{
			name:    "malformed period date",
			mutate:  func(p *domain.ImportScheduleParams) { p.PeriodFrom = "04.03.2024" },
			wantErr: "invalid period start",
		},
		{
			name:    "missing shift ID",
			mutate:  func(p *domain.ImportScheduleParams) { p.Shifts[0].ID = "" },
			wantErr: "ID is required",
		},
		{
			name: "duplicate shift ID",
			mutate: func(p *domain.ImportScheduleParams) {
				p.Shifts[1].ID = "s1"
				p.Shifts[1].Date = "2024-03-05"
			},
			wantErr: "duplicate shift ID",
		},
		{
			name:    "foreign employee on shift",
			mutate:  func(p *domain.ImportScheduleParams) { p.Shifts[1].EmployeeID = "emp-2" },
			wantErr: "does not match",
		},
		{
			name:    "shift date outside period",
			mutate:  func(p *domain.ImportScheduleParams) { p.Shifts[0].Date = "2024-03-11" },
			wantErr: "outside the period",
		},
		{
			name:    "malformed start time",
			mutate:  func(p *domain.ImportScheduleParams) { p.Shifts[0].StartTime = "8am" },
			wantErr: "invalid start time",
		},
		{
			name:    "negative break",
			mutate:  func(p *domain.ImportScheduleParams) { p.Shifts[0].BreakMinutes = -5 },
			wantErr: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validImport()
			tt.mutate(&params)

			err := validateImportParams(params)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePeriod(t *testing.T) {
	assert.NoError(t, validatePeriod("2024-03-04", "2024-03-10"))
	assert.NoError(t, validatePeriod("2024-03-04", "2024-03-04"))
	assert.Error(t, validatePeriod("2024-03-10", "2024-03-04"))
	assert.Error(t, validatePeriod("", "2024-03-04"))
	assert.Error(t, validatePeriod("2024-03-04", "bad"))
}
