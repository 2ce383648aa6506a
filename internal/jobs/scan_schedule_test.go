package jobs

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klinikwerk/shiftwarden/internal/compliance"
	"github.com/klinikwerk/shiftwarden/internal/domain"
	"github.com/klinikwerk/shiftwarden/internal/worker"
)

// fakeScheduleService serves canned shifts without a database.
type fakeScheduleService struct {
	shiftsByEmployee map[string][]domain.StoredShift
}

func (f *fakeScheduleService) Import(ctx context.Context, params domain.ImportScheduleParams) ([]domain.StoredShift, error) {
	panic("not used")
}

func (f *fakeScheduleService) List(ctx context.Context, params domain.SchedulePeriodParams) ([]domain.StoredShift, error) {
	return f.shiftsByEmployee[params.EmployeeID], nil
}

func (f *fakeScheduleService) ListEmployees(ctx context.Context, from, to string) ([]string, error) {
	var ids []string
	for id := range f.shiftsByEmployee {
		ids = append(ids, id)
	}
	return ids, nil
}

// fakeComplianceService runs the real checker over the fake schedules.
type fakeComplianceService struct {
	schedules *fakeScheduleService
	checker   *compliance.Checker
}

func (f *fakeComplianceService) Evaluate(ctx context.Context, params domain.SchedulePeriodParams) (domain.ComplianceReport, error) {
	stored, _ := f.schedules.List(ctx, params)
	shifts := make([]domain.Shift, 0, len(stored))
	for _, s := range stored {
		shifts = append(shifts, s.ToShift())
	}
	return f.checker.CheckFullCompliance(shifts)
}

func (f *fakeComplianceService) EvaluateWeek(ctx context.Context, employeeID, weekStart string) ([]domain.ComplianceViolation, error) {
	panic("not used")
}

func (f *fakeComplianceService) Rules() domain.RuleSet {
	return f.checker.Rules()
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestComplianceScanHandler_Handle(t *testing.T) {
	schedules := &fakeScheduleService{
		shiftsByEmployee: map[string][]domain.StoredShift{
			"emp-clean": {
				{ShiftID: "a", EmployeeID: "emp-clean", Date: "2024-03-04", StartTime: "08:00", EndTime: "16:30", BreakMinutes: 30},
			},
			"emp-over": {
				{ShiftID: "b", EmployeeID: "emp-over", Date: "2024-03-04", StartTime: "07:00", EndTime: "20:30", BreakMinutes: 30},
			},
		},
	}
	checker := compliance.NewChecker(domain.DefaultRuleSet())
	handler := NewComplianceScanHandler(schedules, &fakeComplianceService{schedules: schedules, checker: checker}, testLogger())

	assert.Equal(t, worker.JobTypeComplianceScan, handler.Type())

	payload, err := json.Marshal(worker.ComplianceScanPayload{
		PeriodFrom: "2024-03-04",
		PeriodTo:   "2024-03-10",
	})
	require.NoError(t, err)

	err = handler.Handle(context.Background(), payload)
	assert.NoError(t, err)
}

func TestComplianceScanHandler_InvalidPayload(t *testing.T) {
	handler := NewComplianceScanHandler(&fakeScheduleService{}, nil, testLogger())

	err := handler.Handle(context.Background(), []byte("{not json"))
	require.Error(t, err)
	assert.True(t, worker.IsPermanent(err))
}
