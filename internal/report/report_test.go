package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klinikwerk/shiftwarden/internal/domain"
)

func sampleData() *Data {
	return &Data{
		EmployeeID:  "emp-1",
		PeriodFrom:  "2024-03-04",
		PeriodTo:    "2024-03-10",
		GeneratedAt: time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC),
		Rules:       domain.DefaultRuleSet(),
		Shifts: []domain.Shift{
			{ID: "s1", EmployeeID: "emp-1", Date: "2024-03-04", StartTime: "08:00", EndTime: "21:30", BreakMinutes: 30},
		},
		Report: domain.ComplianceReport{
			Compliant: false,
			Score:     75,
			Violations: []domain.ComplianceViolation{
				{
					Type:     domain.ViolationMaxDailyHours,
					Severity: domain.SeverityViolation,
					Message:  "Daily working time of 13.00 hours exceeds the maximum of 12.00 hours",
					Details:  domain.ViolationDetails{Actual: 13, Limit: 12, Date: "2024-03-04", EmployeeID: "emp-1"},
				},
				{
					Type:     domain.ViolationMissingBreak,
					Severity: domain.SeverityWarning,
					Message:  "Shift of 13.00 hours has a 30 minute break, at least 30 minutes are required",
					Details:  domain.ViolationDetails{Actual: 13, Limit: 6, Date: "2024-03-04", EmployeeID: "emp-1"},
				},
			},
		},
	}
}

func TestTypeLabel(t *testing.T) {
	assert.Equal(t, "Max Daily Hours", TypeLabel(domain.ViolationMaxDailyHours))
	assert.Equal(t, "Min Rest Time", TypeLabel(domain.ViolationMinRestTime))
	assert.Equal(t, "Consecutive Days", TypeLabel(domain.ViolationConsecutiveDays))
}

func TestGroupByType(t *testing.T) {
	violations := []domain.ComplianceViolation{
		{Type: domain.ViolationMinRestTime},
		{Type: domain.ViolationMaxDailyHours},
		{Type: domain.ViolationMinRestTime},
	}

	groups := GroupByType(violations)
	require.Len(t, groups, 2)
	assert.Equal(t, domain.ViolationMinRestTime, groups[0].Type)
	assert.Len(t, groups[0].Findings, 2)
	assert.Equal(t, domain.ViolationMaxDailyHours, groups[1].Type)
	assert.Len(t, groups[1].Findings, 1)
}

func TestCSVGenerator_Generate(t *testing.T) {
	var buf bytes.Buffer
	gen := NewCSVGenerator()

	n, err := gen.Generate(context.Background(), sampleData(), &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 findings
	assert.Contains(t, lines[0], "employee_id")
	assert.Contains(t, lines[1], "max_daily_hours")
	assert.Contains(t, lines[1], "violation")
	assert.Contains(t, lines[2], "missing_break")
	assert.Contains(t, lines[2], "warning")
}

func TestCSVGenerator_GenerateEmpty(t *testing.T) {
	data := sampleData()
	data.Report = domain.ComplianceReport{Compliant: true, Score: 100}

	var buf bytes.Buffer
	_, err := NewCSVGenerator().Generate(context.Background(), data, &buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "No findings")
	assert.Contains(t, lines[1], "true")
}

func TestHTMLGenerator_Generate(t *testing.T) {
	var buf bytes.Buffer
	gen := NewHTMLGenerator(nil)

	n, err := gen.Generate(context.Background(), sampleData(), &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	html := buf.String()
	assert.Contains(t, html, "Non-compliant")
	assert.Contains(t, html, "75 / 100")
	assert.Contains(t, html, "Max Daily Hours")
	assert.Contains(t, html, "Missing Break")
	assert.Contains(t, html, "2024-03-04")
	assert.Contains(t, html, "1 violation(s), 1 warning(s)")
}
