package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klinikwerk/shiftwarden/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeComplianceService returns canned results for handler tests.
type fakeComplianceService struct {
	report domain.ComplianceReport
	weekly []domain.ComplianceViolation
	err    error
}

func (f *fakeComplianceService) Evaluate(ctx context.Context, params domain.SchedulePeriodParams) (domain.ComplianceReport, error) {
	if f.err != nil {
		return domain.ComplianceReport{}, f.err
	}
	return f.report, nil
}

func (f *fakeComplianceService) EvaluateWeek(ctx context.Context, employeeID, weekStart string) ([]domain.ComplianceViolation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.weekly, nil
}

func (f *fakeComplianceService) Rules() domain.RuleSet {
	return domain.DefaultRuleSet()
}

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{domain.EINVALID, http.StatusBadRequest},
		{domain.EUNAUTHORIZED, http.StatusUnauthorized},
		{domain.EFORBIDDEN, http.StatusForbidden},
		{domain.ENOTFOUND, http.StatusNotFound},
		{domain.ECONFLICT, http.StatusConflict},
		{domain.EINTERNAL, http.StatusInternalServerError},
		{"something_else", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCodeToHTTPStatus(tt.code))
		})
	}
}

func TestErrorResponse_MasksInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rules", nil)

	err := domain.Internal(io.ErrUnexpectedEOF, "test.op", "database exploded")
	ErrorResponse(rec, req, testLogger(), err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domain.EINTERNAL, body.Error.Code)
	assert.NotContains(t, body.Error.Message, "database exploded")
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "valid object",
			body: `{"name":"a"}`,
		},
		{
			name:    "empty body",
			body:    "",
			wantErr: "Request body is required",
		},
		{
			name:    "unknown field",
			body:    `{"name":"a","extra":1}`,
			wantErr: "not valid JSON",
		},
		{
			name:    "trailing object",
			body:    `{"name":"a"}{"name":"b"}`,
			wantErr: "single JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst payload
			err := decodeJSON(rec, req, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
		})
	}
}

func TestComplianceHandler_Get(t *testing.T) {
	svc := &fakeComplianceService{
		report: domain.ComplianceReport{
			Compliant: false,
			Score:     75,
			Violations: []domain.ComplianceViolation{
				{
					Type:     domain.ViolationMaxDailyHours,
					Severity: domain.SeverityViolation,
					Message:  "daily limit exceeded",
					Details:  domain.ViolationDetails{Actual: 13, Limit: 12, Date: "2025-03-03"},
				},
			},
		},
	}

	mux := http.NewServeMux()
	h := NewComplianceHandler(svc, testLogger())
	mux.HandleFunc("GET /api/compliance/{employeeID}", h.Get)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/compliance/emp-1?from=2025-03-03&to=2025-03-09", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body complianceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "emp-1", body.EmployeeID)
	assert.False(t, body.Compliant)
	assert.Equal(t, 75, body.Score)
	require.Len(t, body.Violations, 1)
	assert.Equal(t, "max_daily_hours", body.Violations[0].Type)
	assert.Equal(t, "2025-03-03", body.Violations[0].Date)
}

func TestComplianceHandler_Get_ServiceError(t *testing.T) {
	svc := &fakeComplianceService{
		err: domain.Invalid("test.op", "invalid period"),
	}

	mux := http.NewServeMux()
	h := NewComplianceHandler(svc, testLogger())
	mux.HandleFunc("GET /api/compliance/{employeeID}", h.Get)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/compliance/emp-1?from=bad&to=worse", nil)
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComplianceHandler_GetRules(t *testing.T) {
	mux := http.NewServeMux()
	h := NewComplianceHandler(&fakeComplianceService{}, testLogger())
	mux.HandleFunc("GET /api/rules", h.GetRules)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rules", nil)
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body rulesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 11.0, body.MinDailyRestHours)
	assert.Equal(t, 12.0, body.MaxDailyHours)
	assert.Equal(t, 6, body.MaxConsecutiveWorkDays)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"with token", "Bearer abc123", "abc123"},
		{"no header", "", ""},
		{"bare scheme", "Bearer ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, bearerToken(req))
		})
	}
}
