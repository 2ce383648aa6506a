// Package jobs contains the background job handlers registered with the
// worker: period-wide compliance scans, report exports and AI schedule
// suggestions.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/klinikwerk/shiftwarden/internal/domain"
	"github.com/klinikwerk/shiftwarden/internal/service"
	"github.com/klinikwerk/shiftwarden/internal/worker"
)

// ComplianceScanHandler processes jobs that run a full compliance scan over
// every employee with shifts in a period. Scans are read-only; findings land
// in the logs and the metrics, departments pull detailed reports on demand.
type ComplianceScanHandler struct {
	schedules  service.ScheduleService
	compliance service.ComplianceService
	logger     *slog.Logger
}

// NewComplianceScanHandler creates a new handler for compliance scan jobs.
func NewComplianceScanHandler(
	schedules service.ScheduleService,
	compliance service.ComplianceService,
	logger *slog.Logger,
) *ComplianceScanHandler {
	return &ComplianceScanHandler{
		schedules:  schedules,
		compliance: compliance,
		logger:     logger,
	}
}

// Type returns the job type identifier.
func (h *ComplianceScanHandler) Type() string {
	return worker.JobTypeComplianceScan
}

// Handle executes the compliance scan job.
func (h *ComplianceScanHandler) Handle(ctx context.Context, payload []byte) error {
	var p worker.ComplianceScanPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return worker.NewPermanentError(fmt.Errorf("invalid payload: %w", err))
	}

	employees, err := h.schedules.ListEmployees(ctx, p.PeriodFrom, p.PeriodTo)
	if err != nil {
		if domain.ErrorCode(err) == domain.EINVALID {
			return worker.NewPermanentError(err)
		}
		return fmt.Errorf("list employees: %w", err)
	}

	h.logger.Info("Starting compliance scan",
		"period_from", p.PeriodFrom,
		"period_to", p.PeriodTo,
		"employees", len(employees),
	)

	var nonCompliant, scanErrors int
	for _, employeeID := range employees {
		report, err := h.compliance.Evaluate(ctx, domain.SchedulePeriodParams{
			EmployeeID: employeeID,
			From:       p.PeriodFrom,
			To:         p.PeriodTo,
		})
		if err != nil {
			// A single employee's malformed schedule must not sink the whole
			// scan; log it and keep going.
			scanErrors++
			h.logger.Error("Compliance scan failed for employee",
				"employee_id", employeeID,
				"error", err,
			)
			continue
		}

		if !report.Compliant {
			nonCompliant++
			h.logger.Warn("Employee schedule is non-compliant",
				"employee_id", employeeID,
				"score", report.Score,
				"violations", report.CountBySeverity(domain.SeverityViolation),
				"warnings", report.CountBySeverity(domain.SeverityWarning),
			)
		}
	}

	h.logger.Info("Compliance scan completed",
		"period_from", p.PeriodFrom,
		"period_to", p.PeriodTo,
		"employees", len(employees),
		"non_compliant", nonCompliant,
		"errors", scanErrors,
	)

	if scanErrors == len(employees) && len(employees) > 0 {
		return fmt.Errorf("compliance scan failed for all %d employees", len(employees))
	}

	return nil
}
