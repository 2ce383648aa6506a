package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/sqlc-dev/pqtype"

	"github.com/klinikwerk/shiftwarden/internal/domain"
	"github.com/klinikwerk/shiftwarden/internal/metrics"
	"github.com/klinikwerk/shiftwarden/internal/report"
	"github.com/klinikwerk/shiftwarden/internal/repository"
	"github.com/klinikwerk/shiftwarden/internal/service"
	"github.com/klinikwerk/shiftwarden/internal/storage"
	"github.com/klinikwerk/shiftwarden/internal/worker"
)

// ExportReportHandler processes jobs that render a compliance report and
// upload it to object storage.
type ExportReportHandler struct {
	queries    *repository.Queries
	schedules  service.ScheduleService
	compliance service.ComplianceService
	store      storage.Storage
	csvGen     report.Generator
	htmlGen    report.Generator
	logger     *slog.Logger
}

// NewExportReportHandler creates a new handler for report export jobs.
func NewExportReportHandler(
	queries *repository.Queries,
	schedules service.ScheduleService,
	compliance service.ComplianceService,
	store storage.Storage,
	logger *slog.Logger,
) *ExportReportHandler {
	return &ExportReportHandler{
		queries:    queries,
		schedules:  schedules,
		compliance: compliance,
		store:      store,
		csvGen:     report.NewCSVGenerator(),
		htmlGen:    report.NewHTMLGenerator(logger),
		logger:     logger,
	}
}

// Type returns the job type identifier.
func (h *ExportReportHandler) Type() string {
	return worker.JobTypeExportReport
}

// Handle executes the report export job.
func (h *ExportReportHandler) Handle(ctx context.Context, payload []byte) error {
	var p worker.ExportReportPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return worker.NewPermanentError(fmt.Errorf("invalid payload: %w", err))
	}

	format := report.Format(p.Format)
	if !format.IsValid() {
		return worker.NewPermanentError(fmt.Errorf("invalid format: %s (must be 'csv' or 'html')", p.Format))
	}

	h.logger.Info("Exporting report",
		"employee_id", p.EmployeeID,
		"period_from", p.PeriodFrom,
		"period_to", p.PeriodTo,
		"format", p.Format,
	)

	period := domain.SchedulePeriodParams{
		EmployeeID: p.EmployeeID,
		From:       p.PeriodFrom,
		To:         p.PeriodTo,
	}

	stored, err := h.schedules.List(ctx, period)
	if err != nil {
		if domain.ErrorCode(err) == domain.EINVALID {
			return worker.NewPermanentError(err)
		}
		return fmt.Errorf("list shifts: %w", err)
	}

	complianceReport, err := h.compliance.Evaluate(ctx, period)
	if err != nil {
		if domain.ErrorCode(err) == domain.EINVALID {
			return worker.NewPermanentError(err)
		}
		return fmt.Errorf("evaluate compliance: %w", err)
	}

	shifts := make([]domain.Shift, 0, len(stored))
	for _, row := range stored {
		shifts = append(shifts, row.ToShift())
	}

	data := &report.Data{
		EmployeeID:  p.EmployeeID,
		PeriodFrom:  p.PeriodFrom,
		PeriodTo:    p.PeriodTo,
		GeneratedAt: time.Now(),
		Rules:       h.compliance.Rules(),
		Shifts:      shifts,
		Report:      complianceReport,
	}

	var gen report.Generator
	if format == report.FormatCSV {
		gen = h.csvGen
	} else {
		gen = h.htmlGen
	}

	var buf bytes.Buffer
	bytesWritten, err := gen.Generate(ctx, data, &buf)
	if err != nil {
		return fmt.Errorf("generate %s: %w", format, err)
	}

	storageKey := storage.ExportKey(p.EmployeeID, p.Format)
	err = h.store.Put(ctx, storageKey, &buf, storage.PutOptions{
		ContentType: format.ContentType(),
		Overwrite:   true,
	})
	if err != nil {
		return fmt.Errorf("upload report to storage: %w", err)
	}

	violationsJSON, err := json.Marshal(complianceReport.Violations)
	if err != nil {
		return fmt.Errorf("marshal findings: %w", err)
	}

	export, err := h.queries.CreateReportExport(ctx, repository.CreateReportExportParams{
		EmployeeID:     p.EmployeeID,
		PeriodFrom:     p.PeriodFrom,
		PeriodTo:       p.PeriodTo,
		Format:         p.Format,
		StorageKey:     storageKey,
		Score:          int32(complianceReport.Score),
		Compliant:      complianceReport.Compliant,
		ViolationCount: int32(len(complianceReport.Violations)),
		Violations:     pqtype.NullRawMessage{RawMessage: violationsJSON, Valid: true},
	})
	if err != nil {
		return fmt.Errorf("create export record: %w", err)
	}

	metrics.ReportsExported.WithLabelValues(p.Format).Inc()

	h.logger.Info("Report export completed",
		"export_id", export.ID,
		"employee_id", p.EmployeeID,
		"storage_key", storageKey,
		"format", format,
		"size_bytes", bytesWritten,
		"findings", len(complianceReport.Violations),
	)

	return nil
}
