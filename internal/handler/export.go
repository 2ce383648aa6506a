package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/klinikwerk/shiftwarden/internal/domain"
	"github.com/klinikwerk/shiftwarden/internal/report"
	"github.com/klinikwerk/shiftwarden/internal/repository"
	"github.com/klinikwerk/shiftwarden/internal/storage"
	"github.com/klinikwerk/shiftwarden/internal/worker"
)

// downloadURLTTL is how long presigned export download links stay valid.
const downloadURLTTL = time.Hour

// ExportHandler serves the report export endpoints.
type ExportHandler struct {
	queries *repository.Queries
	store   storage.Storage
	logger  *slog.Logger
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(queries *repository.Queries, store storage.Storage, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{queries: queries, store: store, logger: logger}
}

type exportRequest struct {
	PeriodFrom string `json:"period_from"`
	PeriodTo   string `json:"period_to"`
	Format     string `json:"format"`
}

type enqueuedResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// Create handles POST /api/compliance/{employeeID}/export.
// The report is rendered asynchronously; poll the export list for the result.
func (h *ExportHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "ExportHandler.Create"
	employeeID := r.PathValue("employeeID")

	var req exportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	if !report.Format(req.Format).IsValid() {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Format must be 'csv' or 'html'"))
		return
	}
	if _, err := time.Parse(domain.DateLayout, req.PeriodFrom); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Invalid period_from date"))
		return
	}
	if _, err := time.Parse(domain.DateLayout, req.PeriodTo); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "Invalid period_to date"))
		return
	}

	job, err := worker.EnqueueJob(r.Context(), h.queries, worker.JobTypeExportReport,
		worker.ExportReportPayload{
			EmployeeID: employeeID,
			PeriodFrom: req.PeriodFrom,
			PeriodTo:   req.PeriodTo,
			Format:     req.Format,
		})
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Internal(err, op, "Failed to enqueue export"))
		return
	}

	respondJSON(w, http.StatusAccepted, enqueuedResponse{
		JobID:  job.ID.String(),
		Status: job.Status,
	})
}

type exportResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	PeriodFrom     string          `json:"period_from"`
	PeriodTo       string          `json:"period_to"`
	Format         string          `json:"format"`
	Score          int32           `json:"score"`
	Compliant      bool            `json:"compliant"`
	ViolationCount int32           `json:"violation_count"`
	Violations     json.RawMessage `json:"violations,omitempty"`
	DownloadURL    string          `json:"download_url,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// List handles GET /api/compliance/{employeeID}/exports.
func (h *ExportHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "ExportHandler.List"
	employeeID := r.PathValue("employeeID")

	rows, err := h.queries.ListReportExports(r.Context(), repository.ListReportExportsParams{
		EmployeeID: employeeID,
		Limit:      50,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Internal(err, op, "Failed to list exports"))
		return
	}

	exports := make([]exportResponse, 0, len(rows))
	for _, row := range rows {
		resp := exportResponse{
			ID:             row.ID.String(),
			EmployeeID:     row.EmployeeID,
			PeriodFrom:     row.PeriodFrom,
			PeriodTo:       row.PeriodTo,
			Format:         row.Format,
			Score:          row.Score,
			Compliant:      row.Compliant,
			ViolationCount: row.ViolationCount,
			CreatedAt:      row.CreatedAt,
		}
		if row.Violations.Valid {
			resp.Violations = json.RawMessage(row.Violations.RawMessage)
		}

		url, err := h.store.URL(r.Context(), row.StorageKey, downloadURLTTL)
		if err != nil {
			// The record is still useful without a link.
			h.logger.Warn("failed to generate export URL", "export_id", row.ID, "error", err)
		} else {
			resp.DownloadURL = url
		}

		exports = append(exports, resp)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"exports": exports})
}
