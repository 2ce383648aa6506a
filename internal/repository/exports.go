package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// ReportExport is a report_exports table row: a rendered compliance report
// stored in object storage, with a snapshot of its findings.
type ReportExport struct {
	ID             uuid.UUID
	EmployeeID     string
	PeriodFrom     string
	PeriodTo       string
	Format         string
	StorageKey     string
	Score          int32
	Compliant      bool
	ViolationCount int32
	Violations     pqtype.NullRawMessage
	CreatedAt      time.Time
}

// CreateReportExportParams contains the values for recording an export.
type CreateReportExportParams struct {
	EmployeeID     string
	PeriodFrom     string
	PeriodTo       string
	Format         string
	StorageKey     string
	Score          int32
	Compliant      bool
	ViolationCount int32
	Violations     pqtype.NullRawMessage
}

const createReportExport = `
INSERT INTO report_exports (employee_id, period_from, period_to, format,
                            storage_key, score, compliant, violation_count, violations)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, employee_id, period_from, period_to, format, storage_key,
          score, compliant, violation_count, violations, created_at
`

// CreateReportExport records a rendered report export.
func (q *Queries) CreateReportExport(ctx context.Context, arg CreateReportExportParams) (ReportExport, error) {
	row := q.db.QueryRowContext(ctx, createReportExport,
		arg.EmployeeID, arg.PeriodFrom, arg.PeriodTo, arg.Format, arg.StorageKey,
		arg.Score, arg.Compliant, arg.ViolationCount, arg.Violations)
	var e ReportExport
	err := row.Scan(&e.ID, &e.EmployeeID, &e.PeriodFrom, &e.PeriodTo, &e.Format,
		&e.StorageKey, &e.Score, &e.Compliant, &e.ViolationCount, &e.Violations, &e.CreatedAt)
	return e, err
}

// ListReportExportsParams pages through an employee's exports.
type ListReportExportsParams struct {
	EmployeeID string
	Limit      int32
}

const listReportExports = `
SELECT id, employee_id, period_from, period_to, format, storage_key,
       score, compliant, violation_count, violations, created_at
FROM report_exports
WHERE employee_id = $1
ORDER BY created_at DESC
LIMIT $2
`

// ListReportExports returns an employee's most recent exports.
func (q *Queries) ListReportExports(ctx context.Context, arg ListReportExportsParams) ([]ReportExport, error) {
	rows, err := q.db.QueryContext(ctx, listReportExports, arg.EmployeeID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exports []ReportExport
	for rows.Next() {
		var e ReportExport
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.PeriodFrom, &e.PeriodTo, &e.Format,
			&e.StorageKey, &e.Score, &e.Compliant, &e.ViolationCount, &e.Violations, &e.CreatedAt); err != nil {
			return nil, err
		}
		exports = append(exports, e)
	}
	return exports, rows.Err()
}
