package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// =============================================================================
// CSV Generator
// =============================================================================

// CSVGenerator renders a compliance report as a flat CSV file, one row per
// finding, suitable for spreadsheet review and archival.
type CSVGenerator struct{}

// NewCSVGenerator creates a new CSV report generator.
func NewCSVGenerator() *CSVGenerator {
	return &CSVGenerator{}
}

// Format returns the output format of this generator.
func (g *CSVGenerator) Format() Format {
	return FormatCSV
}

// Generate creates a report and writes it to the provided writer.
func (g *CSVGenerator) Generate(ctx context.Context, data *Data, w io.Writer) (int64, error) {
	counter := &countingWriter{w: w}
	cw := csv.NewWriter(counter)

	header := []string{"employee_id", "period_from", "period_to", "compliant", "score",
		"type", "severity", "message", "date", "actual", "limit"}
	if err := cw.Write(header); err != nil {
		return counter.n, fmt.Errorf("write header: %w", err)
	}

	compliant := strconv.FormatBool(data.Report.Compliant)
	score := strconv.Itoa(data.Report.Score)

	if len(data.Report.Violations) == 0 {
		row := []string{data.EmployeeID, data.PeriodFrom, data.PeriodTo, compliant, score,
			"", "", "No findings", "", "", ""}
		if err := cw.Write(row); err != nil {
			return counter.n, fmt.Errorf("write row: %w", err)
		}
	}

	for _, v := range data.Report.Violations {
		row := []string{
			data.EmployeeID,
			data.PeriodFrom,
			data.PeriodTo,
			compliant,
			score,
			string(v.Type),
			string(v.Severity),
			v.Message,
			v.Details.Date,
			strconv.FormatFloat(v.Details.Actual, 'f', -1, 64),
			strconv.FormatFloat(v.Details.Limit, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return counter.n, fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return counter.n, fmt.Errorf("flush csv: %w", err)
	}

	return counter.n, nil
}

// countingWriter tracks how many bytes pass through to the underlying writer.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
