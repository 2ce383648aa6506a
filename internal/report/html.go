package report

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"

	"github.com/klinikwerk/shiftwarden/internal/domain"
)

// =============================================================================
// HTML Generator
// =============================================================================

// HTMLGenerator renders a compliance report as a standalone HTML document
// with findings grouped by rule type.
type HTMLGenerator struct {
	tmpl   *template.Template
	logger *slog.Logger
}

// NewHTMLGenerator creates a new HTML report generator.
func NewHTMLGenerator(logger *slog.Logger) *HTMLGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTMLGenerator{
		tmpl:   template.Must(template.New("report").Funcs(templateFuncs).Parse(reportTemplate)),
		logger: logger,
	}
}

// Format returns the output format of this generator.
func (g *HTMLGenerator) Format() Format {
	return FormatHTML
}

// Generate creates a report and writes it to the provided writer.
func (g *HTMLGenerator) Generate(ctx context.Context, data *Data, w io.Writer) (int64, error) {
	page := htmlPage{
		Data:       data,
		Groups:     GroupByType(data.Report.Violations),
		Violations: data.Report.CountBySeverity(domain.SeverityViolation),
		Warnings:   data.Report.CountBySeverity(domain.SeverityWarning),
	}

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, page); err != nil {
		return 0, fmt.Errorf("render template: %w", err)
	}

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("write output: %w", err)
	}

	g.logger.Debug("HTML report rendered",
		"employee_id", data.EmployeeID,
		"size_bytes", n,
		"finding_count", len(data.Report.Violations),
	)

	return int64(n), nil
}

// htmlPage is the root template context.
type htmlPage struct {
	Data       *Data
	Groups     []ViolationGroup
	Violations int
	Warnings   int
}

var templateFuncs = template.FuncMap{
	"typeLabel":     TypeLabel,
	"severityLabel": SeverityLabel,
	"severityColor": SeverityColor,
}

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Compliance Report {{.Data.EmployeeID}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; color: #1F2937; margin: 2rem; }
  h1 { font-size: 1.4rem; }
  h2 { font-size: 1.1rem; margin-top: 1.5rem; }
  .meta { color: #6B7280; font-size: 0.9rem; }
  .score { font-size: 2rem; font-weight: 700; }
  .badge { display: inline-block; padding: 0.1rem 0.5rem; border-radius: 0.25rem; color: #fff; font-size: 0.8rem; }
  table { border-collapse: collapse; width: 100%; margin-top: 0.5rem; }
  th, td { text-align: left; padding: 0.4rem 0.6rem; border-bottom: 1px solid #E5E7EB; font-size: 0.9rem; }
  th { background: #F9FAFB; }
</style>
</head>
<body>
<h1>Working Time Compliance Report</h1>
<p class="meta">Employee {{.Data.EmployeeID}} &middot; {{.Data.PeriodFrom}} to {{.Data.PeriodTo}} &middot; generated {{.Data.GeneratedAt.Format "2006-01-02 15:04"}}</p>

<p class="score">{{.Data.Report.Score}} / 100</p>
<p>
{{if .Data.Report.Compliant}}<span class="badge" style="background:#16A34A">Compliant</span>
{{else}}<span class="badge" style="background:#DC2626">Non-compliant</span>{{end}}
&nbsp;{{.Violations}} violation(s), {{.Warnings}} warning(s)
</p>

{{if .Groups}}
{{range .Groups}}
<h2>{{typeLabel .Type}}</h2>
<table>
<tr><th>Severity</th><th>Date</th><th>Message</th><th>Actual</th><th>Limit</th></tr>
{{range .Findings}}
<tr>
  <td><span class="badge" style="background:{{severityColor .Severity}}">{{severityLabel .Severity}}</span></td>
  <td>{{.Details.Date}}</td>
  <td>{{.Message}}</td>
  <td>{{printf "%.2f" .Details.Actual}}</td>
  <td>{{printf "%.2f" .Details.Limit}}</td>
</tr>
{{end}}
</table>
{{end}}
{{else}}
<p>No findings for this period.</p>
{{end}}

{{if .Data.Shifts}}
<h2>Shifts in Period</h2>
<table>
<tr><th>Date</th><th>Start</th><th>End</th><th>Break (min)</th></tr>
{{range .Data.Shifts}}
<tr><td>{{.Date}}</td><td>{{.StartTime}}</td><td>{{.EndTime}}</td><td>{{.BreakMinutes}}</td></tr>
{{end}}
</table>
{{end}}
</body>
</html>
`
