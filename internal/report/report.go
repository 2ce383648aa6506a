// Package report renders compliance scan results into exportable documents.
//
// This package defines a Generator interface implemented by CSVGenerator and
// HTMLGenerator, along with common helpers for labeling and formatting
// findings for display.
package report

import (
	"context"
	"io"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/klinikwerk/shiftwarden/internal/domain"
)

// =============================================================================
// Formats
// =============================================================================

// Format identifies a report output format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
)

// IsValid returns true if the format is a recognized value.
func (f Format) IsValid() bool {
	switch f {
	case FormatCSV, FormatHTML:
		return true
	}
	return false
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatHTML:
		return ".html"
	default:
		return ".bin"
	}
}

// =============================================================================
// Generator Interface
// =============================================================================

// Data is everything a generator needs to render one employee's report.
type Data struct {
	EmployeeID  string
	PeriodFrom  string
	PeriodTo    string
	GeneratedAt time.Time
	Rules       domain.RuleSet
	Shifts      []domain.Shift
	Report      domain.ComplianceReport
}

// Generator defines the interface for report generators.
// Implementations handle the specifics of each format (CSV, HTML).
type Generator interface {
	// Generate creates a report and writes it to the provided writer.
	// Returns the number of bytes written and any error.
	Generate(ctx context.Context, data *Data, w io.Writer) (int64, error)

	// Format returns the output format of this generator.
	Format() Format
}

// =============================================================================
// Severity Colors
// =============================================================================

// SeverityColors maps severity levels to display colors.
var SeverityColors = map[domain.Severity]string{
	domain.SeverityViolation: "#DC2626", // Red-600
	domain.SeverityWarning:   "#F59E0B", // Amber-500
}

// SeverityColor returns the color for a severity level.
func SeverityColor(severity domain.Severity) string {
	if color, ok := SeverityColors[severity]; ok {
		return color
	}
	return "#6B7280"
}

// =============================================================================
// Labels
// =============================================================================

var titleCaser = cases.Title(language.English)

// TypeLabel returns a human-readable label for a violation type, e.g.
// "max_daily_hours" becomes "Max Daily Hours".
func TypeLabel(t domain.ViolationType) string {
	return titleCaser.String(strings.ReplaceAll(string(t), "_", " "))
}

// SeverityLabel returns a human-readable label for a severity.
func SeverityLabel(s domain.Severity) string {
	return titleCaser.String(string(s))
}

// GroupByType groups findings by violation type, preserving the order in
// which each type first appears.
func GroupByType(violations []domain.ComplianceViolation) []ViolationGroup {
	var groups []ViolationGroup
	index := make(map[domain.ViolationType]int)
	for _, v := range violations {
		i, ok := index[v.Type]
		if !ok {
			i = len(groups)
			index[v.Type] = i
			groups = append(groups, ViolationGroup{Type: v.Type})
		}
		groups[i].Findings = append(groups[i].Findings, v)
	}
	return groups
}

// ViolationGroup is all findings of one type, for grouped display.
type ViolationGroup struct {
	Type     domain.ViolationType
	Findings []domain.ComplianceViolation
}
