// Package export renders expenses and project reports as CSV, XLSX and PDF.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/domain/metrics"
	"github.com/rpggio/costtrack/internal/domain/project"
	"github.com/rpggio/costtrack/internal/timeutil"
	"github.com/shopspring/decimal"
)

// Format is an output file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts a format name case-insensitively. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv; charset=utf-8"
	}
}

// MissingProject stands in for the name of a project that no longer exists.
const MissingProject = "N/A"

// ExpenseHeader is the column header row of expense exports.
var ExpenseHeader = []string{"ID", "Proje", "Kategori", "Açıklama", "Tutar", "Tarih", "Tip"}

// ExpenseRow is an expense joined with the name of its project.
type ExpenseRow struct {
	expense.Expense
	ProjectName string
}

// JoinProjects pairs each expense with its project name.
func JoinProjects(expenses []expense.Expense, projects []project.Project) []ExpenseRow {
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	rows := make([]ExpenseRow, 0, len(expenses))
	for _, e := range expenses {
		name, ok := names[e.ProjectID]
		if !ok {
			name = MissingProject
		}
		rows = append(rows, ExpenseRow{Expense: e, ProjectName: name})
	}
	return rows
}

func (r ExpenseRow) cells() []string {
	return []string{
		r.ID,
		r.ProjectName,
		r.Category,
		r.Description,
		Money(r.Amount, 2),
		r.Date.Format(timeutil.DateLayout),
		string(r.Type),
	}
}

// Report is the content of a project report.
type Report struct {
	Project     project.Project
	Metrics     metrics.Metrics
	Expenses    []expense.Expense
	Narrative   string
	GeneratedAt time.Time
}

// FileName is the download name of an export created at t.
func FileName(f Format, t time.Time) string {
	return fmt.Sprintf("MegaCost_Rapor_%s.%s", t.Format(timeutil.DateLayout), f)
}

// Money formats v with places decimals.
func Money(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}
