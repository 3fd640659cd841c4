package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/domain/metrics"
	"github.com/rpggio/costtrack/internal/domain/project"
)

// Service gathers export data from the domain services.
type Service struct {
	projects *project.Service
	expenses *expense.Service
	metrics  *metrics.Service
	dir      string
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates an export service writing saved files under dir.
func NewService(projects *project.Service, expenses *expense.Service, metricsSvc *metrics.Service, dir string, logger *slog.Logger) *Service {
	return &Service{projects: projects, expenses: expenses, metrics: metricsSvc, dir: dir, logger: logger, now: time.Now}
}

// ExpenseRows lists expenses, optionally for one project, joined with project names.
func (s *Service) ExpenseRows(ctx context.Context, projectID string) ([]ExpenseRow, error) {
	if projectID != "" {
		if _, err := s.projects.Get(ctx, projectID); err != nil {
			return nil, err
		}
	}
	expenses, err := s.expenses.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	return JoinProjects(expenses, projects), nil
}

// WriteExpenses writes the expense export in format f.
func (s *Service) WriteExpenses(ctx context.Context, w io.Writer, f Format, projectID string) error {
	rows, err := s.ExpenseRows(ctx, projectID)
	if err != nil {
		return err
	}
	switch f {
	case FormatCSV:
		return WriteExpensesCSV(w, rows)
	case FormatXLSX:
		return WriteExpensesXLSX(w, rows)
	default:
		return fmt.Errorf("%w: %q for expenses", ErrUnsupportedFormat, f)
	}
}

// BuildReport collects the content of a project report.
func (s *Service) BuildReport(ctx context.Context, projectID, narrative string) (Report, error) {
	snap, err := s.metrics.ProjectSnapshot(ctx, projectID)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Project:     snap.Project,
		Metrics:     snap.Metrics,
		Expenses:    snap.Expenses,
		Narrative:   narrative,
		GeneratedAt: s.now(),
	}, nil
}

// WriteProjectReport renders a project's PDF report.
func (s *Service) WriteProjectReport(ctx context.Context, w io.Writer, projectID, narrative string) error {
	report, err := s.BuildReport(ctx, projectID, narrative)
	if err != nil {
		return err
	}
	return WriteProjectReportPDF(w, report)
}

// SaveExpenses writes the expense export into the export directory and
// returns the file path.
func (s *Service) SaveExpenses(ctx context.Context, f Format, projectID string) (string, error) {
	var buf bytes.Buffer
	if err := s.WriteExpenses(ctx, &buf, f, projectID); err != nil {
		return "", err
	}
	return s.save(FileName(f, s.now()), buf.Bytes())
}

// SaveProjectReport writes a project's PDF report into the export directory.
func (s *Service) SaveProjectReport(ctx context.Context, projectID, narrative string) (string, error) {
	var buf bytes.Buffer
	if err := s.WriteProjectReport(ctx, &buf, projectID, narrative); err != nil {
		return "", err
	}
	name := fmt.Sprintf("MegaCost_Proje_%s_%s.pdf", projectID, s.now().Format("2006-01-02"))
	return s.save(name, buf.Bytes())
}

func (s *Service) save(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("export written", "path", path, "bytes", len(data))
	}
	return path, nil
}
