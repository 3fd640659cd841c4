package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/domain/labor"
	"github.com/rpggio/costtrack/internal/domain/project"
	"github.com/rpggio/costtrack/internal/repository"
)

// Service loads records and computes metrics over them.
type Service struct {
	projects project.Repository
	expenses expense.Repository
	labor    labor.Repository
	now      func() time.Time
}

// NewService creates a metrics service reading through the given repositories.
func NewService(projects project.Repository, expenses expense.Repository, laborRepo labor.Repository) *Service {
	return &Service{projects: projects, expenses: expenses, labor: laborRepo, now: time.Now}
}

// WithClock replaces the time source. It is meant for tests and replays.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Snapshot is a project together with its cost records.
type Snapshot struct {
	Project  project.Project
	Expenses []expense.Expense
	Labor    []labor.Record
	Metrics  Metrics
}

// ProjectSnapshot loads a project with its records and computes its metrics.
func (s *Service) ProjectSnapshot(ctx context.Context, projectID string) (*Snapshot, error) {
	proj, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	expenses, err := s.expenses.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	records, err := s.labor.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing labor records: %w", err)
	}
	return &Snapshot{
		Project:  *proj,
		Expenses: expenses,
		Labor:    records,
		Metrics:  Compute(*proj, expenses, records, s.now()),
	}, nil
}

// ProjectMetrics computes the metrics of a single project.
func (s *Service) ProjectMetrics(ctx context.Context, projectID string) (Metrics, error) {
	snap, err := s.ProjectSnapshot(ctx, projectID)
	if err != nil {
		return Metrics{}, err
	}
	return snap.Metrics, nil
}

// Portfolio computes metrics for every project plus aggregates.
func (s *Service) Portfolio(ctx context.Context) (Portfolio, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return Portfolio{}, fmt.Errorf("listing projects: %w", err)
	}
	expenses, err := s.expenses.List(ctx)
	if err != nil {
		return Portfolio{}, fmt.Errorf("listing expenses: %w", err)
	}
	records, err := s.labor.List(ctx)
	if err != nil {
		return Portfolio{}, fmt.Errorf("listing labor records: %w", err)
	}
	return ComputePortfolio(projects, expenses, records, s.now()), nil
}
