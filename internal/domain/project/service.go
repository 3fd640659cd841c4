package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/costtrack/internal/domain/activity"
	"github.com/rpggio/costtrack/internal/repository"
)

// Service handles project operations.
type Service struct {
	repo     Repository
	activity activity.Logger
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new project service. activityLog may be nil.
func NewService(repo Repository, activityLog activity.Logger, logger *slog.Logger) *Service {
	return &Service{repo: repo, activity: activityLog, logger: logger, now: time.Now}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	ID              string
	Name            string
	Category        Category
	Location        string
	Status          Status
	TotalBudget     float64
	Capacity        float64
	StartDate       time.Time
	TargetEndDate   *time.Time
	PercentComplete float64
	TargetCO2Saved  *float64
}

// UpdateRequest carries the mutable project fields. Nil fields are left unchanged.
type UpdateRequest struct {
	ID              string
	PercentComplete *float64
	Status          *Status
	TargetEndDate   *time.Time
}

// Create validates and stores a new project.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !req.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.Category)
	}
	status, ok := NormalizeStatus(req.Status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	if req.TotalBudget <= 0 {
		return nil, fmt.Errorf("%w: total budget must be positive", ErrInvalidInput)
	}
	if req.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must not be negative", ErrInvalidInput)
	}
	if err := validatePercent(req.PercentComplete); err != nil {
		return nil, err
	}

	start := req.StartDate
	if start.IsZero() {
		start = s.now()
	}
	if req.TargetEndDate != nil && req.TargetEndDate.Before(start) {
		return nil, fmt.Errorf("%w: target end date precedes start date", ErrInvalidInput)
	}

	id := req.ID
	if strings.TrimSpace(id) == "" {
		id = uuid.NewString()
	}

	proj := &Project{
		ID:              id,
		Name:            strings.TrimSpace(req.Name),
		Category:        req.Category,
		Location:        req.Location,
		Status:          status,
		TotalBudget:     req.TotalBudget,
		Capacity:        req.Capacity,
		StartDate:       start,
		TargetEndDate:   req.TargetEndDate,
		PercentComplete: req.PercentComplete,
		TargetCO2Saved:  req.TargetCO2Saved,
		CreatedAt:       s.now(),
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return nil, ErrProjectExists
		}
		return nil, fmt.Errorf("creating project: %w", err)
	}

	activity.Record(ctx, s.activity, s.logger, &activity.ActivityEntry{
		ProjectID:    proj.ID,
		EntityID:     proj.ID,
		ActivityType: activity.TypeProjectCreated,
		Summary:      fmt.Sprintf("project %q created", proj.Name),
	})
	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns every project in creation order.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// Update replaces progress, status or target end date.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Project, error) {
	proj, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if req.PercentComplete != nil {
		if err := validatePercent(*req.PercentComplete); err != nil {
			return nil, err
		}
		proj.PercentComplete = *req.PercentComplete
		changes["percent_complete"] = proj.PercentComplete
	}
	if req.Status != nil {
		status, ok := NormalizeStatus(*req.Status)
		if !ok || *req.Status == "" {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		proj.Status = status
		changes["status"] = status
	}
	if req.TargetEndDate != nil {
		if req.TargetEndDate.Before(proj.StartDate) {
			return nil, fmt.Errorf("%w: target end date precedes start date", ErrInvalidInput)
		}
		end := *req.TargetEndDate
		proj.TargetEndDate = &end
		changes["target_end_date"] = end
	}
	if len(changes) == 0 {
		return proj, nil
	}

	if err := s.repo.Update(ctx, proj); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}

	activity.Record(ctx, s.activity, s.logger, &activity.ActivityEntry{
		ProjectID:    proj.ID,
		EntityID:     proj.ID,
		ActivityType: activity.TypeProjectUpdated,
		Summary:      fmt.Sprintf("project %q updated", proj.Name),
		Details:      activity.Details(changes),
	})
	return proj, nil
}

// Delete removes a project. Its expenses and labor records go with it.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}
	activity.Record(ctx, s.activity, s.logger, &activity.ActivityEntry{
		ProjectID:    id,
		EntityID:     id,
		ActivityType: activity.TypeProjectDeleted,
		Summary:      "project deleted with its expenses and labor records",
	})
	return nil
}

// SeedDemo stores the demo projects when no project exists yet. It reports
// whether anything was seeded.
func (s *Service) SeedDemo(ctx context.Context) (bool, error) {
	existing, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	for _, req := range DemoProjects() {
		if _, err := s.Create(ctx, req); err != nil {
			return false, fmt.Errorf("seeding %q: %w", req.Name, err)
		}
	}
	if s.logger != nil {
		s.logger.Info("seeded demo projects", "count", len(DemoProjects()))
	}
	return true, nil
}

func validatePercent(pct float64) error {
	if pct < 0 || pct > 100 {
		return fmt.Errorf("%w: percent complete must be within 0-100", ErrInvalidInput)
	}
	return nil
}
