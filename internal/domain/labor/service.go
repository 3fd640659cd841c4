package labor

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
	"github.com/rpggio/costtrack/internal/timeutil"
)

// Service handles timesheet entry.
type Service struct {
	repo     Repository
	activity activity.Logger
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new labor service. activityLog may be nil.
func NewService(repo Repository, activityLog activity.Logger, logger *slog.Logger) *Service {
	return &Service{repo: repo, activity: activityLog, logger: logger, now: time.Now}
}

// CreateRequest describes a new timesheet entry.
type CreateRequest struct {
	ProjectID  string
	WorkerName string
	Role       string
	Hours      float64
	Overtime   float64
	Date       *time.Time
	DailyRate  float64
}

// Create records a timesheet entry against an existing project.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Record, error) {
	switch {
	case strings.TrimSpace(req.ProjectID) == "":
		return nil, fmt.Errorf("%w: project_id is required", ErrInvalidInput)
	case strings.TrimSpace(req.WorkerName) == "":
		return nil, fmt.Errorf("%w: worker_name is required", ErrInvalidInput)
	case req.Hours < 0 || req.Overtime < 0:
		return nil, fmt.Errorf("%w: hours must not be negative", ErrInvalidInput)
	case req.DailyRate < 0:
		return nil, fmt.Errorf("%w: daily_rate must not be negative", ErrInvalidInput)
	}

	now := s.now()
	date := timeutil.Today(now)
	if req.Date != nil {
		date = *req.Date
	}

	rec := &Record{
		ID:         uuid.NewString(),
		ProjectID:  req.ProjectID,
		WorkerName: strings.TrimSpace(req.WorkerName),
		Role:       strings.TrimSpace(req.Role),
		Hours:      req.Hours,
		Overtime:   req.Overtime,
		Date:       date,
		DailyRate:  req.DailyRate,
		CreatedAt:  now,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("creating labor record: %w", err)
	}

	activity.Record(ctx, s.activity, s.logger, &activity.ActivityEntry{
		ProjectID:    rec.ProjectID,
		EntityID:     rec.ID,
		ActivityType: activity.TypeLaborAdded,
		Summary:      fmt.Sprintf("%s logged %.1fh (+%.1fh overtime)", rec.WorkerName, rec.Hours, rec.Overtime),
	})
	return rec, nil
}

// Get fetches a labor record by ID.
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("getting labor record: %w", err)
	}
	return rec, nil
}

// List returns labor records newest first, restricted to projectID when it is set.
func (s *Service) List(ctx context.Context, projectID string) ([]Record, error) {
	var (
		records []Record
		err     error
	)
	if projectID == "" {
		records, err = s.repo.List(ctx)
	} else {
		records, err = s.repo.ListByProject(ctx, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("listing labor records: %w", err)
	}
	return records, nil
}

// Delete removes a labor record.
func (s *Service) Delete(ctx context.Context, id string) error {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("deleting labor record: %w", err)
	}
	activity.Record(ctx, s.activity, s.logger, &activity.ActivityEntry{
		ProjectID:    rec.ProjectID,
		EntityID:     rec.ID,
		ActivityType: activity.TypeLaborDeleted,
		Summary:      fmt.Sprintf("labor record for %s deleted", rec.WorkerName),
	})
	return nil
}
