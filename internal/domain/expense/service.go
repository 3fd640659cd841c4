package expense

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

// Service handles expense entry.
type Service struct {
	repo     Repository
	activity activity.Logger
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new expense service. activityLog may be nil.
func NewService(repo Repository, activityLog activity.Logger, logger *slog.Logger) *Service {
	return &Service{repo: repo, activity: activityLog, logger: logger, now: time.Now}
}

// CreateRequest describes a new expense.
type CreateRequest struct {
	ProjectID   string
	Amount      float64
	Quantity    *float64
	Unit        string
	Category    string
	Description string
	Date        *time.Time
	Type        Type
}

// Create records an expense against an existing project.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Expense, error) {
	if err := validateCreate(&req); err != nil {
		return nil, err
	}

	now := s.now()
	date := timeutil.Today(now)
	if req.Date != nil {
		date = *req.Date
	}

	exp := &Expense{
		ID:          uuid.NewString(),
		ProjectID:   req.ProjectID,
		Amount:      req.Amount,
		Quantity:    req.Quantity,
		Unit:        strings.TrimSpace(req.Unit),
		Category:    req.Category,
		Description: strings.TrimSpace(req.Description),
		Date:        date,
		Type:        req.Type,
		CreatedAt:   now,
	}

	if err := s.repo.Create(ctx, exp); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("creating expense: %w", err)
	}

	activity.Record(ctx, s.activity, s.logger, &activity.ActivityEntry{
		ProjectID:    exp.ProjectID,
		EntityID:     exp.ID,
		ActivityType: activity.TypeExpenseAdded,
		Summary:      fmt.Sprintf("%s expense of %.2f: %s", exp.Type, exp.Amount, exp.Description),
	})
	return exp, nil
}

// Get fetches an expense by ID.
func (s *Service) Get(ctx context.Context, id string) (*Expense, error) {
	exp, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("getting expense: %w", err)
	}
	return exp, nil
}

// List returns expenses newest first, restricted to projectID when it is set.
func (s *Service) List(ctx context.Context, projectID string) ([]Expense, error) {
	var (
		expenses []Expense
		err      error
	)
	if projectID == "" {
		expenses, err = s.repo.List(ctx)
	} else {
		expenses, err = s.repo.ListByProject(ctx, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	return expenses, nil
}

// Delete removes an expense.
func (s *Service) Delete(ctx context.Context, id string) error {
	exp, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("deleting expense: %w", err)
	}
	activity.Record(ctx, s.activity, s.logger, &activity.ActivityEntry{
		ProjectID:    exp.ProjectID,
		EntityID:     exp.ID,
		ActivityType: activity.TypeExpenseDeleted,
		Summary:      fmt.Sprintf("expense of %.2f deleted", exp.Amount),
	})
	return nil
}

func validateCreate(req *CreateRequest) error {
	if strings.TrimSpace(req.ProjectID) == "" {
		return fmt.Errorf("%w: project_id is required", ErrInvalidInput)
	}
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	if req.Type == "" {
		req.Type = TypeMaterial
	}
	if !req.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidInput, req.Type)
	}
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		req.Category = DefaultCategory
	}
	return nil
}
