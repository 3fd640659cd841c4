package inventory

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

// Service handles stock keeping.
type Service struct {
	repo     Repository
	activity activity.Logger
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new inventory service. activityLog may be nil.
func NewService(repo Repository, activityLog activity.Logger, logger *slog.Logger) *Service {
	return &Service{repo: repo, activity: activityLog, logger: logger, now: time.Now}
}

// CreateRequest describes a new inventory item.
type CreateRequest struct {
	Name     string
	Category string
	Quantity float64
	Unit     string
	MinStock float64
}

// Create adds an item to the stock list.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Quantity < 0 || req.MinStock < 0 {
		return nil, fmt.Errorf("%w: quantities must not be negative", ErrInvalidInput)
	}

	item := &Item{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		Quantity:    req.Quantity,
		Unit:        strings.TrimSpace(req.Unit),
		MinStock:    req.MinStock,
		LastUpdated: s.now(),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("creating inventory item: %w", err)
	}

	activity.Record(ctx, s.activity, s.logger, &activity.ActivityEntry{
		EntityID:     item.ID,
		ActivityType: activity.TypeInventoryAdded,
		Summary:      fmt.Sprintf("%s added: %g %s", item.Name, item.Quantity, item.Unit),
	})
	return item, nil
}

// Get fetches an item by ID.
func (s *Service) Get(ctx context.Context, id string) (*Item, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("getting inventory item: %w", err)
	}
	return item, nil
}

// List returns every item ordered by name.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing inventory: %w", err)
	}
	return items, nil
}

// Critical returns the items at or below their minimum stock.
func (s *Service) Critical(ctx context.Context) ([]Item, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var critical []Item
	for _, item := range items {
		if item.Status() == StatusCritical {
			critical = append(critical, item)
		}
	}
	return critical, nil
}

// SetQuantity replaces the on-hand quantity and refreshes LastUpdated.
func (s *Service) SetQuantity(ctx context.Context, id string, quantity float64) (*Item, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := item.Quantity
	item.Quantity = quantity
	item.LastUpdated = s.now()

	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("updating inventory item: %w", err)
	}

	activity.Record(ctx, s.activity, s.logger, &activity.ActivityEntry{
		EntityID:     item.ID,
		ActivityType: activity.TypeInventoryAdjusted,
		Summary:      fmt.Sprintf("%s: %g -> %g %s", item.Name, previous, quantity, item.Unit),
		Details:      activity.Details(map[string]any{"previous": previous, "quantity": quantity, "status": item.Status()}),
	})
	return item, nil
}

// Delete removes an item.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("deleting inventory item: %w", err)
	}
	activity.Record(ctx, s.activity, s.logger, &activity.ActivityEntry{
		EntityID:     id,
		ActivityType: activity.TypeInventoryDeleted,
		Summary:      "inventory item deleted",
	})
	return nil
}
