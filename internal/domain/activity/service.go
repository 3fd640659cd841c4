package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

const defaultListLimit = 50

// Service handles activity log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// LogActivity logs an activity entry, filling the timestamp and actor when missing.
func (s *Service) LogActivity(ctx context.Context, entry *ActivityEntry) error {
	if entry == nil || entry.ActivityType == "" {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if entry.Actor == "" {
		entry.Actor = ActorFromContext(ctx)
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// GetRecentActivity lists activity entries with filtering, newest first.
func (s *Service) GetRecentActivity(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	}
	return s.repo.List(ctx, opts)
}

// Record appends entry through l without failing the caller. Errors are
// logged at WARN. A nil l is a no-op.
func Record(ctx context.Context, l Logger, logger *slog.Logger, entry *ActivityEntry) {
	if l == nil {
		return
	}
	if err := l.LogActivity(ctx, entry); err != nil && logger != nil {
		logger.Warn("failed to record activity", "type", entry.ActivityType, "error", err)
	}
}

// Details encodes v as the JSON details payload, or "" if it cannot.
func Details(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
