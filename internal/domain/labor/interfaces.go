package labor

import "context"

// Repository provides persistence for labor records.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context) ([]Record, error)
	ListByProject(ctx context.Context, projectID string) ([]Record, error)
	Delete(ctx context.Context, id string) error
}
