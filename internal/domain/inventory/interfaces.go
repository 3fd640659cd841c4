package inventory

import "context"

// Repository provides persistence for inventory items.
type Repository interface {
	Create(ctx context.Context, item *Item) error
	Get(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context) ([]Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id string) error
}
