package expense

import "context"

// Repository provides persistence for expenses.
type Repository interface {
	Create(ctx context.Context, exp *Expense) error
	Get(ctx context.Context, id string) (*Expense, error)
	List(ctx context.Context) ([]Expense, error)
	ListByProject(ctx context.Context, projectID string) ([]Expense, error)
	Delete(ctx context.Context, id string) error
}
