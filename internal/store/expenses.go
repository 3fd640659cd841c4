package store

import (
	"context"
	"sort"

	"github.com/hashicorp/go-memdb"
	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/repository"
)

// ExpenseRepository implements expense.Repository on the store.
type ExpenseRepository struct {
	s *Store
}

var _ expense.Repository = (*ExpenseRepository)(nil)

// NewExpenseRepository creates an expense repository.
func NewExpenseRepository(s *Store) *ExpenseRepository {
	return &ExpenseRepository{s: s}
}

// Create inserts an expense. The owning project must exist.
func (r *ExpenseRepository) Create(ctx context.Context, exp *expense.Expense) error {
	row := *exp
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		ok, err := projectExists(txn, row.ProjectID)
		if err != nil {
			return err
		}
		if !ok {
			return repository.ErrForeignKeyViolation
		}
		return insertNew(txn, TableExpenses, row.ID, &row)
	}, TableExpenses)
}

// Get fetches an expense by ID.
func (r *ExpenseRepository) Get(_ context.Context, id string) (*expense.Expense, error) {
	obj, err := r.s.db.Txn(false).First(TableExpenses, indexID, id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, repository.ErrNotFound
	}
	out := *obj.(*expense.Expense)
	return &out, nil
}

// List returns every expense, newest first.
func (r *ExpenseRepository) List(_ context.Context) ([]expense.Expense, error) {
	return listExpenses(r.s.db.Txn(false), "")
}

// ListByProject returns a project's expenses, newest first.
func (r *ExpenseRepository) ListByProject(_ context.Context, projectID string) ([]expense.Expense, error) {
	return listExpenses(r.s.db.Txn(false), projectID)
}

// Delete removes an expense.
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, func(txn *memdb.Txn) error {
		existing, err := txn.First(TableExpenses, indexID, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return repository.ErrNotFound
		}
		return txn.Delete(TableExpenses, existing)
	}, TableExpenses)
}

func listExpenses(txn *memdb.Txn, projectID string) ([]expense.Expense, error) {
	var (
		it  memdb.ResultIterator
		err error
	)
	if projectID == "" {
		it, err = txn.Get(TableExpenses, indexID)
	} else {
		it, err = txn.Get(TableExpenses, indexProjectID, projectID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]expense.Expense, 0)
	for obj := it.Next(); obj != nil; obj = it.Next() {
		out = append(out, *obj.(*expense.Expense))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
