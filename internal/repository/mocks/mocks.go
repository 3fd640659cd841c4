package mocks

import (
	"context"

	"github.com/rpggio/costtrack/internal/domain/activity"
	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/domain/inventory"
	"github.com/rpggio/costtrack/internal/domain/labor"
	"github.com/rpggio/costtrack/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ExpenseRepository is a mock for expense.Repository.
type ExpenseRepository struct {
	mock.Mock
}

func (m *ExpenseRepository) Create(ctx context.Context, exp *expense.Expense) error {
	args := m.Called(ctx, exp)
	return args.Error(0)
}

func (m *ExpenseRepository) Get(ctx context.Context, id string) (*expense.Expense, error) {
	args := m.Called(ctx, id)
	if exp, ok := args.Get(0).(*expense.Expense); ok {
		return exp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ExpenseRepository) List(ctx context.Context) ([]expense.Expense, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]expense.Expense); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ExpenseRepository) ListByProject(ctx context.Context, projectID string) ([]expense.Expense, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]expense.Expense); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ExpenseRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// LaborRepository is a mock for labor.Repository.
type LaborRepository struct {
	mock.Mock
}

func (m *LaborRepository) Create(ctx context.Context, rec *labor.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *LaborRepository) Get(ctx context.Context, id string) (*labor.Record, error) {
	args := m.Called(ctx, id)
	if rec, ok := args.Get(0).(*labor.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LaborRepository) List(ctx context.Context) ([]labor.Record, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]labor.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LaborRepository) ListByProject(ctx context.Context, projectID string) ([]labor.Record, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]labor.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LaborRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// InventoryRepository is a mock for inventory.Repository.
type InventoryRepository struct {
	mock.Mock
}

func (m *InventoryRepository) Create(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *InventoryRepository) Get(ctx context.Context, id string) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if item, ok := args.Get(0).(*inventory.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *InventoryRepository) List(ctx context.Context) ([]inventory.Item, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]inventory.Item); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *InventoryRepository) Update(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *InventoryRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Persister is a mock for repository.Persister.
type Persister struct {
	mock.Mock
}

func (m *Persister) Load(ctx context.Context, namespace, key string) ([]byte, error) {
	args := m.Called(ctx, namespace, key)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Persister) Save(ctx context.Context, namespace, key string, data []byte) error {
	args := m.Called(ctx, namespace, key, data)
	return args.Error(0)
}

func (m *Persister) Keys(ctx context.Context, namespace string) ([]string, error) {
	args := m.Called(ctx, namespace)
	if keys, ok := args.Get(0).([]string); ok {
		return keys, args.Error(1)
	}
	return nil, args.Error(1)
}
