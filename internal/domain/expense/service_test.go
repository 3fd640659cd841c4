package expense_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/costtrack/internal/domain/activity"
	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/repository"
	"github.com/rpggio/costtrack/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpenseService_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ExpenseRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := expense.NewService(repo, nil, nil)
	exp, err := svc.Create(ctx, expense.CreateRequest{ProjectID: "p1", Amount: 2500, Description: " Panel sevkiyatı "})
	require.NoError(t, err)
	require.NotEmpty(t, exp.ID)
	require.Equal(t, expense.TypeMaterial, exp.Type)
	require.Equal(t, expense.DefaultCategory, exp.Category)
	require.Equal(t, "Panel sevkiyatı", exp.Description)
	require.Equal(t, 0, exp.Date.Hour())
	require.False(t, exp.CreatedAt.IsZero())
}

func TestExpenseService_CreateKeepsDate(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ExpenseRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	qty := 40.0
	exp, err := expense.NewService(repo, nil, nil).Create(ctx, expense.CreateRequest{
		ProjectID:   "p1",
		Amount:      12_000,
		Quantity:    &qty,
		Unit:        "ton",
		Category:    "Akaryakıt",
		Description: "Motorin",
		Date:        &date,
		Type:        expense.TypeFuel,
	})
	require.NoError(t, err)
	require.Equal(t, date, exp.Date)
	require.Equal(t, expense.TypeFuel, exp.Type)
	require.Equal(t, "Akaryakıt", exp.Category)
}

func TestExpenseService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ExpenseRepository{}
	svc := expense.NewService(repo, nil, nil)
	negative := -1.0

	for name, req := range map[string]expense.CreateRequest{
		"missing project":   {Amount: 10, Description: "x"},
		"zero amount":       {ProjectID: "p1", Description: "x"},
		"negative amount":   {ProjectID: "p1", Amount: -5, Description: "x"},
		"empty description": {ProjectID: "p1", Amount: 10, Description: " "},
		"unknown type":      {ProjectID: "p1", Amount: 10, Description: "x", Type: "TRAVEL"},
		"negative quantity": {ProjectID: "p1", Amount: 10, Description: "x", Quantity: &negative},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, req)
			require.ErrorIs(t, err, expense.ErrInvalidInput)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExpenseService_CreateUnknownProject(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ExpenseRepository{}
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrForeignKeyViolation)

	_, err := expense.NewService(repo, nil, nil).Create(ctx, expense.CreateRequest{ProjectID: "ghost", Amount: 10, Description: "x"})
	require.ErrorIs(t, err, expense.ErrProjectNotFound)
}

func TestExpenseService_List(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ExpenseRepository{}
	repo.On("List", ctx).Return([]expense.Expense{{ID: "a"}, {ID: "b"}}, nil)
	repo.On("ListByProject", ctx, "p1").Return([]expense.Expense{{ID: "a"}}, nil)

	svc := expense.NewService(repo, nil, nil)
	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	one, err := svc.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, one, 1)
}

func TestExpenseService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ExpenseRepository{}
	repo.On("Get", ctx, "e1").Return(&expense.Expense{ID: "e1", ProjectID: "p1", Amount: 500}, nil)
	repo.On("Delete", ctx, "e1").Return(nil)
	repo.On("Get", ctx, "missing").Return((*expense.Expense)(nil), repository.ErrNotFound)
	actRepo := &mocks.ActivityRepository{}
	actRepo.On("Log", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeExpenseDeleted && e.ProjectID == "p1" && e.EntityID == "e1"
	})).Return(nil)

	svc := expense.NewService(repo, activity.NewService(actRepo, nil), nil)
	require.NoError(t, svc.Delete(ctx, "e1"))
	require.ErrorIs(t, svc.Delete(ctx, "missing"), expense.ErrExpenseNotFound)
	actRepo.AssertExpectations(t)
}
