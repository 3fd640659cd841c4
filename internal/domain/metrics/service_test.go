package metrics_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/domain/labor"
	"github.com/rpggio/costtrack/internal/domain/metrics"
	"github.com/rpggio/costtrack/internal/domain/project"
	"github.com/rpggio/costtrack/internal/repository"
	"github.com/rpggio/costtrack/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

func TestMetricsService(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	p := project.Project{
		ID:              "p1",
		Category:        project.CategoryRoad,
		TotalBudget:     1_000_000,
		Capacity:        10,
		StartDate:       now.Add(-10 * 24 * time.Hour),
		PercentComplete: 20,
	}

	projects := &mocks.ProjectRepository{}
	projects.On("Get", ctx, "p1").Return(&p, nil)
	projects.On("Get", ctx, "missing").Return((*project.Project)(nil), repository.ErrNotFound)
	projects.On("List", ctx).Return([]project.Project{p}, nil)
	expenses := &mocks.ExpenseRepository{}
	expenses.On("ListByProject", ctx, "p1").Return([]expense.Expense{{ProjectID: "p1", Amount: 100_000}}, nil)
	expenses.On("List", ctx).Return([]expense.Expense{{ProjectID: "p1", Amount: 100_000}}, nil)
	laborRepo := &mocks.LaborRepository{}
	laborRepo.On("ListByProject", ctx, "p1").Return([]labor.Record{{ProjectID: "p1", Hours: 8, DailyRate: 2000}}, nil)
	laborRepo.On("List", ctx).Return([]labor.Record{{ProjectID: "p1", Hours: 8, DailyRate: 2000}}, nil)

	svc := metrics.NewService(projects, expenses, laborRepo).WithClock(func() time.Time { return now })

	m, err := svc.ProjectMetrics(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, 102_000.0, m.ActualCost)
	require.Equal(t, 2000.0, m.LaborCost)
	require.Equal(t, 10.0, m.DaysPassed)
	require.Equal(t, 10_200.0, m.BurnRate)

	_, err = svc.ProjectMetrics(ctx, "missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)

	pf, err := svc.Portfolio(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, pf.ProjectCount)
	require.Equal(t, 102_000.0, pf.TotalActualCost)
}
