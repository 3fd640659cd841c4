package insight_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/costtrack/internal/domain/activity"
	"github.com/rpggio/costtrack/internal/domain/expense"
	"github.com/rpggio/costtrack/internal/domain/insight"
	"github.com/rpggio/costtrack/internal/domain/labor"
	"github.com/rpggio/costtrack/internal/domain/metrics"
	"github.com/rpggio/costtrack/internal/domain/project"
	"github.com/rpggio/costtrack/internal/repository"
	"github.com/rpggio/costtrack/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type generatorMock struct {
	mock.Mock
}

func (m *generatorMock) Generate(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}

func solar() *project.Project {
	return &project.Project{
		ID:              "p1",
		Name:            "Manisa GES Projesi",
		Category:        project.CategorySolar,
		TotalBudget:     15_000_000,
		Capacity:        20,
		StartDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PercentComplete: 45,
	}
}

func newMetrics(ctx context.Context) *metrics.Service {
	projects := &mocks.ProjectRepository{}
	projects.On("Get", ctx, "p1").Return(solar(), nil)
	projects.On("Get", ctx, "missing").Return((*project.Project)(nil), repository.ErrNotFound)
	expenses := &mocks.ExpenseRepository{}
	expenses.On("ListByProject", ctx, "p1").Return([]expense.Expense{
		{ProjectID: "p1", Amount: 3_000_000, Category: "Malzeme", Type: expense.TypeMaterial},
	}, nil)
	laborRepo := &mocks.LaborRepository{}
	laborRepo.On("ListByProject", ctx, "p1").Return([]labor.Record{}, nil)
	return metrics.NewService(projects, expenses, laborRepo)
}

func TestBuildSummary(t *testing.T) {
	p := solar()
	m := metrics.Compute(*p, []expense.Expense{{ProjectID: "p1", Amount: 3_000_000, Category: "Malzeme"}}, nil, p.StartDate)

	summary := insight.BuildSummary(*p, m)
	require.True(t, strings.HasPrefix(summary, "PROJE KARNESİ:"))
	require.Contains(t, summary, "Adı: Manisa GES Projesi")
	require.Contains(t, summary, "Tip: GES")
	require.Contains(t, summary, "Tamamlanma Oranı: %45")
	require.Contains(t, summary, "Performans Endeksi (CPI): 2.25")
	require.Contains(t, summary, "Tahmini Final Maliyeti (EAC): 6666667 TL")
	require.Contains(t, summary, "Varyans: 8333333 TL")
	require.Contains(t, summary, `Kategori Detayları: {"Malzeme":3000000}`)
	require.Contains(t, summary, "Karbon Tasarrufu")

	p.Category = project.CategoryRoad
	require.NotContains(t, insight.BuildSummary(*p, m), "Karbon")
	require.True(t, strings.HasPrefix(insight.BuildPrompt(*p, m), insight.RequestPrefix+"PROJE KARNESİ:"))
}

func TestInsightService_Generate(t *testing.T) {
	ctx := context.Background()
	gen := &generatorMock{}
	gen.On("Generate", ctx, insight.SystemInstruction, mock.MatchedBy(func(prompt string) bool {
		return strings.HasPrefix(prompt, "Bu verileri analiz et: ") && strings.Contains(prompt, "CPI): 2.25")
	})).Return("Proje bütçe dahilinde ilerliyor.", nil).Once()

	actRepo := &mocks.ActivityRepository{}
	actRepo.On("Log", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeInsightGenerated && e.ProjectID == "p1"
	})).Return(nil)

	svc := insight.NewService(newMetrics(ctx), gen, activity.NewService(actRepo, nil), nil)
	out, err := svc.Generate(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "Proje bütçe dahilinde ilerliyor.", out.Text)
	require.False(t, out.Fallback)
	gen.AssertExpectations(t)
	actRepo.AssertExpectations(t)
}

func TestInsightService_FallbackOnError(t *testing.T) {
	ctx := context.Background()
	gen := &generatorMock{}
	gen.On("Generate", ctx, mock.Anything, mock.Anything).Return("", errors.New("quota exceeded")).Once()

	out, err := insight.NewService(newMetrics(ctx), gen, nil, nil).Generate(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, insight.FallbackText, out.Text)
	require.True(t, out.Fallback)
	// no retry
	gen.AssertNumberOfCalls(t, "Generate", 1)
}

func TestInsightService_EmptyResponse(t *testing.T) {
	ctx := context.Background()
	gen := &generatorMock{}
	gen.On("Generate", ctx, mock.Anything, mock.Anything).Return("  ", nil)

	out, err := insight.NewService(newMetrics(ctx), gen, nil, nil).Generate(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, insight.EmptyText, out.Text)
}

func TestInsightService_NilGenerator(t *testing.T) {
	ctx := context.Background()
	out, err := insight.NewService(newMetrics(ctx), nil, nil, nil).Generate(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, insight.FallbackText, out.Text)
}

func TestInsightService_UnknownProject(t *testing.T) {
	ctx := context.Background()
	_, err := insight.NewService(newMetrics(ctx), &generatorMock{}, nil, nil).Generate(ctx, "missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}
