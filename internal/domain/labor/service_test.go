package labor_test

import (
	"context"
	"testing"

	"github.com/rpggio/costtrack/internal/domain/activity"
	"github.com/rpggio/costtrack/internal/domain/labor"
	"github.com/rpggio/costtrack/internal/repository"
	"github.com/rpggio/costtrack/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLaborService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.LaborRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)
	actRepo := &mocks.ActivityRepository{}
	actRepo.On("Log", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeLaborAdded && e.ProjectID == "p1"
	})).Return(nil)

	svc := labor.NewService(repo, activity.NewService(actRepo, nil), nil)
	rec, err := svc.Create(ctx, labor.CreateRequest{
		ProjectID:  "p1",
		WorkerName: "Ahmet Yılmaz",
		Role:       "Usta",
		Hours:      8,
		Overtime:   2,
		DailyRate:  1000,
	})
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	require.Equal(t, 1375.0, rec.Cost())
	require.False(t, rec.Date.IsZero())
	actRepo.AssertExpectations(t)
}

func TestLaborService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.LaborRepository{}
	svc := labor.NewService(repo, nil, nil)

	for name, req := range map[string]labor.CreateRequest{
		"missing project":   {WorkerName: "a", Hours: 8, DailyRate: 1},
		"missing worker":    {ProjectID: "p1", Hours: 8, DailyRate: 1},
		"negative hours":    {ProjectID: "p1", WorkerName: "a", Hours: -1},
		"negative overtime": {ProjectID: "p1", WorkerName: "a", Overtime: -2},
		"negative rate":     {ProjectID: "p1", WorkerName: "a", Hours: 8, DailyRate: -1},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, req)
			require.ErrorIs(t, err, labor.ErrInvalidInput)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLaborService_CreateUnknownProject(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.LaborRepository{}
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrForeignKeyViolation)

	_, err := labor.NewService(repo, nil, nil).Create(ctx, labor.CreateRequest{ProjectID: "ghost", WorkerName: "a", Hours: 8})
	require.ErrorIs(t, err, labor.ErrProjectNotFound)
}

func TestLaborService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.LaborRepository{}
	repo.On("ListByProject", ctx, "p1").Return([]labor.Record{{ID: "l1", ProjectID: "p1"}}, nil)
	repo.On("Get", ctx, "l1").Return(&labor.Record{ID: "l1", ProjectID: "p1"}, nil)
	repo.On("Delete", ctx, "l1").Return(nil)
	repo.On("Get", ctx, "missing").Return((*labor.Record)(nil), repository.ErrNotFound)

	svc := labor.NewService(repo, nil, nil)
	records, err := svc.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, records, 1)

	require.NoError(t, svc.Delete(ctx, "l1"))
	require.ErrorIs(t, svc.Delete(ctx, "missing"), labor.ErrRecordNotFound)
	repo.AssertExpectations(t)
}
