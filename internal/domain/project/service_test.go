package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/costtrack/internal/domain/activity"
	"github.com/rpggio/costtrack/internal/domain/project"
	"github.com/rpggio/costtrack/internal/repository"
	"github.com/rpggio/costtrack/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validRequest() project.CreateRequest {
	return project.CreateRequest{
		Name:            "Manisa GES Projesi",
		Category:        project.CategorySolar,
		TotalBudget:     15_000_000,
		Capacity:        20,
		StartDate:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PercentComplete: 45,
	}
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)
	actRepo := &mocks.ActivityRepository{}
	actRepo.On("Log", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeProjectCreated
	})).Return(nil)

	svc := project.NewService(repo, activity.NewService(actRepo, nil), nil)
	proj, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	require.NotEmpty(t, proj.ID)
	require.Equal(t, project.StatusActive, proj.Status)
	require.Equal(t, "MW", proj.UnitLabel())
	require.False(t, proj.CreatedAt.IsZero())
	repo.AssertExpectations(t)
	actRepo.AssertExpectations(t)
}

func TestProjectService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	svc := project.NewService(repo, nil, nil)

	cases := map[string]func(*project.CreateRequest){
		"empty name":       func(r *project.CreateRequest) { r.Name = "  " },
		"unknown category": func(r *project.CreateRequest) { r.Category = "rail" },
		"unknown status":   func(r *project.CreateRequest) { r.Status = "PAUSED" },
		"zero budget":      func(r *project.CreateRequest) { r.TotalBudget = 0 },
		"negative capacity": func(r *project.CreateRequest) {
			r.Capacity = -1
		},
		"percent over 100": func(r *project.CreateRequest) { r.PercentComplete = 101 },
		"end before start": func(r *project.CreateRequest) {
			end := r.StartDate.Add(-24 * time.Hour)
			r.TargetEndDate = &end
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(&req)
			_, err := svc.Create(ctx, req)
			require.ErrorIs(t, err, project.ErrInvalidInput)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectService_CreateNormalizesPlanned(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	req := validRequest()
	req.Status = "PLANNED"
	proj, err := project.NewService(repo, nil, nil).Create(ctx, req)
	require.NoError(t, err)
	require.Equal(t, project.StatusPlanning, proj.Status)
}

func TestProjectService_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateID)

	req := validRequest()
	req.ID = "1"
	_, err := project.NewService(repo, nil, nil).Create(ctx, req)
	require.ErrorIs(t, err, project.ErrProjectExists)
}

func TestProjectService_GetNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "missing").Return((*project.Project)(nil), repository.ErrNotFound)

	_, err := project.NewService(repo, nil, nil).Get(ctx, "missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestProjectService_Update(t *testing.T) {
	ctx := context.Background()
	existing := &project.Project{
		ID:              "p1",
		Name:            "Manisa GES Projesi",
		Category:        project.CategorySolar,
		Status:          project.StatusActive,
		TotalBudget:     15_000_000,
		StartDate:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PercentComplete: 45,
	}
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(existing, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)
	actRepo := &mocks.ActivityRepository{}
	actRepo.On("Log", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeProjectUpdated && e.Details != ""
	})).Return(nil)

	svc := project.NewService(repo, activity.NewService(actRepo, nil), nil)
	pct := 60.0
	completed := project.StatusCompleted
	proj, err := svc.Update(ctx, project.UpdateRequest{ID: "p1", PercentComplete: &pct, Status: &completed})
	require.NoError(t, err)
	require.Equal(t, 60.0, proj.PercentComplete)
	require.Equal(t, project.StatusCompleted, proj.Status)
	actRepo.AssertExpectations(t)

	bad := 150.0
	_, err = svc.Update(ctx, project.UpdateRequest{ID: "p1", PercentComplete: &bad})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	early := existing.StartDate.Add(-time.Hour)
	_, err = svc.Update(ctx, project.UpdateRequest{ID: "p1", TargetEndDate: &early})
	require.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestProjectService_UpdateWithoutChangesSkipsWrite(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(&project.Project{ID: "p1"}, nil)

	_, err := project.NewService(repo, nil, nil).Update(ctx, project.UpdateRequest{ID: "p1"})
	require.NoError(t, err)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("Delete", ctx, "p1").Return(nil)
	repo.On("Delete", ctx, "missing").Return(repository.ErrNotFound)

	svc := project.NewService(repo, nil, nil)
	require.NoError(t, svc.Delete(ctx, "p1"))
	require.ErrorIs(t, svc.Delete(ctx, "missing"), project.ErrProjectNotFound)
}

func TestProjectService_SeedDemo(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("List", ctx).Return([]project.Project{}, nil).Once()
	repo.On("Create", ctx, mock.Anything).Return(nil).Times(len(project.DemoProjects()))

	svc := project.NewService(repo, nil, nil)
	seeded, err := svc.SeedDemo(ctx)
	require.NoError(t, err)
	require.True(t, seeded)

	repo.On("List", ctx).Return([]project.Project{{ID: "1"}}, nil).Once()
	seeded, err = svc.SeedDemo(ctx)
	require.NoError(t, err)
	require.False(t, seeded)
	repo.AssertExpectations(t)
}

func TestBudgetTemplate(t *testing.T) {
	solar, err := project.BudgetTemplate(project.CategorySolar)
	require.NoError(t, err)
	require.Len(t, solar, 5)
	require.Equal(t, "g1", solar[0].ID)
	require.Equal(t, 6_000_000.0, project.PlannedTotal(solar))

	road, err := project.BudgetTemplate(project.CategoryRoad)
	require.NoError(t, err)
	require.Equal(t, 10_400_000.0, project.PlannedTotal(road))

	solar[0].PlannedAmount = 1
	again, _ := project.BudgetTemplate(project.CategorySolar)
	require.Equal(t, 500_000.0, again[0].PlannedAmount)

	_, err = project.BudgetTemplate("rail")
	require.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestNormalizeStatus(t *testing.T) {
	for in, want := range map[project.Status]project.Status{
		"":          project.StatusActive,
		"ACTIVE":    project.StatusActive,
		"PLANNED":   project.StatusPlanning,
		"PLANNING":  project.StatusPlanning,
		"COMPLETED": project.StatusCompleted,
	} {
		got, ok := project.NormalizeStatus(in)
		require.True(t, ok, in)
		require.Equal(t, want, got)
	}
	_, ok := project.NormalizeStatus("active")
	require.False(t, ok)
}
