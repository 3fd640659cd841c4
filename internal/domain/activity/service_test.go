package activity_test

import (
	"context"
	"testing"

	"github.com/rpggio/costtrack/internal/domain/activity"
	"github.com/rpggio/costtrack/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_LogAndList(t *testing.T) {
	ctx := activity.WithActor(context.Background(), "site-office")

	repo := &mocks.ActivityRepository{}
	entry := &activity.ActivityEntry{
		ProjectID:    "proj1",
		ActivityType: activity.TypeExpenseAdded,
		Summary:      "expense added",
	}

	repo.On("Log", ctx, entry).Return(nil)
	repo.On("List", ctx, activity.ListActivityOptions{ProjectID: "proj1", Limit: 50}).Return([]activity.ActivityEntry{*entry}, nil)

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.LogActivity(ctx, entry))
	require.Equal(t, "site-office", entry.Actor)
	require.False(t, entry.CreatedAt.IsZero())

	entries, err := svc.GetRecentActivity(ctx, activity.ListActivityOptions{ProjectID: "proj1"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	repo.AssertExpectations(t)
}

func TestActivityService_RejectsEmptyEntry(t *testing.T) {
	svc := activity.NewService(&mocks.ActivityRepository{}, nil)
	require.ErrorIs(t, svc.LogActivity(context.Background(), nil), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.LogActivity(context.Background(), &activity.ActivityEntry{}), activity.ErrInvalidInput)
}

func TestRecord_SwallowsErrors(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	repo.On("Log", ctx, mock.Anything).Return(context.DeadlineExceeded)

	svc := activity.NewService(repo, nil)
	activity.Record(ctx, svc, nil, &activity.ActivityEntry{ActivityType: activity.TypeStockAlert, Summary: "low"})
	activity.Record(ctx, nil, nil, &activity.ActivityEntry{ActivityType: activity.TypeStockAlert})
	repo.AssertNumberOfCalls(t, "Log", 1)
}
