package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2023-01-15")
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2023-01-15T10:30:00Z")
	require.NoError(t, err)
	require.Equal(t, 10, got.Hour())

	_, err = ParseDate("15/01/2023")
	require.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDate("  ")
	require.Error(t, err)
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate("")
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = ParseOptionalDate("2024-06-01")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestDayArithmetic(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC)

	require.Equal(t, 10.0, DaysSince(start, now))
	require.Equal(t, 20.0, DaysUntil(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), now))
	require.Less(t, DaysUntil(start, now), 0.0)
	require.Equal(t, time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), Today(now))
}
