package schedule_test

import (
	"testing"
	"time"

	"github.com/mentorlink/mentorlink-api/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_TimeValue(t *testing.T) {
	utc := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	got, ok := schedule.Normalize(utc, schedule.WAT)
	require.True(t, ok)
	assert.True(t, got.Equal(utc))
	// WAT is UTC+1
	assert.Equal(t, 10, got.Hour())
}

func TestNormalize_TimePointer(t *testing.T) {
	utc := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	got, ok := schedule.Normalize(&utc, schedule.WAT)
	require.True(t, ok)
	assert.True(t, got.Equal(utc))

	_, ok = schedule.Normalize((*time.Time)(nil), schedule.WAT)
	assert.False(t, ok)
}

func TestNormalize_ISOString(t *testing.T) {
	got, ok := schedule.Normalize("2024-03-10T09:00:00Z", schedule.WAT)
	require.True(t, ok)
	assert.Equal(t, 10, got.Hour())

	got, ok = schedule.Normalize("2024-03-10T09:00:00.123456+01:00", schedule.WAT)
	require.True(t, ok)
	assert.Equal(t, 9, got.Hour())

	// Offset-less timestamps are taken as WAT
	got, ok = schedule.Normalize("2024-03-10T09:00:00", schedule.WAT)
	require.True(t, ok)
	assert.Equal(t, 9, got.Hour())
}

func TestNormalize_Failures(t *testing.T) {
	_, ok := schedule.Normalize("10 March 2024", schedule.WAT)
	assert.False(t, ok)

	_, ok = schedule.Normalize("", schedule.WAT)
	assert.False(t, ok)

	_, ok = schedule.Normalize(nil, schedule.WAT)
	assert.False(t, ok)

	_, ok = schedule.Normalize(1710061200, schedule.WAT)
	assert.False(t, ok)
}

func TestFormatWAT(t *testing.T) {
	utc := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "Sun, 10 Mar 2024 10:00", schedule.FormatWAT(utc))
}
