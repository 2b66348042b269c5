package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "popcli/internal/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(nil, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RunLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := &Run{
		ID:          uuid.New().String(),
		Mode:        "dimension",
		PriorDate:   "2024-01-31",
		CurrentDate: "2024-02-29",
	}
	require.NoError(t, s.CreateRun(ctx, run))
	assert.Equal(t, StatusRunning, run.Status)

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, got.Status)
	assert.Nil(t, got.CompletedAt)

	require.NoError(t, s.CompleteRun(ctx, run.ID, "reports/out.xlsx", 12, 3))

	got, err = s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, "reports/out.xlsx", got.ReportPath)
	assert.Equal(t, 12, got.GroupCount)
	assert.Equal(t, 3, got.CoercionFailures)
	require.NotNil(t, got.CompletedAt)
}

func TestStore_FailRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := &Run{ID: uuid.New().String(), Mode: "interval", PriorDate: "2024-01-31", CurrentDate: "2024-02-29"}
	require.NoError(t, s.CreateRun(ctx, run))
	require.NoError(t, s.FailRun(ctx, run.ID, "no metric columns detected"))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Equal(t, "no metric columns detected", got.Error)
}

func TestStore_GetRun_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRun(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}

func TestStore_CompleteRun_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.CompleteRun(context.Background(), "missing", "", 0, 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}

func TestStore_ListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		run := &Run{ID: uuid.New().String(), Mode: "dimension", PriorDate: "2024-01-31", CurrentDate: "2024-02-29"}
		require.NoError(t, s.CreateRun(ctx, run))
	}

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	runs, err = s.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}
