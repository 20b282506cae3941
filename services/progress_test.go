package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lac-hong-legacy/epsilon_api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureProgressCreatesDefaultsWhenMissing(t *testing.T) {
	backend := newFakeBackend()
	svc := NewProgressService(backend)

	record, err := svc.EnsureProgress(context.Background(), "ada@example.com")
	require.NoError(t, err)

	assert.Equal(t, 1, backend.creates)
	assert.Equal(t, "ada@example.com", record.UserEmail)
	assert.NotEmpty(t, record.ID)
	assert.Zero(t, record.XP)
	assert.Zero(t, record.StreakDays)
	assert.Empty(t, model.IDSet(record.CompletedLessons))
	assert.Equal(t, []string{}, model.IDSet(record.Badges))
}

func TestEnsureProgressIsIdempotent(t *testing.T) {
	backend := newFakeBackend()
	svc := NewProgressService(backend)
	ctx := context.Background()

	first, err := svc.EnsureProgress(ctx, "ada@example.com")
	require.NoError(t, err)
	second, err := svc.EnsureProgress(ctx, "ada@example.com")
	require.NoError(t, err)

	assert.Equal(t, 1, backend.creates)
	assert.Equal(t, first.ID, second.ID)
}

func TestEnsureProgressReturnsExistingRecord(t *testing.T) {
	backend := newFakeBackend()
	existing := model.NewUserProgress("p1", "ada@example.com")
	existing.XP = 900
	backend.seedProgress(*existing)
	backend.seedProgress(*model.NewUserProgress("p2", "ada@example.com"))

	record, err := NewProgressService(backend).EnsureProgress(context.Background(), "ada@example.com")
	require.NoError(t, err)

	assert.Zero(t, backend.creates)
	assert.Equal(t, "p1", record.ID)
	assert.Equal(t, 900, record.XP)
}

func TestEnsureProgressPropagatesBackendFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.filterErr = ErrBackendUnavailable

	_, err := NewProgressService(backend).EnsureProgress(context.Background(), "ada@example.com")
	assert.True(t, errors.Is(err, ErrBackendUnavailable))
	assert.Zero(t, backend.creates)
}

func TestFindProgressDoesNotCreate(t *testing.T) {
	backend := newFakeBackend()

	record, err := NewProgressService(backend).FindProgress(context.Background(), "ada@example.com")
	require.NoError(t, err)

	assert.Nil(t, record)
	assert.Zero(t, backend.creates)
}

func TestRecordDownloadIsMonotonic(t *testing.T) {
	backend := newFakeBackend()
	svc := NewProgressService(backend)
	ctx := context.Background()

	changed, err := svc.RecordDownload(ctx, "ada@example.com", "r4")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = svc.RecordDownload(ctx, "ada@example.com", "r4")
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = svc.RecordDownload(ctx, "ada@example.com", "r7")
	require.NoError(t, err)
	assert.True(t, changed)

	record, err := svc.FindProgress(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"r4", "r7"}, model.IDSet(record.DownloadedResources))
	assert.Equal(t, 2, backend.updates)
	assert.Equal(t, 1, backend.creates)
}

func TestRecordDownloadKeepsConcurrentCompletion(t *testing.T) {
	backend := newFakeBackend()
	existing := model.NewUserProgress("p1", "ada@example.com")
	existing.XP = 150
	existing.CompletedLessons = model.EncodeIDSet([]string{"L1"})
	backend.seedProgress(*existing)

	// A lesson is completed after the download path read the record but
	// before it wrote back.
	backend.beforeUpdate = func(f *fakeBackend, id string) {
		f.completeLesson(id, "L9", 150)
	}

	svc := NewProgressService(backend)
	changed, err := svc.RecordDownload(context.Background(), "ada@example.com", "r4")
	require.NoError(t, err)
	assert.True(t, changed)

	record, err := svc.FindProgress(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"L1", "L9"}, model.IDSet(record.CompletedLessons))
	assert.Equal(t, 300, record.XP)
	assert.Equal(t, []string{"r4"}, model.IDSet(record.DownloadedResources))
}

func TestEnsureProgressConcurrentFirstVisitCreatesOnce(t *testing.T) {
	backend := newFakeBackend()
	backend.filterDelay = 20 * time.Millisecond
	svc := NewProgressService(backend)

	var wg sync.WaitGroup
	ids := make([]string, 4)
	errs := make([]error, 4)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			record, err := svc.EnsureProgress(context.Background(), "ada@example.com")
			errs[i] = err
			if err == nil {
				ids[i] = record.ID
			}
		}(i)
	}
	wg.Wait()

	for i := range ids {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Equal(t, 1, backend.creates)
	assert.Len(t, backend.progress["ada@example.com"], 1)
}

func TestEnsureProgressAcrossInstancesSharesOneRecord(t *testing.T) {
	backend := newFakeBackend()
	backend.filterDelay = 20 * time.Millisecond
	backend.uniqueEmail = true

	// Separate services stand in for separate API processes.
	first, second := NewProgressService(backend), NewProgressService(backend)

	var wg sync.WaitGroup
	var a, b *model.UserProgress
	var errA, errB error
	wg.Add(2)
	go func() {
		defer wg.Done()
		a, errA = first.EnsureProgress(context.Background(), "ada@example.com")
	}()
	go func() {
		defer wg.Done()
		b, errB = second.EnsureProgress(context.Background(), "ada@example.com")
	}()
	wg.Wait()

	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, 1, backend.creates)
}

func TestEnsureProgressUsesRecordWhenCreateConflicts(t *testing.T) {
	backend := newFakeBackend()
	backend.uniqueEmail = true
	backend.beforeCreate = func(f *fakeBackend, record *model.UserProgress) {
		winner := model.NewUserProgress("p-other", record.UserEmail)
		winner.XP = 40
		f.seedProgress(*winner)
		f.beforeCreate = nil
	}

	record, err := NewProgressService(backend).EnsureProgress(context.Background(), "ada@example.com")
	require.NoError(t, err)

	assert.Equal(t, "p-other", record.ID)
	assert.Equal(t, 40, record.XP)
	assert.Zero(t, backend.creates)
	assert.Len(t, backend.progress["ada@example.com"], 1)
}

func TestEnsureProgressCreateFailureWithoutRecord(t *testing.T) {
	backend := newFakeBackend()
	backend.createErr = ErrBackendUnavailable

	_, err := NewProgressService(backend).EnsureProgress(context.Background(), "ada@example.com")
	assert.True(t, errors.Is(err, ErrBackendUnavailable))
	assert.Empty(t, backend.progress["ada@example.com"])
}
