package services

import (
	"context"
	"errors"
	"testing"

	"github.com/lac-hong-legacy/epsilon_api/dto"
	"github.com/lac-hong-legacy/epsilon_api/model"
	"github.com/lac-hong-legacy/epsilon_api/progression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var ada = &dto.CurrentUser{ID: "u1", Email: "ada@example.com", FullName: "Ada Lovelace"}

func TestDashboardCreatesRecordOnFirstVisit(t *testing.T) {
	ts := newTestServices()

	resp, err := ts.dashboard.Dashboard(context.Background(), ada)
	require.NoError(t, err)

	assert.Equal(t, 1, ts.backend.creates)
	assert.Equal(t, "Ada", resp.Greeting)
	assert.Zero(t, resp.XP)
	assert.Equal(t, 1, resp.Level.Level)
	assert.Equal(t, dto.ProgressSummary{Completed: 0, Total: 8, Percent: 0}, resp.Progress)
	assert.Len(t, resp.RecentResources, 6)
	assert.Equal(t, "r1", resp.RecentResources[0].ID)
	assert.Len(t, resp.WeeklyActivity, 7)

	_, err = ts.dashboard.Dashboard(context.Background(), ada)
	require.NoError(t, err)
	assert.Equal(t, 1, ts.backend.creates)
}

func TestDashboardAggregatesProgress(t *testing.T) {
	ts := newTestServices()
	record := model.NewUserProgress("p1", ada.Email)
	record.XP = 750
	record.StreakDays = 3
	record.CompletedLessons = model.EncodeIDSet([]string{"r1", "r5"})
	record.CompletedQuizzes = model.EncodeIDSet([]string{"r2"})
	record.DownloadedResources = model.EncodeIDSet([]string{"r4"})
	ts.backend.seedProgress(*record)

	resp, err := ts.dashboard.Dashboard(context.Background(), ada)
	require.NoError(t, err)

	assert.Zero(t, ts.backend.creates)
	assert.Equal(t, 750, resp.XP)
	assert.Equal(t, 2, resp.Level.Level)
	assert.Equal(t, 250, resp.Level.XPToNextLevel)
	assert.Equal(t, 3, resp.StreakDays)
	assert.Equal(t, 3, resp.Progress.Completed)
	assert.Equal(t, 8, resp.Progress.Total)
	assert.Equal(t, 38, resp.Progress.Percent, "37.5 rounds half up")
	assert.Equal(t, []dto.StatItem{
		{Label: "Lessons", Value: 2},
		{Label: "Quizzes", Value: 1},
		{Label: "Videos", Value: 0},
		{Label: "Downloads", Value: 1},
	}, resp.Stats)
}

func TestDashboardEmptyCatalogUsesFallback(t *testing.T) {
	ts := newTestServices()
	ts.backend.resources = nil
	record := model.NewUserProgress("p1", ada.Email)
	record.CompletedLessons = model.EncodeIDSet([]string{"a", "b", "c", "d"})
	ts.backend.seedProgress(*record)

	resp, err := ts.dashboard.Dashboard(context.Background(), ada)
	require.NoError(t, err)

	assert.Equal(t, 20, resp.Progress.Total)
	assert.Equal(t, 20, resp.Progress.Percent)
	assert.True(t, resp.Progress.CatalogEstimated)
	assert.NotNil(t, resp.RecentResources)
	assert.Empty(t, resp.RecentResources)
}

func TestDashboardBackendFailure(t *testing.T) {
	ts := newTestServices()
	ts.backend.filterErr = ErrBackendUnavailable

	_, err := ts.dashboard.Dashboard(context.Background(), ada)
	assert.True(t, errors.Is(err, ErrBackendUnavailable))
}

func TestDashboardActivityIsCopied(t *testing.T) {
	ts := newTestServices()

	resp, err := ts.dashboard.Dashboard(context.Background(), ada)
	require.NoError(t, err)
	resp.WeeklyActivity[0].Completed = 99

	assert.Equal(t, 3, weeklyActivity[0].Completed)
}

func TestProfileWithoutRecordShowsStarter(t *testing.T) {
	ts := newTestServices()

	resp, err := ts.dashboard.Profile(context.Background(), ada)
	require.NoError(t, err)

	assert.Zero(t, ts.backend.creates)
	assert.False(t, resp.HasProgress)
	require.Len(t, resp.Earned, 1)
	assert.Equal(t, progression.StarterBadgeID, resp.Earned[0].ID)
	assert.Len(t, resp.Locked, 5)
	assert.Len(t, resp.Criteria, 5)
}

func TestProfileWithEmptyBadgeList(t *testing.T) {
	ts := newTestServices()
	ts.backend.seedProgress(*model.NewUserProgress("p1", ada.Email))

	resp, err := ts.dashboard.Profile(context.Background(), ada)
	require.NoError(t, err)

	assert.True(t, resp.HasProgress)
	assert.Empty(t, resp.Earned)
	assert.Len(t, resp.Locked, 6)
}

func TestProfileWithNullBadgesShowsStarter(t *testing.T) {
	ts := newTestServices()
	record := model.NewUserProgress("p1", ada.Email)
	record.Badges = datatypes.JSON("null")
	ts.backend.seedProgress(*record)

	resp, err := ts.dashboard.Profile(context.Background(), ada)
	require.NoError(t, err)

	assert.True(t, resp.HasProgress)
	require.Len(t, resp.Earned, 1)
	assert.Equal(t, progression.StarterBadgeID, resp.Earned[0].ID)
	assert.Len(t, resp.Locked, 5)
}

func TestProfileCriteriaUseCatalogSize(t *testing.T) {
	ts := newTestServices()
	record := model.NewUserProgress("p1", ada.Email)
	record.Badges = model.EncodeIDSet([]string{"starter", "master"})
	record.XP = 1200
	record.CompletedLessons = model.EncodeIDSet([]string{"r1", "r5"})
	ts.backend.seedProgress(*record)

	resp, err := ts.dashboard.Profile(context.Background(), ada)
	require.NoError(t, err)

	assert.Len(t, resp.Earned, 2)
	byID := map[string]progression.BadgeProgress{}
	for _, c := range resp.Criteria {
		byID[c.Badge.ID] = c
	}
	assert.NotContains(t, byID, "master")
	assert.Equal(t, 8, byID["legend"].Target)
	assert.Equal(t, 2, byID["legend"].Current)
	assert.Equal(t, 2, byID["learner"].Current)
}
