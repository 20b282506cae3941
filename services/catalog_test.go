package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lac-hong-legacy/epsilon_api/dto"
	"github.com/lac-hong-legacy/epsilon_api/model"
	"github.com/lac-hong-legacy/epsilon_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListResourcesUsesCache(t *testing.T) {
	ts := newTestServices()
	ctx := context.Background()

	first, err := ts.catalog.ListResources(ctx)
	require.NoError(t, err)
	second, err := ts.catalog.ListResources(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, ts.backend.listCalls)
	assert.Equal(t, 1, ts.cache.sets)
	assert.Len(t, second, len(first))
	assert.Equal(t, first[3].ObjectKey, second[3].ObjectKey)
}

func TestListResourcesFallsThroughOnCacheError(t *testing.T) {
	ts := newTestServices()
	ts.cache.readErr = errors.New("connection refused")

	resources, err := ts.catalog.ListResources(context.Background())
	require.NoError(t, err)

	assert.Len(t, resources, 8)
	assert.Equal(t, 1, ts.backend.listCalls)
}

func TestListResourcesWithoutCacheTTL(t *testing.T) {
	ts := newTestServices()
	ts.catalog.cacheTTL = 0

	_, err := ts.catalog.ListResources(context.Background())
	require.NoError(t, err)
	_, err = ts.catalog.ListResources(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, ts.backend.listCalls)
	assert.Zero(t, ts.cache.sets)
}

func TestListResourcesBackendFailureIsNotCached(t *testing.T) {
	ts := newTestServices()
	ts.backend.listErr = ErrBackendUnavailable

	_, err := ts.catalog.ListResources(context.Background())
	assert.True(t, errors.Is(err, ErrBackendUnavailable))
	assert.Zero(t, ts.cache.sets)
}

func TestFilterResources(t *testing.T) {
	resources := sampleResources()

	assert.Len(t, FilterResources(resources, "", ""), 8)
	assert.Len(t, FilterResources(resources, model.ResourceQuiz, ""), 2)

	got := FilterResources(resources, "", "  LEADING ")
	require.Len(t, got, 1)
	assert.Equal(t, "r3", got[0].ID)

	got = FilterResources(resources, model.ResourceLesson, "marketing")
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)

	assert.Empty(t, FilterResources(resources, model.ResourceVideo, "finance"))
	assert.NotNil(t, FilterResources(nil, "", ""))
}

func TestGetResourceNotFound(t *testing.T) {
	ts := newTestServices()

	_, err := ts.catalog.GetResource(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestBrowseFlagsDownloads(t *testing.T) {
	ts := newTestServices()
	record := model.NewUserProgress("p1", "ada@example.com")
	record.DownloadedResources = model.EncodeIDSet([]string{"r4"})
	ts.backend.seedProgress(*record)

	list, err := ts.catalog.Browse(context.Background(), "ada@example.com", dto.ResourceQuery{Type: model.ResourceDownload})
	require.NoError(t, err)

	require.Equal(t, 2, list.Total)
	assert.True(t, list.Resources[0].Downloaded)
	assert.False(t, list.Resources[1].Downloaded)
	assert.Zero(t, ts.backend.creates)
}

func TestDownloadURLPresignsAndRecords(t *testing.T) {
	ts := newTestServices()

	resp, err := ts.catalog.DownloadURL(context.Background(), "ada@example.com", "r4")
	require.NoError(t, err)

	assert.Equal(t, "r4", resp.ResourceID)
	assert.Contains(t, resp.URL, "templates/business-plan.docx")
	assert.Equal(t, int64(900), resp.ExpiresIn)
	assert.True(t, resp.Recorded)
	assert.Equal(t, []string{"templates/business-plan.docx"}, ts.signer.calls)

	again, err := ts.catalog.DownloadURL(context.Background(), "ada@example.com", "r4")
	require.NoError(t, err)
	assert.False(t, again.Recorded)
}

func TestDownloadURLUsesDirectLink(t *testing.T) {
	ts := newTestServices()

	resp, err := ts.catalog.DownloadURL(context.Background(), "ada@example.com", "r7")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/budget.xlsx", resp.URL)
	assert.Zero(t, resp.ExpiresIn)
	assert.Empty(t, ts.signer.calls)
}

func TestDownloadURLRejectsOtherTypes(t *testing.T) {
	ts := newTestServices()

	_, err := ts.catalog.DownloadURL(context.Background(), "ada@example.com", "r1")
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Zero(t, ts.backend.creates)
}
