package services

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedBackendRecordsOutcome(t *testing.T) {
	metrics := NewMonitoringService()
	backend := &instrumentedBackend{next: newFakeBackend(), metrics: metrics}

	_, err := backend.Me(context.Background(), "good-token")
	require.NoError(t, err)
	_, err = backend.Me(context.Background(), "bad-token")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.backendRequests.WithLabelValues("me", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.backendRequests.WithLabelValues("me", "unauthenticated")))
}

func TestCatalogRecordsCacheLookups(t *testing.T) {
	ts := newTestServices()
	metrics := NewMonitoringService()
	ts.catalog.metrics = metrics

	_, err := ts.catalog.ListResources(context.Background())
	require.NoError(t, err)
	_, err = ts.catalog.ListResources(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.cacheLookups.WithLabelValues("resources", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.cacheLookups.WithLabelValues("resources", "hit")))
}

func TestMonitoringMiddlewareRecordsStatus(t *testing.T) {
	metrics := NewMonitoringService()
	app := fiber.New()
	app.Use(MonitoringMiddleware(metrics))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })

	for _, path := range []string{"/ok", "/teapot"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.httpRequests.WithLabelValues("/ok", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.httpRequests.WithLabelValues("/teapot", "GET", "418")))
}

func TestRecordersToleratesNilService(t *testing.T) {
	var metrics *MonitoringService
	assert.NotPanics(t, func() {
		metrics.RecordDownload()
		metrics.RecordRateLimited("download")
		metrics.RecordCacheLookup("resources", true)
	})
}
