package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/epsilon_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlersWithoutUserReportUnauthenticated(t *testing.T) {
	var got []error
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		got = append(got, err)
		return c.SendStatus(fiber.StatusTeapot)
	}})

	dashboard := NewDashboardHandler(nil)
	resources := NewResourceHandler(nil)
	app.Get("/dashboard", dashboard.GetDashboard)
	app.Get("/profile", dashboard.GetProfile)
	app.Post("/resources/:id/download", resources.DownloadResource)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/dashboard", nil),
		httptest.NewRequest(http.MethodGet, "/profile", nil),
		httptest.NewRequest(http.MethodPost, "/resources/r4/download", nil),
	} {
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	require.Len(t, got, 3)
	for _, err := range got {
		assert.True(t, errors.Is(err, shared.ErrUnauthenticated), err)
		_, isAppErr := shared.GetAppError(err)
		assert.False(t, isAppErr)
	}
}
