package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/epsilon_api/dto"
	"github.com/lac-hong-legacy/epsilon_api/middleware"
	"github.com/lac-hong-legacy/epsilon_api/progression"
	"github.com/lac-hong-legacy/epsilon_api/shared"
)

type AuthServiceInterface interface {
	LoginURL(from string) string
	Logout(ctx context.Context, token string) error
	UpdateProfile(ctx context.Context, user *dto.CurrentUser, token string, req dto.UpdateProfileRequest) (*dto.CurrentUser, error)
}

type DashboardServiceInterface interface {
	Dashboard(ctx context.Context, user *dto.CurrentUser) (*dto.DashboardResponse, error)
	Profile(ctx context.Context, user *dto.CurrentUser) (*dto.ProfileResponse, error)
}

type CatalogServiceInterface interface {
	Browse(ctx context.Context, email string, q dto.ResourceQuery) (*dto.ResourceListResponse, error)
	DownloadURL(ctx context.Context, email, id string) (*dto.DownloadResponse, error)
	ResourceByID(ctx context.Context, id string) (*dto.ResourceResponse, error)
}

type CalendarServiceInterface interface {
	Month(year, month0 *int) *dto.CalendarMonthResponse
	EventsOn(date string) *dto.EventsResponse
	Upcoming(limit int) []progression.Event
}

func currentUser(c *fiber.Ctx) (*dto.CurrentUser, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, shared.ErrUnauthenticated
	}
	return user, nil
}

func validationError(err error) error {
	return shared.NewValidationError(err, dto.FormatValidationErrors(err))
}
