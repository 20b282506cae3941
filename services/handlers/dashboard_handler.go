package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/epsilon_api/dto"
	"github.com/lac-hong-legacy/epsilon_api/progression"
	"github.com/lac-hong-legacy/epsilon_api/shared"
)

type DashboardHandler struct {
	dashboardSvc DashboardServiceInterface
}

func NewDashboardHandler(dashboardSvc DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// @Summary Dashboard
// @Description Progress overview, creating the progress record on first visit
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.DashboardResponse}
// @Failure 401 {object} shared.Response
// @Failure 502 {object} shared.Response
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	dashboard, err := h.dashboardSvc.Dashboard(c.UserContext(), user)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dashboard)
}

// @Summary Profile
// @Description Level, stats and badges of the signed in user
// @Tags user
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.ProfileResponse}
// @Router /api/v1/profile [get]
func (h *DashboardHandler) GetProfile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	profile, err := h.dashboardSvc.Profile(c.UserContext(), user)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", profile)
}

// @Summary Badge catalog
// @Tags badges
// @Produce json
// @Success 200 {object} shared.Response{data=dto.BadgesResponse}
// @Router /api/v1/badges [get]
func (h *DashboardHandler) GetBadges(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "max-age=300")
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.BadgesResponse{
		Badges: progression.BadgeCatalog(),
	})
}
