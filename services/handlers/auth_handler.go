package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/epsilon_api/dto"
	"github.com/lac-hong-legacy/epsilon_api/middleware"
	"github.com/lac-hong-legacy/epsilon_api/shared"
)

type AuthHandler struct {
	authSvc AuthServiceInterface
}

func NewAuthHandler(authSvc AuthServiceInterface) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// @Summary Current user
// @Description Returns the signed in user as reported by the backend
// @Tags auth
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.CurrentUser}
// @Failure 401 {object} shared.Response
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", user)
}

// @Summary Login redirect
// @Description Redirects to the hosted login page, returning to from_url afterwards
// @Tags auth
// @Param from_url query string false "Page to return to"
// @Success 302
// @Router /api/v1/auth/login [get]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	return c.Redirect(h.authSvc.LoginURL(c.Query("from_url")), fiber.StatusFound)
}

// @Summary Login URL
// @Description Returns the hosted login page address without redirecting
// @Tags auth
// @Produce json
// @Param from_url query string false "Page to return to"
// @Success 200 {object} shared.Response{data=dto.LoginURLResponse}
// @Router /api/v1/auth/login-url [get]
func (h *AuthHandler) LoginURL(c *fiber.Ctx) error {
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", dto.LoginURLResponse{
		LoginURL: h.authSvc.LoginURL(c.Query("from_url")),
	})
}

// @Summary Logout
// @Description Ends the session at the backend
// @Tags auth
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authSvc.Logout(c.UserContext(), middleware.CurrentToken(c)); err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", nil)
}

// @Summary Update profile
// @Description Changes the display name of the signed in user
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param updateRequest body dto.UpdateProfileRequest true "New profile"
// @Success 200 {object} shared.Response{data=dto.CurrentUser}
// @Failure 400 {object} shared.Response
// @Failure 502 {object} shared.Response
// @Router /api/v1/user/profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	updated, err := h.authSvc.UpdateProfile(c.UserContext(), user, middleware.CurrentToken(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", updated)
}
