package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/epsilon_api/dto"
	"github.com/lac-hong-legacy/epsilon_api/shared"
)

type ResourceHandler struct {
	catalogSvc CatalogServiceInterface
}

func NewResourceHandler(catalogSvc CatalogServiceInterface) *ResourceHandler {
	return &ResourceHandler{catalogSvc: catalogSvc}
}

// @Summary List resources
// @Description Resource catalog, optionally filtered by type and search text
// @Tags resources
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param type query string false "lesson, quiz, video or download"
// @Param search query string false "Search text"
// @Success 200 {object} shared.Response{data=dto.ResourceListResponse}
// @Failure 400 {object} shared.Response
// @Router /api/v1/resources [get]
func (h *ResourceHandler) ListResources(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var q dto.ResourceQuery
	if err := c.QueryParser(&q); err != nil {
		return shared.NewBadRequestError(err, "Invalid query parameters")
	}
	if err := q.Validate(); err != nil {
		return validationError(err)
	}

	list, err := h.catalogSvc.Browse(c.UserContext(), user.Email, q)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", list)
}

// @Summary Get resource
// @Tags resources
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Resource ID"
// @Success 200 {object} shared.Response{data=dto.ResourceResponse}
// @Failure 404 {object} shared.Response
// @Router /api/v1/resources/{id} [get]
func (h *ResourceHandler) GetResource(c *fiber.Ctx) error {
	resource, err := h.catalogSvc.ResourceByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resource)
}

// @Summary Download resource
// @Description Returns a time limited download link and records the download
// @Tags resources
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Resource ID"
// @Success 200 {object} shared.Response{data=dto.DownloadResponse}
// @Failure 400 {object} shared.Response
// @Failure 404 {object} shared.Response
// @Failure 429 {object} shared.Response
// @Router /api/v1/resources/{id}/download [post]
func (h *ResourceHandler) DownloadResource(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	download, err := h.catalogSvc.DownloadURL(c.UserContext(), user.Email, c.Params("id"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", download)
}
