package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/epsilon_api/dto"
	"github.com/lac-hong-legacy/epsilon_api/shared"
)

type CalendarHandler struct {
	calendarSvc CalendarServiceInterface
}

func NewCalendarHandler(calendarSvc CalendarServiceInterface) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// @Summary Calendar month
// @Description Month grid with scheduled events. Month is zero based; both default to today.
// @Tags calendar
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month, 0 = January"
// @Success 200 {object} shared.Response{data=dto.CalendarMonthResponse}
// @Failure 400 {object} shared.Response
// @Router /api/v1/calendar [get]
func (h *CalendarHandler) GetMonth(c *fiber.Ctx) error {
	var q dto.CalendarQuery
	if err := c.QueryParser(&q); err != nil {
		return shared.NewBadRequestError(err, "Invalid query parameters")
	}
	if err := q.Validate(); err != nil {
		return validationError(err)
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", h.calendarSvc.Month(q.Year, q.Month))
}

// @Summary Events on a date
// @Tags calendar
// @Produce json
// @Param date query string true "Date as YYYY-MM-DD"
// @Success 200 {object} shared.Response{data=dto.EventsResponse}
// @Failure 400 {object} shared.Response
// @Router /api/v1/calendar/events [get]
func (h *CalendarHandler) GetEvents(c *fiber.Ctx) error {
	q := dto.EventsQuery{Date: c.Query("date")}
	if err := q.Validate(); err != nil {
		return validationError(err)
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", h.calendarSvc.EventsOn(q.Date))
}

// @Summary Upcoming deadlines
// @Tags calendar
// @Produce json
// @Param limit query int false "Number of events (default 4)"
// @Success 200 {object} shared.Response{data=[]progression.Event}
// @Router /api/v1/calendar/upcoming [get]
func (h *CalendarHandler) GetUpcoming(c *fiber.Ctx) error {
	q := dto.UpcomingQuery{Limit: c.QueryInt("limit", 0)}
	if err := q.Validate(); err != nil {
		return validationError(err)
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", h.calendarSvc.Upcoming(q.Limit))
}
