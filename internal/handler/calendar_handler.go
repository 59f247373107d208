package handler

import (
	"net/http"

	"github.com/budgetbook/budgetbook-backend/internal/middleware"
	"github.com/budgetbook/budgetbook-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CalendarHandler serves month calendars
type CalendarHandler struct {
	calendarService *service.CalendarService
	now             Clock
}

// NewCalendarHandler creates a new CalendarHandler
func NewCalendarHandler(calendarService *service.CalendarService, now Clock) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
		now:             now,
	}
}

// GetCalendar godoc
// @Summary Month calendar
// @Description Week rows of the active ledger's month with each day's signed amounts
// @Tags calendar
// @Produce json
// @Security BearerAuth
// @Param year path int false "Year"
// @Param month path int false "Month (1-12)"
// @Success 200 {object} domain.MonthCalendar
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /calendar/{year}/{month} [get]
func (h *CalendarHandler) GetCalendar(c echo.Context) error {
	ledgerID := middleware.GetLedgerID(c)
	if ledgerID == 0 {
		return NewUnauthorizedError(c, "Ledger required")
	}

	month, verrs := monthParams(c, h.now)
	if verrs != nil {
		return NewValidationError(c, "Invalid month", verrs)
	}

	cal, err := h.calendarService.MonthCalendar(c.Request().Context(), ledgerID, month)
	if err != nil {
		log.Error().Err(err).Int32("ledger_id", ledgerID).Str("month", month.String()).Msg("Failed to build calendar")
		return NewInternalError(c, "Failed to build calendar")
	}

	return c.JSON(http.StatusOK, cal)
}
