package handler

import (
	"strconv"
	"time"

	"github.com/budgetbook/budgetbook-backend/internal/recurrence"
	"github.com/labstack/echo/v4"
)

// Clock returns the current time; handlers take one so "this month" is testable
type Clock func() time.Time

// monthParams reads :year/:month. With a clock, a route carrying neither resolves to the
// current month.
func monthParams(c echo.Context, now Clock) (recurrence.Month, []ValidationError) {
	if now != nil && c.Param("year") == "" && c.Param("month") == "" {
		return recurrence.MonthOf(now().UTC()), nil
	}

	var errs []ValidationError
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 || year > 9999 {
		errs = append(errs, ValidationError{Field: "year", Message: "Year must be between 1 and 9999"})
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		errs = append(errs, ValidationError{Field: "month", Message: "Month must be between 1 and 12"})
	}
	if len(errs) > 0 {
		return recurrence.Month{}, errs
	}
	return recurrence.Month{Year: year, Month: month}, nil
}

func parseIDParam(c echo.Context) (int32, bool) {
	v, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || v <= 0 {
		return 0, false
	}
	return int32(v), true
}
