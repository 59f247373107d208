package handler

import (
	"net/http"

	"github.com/budgetbook/budgetbook-backend/internal/middleware"
	"github.com/budgetbook/budgetbook-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// BalanceHandler serves month balances
type BalanceHandler struct {
	balanceService *service.BalanceService
	now            Clock
}

// NewBalanceHandler creates a new BalanceHandler
func NewBalanceHandler(balanceService *service.BalanceService, now Clock) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
		now:            now,
	}
}

// GetBalance godoc
// @Summary Month balance
// @Description Signed total of the active ledger for a month (current month without parameters)
// @Tags balance
// @Produce json
// @Security BearerAuth
// @Param year path int false "Year"
// @Param month path int false "Month (1-12)"
// @Success 200 {object} domain.MonthBalance
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /balance/{year}/{month} [get]
func (h *BalanceHandler) GetBalance(c echo.Context) error {
	ledgerID := middleware.GetLedgerID(c)
	if ledgerID == 0 {
		return NewUnauthorizedError(c, "Ledger required")
	}

	month, verrs := monthParams(c, h.now)
	if verrs != nil {
		return NewValidationError(c, "Invalid month", verrs)
	}

	balance, err := h.balanceService.MonthBalance(c.Request().Context(), ledgerID, middleware.GetUserID(c), month)
	if err != nil {
		log.Error().Err(err).Int32("ledger_id", ledgerID).Str("month", month.String()).Msg("Failed to compute balance")
		return NewInternalError(c, "Failed to compute balance")
	}

	return c.JSON(http.StatusOK, balance)
}
