package handler

import (
	"fmt"
	"net/http"

	"github.com/budgetbook/budgetbook-backend/internal/middleware"
	"github.com/budgetbook/budgetbook-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ExportHandler serves month statements
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// DownloadStatement godoc
// @Summary Download month statement
// @Description One CSV row per occurrence of the active ledger's transactions in the month
// @Tags exports
// @Produce text/csv
// @Security BearerAuth
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {string} string "CSV"
// @Failure 400 {object} ProblemDetails
// @Router /exports/{year}/{month} [get]
func (h *ExportHandler) DownloadStatement(c echo.Context) error {
	ledgerID := middleware.GetLedgerID(c)
	if ledgerID == 0 {
		return NewUnauthorizedError(c, "Ledger required")
	}

	month, verrs := monthParams(c, nil)
	if verrs != nil {
		return NewValidationError(c, "Invalid month", verrs)
	}

	data, err := h.exportService.MonthStatement(c.Request().Context(), ledgerID, month)
	if err != nil {
		log.Error().Err(err).Int32("ledger_id", ledgerID).Str("month", month.String()).Msg("Failed to render statement")
		return NewInternalError(c, "Failed to render statement")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "statement-"+month.String()+".csv"))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

// PublishStatement godoc
// @Summary Publish month statement
// @Description Uploads the month statement to object storage and returns a time-limited link
// @Tags exports
// @Produce json
// @Security BearerAuth
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 201 {object} service.StatementLink
// @Failure 400 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /exports/{year}/{month} [post]
func (h *ExportHandler) PublishStatement(c echo.Context) error {
	ledgerID := middleware.GetLedgerID(c)
	if ledgerID == 0 {
		return NewUnauthorizedError(c, "Ledger required")
	}

	if !h.exportService.UploadsEnabled() {
		return NewUnavailableError(c, "Statement storage is not configured")
	}

	month, verrs := monthParams(c, nil)
	if verrs != nil {
		return NewValidationError(c, "Invalid month", verrs)
	}

	link, err := h.exportService.PublishStatement(c.Request().Context(), ledgerID, month)
	if err != nil {
		log.Error().Err(err).Int32("ledger_id", ledgerID).Str("month", month.String()).Msg("Failed to publish statement")
		return NewInternalError(c, "Failed to publish statement")
	}

	return c.JSON(http.StatusCreated, link)
}
