package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ProblemDetails is the RFC 7807 body of every error response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError names one rejected request field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation   = "https://budgetbook.app/errors/validation"
	ErrorTypeNotFound     = "https://budgetbook.app/errors/not-found"
	ErrorTypeUnauthorized = "https://budgetbook.app/errors/unauthorized"
	ErrorTypeForbidden    = "https://budgetbook.app/errors/forbidden"
	ErrorTypeConflict     = "https://budgetbook.app/errors/conflict"
	ErrorTypeInternal     = "https://budgetbook.app/errors/internal"
	ErrorTypeUnavailable  = "https://budgetbook.app/errors/unavailable"
)

// problem writes a problem response for status, titled with the status text
func problem(c echo.Context, status int, errorType, detail string, errors []ValidationError) error {
	title := http.StatusText(status)
	if status == http.StatusBadRequest {
		title = "Validation Error"
	}
	return c.JSON(status, ProblemDetails{
		Type:     errorType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewValidationError responds 400 with the offending fields
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return problem(c, http.StatusBadRequest, ErrorTypeValidation, detail, errors)
}

func NewNotFoundError(c echo.Context, detail string) error {
	return problem(c, http.StatusNotFound, ErrorTypeNotFound, detail, nil)
}

func NewUnauthorizedError(c echo.Context, detail string) error {
	return problem(c, http.StatusUnauthorized, ErrorTypeUnauthorized, detail, nil)
}

// NewForbiddenError is used when the caller is authenticated but not a member of the target ledger
func NewForbiddenError(c echo.Context, detail string) error {
	return problem(c, http.StatusForbidden, ErrorTypeForbidden, detail, nil)
}

func NewConflictError(c echo.Context, detail string) error {
	return problem(c, http.StatusConflict, ErrorTypeConflict, detail, nil)
}

// NewInternalError hides the cause; callers log it before responding
func NewInternalError(c echo.Context, detail string) error {
	return problem(c, http.StatusInternalServerError, ErrorTypeInternal, detail, nil)
}

// NewUnavailableError reports an optional backend that is not configured
func NewUnavailableError(c echo.Context, detail string) error {
	return problem(c, http.StatusServiceUnavailable, ErrorTypeUnavailable, detail, nil)
}
