package handler

import (
	"errors"
	"net/http"

	"github.com/budgetbook/budgetbook-backend/internal/domain"
	"github.com/budgetbook/budgetbook-backend/internal/middleware"
	"github.com/budgetbook/budgetbook-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// GroupHandler handles group ledgers and ledger switching
type GroupHandler struct {
	ledgerService *service.LedgerService
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(ledgerService *service.LedgerService) *GroupHandler {
	return &GroupHandler{
		ledgerService: ledgerService,
	}
}

// GroupCredentialsRequest is the body of register and join requests
type GroupCredentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// SelectGroupRequest is the body of a select request
type SelectGroupRequest struct {
	Name string `json:"name"`
}

// GroupListResponse lists the caller's groups
type GroupListResponse struct {
	Groups []service.GroupSummary `json:"groups"`
}

func requireUser(c echo.Context) (uuid.UUID, bool) {
	userID := middleware.GetUserID(c)
	return userID, userID != uuid.Nil
}

// groupError renders the errors shared by the group endpoints
func groupError(c echo.Context, err error, action string) error {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be 50 characters or less"},
		})
	case errors.Is(err, domain.ErrPasswordRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "password", Message: "Password is required"},
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "password", Message: "Password must be 4-72 characters"},
		})
	case errors.Is(err, domain.ErrLedgerNotFound):
		return NewNotFoundError(c, "Group not found")
	case errors.Is(err, domain.ErrGroupNameTaken):
		return NewConflictError(c, "Group name already taken")
	case errors.Is(err, domain.ErrAlreadyMember):
		return NewConflictError(c, "Already a member of this group")
	case errors.Is(err, domain.ErrWrongGroupPassword):
		return NewForbiddenError(c, "Wrong group password")
	case errors.Is(err, domain.ErrNotMember):
		return NewForbiddenError(c, "Not a member of this group")
	}
	log.Error().Err(err).Msg("Failed to " + action)
	return NewInternalError(c, "Failed to "+action)
}

// ListGroups godoc
// @Summary List groups
// @Description Lists the groups the caller belongs to
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} GroupListResponse
// @Failure 401 {object} ProblemDetails
// @Router /groups [get]
func (h *GroupHandler) ListGroups(c echo.Context) error {
	userID, ok := requireUser(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	groups, err := h.ledgerService.ListGroups(c.Request().Context(), userID, middleware.GetLedgerID(c))
	if err != nil {
		return groupError(c, err, "list groups")
	}
	return c.JSON(http.StatusOK, GroupListResponse{Groups: groups})
}

// RegisterGroup godoc
// @Summary Register a group
// @Description Creates a password-protected group and switches to it
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GroupCredentialsRequest true "Group name and password"
// @Success 201 {object} LedgerResponse
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /groups [post]
func (h *GroupHandler) RegisterGroup(c echo.Context) error {
	userID, ok := requireUser(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req GroupCredentialsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	group, err := h.ledgerService.RegisterGroup(c.Request().Context(), userID, req.Name, req.Password)
	if err != nil {
		return groupError(c, err, "register group")
	}
	return c.JSON(http.StatusCreated, toLedgerResponse(group))
}

// JoinGroup godoc
// @Summary Join a group
// @Description Joins a group by name and password and switches to it
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GroupCredentialsRequest true "Group name and password"
// @Success 200 {object} LedgerResponse
// @Failure 400 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Failure 429 {object} ProblemDetails
// @Router /groups/join [post]
func (h *GroupHandler) JoinGroup(c echo.Context) error {
	userID, ok := requireUser(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req GroupCredentialsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	group, err := h.ledgerService.JoinGroup(c.Request().Context(), userID, req.Name, req.Password)
	if err != nil {
		return groupError(c, err, "join group")
	}
	return c.JSON(http.StatusOK, toLedgerResponse(group))
}

// SelectGroup godoc
// @Summary Select a group
// @Description Switches the caller's active ledger to one of their groups
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SelectGroupRequest true "Group name"
// @Success 200 {object} LedgerResponse
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /groups/select [post]
func (h *GroupHandler) SelectGroup(c echo.Context) error {
	userID, ok := requireUser(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req SelectGroupRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	group, err := h.ledgerService.SelectGroup(c.Request().Context(), userID, req.Name)
	if err != nil {
		return groupError(c, err, "select group")
	}
	return c.JSON(http.StatusOK, toLedgerResponse(group))
}

// SwitchToPersonal godoc
// @Summary Use personal ledger
// @Description Switches the caller back to their personal ledger
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} LedgerResponse
// @Router /groups/personal [post]
func (h *GroupHandler) SwitchToPersonal(c echo.Context) error {
	userID, ok := requireUser(c)
	if !ok {
		return NewUnauthorizedError(c, "Authentication required")
	}

	personal, err := h.ledgerService.SwitchToPersonal(c.Request().Context(), userID)
	if err != nil {
		return groupError(c, err, "switch ledger")
	}
	return c.JSON(http.StatusOK, toLedgerResponse(personal))
}
