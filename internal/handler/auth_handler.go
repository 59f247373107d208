package handler

import (
	"net/http"

	"github.com/budgetbook/budgetbook-backend/internal/domain"
	"github.com/budgetbook/budgetbook-backend/internal/middleware"
	"github.com/budgetbook/budgetbook-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// AuthCallbackResponse represents the response from the auth callback
type AuthCallbackResponse struct {
	User      UserResponse   `json:"user"`
	Ledger    LedgerResponse `json:"ledger"`
	IsNewUser bool           `json:"isNewUser"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Name       *string `json:"name"`
	PictureURL *string `json:"pictureUrl"`
}

// LedgerResponse represents the ledger a user is working in
type LedgerResponse struct {
	ID          int32  `json:"id"`
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	MemberCount int32  `json:"memberCount"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID.String(),
		Email:      u.Email,
		Name:       u.Name,
		PictureURL: u.PictureURL,
	}
}

func toLedgerResponse(l *domain.Ledger) LedgerResponse {
	return LedgerResponse{
		ID:          l.ID,
		Kind:        string(l.Kind),
		Name:        l.Name,
		MemberCount: l.MemberCount,
	}
}

// Callback godoc
// @Summary Complete login
// @Description Creates the user and their personal ledger on first login
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AuthCallbackResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /auth/callback [post]
func (h *AuthHandler) Callback(c echo.Context) error {
	auth0ID := middleware.GetAuth0ID(c)
	if auth0ID == "" {
		log.Error().Msg("No Auth0 ID in context - middleware may not be configured")
		return NewUnauthorizedError(c, "Authentication required")
	}

	customClaims := middleware.GetCustomClaims(c)
	var email, name, picture string
	if customClaims != nil {
		email = customClaims.Email
		name = customClaims.Name
		picture = customClaims.Picture
	}

	if email == "" {
		log.Error().Str("auth0_id", auth0ID).Msg("No email in JWT claims")
		return NewValidationError(c, "Email is required for authentication", []ValidationError{
			{Field: "email", Message: "Email claim is missing from token"},
		})
	}

	var namePtr, picturePtr *string
	if name != "" {
		namePtr = &name
	}
	if picture != "" {
		picturePtr = &picture
	}

	result, err := h.authService.AuthenticateUser(c.Request().Context(), auth0ID, email, namePtr, picturePtr)
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to authenticate user")
		return NewInternalError(c, "Failed to authenticate user")
	}

	return c.JSON(http.StatusOK, AuthCallbackResponse{
		User:      toUserResponse(result.User),
		Ledger:    toLedgerResponse(result.Ledger),
		IsNewUser: result.IsNewUser,
	})
}

// Me godoc
// @Summary Current user
// @Description Returns the signed-in user and their active ledger
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AuthCallbackResponse
// @Failure 401 {object} ProblemDetails
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	auth0ID := middleware.GetAuth0ID(c)
	if auth0ID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	ctx := c.Request().Context()
	user, err := h.authService.GetUserByAuth0ID(ctx, auth0ID)
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to get user")
		return NewNotFoundError(c, "User not found")
	}

	ledger, err := h.authService.ActiveLedger(ctx, user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to get active ledger")
		return NewInternalError(c, "Failed to get ledger")
	}

	return c.JSON(http.StatusOK, AuthCallbackResponse{
		User:   toUserResponse(user),
		Ledger: toLedgerResponse(ledger),
	})
}
