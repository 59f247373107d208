package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CustomClaims contains the custom claims from Auth0 JWT
type CustomClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Validate implements validator.CustomClaims
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// ClaimsKey is the context key for JWT claims
	ClaimsKey contextKey = "claims"
	// Auth0IDKey is the context key for the Auth0 user ID (subject)
	Auth0IDKey contextKey = "auth0_id"
	// UserIDKey is the context key for the internal user ID
	UserIDKey contextKey = "user_id"
	// LedgerIDKey is the context key for the ledger the user has active
	LedgerIDKey contextKey = "ledger_id"
)

// LedgerProvider resolves the signed-in user and their active ledger
type LedgerProvider interface {
	ResolveLedger(ctx context.Context, auth0ID string) (userID uuid.UUID, ledgerID int32, err error)
}

// TokenValidator is the part of the Auth0 validator the middleware needs
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (interface{}, error)
}

// AuthMiddleware provides JWT validation middleware
type AuthMiddleware struct {
	validator      TokenValidator
	ledgerProvider LedgerProvider
}

// NewAuthMiddleware creates a new AuthMiddleware with Auth0 configuration
func NewAuthMiddleware(domain, audience string, ledgerProvider LedgerProvider) (*AuthMiddleware, error) {
	issuerURL, err := parseIssuer(domain)
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &CustomClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return NewAuthMiddlewareWithValidator(jwtValidator, ledgerProvider), nil
}

// NewAuthMiddlewareWithValidator wires a pre-built token validator
func NewAuthMiddlewareWithValidator(v TokenValidator, ledgerProvider LedgerProvider) *AuthMiddleware {
	return &AuthMiddleware{
		validator:      v,
		ledgerProvider: ledgerProvider,
	}
}

// Authenticate validates the bearer token and injects the user's active ledger
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return m.authenticate(true)
}

// AuthenticateIdentity validates the bearer token only. Used by the login
// callback, which runs before the user and their ledger exist.
func (m *AuthMiddleware) AuthenticateIdentity() echo.MiddlewareFunc {
	return m.authenticate(false)
}

func (m *AuthMiddleware) authenticate(resolveLedger bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorizedError(c, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return unauthorizedError(c, "invalid authorization header format")
			}

			claims, err := m.validator.ValidateToken(c.Request().Context(), parts[1])
			if err != nil {
				log.Debug().Err(err).Msg("Token validation failed")
				return unauthorizedError(c, "invalid token")
			}

			validatedClaims, ok := claims.(*validator.ValidatedClaims)
			if !ok {
				return unauthorizedError(c, "invalid claims")
			}

			auth0ID := validatedClaims.RegisteredClaims.Subject

			ctx := context.WithValue(c.Request().Context(), ClaimsKey, validatedClaims)
			ctx = context.WithValue(ctx, Auth0IDKey, auth0ID)

			if resolveLedger && m.ledgerProvider != nil {
				userID, ledgerID, err := m.ledgerProvider.ResolveLedger(ctx, auth0ID)
				if err != nil {
					log.Debug().Err(err).Str("auth0_id", auth0ID).Msg("Ledger lookup failed")
					return unauthorizedError(c, "ledger not found")
				}
				ctx = context.WithValue(ctx, UserIDKey, userID)
				ctx = context.WithValue(ctx, LedgerIDKey, ledgerID)
			}

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetAuth0ID extracts the Auth0 user ID from the context
func GetAuth0ID(c echo.Context) string {
	if id, ok := c.Request().Context().Value(Auth0IDKey).(string); ok {
		return id
	}
	return ""
}

// GetClaims extracts the validated claims from the context
func GetClaims(c echo.Context) *validator.ValidatedClaims {
	if claims, ok := c.Request().Context().Value(ClaimsKey).(*validator.ValidatedClaims); ok {
		return claims
	}
	return nil
}

// GetCustomClaims extracts the custom claims from the context
func GetCustomClaims(c echo.Context) *CustomClaims {
	claims := GetClaims(c)
	if claims == nil {
		return nil
	}
	if custom, ok := claims.CustomClaims.(*CustomClaims); ok {
		return custom
	}
	return nil
}

// GetUserID extracts the internal user ID from the context
func GetUserID(c echo.Context) uuid.UUID {
	if id, ok := c.Request().Context().Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetLedgerID extracts the active ledger ID from the context
func GetLedgerID(c echo.Context) int32 {
	if id, ok := c.Request().Context().Value(LedgerIDKey).(int32); ok {
		return id
	}
	return 0
}
