package websocket

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrLedgerNotFound = errors.New("ledger not found")
)

// LedgerLookup resolves the ledger a user currently has active
type LedgerLookup interface {
	ResolveLedger(ctx context.Context, auth0ID string) (userID uuid.UUID, ledgerID int32, err error)
}

// Subscription is who a socket belongs to and which ledger it listens on
type Subscription struct {
	UserID   uuid.UUID
	LedgerID int32
}

// tokenValidator is the part of validator.Validator used here
type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (interface{}, error)
}

// Auth0JWTValidator checks the token passed in the ws query string
type Auth0JWTValidator struct {
	validator    tokenValidator
	ledgerLookup LedgerLookup
}

// NewAuth0JWTValidator creates a validator against the tenant's JWKS
func NewAuth0JWTValidator(domain, audience string, ledgerLookup LedgerLookup) (*Auth0JWTValidator, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return &Auth0JWTValidator{
		validator:    jwtValidator,
		ledgerLookup: ledgerLookup,
	}, nil
}

// ValidateToken verifies the JWT and resolves the subscriber's active ledger
func (v *Auth0JWTValidator) ValidateToken(ctx context.Context, token string) (Subscription, error) {
	claims, err := v.validator.ValidateToken(ctx, token)
	if err != nil {
		return Subscription{}, ErrInvalidToken
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return Subscription{}, ErrInvalidToken
	}

	userID, ledgerID, err := v.ledgerLookup.ResolveLedger(ctx, validatedClaims.RegisteredClaims.Subject)
	if err != nil {
		return Subscription{}, ErrLedgerNotFound
	}

	return Subscription{UserID: userID, LedgerID: ledgerID}, nil
}
