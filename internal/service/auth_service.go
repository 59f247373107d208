package service

import (
	"context"
	"errors"

	"github.com/budgetbook/budgetbook-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AuthService handles authentication-related business logic
type AuthService struct {
	userRepo   domain.UserRepository
	ledgerRepo domain.LedgerRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, ledgerRepo domain.LedgerRepository) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
	}
}

// AuthResult represents the result of an authentication operation
type AuthResult struct {
	User      *domain.User
	Ledger    *domain.Ledger
	IsNewUser bool
}

// AuthenticateUser handles the authentication flow after Auth0 callback.
// Creates the user and their personal ledger if they don't exist.
func (s *AuthService) AuthenticateUser(ctx context.Context, auth0ID, email string, name, pictureURL *string) (*AuthResult, error) {
	user, err := s.userRepo.CreateOrGetByAuth0ID(ctx, auth0ID, email, name, pictureURL)
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to create or get user")
		return nil, err
	}

	personal, err := s.ledgerRepo.GetPersonal(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrLedgerNotFound) {
			log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to get personal ledger")
			return nil, err
		}

		personal, err = s.ledgerRepo.Create(ctx, &domain.Ledger{
			Kind:    domain.LedgerKindPersonal,
			OwnerID: user.ID,
			Name:    "Personal",
		})
		if err != nil {
			log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Failed to create personal ledger")
			return nil, err
		}
		log.Info().Str("user_id", user.ID.String()).Msg("Created new user with personal ledger")
		return &AuthResult{User: user, Ledger: personal, IsNewUser: true}, nil
	}

	active, err := s.ActiveLedger(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID.String()).Msg("Existing user authenticated")
	return &AuthResult{User: user, Ledger: active, IsNewUser: false}, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserByAuth0ID retrieves a user by their Auth0 ID
func (s *AuthService) GetUserByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	return s.userRepo.GetByAuth0ID(ctx, auth0ID)
}

// ActiveLedger returns the group the user has selected, or their personal ledger.
// A selection pointing at a group the user no longer belongs to falls back to personal.
func (s *AuthService) ActiveLedger(ctx context.Context, user *domain.User) (*domain.Ledger, error) {
	if user.ActiveLedgerID != nil {
		ledger, err := s.ledgerRepo.GetByID(ctx, *user.ActiveLedgerID)
		switch {
		case err == nil:
			member, err := s.ledgerRepo.IsMember(ctx, ledger.ID, user.ID)
			if err != nil {
				return nil, err
			}
			if member {
				return ledger, nil
			}
			log.Warn().Str("user_id", user.ID.String()).Int32("ledger_id", ledger.ID).Msg("Active ledger without membership, using personal")
		case errors.Is(err, domain.ErrLedgerNotFound):
		default:
			return nil, err
		}
	}
	return s.ledgerRepo.GetPersonal(ctx, user.ID)
}

// ResolveLedger maps an Auth0 subject to the user and the ledger their requests act on
func (s *AuthService) ResolveLedger(ctx context.Context, auth0ID string) (uuid.UUID, int32, error) {
	user, err := s.userRepo.GetByAuth0ID(ctx, auth0ID)
	if err != nil {
		return uuid.Nil, 0, err
	}
	ledger, err := s.ActiveLedger(ctx, user)
	if err != nil {
		return uuid.Nil, 0, err
	}
	return user.ID, ledger.ID, nil
}
