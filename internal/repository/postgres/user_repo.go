package postgres

import (
	"context"
	"errors"

	"github.com/budgetbook/budgetbook-backend/db/sqlc"
	"github.com/budgetbook/budgetbook-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		pool:    pool,
		queries: sqlc.New(pool),
	}
}

// GetByID retrieves a user by their UUID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := r.queries.GetUserByID(ctx, uuidToPg(id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return sqlcUserToDomain(user), nil
}

// GetByAuth0ID retrieves a user by their Auth0 ID
func (r *UserRepository) GetByAuth0ID(ctx context.Context, auth0ID string) (*domain.User, error) {
	user, err := r.queries.GetUserByAuth0ID(ctx, auth0ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return sqlcUserToDomain(user), nil
}

// CreateOrGetByAuth0ID creates a new user or returns existing one (upsert on login)
func (r *UserRepository) CreateOrGetByAuth0ID(ctx context.Context, auth0ID, email string, name, pictureURL *string) (*domain.User, error) {
	user, err := r.queries.CreateOrGetUserByAuth0ID(ctx, sqlc.CreateOrGetUserByAuth0IDParams{
		Auth0ID:    auth0ID,
		Email:      email,
		Name:       stringPtrToPgText(name),
		PictureUrl: stringPtrToPgText(pictureURL),
	})
	if err != nil {
		return nil, err
	}
	return sqlcUserToDomain(user), nil
}

// SetActiveLedger points the user at a group ledger, or back to personal when ledgerID is nil
func (r *UserRepository) SetActiveLedger(ctx context.Context, userID uuid.UUID, ledgerID *int32) error {
	rows, err := r.queries.SetUserActiveLedger(ctx, sqlc.SetUserActiveLedgerParams{
		ID:             uuidToPg(userID),
		ActiveLedgerID: int32PtrToPgInt4(ledgerID),
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func sqlcUserToDomain(u sqlc.User) *domain.User {
	return &domain.User{
		ID:             pgToUUID(u.ID),
		Auth0ID:        u.Auth0ID,
		Email:          u.Email,
		Name:           pgTextToStringPtr(u.Name),
		PictureURL:     pgTextToStringPtr(u.PictureUrl),
		ActiveLedgerID: pgInt4ToInt32Ptr(u.ActiveLedgerID),
		CreatedAt:      u.CreatedAt.Time,
		UpdatedAt:      u.UpdatedAt.Time,
	}
}
