package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetbook/budgetbook-backend/db/sqlc"
	"github.com/budgetbook/budgetbook-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository implements domain.LedgerRepository using PostgreSQL
type LedgerRepository struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{
		pool:    pool,
		queries: sqlc.New(pool),
	}
}

// GetByID retrieves a ledger by its ID
func (r *LedgerRepository) GetByID(ctx context.Context, id int32) (*domain.Ledger, error) {
	ledger, err := r.queries.GetLedgerByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLedgerNotFound
		}
		return nil, err
	}
	return sqlcLedgerToDomain(ledger), nil
}

// GetPersonal retrieves the personal ledger owned by a user
func (r *LedgerRepository) GetPersonal(ctx context.Context, userID uuid.UUID) (*domain.Ledger, error) {
	ledger, err := r.queries.GetPersonalLedger(ctx, uuidToPg(userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLedgerNotFound
		}
		return nil, err
	}
	return sqlcLedgerToDomain(ledger), nil
}

// GetGroupByName retrieves a group ledger by its unique name
func (r *LedgerRepository) GetGroupByName(ctx context.Context, name string) (*domain.Ledger, error) {
	ledger, err := r.queries.GetGroupLedgerByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLedgerNotFound
		}
		return nil, err
	}
	return sqlcLedgerToDomain(ledger), nil
}

// Create inserts the ledger and its owner's membership in one transaction
func (r *LedgerRepository) Create(ctx context.Context, ledger *domain.Ledger) (*domain.Ledger, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := r.queries.WithTx(tx)
	created, err := qtx.CreateLedger(ctx, sqlc.CreateLedgerParams{
		Kind:         string(ledger.Kind),
		OwnerID:      uuidToPg(ledger.OwnerID),
		Name:         ledger.Name,
		PasswordHash: ledger.PasswordHash,
	})
	if err != nil {
		if isUniqueViolation(err) {
			if ledger.Kind == domain.LedgerKindGroup {
				return nil, domain.ErrGroupNameTaken
			}
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}

	if err := qtx.AddLedgerMember(ctx, sqlc.AddLedgerMemberParams{
		LedgerID: created.ID,
		UserID:   created.OwnerID,
	}); err != nil {
		return nil, fmt.Errorf("add owner membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return sqlcLedgerToDomain(created), nil
}

// ListGroupsByMember returns the group ledgers a user belongs to, ordered by name
func (r *LedgerRepository) ListGroupsByMember(ctx context.Context, userID uuid.UUID) ([]*domain.Ledger, error) {
	rows, err := r.queries.ListGroupLedgersByMember(ctx, uuidToPg(userID))
	if err != nil {
		return nil, err
	}
	result := make([]*domain.Ledger, len(rows))
	for i, l := range rows {
		result[i] = sqlcLedgerToDomain(l)
	}
	return result, nil
}

// IsMember reports whether the user belongs to the ledger
func (r *LedgerRepository) IsMember(ctx context.Context, ledgerID int32, userID uuid.UUID) (bool, error) {
	return r.queries.IsLedgerMember(ctx, sqlc.IsLedgerMemberParams{
		LedgerID: ledgerID,
		UserID:   uuidToPg(userID),
	})
}

// AddMember adds the user to the ledger and bumps its member count
func (r *LedgerRepository) AddMember(ctx context.Context, ledgerID int32, userID uuid.UUID) (*domain.Ledger, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := r.queries.WithTx(tx)
	if err := qtx.AddLedgerMember(ctx, sqlc.AddLedgerMemberParams{
		LedgerID: ledgerID,
		UserID:   uuidToPg(userID),
	}); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyMember
		}
		return nil, err
	}

	updated, err := qtx.IncrementLedgerMemberCount(ctx, ledgerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLedgerNotFound
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return sqlcLedgerToDomain(updated), nil
}

func sqlcLedgerToDomain(l sqlc.Ledger) *domain.Ledger {
	return &domain.Ledger{
		ID:           l.ID,
		Kind:         domain.LedgerKind(l.Kind),
		OwnerID:      pgToUUID(l.OwnerID),
		Name:         l.Name,
		PasswordHash: l.PasswordHash,
		MemberCount:  l.MemberCount,
		CreatedAt:    l.CreatedAt.Time,
		UpdatedAt:    l.UpdatedAt.Time,
	}
}
