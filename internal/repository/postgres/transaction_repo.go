package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetbook/budgetbook-backend/db/sqlc"
	"github.com/budgetbook/budgetbook-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		pool:    pool,
		queries: sqlc.New(pool),
	}
}

// Create creates a new transaction
func (r *TransactionRepository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	created, err := r.queries.CreateTransaction(ctx, sqlc.CreateTransactionParams{
		LedgerID:      transaction.LedgerID,
		UserID:        uuidToPg(transaction.UserID),
		Type:          string(transaction.Type),
		Name:          transaction.Name,
		Purpose:       transaction.Purpose,
		Amount:        amount,
		DueDate:       timeToPgDate(transaction.DueDate),
		RepeatPattern: string(transaction.RepeatPattern),
		EndDate:       timePtrToPgDate(transaction.EndDate),
		Website:       stringPtrToPgText(transaction.Website),
		Email:         stringPtrToPgText(transaction.Email),
		Telephone:     stringPtrToPgText(transaction.Telephone),
	})
	if err != nil {
		return nil, err
	}
	return sqlcTransactionToDomain(created), nil
}

// GetByID retrieves a transaction by its ID within a ledger
func (r *TransactionRepository) GetByID(ctx context.Context, ledgerID int32, id int32) (*domain.Transaction, error) {
	transaction, err := r.queries.GetTransactionByID(ctx, sqlc.GetTransactionByIDParams{
		LedgerID: ledgerID,
		ID:       id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return sqlcTransactionToDomain(transaction), nil
}

// ListByLedger returns the ledger's live transactions ordered by due date
func (r *TransactionRepository) ListByLedger(ctx context.Context, ledgerID int32, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
	params := sqlc.ListTransactionsByLedgerParams{LedgerID: ledgerID}
	if filters != nil && filters.Type != nil {
		params.TypeFilter = string(*filters.Type)
	}

	rows, err := r.queries.ListTransactionsByLedger(ctx, params)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Transaction, len(rows))
	for i, t := range rows {
		result[i] = sqlcTransactionToDomain(t)
	}
	return result, nil
}

// Update overwrites the editable fields of a transaction
func (r *TransactionRepository) Update(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	updated, err := r.queries.UpdateTransaction(ctx, sqlc.UpdateTransactionParams{
		LedgerID:      transaction.LedgerID,
		ID:            transaction.ID,
		Type:          string(transaction.Type),
		Name:          transaction.Name,
		Purpose:       transaction.Purpose,
		Amount:        amount,
		DueDate:       timeToPgDate(transaction.DueDate),
		RepeatPattern: string(transaction.RepeatPattern),
		EndDate:       timePtrToPgDate(transaction.EndDate),
		Website:       stringPtrToPgText(transaction.Website),
		Email:         stringPtrToPgText(transaction.Email),
		Telephone:     stringPtrToPgText(transaction.Telephone),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return sqlcTransactionToDomain(updated), nil
}

// SoftDelete marks a transaction as deleted
func (r *TransactionRepository) SoftDelete(ctx context.Context, ledgerID int32, id int32) error {
	rows, err := r.queries.SoftDeleteTransaction(ctx, sqlc.SoftDeleteTransactionParams{
		LedgerID: ledgerID,
		ID:       id,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func sqlcTransactionToDomain(t sqlc.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:            t.ID,
		LedgerID:      t.LedgerID,
		UserID:        pgToUUID(t.UserID),
		Type:          domain.TransactionType(t.Type),
		Name:          t.Name,
		Purpose:       t.Purpose,
		Amount:        pgNumericToDecimal(t.Amount),
		DueDate:       pgDateToTime(t.DueDate),
		RepeatPattern: domain.RepeatPattern(t.RepeatPattern),
		EndDate:       pgDateToTimePtr(t.EndDate),
		Website:       pgTextToStringPtr(t.Website),
		Email:         pgTextToStringPtr(t.Email),
		Telephone:     pgTextToStringPtr(t.Telephone),
		CreatedAt:     t.CreatedAt.Time,
		UpdatedAt:     t.UpdatedAt.Time,
		DeletedAt:     pgTimestamptzToTimePtr(t.DeletedAt),
	}
}
