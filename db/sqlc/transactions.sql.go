// Written by hand in the layout sqlc v1.27.0 emits for sqlc.yaml from db/query/transactions.sql.
// queries_test.go checks the query text against db/query; `sqlc generate` overwrites this file.

package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createTransaction = `-- name: CreateTransaction :one
INSERT INTO transactions (
    ledger_id, user_id, type, name, purpose, amount, due_date,
    repeat_pattern, end_date, website, email, telephone
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id, ledger_id, user_id, type, name, purpose, amount, due_date, repeat_pattern,
    end_date, website, email, telephone, created_at, updated_at, deleted_at
`

type CreateTransactionParams struct {
	LedgerID      int32          `json:"ledger_id"`
	UserID        pgtype.UUID    `json:"user_id"`
	Type          string         `json:"type"`
	Name          string         `json:"name"`
	Purpose       string         `json:"purpose"`
	Amount        pgtype.Numeric `json:"amount"`
	DueDate       pgtype.Date    `json:"due_date"`
	RepeatPattern string         `json:"repeat_pattern"`
	EndDate       pgtype.Date    `json:"end_date"`
	Website       pgtype.Text    `json:"website"`
	Email         pgtype.Text    `json:"email"`
	Telephone     pgtype.Text    `json:"telephone"`
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (Transaction, error) {
	row := q.db.QueryRow(ctx, createTransaction,
		arg.LedgerID,
		arg.UserID,
		arg.Type,
		arg.Name,
		arg.Purpose,
		arg.Amount,
		arg.DueDate,
		arg.RepeatPattern,
		arg.EndDate,
		arg.Website,
		arg.Email,
		arg.Telephone,
	)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.LedgerID,
		&i.UserID,
		&i.Type,
		&i.Name,
		&i.Purpose,
		&i.Amount,
		&i.DueDate,
		&i.RepeatPattern,
		&i.EndDate,
		&i.Website,
		&i.Email,
		&i.Telephone,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.DeletedAt,
	)
	return i, err
}

const getTransactionByID = `-- name: GetTransactionByID :one
SELECT id, ledger_id, user_id, type, name, purpose, amount, due_date, repeat_pattern,
    end_date, website, email, telephone, created_at, updated_at, deleted_at
FROM transactions
WHERE ledger_id = $1 AND id = $2 AND deleted_at IS NULL
`

type GetTransactionByIDParams struct {
	LedgerID int32 `json:"ledger_id"`
	ID       int32 `json:"id"`
}

func (q *Queries) GetTransactionByID(ctx context.Context, arg GetTransactionByIDParams) (Transaction, error) {
	row := q.db.QueryRow(ctx, getTransactionByID, arg.LedgerID, arg.ID)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.LedgerID,
		&i.UserID,
		&i.Type,
		&i.Name,
		&i.Purpose,
		&i.Amount,
		&i.DueDate,
		&i.RepeatPattern,
		&i.EndDate,
		&i.Website,
		&i.Email,
		&i.Telephone,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.DeletedAt,
	)
	return i, err
}

const listTransactionsByLedger = `-- name: ListTransactionsByLedger :many
SELECT id, ledger_id, user_id, type, name, purpose, amount, due_date, repeat_pattern,
    end_date, website, email, telephone, created_at, updated_at, deleted_at
FROM transactions
WHERE ledger_id = $1
  AND deleted_at IS NULL
  AND ($2::text = '' OR type = $2::text)
ORDER BY due_date, id
`

type ListTransactionsByLedgerParams struct {
	LedgerID   int32  `json:"ledger_id"`
	TypeFilter string `json:"type_filter"`
}

func (q *Queries) ListTransactionsByLedger(ctx context.Context, arg ListTransactionsByLedgerParams) ([]Transaction, error) {
	rows, err := q.db.Query(ctx, listTransactionsByLedger, arg.LedgerID, arg.TypeFilter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transaction
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.ID,
			&i.LedgerID,
			&i.UserID,
			&i.Type,
			&i.Name,
			&i.Purpose,
			&i.Amount,
			&i.DueDate,
			&i.RepeatPattern,
			&i.EndDate,
			&i.Website,
			&i.Email,
			&i.Telephone,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.DeletedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const softDeleteTransaction = `-- name: SoftDeleteTransaction :execrows
UPDATE transactions
SET deleted_at = NOW(), updated_at = NOW()
WHERE ledger_id = $1 AND id = $2 AND deleted_at IS NULL
`

type SoftDeleteTransactionParams struct {
	LedgerID int32 `json:"ledger_id"`
	ID       int32 `json:"id"`
}

func (q *Queries) SoftDeleteTransaction(ctx context.Context, arg SoftDeleteTransactionParams) (int64, error) {
	result, err := q.db.Exec(ctx, softDeleteTransaction, arg.LedgerID, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateTransaction = `-- name: UpdateTransaction :one
UPDATE transactions
SET type = $3, name = $4, purpose = $5, amount = $6, due_date = $7, repeat_pattern = $8,
    end_date = $9, website = $10, email = $11, telephone = $12, updated_at = NOW()
WHERE ledger_id = $1 AND id = $2 AND deleted_at IS NULL
RETURNING id, ledger_id, user_id, type, name, purpose, amount, due_date, repeat_pattern,
    end_date, website, email, telephone, created_at, updated_at, deleted_at
`

type UpdateTransactionParams struct {
	LedgerID      int32          `json:"ledger_id"`
	ID            int32          `json:"id"`
	Type          string         `json:"type"`
	Name          string         `json:"name"`
	Purpose       string         `json:"purpose"`
	Amount        pgtype.Numeric `json:"amount"`
	DueDate       pgtype.Date    `json:"due_date"`
	RepeatPattern string         `json:"repeat_pattern"`
	EndDate       pgtype.Date    `json:"end_date"`
	Website       pgtype.Text    `json:"website"`
	Email         pgtype.Text    `json:"email"`
	Telephone     pgtype.Text    `json:"telephone"`
}

func (q *Queries) UpdateTransaction(ctx context.Context, arg UpdateTransactionParams) (Transaction, error) {
	row := q.db.QueryRow(ctx, updateTransaction,
		arg.LedgerID,
		arg.ID,
		arg.Type,
		arg.Name,
		arg.Purpose,
		arg.Amount,
		arg.DueDate,
		arg.RepeatPattern,
		arg.EndDate,
		arg.Website,
		arg.Email,
		arg.Telephone,
	)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.LedgerID,
		&i.UserID,
		&i.Type,
		&i.Name,
		&i.Purpose,
		&i.Amount,
		&i.DueDate,
		&i.RepeatPattern,
		&i.EndDate,
		&i.Website,
		&i.Email,
		&i.Telephone,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.DeletedAt,
	)
	return i, err
}
