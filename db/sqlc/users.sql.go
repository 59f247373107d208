// Written by hand in the layout sqlc v1.27.0 emits for sqlc.yaml from db/query/users.sql.
// queries_test.go checks the query text against db/query; `sqlc generate` overwrites this file.

package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createOrGetUserByAuth0ID = `-- name: CreateOrGetUserByAuth0ID :one
INSERT INTO users (auth0_id, email, name, picture_url)
VALUES ($1, $2, $3, $4)
ON CONFLICT (auth0_id) DO UPDATE
SET email = EXCLUDED.email, updated_at = NOW()
RETURNING id, auth0_id, email, name, picture_url, created_at, updated_at, active_ledger_id
`

type CreateOrGetUserByAuth0IDParams struct {
	Auth0ID    string      `json:"auth0_id"`
	Email      string      `json:"email"`
	Name       pgtype.Text `json:"name"`
	PictureUrl pgtype.Text `json:"picture_url"`
}

func (q *Queries) CreateOrGetUserByAuth0ID(ctx context.Context, arg CreateOrGetUserByAuth0IDParams) (User, error) {
	row := q.db.QueryRow(ctx, createOrGetUserByAuth0ID,
		arg.Auth0ID,
		arg.Email,
		arg.Name,
		arg.PictureUrl,
	)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Auth0ID,
		&i.Email,
		&i.Name,
		&i.PictureUrl,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.ActiveLedgerID,
	)
	return i, err
}

const getUserByAuth0ID = `-- name: GetUserByAuth0ID :one
SELECT id, auth0_id, email, name, picture_url, created_at, updated_at, active_ledger_id
FROM users
WHERE auth0_id = $1
`

func (q *Queries) GetUserByAuth0ID(ctx context.Context, auth0ID string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByAuth0ID, auth0ID)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Auth0ID,
		&i.Email,
		&i.Name,
		&i.PictureUrl,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.ActiveLedgerID,
	)
	return i, err
}

const getUserByID = `-- name: GetUserByID :one
SELECT id, auth0_id, email, name, picture_url, created_at, updated_at, active_ledger_id
FROM users
WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id pgtype.UUID) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Auth0ID,
		&i.Email,
		&i.Name,
		&i.PictureUrl,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.ActiveLedgerID,
	)
	return i, err
}

const setUserActiveLedger = `-- name: SetUserActiveLedger :execrows
UPDATE users
SET active_ledger_id = $2, updated_at = NOW()
WHERE id = $1
`

type SetUserActiveLedgerParams struct {
	ID             pgtype.UUID `json:"id"`
	ActiveLedgerID pgtype.Int4 `json:"active_ledger_id"`
}

func (q *Queries) SetUserActiveLedger(ctx context.Context, arg SetUserActiveLedgerParams) (int64, error) {
	result, err := q.db.Exec(ctx, setUserActiveLedger, arg.ID, arg.ActiveLedgerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
