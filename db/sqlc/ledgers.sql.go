// Written by hand in the layout sqlc v1.27.0 emits for sqlc.yaml from db/query/ledgers.sql.
// queries_test.go checks the query text against db/query; `sqlc generate` overwrites this file.

package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const addLedgerMember = `-- name: AddLedgerMember :exec
INSERT INTO ledger_members (ledger_id, user_id)
VALUES ($1, $2)
`

type AddLedgerMemberParams struct {
	LedgerID int32       `json:"ledger_id"`
	UserID   pgtype.UUID `json:"user_id"`
}

func (q *Queries) AddLedgerMember(ctx context.Context, arg AddLedgerMemberParams) error {
	_, err := q.db.Exec(ctx, addLedgerMember, arg.LedgerID, arg.UserID)
	return err
}

const createLedger = `-- name: CreateLedger :one
INSERT INTO ledgers (kind, owner_id, name, password_hash)
VALUES ($1, $2, $3, $4)
RETURNING id, kind, owner_id, name, password_hash, member_count, created_at, updated_at
`

type CreateLedgerParams struct {
	Kind         string      `json:"kind"`
	OwnerID      pgtype.UUID `json:"owner_id"`
	Name         string      `json:"name"`
	PasswordHash string      `json:"password_hash"`
}

func (q *Queries) CreateLedger(ctx context.Context, arg CreateLedgerParams) (Ledger, error) {
	row := q.db.QueryRow(ctx, createLedger,
		arg.Kind,
		arg.OwnerID,
		arg.Name,
		arg.PasswordHash,
	)
	var i Ledger
	err := row.Scan(
		&i.ID,
		&i.Kind,
		&i.OwnerID,
		&i.Name,
		&i.PasswordHash,
		&i.MemberCount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getGroupLedgerByName = `-- name: GetGroupLedgerByName :one
SELECT id, kind, owner_id, name, password_hash, member_count, created_at, updated_at
FROM ledgers
WHERE name = $1 AND kind = 'group'
`

func (q *Queries) GetGroupLedgerByName(ctx context.Context, name string) (Ledger, error) {
	row := q.db.QueryRow(ctx, getGroupLedgerByName, name)
	var i Ledger
	err := row.Scan(
		&i.ID,
		&i.Kind,
		&i.OwnerID,
		&i.Name,
		&i.PasswordHash,
		&i.MemberCount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getLedgerByID = `-- name: GetLedgerByID :one
SELECT id, kind, owner_id, name, password_hash, member_count, created_at, updated_at
FROM ledgers
WHERE id = $1
`

func (q *Queries) GetLedgerByID(ctx context.Context, id int32) (Ledger, error) {
	row := q.db.QueryRow(ctx, getLedgerByID, id)
	var i Ledger
	err := row.Scan(
		&i.ID,
		&i.Kind,
		&i.OwnerID,
		&i.Name,
		&i.PasswordHash,
		&i.MemberCount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getPersonalLedger = `-- name: GetPersonalLedger :one
SELECT id, kind, owner_id, name, password_hash, member_count, created_at, updated_at
FROM ledgers
WHERE owner_id = $1 AND kind = 'personal'
`

func (q *Queries) GetPersonalLedger(ctx context.Context, ownerID pgtype.UUID) (Ledger, error) {
	row := q.db.QueryRow(ctx, getPersonalLedger, ownerID)
	var i Ledger
	err := row.Scan(
		&i.ID,
		&i.Kind,
		&i.OwnerID,
		&i.Name,
		&i.PasswordHash,
		&i.MemberCount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const incrementLedgerMemberCount = `-- name: IncrementLedgerMemberCount :one
UPDATE ledgers
SET member_count = member_count + 1, updated_at = NOW()
WHERE id = $1
RETURNING id, kind, owner_id, name, password_hash, member_count, created_at, updated_at
`

func (q *Queries) IncrementLedgerMemberCount(ctx context.Context, id int32) (Ledger, error) {
	row := q.db.QueryRow(ctx, incrementLedgerMemberCount, id)
	var i Ledger
	err := row.Scan(
		&i.ID,
		&i.Kind,
		&i.OwnerID,
		&i.Name,
		&i.PasswordHash,
		&i.MemberCount,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const isLedgerMember = `-- name: IsLedgerMember :one
SELECT EXISTS (
    SELECT 1 FROM ledger_members WHERE ledger_id = $1 AND user_id = $2
)
`

type IsLedgerMemberParams struct {
	LedgerID int32       `json:"ledger_id"`
	UserID   pgtype.UUID `json:"user_id"`
}

func (q *Queries) IsLedgerMember(ctx context.Context, arg IsLedgerMemberParams) (bool, error) {
	row := q.db.QueryRow(ctx, isLedgerMember, arg.LedgerID, arg.UserID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const listGroupLedgersByMember = `-- name: ListGroupLedgersByMember :many
SELECT l.id, l.kind, l.owner_id, l.name, l.password_hash, l.member_count, l.created_at, l.updated_at
FROM ledgers l
JOIN ledger_members m ON m.ledger_id = l.id
WHERE m.user_id = $1 AND l.kind = 'group'
ORDER BY l.name
`

func (q *Queries) ListGroupLedgersByMember(ctx context.Context, userID pgtype.UUID) ([]Ledger, error) {
	rows, err := q.db.Query(ctx, listGroupLedgersByMember, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Ledger
	for rows.Next() {
		var i Ledger
		if err := rows.Scan(
			&i.ID,
			&i.Kind,
			&i.OwnerID,
			&i.Name,
			&i.PasswordHash,
			&i.MemberCount,
			&i.CreatedAt,
			&i.UpdatedAt,
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
