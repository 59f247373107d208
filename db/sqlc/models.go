// Written by hand in the layout sqlc v1.27.0 emits for sqlc.yaml.
// queries_test.go checks the query text against db/query; `sqlc generate` overwrites this file.

package sqlc

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Ledger struct {
	ID           int32              `json:"id"`
	Kind         string             `json:"kind"`
	OwnerID      pgtype.UUID        `json:"owner_id"`
	Name         string             `json:"name"`
	PasswordHash string             `json:"password_hash"`
	MemberCount  int32              `json:"member_count"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

type LedgerMember struct {
	LedgerID int32              `json:"ledger_id"`
	UserID   pgtype.UUID        `json:"user_id"`
	JoinedAt pgtype.Timestamptz `json:"joined_at"`
}

type Transaction struct {
	ID            int32              `json:"id"`
	LedgerID      int32              `json:"ledger_id"`
	UserID        pgtype.UUID        `json:"user_id"`
	Type          string             `json:"type"`
	Name          string             `json:"name"`
	Purpose       string             `json:"purpose"`
	Amount        pgtype.Numeric     `json:"amount"`
	DueDate       pgtype.Date        `json:"due_date"`
	RepeatPattern string             `json:"repeat_pattern"`
	EndDate       pgtype.Date        `json:"end_date"`
	Website       pgtype.Text        `json:"website"`
	Email         pgtype.Text        `json:"email"`
	Telephone     pgtype.Text        `json:"telephone"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
	DeletedAt     pgtype.Timestamptz `json:"deleted_at"`
}

type User struct {
	ID             pgtype.UUID        `json:"id"`
	Auth0ID        string             `json:"auth0_id"`
	Email          string             `json:"email"`
	Name           pgtype.Text        `json:"name"`
	PictureUrl     pgtype.Text        `json:"picture_url"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
	ActiveLedgerID pgtype.Int4        `json:"active_ledger_id"`
}
