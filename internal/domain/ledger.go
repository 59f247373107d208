package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LedgerKind distinguishes a user's own ledger from a shared group ledger
type LedgerKind string

const (
	LedgerKindPersonal LedgerKind = "personal"
	LedgerKindGroup    LedgerKind = "group"
)

// Ledger scopes transactions to either one user or a group of members
type Ledger struct {
	ID           int32      `json:"id"`
	Kind         LedgerKind `json:"kind"`
	OwnerID      uuid.UUID  `json:"ownerId"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"` // groups only
	MemberCount  int32      `json:"memberCount"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// IsGroup reports whether the ledger is shared
func (l *Ledger) IsGroup() bool {
	return l.Kind == LedgerKindGroup
}

// LedgerRepository defines the interface for ledger and membership persistence.
// Create also records the owner as the first member.
type LedgerRepository interface {
	GetByID(ctx context.Context, id int32) (*Ledger, error)
	GetPersonal(ctx context.Context, userID uuid.UUID) (*Ledger, error)
	GetGroupByName(ctx context.Context, name string) (*Ledger, error)
	Create(ctx context.Context, ledger *Ledger) (*Ledger, error)
	ListGroupsByMember(ctx context.Context, userID uuid.UUID) ([]*Ledger, error)
	IsMember(ctx context.Context, ledgerID int32, userID uuid.UUID) (bool, error)
	AddMember(ctx context.Context, ledgerID int32, userID uuid.UUID) (*Ledger, error)
}
