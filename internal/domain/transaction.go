package domain

import (
	"context"
	"time"

	"github.com/budgetbook/budgetbook-backend/internal/recurrence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType = recurrence.Kind

const (
	TransactionTypeIncome  = recurrence.KindIncome
	TransactionTypeExpense = recurrence.KindExpense
	TransactionTypeLoan    = recurrence.KindLoan
)

type RepeatPattern = recurrence.Pattern

// Transaction is an income, expense or loan entry of a ledger.
// Amount is a magnitude; the sign is derived from Type.
type Transaction struct {
	ID            int32           `json:"id"`
	LedgerID      int32           `json:"ledgerId"`
	UserID        uuid.UUID       `json:"userId"`
	Type          TransactionType `json:"type"`
	Name          string          `json:"name"`
	Purpose       string          `json:"purpose"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"dueDate"`
	RepeatPattern RepeatPattern   `json:"repeatPattern"`
	EndDate       *time.Time      `json:"endDate,omitempty"`
	Website       *string         `json:"website,omitempty"`
	Email         *string         `json:"email,omitempty"`
	Telephone     *string         `json:"telephone,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	DeletedAt     *time.Time      `json:"deletedAt,omitempty"`
}

// Schedule returns the recurrence view of the transaction
func (t *Transaction) Schedule() recurrence.Schedule {
	return recurrence.Schedule{
		Kind:    t.Type,
		Amount:  t.Amount,
		DueDate: t.DueDate,
		Pattern: t.RepeatPattern,
		EndDate: t.EndDate,
	}
}

// Attribute is a labelled value for the transaction detail view
type Attribute struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Attributes lists the transaction's fields in display order
func (t *Transaction) Attributes() []Attribute {
	opt := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	endDate := ""
	if t.EndDate != nil {
		endDate = t.EndDate.Format("2006-01-02")
	}
	return []Attribute{
		{Label: "Name", Value: t.Name},
		{Label: "Purpose", Value: t.Purpose},
		{Label: "Type", Value: string(t.Type)},
		{Label: "Amount", Value: t.Amount.StringFixed(2)},
		{Label: "Due On", Value: t.DueDate.Format("2006-01-02")},
		{Label: "Repeat Pattern", Value: string(t.RepeatPattern)},
		{Label: "Website", Value: opt(t.Website)},
		{Label: "E-Mail", Value: opt(t.Email)},
		{Label: "Telephone Number", Value: opt(t.Telephone)},
		{Label: "End Date", Value: endDate},
		{Label: "Added On", Value: t.CreatedAt.Format("2006-01-02")},
	}
}

type TransactionFilters struct {
	Type *TransactionType
}

type TransactionRepository interface {
	Create(ctx context.Context, transaction *Transaction) (*Transaction, error)
	GetByID(ctx context.Context, ledgerID int32, id int32) (*Transaction, error)
	ListByLedger(ctx context.Context, ledgerID int32, filters *TransactionFilters) ([]*Transaction, error)
	Update(ctx context.Context, transaction *Transaction) (*Transaction, error)
	SoftDelete(ctx context.Context, ledgerID int32, id int32) error
}
