// Package recurrence expands recurring budget entries into per-month totals and
// per-day contributions.
//
// All functions are pure: they read a Schedule and a Month and never mutate either.
package recurrence

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPattern     = errors.New("invalid repeat pattern")
	ErrInvalidKind        = errors.New("invalid transaction type")
	ErrNegativeAmount     = errors.New("amount must not be negative")
	ErrMissingDueDate     = errors.New("due date is required")
	ErrMalformedDateRange = errors.New("end date precedes due date")
	ErrInvalidMonth       = errors.New("month must be between 1 and 12")
)

// Kind is the sign-bearing category of a schedule
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
	KindLoan    Kind = "loan"
)

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindLoan:
		return true
	}
	return false
}

// ParseKind accepts canonical values and the capitalised labels used by older clients
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

// signed applies the sign convention to a magnitude: expenses are negative.
func (k Kind) signed(magnitude decimal.Decimal) decimal.Decimal {
	if k == KindExpense {
		return magnitude.Neg()
	}
	return magnitude
}

// Schedule is the read-only view of a transaction the engine works on.
// Amount is always a magnitude; the sign comes from Kind.
type Schedule struct {
	Kind    Kind
	Amount  decimal.Decimal
	DueDate time.Time
	Pattern Pattern
	EndDate *time.Time
}

// Validate rejects inputs that would otherwise produce silently wrong totals
func (s Schedule) Validate() error {
	if !s.Kind.Valid() {
		return ErrInvalidKind
	}
	if s.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if s.DueDate.IsZero() {
		return ErrMissingDueDate
	}
	if s.EndDate != nil && dateOnly(*s.EndDate).Before(dateOnly(s.DueDate)) {
		return ErrMalformedDateRange
	}
	return nil
}

// dateOnly drops the clock and location so day arithmetic is exact.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
