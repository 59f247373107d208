package domain

import (
	"github.com/budgetbook/budgetbook-backend/internal/calendar"
	"github.com/budgetbook/budgetbook-backend/internal/recurrence"
	"github.com/shopspring/decimal"
)

// MonthBalance is the signed total of a ledger's transactions for one month
type MonthBalance struct {
	Month     recurrence.Month `json:"month"`
	MonthName string           `json:"monthName"`
	Total     decimal.Decimal  `json:"total"`
	Income    decimal.Decimal  `json:"income"`
	Expenses  decimal.Decimal  `json:"expenses"`
	Prev      recurrence.Month `json:"prev"`
	Next      recurrence.Month `json:"next"`
	Groups    []string         `json:"groups"`
}

// MonthCalendar is a ledger's month laid out as week rows
type MonthCalendar struct {
	Month     recurrence.Month `json:"month"`
	MonthName string           `json:"monthName"`
	Prev      recurrence.Month `json:"prev"`
	Next      recurrence.Month `json:"next"`
	Layout    *calendar.Layout `json:"layout"`
}

// Occurrence is a single landing of a transaction inside a month
type Occurrence struct {
	Transaction *Transaction
	Day         int
	Amount      decimal.Decimal // signed
}
