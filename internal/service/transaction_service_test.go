package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/budgetbook/budgetbook-backend/internal/domain"
	"github.com/budgetbook/budgetbook-backend/internal/recurrence"
	"github.com/budgetbook/budgetbook-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransactionFixture() (*TransactionService, *testutil.MockTransactionRepository, *testutil.MockEventPublisher) {
	repo := testutil.NewMockTransactionRepository()
	publisher := testutil.NewMockEventPublisher()
	service := NewTransactionService(repo)
	service.SetEventPublisher(publisher)
	service.now = func() time.Time { return time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC) }
	return service, repo, publisher
}

func strPtr(s string) *string { return &s }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateTransaction_Defaults(t *testing.T) {
	service, _, publisher := newTransactionFixture()
	userID := uuid.New()

	tx, err := service.CreateTransaction(context.Background(), 1, userID, TransactionInput{
		Type:    "Expense",
		Name:    "  Rent ",
		Amount:  decimal.NewFromInt(700),
		Website: strPtr("  "),
		Email:   strPtr(" landlord@example.com "),
	})
	require.NoError(t, err)

	assert.Equal(t, "Rent", tx.Name)
	assert.Equal(t, domain.TransactionTypeExpense, tx.Type)
	assert.Equal(t, recurrence.PatternOneOff, tx.RepeatPattern)
	assert.Equal(t, date(2024, 3, 10), tx.DueDate)
	assert.Nil(t, tx.Website)
	require.NotNil(t, tx.Email)
	assert.Equal(t, "landlord@example.com", *tx.Email)
	assert.Equal(t, userID, tx.UserID)
	assert.Equal(t, []string{"transaction.created"}, publisher.EventTypes())
	assert.Equal(t, int32(1), publisher.Events[0].LedgerID)
}

func TestCreateTransaction_LegacyPatternLabel(t *testing.T) {
	service, _, _ := newTransactionFixture()

	tx, err := service.CreateTransaction(context.Background(), 1, uuid.New(), TransactionInput{
		Type:          "income",
		Name:          "Salary",
		Amount:        decimal.NewFromInt(1000),
		RepeatPattern: "every two weeks",
	})
	require.NoError(t, err)
	assert.Equal(t, recurrence.PatternBiweekly, tx.RepeatPattern)
}

func TestCreateTransaction_Validation(t *testing.T) {
	due := date(2024, 5, 1)
	before := date(2024, 4, 30)

	tests := []struct {
		name  string
		input TransactionInput
		want  error
	}{
		{"missing name", TransactionInput{Type: "expense", Name: " "}, domain.ErrNameRequired},
		{"long name", TransactionInput{Type: "expense", Name: strings.Repeat("n", domain.MaxTransactionNameLength+1)}, domain.ErrNameTooLong},
		{"long purpose", TransactionInput{Type: "expense", Name: "x", Purpose: strings.Repeat("p", domain.MaxTransactionPurposeLength+1)}, domain.ErrPurposeTooLong},
		{"negative amount", TransactionInput{Type: "expense", Name: "x", Amount: decimal.NewFromInt(-1)}, domain.ErrInvalidAmount},
		{"bad type", TransactionInput{Type: "gift", Name: "x"}, domain.ErrInvalidTransactionType},
		{"bad pattern", TransactionInput{Type: "expense", Name: "x", RepeatPattern: "daily"}, domain.ErrInvalidRepeatPattern},
		{"long telephone", TransactionInput{Type: "expense", Name: "x", Telephone: strPtr(strings.Repeat("1", domain.MaxTelephoneLength+1))}, domain.ErrContactTooLong},
		{"end before due", TransactionInput{Type: "expense", Name: "x", DueDate: &due, EndDate: &before}, domain.ErrMalformedDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, publisher := newTransactionFixture()
			_, err := service.CreateTransaction(context.Background(), 1, uuid.New(), tt.input)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, repo.Transactions)
			assert.Empty(t, publisher.Events)
		})
	}
}

func TestCreateTransaction_ZeroAmountAllowed(t *testing.T) {
	service, _, _ := newTransactionFixture()
	_, err := service.CreateTransaction(context.Background(), 1, uuid.New(), TransactionInput{Type: "loan", Name: "Placeholder"})
	assert.NoError(t, err)
}

func TestGetTransaction_Attributes(t *testing.T) {
	service, repo, _ := newTransactionFixture()
	repo.AddTransaction(&domain.Transaction{
		ID: 5, LedgerID: 1, Type: domain.TransactionTypeIncome, Name: "Salary",
		Amount: decimal.NewFromInt(1000), DueDate: date(2024, 1, 15), RepeatPattern: recurrence.PatternMonthly,
	})

	detail, err := service.GetTransaction(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, "Salary", detail.Transaction.Name)
	require.NotEmpty(t, detail.Attributes)
	assert.Equal(t, domain.Attribute{Label: "Name", Value: "Salary"}, detail.Attributes[0])

	_, err = service.GetTransaction(context.Background(), 2, 5)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestListTransactions_TypeFilter(t *testing.T) {
	service, repo, _ := newTransactionFixture()
	repo.AddTransaction(&domain.Transaction{ID: 1, LedgerID: 1, Type: domain.TransactionTypeIncome, Name: "a", DueDate: date(2024, 1, 2)})
	repo.AddTransaction(&domain.Transaction{ID: 2, LedgerID: 1, Type: domain.TransactionTypeExpense, Name: "b", DueDate: date(2024, 1, 1)})
	repo.AddTransaction(&domain.Transaction{ID: 3, LedgerID: 1, Type: domain.TransactionTypeLoan, Name: "c", DueDate: date(2024, 1, 3)})
	repo.AddTransaction(&domain.Transaction{ID: 4, LedgerID: 2, Type: domain.TransactionTypeExpense, Name: "d", DueDate: date(2024, 1, 1)})

	all, err := service.ListTransactions(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int32(2), all[0].ID)

	expenses, err := service.ListTransactions(context.Background(), 1, "expenses")
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "b", expenses[0].Name)

	loans, err := service.ListTransactions(context.Background(), 1, "loan")
	require.NoError(t, err)
	require.Len(t, loans, 1)

	_, err = service.ListTransactions(context.Background(), 1, "gifts")
	assert.ErrorIs(t, err, domain.ErrInvalidTransactionType)
}

func TestUpdateTransaction(t *testing.T) {
	service, repo, publisher := newTransactionFixture()
	creator := uuid.New()
	repo.AddTransaction(&domain.Transaction{
		ID: 9, LedgerID: 1, UserID: creator, Type: domain.TransactionTypeExpense, Name: "Gym",
		Amount: decimal.NewFromInt(30), DueDate: date(2024, 1, 5), RepeatPattern: recurrence.PatternMonthly,
	})

	updated, err := service.UpdateTransaction(context.Background(), 1, 9, TransactionInput{
		Type: "expense", Name: "Gym plus", Amount: decimal.NewFromInt(45), RepeatPattern: "monthly",
	})
	require.NoError(t, err)
	assert.Equal(t, "Gym plus", updated.Name)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(45)))
	assert.Equal(t, date(2024, 1, 5), updated.DueDate)
	assert.Equal(t, creator, updated.UserID)
	assert.Equal(t, []string{"transaction.updated"}, publisher.EventTypes())

	_, err = service.UpdateTransaction(context.Background(), 1, 99, TransactionInput{Type: "expense", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestDeleteTransaction(t *testing.T) {
	service, repo, publisher := newTransactionFixture()
	repo.AddTransaction(&domain.Transaction{ID: 3, LedgerID: 1, Type: domain.TransactionTypeExpense, Name: "x", DueDate: date(2024, 1, 1)})

	require.NoError(t, service.DeleteTransaction(context.Background(), 1, 3))
	assert.NotNil(t, repo.Transactions[3].DeletedAt)
	assert.Equal(t, []string{"transaction.deleted"}, publisher.EventTypes())

	err := service.DeleteTransaction(context.Background(), 1, 3)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	assert.Len(t, publisher.Events, 1)
}
