package service

import (
	"context"
	"errors"
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

// seedLedger stores a monthly salary, a weekly expense and a loan in ledger 1
func seedLedger(repo *testutil.MockTransactionRepository) {
	repo.AddTransaction(&domain.Transaction{
		ID: 1, LedgerID: 1, Type: domain.TransactionTypeIncome, Name: "Salary",
		Amount: decimal.NewFromInt(1000), DueDate: date(2024, 1, 15), RepeatPattern: recurrence.PatternMonthly,
	})
	repo.AddTransaction(&domain.Transaction{
		ID: 2, LedgerID: 1, Type: domain.TransactionTypeExpense, Name: "Groceries",
		Amount: decimal.NewFromInt(50), DueDate: date(2024, 1, 1), RepeatPattern: recurrence.PatternWeekly,
	})
	repo.AddTransaction(&domain.Transaction{
		ID: 3, LedgerID: 1, Type: domain.TransactionTypeLoan, Name: "Car",
		Amount: decimal.NewFromInt(5000), DueDate: date(2024, 1, 1), RepeatPattern: recurrence.PatternMonthly,
	})
}

var february = recurrence.Month{Year: 2024, Month: 2}

func TestMonthBalance(t *testing.T) {
	repo := testutil.NewMockTransactionRepository()
	ledgers := testutil.NewMockLedgerRepository()
	seedLedger(repo)

	userID := uuid.New()
	ledgers.AddLedger(&domain.Ledger{ID: 10, Kind: domain.LedgerKindGroup, OwnerID: userID, Name: "Flat"})

	service := NewBalanceService(repo, ledgers, recurrence.NewEngine(recurrence.LegacyWindow))
	balance, err := service.MonthBalance(context.Background(), 1, userID, february)
	require.NoError(t, err)

	assert.True(t, balance.Income.Equal(decimal.NewFromInt(1000)), "income %s", balance.Income)
	assert.True(t, balance.Expenses.Equal(decimal.NewFromInt(200)), "expenses %s", balance.Expenses)
	assert.True(t, balance.Total.Equal(decimal.NewFromInt(800)), "total %s", balance.Total)
	assert.Equal(t, "February", balance.MonthName)
	assert.Equal(t, recurrence.Month{Year: 2024, Month: 1}, balance.Prev)
	assert.Equal(t, recurrence.Month{Year: 2024, Month: 3}, balance.Next)
	assert.Equal(t, []string{"Flat"}, balance.Groups)
}

func TestMonthBalance_RepositoryError(t *testing.T) {
	repo := testutil.NewMockTransactionRepository()
	repo.ListFn = func(ledgerID int32, filters *domain.TransactionFilters) ([]*domain.Transaction, error) {
		return nil, errors.New("connection reset")
	}

	service := NewBalanceService(repo, testutil.NewMockLedgerRepository(), recurrence.NewEngine(recurrence.LegacyWindow))
	balance, err := service.MonthBalance(context.Background(), 1, uuid.New(), february)

	assert.Nil(t, balance)
	assert.EqualError(t, err, "connection reset")
}

func TestMonthBalance_BeforeAnyDueDate(t *testing.T) {
	repo := testutil.NewMockTransactionRepository()
	seedLedger(repo)

	service := NewBalanceService(repo, testutil.NewMockLedgerRepository(), recurrence.NewEngine(recurrence.LegacyWindow))
	balance, err := service.MonthBalance(context.Background(), 1, uuid.Nil, recurrence.Month{Year: 2023, Month: 12})
	require.NoError(t, err)
	assert.True(t, balance.Total.IsZero())
	assert.Empty(t, balance.Groups)
}

func TestMonthBalance_InvalidMonth(t *testing.T) {
	service := NewBalanceService(testutil.NewMockTransactionRepository(), testutil.NewMockLedgerRepository(), recurrence.NewEngine(recurrence.LegacyWindow))
	_, err := service.MonthBalance(context.Background(), 1, uuid.Nil, recurrence.Month{Year: 2024, Month: 13})
	assert.ErrorIs(t, err, recurrence.ErrInvalidMonth)
}

func TestMonthCalendar(t *testing.T) {
	repo := testutil.NewMockTransactionRepository()
	seedLedger(repo)

	service := NewCalendarService(repo, recurrence.NewEngine(recurrence.LegacyWindow))
	cal, err := service.MonthCalendar(context.Background(), 1, february)
	require.NoError(t, err)

	// February 2024 starts on a Thursday
	assert.Equal(t, []int{29, 30, 31}, cal.Layout.LastDays)
	assert.Equal(t, "February", cal.MonthName)

	amounts := map[int][]decimal.Decimal{}
	for _, week := range append(cal.Layout.Weeks, cal.Layout.LastWeek) {
		for _, cell := range week {
			if cell.Amounts != nil {
				amounts[cell.Day] = cell.Amounts
			}
		}
	}
	assert.Len(t, amounts, 5)
	for _, day := range []int{5, 12, 19, 26} {
		require.Len(t, amounts[day], 1)
		assert.True(t, amounts[day][0].Equal(decimal.NewFromInt(-50)))
	}
	require.Len(t, amounts[15], 1)
	assert.True(t, amounts[15][0].Equal(decimal.NewFromInt(1000)))
}

func TestOccurrences_SameDayKeepsTransactionOrder(t *testing.T) {
	repo := testutil.NewMockTransactionRepository()
	repo.AddTransaction(&domain.Transaction{ID: 1, LedgerID: 1, Type: domain.TransactionTypeExpense, Name: "first",
		Amount: decimal.NewFromInt(1), DueDate: date(2024, 2, 3), RepeatPattern: recurrence.PatternOneOff})
	repo.AddTransaction(&domain.Transaction{ID: 2, LedgerID: 1, Type: domain.TransactionTypeIncome, Name: "second",
		Amount: decimal.NewFromInt(2), DueDate: date(2024, 2, 3), RepeatPattern: recurrence.PatternOneOff})

	service := NewCalendarService(repo, recurrence.NewEngine(recurrence.LegacyWindow))
	occurrences, err := service.Occurrences(context.Background(), 1, february)
	require.NoError(t, err)
	require.Len(t, occurrences, 2)
	assert.Equal(t, "first", occurrences[0].Transaction.Name)
	assert.Equal(t, "second", occurrences[1].Transaction.Name)
}

func TestMonthStatement(t *testing.T) {
	repo := testutil.NewMockTransactionRepository()
	seedLedger(repo)

	calendarService := NewCalendarService(repo, recurrence.NewEngine(recurrence.LegacyWindow))
	service := NewExportService(calendarService, nil, time.Minute)

	data, err := service.MonthStatement(context.Background(), 1, february)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "date,name,type,repeat_pattern,amount", lines[0])
	assert.Equal(t, "2024-02-05,Groceries,expense,weekly,-50.00", lines[1])
	assert.Equal(t, "2024-02-15,Salary,income,monthly,1000.00", lines[3])
}

func TestPublishStatement(t *testing.T) {
	repo := testutil.NewMockTransactionRepository()
	seedLedger(repo)
	store := testutil.NewMockObjectStore()

	service := NewExportService(NewCalendarService(repo, recurrence.NewEngine(recurrence.LegacyWindow)), store, 15*time.Minute)
	assert.True(t, service.UploadsEnabled())

	link, err := service.PublishStatement(context.Background(), 1, february)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link.Path, "statements/1/2024-02_"))
	assert.Contains(t, link.URL, link.Path)
	assert.Equal(t, "text/csv", store.ContentType[link.Path])
	assert.Contains(t, string(store.Objects[link.Path]), "Salary")
}

func TestPublishStatement_Disabled(t *testing.T) {
	service := NewExportService(NewCalendarService(testutil.NewMockTransactionRepository(), recurrence.NewEngine(recurrence.LegacyWindow)), nil, time.Minute)
	_, err := service.PublishStatement(context.Background(), 1, february)
	assert.ErrorIs(t, err, domain.ErrStorageDisabled)
}

func TestPublishStatement_UploadFails(t *testing.T) {
	store := testutil.NewMockObjectStore()
	store.UploadErr = errors.New("bucket gone")
	service := NewExportService(NewCalendarService(testutil.NewMockTransactionRepository(), recurrence.NewEngine(recurrence.LegacyWindow)), store, time.Minute)

	_, err := service.PublishStatement(context.Background(), 1, february)
	assert.EqualError(t, err, "bucket gone")
}
