package service

import (
	"context"

	"github.com/budgetbook/budgetbook-backend/internal/domain"
	"github.com/budgetbook/budgetbook-backend/internal/recurrence"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// BalanceService computes month totals of a ledger
type BalanceService struct {
	transactionRepo domain.TransactionRepository
	ledgerRepo      domain.LedgerRepository
	engine          recurrence.Engine
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(transactionRepo domain.TransactionRepository, ledgerRepo domain.LedgerRepository, engine recurrence.Engine) *BalanceService {
	return &BalanceService{
		transactionRepo: transactionRepo,
		ledgerRepo:      ledgerRepo,
		engine:          engine,
	}
}

// MonthBalance sums every transaction's contribution to the month
func (s *BalanceService) MonthBalance(ctx context.Context, ledgerID int32, userID uuid.UUID, month recurrence.Month) (*domain.MonthBalance, error) {
	if !month.Valid() {
		return nil, recurrence.ErrInvalidMonth
	}

	var (
		transactions []*domain.Transaction
		groups       []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.transactionRepo.ListByLedger(gctx, ledgerID, nil)
		if err != nil {
			log.Error().Err(err).Int32("ledger_id", ledgerID).Msg("Failed to list transactions for balance")
		}
		return err
	})
	g.Go(func() error {
		var err error
		groups, err = s.groupNames(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range transactions {
		total, err := s.engine.ActiveMonthTotal(t.Schedule(), month)
		if err != nil {
			log.Warn().Err(err).Int32("transaction_id", t.ID).Msg("Skipping invalid transaction in balance")
			continue
		}
		switch t.Type {
		case domain.TransactionTypeIncome:
			income = income.Add(total)
		case domain.TransactionTypeExpense:
			expenses = expenses.Add(total.Neg())
		}
	}

	return &domain.MonthBalance{
		Month:     month,
		MonthName: month.Name(),
		Total:     income.Sub(expenses),
		Income:    income,
		Expenses:  expenses,
		Prev:      month.Prev(),
		Next:      month.Next(),
		Groups:    groups,
	}, nil
}

func (s *BalanceService) groupNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	names := make([]string, 0)
	if userID == uuid.Nil {
		return names, nil
	}
	groups, err := s.ledgerRepo.ListGroupsByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		names = append(names, g.Name)
	}
	return names, nil
}
