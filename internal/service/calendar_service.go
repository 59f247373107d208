package service

import (
	"context"
	"sort"

	"github.com/budgetbook/budgetbook-backend/internal/calendar"
	"github.com/budgetbook/budgetbook-backend/internal/domain"
	"github.com/budgetbook/budgetbook-backend/internal/recurrence"
	"github.com/rs/zerolog/log"
)

// CalendarService lays a ledger's month out as a calendar
type CalendarService struct {
	transactionRepo domain.TransactionRepository
	engine          recurrence.Engine
}

// NewCalendarService creates a new CalendarService
func NewCalendarService(transactionRepo domain.TransactionRepository, engine recurrence.Engine) *CalendarService {
	return &CalendarService{
		transactionRepo: transactionRepo,
		engine:          engine,
	}
}

// MonthCalendar builds the week grid with each day's signed amounts
func (s *CalendarService) MonthCalendar(ctx context.Context, ledgerID int32, month recurrence.Month) (*domain.MonthCalendar, error) {
	if !month.Valid() {
		return nil, recurrence.ErrInvalidMonth
	}

	occurrences, err := s.Occurrences(ctx, ledgerID, month)
	if err != nil {
		return nil, err
	}

	buckets := make(calendar.DayBuckets)
	for _, o := range occurrences {
		buckets.Add(o.Day, o.Amount)
	}

	layout, err := calendar.BuildWeeks(month.Year, month.Month, buckets)
	if err != nil {
		return nil, err
	}

	return &domain.MonthCalendar{
		Month:     month,
		MonthName: month.Name(),
		Prev:      month.Prev(),
		Next:      month.Next(),
		Layout:    layout,
	}, nil
}

// Occurrences lists every landing of the ledger's transactions in the month,
// by day and then in transaction order.
func (s *CalendarService) Occurrences(ctx context.Context, ledgerID int32, month recurrence.Month) ([]domain.Occurrence, error) {
	transactions, err := s.transactionRepo.ListByLedger(ctx, ledgerID, nil)
	if err != nil {
		log.Error().Err(err).Int32("ledger_id", ledgerID).Msg("Failed to list transactions for calendar")
		return nil, err
	}

	var occurrences []domain.Occurrence
	for _, t := range transactions {
		days, err := s.engine.DayBalance(t.Schedule(), month)
		if err != nil {
			log.Warn().Err(err).Int32("transaction_id", t.ID).Msg("Skipping invalid transaction in calendar")
			continue
		}
		sorted := make([]int, 0, len(days))
		for day := range days {
			sorted = append(sorted, day)
		}
		sort.Ints(sorted)
		for _, day := range sorted {
			occurrences = append(occurrences, domain.Occurrence{
				Transaction: t,
				Day:         day,
				Amount:      days[day],
			})
		}
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].Day < occurrences[j].Day
	})
	return occurrences, nil
}
