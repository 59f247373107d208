package recurrence

import (
	"time"

	"github.com/budgetbook/budgetbook-backend/internal/util"
	"github.com/shopspring/decimal"
)

// maxAdvanceSteps bounds the month-number search of the legacy weekly loop. Any stride
// of up to four weeks reaches every month number within 53 steps.
const maxAdvanceSteps = 1000

// Engine evaluates schedules against months under a window policy
type Engine struct {
	window Window
}

// NewEngine creates an Engine using the given window policy
func NewEngine(window Window) Engine {
	return Engine{window: window}
}

// Window returns the engine's window policy
func (e Engine) Window() Window {
	return e.window
}

// Active reports whether the schedule contributes anything to month m.
// Loans never do.
func (e Engine) Active(s Schedule, m Month) bool {
	if s.Kind == KindLoan {
		return false
	}
	if e.window.dueAfter(s, m) {
		return false
	}
	if e.window.endedBefore(s, m) {
		return false
	}
	return true
}

// Occurrences returns the dates inside month m on which the schedule lands
func (e Engine) Occurrences(s Schedule, m Month) ([]time.Time, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if !m.Valid() {
		return nil, ErrInvalidMonth
	}
	if !e.Active(s, m) {
		return nil, nil
	}

	due := dateOnly(s.DueDate)
	weeks := s.Pattern.PeriodWeeks()
	if weeks == 0 {
		if s.Pattern == PatternOneOff && !e.window.sameMonth(due.Year(), int(due.Month()), m) {
			return nil, nil
		}
		return []time.Time{util.CalculateActualDate(m.Year, time.Month(m.Month), due.Day())}, nil
	}

	return e.weekly(due, weeks, m), nil
}

// weekly walks a 1/2/3/4-week stride into month m and collects every landing there.
func (e Engine) weekly(due time.Time, weeks int, m Month) []time.Time {
	step := 7 * weeks
	d := due

	if e.window == ChronologicalWindow {
		start := m.Start()
		if d.Before(start) {
			gap := civilDaysBetween(d, start)
			d = d.AddDate(0, 0, ((gap+step-1)/step)*step)
		}
	} else {
		for steps := 0; !e.window.sameMonth(d.Year(), int(d.Month()), m); steps++ {
			if steps >= maxAdvanceSteps {
				return nil
			}
			d = d.AddDate(0, 0, step)
		}
	}

	var dates []time.Time
	for e.window.sameMonth(d.Year(), int(d.Month()), m) {
		dates = append(dates, util.CalculateActualDate(m.Year, time.Month(m.Month), d.Day()))
		d = d.AddDate(0, 0, step)
	}
	return dates
}

// civilDaysBetween counts calendar days from a to b. time.Duration saturates after
// about 292 years, so the count is taken from Unix seconds of each civil date.
func civilDaysBetween(a, b time.Time) int {
	day := func(t time.Time) int64 {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix() / 86400
	}
	return int(day(b) - day(a))
}

// ActiveMonthTotal returns the signed contribution of the schedule to month m
func (e Engine) ActiveMonthTotal(s Schedule, m Month) (decimal.Decimal, error) {
	dates, err := e.Occurrences(s, m)
	if err != nil {
		return decimal.Zero, err
	}
	magnitude := s.Amount.Mul(decimal.NewFromInt(int64(len(dates))))
	return s.Kind.signed(magnitude), nil
}

// DayBalance returns the signed contribution of the schedule keyed by day of month
func (e Engine) DayBalance(s Schedule, m Month) (map[int]decimal.Decimal, error) {
	dates, err := e.Occurrences(s, m)
	if err != nil {
		return nil, err
	}
	days := make(map[int]decimal.Decimal, len(dates))
	amount := s.Kind.signed(s.Amount)
	for _, d := range dates {
		days[d.Day()] = days[d.Day()].Add(amount)
	}
	return days, nil
}

// ActiveMonthTotal evaluates s with the legacy window policy
func ActiveMonthTotal(s Schedule, m Month) (decimal.Decimal, error) {
	return NewEngine(LegacyWindow).ActiveMonthTotal(s, m)
}

// DayBalance evaluates s with the legacy window policy
func DayBalance(s Schedule, m Month) (map[int]decimal.Decimal, error) {
	return NewEngine(LegacyWindow).DayBalance(s, m)
}
