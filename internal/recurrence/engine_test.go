package recurrence

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func month(y, m int) Month {
	return Month{Year: y, Month: m}
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestActiveMonthTotal_LoanNeverContributes(t *testing.T) {
	for _, p := range Patterns() {
		t.Run(string(p), func(t *testing.T) {
			s := Schedule{Kind: KindLoan, Amount: dec(500), DueDate: date(2025, 3, 1), Pattern: p}

			total, err := ActiveMonthTotal(s, month(2025, 3))
			require.NoError(t, err)
			assert.True(t, total.IsZero())

			days, err := DayBalance(s, month(2025, 3))
			require.NoError(t, err)
			assert.Empty(t, days)
		})
	}
}

func TestOneOffExpense_OnlyInDueMonth(t *testing.T) {
	s := Schedule{Kind: KindExpense, Amount: dec(50), DueDate: date(2025, 4, 15), Pattern: PatternOneOff}

	total, err := ActiveMonthTotal(s, month(2025, 4))
	require.NoError(t, err)
	assert.Equal(t, "-50", total.String())

	days, err := DayBalance(s, month(2025, 4))
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "-50", days[15].String())

	total, err = ActiveMonthTotal(s, month(2025, 5))
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	days, err = DayBalance(s, month(2025, 5))
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestMonthlyIncome_EveryMonthFromDueDate(t *testing.T) {
	s := Schedule{Kind: KindIncome, Amount: dec(100), DueDate: date(2025, 1, 10), Pattern: PatternMonthly}

	before, err := ActiveMonthTotal(s, month(2024, 12))
	require.NoError(t, err)
	assert.True(t, before.IsZero(), "no contribution before the due month")

	m := month(2025, 1)
	for i := 0; i < 24; i++ {
		total, err := ActiveMonthTotal(s, m)
		require.NoError(t, err)
		assert.Equal(t, "100", total.String(), "month %s", m)

		days, err := DayBalance(s, m)
		require.NoError(t, err)
		assert.Equal(t, map[int]string{10: "100"}, stringify(days), "month %s", m)
		m = m.Next()
	}
}

func TestMonthly_DueDayClampedToShortMonth(t *testing.T) {
	s := Schedule{Kind: KindExpense, Amount: dec(30), DueDate: date(2025, 1, 31), Pattern: PatternMonthly}

	days, err := DayBalance(s, month(2025, 2))
	require.NoError(t, err)
	assert.Equal(t, map[int]string{28: "-30"}, stringify(days))
}

func TestWeeklyExpense_MatchesWeekdayCount(t *testing.T) {
	// 1 September 2025 is a Monday
	s := Schedule{Kind: KindExpense, Amount: dec(20), DueDate: date(2025, 9, 1), Pattern: PatternWeekly}

	tests := []struct {
		m        Month
		wantDays []int
	}{
		{month(2025, 9), []int{1, 8, 15, 22, 29}},
		{month(2025, 10), []int{6, 13, 20, 27}},
		{month(2025, 12), []int{1, 8, 15, 22, 29}},
	}

	for _, tt := range tests {
		t.Run(tt.m.String(), func(t *testing.T) {
			days, err := DayBalance(s, tt.m)
			require.NoError(t, err)
			assert.Len(t, days, mondaysIn(tt.m))
			for _, d := range tt.wantDays {
				assert.Equal(t, "-20", days[d].String(), "day %d", d)
			}

			total, err := ActiveMonthTotal(s, tt.m)
			require.NoError(t, err)
			assert.True(t, total.Equal(dec(int64(-20*len(tt.wantDays)))))
		})
	}
}

func TestBiweekly_LandsEveryOtherWeek(t *testing.T) {
	// Friday 3 January 2025: 3, 17, 31 Jan, then 14, 28 Feb
	s := Schedule{Kind: KindIncome, Amount: dec(1200), DueDate: date(2025, 1, 3), Pattern: PatternBiweekly}

	days, err := DayBalance(s, month(2025, 2))
	require.NoError(t, err)
	assert.Equal(t, map[int]string{14: "1200", 28: "1200"}, stringify(days))
}

func TestUnknownPattern_FallsBackToFourWeekly(t *testing.T) {
	known := Schedule{Kind: KindExpense, Amount: dec(9), DueDate: date(2025, 1, 6), Pattern: PatternFourWeekly}
	unknown := known
	unknown.Pattern = Pattern("every blue moon")

	for m := month(2025, 1); m.Before(month(2026, 1)); m = m.Next() {
		want, err := DayBalance(known, m)
		require.NoError(t, err)
		got, err := DayBalance(unknown, m)
		require.NoError(t, err)
		assert.Equal(t, stringify(want), stringify(got), "month %s", m)
	}
}

func TestRoundTrip_DaySumEqualsMonthTotal(t *testing.T) {
	end := date(2026, 5, 20)
	for _, window := range []Window{LegacyWindow, ChronologicalWindow} {
		engine := NewEngine(window)
		for _, kind := range []Kind{KindIncome, KindExpense} {
			for _, p := range Patterns() {
				s := Schedule{Kind: kind, Amount: decimal.RequireFromString("12.34"), DueDate: date(2025, 2, 27), Pattern: p, EndDate: &end}
				for m := month(2025, 1); m.Before(month(2027, 1)); m = m.Next() {
					total, err := engine.ActiveMonthTotal(s, m)
					require.NoError(t, err)
					days, err := engine.DayBalance(s, m)
					require.NoError(t, err)

					sum := decimal.Zero
					for _, v := range days {
						sum = sum.Add(v)
					}
					assert.True(t, sum.Equal(total), "%s %s %s %s: sum %s != total %s", window, kind, p, m, sum, total)
				}
			}
		}
	}
}

func TestDayBalance_Idempotent(t *testing.T) {
	end := date(2025, 12, 31)
	s := Schedule{Kind: KindExpense, Amount: dec(15), DueDate: date(2025, 3, 4), Pattern: PatternTriweekly, EndDate: &end}
	snapshot := s

	first, err := DayBalance(s, month(2025, 6))
	require.NoError(t, err)
	second, err := DayBalance(s, month(2025, 6))
	require.NoError(t, err)

	assert.Equal(t, stringify(first), stringify(second))
	assert.Equal(t, snapshot, s)
}

func TestDueAfterTargetMonth_Excluded(t *testing.T) {
	s := Schedule{Kind: KindIncome, Amount: dec(10), DueDate: date(2026, 1, 5), Pattern: PatternMonthly}

	for _, window := range []Window{LegacyWindow, ChronologicalWindow} {
		total, err := NewEngine(window).ActiveMonthTotal(s, month(2025, 12))
		require.NoError(t, err)
		assert.True(t, total.IsZero(), window.String())
	}
}

func TestEndDate_LegacyComparisonKeepsLaterMonthNumbers(t *testing.T) {
	end := date(2024, 12, 15)
	s := Schedule{Kind: KindIncome, Amount: dec(100), DueDate: date(2024, 6, 1), Pattern: PatternMonthly, EndDate: &end}

	legacy, err := NewEngine(LegacyWindow).ActiveMonthTotal(s, month(2025, 1))
	require.NoError(t, err)
	assert.Equal(t, "100", legacy.String(), "legacy window compares month numbers: 12 < 1 is false")

	chrono, err := NewEngine(ChronologicalWindow).ActiveMonthTotal(s, month(2025, 1))
	require.NoError(t, err)
	assert.True(t, chrono.IsZero())

	// December of the following year is still active under the legacy comparison
	legacy, err = NewEngine(LegacyWindow).ActiveMonthTotal(s, month(2025, 12))
	require.NoError(t, err)
	assert.Equal(t, "100", legacy.String())
	legacy, err = NewEngine(LegacyWindow).ActiveMonthTotal(s, month(2024, 11))
	require.NoError(t, err)
	assert.Equal(t, "100", legacy.String())
}

func TestWeekly_LegacyAdvanceMatchesMonthNumberOnly(t *testing.T) {
	// Monday 6 March 2023; March 2023 has four Mondays, March 2025 has five
	s := Schedule{Kind: KindExpense, Amount: dec(20), DueDate: date(2023, 3, 6), Pattern: PatternWeekly}

	legacy, err := NewEngine(LegacyWindow).DayBalance(s, month(2025, 3))
	require.NoError(t, err)
	assert.Equal(t, []int{6, 13, 20, 27}, sortedDays(legacy))

	chrono, err := NewEngine(ChronologicalWindow).DayBalance(s, month(2025, 3))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 10, 17, 24, 31}, sortedDays(chrono))
}

func TestWeekly_CrossesYearBoundary(t *testing.T) {
	// Monday 24 November 2025 into January 2026
	s := Schedule{Kind: KindExpense, Amount: dec(5), DueDate: date(2025, 11, 24), Pattern: PatternWeekly}

	for _, window := range []Window{LegacyWindow, ChronologicalWindow} {
		days, err := NewEngine(window).DayBalance(s, month(2026, 1))
		require.NoError(t, err)
		assert.Equal(t, []int{5, 12, 19, 26}, sortedDays(days), window.String())
	}
}

func TestWeekly_ChronologicalFarFutureMonth(t *testing.T) {
	// Monday 6 January 2025, evaluated almost four centuries later
	s := Schedule{Kind: KindExpense, Amount: dec(5), DueDate: date(2025, 1, 6), Pattern: PatternWeekly}
	target := month(2400, 1)

	days, err := NewEngine(ChronologicalWindow).DayBalance(s, target)
	require.NoError(t, err)
	require.Len(t, days, mondaysIn(target))
	for day := range days {
		assert.Equal(t, time.Monday, date(2400, 1, day).Weekday(), "day %d", day)
	}

	total, err := NewEngine(ChronologicalWindow).ActiveMonthTotal(s, target)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec(int64(-5*mondaysIn(target)))), "total %s", total)
}

func TestCivilDaysBetween(t *testing.T) {
	assert.Equal(t, 0, civilDaysBetween(date(2025, 1, 6), date(2025, 1, 6)))
	assert.Equal(t, 31, civilDaysBetween(date(2025, 1, 1), date(2025, 2, 1)))
	assert.Equal(t, 366, civilDaysBetween(date(2024, 1, 1), date(2025, 1, 1)))
	// beyond the range of time.Duration
	assert.Equal(t, 146097, civilDaysBetween(date(2000, 1, 1), date(2400, 1, 1)))
	// time of day does not shift the count
	late := time.Date(2025, 1, 6, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, 1, civilDaysBetween(late, date(2025, 1, 7)))
}

func TestValidation_FailsFast(t *testing.T) {
	end := date(2025, 1, 1)
	tests := []struct {
		name string
		s    Schedule
		want error
	}{
		{"negative amount", Schedule{Kind: KindIncome, Amount: dec(-1), DueDate: date(2025, 1, 1), Pattern: PatternMonthly}, ErrNegativeAmount},
		{"end before due", Schedule{Kind: KindIncome, Amount: dec(1), DueDate: date(2025, 2, 1), Pattern: PatternMonthly, EndDate: &end}, ErrMalformedDateRange},
		{"missing due date", Schedule{Kind: KindIncome, Amount: dec(1), Pattern: PatternMonthly}, ErrMissingDueDate},
		{"unknown kind", Schedule{Kind: Kind("gift"), Amount: dec(1), DueDate: date(2025, 1, 1), Pattern: PatternMonthly}, ErrInvalidKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ActiveMonthTotal(tt.s, month(2025, 3))
			assert.ErrorIs(t, err, tt.want)
			_, err = DayBalance(tt.s, month(2025, 3))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInvalidTargetMonth(t *testing.T) {
	s := Schedule{Kind: KindIncome, Amount: dec(1), DueDate: date(2025, 1, 1), Pattern: PatternMonthly}
	_, err := ActiveMonthTotal(s, month(2025, 13))
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func stringify(days map[int]decimal.Decimal) map[int]string {
	out := make(map[int]string, len(days))
	for d, v := range days {
		out[d] = v.String()
	}
	return out
}

func sortedDays(days map[int]decimal.Decimal) []int {
	var out []int
	for d := 1; d <= 31; d++ {
		if _, ok := days[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

func mondaysIn(m Month) int {
	n := 0
	for d := 1; d <= m.Days(); d++ {
		if date(m.Year, time.Month(m.Month), d).Weekday() == time.Monday {
			n++
		}
	}
	return n
}
