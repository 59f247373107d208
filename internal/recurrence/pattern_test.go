package recurrence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePattern(t *testing.T) {
	tests := []struct {
		in   string
		want Pattern
	}{
		{"one_off", PatternOneOff},
		{"one off", PatternOneOff},
		{"Monthly", PatternMonthly},
		{"weekly", PatternWeekly},
		{"every two weeks", PatternBiweekly},
		{"triweekly", PatternTriweekly},
		{"every four weeks", PatternFourWeekly},
	}

	for _, tt := range tests {
		got, err := ParsePattern(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParsePattern("fortnightly")
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestPeriodWeeks(t *testing.T) {
	assert.Equal(t, 0, PatternOneOff.PeriodWeeks())
	assert.Equal(t, 0, PatternMonthly.PeriodWeeks())
	assert.Equal(t, 1, PatternWeekly.PeriodWeeks())
	assert.Equal(t, 2, PatternBiweekly.PeriodWeeks())
	assert.Equal(t, 3, PatternTriweekly.PeriodWeeks())
	assert.Equal(t, 4, PatternFourWeekly.PeriodWeeks())
	assert.Equal(t, 4, Pattern("unknown").PeriodWeeks())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Expense")
	require.NoError(t, err)
	assert.Equal(t, KindExpense, k)

	_, err = ParseKind("transfer")
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestMonth_PrevNextRollYears(t *testing.T) {
	assert.Equal(t, Month{Year: 2024, Month: 12}, Month{Year: 2025, Month: 1}.Prev())
	assert.Equal(t, Month{Year: 2026, Month: 1}, Month{Year: 2025, Month: 12}.Next())
	assert.Equal(t, Month{Year: 2025, Month: 6}, Month{Year: 2025, Month: 5}.Next())

	_, err := NewMonth(2025, 0)
	assert.ErrorIs(t, err, ErrInvalidMonth)
	assert.Equal(t, "2025-03", Month{Year: 2025, Month: 3}.String())
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("")
	require.NoError(t, err)
	assert.Equal(t, LegacyWindow, w)

	w, err = ParseWindow("Chronological")
	require.NoError(t, err)
	assert.Equal(t, ChronologicalWindow, w)

	_, err = ParseWindow("lunar")
	assert.Error(t, err)
}
