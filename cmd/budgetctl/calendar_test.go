package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/budgetbook/budgetbook-backend/internal/calendar"
	"github.com/budgetbook/budgetbook-backend/internal/domain"
	"github.com/budgetbook/budgetbook-backend/internal/recurrence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCalendar_February2024(t *testing.T) {
	buckets := calendar.DayBuckets{}
	buckets.Add(15, decimal.NewFromInt(100))
	buckets.Add(15, decimal.NewFromInt(-40))

	layout, err := calendar.BuildWeeks(2024, 2, buckets)
	require.NoError(t, err)

	view := &domain.MonthCalendar{
		Month:     recurrence.Month{Year: 2024, Month: 2},
		MonthName: "February",
		Layout:    layout,
	}

	var buf bytes.Buffer
	require.NoError(t, renderCalendar(&buf, view))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "February 2024", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Mon"))

	// 1 Feb 2024 is a Thursday
	assert.Equal(t, []string{"(29)", "(30)", "(31)", "1", "2", "3", "4"}, strings.Fields(lines[2]))
	assert.Contains(t, lines[4], "15 [100.00 -40.00]")
	assert.Equal(t, []string{"26", "27", "28", "29", "(1)", "(2)", "(3)"}, strings.Fields(lines[6]))
}

func TestMigrateCmd_RejectsUnknownDirection(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"migrate", "sideways"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	assert.Error(t, err)
}

func TestCalendarCmd_RequiresLedger(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"calendar", "--year", "2024", "--month", "2"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger")
}

// withDotEnv runs the test from a directory whose .env sets RECURRENCE_WINDOW
func withDotEnv(t *testing.T, window string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RECURRENCE_WINDOW="+window+"\n"), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// godotenv never overrides a variable that is already set
	t.Setenv("RECURRENCE_WINDOW", "")
	require.NoError(t, os.Unsetenv("RECURRENCE_WINDOW"))
}

func TestResolveWindow_ReadsDotEnv(t *testing.T) {
	withDotEnv(t, "chronological")

	cmd := newCalendarCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--ledger", "1"}))

	window, err := resolveWindow(cmd, "")
	require.NoError(t, err)
	assert.Equal(t, recurrence.ChronologicalWindow, window)
}

func TestResolveWindow_FlagOverridesDotEnv(t *testing.T) {
	withDotEnv(t, "chronological")

	cmd := newCalendarCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--ledger", "1", "--window", "legacy"}))

	window, err := resolveWindow(cmd, "legacy")
	require.NoError(t, err)
	assert.Equal(t, recurrence.LegacyWindow, window)
}

func TestResolveWindow_InvalidDotEnvValue(t *testing.T) {
	withDotEnv(t, "sideways")

	cmd := newCalendarCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--ledger", "1"}))

	_, err := resolveWindow(cmd, "")
	assert.ErrorContains(t, err, "RECURRENCE_WINDOW")
}
