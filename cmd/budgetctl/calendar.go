package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/budgetbook/budgetbook-backend/internal/calendar"
	"github.com/budgetbook/budgetbook-backend/internal/config"
	"github.com/budgetbook/budgetbook-backend/internal/domain"
	"github.com/budgetbook/budgetbook-backend/internal/recurrence"
	"github.com/budgetbook/budgetbook-backend/internal/repository/postgres"
	"github.com/budgetbook/budgetbook-backend/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var weekdayHeader = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type calendarOptions struct {
	ledgerID int32
	year     int
	month    int
	window   string
}

func newCalendarCmd() *cobra.Command {
	now := time.Now()
	opts := calendarOptions{year: now.Year(), month: int(now.Month())}

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print a ledger's month calendar",
		Long:  `Prints the Monday-first week grid of a month with the signed amounts landing on each day.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendar(cmd, opts)
		},
	}

	cmd.Flags().Int32Var(&opts.ledgerID, "ledger", 0, "Ledger ID")
	cmd.Flags().IntVar(&opts.year, "year", opts.year, "Year")
	cmd.Flags().IntVar(&opts.month, "month", opts.month, "Month (1-12)")
	cmd.Flags().StringVar(&opts.window, "window", "", "Recurrence window (legacy or chronological); defaults to RECURRENCE_WINDOW")
	_ = cmd.MarkFlagRequired("ledger")
	return cmd
}

func runCalendar(cmd *cobra.Command, opts calendarOptions) error {
	month, err := recurrence.NewMonth(opts.year, opts.month)
	if err != nil {
		return err
	}
	window, err := resolveWindow(cmd, opts.window)
	if err != nil {
		return err
	}
	databaseURL, err := config.LoadDatabaseURL()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	svc := service.NewCalendarService(postgres.NewTransactionRepository(pool), recurrence.NewEngine(window))
	view, err := svc.MonthCalendar(ctx, opts.ledgerID, month)
	if err != nil {
		return err
	}
	return renderCalendar(cmd.OutOrStdout(), view)
}

// resolveWindow prefers an explicit --window over the environment and .env
func resolveWindow(cmd *cobra.Command, flagValue string) (recurrence.Window, error) {
	if cmd.Flags().Changed("window") {
		return recurrence.ParseWindow(flagValue)
	}
	return config.LoadRecurrenceWindow()
}

// renderCalendar writes the grid one week per row. Padding days from the
// neighbouring months are shown in parentheses.
func renderCalendar(w io.Writer, view *domain.MonthCalendar) error {
	fmt.Fprintf(w, "%s %d\n", view.MonthName, view.Month.Year)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(weekdayHeader, "\t"))

	layout := view.Layout
	rows := make([][]string, 0, len(layout.Weeks)+1)
	for i, week := range layout.Weeks {
		var row []string
		if i == 0 {
			row = append(row, paddingCells(layout.LastDays)...)
		}
		rows = append(rows, append(row, dayCells(week)...))
	}
	last := dayCells(layout.LastWeek)
	if len(layout.Weeks) == 0 {
		last = append(paddingCells(layout.LastDays), last...)
	}
	rows = append(rows, append(last, paddingCells(layout.FirstDays)...))

	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func dayCells(cells []calendar.Cell) []string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		out[i] = fmt.Sprintf("%d%s", cell.Day, formatAmounts(cell.Amounts))
	}
	return out
}

func paddingCells(days []int) []string {
	out := make([]string, len(days))
	for i, day := range days {
		out[i] = fmt.Sprintf("(%d)", day)
	}
	return out
}

func formatAmounts(amounts []decimal.Decimal) string {
	if len(amounts) == 0 {
		return ""
	}
	parts := make([]string, len(amounts))
	for i, amount := range amounts {
		parts[i] = amount.StringFixed(2)
	}
	return " [" + strings.Join(parts, " ") + "]"
}
