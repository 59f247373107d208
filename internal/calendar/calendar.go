// Package calendar lays a month's per-day amounts out as Monday-first week rows,
// including the days borrowed from the neighbouring months.
package calendar

import (
	"errors"

	"github.com/budgetbook/budgetbook-backend/internal/util"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidMonth   = errors.New("month must be between 1 and 12")
	ErrEmptyFinalWeek = errors.New("calendar has no final week")
)

// DayBuckets maps a day of month to the signed amounts landing on it, in insertion order
type DayBuckets map[int][]decimal.Decimal

// Add appends an amount to a day
func (b DayBuckets) Add(day int, amount decimal.Decimal) {
	b[day] = append(b[day], amount)
}

// Merge appends every entry of a single schedule's day map
func (b DayBuckets) Merge(days map[int]decimal.Decimal) {
	for day, amount := range days {
		b.Add(day, amount)
	}
}

// Cell is one day of the displayed month. Amounts is nil when nothing lands on the day.
type Cell struct {
	Day     int               `json:"day"`
	Amounts []decimal.Decimal `json:"amounts"`
}

// Layout is the week-partitioned grid for one month
type Layout struct {
	// LastDays are the trailing days of the previous month filling the first row
	LastDays []int `json:"lastDays"`
	// Weeks are the rows before the final one
	Weeks [][]Cell `json:"weeks"`
	// FirstDays are the leading days of the next month padding the final row
	FirstDays []int `json:"firstDays"`
	// LastWeek is the final row, possibly shorter than seven cells
	LastWeek []Cell `json:"lastWeek"`
}

// Cells returns one cell per day of the month
func Cells(year, month int, buckets DayBuckets) []Cell {
	n := util.DaysInMonth(year, month)
	cells := make([]Cell, n)
	for i := range cells {
		day := i + 1
		cells[i] = Cell{Day: day, Amounts: buckets[day]}
	}
	return cells
}

// BuildWeeks partitions the month into rows of seven, Monday first
func BuildWeeks(year, month int, buckets DayBuckets) (*Layout, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	offset := util.MondayOffset(year, month)
	prevYear, prevMonth := util.PreviousMonth(year, month)
	prevLength := util.DaysInMonth(prevYear, prevMonth)

	lastDays := make([]int, 0, offset)
	for d := prevLength - offset + 1; d <= prevLength; d++ {
		lastDays = append(lastDays, d)
	}

	cells := Cells(year, month, buckets)
	var rows [][]Cell
	for start, size := 0, 7-offset; start < len(cells); start, size = start+size, 7 {
		end := start + size
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, cells[start:end])
	}

	weeks, lastWeek, err := splitFinalWeek(rows)
	if err != nil {
		return nil, err
	}

	firstDays := make([]int, 0, 7-len(lastWeek))
	for d := 1; len(lastWeek)+d <= 7; d++ {
		firstDays = append(firstDays, d)
	}

	return &Layout{
		LastDays:  lastDays,
		Weeks:     weeks,
		FirstDays: firstDays,
		LastWeek:  lastWeek,
	}, nil
}

// splitFinalWeek separates the last row from the ones before it. Rows built from a
// valid month are never empty; the check keeps a zero-cell final row out of a Layout.
func splitFinalWeek(rows [][]Cell) ([][]Cell, []Cell, error) {
	if len(rows) == 0 || len(rows[len(rows)-1]) == 0 {
		return nil, nil, ErrEmptyFinalWeek
	}
	return rows[:len(rows)-1], rows[len(rows)-1], nil
}
