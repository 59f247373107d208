package recurrence

import (
	"fmt"
	"time"

	"github.com/budgetbook/budgetbook-backend/internal/util"
)

// Month identifies a calendar month
type Month struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// NewMonth builds a Month, rejecting month numbers outside 1-12
func NewMonth(year, month int) (Month, error) {
	m := Month{Year: year, Month: month}
	if !m.Valid() {
		return Month{}, ErrInvalidMonth
	}
	return m, nil
}

// MonthOf returns the month containing t
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: int(t.Month())}
}

// Valid reports whether the month number is in range
func (m Month) Valid() bool {
	return m.Month >= 1 && m.Month <= 12
}

// Prev returns the previous month, rolling into December of the prior year
func (m Month) Prev() Month {
	y, mo := util.PreviousMonth(m.Year, m.Month)
	return Month{Year: y, Month: mo}
}

// Next returns the following month, rolling into January of the next year
func (m Month) Next() Month {
	y, mo := util.NextMonth(m.Year, m.Month)
	return Month{Year: y, Month: mo}
}

// Days returns the number of days in the month
func (m Month) Days() int {
	return util.DaysInMonth(m.Year, m.Month)
}

// Start returns midnight UTC on day 1
func (m Month) Start() time.Time {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC)
}

// Before reports whether m is chronologically earlier than o
func (m Month) Before(o Month) bool {
	return m.Year < o.Year || (m.Year == o.Year && m.Month < o.Month)
}

// After reports whether m is chronologically later than o
func (m Month) After(o Month) bool {
	return o.Before(m)
}

// Name returns the English month name
func (m Month) Name() string {
	return util.MonthName(m.Month)
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}
