package recurrence

import (
	"fmt"
	"strings"
)

// Window selects how the active-window test compares dates against the target month.
type Window int

const (
	// LegacyWindow compares month and year numbers separately, exactly like the
	// first version of the app. End dates in an earlier year but a later month number
	// do not exclude, and the weekly advance loop stops on month number alone.
	LegacyWindow Window = iota
	// ChronologicalWindow orders (year, month) pairs and advances weekly schedules to
	// the exact target month.
	ChronologicalWindow
)

// ParseWindow reads a window policy name; the empty string selects LegacyWindow
func ParseWindow(s string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return LegacyWindow, nil
	case "chronological":
		return ChronologicalWindow, nil
	}
	return LegacyWindow, fmt.Errorf("unknown recurrence window %q", s)
}

func (w Window) String() string {
	if w == ChronologicalWindow {
		return "chronological"
	}
	return "legacy"
}

// dueAfter reports whether the schedule starts after the target month.
func (w Window) dueAfter(s Schedule, m Month) bool {
	if w == ChronologicalWindow {
		return MonthOf(s.DueDate).After(m)
	}
	due := s.DueDate
	return due.Year() > m.Year || (due.Year() >= m.Year && int(due.Month()) > m.Month)
}

// endedBefore reports whether the schedule's end date lies before the target month.
func (w Window) endedBefore(s Schedule, m Month) bool {
	if s.EndDate == nil {
		return false
	}
	if w == ChronologicalWindow {
		return MonthOf(*s.EndDate).Before(m)
	}
	end := *s.EndDate
	return int(end.Month()) < m.Month && end.Year() <= m.Year
}

// sameMonth is the landing test used by the day-anchored and weekly patterns.
func (w Window) sameMonth(year, month int, m Month) bool {
	if w == ChronologicalWindow {
		return year == m.Year && month == m.Month
	}
	return month == m.Month
}
