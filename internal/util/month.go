package util

import "time"

// PreviousMonth returns the year and month for the previous month
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// NextMonth returns the year and month for the following month
func NextMonth(year, month int) (int, int) {
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}

// DaysInMonth returns the number of days in the given month (proleptic Gregorian)
func DaysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MondayOffset returns how many days precede day 1 of the month in a Monday-first week
// (Monday = 0 ... Sunday = 6)
func MondayOffset(year, month int) int {
	weekday := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(weekday) + 6) % 7
}

// CalculateActualDate returns the actual date for a target day in a given month,
// handling months with fewer days (e.g., day 31 in February returns Feb 28/29)
func CalculateActualDate(year int, month time.Month, targetDay int) time.Time {
	lastDay := DaysInMonth(year, int(month))

	actualDay := targetDay
	if actualDay > lastDay {
		actualDay = lastDay
	}

	return time.Date(year, month, actualDay, 0, 0, 0, 0, time.UTC)
}

// MonthName returns the English month name, e.g. "March"
func MonthName(month int) string {
	return time.Month(month).String()
}
