package util

import (
	"testing"
	"time"
)

func TestPreviousMonth_SameYear(t *testing.T) {
	tests := []struct {
		year      int
		month     int
		wantYear  int
		wantMonth int
	}{
		{2026, 6, 2026, 5},   // June -> May
		{2026, 12, 2026, 11}, // Dec -> Nov
		{2026, 2, 2026, 1},   // Feb -> Jan
	}

	for _, tt := range tests {
		gotYear, gotMonth := PreviousMonth(tt.year, tt.month)
		if gotYear != tt.wantYear || gotMonth != tt.wantMonth {
			t.Errorf("PreviousMonth(%d, %d) = (%d, %d), want (%d, %d)",
				tt.year, tt.month, gotYear, gotMonth, tt.wantYear, tt.wantMonth)
		}
	}
}

func TestPreviousMonth_YearBoundary(t *testing.T) {
	gotYear, gotMonth := PreviousMonth(2026, 1)
	if gotYear != 2025 || gotMonth != 12 {
		t.Errorf("PreviousMonth(2026, 1) = (%d, %d), want (2025, 12)", gotYear, gotMonth)
	}
}

func TestNextMonth_YearBoundary(t *testing.T) {
	gotYear, gotMonth := NextMonth(2025, 12)
	if gotYear != 2026 || gotMonth != 1 {
		t.Errorf("NextMonth(2025, 12) = (%d, %d), want (2026, 1)", gotYear, gotMonth)
	}

	gotYear, gotMonth = NextMonth(2025, 7)
	if gotYear != 2025 || gotMonth != 8 {
		t.Errorf("NextMonth(2025, 7) = (%d, %d), want (2025, 8)", gotYear, gotMonth)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year, month, want int
	}{
		{2023, 2, 28},
		{2024, 2, 29},
		{1900, 2, 28}, // century, not leap
		{2000, 2, 29}, // divisible by 400
		{2025, 4, 30},
		{2025, 12, 31},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestMondayOffset(t *testing.T) {
	tests := []struct {
		name        string
		year, month int
		want        int
	}{
		{"September 2025 starts on Monday", 2025, 9, 0},
		{"February 2023 starts on Wednesday", 2023, 2, 2},
		{"June 2025 starts on Sunday", 2025, 6, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MondayOffset(tt.year, tt.month); got != tt.want {
				t.Errorf("MondayOffset(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
			}
		})
	}
}

func TestCalculateActualDate_ClampsToMonthEnd(t *testing.T) {
	got := CalculateActualDate(2025, time.February, 31)
	want := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CalculateActualDate(2025, Feb, 31) = %v, want %v", got, want)
	}

	got = CalculateActualDate(2025, time.March, 15)
	if got.Day() != 15 {
		t.Errorf("CalculateActualDate(2025, Mar, 15) day = %d, want 15", got.Day())
	}
}

func TestMonthName(t *testing.T) {
	if got := MonthName(3); got != "March" {
		t.Errorf("MonthName(3) = %q, want March", got)
	}
}
