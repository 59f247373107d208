package recurrence

import "strings"

// Pattern governs how often a schedule repeats
type Pattern string

const (
	PatternOneOff     Pattern = "one_off"
	PatternMonthly    Pattern = "monthly"
	PatternWeekly     Pattern = "weekly"
	PatternBiweekly   Pattern = "biweekly"
	PatternTriweekly  Pattern = "triweekly"
	PatternFourWeekly Pattern = "four_weekly"
)

// periodWeeks maps a pattern to its stride; 0 marks the day-anchored patterns.
var periodWeeks = map[Pattern]int{
	PatternOneOff:     0,
	PatternMonthly:    0,
	PatternWeekly:     1,
	PatternBiweekly:   2,
	PatternTriweekly:  3,
	PatternFourWeekly: 4,
}

// legacyLabels are the pattern names stored by the first version of the app.
var legacyLabels = map[string]Pattern{
	"one off":           PatternOneOff,
	"every two weeks":   PatternBiweekly,
	"every three weeks": PatternTriweekly,
	"every four weeks":  PatternFourWeekly,
}

// Patterns lists every known pattern in display order
func Patterns() []Pattern {
	return []Pattern{PatternOneOff, PatternMonthly, PatternWeekly, PatternBiweekly, PatternTriweekly, PatternFourWeekly}
}

// Valid reports whether p is a known pattern
func (p Pattern) Valid() bool {
	_, ok := periodWeeks[p]
	return ok
}

// PeriodWeeks returns the stride in weeks for the weekly family, 0 for one-off and monthly.
// Unknown patterns fall back to four weeks.
func (p Pattern) PeriodWeeks() int {
	weeks, ok := periodWeeks[p]
	if !ok {
		return 4
	}
	return weeks
}

// ParsePattern validates a pattern at the API boundary
func ParsePattern(s string) (Pattern, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if p, ok := legacyLabels[v]; ok {
		return p, nil
	}
	p := Pattern(v)
	if !p.Valid() {
		return "", ErrInvalidPattern
	}
	return p, nil
}
