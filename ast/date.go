package ast

import (
	"fmt"
	"time"
)

// Year bounds accepted by the ledger language. Components inside the bounds
// must still form a real calendar date; 2021-02-30 is rejected even though
// every component is individually in range.
const (
	MinYear = 1000
	MaxYear = 3000
)

// Date represents a calendar date in the ledger (YYYY-MM-DD). Every statement
// starts with one, which also makes dates the parser's recovery anchor.
type Date struct {
	time.Time
}

// NewDate constructs a Date from its components, enforcing both the numeric
// bounds and calendar validity.
func NewDate(year, month, day int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, fmt.Errorf("year %d is out of range %d-%d", year, MinYear, MaxYear)
	}
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month %d is out of range 1-12", month)
	}
	if day < 1 || day > 31 {
		return Date{}, fmt.Errorf("day %d is out of range 1-31", day)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflowing components (Feb 30 becomes Mar 1/2),
	// so a changed component means the combination was not a real date.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return Date{}, fmt.Errorf("%04d-%02d-%02d is not a valid calendar date", year, month, day)
	}

	return Date{t}, nil
}

// ParseDate parses a date in YYYY-MM-DD form with the same validation
// as NewDate.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q", value)
	}
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Compare orders dates chronologically. Returns -1 if d < other, 0 if equal,
// 1 if d > other.
func (d Date) Compare(other Date) int {
	return d.Time.Compare(other.Time)
}
