// Package calendar provides the month arithmetic used to bound a simulation
// window.
package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidYearMonth is returned when a YYYY-MM string cannot be parsed.
var ErrInvalidYearMonth = errors.New("invalid year-month")

// YearMonth is an ordered (year, month) pair used as a bucket key.
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth builds a YearMonth.
func NewYearMonth(year int, month time.Month) YearMonth {
	return YearMonth{Year: year, Month: month}
}

// Of returns the YearMonth containing t.
func Of(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses "YYYY-MM".
//
// Examples:
//
//	ParseYearMonth("2023-02") -> {2023 February}, nil
//	ParseYearMonth("2023-13") -> error
func ParseYearMonth(s string) (YearMonth, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) == 0 || len(parts[1]) > 2 {
		return YearMonth{}, fmt.Errorf("%w %q: expected YYYY-MM", ErrInvalidYearMonth, s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w %q: year: %v", ErrInvalidYearMonth, s, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return YearMonth{}, fmt.Errorf("%w %q: month: %v", ErrInvalidYearMonth, s, err)
	}
	if month < 1 || month > 12 {
		return YearMonth{}, fmt.Errorf("%w %q: month must be between 1 and 12", ErrInvalidYearMonth, s)
	}
	return YearMonth{Year: year, Month: time.Month(month)}, nil
}

// String formats the value as YYYY-MM.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Index is a monotonically increasing month counter (year*12 + month).
func (ym YearMonth) Index() int {
	return ym.Year*12 + int(ym.Month)
}

// Compare returns -1, 0 or 1.
func (ym YearMonth) Compare(other YearMonth) int {
	switch a, b := ym.Index(), other.Index(); {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Before reports whether ym comes strictly before other.
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.Compare(other) < 0
}

// After reports whether ym comes strictly after other.
func (ym YearMonth) After(other YearMonth) bool {
	return ym.Compare(other) > 0
}

// Next returns the following month, wrapping December into January.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// Start returns the first day of the month at midnight UTC.
func (ym YearMonth) Start() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

// StartOfNextMonth returns the first day of the following month.
func (ym YearMonth) StartOfNextMonth() time.Time {
	return ym.Next().Start()
}

// Days returns the number of days in the month.
func (ym YearMonth) Days() int {
	return DaysIn(ym.Year, ym.Month)
}

// DaysIn returns the length of a month, honouring leap years.
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeap(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	}
	return 31
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// AddMonths adds n calendar months to t keeping the time of day. The day of
// month is clamped to the target month's length, so Jan 31 + 1 is Feb 28
// (or 29). time.AddDate would roll over into March instead.
func AddMonths(t time.Time, n int) time.Time {
	total := t.Year()*12 + int(t.Month()) - 1 + n
	year := total / 12
	if total < 0 && total%12 != 0 {
		year--
	}
	month := time.Month(total - year*12 + 1)
	day := t.Day()
	if last := DaysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DateOf truncates t to midnight in its location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
