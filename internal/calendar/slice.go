package calendar

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSlice wraps every slice validation failure.
	ErrInvalidSlice = errors.New("invalid calendar slice")

	ErrEndYearBeforeStart  = fmt.Errorf("%w: end year must come after start year", ErrInvalidSlice)
	ErrEndMonthBeforeStart = fmt.Errorf("%w: end month must come after start month", ErrInvalidSlice)
)

// Slice is an inclusive [Start, End] range of months.
type Slice struct {
	Start YearMonth
	End   YearMonth
}

// NewSlice validates and returns a slice.
func NewSlice(start, end YearMonth) (Slice, error) {
	s := Slice{Start: start, End: end}
	if err := s.Validate(); err != nil {
		return Slice{}, err
	}
	return s, nil
}

// Validate checks that End does not come before Start.
func (s Slice) Validate() error {
	if s.End.Year < s.Start.Year {
		return ErrEndYearBeforeStart
	}
	if s.End.Year == s.Start.Year && s.End.Month < s.Start.Month {
		return ErrEndMonthBeforeStart
	}
	return nil
}

// Months returns every month from Start to End inclusive, in order.
func (s Slice) Months() []YearMonth {
	if s.Start == s.End {
		return []YearMonth{s.Start}
	}
	months := make([]YearMonth, 0, s.Len())
	for curr := s.Start; s.InBounds(curr); curr = curr.Next() {
		months = append(months, curr)
	}
	return months
}

// Len is the number of months covered.
func (s Slice) Len() int {
	return s.End.Index() - s.Start.Index() + 1
}

// InBounds reports whether candidate falls before the month following End.
// Candidates are assumed not to precede Start. The month after December is
// indexed 13 so a December end still admits December.
func (s Slice) InBounds(candidate YearMonth) bool {
	if candidate.Year < s.End.Year {
		return true
	}
	return candidate.Year == s.End.Year && int(candidate.Month) < int(s.End.Month)+1
}

// Contains reports whether ym lies within [Start, End] by month order.
func (s Slice) Contains(ym YearMonth) bool {
	return !ym.Before(s.Start) && !ym.After(s.End)
}

func (s Slice) String() string {
	return s.Start.String() + ".." + s.End.String()
}
