package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"ledgersim/internal/calendar"
	"ledgersim/internal/core"
)

// OccurrenceHour is the time of day given to expanded occurrences.
const OccurrenceHour = 12

var (
	ErrEmptyExpansion = errors.New("recurring event expanded to no dates")
	ErrEndBeforeStart = errors.New("recurring event ends before it starts")
)

// Recurring describes a series of events under a cadence.
type Recurring struct {
	EventType   core.EventType
	Name        string
	AccountName string
	Amount      decimal.Decimal
	Start       time.Time
	End         time.Time
	Cadence     Cadence
}

func (r Recurring) Validate() error {
	if err := core.ValidateEntry(r.EventType, r.Name, r.AccountName, r.Amount); err != nil {
		return err
	}
	if err := r.Cadence.Validate(); err != nil {
		return err
	}
	if calendar.DateOf(r.End).Before(calendar.DateOf(r.Start)) {
		return fmt.Errorf("%w: %s > %s", ErrEndBeforeStart,
			r.Start.Format(core.DateLayout), r.End.Format(core.DateLayout))
	}
	return nil
}

// PaymentDates lists the occurrence dates that fall inside the series and
// before the first day after the slice. Start is always included.
func (r Recurring) PaymentDates(slice calendar.Slice) ([]time.Time, error) {
	start := calendar.DateOf(r.Start)
	end := calendar.DateOf(r.End)
	dates := []time.Time{start}
	if start.Equal(end) {
		return dates, nil
	}

	limit := slice.End.StartOfNextMonth()
	curr, err := NextDate(start, r.Cadence)
	if err != nil {
		return nil, err
	}
	for !curr.After(end) && curr.Before(limit) {
		dates = append(dates, curr)
		if curr, err = NextDate(curr, r.Cadence); err != nil {
			return nil, err
		}
	}
	return dates, nil
}

// ToPaymentEvent places one occurrence at noon on date.
func (r Recurring) ToPaymentEvent(date time.Time) Event {
	y, m, d := date.Date()
	return Event{
		EventType:   r.EventType,
		Name:        r.Name,
		AccountName: r.AccountName,
		Amount:      r.Amount,
		CompletedAt: time.Date(y, m, d, OccurrenceHour, 0, 0, 0, time.UTC),
		Marker:      core.MarkerActive,
	}
}

// ToPaymentEvents expands the series. The first occurrence is marked First,
// the last Last, everything else Active. A single occurrence ends up Last.
func (r Recurring) ToPaymentEvents(slice calendar.Slice) ([]Event, error) {
	dates, err := r.PaymentDates(slice)
	if err != nil {
		return nil, fmt.Errorf("payment dates for %q: %w", r.Name, err)
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyExpansion, r.Name)
	}

	out := make([]Event, len(dates))
	for i, d := range dates {
		out[i] = r.ToPaymentEvent(d)
	}
	out[0].Marker = core.MarkerFirst
	out[len(out)-1].Marker = core.MarkerLast
	return out, nil
}

// ExpandAll expands every series in input order.
func ExpandAll(series []Recurring, slice calendar.Slice) ([]Event, error) {
	var out []Event
	for _, r := range series {
		evs, err := r.ToPaymentEvents(slice)
		if err != nil {
			return nil, err
		}
		out = append(out, evs...)
	}
	return out, nil
}
