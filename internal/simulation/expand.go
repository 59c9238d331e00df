package simulation

import (
	"context"
	"fmt"

	"ledgersim/internal/calendar"
	"ledgersim/internal/events"
)

func loadRecurring(dir string) ([]events.Recurring, error) {
	path, err := events.ResolveSource(dir, events.RecurringSource)
	if err != nil {
		return nil, err
	}
	series, err := events.LoadRecurring(path)
	if err != nil {
		return nil, fmt.Errorf("load recurring events: %w", err)
	}
	return series, nil
}

func loadOneOff(dir string) ([]events.Event, error) {
	path, err := events.ResolveSource(dir, events.OneOffSource)
	if err != nil {
		return nil, err
	}
	evs, err := events.LoadOneOff(path)
	if err != nil {
		return nil, fmt.Errorf("load one-off events: %w", err)
	}
	return evs, nil
}

// Expand loads the event files under dir and bins them for slice without
// touching any store.
func Expand(ctx context.Context, dir string, slice calendar.Slice) (*events.Bins, error) {
	if err := slice.Validate(); err != nil {
		return nil, err
	}
	series, err := loadRecurring(dir)
	if err != nil {
		return nil, err
	}
	oneOff, err := loadOneOff(dir)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return events.Bin(slice, series, oneOff)
}
