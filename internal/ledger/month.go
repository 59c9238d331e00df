package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ledgersim/internal/calendar"
	"ledgersim/internal/events"
)

var ErrMonthState = errors.New("month operation out of order")

type MonthState int

const (
	MonthUninitialized MonthState = iota
	MonthDaysConstructed
	MonthEventsRecorded
	MonthReplayed
	MonthFlushed
)

func (s MonthState) String() string {
	switch s {
	case MonthUninitialized:
		return "uninitialized"
	case MonthDaysConstructed:
		return "days constructed"
	case MonthEventsRecorded:
		return "events recorded"
	case MonthReplayed:
		return "replayed"
	case MonthFlushed:
		return "flushed"
	}
	return fmt.Sprintf("MonthState(%d)", int(s))
}

// Month drives the replay of one calendar month.
type Month struct {
	YearMonth calendar.YearMonth

	days          []*Day
	byDate        map[time.Time]*Day
	state         MonthState
	skipped       int
	fixedFebruary bool
}

type MonthOption func(*Month)

// WithFixedFebruary constructs 28 days for February regardless of leap years.
func WithFixedFebruary(on bool) MonthOption {
	return func(m *Month) { m.fixedFebruary = on }
}

func NewMonth(ym calendar.YearMonth, opts ...MonthOption) *Month {
	m := &Month{YearMonth: ym}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Month) State() MonthState { return m.state }

// Days returns the constructed days in ascending date order.
func (m *Month) Days() []*Day { return m.days }

// Skipped is the number of recorded events whose date had no constructed day.
func (m *Month) Skipped() int { return m.skipped }

func (m *Month) expect(want MonthState, op string) error {
	if m.state != want {
		return fmt.Errorf("%w: %s on %s month %s (want %s)", ErrMonthState, op, m.state, m.YearMonth, want)
	}
	return nil
}

func (m *Month) dayCount() int {
	if m.fixedFebruary && m.YearMonth.Month == time.February {
		return 28
	}
	return m.YearMonth.Days()
}

// ConstructDays creates one Day per calendar day of the month.
func (m *Month) ConstructDays() error {
	if err := m.expect(MonthUninitialized, "construct days"); err != nil {
		return err
	}
	n := m.dayCount()
	m.days = make([]*Day, 0, n)
	m.byDate = make(map[time.Time]*Day, n)
	start := m.YearMonth.Start()
	for i := 0; i < n; i++ {
		d := NewDay(start.AddDate(0, 0, i))
		m.days = append(m.days, d)
		m.byDate[d.Date] = d
	}
	m.state = MonthDaysConstructed
	return nil
}

// RecordEvents attaches each event of bucket to the day matching its date.
func (m *Month) RecordEvents(ctx context.Context, bucket *events.Bucket) error {
	if err := m.expect(MonthDaysConstructed, "record events"); err != nil {
		return err
	}
	var recordErr error
	bucket.Each(func(id int, e events.Event) {
		if recordErr != nil {
			return
		}
		d, ok := m.byDate[e.Date()]
		if !ok {
			m.skipped++
			slog.DebugContext(ctx, "Skipping event outside constructed days",
				"event_id", id,
				"name", e.Name,
				"completed_at", e.CompletedAt)
			return
		}
		if _, err := d.AddEvent(e); err != nil {
			recordErr = fmt.Errorf("record event %d: %w", id, err)
		}
	})
	if recordErr != nil {
		return recordErr
	}
	m.state = MonthEventsRecorded
	return nil
}

// Replay executes every day in ascending date order.
func (m *Month) Replay(ctx context.Context, r *Realizer) error {
	if err := m.expect(MonthEventsRecorded, "replay"); err != nil {
		return err
	}
	for _, d := range m.days {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.ExecuteInOrder(ctx, r); err != nil {
			return err
		}
	}
	m.state = MonthReplayed
	return nil
}

// Run marks every expense and income inactive, then constructs, records,
// replays and flushes the month.
func (m *Month) Run(ctx context.Context, r *Realizer, bucket *events.Bucket) (*MonthReport, error) {
	r.Store().MarkAllInactive()
	if err := m.ConstructDays(); err != nil {
		return nil, err
	}
	if err := m.RecordEvents(ctx, bucket); err != nil {
		return nil, err
	}
	if err := m.Replay(ctx, r); err != nil {
		return nil, err
	}
	report, err := m.Flush(r)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Month replayed",
		"year_month", m.YearMonth.String(),
		"payments", len(report.Payments),
		"receipts", len(report.Receipts),
		"skipped", m.skipped)
	return report, nil
}
