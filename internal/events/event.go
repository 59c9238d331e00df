package events

import (
	"time"

	"github.com/shopspring/decimal"

	"ledgersim/internal/calendar"
	"ledgersim/internal/core"
)

// Event is a single dated payment or receipt ready for replay.
type Event struct {
	EventType   core.EventType
	Name        string
	AccountName string
	Amount      decimal.Decimal
	CompletedAt time.Time
	Marker      core.Marker
}

// YearMonth is the month the event falls in.
func (e Event) YearMonth() calendar.YearMonth {
	return calendar.Of(e.CompletedAt)
}

// Date is CompletedAt truncated to midnight.
func (e Event) Date() time.Time {
	return calendar.DateOf(e.CompletedAt)
}

func (e Event) Validate() error {
	if err := core.ValidateEntry(e.EventType, e.Name, e.AccountName, e.Amount); err != nil {
		return err
	}
	if e.CompletedAt.IsZero() {
		return core.ErrInvalidTimestamp
	}
	return nil
}
