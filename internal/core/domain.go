package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventPayment EventType = "payment"
	EventReceipt EventType = "payment_received"
)

const (
	MarkerNone Marker = iota
	MarkerFirst
	MarkerActive
	MarkerLast
)

// TimestampLayout is the naive date-time format used on disk.
const TimestampLayout = "2006-01-02T15:04:05"

// DateLayout is the calendar date format used in event files.
const DateLayout = "2006-01-02"

type (
	// EventType discriminates outflows from inflows.
	EventType string

	// Marker records where an occurrence sits in its recurring series.
	Marker int
)

var (
	ErrInvalidEventType = errors.New("invalid event type")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyAccount     = errors.New("empty account name")
	ErrNegativeAmount   = errors.New("negative amount")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// ParseEventType accepts the on-disk spellings of an event type.
func ParseEventType(s string) (EventType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(EventPayment):
		return EventPayment, nil
	case string(EventReceipt), "receipt":
		return EventReceipt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidEventType, s)
}

func (t EventType) Validate() error {
	switch t {
	case EventPayment, EventReceipt:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidEventType, string(t))
}

func (m Marker) String() string {
	switch m {
	case MarkerFirst:
		return "first"
	case MarkerActive:
		return "active"
	case MarkerLast:
		return "last"
	}
	return "none"
}

// ValidateEntry checks the fields shared by every event record.
func ValidateEntry(t EventType, name, account string, amount decimal.Decimal) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(account) == "" {
		return ErrEmptyAccount
	}
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// ParseTimestamp reads a naive timestamp as UTC. RFC 3339 values and bare
// dates (taken at noon) are accepted too.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{TimestampLayout, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.Add(12 * time.Hour), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
