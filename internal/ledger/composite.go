// Package ledger replays dated events against the entity store one day at a
// time.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"ledgersim/internal/core"
	"ledgersim/internal/events"
)

var ErrUnknownComposite = errors.New("unknown composite")

// Composite is a ledger mutation that has not been committed yet. It is
// either a *PaymentComposite or a *ReceiptComposite.
type Composite interface {
	Kind() core.EventType
	Timestamp() time.Time
	Display() core.PaymentDisplay
	composite()
}

// PaymentComposite books an outflow against an expense.
type PaymentComposite struct {
	AccountID        int
	AccountName      string
	AccountBalanceID int
	PrevBalance      *decimal.Decimal
	EndingBalance    *decimal.Decimal
	AmountID         int
	AmountStandard   decimal.Decimal
	PaymentID        int
	CompletedAt      time.Time
	ExpenseID        int
	ExpenseName      string
}

// ReceiptComposite books an inflow against an income.
type ReceiptComposite struct {
	AccountID         int
	AccountName       string
	AccountBalanceID  int
	PrevBalance       *decimal.Decimal
	EndingBalance     *decimal.Decimal
	AmountID          int
	AmountStandard    decimal.Decimal
	PaymentReceivedID int
	CompletedAt       time.Time
	IncomeID          int
	IncomeName        string
}

func (*PaymentComposite) composite() {}
func (*ReceiptComposite) composite() {}

func (*PaymentComposite) Kind() core.EventType { return core.EventPayment }
func (*ReceiptComposite) Kind() core.EventType { return core.EventReceipt }

func (c *PaymentComposite) Timestamp() time.Time { return c.CompletedAt }
func (c *ReceiptComposite) Timestamp() time.Time { return c.CompletedAt }

func (c *PaymentComposite) Display() core.PaymentDisplay {
	return core.PaymentDisplay{
		ID:            c.PaymentID,
		Name:          c.ExpenseName,
		Amount:        c.AmountStandard,
		AccountName:   c.AccountName,
		CompletedAt:   c.CompletedAt,
		PrevBalance:   c.PrevBalance,
		EndingBalance: c.EndingBalance,
	}
}

func (c *ReceiptComposite) Display() core.PaymentDisplay {
	return core.PaymentDisplay{
		ID:            c.PaymentReceivedID,
		Name:          c.IncomeName,
		Amount:        c.AmountStandard,
		AccountName:   c.AccountName,
		CompletedAt:   c.CompletedAt,
		PrevBalance:   c.PrevBalance,
		EndingBalance: c.EndingBalance,
	}
}

// FromEvent converts an event into the composite matching its type.
func FromEvent(e events.Event) (Composite, error) {
	switch e.EventType {
	case core.EventPayment:
		return &PaymentComposite{
			AccountName:    e.AccountName,
			AmountStandard: e.Amount,
			CompletedAt:    e.CompletedAt,
			ExpenseName:    e.Name,
		}, nil
	case core.EventReceipt:
		return &ReceiptComposite{
			AccountName:    e.AccountName,
			AmountStandard: e.Amount,
			CompletedAt:    e.CompletedAt,
			IncomeName:     e.Name,
		}, nil
	}
	return nil, fmt.Errorf("%w: event type %q", ErrUnknownComposite, string(e.EventType))
}
