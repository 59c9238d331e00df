package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ledgersim/internal/store"
)

// Clock supplies the completion time when no override is given.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

var systemClock = ClockFunc(func() time.Time { return time.Now().UTC() })

// Realizer commits composites into a store.
type Realizer struct {
	store   *store.Store
	clock   Clock
	reapply bool
}

type RealizerOption func(*Realizer)

// WithClock sets the clock used when no completion time override is passed.
func WithClock(c Clock) RealizerOption {
	return func(r *Realizer) { r.clock = c }
}

// WithReapply makes an already committed composite commit again (new payment
// and balance rows) after logging a warning. By default it is skipped.
func WithReapply(on bool) RealizerOption {
	return func(r *Realizer) { r.reapply = on }
}

func NewRealizer(st *store.Store, opts ...RealizerOption) *Realizer {
	r := &Realizer{store: st, clock: systemClock}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the store the realizer writes to.
func (r *Realizer) Store() *store.Store {
	return r.store
}

// Realize resolves the composite's account, amount and category, commits the
// ledger row and a new balance row, then records the previous and ending
// balance on the composite. completedAt overrides the clock when non-nil.
func (r *Realizer) Realize(ctx context.Context, c Composite, completedAt *time.Time) error {
	switch c := c.(type) {
	case *PaymentComposite:
		return r.realizePayment(ctx, c, completedAt)
	case *ReceiptComposite:
		return r.realizeReceipt(ctx, c, completedAt)
	}
	return fmt.Errorf("%w: %T", ErrUnknownComposite, c)
}

func (r *Realizer) completionTime(override *time.Time) time.Time {
	if override != nil {
		return *override
	}
	return r.clock.Now()
}

func (r *Realizer) resolveAccount(ctx context.Context, id *int, name string) {
	if *id != 0 {
		return
	}
	acc, created := r.store.FindOrCreateAccount(name)
	if created {
		slog.DebugContext(ctx, "Created account", "account_id", acc.ID, "account", name)
	}
	*id = acc.ID
}

func (r *Realizer) realizePayment(ctx context.Context, c *PaymentComposite, completedAt *time.Time) error {
	if c.PaymentID != 0 {
		slog.WarnContext(ctx, fmt.Sprintf("Payment %d already exists.", c.PaymentID),
			"payment_id", c.PaymentID,
			"reapply", r.reapply)
		if !r.reapply {
			return nil
		}
	}

	r.resolveAccount(ctx, &c.AccountID, c.AccountName)
	if c.AmountID == 0 {
		c.AmountID = r.store.CreateAmount(c.AmountStandard, nil, nil).ID
	}
	if c.ExpenseID == 0 {
		exp, _ := r.store.FindOrCreateExpense(c.ExpenseName)
		c.ExpenseID = exp.ID
	}

	c.CompletedAt = r.completionTime(completedAt)
	c.PaymentID = r.store.CreatePayment(c.CompletedAt, c.AccountID, c.AmountID, c.ExpenseID).ID

	prev := r.store.CurrentAmount(c.AccountID)
	ending := prev.Sub(c.AmountStandard)
	c.AccountBalanceID = r.store.CreateAccountBalance(c.AccountID, c.CompletedAt, ending).ID
	c.PrevBalance = &prev
	c.EndingBalance = &ending
	return nil
}

func (r *Realizer) realizeReceipt(ctx context.Context, c *ReceiptComposite, completedAt *time.Time) error {
	if c.PaymentReceivedID != 0 {
		slog.WarnContext(ctx, fmt.Sprintf("Payment received %d already exists.", c.PaymentReceivedID),
			"payment_received_id", c.PaymentReceivedID,
			"reapply", r.reapply)
		if !r.reapply {
			return nil
		}
	}

	r.resolveAccount(ctx, &c.AccountID, c.AccountName)
	if c.AmountID == 0 {
		c.AmountID = r.store.CreateAmount(c.AmountStandard, nil, nil).ID
	}
	if c.IncomeID == 0 {
		inc, _ := r.store.FindOrCreateIncome(c.IncomeName)
		c.IncomeID = inc.ID
	}

	c.CompletedAt = r.completionTime(completedAt)
	c.PaymentReceivedID = r.store.CreatePaymentReceived(c.CompletedAt, c.AccountID, c.AmountID, c.IncomeID).ID

	prev := r.store.CurrentAmount(c.AccountID)
	ending := prev.Add(c.AmountStandard)
	c.AccountBalanceID = r.store.CreateAccountBalance(c.AccountID, c.CompletedAt, ending).ID
	c.PrevBalance = &prev
	c.EndingBalance = &ending
	return nil
}
