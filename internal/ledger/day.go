package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ledgersim/internal/core"
	"ledgersim/internal/events"
)

// Day holds the pending composites of one calendar day. Ids are assigned per
// kind starting at 1 in attach order.
type Day struct {
	Date time.Time

	payments    map[int]*PaymentComposite
	paymentIDs  []int
	receipts    map[int]*ReceiptComposite
	receiptIDs  []int
	realizedSeq []Composite
}

func NewDay(date time.Time) *Day {
	return &Day{
		Date:     date,
		payments: make(map[int]*PaymentComposite),
		receipts: make(map[int]*ReceiptComposite),
	}
}

// AddEvent attaches e to the day and returns its id within its kind.
func (d *Day) AddEvent(e events.Event) (int, error) {
	c, err := FromEvent(e)
	if err != nil {
		return 0, err
	}
	switch c := c.(type) {
	case *PaymentComposite:
		id := len(d.paymentIDs) + 1
		d.payments[id] = c
		d.paymentIDs = append(d.paymentIDs, id)
		return id, nil
	case *ReceiptComposite:
		id := len(d.receiptIDs) + 1
		d.receipts[id] = c
		d.receiptIDs = append(d.receiptIDs, id)
		return id, nil
	}
	return 0, fmt.Errorf("%w: %T", ErrUnknownComposite, c)
}

func (d *Day) Payment(id int) (*PaymentComposite, bool) {
	c, ok := d.payments[id]
	return c, ok
}

func (d *Day) Receipt(id int) (*ReceiptComposite, bool) {
	c, ok := d.receipts[id]
	return c, ok
}

// Len is the number of pending composites of both kinds.
func (d *Day) Len() int {
	return len(d.paymentIDs) + len(d.receiptIDs)
}

// Realized lists the composites in the order ExecuteInOrder committed them.
func (d *Day) Realized() []Composite {
	return d.realizedSeq
}

type scheduled struct {
	id   int
	at   time.Time
	kind core.EventType
}

// ExecuteInOrder realizes every composite of the day in timestamp order, each
// with its own timestamp as the completion time. Equal timestamps keep
// payments before receipts and ascending ids within a kind.
func (d *Day) ExecuteInOrder(ctx context.Context, r *Realizer) error {
	queue := make([]scheduled, 0, d.Len())
	for _, id := range d.paymentIDs {
		queue = append(queue, scheduled{id: id, at: d.payments[id].CompletedAt, kind: core.EventPayment})
	}
	for _, id := range d.receiptIDs {
		queue = append(queue, scheduled{id: id, at: d.receipts[id].CompletedAt, kind: core.EventReceipt})
	}
	sort.SliceStable(queue, func(i, j int) bool {
		return queue[i].at.Before(queue[j].at)
	})

	d.realizedSeq = d.realizedSeq[:0]
	for _, s := range queue {
		var c Composite
		if s.kind == core.EventPayment {
			c = d.payments[s.id]
		} else {
			c = d.receipts[s.id]
		}
		at := s.at
		if err := r.Realize(ctx, c, &at); err != nil {
			return fmt.Errorf("realize %s %d on %s: %w", s.kind, s.id, d.Date.Format(core.DateLayout), err)
		}
		d.realizedSeq = append(d.realizedSeq, c)
	}
	return nil
}
