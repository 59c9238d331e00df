package store

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// randomHighFactor bounds Randomize when no high value is recorded.
var randomHighFactor = decimal.NewFromInt(3)

type (
	Account struct {
		ID   int
		Name string
	}

	Expense struct {
		ID     int
		Active bool
		Name   string
	}

	Income struct {
		ID     int
		Active bool
		Name   string
	}

	// Amount is a recorded magnitude. Low and High are optional bounds used to
	// over or under estimate.
	Amount struct {
		ID       int
		Standard decimal.Decimal
		Low      *decimal.Decimal
		High     *decimal.Decimal
	}

	Payment struct {
		ID          int
		CompletedAt time.Time
		AccountID   int
		AmountID    int
		ExpenseID   int
	}

	PaymentReceived struct {
		ID          int
		CompletedAt time.Time
		AccountID   int
		AmountID    int
		IncomeID    int
	}

	AccountBalance struct {
		ID         int
		AccountID  int
		ReportedAt time.Time
		Amount     decimal.Decimal
	}
)

// Bounds returns the randomization range, defaulting low to zero and high to
// three times the standard amount.
func (a Amount) Bounds() (low, high decimal.Decimal) {
	low = decimal.Zero
	if a.Low != nil {
		low = *a.Low
	}
	high = a.Standard.Mul(randomHighFactor)
	if a.High != nil {
		high = *a.High
	}
	return low, high
}

// Randomize draws a cent-rounded value from [low, high).
func (a Amount) Randomize(r *rand.Rand) decimal.Decimal {
	low, high := a.Bounds()
	span := high.Sub(low)
	if !span.IsPositive() {
		return low
	}
	v := low.Add(span.Mul(decimal.NewFromFloat(r.Float64())))
	v = v.RoundFloor(2)
	if !v.LessThan(high) {
		v = high.Sub(decimal.New(1, -2))
	}
	return v
}

// after reports whether b is the newer observation: later reported_at, or the
// same instant and a higher id.
func (b AccountBalance) after(other AccountBalance) bool {
	if !b.ReportedAt.Equal(other.ReportedAt) {
		return b.ReportedAt.After(other.ReportedAt)
	}
	return b.ID > other.ID
}
