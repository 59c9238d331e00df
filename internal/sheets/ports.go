// Package sheets defines where month summaries are exported to.
package sheets

import (
	"context"

	"github.com/shopspring/decimal"
)

// MonthRow is one exported line: an account's ending balance after a month
// of a run, alongside the month's totals.
type MonthRow struct {
	RunID        string
	YearMonth    string
	AccountID    int
	Account      string
	Balance      decimal.Decimal
	Payments     int
	Receipts     int
	PaymentTotal decimal.Decimal
	ReceiptTotal decimal.Decimal
}

// Ports for outbound adapters.
type (
	SummaryWriter interface {
		// AppendMonthSummary appends rows and returns a reference to where
		// they landed.
		AppendMonthSummary(ctx context.Context, rows []MonthRow) (ref string, err error)
	}
)

// Header is the column layout written by every SummaryWriter.
var Header = []string{
	"run_id", "year_month", "account_id", "account", "balance",
	"payments", "receipts", "payment_total", "receipt_total",
}

// Values renders r in Header order. Amounts stay decimal strings.
func (r MonthRow) Values() []any {
	return []any{
		r.RunID,
		r.YearMonth,
		r.AccountID,
		r.Account,
		r.Balance.String(),
		r.Payments,
		r.Receipts,
		r.PaymentTotal.String(),
		r.ReceiptTotal.String(),
	}
}
