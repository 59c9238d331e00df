package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountSummary is one balance observation of an account.
type AccountSummary struct {
	ID         int
	Name       string
	Balance    decimal.Decimal
	ReportedAt time.Time
}

// CategorySummary totals the amounts booked against an expense or income.
type CategorySummary struct {
	ID    int
	Name  string
	Total decimal.Decimal
}

// PaymentDisplay is a realized event as shown in monthly reports.
type PaymentDisplay struct {
	ID            int
	Name          string
	Amount        decimal.Decimal
	AccountName   string
	CompletedAt   time.Time
	PrevBalance   *decimal.Decimal
	EndingBalance *decimal.Decimal
}

// AccountBalanceLine is an account's latest balance, used in run reports.
type AccountBalanceLine struct {
	AccountID int
	Name      string
	Balance   decimal.Decimal
}
