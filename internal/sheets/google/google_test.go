package google

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	ports "ledgersim/internal/sheets"
)

func TestValueRows(t *testing.T) {
	rows := []ports.MonthRow{{
		RunID:        "run-1",
		YearMonth:    "2023-06",
		AccountID:    2,
		Account:      "checking",
		Balance:      decimal.RequireFromString("-0.91"),
		Payments:     2,
		Receipts:     1,
		PaymentTotal: decimal.RequireFromString("1.01"),
		ReceiptTotal: decimal.RequireFromString("0.1"),
	}}

	got := valueRows(rows)
	if len(got) != 1 || len(got[0]) != len(ports.Header) {
		t.Fatalf("valueRows() = %v, want one row of %d cells", got, len(ports.Header))
	}
	if got[0][4] != "-0.91" {
		t.Errorf("balance cell = %v, want -0.91", got[0][4])
	}
	if got[0][2] != 2 {
		t.Errorf("account id cell = %v, want 2", got[0][2])
	}
}

func TestLastColumn(t *testing.T) {
	if got := lastColumn(); got != "I" {
		t.Errorf("lastColumn() = %q, want I", got)
	}
}

func TestNewRequiresSpreadsheetID(t *testing.T) {
	if _, err := New(context.Background(), "  ", "Ledger"); err == nil {
		t.Fatal("New() with blank spreadsheet ID should fail")
	}
}

func TestAppendWithoutService(t *testing.T) {
	c := &Client{spreadsheetID: "id", sheetName: "Ledger"}
	if _, err := c.AppendMonthSummary(context.Background(), []ports.MonthRow{{RunID: "r"}}); err == nil {
		t.Fatal("AppendMonthSummary() without service should fail")
	}
}
