package storage

import (
	"fmt"
	"path/filepath"
	"strconv"

	"ledgersim/internal/calendar"
	"ledgersim/internal/core"
)

// Report kinds written once per replayed month.
const (
	MonthPayments         = "all_payments"
	MonthPaymentsReceived = "all_payments_received"
	MonthExpenseSummary   = "expense_summary"
	MonthIncomeSummary    = "income_summary"
)

const (
	ExpenseSummaryFile = "expense_summary.csv"
	IncomeSummaryFile  = "income_summary.csv"
)

var (
	displayHeader         = []string{"id", "name", "amount", "account_name", "completed_at", "prev_balance", "ending_balance"}
	categorySummaryHeader = []string{"id", "name", "total"}
	accountSummaryHeader  = []string{"id", "name", "balance", "reported_at"}
)

// MonthFile names a per-month report, e.g. 2023_06_all_payments.csv.
func MonthFile(ym calendar.YearMonth, kind string) string {
	return fmt.Sprintf("%04d_%02d_%s.csv", ym.Year, int(ym.Month), kind)
}

// AccountSummaryFile names the balance history report of an account.
func AccountSummaryFile(accountID int) string {
	return fmt.Sprintf("account_%d_summary.csv", accountID)
}

func WriteDisplays(path string, ds []core.PaymentDisplay) error {
	rows := make([][]string, 0, len(ds))
	for _, d := range ds {
		rows = append(rows, []string{
			strconv.Itoa(d.ID),
			d.Name,
			d.Amount.String(),
			d.AccountName,
			core.FormatTimestamp(d.CompletedAt),
			core.FormatOptionalAmount(d.PrevBalance),
			core.FormatOptionalAmount(d.EndingBalance),
		})
	}
	return WriteCSV(path, displayHeader, rows)
}

func WriteCategorySummaries(path string, cs []core.CategorySummary) error {
	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, []string{strconv.Itoa(c.ID), c.Name, c.Total.String()})
	}
	return WriteCSV(path, categorySummaryHeader, rows)
}

func WriteAccountSummary(path string, as []core.AccountSummary) error {
	rows := make([][]string, 0, len(as))
	for _, a := range as {
		rows = append(rows, []string{strconv.Itoa(a.ID), a.Name, a.Balance.String(), core.FormatTimestamp(a.ReportedAt)})
	}
	return WriteCSV(path, accountSummaryHeader, rows)
}

// MonthPath joins dir with the month report file of kind.
func MonthPath(dir string, ym calendar.YearMonth, kind string) string {
	return filepath.Join(dir, MonthFile(ym, kind))
}
