package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"ledgersim/internal/calendar"
	"ledgersim/internal/core"
)

// MonthReport is what a replayed month produced.
type MonthReport struct {
	YearMonth       calendar.YearMonth
	Payments        []core.PaymentDisplay
	Receipts        []core.PaymentDisplay
	ExpenseSummary  []core.CategorySummary
	IncomeSummary   []core.CategorySummary
	AccountBalances []core.AccountBalanceLine
	Skipped         int
}

func (r *MonthReport) PaymentTotal() decimal.Decimal {
	return sumDisplays(r.Payments)
}

func (r *MonthReport) ReceiptTotal() decimal.Decimal {
	return sumDisplays(r.Receipts)
}

func sumDisplays(ds []core.PaymentDisplay) decimal.Decimal {
	total := decimal.Zero
	for _, d := range ds {
		total = total.Add(d.Amount)
	}
	return total
}

// Flush builds the month report. Category summaries only cover expenses and
// incomes active after the replay, totalled over this month's composites.
func (m *Month) Flush(r *Realizer) (*MonthReport, error) {
	if err := m.expect(MonthReplayed, "flush"); err != nil {
		return nil, err
	}
	st := r.Store()
	report := &MonthReport{YearMonth: m.YearMonth, Skipped: m.skipped}

	expenseTotals := make(map[int]decimal.Decimal)
	incomeTotals := make(map[int]decimal.Decimal)
	touched := make(map[int]bool)
	for _, d := range m.days {
		for _, c := range d.Realized() {
			switch c := c.(type) {
			case *PaymentComposite:
				report.Payments = append(report.Payments, c.Display())
				expenseTotals[c.ExpenseID] = expenseTotals[c.ExpenseID].Add(c.AmountStandard)
				touched[c.AccountID] = true
			case *ReceiptComposite:
				report.Receipts = append(report.Receipts, c.Display())
				incomeTotals[c.IncomeID] = incomeTotals[c.IncomeID].Add(c.AmountStandard)
				touched[c.AccountID] = true
			}
		}
	}

	for _, id := range sortedKeys(expenseTotals) {
		exp, ok := st.Expenses.Get(id)
		if !ok || !exp.Active {
			continue
		}
		report.ExpenseSummary = append(report.ExpenseSummary, core.CategorySummary{ID: id, Name: exp.Name, Total: expenseTotals[id]})
	}
	for _, id := range sortedKeys(incomeTotals) {
		inc, ok := st.Incomes.Get(id)
		if !ok || !inc.Active {
			continue
		}
		report.IncomeSummary = append(report.IncomeSummary, core.CategorySummary{ID: id, Name: inc.Name, Total: incomeTotals[id]})
	}
	for _, id := range sortedKeys(touched) {
		acc, ok := st.Accounts.Get(id)
		if !ok {
			continue
		}
		report.AccountBalances = append(report.AccountBalances, core.AccountBalanceLine{
			AccountID: id,
			Name:      acc.Name,
			Balance:   st.CurrentAmount(id),
		})
	}

	m.state = MonthFlushed
	return report, nil
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
