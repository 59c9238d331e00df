package store

import (
	"github.com/shopspring/decimal"

	"ledgersim/internal/core"
)

// AccountSummary lists every balance row of an account in id order.
func (s *Store) AccountSummary(accountID int) ([]core.AccountSummary, error) {
	acc, ok := s.Accounts.Get(accountID)
	if !ok {
		return nil, ErrNotFound
	}
	var out []core.AccountSummary
	s.AccountBalances.Each(func(id int, b AccountBalance) {
		if b.AccountID != accountID {
			return
		}
		out = append(out, core.AccountSummary{
			ID:         id,
			Name:       acc.Name,
			Balance:    b.Amount,
			ReportedAt: b.ReportedAt,
		})
	})
	return out, nil
}

// ExpenseTotal sums the standard amount of every payment booked to expenseID.
// Payments pointing at a missing amount row count as zero.
func (s *Store) ExpenseTotal(expenseID int) decimal.Decimal {
	total := decimal.Zero
	s.Payments.Each(func(_ int, p Payment) {
		if p.ExpenseID != expenseID {
			return
		}
		if a, ok := s.Amounts.Get(p.AmountID); ok {
			total = total.Add(a.Standard)
		}
	})
	return total
}

// IncomeTotal sums the standard amount of every receipt booked to incomeID.
func (s *Store) IncomeTotal(incomeID int) decimal.Decimal {
	total := decimal.Zero
	s.PaymentsReceived.Each(func(_ int, p PaymentReceived) {
		if p.IncomeID != incomeID {
			return
		}
		if a, ok := s.Amounts.Get(p.AmountID); ok {
			total = total.Add(a.Standard)
		}
	})
	return total
}

// ExpenseSummary totals every expense in id order.
func (s *Store) ExpenseSummary() []core.CategorySummary {
	out := make([]core.CategorySummary, 0, s.Expenses.Len())
	s.Expenses.Each(func(id int, e Expense) {
		out = append(out, core.CategorySummary{ID: id, Name: e.Name, Total: s.ExpenseTotal(id)})
	})
	return out
}

// IncomeSummary totals every income in id order.
func (s *Store) IncomeSummary() []core.CategorySummary {
	out := make([]core.CategorySummary, 0, s.Incomes.Len())
	s.Incomes.Each(func(id int, i Income) {
		out = append(out, core.CategorySummary{ID: id, Name: i.Name, Total: s.IncomeTotal(id)})
	})
	return out
}

// LatestBalances returns the current balance of every account in id order.
func (s *Store) LatestBalances() []core.AccountBalanceLine {
	out := make([]core.AccountBalanceLine, 0, s.Accounts.Len())
	s.Accounts.Each(func(id int, a Account) {
		out = append(out, core.AccountBalanceLine{AccountID: id, Name: a.Name, Balance: s.CurrentAmount(id)})
	})
	return out
}
