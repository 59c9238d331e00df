package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Store holds every entity table of a run. It is not safe for concurrent use;
// a run owns its store exclusively.
type Store struct {
	Accounts         *Table[Account]
	AccountBalances  *Table[AccountBalance]
	Amounts          *Table[Amount]
	Expenses         *Table[Expense]
	Incomes          *Table[Income]
	Payments         *Table[Payment]
	PaymentsReceived *Table[PaymentReceived]

	accountByName map[string]int
	expenseByName map[string]int
	incomeByName  map[string]int
	latestBalance map[int]int // account id -> balance id
}

func New() *Store {
	return &Store{
		Accounts:         newTable[Account](),
		AccountBalances:  newTable[AccountBalance](),
		Amounts:          newTable[Amount](),
		Expenses:         newTable[Expense](),
		Incomes:          newTable[Income](),
		Payments:         newTable[Payment](),
		PaymentsReceived: newTable[PaymentReceived](),
		accountByName:    make(map[string]int),
		expenseByName:    make(map[string]int),
		incomeByName:     make(map[string]int),
		latestBalance:    make(map[int]int),
	}
}

// indexName keeps the lowest id for a name, matching a scan in id order.
func indexName(idx map[string]int, name string, id int) {
	if cur, ok := idx[name]; !ok || id < cur {
		idx[name] = id
	}
}

// Insert methods load records that already carry an id.

func (s *Store) InsertAccount(a Account) error {
	if err := s.Accounts.insert(a.ID, a); err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	indexName(s.accountByName, a.Name, a.ID)
	return nil
}

func (s *Store) InsertExpense(e Expense) error {
	if err := s.Expenses.insert(e.ID, e); err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	indexName(s.expenseByName, e.Name, e.ID)
	return nil
}

func (s *Store) InsertIncome(i Income) error {
	if err := s.Incomes.insert(i.ID, i); err != nil {
		return fmt.Errorf("insert income: %w", err)
	}
	indexName(s.incomeByName, i.Name, i.ID)
	return nil
}

func (s *Store) InsertAmount(a Amount) error {
	if err := s.Amounts.insert(a.ID, a); err != nil {
		return fmt.Errorf("insert amount: %w", err)
	}
	return nil
}

func (s *Store) InsertPayment(p Payment) error {
	if err := s.Payments.insert(p.ID, p); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (s *Store) InsertPaymentReceived(p PaymentReceived) error {
	if err := s.PaymentsReceived.insert(p.ID, p); err != nil {
		return fmt.Errorf("insert payment received: %w", err)
	}
	return nil
}

func (s *Store) InsertAccountBalance(b AccountBalance) error {
	if err := s.AccountBalances.insert(b.ID, b); err != nil {
		return fmt.Errorf("insert account balance: %w", err)
	}
	if cur, ok := s.CurrentBalance(b.AccountID); !ok || b.after(cur) {
		s.latestBalance[b.AccountID] = b.ID
	}
	return nil
}

// Lookups.

// AccountByName returns the lowest-id account with that name.
func (s *Store) AccountByName(name string) (Account, bool) {
	id, ok := s.accountByName[name]
	if !ok {
		return Account{}, false
	}
	return s.Accounts.Get(id)
}

func (s *Store) ExpenseByName(name string) (Expense, bool) {
	id, ok := s.expenseByName[name]
	if !ok {
		return Expense{}, false
	}
	return s.Expenses.Get(id)
}

func (s *Store) IncomeByName(name string) (Income, bool) {
	id, ok := s.incomeByName[name]
	if !ok {
		return Income{}, false
	}
	return s.Incomes.Get(id)
}

// Create methods assign the next id. Ids only grow.

func (s *Store) CreateAccount(name string) Account {
	a := Account{ID: s.Accounts.NextID(), Name: name}
	_ = s.InsertAccount(a)
	return a
}

func (s *Store) CreateExpense(name string, active bool) Expense {
	e := Expense{ID: s.Expenses.NextID(), Active: active, Name: name}
	_ = s.InsertExpense(e)
	return e
}

func (s *Store) CreateIncome(name string, active bool) Income {
	i := Income{ID: s.Incomes.NextID(), Active: active, Name: name}
	_ = s.InsertIncome(i)
	return i
}

func (s *Store) CreateAmount(standard decimal.Decimal, low, high *decimal.Decimal) Amount {
	a := Amount{ID: s.Amounts.NextID(), Standard: standard, Low: low, High: high}
	_ = s.InsertAmount(a)
	return a
}

func (s *Store) CreatePayment(completedAt time.Time, accountID, amountID, expenseID int) Payment {
	p := Payment{
		ID:          s.Payments.NextID(),
		CompletedAt: completedAt,
		AccountID:   accountID,
		AmountID:    amountID,
		ExpenseID:   expenseID,
	}
	_ = s.InsertPayment(p)
	return p
}

func (s *Store) CreatePaymentReceived(completedAt time.Time, accountID, amountID, incomeID int) PaymentReceived {
	p := PaymentReceived{
		ID:          s.PaymentsReceived.NextID(),
		CompletedAt: completedAt,
		AccountID:   accountID,
		AmountID:    amountID,
		IncomeID:    incomeID,
	}
	_ = s.InsertPaymentReceived(p)
	return p
}

func (s *Store) CreateAccountBalance(accountID int, reportedAt time.Time, amount decimal.Decimal) AccountBalance {
	b := AccountBalance{
		ID:         s.AccountBalances.NextID(),
		AccountID:  accountID,
		ReportedAt: reportedAt,
		Amount:     amount,
	}
	_ = s.InsertAccountBalance(b)
	return b
}

// Find-or-create resolution. The bool reports whether a row was created.

func (s *Store) FindOrCreateAccount(name string) (Account, bool) {
	if a, ok := s.AccountByName(name); ok {
		return a, false
	}
	return s.CreateAccount(name), true
}

// FindOrCreateExpense marks an existing expense active.
func (s *Store) FindOrCreateExpense(name string) (Expense, bool) {
	if e, ok := s.ExpenseByName(name); ok {
		if !e.Active {
			e.Active = true
			s.Expenses.update(e.ID, e)
		}
		return e, false
	}
	return s.CreateExpense(name, true), true
}

// FindOrCreateIncome marks an existing income active.
func (s *Store) FindOrCreateIncome(name string) (Income, bool) {
	if i, ok := s.IncomeByName(name); ok {
		if !i.Active {
			i.Active = true
			s.Incomes.update(i.ID, i)
		}
		return i, false
	}
	return s.CreateIncome(name, true), true
}

// CurrentBalance is the account's balance row with the latest reported_at,
// ties going to the highest id.
func (s *Store) CurrentBalance(accountID int) (AccountBalance, bool) {
	id, ok := s.latestBalance[accountID]
	if !ok {
		return AccountBalance{}, false
	}
	return s.AccountBalances.Get(id)
}

// CurrentAmount is CurrentBalance's amount, zero when the account has none.
func (s *Store) CurrentAmount(accountID int) decimal.Decimal {
	if b, ok := s.CurrentBalance(accountID); ok {
		return b.Amount
	}
	return decimal.Zero
}

// MarkAllInactive clears the active flag on every expense and income.
func (s *Store) MarkAllInactive() {
	s.Expenses.Each(func(id int, e Expense) {
		if e.Active {
			e.Active = false
			s.Expenses.update(id, e)
		}
	})
	s.Incomes.Each(func(id int, i Income) {
		if i.Active {
			i.Active = false
			s.Incomes.update(id, i)
		}
	})
}

// AmountValue returns the standard value of an amount row.
func (s *Store) AmountValue(amountID int) (decimal.Decimal, error) {
	a, ok := s.Amounts.Get(amountID)
	if !ok {
		return decimal.Zero, fmt.Errorf("amount %d: %w", amountID, ErrNotFound)
	}
	return a.Standard, nil
}
