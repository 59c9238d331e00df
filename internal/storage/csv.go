// Package storage persists the entity store as CSV tables and as a SQLite
// snapshot, and writes the report files of a run.
package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"ledgersim/internal/core"
	"ledgersim/internal/store"
)

var ErrBadHeader = errors.New("unexpected csv header")

// Table file names under a data root.
const (
	AccountsFile         = "accounts.csv"
	AccountBalancesFile  = "account_balances.csv"
	AmountsFile          = "amounts.csv"
	ExpensesFile         = "expenses.csv"
	IncomesFile          = "incomes.csv"
	PaymentsFile         = "payments.csv"
	PaymentsReceivedFile = "payments_received.csv"
)

type tableCodec struct {
	file   string
	header []string
	load   func(st *store.Store, rec []string) error
	dump   func(st *store.Store) [][]string
}

var tables = []tableCodec{
	{
		file:   AccountsFile,
		header: []string{"id", "name"},
		load: func(st *store.Store, rec []string) error {
			id, err := parseID(rec[0])
			if err != nil {
				return err
			}
			return st.InsertAccount(store.Account{ID: id, Name: rec[1]})
		},
		dump: func(st *store.Store) [][]string {
			var out [][]string
			st.Accounts.Each(func(id int, a store.Account) {
				out = append(out, []string{strconv.Itoa(id), a.Name})
			})
			return out
		},
	},
	{
		file:   AccountBalancesFile,
		header: []string{"id", "account_id", "reported_at", "amount"},
		load: func(st *store.Store, rec []string) error {
			id, err := parseID(rec[0])
			if err != nil {
				return err
			}
			accountID, err := parseID(rec[1])
			if err != nil {
				return err
			}
			reportedAt, err := core.ParseTimestamp(rec[2])
			if err != nil {
				return err
			}
			amount, err := core.ParseAmount(rec[3])
			if err != nil {
				return fmt.Errorf("amount %q: %w", rec[3], err)
			}
			return st.InsertAccountBalance(store.AccountBalance{ID: id, AccountID: accountID, ReportedAt: reportedAt, Amount: amount})
		},
		dump: func(st *store.Store) [][]string {
			var out [][]string
			st.AccountBalances.Each(func(id int, b store.AccountBalance) {
				out = append(out, []string{strconv.Itoa(id), strconv.Itoa(b.AccountID), core.FormatTimestamp(b.ReportedAt), b.Amount.String()})
			})
			return out
		},
	},
	{
		file:   AmountsFile,
		header: []string{"id", "standard", "low", "high"},
		load: func(st *store.Store, rec []string) error {
			id, err := parseID(rec[0])
			if err != nil {
				return err
			}
			standard, err := core.ParseAmount(rec[1])
			if err != nil {
				return fmt.Errorf("standard %q: %w", rec[1], err)
			}
			low, err := core.ParseOptionalAmount(rec[2])
			if err != nil {
				return fmt.Errorf("low %q: %w", rec[2], err)
			}
			high, err := core.ParseOptionalAmount(rec[3])
			if err != nil {
				return fmt.Errorf("high %q: %w", rec[3], err)
			}
			return st.InsertAmount(store.Amount{ID: id, Standard: standard, Low: low, High: high})
		},
		dump: func(st *store.Store) [][]string {
			var out [][]string
			st.Amounts.Each(func(id int, a store.Amount) {
				out = append(out, []string{strconv.Itoa(id), a.Standard.String(), core.FormatOptionalAmount(a.Low), core.FormatOptionalAmount(a.High)})
			})
			return out
		},
	},
	{
		file:   ExpensesFile,
		header: []string{"id", "active", "name"},
		load: func(st *store.Store, rec []string) error {
			id, active, err := parseCategory(rec)
			if err != nil {
				return err
			}
			return st.InsertExpense(store.Expense{ID: id, Active: active, Name: rec[2]})
		},
		dump: func(st *store.Store) [][]string {
			var out [][]string
			st.Expenses.Each(func(id int, e store.Expense) {
				out = append(out, []string{strconv.Itoa(id), strconv.FormatBool(e.Active), e.Name})
			})
			return out
		},
	},
	{
		file:   IncomesFile,
		header: []string{"id", "active", "name"},
		load: func(st *store.Store, rec []string) error {
			id, active, err := parseCategory(rec)
			if err != nil {
				return err
			}
			return st.InsertIncome(store.Income{ID: id, Active: active, Name: rec[2]})
		},
		dump: func(st *store.Store) [][]string {
			var out [][]string
			st.Incomes.Each(func(id int, i store.Income) {
				out = append(out, []string{strconv.Itoa(id), strconv.FormatBool(i.Active), i.Name})
			})
			return out
		},
	},
	{
		file:   PaymentsFile,
		header: []string{"id", "completed_at", "account_id", "amount_id", "expense_id"},
		load: func(st *store.Store, rec []string) error {
			ids, completedAt, err := parseLedgerRow(rec)
			if err != nil {
				return err
			}
			return st.InsertPayment(store.Payment{ID: ids[0], CompletedAt: completedAt, AccountID: ids[1], AmountID: ids[2], ExpenseID: ids[3]})
		},
		dump: func(st *store.Store) [][]string {
			var out [][]string
			st.Payments.Each(func(id int, p store.Payment) {
				out = append(out, ledgerRow(id, p.CompletedAt, p.AccountID, p.AmountID, p.ExpenseID))
			})
			return out
		},
	},
	{
		file:   PaymentsReceivedFile,
		header: []string{"id", "completed_at", "account_id", "amount_id", "income_id"},
		load: func(st *store.Store, rec []string) error {
			ids, completedAt, err := parseLedgerRow(rec)
			if err != nil {
				return err
			}
			return st.InsertPaymentReceived(store.PaymentReceived{ID: ids[0], CompletedAt: completedAt, AccountID: ids[1], AmountID: ids[2], IncomeID: ids[3]})
		},
		dump: func(st *store.Store) [][]string {
			var out [][]string
			st.PaymentsReceived.Each(func(id int, p store.PaymentReceived) {
				out = append(out, ledgerRow(id, p.CompletedAt, p.AccountID, p.AmountID, p.IncomeID))
			})
			return out
		},
	},
}

// ReadStore loads every table found under dir. Absent table files are
// treated as empty; an absent dir is an error.
func ReadStore(ctx context.Context, dir string) (*store.Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open data root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open data root: %s is not a directory", dir)
	}

	records := make([][][]string, len(tables))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range tables {
		g.Go(func() error {
			rows, err := readTable(gctx, filepath.Join(dir, t.file), t.header)
			if err != nil {
				return fmt.Errorf("read %s: %w", t.file, err)
			}
			records[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	st := store.New()
	for i, t := range tables {
		for n, rec := range records[i] {
			if err := t.load(st, rec); err != nil {
				return nil, fmt.Errorf("load %s row %d: %w", t.file, n+1, err)
			}
		}
	}
	slog.InfoContext(ctx, "Store loaded",
		"dir", dir,
		"accounts", st.Accounts.Len(),
		"balances", st.AccountBalances.Len(),
		"payments", st.Payments.Len(),
		"payments_received", st.PaymentsReceived.Len())
	return st, nil
}

// WriteStore writes every table under dir, creating it when needed.
func WriteStore(ctx context.Context, dir string, st *store.Store) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data root: %w", err)
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, t := range tables {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return WriteCSV(filepath.Join(dir, t.file), t.header, t.dump(st))
		})
	}
	return g.Wait()
}

func readTable(ctx context.Context, path string, header []string) ([][]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.DebugContext(ctx, "Table file absent, treating as empty", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)
	got, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !slices.Equal(got, header) {
		return nil, fmt.Errorf("%w: got %v, want %v", ErrBadHeader, got, header)
	}
	return r.ReadAll()
}

// WriteCSV writes header and rows to path, replacing any existing file.
func WriteCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("id %q: %w", s, store.ErrInvalidID)
	}
	return id, nil
}

func parseCategory(rec []string) (int, bool, error) {
	id, err := parseID(rec[0])
	if err != nil {
		return 0, false, err
	}
	active, err := strconv.ParseBool(rec[1])
	if err != nil {
		return 0, false, fmt.Errorf("active %q: %w", rec[1], err)
	}
	return id, active, nil
}

// parseLedgerRow reads id,completed_at,account_id,amount_id,category_id.
func parseLedgerRow(rec []string) ([4]int, time.Time, error) {
	var ids [4]int
	completedAt, err := core.ParseTimestamp(rec[1])
	if err != nil {
		return ids, time.Time{}, err
	}
	for i, col := range []int{0, 2, 3, 4} {
		if ids[i], err = parseID(rec[col]); err != nil {
			return ids, time.Time{}, err
		}
	}
	return ids, completedAt, nil
}

func ledgerRow(id int, completedAt time.Time, accountID, amountID, categoryID int) []string {
	return []string{
		strconv.Itoa(id),
		core.FormatTimestamp(completedAt),
		strconv.Itoa(accountID),
		strconv.Itoa(amountID),
		strconv.Itoa(categoryID),
	}
}
