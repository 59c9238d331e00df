package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"ledgersim/internal/core"
	"ledgersim/internal/store"

	_ "modernc.org/sqlite"
)

var ErrNoRuns = errors.New("no saved runs")

// Run describes one saved snapshot.
type Run struct {
	ID               string
	SavedAt          time.Time
	Accounts         int
	Payments         int
	PaymentsReceived int
}

// SQLiteRepository stores whole-store snapshots in a migrated SQLite file.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

var snapshotTables = []string{
	"accounts", "account_balances", "amounts", "expenses", "incomes", "payments", "payments_received",
}

// SaveStore replaces the snapshot with the contents of st and records runID.
func (r *SQLiteRepository) SaveStore(ctx context.Context, st *store.Store, runID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	for _, table := range snapshotTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	var insertErr error
	exec := func(query string, args ...any) {
		if insertErr != nil {
			return
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			insertErr = err
		}
	}

	st.Accounts.Each(func(id int, a store.Account) {
		exec(`INSERT INTO accounts (id, name) VALUES (?, ?)`, id, a.Name)
	})
	st.AccountBalances.Each(func(id int, b store.AccountBalance) {
		exec(`INSERT INTO account_balances (id, account_id, reported_at, amount) VALUES (?, ?, ?, ?)`,
			id, b.AccountID, core.FormatTimestamp(b.ReportedAt), b.Amount.String())
	})
	st.Amounts.Each(func(id int, a store.Amount) {
		exec(`INSERT INTO amounts (id, standard, low, high) VALUES (?, ?, ?, ?)`,
			id, a.Standard.String(), nullDecimal(a.Low), nullDecimal(a.High))
	})
	st.Expenses.Each(func(id int, e store.Expense) {
		exec(`INSERT INTO expenses (id, active, name) VALUES (?, ?, ?)`, id, e.Active, e.Name)
	})
	st.Incomes.Each(func(id int, i store.Income) {
		exec(`INSERT INTO incomes (id, active, name) VALUES (?, ?, ?)`, id, i.Active, i.Name)
	})
	st.Payments.Each(func(id int, p store.Payment) {
		exec(`INSERT INTO payments (id, completed_at, account_id, amount_id, expense_id) VALUES (?, ?, ?, ?, ?)`,
			id, core.FormatTimestamp(p.CompletedAt), p.AccountID, p.AmountID, p.ExpenseID)
	})
	st.PaymentsReceived.Each(func(id int, p store.PaymentReceived) {
		exec(`INSERT INTO payments_received (id, completed_at, account_id, amount_id, income_id) VALUES (?, ?, ?, ?, ?)`,
			id, core.FormatTimestamp(p.CompletedAt), p.AccountID, p.AmountID, p.IncomeID)
	})
	exec(`INSERT INTO runs (id, saved_at, accounts, payments, payments_received) VALUES (?, ?, ?, ?, ?)`,
		runID, core.FormatTimestamp(time.Now()), st.Accounts.Len(), st.Payments.Len(), st.PaymentsReceived.Len())
	if insertErr != nil {
		return fmt.Errorf("write snapshot: %w", insertErr)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Store saved to SQLite",
		"run_id", runID,
		"accounts", st.Accounts.Len(),
		"payments", st.Payments.Len(),
		"payments_received", st.PaymentsReceived.Len())
	return nil
}

// LoadStore reads the snapshot back into a fresh store.
func (r *SQLiteRepository) LoadStore(ctx context.Context) (*store.Store, error) {
	st := store.New()

	err := r.scan(ctx, `SELECT id, name FROM accounts ORDER BY id`, func(rows *sql.Rows) error {
		var a store.Account
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return err
		}
		return st.InsertAccount(a)
	})
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}

	err = r.scan(ctx, `SELECT id, account_id, reported_at, amount FROM account_balances ORDER BY id`, func(rows *sql.Rows) error {
		var (
			b              store.AccountBalance
			reportedAt, am string
		)
		if err := rows.Scan(&b.ID, &b.AccountID, &reportedAt, &am); err != nil {
			return err
		}
		var err error
		if b.ReportedAt, err = core.ParseTimestamp(reportedAt); err != nil {
			return err
		}
		if b.Amount, err = decimal.NewFromString(am); err != nil {
			return err
		}
		return st.InsertAccountBalance(b)
	})
	if err != nil {
		return nil, fmt.Errorf("load account balances: %w", err)
	}

	err = r.scan(ctx, `SELECT id, standard, low, high FROM amounts ORDER BY id`, func(rows *sql.Rows) error {
		var (
			a         store.Amount
			standard  string
			low, high sql.NullString
		)
		if err := rows.Scan(&a.ID, &standard, &low, &high); err != nil {
			return err
		}
		var err error
		if a.Standard, err = decimal.NewFromString(standard); err != nil {
			return err
		}
		if a.Low, err = core.ParseOptionalAmount(low.String); err != nil {
			return err
		}
		if a.High, err = core.ParseOptionalAmount(high.String); err != nil {
			return err
		}
		return st.InsertAmount(a)
	})
	if err != nil {
		return nil, fmt.Errorf("load amounts: %w", err)
	}

	err = r.scan(ctx, `SELECT id, active, name FROM expenses ORDER BY id`, func(rows *sql.Rows) error {
		var e store.Expense
		if err := rows.Scan(&e.ID, &e.Active, &e.Name); err != nil {
			return err
		}
		return st.InsertExpense(e)
	})
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	err = r.scan(ctx, `SELECT id, active, name FROM incomes ORDER BY id`, func(rows *sql.Rows) error {
		var i store.Income
		if err := rows.Scan(&i.ID, &i.Active, &i.Name); err != nil {
			return err
		}
		return st.InsertIncome(i)
	})
	if err != nil {
		return nil, fmt.Errorf("load incomes: %w", err)
	}

	err = r.scan(ctx, `SELECT id, completed_at, account_id, amount_id, expense_id FROM payments ORDER BY id`, func(rows *sql.Rows) error {
		var (
			p           store.Payment
			completedAt string
		)
		if err := rows.Scan(&p.ID, &completedAt, &p.AccountID, &p.AmountID, &p.ExpenseID); err != nil {
			return err
		}
		var err error
		if p.CompletedAt, err = core.ParseTimestamp(completedAt); err != nil {
			return err
		}
		return st.InsertPayment(p)
	})
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}

	err = r.scan(ctx, `SELECT id, completed_at, account_id, amount_id, income_id FROM payments_received ORDER BY id`, func(rows *sql.Rows) error {
		var (
			p           store.PaymentReceived
			completedAt string
		)
		if err := rows.Scan(&p.ID, &completedAt, &p.AccountID, &p.AmountID, &p.IncomeID); err != nil {
			return err
		}
		var err error
		if p.CompletedAt, err = core.ParseTimestamp(completedAt); err != nil {
			return err
		}
		return st.InsertPaymentReceived(p)
	})
	if err != nil {
		return nil, fmt.Errorf("load payments received: %w", err)
	}

	slog.InfoContext(ctx, "Store loaded from SQLite",
		"accounts", st.Accounts.Len(),
		"payments", st.Payments.Len(),
		"payments_received", st.PaymentsReceived.Len())
	return st, nil
}

// LatestRun returns the most recently saved run.
func (r *SQLiteRepository) LatestRun(ctx context.Context) (Run, error) {
	var (
		run     Run
		savedAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, saved_at, accounts, payments, payments_received FROM runs ORDER BY saved_at DESC, rowid DESC LIMIT 1`,
	).Scan(&run.ID, &savedAt, &run.Accounts, &run.Payments, &run.PaymentsReceived)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}
	if err != nil {
		return Run{}, fmt.Errorf("get latest run: %w", err)
	}
	if run.SavedAt, err = core.ParseTimestamp(savedAt); err != nil {
		return Run{}, fmt.Errorf("get latest run: %w", err)
	}
	return run, nil
}

func (r *SQLiteRepository) scan(ctx context.Context, query string, fn func(*sql.Rows) error) error {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func nullDecimal(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}
