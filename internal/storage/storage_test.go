package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgersim/internal/calendar"
	"ledgersim/internal/core"
	"ledgersim/internal/store"
)

func sampleStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New()
	piggy := st.CreateAccount("piggybank")
	checking := st.CreateAccount("checking, joint")
	st.CreateAccountBalance(piggy.ID, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), decimal.RequireFromString("100.50"))
	low := decimal.RequireFromString("15")
	food := st.CreateAmount(decimal.RequireFromString("20.25"), &low, nil)
	salary := st.CreateAmount(decimal.RequireFromString("1500"), nil, nil)
	dog := st.CreateExpense("dog food", true)
	job := st.CreateIncome("salary", false)
	st.CreatePayment(time.Date(2023, time.January, 5, 12, 0, 0, 0, time.UTC), piggy.ID, food.ID, dog.ID)
	st.CreatePaymentReceived(time.Date(2023, time.January, 28, 12, 0, 0, 0, time.UTC), checking.ID, salary.ID, job.ID)
	st.CreateAccountBalance(checking.ID, time.Date(2023, time.January, 28, 12, 0, 0, 0, time.UTC), decimal.RequireFromString("1500"))
	return st
}

func readDir(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		out[e.Name()] = string(b)
	}
	return out
}

func TestCSVRoundTripIsByteIdentical(t *testing.T) {
	ctx := context.Background()
	first := t.TempDir()
	second := t.TempDir()

	require.NoError(t, WriteStore(ctx, first, sampleStore(t)))
	loaded, err := ReadStore(ctx, first)
	require.NoError(t, err)
	require.NoError(t, WriteStore(ctx, second, loaded))

	want := readDir(t, first)
	assert.Len(t, want, 7)
	assert.Equal(t, want, readDir(t, second))
}

func TestCSVLayout(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteStore(context.Background(), dir, sampleStore(t)))
	files := readDir(t, dir)

	assert.Equal(t, "id,name\n1,piggybank\n2,\"checking, joint\"\n", files[AccountsFile])
	assert.Equal(t, "id,standard,low,high\n1,20.25,15,\n2,1500,,\n", files[AmountsFile])
	assert.Equal(t, "id,active,name\n1,true,dog food\n", files[ExpensesFile])
	assert.Equal(t, "id,completed_at,account_id,amount_id,expense_id\n1,2023-01-05T12:00:00,1,1,1\n", files[PaymentsFile])
}

func TestReadStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing root", func(t *testing.T) {
		_, err := ReadStore(ctx, filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("missing tables are empty", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, AccountsFile), []byte("id,name\n3,wallet\n"), 0o644))
		st, err := ReadStore(ctx, dir)
		require.NoError(t, err)
		assert.Equal(t, 1, st.Accounts.Len())
		assert.Equal(t, 0, st.Payments.Len())
		assert.Equal(t, 4, st.Accounts.NextID())
	})

	t.Run("bad header", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, AccountsFile), []byte("name,id\nwallet,1\n"), 0o644))
		_, err := ReadStore(ctx, dir)
		assert.ErrorIs(t, err, ErrBadHeader)
	})

	t.Run("bad amount", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, AmountsFile), []byte("id,standard,low,high\n1,lots,,\n"), 0o644))
		_, err := ReadStore(ctx, dir)
		assert.ErrorIs(t, err, core.ErrInvalidAmount)
	})

	t.Run("duplicate id", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, AccountsFile), []byte("id,name\n1,a\n1,b\n"), 0o644))
		_, err := ReadStore(ctx, dir)
		assert.ErrorIs(t, err, store.ErrDuplicateID)
	})
}

func TestReports(t *testing.T) {
	dir := t.TempDir()
	ym := calendar.NewYearMonth(2023, time.June)
	assert.Equal(t, "2023_06_all_payments.csv", MonthFile(ym, MonthPayments))
	assert.Equal(t, "account_7_summary.csv", AccountSummaryFile(7))

	prev := decimal.RequireFromString("0")
	ending := decimal.RequireFromString("-0.01")
	path := MonthPath(dir, ym, MonthPayments)
	require.NoError(t, WriteDisplays(path, []core.PaymentDisplay{{
		ID:            1,
		Name:          "coffee",
		Amount:        decimal.RequireFromString("0.01"),
		AccountName:   "New Bank",
		CompletedAt:   time.Date(2023, time.June, 4, 12, 0, 1, 0, time.UTC),
		PrevBalance:   &prev,
		EndingBalance: &ending,
	}}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,name,amount,account_name,completed_at,prev_balance,ending_balance\n1,coffee,0.01,New Bank,2023-06-04T12:00:01,0,-0.01\n", string(b))

	summary := filepath.Join(dir, ExpenseSummaryFile)
	require.NoError(t, WriteCategorySummaries(summary, []core.CategorySummary{{ID: 2, Name: "rent", Total: decimal.RequireFromString("900")}}))
	b, err = os.ReadFile(summary)
	require.NoError(t, err)
	assert.Equal(t, "id,name,total\n2,rent,900\n", string(b))
}

func TestSQLiteSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "db", "ledger.db"))
	require.NoError(t, err)
	defer repo.Close()

	_, err = repo.LatestRun(ctx)
	assert.ErrorIs(t, err, ErrNoRuns)

	original := sampleStore(t)
	require.NoError(t, repo.SaveStore(ctx, original, "run-1"))
	// A second save replaces the snapshot instead of duplicating rows.
	require.NoError(t, repo.SaveStore(ctx, original, "run-2"))

	loaded, err := repo.LoadStore(ctx)
	require.NoError(t, err)

	want := t.TempDir()
	got := t.TempDir()
	require.NoError(t, WriteStore(ctx, want, original))
	require.NoError(t, WriteStore(ctx, got, loaded))
	assert.Equal(t, readDir(t, want), readDir(t, got))

	run, err := repo.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-2", run.ID)
	assert.Equal(t, 2, run.Accounts)
	assert.Equal(t, 1, run.Payments)
}
