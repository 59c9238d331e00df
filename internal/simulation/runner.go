// Package simulation runs a ledger simulation over a slice of months: it
// loads events and the entity store, replays each month in order and writes
// the resulting reports.
package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ledgersim/internal/amqp"
	"ledgersim/internal/calendar"
	"ledgersim/internal/core"
	"ledgersim/internal/events"
	"ledgersim/internal/ledger"
	"ledgersim/internal/log"
	"ledgersim/internal/storage"
	"ledgersim/internal/store"
)

// Publisher receives one notification per replayed month.
type Publisher interface {
	PublishMonthReplayed(ctx context.Context, msg *amqp.MonthReplayedMessage) error
}

// Snapshotter persists the final store of a run.
type Snapshotter interface {
	SaveStore(ctx context.Context, st *store.Store, runID string) error
}

type Options struct {
	DataIn        string
	DataOut       string
	EventsDir     string
	Slice         calendar.Slice
	Reapply       bool
	FixedFebruary bool

	// Optional
	Clock       ledger.Clock
	Publisher   Publisher
	Snapshotter Snapshotter
	Logger      *log.Logger
}

// Result is what a finished run produced.
type Result struct {
	RunID    string
	Months   []*ledger.MonthReport
	Balances []core.AccountBalanceLine
	Dropped  int
	Store    *store.Store
}

type Runner struct {
	opts   Options
	logger *log.Logger
}

func NewRunner(opts Options) (*Runner, error) {
	if err := opts.Slice.Validate(); err != nil {
		return nil, err
	}
	if opts.DataIn == "" || opts.DataOut == "" || opts.EventsDir == "" {
		return nil, fmt.Errorf("simulation needs input, output and events directories")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Config{Handler: slog.Default().Handler()})
	}
	return &Runner{opts: opts, logger: logger.WithComponent(log.ComponentSimulation)}, nil
}

// Run executes the whole simulation. Replay stops at the first month error
// or when ctx is cancelled; reports of completed months are already on disk.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	started := time.Now()
	runID := uuid.NewString()
	logger := r.logger.WithFields(log.NewFields().WithRunID(runID))
	logger.InfoContext(ctx, "Simulation starting",
		log.FieldSlice, r.opts.Slice.String(),
		log.FieldOperation, log.OpStartup)

	var (
		series []events.Recurring
		oneOff []events.Event
		st     *store.Store
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		series, err = loadRecurring(r.opts.EventsDir)
		return err
	})
	g.Go(func() error {
		var err error
		oneOff, err = loadOneOff(r.opts.EventsDir)
		return err
	})
	g.Go(func() error {
		var err error
		st, err = storage.ReadStore(gctx, r.opts.DataIn)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load inputs: %w", err)
	}

	bins, err := events.Bin(r.opts.Slice, series, oneOff)
	if err != nil {
		return nil, fmt.Errorf("bin events: %w", err)
	}
	logger.InfoContext(ctx, "Events binned",
		"recurring", len(series),
		"one_off", len(oneOff),
		"binned", bins.Len(),
		"dropped", bins.Dropped())

	if err := os.MkdirAll(r.opts.DataOut, 0o755); err != nil {
		return nil, fmt.Errorf("create output root: %w", err)
	}

	realizerOpts := []ledger.RealizerOption{ledger.WithReapply(r.opts.Reapply)}
	if r.opts.Clock != nil {
		realizerOpts = append(realizerOpts, ledger.WithClock(r.opts.Clock))
	}
	realizer := ledger.NewRealizer(st, realizerOpts...)

	res := &Result{RunID: runID, Dropped: bins.Dropped(), Store: st}
	for _, ym := range r.opts.Slice.Months() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		month := ledger.NewMonth(ym, ledger.WithFixedFebruary(r.opts.FixedFebruary))
		report, err := month.Run(ctx, realizer, bins.Month(ym))
		if err != nil {
			return nil, fmt.Errorf("replay %s: %w", ym, err)
		}
		if err := writeMonthReport(r.opts.DataOut, report); err != nil {
			return nil, fmt.Errorf("write %s reports: %w", ym, err)
		}
		res.Months = append(res.Months, report)
		r.publish(ctx, logger, runID, report)
	}

	if err := writeRunReports(ctx, r.opts.DataOut, st); err != nil {
		return nil, err
	}
	if r.opts.Snapshotter != nil {
		if err := r.opts.Snapshotter.SaveStore(ctx, st, runID); err != nil {
			return nil, fmt.Errorf("save snapshot: %w", err)
		}
	}

	res.Balances = st.LatestBalances()
	logger.InfoContext(ctx, "Simulation finished",
		"months", len(res.Months),
		"accounts", len(res.Balances),
		log.FieldDuration, time.Since(started).Milliseconds())
	return res, nil
}

func (r *Runner) publish(ctx context.Context, logger *log.Logger, runID string, report *ledger.MonthReport) {
	if r.opts.Publisher == nil {
		return
	}
	msg := amqp.NewMonthReplayedMessage(runID, report)
	if err := r.opts.Publisher.PublishMonthReplayed(ctx, msg); err != nil {
		logger.WarnContext(ctx, "Failed to publish month notification",
			log.NewFields().
				WithYearMonth(report.YearMonth).
				WithOperation(log.OpPublish).
				WithError(err).
				ToSlice()...)
	}
}

func writeMonthReport(dir string, report *ledger.MonthReport) error {
	ym := report.YearMonth
	if err := storage.WriteDisplays(storage.MonthPath(dir, ym, storage.MonthPayments), report.Payments); err != nil {
		return err
	}
	if err := storage.WriteDisplays(storage.MonthPath(dir, ym, storage.MonthPaymentsReceived), report.Receipts); err != nil {
		return err
	}
	if err := storage.WriteCategorySummaries(storage.MonthPath(dir, ym, storage.MonthExpenseSummary), report.ExpenseSummary); err != nil {
		return err
	}
	return storage.WriteCategorySummaries(storage.MonthPath(dir, ym, storage.MonthIncomeSummary), report.IncomeSummary)
}

func writeRunReports(ctx context.Context, dir string, st *store.Store) error {
	for _, id := range st.Accounts.IDs() {
		summary, err := st.AccountSummary(id)
		if err != nil {
			return fmt.Errorf("account %d summary: %w", id, err)
		}
		if err := storage.WriteAccountSummary(filepath.Join(dir, storage.AccountSummaryFile(id)), summary); err != nil {
			return err
		}
	}
	if err := storage.WriteCategorySummaries(filepath.Join(dir, storage.ExpenseSummaryFile), st.ExpenseSummary()); err != nil {
		return err
	}
	if err := storage.WriteCategorySummaries(filepath.Join(dir, storage.IncomeSummaryFile), st.IncomeSummary()); err != nil {
		return err
	}
	if err := storage.WriteStore(ctx, dir, st); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	return nil
}
