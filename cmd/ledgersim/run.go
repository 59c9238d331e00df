package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"ledgersim/internal/amqp"
	"ledgersim/internal/cli"
	"ledgersim/internal/log"
	"ledgersim/internal/simulation"
)

type runCmd struct {
	start, end    string
	in, out       string
	events        string
	sqlitePath    string
	reapply       bool
	fixedFebruary bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "replay every month of a slice and write the reports" }
func (*runCmd) Usage() string {
	return `ledgersim run -start YYYY-MM -end YYYY-MM [-in dir] [-out dir] [-events dir] [-sqlite path]

  Loads the ledger tables from -in and the event files from -events, replays
  each month of the slice in order and writes month reports, account
  summaries and the final tables to -out.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", "", "first month of the slice (YYYY-MM)")
	f.StringVar(&c.end, "end", "", "last month of the slice, inclusive (YYYY-MM)")
	f.StringVar(&c.in, "in", "", "input tables directory (defaults to LEDGER_DATA_IN)")
	f.StringVar(&c.out, "out", "", "output directory (defaults to LEDGER_DATA_OUT)")
	f.StringVar(&c.events, "events", "", "event files directory (defaults to LEDGER_EVENTS_DIR)")
	f.StringVar(&c.sqlitePath, "sqlite", "", "also save the final store into this SQLite file (defaults to SQLITE_DB_PATH)")
	f.BoolVar(&c.reapply, "reapply", false, "commit composites again when realized twice")
	f.BoolVar(&c.fixedFebruary, "fixed-february", false, "always construct 28 days for February")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	slice, err := parseSlice(c.start, c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, logger, status := setup()
	if status != subcommands.ExitSuccess {
		return status
	}

	opts := simulation.Options{
		DataIn:        orDefault(c.in, cfg.DataIn),
		DataOut:       orDefault(c.out, cfg.DataOut),
		EventsDir:     orDefault(c.events, cfg.EventsDir),
		Slice:         slice,
		Reapply:       c.reapply || cfg.Reapply,
		FixedFebruary: c.fixedFebruary || cfg.FixedFebruary,
		Logger:        logger,
	}

	if dbPath := orDefault(c.sqlitePath, cfg.SQLiteDBPath); dbPath != "" {
		repo, err := cli.OpenSQLite(logger, dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		defer repo.Close()
		opts.Snapshotter = repo
	}

	if cfg.AMQPEnabled() {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.WarnContext(ctx, "Month notifications disabled",
				log.NewFields().WithOperation(log.OpStartup).WithError(err).ToSlice()...)
		} else {
			defer client.Close()
			opts.Publisher = client
		}
	}

	runner, err := simulation.NewRunner(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	res, err := runner.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printRunSummary(os.Stdout, res, cfg.Currency)
	return subcommands.ExitSuccess
}
