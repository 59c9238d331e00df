package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"ledgersim/internal/cli"
	"ledgersim/internal/storage"
)

type exportSQLiteCmd struct {
	in     string
	dbPath string
}

func (*exportSQLiteCmd) Name() string     { return "export-sqlite" }
func (*exportSQLiteCmd) Synopsis() string { return "copy the CSV ledger tables into a SQLite file" }
func (*exportSQLiteCmd) Usage() string {
	return `ledgersim export-sqlite [-in dir] -db path

  Reads the ledger tables under -in and saves them as a snapshot into the
  SQLite database at -db, creating and migrating it when needed.
`
}

func (c *exportSQLiteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in, "in", "", "tables directory (defaults to LEDGER_DATA_OUT)")
	f.StringVar(&c.dbPath, "db", "", "SQLite database path (defaults to SQLITE_DB_PATH)")
}

func (c *exportSQLiteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, logger, status := setup()
	if status != subcommands.ExitSuccess {
		return status
	}
	dbPath := orDefault(c.dbPath, cfg.SQLiteDBPath)
	if dbPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -db or SQLITE_DB_PATH is required")
		return subcommands.ExitUsageError
	}

	st, err := storage.ReadStore(ctx, orDefault(c.in, cfg.DataOut))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	repo, err := cli.OpenSQLite(logger, dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer repo.Close()

	runID := uuid.NewString()
	if err := repo.SaveStore(ctx, st, runID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Saved %d accounts and %d payments to %s (run %s)\n",
		st.Accounts.Len(), st.Payments.Len()+st.PaymentsReceived.Len(), dbPath, runID)
	return subcommands.ExitSuccess
}
