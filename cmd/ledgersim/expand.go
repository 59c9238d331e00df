package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"ledgersim/internal/simulation"
)

type expandCmd struct {
	start, end string
	events     string
}

func (*expandCmd) Name() string     { return "expand" }
func (*expandCmd) Synopsis() string { return "print the events a slice would replay" }
func (*expandCmd) Usage() string {
	return `ledgersim expand -start YYYY-MM -end YYYY-MM [-events dir]

  Expands recurring events, bins them with the one-off events and prints
  each month's bucket. No ledger table is read or written.
`
}

func (c *expandCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", "", "first month of the slice (YYYY-MM)")
	f.StringVar(&c.end, "end", "", "last month of the slice, inclusive (YYYY-MM)")
	f.StringVar(&c.events, "events", "", "event files directory (defaults to LEDGER_EVENTS_DIR)")
}

func (c *expandCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	slice, err := parseSlice(c.start, c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, _, status := setup()
	if status != subcommands.ExitSuccess {
		return status
	}

	bins, err := simulation.Expand(ctx, orDefault(c.events, cfg.EventsDir), slice)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printBins(os.Stdout, slice, bins, cfg.Currency)
	return subcommands.ExitSuccess
}
