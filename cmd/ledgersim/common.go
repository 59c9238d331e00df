package main

import (
	"fmt"
	"os"

	"github.com/google/subcommands"

	"ledgersim/internal/calendar"
	"ledgersim/internal/cli"
	"ledgersim/internal/config"
	"ledgersim/internal/log"
)

// setup loads and validates the environment configuration and installs the
// process logger. A non-success status means the command must stop.
func setup() (*config.Config, *log.Logger, subcommands.ExitStatus) {
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, nil, subcommands.ExitUsageError
	}
	return cfg, cli.SetupLogger(cfg.LogLevel, log.ComponentApp), subcommands.ExitSuccess
}

func parseSlice(start, end string) (calendar.Slice, error) {
	if start == "" || end == "" {
		return calendar.Slice{}, fmt.Errorf("both -start and -end are required (YYYY-MM)")
	}
	s, err := calendar.ParseYearMonth(start)
	if err != nil {
		return calendar.Slice{}, fmt.Errorf("-start: %w", err)
	}
	e, err := calendar.ParseYearMonth(end)
	if err != nil {
		return calendar.Slice{}, fmt.Errorf("-end: %w", err)
	}
	return calendar.NewSlice(s, e)
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
