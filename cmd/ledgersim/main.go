// Command ledgersim replays recurring and one-off payments over a range of
// months against a CSV ledger.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"ledgersim/internal/cli"
)

func main() {
	cli.LoadEnvFile()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&runCmd{}, "simulation")
	commander.Register(&expandCmd{}, "simulation")
	commander.Register(&exportSQLiteCmd{}, "storage")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
