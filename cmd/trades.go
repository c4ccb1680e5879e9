package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/oskarw/cryptotax"
)

// tradesCmd holds the flags for the 'trades' subcommand.
type tradesCmd struct {
	file     string
	format   string
	currency string
}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "normalize a broker export to trades" }
func (*tradesCmd) Usage() string {
	return `ctax trades -f <file> [-format 2022|2023] [-c <currency>]

  Reads a broker export and prints the normalized trades in chronological
  order. The 2022 format pairs exchange rows and requires -c.
`
}

func (c *tradesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "broker CSV export to read")
	f.StringVar(&c.format, "format", "2023", "export format (2022 or 2023)")
	f.StringVar(&c.currency, "c", "", "traded currency, required for the 2022 format")
}

func (c *tradesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "-f <file> is required")
		return subcommands.ExitUsageError
	}
	loadConfig()

	trades, err := decodeTrades(c.file, c.format, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}

	if err := cryptotax.EncodeTrades(os.Stdout, trades); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing trades: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
