package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/oskarw/cryptotax/revolut"
)

// exchangesCmd holds the flags for the 'exchanges' subcommand.
type exchangesCmd struct {
	file     string
	currency string
}

func (*exchangesCmd) Name() string     { return "exchanges" }
func (*exchangesCmd) Synopsis() string { return "list the exchange rows of a 2022-format export" }
func (*exchangesCmd) Usage() string {
	return `ctax exchanges -f <file> [-c <currency>]

  Reads a 2022-format broker export and prints the completed exchange and
  card payment rows, optionally filtered to those involving one currency.
`
}

func (c *exchangesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "broker CSV export to read")
	f.StringVar(&c.currency, "c", "", "only rows involving this currency")
}

func (c *exchangesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "-f <file> is required")
		return subcommands.ExitUsageError
	}
	loadConfig()

	in, err := os.Open(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	var rows []revolut.Row2022
	if c.currency != "" {
		rows, err = revolut.ReadExchangesInCurrency2022(in, c.currency)
	} else {
		rows, err = revolut.ReadExchanges2022(in)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}

	if err := revolut.EncodeRows2022(os.Stdout, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing rows: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
