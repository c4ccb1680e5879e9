package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/oskarw/cryptotax"
	"github.com/oskarw/cryptotax/renderer"
	"github.com/oskarw/cryptotax/store"
)

// calculateCmd holds the flags for the 'calculate' subcommand.
type calculateCmd struct {
	file     string
	format   string
	currency string
	year     string
	csv      bool
	save     bool
	sum      bool
}

func (*calculateCmd) Name() string     { return "calculate" }
func (*calculateCmd) Synopsis() string { return "calculate taxable trades from a broker export" }
func (*calculateCmd) Usage() string {
	return `ctax calculate -f <file> [-format 2022|2023] [-c <currency>] [-y <year>] [-sum] [-csv] [-save]

  Folds the trade history through a cost book and reports one tax line per
  disposal. Without -c, every currency pair in the export is processed.

Usage Examples:
# Report all 2023 disposals from a 2023-format export.
$ ctax calculate -f export.csv -y 2023

# Export the DOGE lines of a 2022-format export as CSV.
$ ctax calculate -f export.csv -format 2022 -c DOGE -csv
`
}

func (c *calculateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "broker CSV export to read")
	f.StringVar(&c.format, "format", "2023", "export format (2022 or 2023)")
	f.StringVar(&c.currency, "c", "", "only this traded currency (default: all)")
	f.StringVar(&c.year, "y", "", "only disposals in this year")
	f.BoolVar(&c.sum, "sum", false, "merge lines per currency into one aggregate")
	f.BoolVar(&c.csv, "csv", false, "write CSV to stdout instead of a report")
	f.BoolVar(&c.save, "save", false, "persist the run in the audit store")
}

func (c *calculateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "-f <file> is required")
		return subcommands.ExitUsageError
	}
	cfg := loadConfig()

	lines, status := c.taxableTrades(cfg)
	if status != subcommands.ExitSuccess {
		return status
	}

	if c.save {
		if status := saveRun(ctx, cfg, c.file, lines); status != subcommands.ExitSuccess {
			return status
		}
	}

	if c.csv {
		if err := cryptotax.EncodeTaxableTrades(os.Stdout, lines); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.TaxableTradesMarkdown(lines))
	return subcommands.ExitSuccess
}

// taxableTrades runs the calculation pipeline: decode, fold, filter,
// optionally aggregate.
func (c *calculateCmd) taxableTrades(cfg *Config) ([]cryptotax.TaxableTrade, subcommands.ExitStatus) {
	trades, err := decodeTrades(c.file, c.format, c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", c.file, err)
		return nil, subcommands.ExitFailure
	}

	var lines []cryptotax.TaxableTrade
	if c.currency != "" {
		lines, err = cryptotax.TaxableTrades(trades, c.currency, cfg.BaseCurrency)
	} else {
		lines, err = cryptotax.AllCurrencies(trades)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error calculating taxable trades: %v\n", err)
		return nil, subcommands.ExitFailure
	}

	lines = cryptotax.FilterYear(lines, c.year)

	if c.sum {
		if lines, err = cryptotax.SumByCurrency(lines); err != nil {
			fmt.Fprintf(os.Stderr, "Error summing per currency: %v\n", err)
			return nil, subcommands.ExitFailure
		}
	}
	return lines, subcommands.ExitSuccess
}

// saveRun persists the tax lines in the audit store.
func saveRun(ctx context.Context, cfg *Config, source string, lines []cryptotax.TaxableTrade) subcommands.ExitStatus {
	s, err := store.Open(cfg.Storage.DSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store %q: %v\n", cfg.Storage.DSN, err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	id, err := s.SaveRun(ctx, source, cfg.BaseCurrency, lines)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving run: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Saved run %s\n", id)
	return subcommands.ExitSuccess
}
