package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/oskarw/cryptotax"
	"github.com/oskarw/cryptotax/skatteverket"
)

// sruCmd holds the flags for the 'sru' subcommand.
type sruCmd struct {
	calculate calculateCmd
	out       string
}

func (*sruCmd) Name() string     { return "sru" }
func (*sruCmd) Synopsis() string { return "generate a K4 SRU file for Skatteverket" }
func (*sruCmd) Usage() string {
	return `ctax sru -f <file> [-format 2022|2023] [-y <year>] [-o <output>]

  Calculates taxable trades, sums them per currency, and writes the result
  as K4 form blocks in the SRU transfer format. The filer's organisation
  number and name come from the configuration (filing.org_num, filing.name).
`
}

func (c *sruCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.calculate.file, "f", "", "broker CSV export to read")
	f.StringVar(&c.calculate.format, "format", "2023", "export format (2022 or 2023)")
	f.StringVar(&c.calculate.currency, "c", "", "only this traded currency (default: all)")
	f.StringVar(&c.calculate.year, "y", "", "only disposals in this year")
	f.StringVar(&c.out, "o", "", "output file (default: stdout)")
}

func (c *sruCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.calculate.file == "" {
		fmt.Fprintln(os.Stderr, "-f <file> is required")
		return subcommands.ExitUsageError
	}
	cfg := loadConfig()
	if cfg.Filing.OrgNum == "" {
		fmt.Fprintln(os.Stderr, "filing.org_num must be configured to generate an SRU file")
		return subcommands.ExitUsageError
	}

	lines, status := c.calculate.taxableTrades(cfg)
	if status != subcommands.ExitSuccess {
		return status
	}
	sums, err := cryptotax.SumByCurrency(lines)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error summing per currency: %v\n", err)
		return subcommands.ExitFailure
	}

	sru, err := skatteverket.NewSruFile(sums, cfg.Filing.OrgNum, cfg.Filing.Name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building SRU file: %v\n", err)
		return subcommands.ExitFailure
	}

	out := os.Stdout
	if c.out != "" {
		out, err = os.Create(c.out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.out, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
	}
	if err := sru.Write(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing SRU file: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
