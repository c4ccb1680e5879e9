package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/olekukonko/tablewriter"

	"github.com/oskarw/cryptotax/renderer"
	"github.com/oskarw/cryptotax/store"
)

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	run string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list stored calculation runs" }
func (*historyCmd) Usage() string {
	return `ctax history [-run <id>]

  Lists the runs saved with 'calculate -save'. With -run, shows the tax
  lines of that run instead.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.run, "run", "", "show the tax lines of this run")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := loadConfig()

	s, err := store.Open(cfg.Storage.DSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store %q: %v\n", cfg.Storage.DSN, err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if c.run != "" {
		lines, err := s.RunTrades(ctx, c.run)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading run %q: %v\n", c.run, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.TaxableTradesMarkdown(lines))
		return subcommands.ExitSuccess
	}

	runs, err := s.Runs(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing runs: %v\n", err)
		return subcommands.ExitFailure
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Created", "Source", "Base", "Lines")
	for _, r := range runs {
		table.Append(r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Source, r.BaseCurrency, fmt.Sprintf("%d", r.Lines))
	}
	table.Render()
	return subcommands.ExitSuccess
}
