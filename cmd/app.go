// Package cmd implements the CLI application to calculate crypto capital
// gains from broker CSV exports.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/oskarw/cryptotax"
	"github.com/oskarw/cryptotax/revolut"
)

// Register the subcommands.
// A main package calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&exchangesCmd{}, "reading")
	c.Register(&tradesCmd{}, "reading")

	c.Register(&calculateCmd{}, "reporting")
	c.Register(&sruCmd{}, "reporting")
	c.Register(&historyCmd{}, "reporting")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "ctax.yaml", "Path to the configuration file")

// loadConfig loads the application configuration, falling back to defaults
// when no file exists.
func loadConfig() *Config {
	cfg, err := Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load config %q: %v, using defaults\n", *configFile, err)
		cfg = &Config{}
		setDefaults(cfg)
	}
	setupLogger(cfg.Log)
	return cfg
}

// decodeTrades reads a broker export and normalizes it to trades. The 2022
// format reconciles paired exchange rows and needs the traded currency; the
// 2023 format carries both legs on every row.
func decodeTrades(path, format, currency string) ([]cryptotax.Trade, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch format {
	case "2022":
		if currency == "" {
			return nil, fmt.Errorf("the 2022 format requires -c <currency>")
		}
		rows, err := revolut.ReadExchangesInCurrency2022(f, currency)
		if err != nil {
			return nil, err
		}
		return revolut.Trades2022(rows, currency), nil
	case "2023":
		return revolut.Trades2023(f)
	default:
		return nil, fmt.Errorf("unknown export format %q (want 2022 or 2023)", format)
	}
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
