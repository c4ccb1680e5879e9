package cryptotax

import (
	"encoding/csv"
	"io"
)

// This file contains the CSV encoding of the engine's outputs. The files are
// semicolon-delimited so that amounts with comma decimal separators survive
// a spreadsheet round-trip. Values are written exactly as computed, no
// display rounding.

// EncodeTaxableTrades writes one CSV line per tax line. Costs collapse to a
// single total when they are all cash, otherwise each component is spelled
// out. Net Income stays empty while it cannot be resolved in the base
// currency.
func EncodeTaxableTrades(w io.Writer, trades []TaxableTrade) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write([]string{"Date", "Currency", "Amount", "Income", "Cost", "Net Income"}); err != nil {
		return err
	}
	for _, t := range trades {
		record := []string{
			t.Date,
			t.Currency,
			t.Amount.String(),
			t.Income.String(),
			t.CostsString(),
			t.NetIncomeString(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeTrades writes reconciled trades, mostly for inspection of what the
// readers produced.
func EncodeTrades(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write([]string{"Type", "Paid Currency", "Paid Amount", "Exchanged Currency", "Exchanged Amount", "Date", "Vault"}); err != nil {
		return err
	}
	for _, t := range trades {
		vault := "false"
		if t.IsVault {
			vault = "true"
		}
		record := []string{
			t.Direction.String(),
			t.PaidCurrency,
			t.PaidAmount.String(),
			t.ExchangedCurrency,
			t.ExchangedAmount.String(),
			t.Date,
			vault,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
