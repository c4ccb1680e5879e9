package revolut

import (
	"encoding/csv"
	"io"
)

// encodeRows writes 2022 rows back out, semicolon-delimited like the rest
// of the tool's CSV output.
func encodeRows(w io.Writer, rows []Row2022) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	header := []string{
		"Type", "Started Date", "Completed Date", "Description",
		"Amount", "Fee", "Currency", "Original Amount", "Original Currency",
		"Settled Amount", "Settled Currency", "State", "Balance",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Type,
			row.StartedDate,
			row.CompletedDate,
			row.Description,
			row.Amount.String(),
			row.Fee.String(),
			row.Currency,
			row.OriginalAmount.String(),
			row.OriginalCurrency,
			row.SettledAmount.String(),
			row.SettledCurrency,
			row.State,
			row.Balance,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
