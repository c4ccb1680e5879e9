// Package renderer turns tax lines into markdown reports for terminal or
// file output.
package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"

	"github.com/oskarw/cryptotax"
)

// TaxableTradesMarkdown renders one row per disposal, followed by a
// per-currency summary when every line resolves to cash. Mixed lines leave
// the summary out rather than failing the report.
func TaxableTradesMarkdown(lines []cryptotax.TaxableTrade) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Tax Report")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Currency", "Amount", "Income", "Cost", "Net Income"},
	}
	for _, line := range lines {
		table.Rows = append(table.Rows, []string{
			line.Date,
			line.Currency,
			line.Amount.String(),
			line.Income.Display(),
			line.CostsString(),
			line.NetIncomeString(),
		})
	}
	doc.Table(table)

	if sums, err := cryptotax.SumByCurrency(lines); err == nil && len(sums) > 0 {
		doc.H2("Summary by Currency")
		summary := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Currency", "Amount", "Income", "Cost", "Net Income"},
		}
		for _, s := range sums {
			summary.Rows = append(summary.Rows, []string{
				s.Currency,
				s.Amount.String(),
				s.Income.Display(),
				s.CostsString(),
				s.NetIncomeString(),
			})
		}
		doc.Table(summary)
	}

	return doc.String()
}
