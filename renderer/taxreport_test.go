package renderer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/oskarw/cryptotax"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTaxableTradesMarkdown(t *testing.T) {
	lines := []cryptotax.TaxableTrade{
		cryptotax.NewTaxableTrade("2023-01-02 10:00:00", "EOS", dec("-30"),
			cryptotax.NewCash("SEK", dec("394.86")),
			[]cryptotax.Money{cryptotax.NewCash("SEK", dec("-609.15"))},
		),
	}

	out := TaxableTradesMarkdown(lines)

	assert.True(t, strings.HasPrefix(out, "# Tax Report"))
	assert.Contains(t, out, "| Date ")
	assert.Contains(t, out, "2023-01-02 10:00:00")
	assert.Contains(t, out, "EOS")
	assert.Contains(t, out, "-214.29")
	assert.Contains(t, out, "## Summary by Currency")
}

func TestTaxableTradesMarkdown_MixedCostsSkipSummary(t *testing.T) {
	lines := []cryptotax.TaxableTrade{
		cryptotax.NewTaxableTrade("2022-07-06 06:02:13", "DOGE", dec("-50"),
			cryptotax.NewCoupon("BTC", dec("0.0000201"), "2022-07-06 06:02:13"),
			[]cryptotax.Money{cryptotax.NewCoupon("EOS", dec("-500"), "2021-02-03 10:30:29")},
		),
	}

	out := TaxableTradesMarkdown(lines)

	assert.Contains(t, out, "(-500 EOS 2021-02-03 10:30:29)")
	assert.NotContains(t, out, "## Summary by Currency")
}
