package cryptotax

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eosHistory is the reconciled 2023-format history used across the fold
// tests: ordinary buys and sells on the current account, a block of vault
// (savings) buys, and a card payment that disposes of vault holdings once
// the ordinary ones are gone.
func eosHistory() []Trade {
	return []Trade{
		buy("EOS", "30", "SEK", "-609.15", "2023-01-01 10:00:00", false),
		sell("EOS", "-30", "SEK", "394.86", "2023-01-02 10:00:00"),
		buy("EOS", "50", "SEK", "-1009.65", "2023-02-01 12:00:00", false),
		buy("EOS", "20", "SEK", "-404.57", "2023-03-01 14:00:00", true),
		buy("EOS", "40", "SEK", "-809.15", "2023-03-02 14:00:00", true),
		buy("EOS", "60", "SEK", "-1213.73", "2023-03-03 14:00:00", true),
		buy("EOS", "80", "SEK", "-1618.31", "2023-03-04 14:00:00", true),
		sell("EOS", "-50", "SEK", "594.86", "2023-04-04 11:00:00"),
		sell("EOS", "-25", "SEK", "495.75", "2023-05-06 10:00:00"),
	}
}

func TestTaxableTrades(t *testing.T) {
	got, err := TaxableTrades(eosHistory(), "EOS", "SEK")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assertNet := func(tt TaxableTrade, want string) {
		t.Helper()
		net, ok := tt.NetIncome()
		require.True(t, ok)
		assert.True(t, net.Equal(dec(want)), "net = %s, want %s", net, want)
	}

	assert.Equal(t, "2023-01-02 10:00:00", got[0].Date)
	assert.True(t, got[0].Income.Equal(NewCash("SEK", dec("394.86"))))
	require.Len(t, got[0].Costs, 1)
	assert.True(t, got[0].Costs[0].Equal(NewCash("SEK", dec("-609.15"))))
	assertNet(got[0], "-214.29")

	assert.True(t, got[1].Income.Equal(NewCash("SEK", dec("594.86"))))
	require.Len(t, got[1].Costs, 1)
	assert.True(t, got[1].Costs[0].Equal(NewCash("SEK", dec("-1009.65"))))
	assertNet(got[1], "-414.79")

	// The card payment finds the ordinary lots exhausted and dips into the
	// merged vault lot: 25 of 200 units at 4045.76 total.
	assert.True(t, got[2].Income.Equal(NewCash("SEK", dec("495.75"))))
	require.Len(t, got[2].Costs, 1)
	assert.True(t, got[2].Costs[0].Equal(NewCash("SEK", dec("-505.72"))))
	assertNet(got[2], "-9.97")
}

func TestTaxableTrades_IgnoresOtherPairs(t *testing.T) {
	trades := append(eosHistory(),
		buy("DOGE", "2000", "SEK", "-5080.60", "2023-01-05 10:00:00", false))

	got, err := TaxableTrades(trades, "EOS", "SEK")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestTaxableTrades_PropagatesShortfall(t *testing.T) {
	trades := []Trade{
		buy("EOS", "10", "SEK", "-200", "2023-01-01 10:00:00", false),
		sell("EOS", "-30", "SEK", "394.86", "2023-01-02 10:00:00"),
	}
	_, err := TaxableTrades(trades, "EOS", "SEK")
	assert.ErrorIs(t, err, ErrInsufficientCost)
}

func TestAllCurrencies(t *testing.T) {
	trades := append(eosHistory(),
		buy("DOGE", "2000", "SEK", "-5080.60", "2023-01-05 10:00:00", false),
		sell("DOGE", "-1000", "SEK", "3000", "2023-06-01 10:00:00"),
	)

	got, err := AllCurrencies(trades)
	require.NoError(t, err)
	require.Len(t, got, 4)

	// Pair order is first appearance in the history: EOS/SEK then DOGE/SEK.
	assert.Equal(t, "EOS", got[0].Currency)
	assert.Equal(t, "DOGE", got[3].Currency)
	net, ok := got[3].NetIncome()
	require.True(t, ok)
	assert.True(t, net.Equal(dec("459.70")), "got %s", net)
}

func TestSumByCurrency(t *testing.T) {
	lines, err := TaxableTrades(eosHistory(), "EOS", "SEK")
	require.NoError(t, err)

	got, err := SumByCurrency(lines)
	require.NoError(t, err)
	require.Len(t, got, 1)

	sum := got[0]
	assert.Equal(t, "EOS", sum.Currency)
	assert.True(t, sum.Amount.Equal(dec("-105")))
	assert.True(t, sum.Income.Equal(NewCash("SEK", dec("1485.47"))))
	costs, ok := sum.SumCashCosts()
	require.True(t, ok)
	assert.True(t, costs.Equal(dec("-2124.52")), "got %s", costs)
	net, ok := sum.NetIncome()
	require.True(t, ok)
	assert.True(t, net.Equal(dec("-639.05")), "got %s", net)
}

func TestSumByCurrency_MixedCosts(t *testing.T) {
	line := NewTaxableTrade("2022-07-06 06:02:13", "DOGE", dec("-50"),
		NewCoupon("BTC", dec("0.0000201"), "2022-07-06 06:02:13"),
		[]Money{NewCoupon("BTC", dec("-0.000000505"), "2021-03-04 11:31:30")},
	)
	_, err := SumByCurrency([]TaxableTrade{line})
	assert.ErrorIs(t, err, ErrMixedCosts)
}

func TestFilterYear(t *testing.T) {
	lines, err := TaxableTrades(eosHistory(), "EOS", "SEK")
	require.NoError(t, err)

	assert.Len(t, FilterYear(lines, "2023"), 3)
	assert.Empty(t, FilterYear(lines, "2022"))
	assert.Len(t, FilterYear(lines, ""), 3)
}

func TestEncodeTaxableTrades(t *testing.T) {
	lines, err := TaxableTrades(eosHistory(), "EOS", "SEK")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeTaxableTrades(&buf, lines))

	out := buf.String()
	rows := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, rows, 4)
	assert.Equal(t, "Date;Currency;Amount;Income;Cost;Net Income", rows[0])
	assert.Equal(t, "2023-01-02 10:00:00;EOS;-30;394.86;-609.15;-214.29", rows[1])
}

func TestTaxableTrade_CostsString(t *testing.T) {
	mixed := NewTaxableTrade("2022-08-07 07:03:14", "DOGE", dec("-1250"),
		NewCoupon("BCH", dec("325"), "2022-08-07 07:03:14"),
		[]Money{
			NewCoupon("EOS", dec("-500"), "2021-02-03 10:30:29"),
			NewCash("SEK", dec("-210")),
		},
	)
	assert.Equal(t, "(-500 EOS 2021-02-03 10:30:29), -210", mixed.CostsString())

	allCash := NewTaxableTrade("2022-05-05 05:01:12", "DOGE", dec("-50"),
		NewCash("SEK", dec("200.63")),
		[]Money{NewCash("SEK", dec("-60")), NewCash("SEK", dec("-45"))},
	)
	assert.Equal(t, "-105", allCash.CostsString())
}
