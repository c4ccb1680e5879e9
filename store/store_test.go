package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oskarw/cryptotax"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleLines() []cryptotax.TaxableTrade {
	return []cryptotax.TaxableTrade{
		cryptotax.NewTaxableTrade("2023-01-02 10:00:00", "EOS", dec("-30"),
			cryptotax.NewCash("SEK", dec("394.86")),
			[]cryptotax.Money{cryptotax.NewCash("SEK", dec("-609.15"))},
		),
		cryptotax.NewTaxableTrade("2023-04-04 11:00:00", "DOGE", dec("-50"),
			cryptotax.NewCoupon("BTC", dec("0.0000201"), "2023-04-04 11:00:00"),
			[]cryptotax.Money{
				cryptotax.NewCoupon("EOS", dec("-500"), "2023-02-03 10:30:29"),
				cryptotax.NewCash("SEK", dec("-210")),
			},
		),
	}
}

func TestSaveRun_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveRun(ctx, "export.csv", "SEK", sampleLines())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.RunTrades(ctx, id)
	require.NoError(t, err)
	require.Len(t, got, 2)

	want := sampleLines()
	for i := range want {
		assert.Equal(t, want[i].Date, got[i].Date)
		assert.Equal(t, want[i].Currency, got[i].Currency)
		assert.True(t, got[i].Amount.Equal(want[i].Amount))
		assert.True(t, got[i].Income.Equal(want[i].Income))
		require.Len(t, got[i].Costs, len(want[i].Costs))
		for j := range want[i].Costs {
			assert.True(t, got[i].Costs[j].Equal(want[i].Costs[j]))
		}
	}

	// Nets are recomputed on load.
	net, ok := got[0].NetIncome()
	require.True(t, ok)
	assert.True(t, net.Equal(dec("-214.29")))
	_, ok = got[1].NetIncome()
	assert.False(t, ok)
}

func TestRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.SaveRun(ctx, "2022.csv", "SEK", sampleLines())
	require.NoError(t, err)
	second, err := s.SaveRun(ctx, "2023.csv", "SEK", sampleLines()[:1])
	require.NoError(t, err)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	byID := map[string]Run{}
	for _, r := range runs {
		assert.Equal(t, "SEK", r.BaseCurrency)
		assert.False(t, r.CreatedAt.IsZero())
		byID[r.ID] = r
	}
	assert.Equal(t, "2022.csv", byID[first].Source)
	assert.Equal(t, "2023.csv", byID[second].Source)
	assert.Equal(t, 2, byID[first].Lines)
	assert.Equal(t, 1, byID[second].Lines)
}

func TestRunTrades_UnknownRun(t *testing.T) {
	s := openTestStore(t)

	lines, err := s.RunTrades(context.Background(), "no-such-run")
	require.NoError(t, err)
	assert.Empty(t, lines)
}
