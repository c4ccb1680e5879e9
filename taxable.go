package cryptotax

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrMixedCosts is returned when an aggregation needs every cost in the base
// currency but some cost is still a coupon.
var ErrMixedCosts = errors.New("all costs must be cash")

// TaxableTrade is the tax line of one sell event: the quantity disposed of,
// the income received, and the cost lots consumed. NetIncome resolves only
// when income and every cost are cash. Immutable once constructed.
type TaxableTrade struct {
	Date     string
	Currency string
	Amount   decimal.Decimal
	Income   Money
	Costs    []Money

	netIncome decimal.Decimal
	netOK     bool
}

// NewTaxableTrade assembles a tax line, netting income against costs when
// the whole composition is cash.
func NewTaxableTrade(date, currency string, amount decimal.Decimal, income Money, costs []Money) TaxableTrade {
	t := TaxableTrade{Date: date, Currency: currency, Amount: amount, Income: income, Costs: costs}
	t.netIncome, t.netOK = income.NetIncome(costs)
	return t
}

// NetIncome returns the net gain or loss in the base currency. ok is false
// for a mixed cash/coupon composition; that is expected, not an error, and
// resolves when the coupon is itself disposed of for cash.
func (t TaxableTrade) NetIncome() (decimal.Decimal, bool) {
	return t.netIncome, t.netOK
}

// SumCashCosts returns the total cost, only when every cost element is cash.
// Otherwise the report line must list each component individually.
func (t TaxableTrade) SumCashCosts() (decimal.Decimal, bool) {
	sum := decimal.Zero
	for _, c := range t.Costs {
		if !c.IsCash() {
			return decimal.Decimal{}, false
		}
		sum = sum.Add(c.Amount())
	}
	return sum, true
}

// CostsString renders the costs for a report: a single total when all cash,
// else each component spelled out.
func (t TaxableTrade) CostsString() string {
	if sum, ok := t.SumCashCosts(); ok {
		return sum.String()
	}
	parts := make([]string, 0, len(t.Costs))
	for _, c := range t.Costs {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, ", ")
}

// NetIncomeString renders the net income, or "" when unresolved.
func (t TaxableTrade) NetIncomeString() string {
	if !t.netOK {
		return ""
	}
	return t.netIncome.String()
}

// TaxableTrades folds the chronological trade history through one CostBook
// for the given (asset, base currency) pair. Trades on other pairs are
// ignored. Each buy mutates the book, each sell yields one TaxableTrade.
func TaxableTrades(trades []Trade, currency, baseCurrency string) ([]TaxableTrade, error) {
	book := NewCostBook(currency, baseCurrency)

	var out []TaxableTrade
	for _, trade := range trades {
		if trade.PaidCurrency != book.Currency || trade.ExchangedCurrency != book.BaseCurrency {
			continue
		}
		switch trade.Direction {
		case Buy:
			book.AddBuy(trade)
		case Sell:
			t, err := book.AddSell(trade)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
	}

	for _, c := range book.Costs() {
		slog.Debug("remaining cost",
			"currency", book.Currency,
			"paid_amount", c.PaidAmount(),
			"exchanged", c.Exchanged().String(),
			"vault", c.IsVault())
	}
	return out, nil
}

// AllCurrencies runs one independent CostBook per unique (paid, exchanged)
// currency pair found in the history and concatenates the resulting tax
// lines, in first-appearance order of the pairs.
func AllCurrencies(trades []Trade) ([]TaxableTrade, error) {
	type pair struct{ paid, exchanged string }
	seen := make(map[pair]bool)
	var pairs []pair
	for _, t := range trades {
		p := pair{t.PaidCurrency, t.ExchangedCurrency}
		if !seen[p] {
			seen[p] = true
			pairs = append(pairs, p)
		}
	}

	var out []TaxableTrade
	for _, p := range pairs {
		lines, err := TaxableTrades(trades, p.paid, p.exchanged)
		if err != nil {
			return nil, err
		}
		out = append(out, lines...)
	}
	return out, nil
}

// SumByCurrency merges all tax lines sharing a currency into one aggregate
// line with summed amount, income and cost and a recomputed net. It fails
// with ErrMixedCosts unless every contributing line's costs are all cash.
// Aggregates come out in first-appearance order of their currency.
func SumByCurrency(trades []TaxableTrade) ([]TaxableTrade, error) {
	type totals struct {
		amount, income, costs decimal.Decimal
		incomeCurrency        string
	}
	acc := make(map[string]*totals)
	var order []string

	for _, t := range trades {
		costs, ok := t.SumCashCosts()
		if !ok {
			return nil, ErrMixedCosts
		}
		s := acc[t.Currency]
		if s == nil {
			s = &totals{incomeCurrency: t.Income.Currency()}
			acc[t.Currency] = s
			order = append(order, t.Currency)
		}
		s.amount = s.amount.Add(t.Amount)
		s.income = s.income.Add(t.Income.Amount())
		s.costs = s.costs.Add(costs)
	}

	out := make([]TaxableTrade, 0, len(order))
	for _, currency := range order {
		s := acc[currency]
		out = append(out, NewTaxableTrade(
			"",
			currency,
			s.amount,
			NewCash(s.incomeCurrency, s.income),
			[]Money{NewCash(s.incomeCurrency, s.costs)},
		))
	}
	return out, nil
}

// FilterYear keeps the tax lines whose date falls in the given trading year.
// Dates are the broker's "2006-01-02 15:04:05" strings, so a prefix match is
// enough.
func FilterYear(trades []TaxableTrade, year string) []TaxableTrade {
	if year == "" {
		return trades
	}
	var out []TaxableTrade
	for _, t := range trades {
		if strings.HasPrefix(t.Date, year) {
			out = append(out, t)
		}
	}
	return out
}
