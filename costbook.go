package cryptotax

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInsufficientCost is returned by AddSell when a sell requests more units
// than the book can supply after exhausting all matching categories.
var ErrInsufficientCost = errors.New("not enough costs to deduct from")

// CostBook is the ordered cost-lot ledger for one (tracked asset, base
// currency) pair. Lots are kept in chronological insertion order, newest
// last. There is at most one cash lot per vault flag (cash buys merge into
// a running weighted average); coupon lots never merge.
//
// A book is owned by the single fold replaying the trade history: it is not
// safe for concurrent use.
type CostBook struct {
	BaseCurrency string
	Currency     string
	costs        []Cost
}

// NewCostBook returns an empty book for the given pair.
func NewCostBook(currency, baseCurrency string) *CostBook {
	return &CostBook{BaseCurrency: baseCurrency, Currency: currency}
}

// Costs returns a copy of the remaining lots, in insertion order.
func (b *CostBook) Costs() []Cost {
	out := make([]Cost, len(b.costs))
	copy(out, b.costs)
	return out
}

// AddBuy records an acquisition. What was given up is classified against the
// base currency: cash merges into the cash lot for the trade's vault flag,
// a coupon always appends its own lot.
func (b *CostBook) AddBuy(trade Trade) {
	exchanged := trade.ToMoney(b.BaseCurrency)
	if exchanged.IsCash() {
		b.findAndAddCash(trade.IsVault, trade.PaidAmount, exchanged.Amount())
		return
	}
	b.costs = append(b.costs, newCost(trade.PaidAmount, exchanged, trade.IsVault))
}

// AddSell records a disposal: it consumes |trade.PaidAmount| units from the
// book's lots in priority order and assembles the resulting tax line. It
// fails with ErrInsufficientCost when the book cannot supply the full
// quantity.
func (b *CostBook) AddSell(trade Trade) (TaxableTrade, error) {
	income := trade.ToMoney(b.BaseCurrency)

	deducted, err := b.findAndDeduct(income, trade.PaidAmount)
	if err != nil {
		return TaxableTrade{}, err
	}
	costs := make([]Money, 0, len(deducted))
	for _, c := range deducted {
		costs = append(costs, c.exchanged)
	}

	return NewTaxableTrade(trade.Date, trade.PaidCurrency, trade.PaidAmount, income, costs), nil
}

func (b *CostBook) findAndAddCash(isVault bool, paidAmount, amount decimal.Decimal) {
	for i := range b.costs {
		c := &b.costs[i]
		if c.exchanged.IsCash() && c.isVault == isVault {
			c.addCash(paidAmount, amount)
			return
		}
	}
	b.costs = append(b.costs, newCost(paidAmount, NewCash(b.BaseCurrency, amount), isVault))
}

// findAndDeduct consumes paidAmount (negative) units across the four
// category passes picked by the income's kind: same-kind costs first for a
// cleaner one-to-one report, vault holdings strictly last.
func (b *CostBook) findAndDeduct(income Money, paidAmount decimal.Decimal) ([]Cost, error) {
	d := newDeductor(&b.costs, paidAmount)
	for _, cat := range incomeOrder(income) {
		d.pass(cat)
	}
	if !d.remaining.IsZero() {
		return nil, fmt.Errorf("selling %s %s: %w", paidAmount.Neg(), b.Currency, ErrInsufficientCost)
	}
	return d.collect(), nil
}
