package cryptotax

import "github.com/shopspring/decimal"

// deductor consumes lots from a CostBook during a sell. Category passes run
// in a strict sequence (see incomeOrder); within one pass, lots are scanned
// in reverse insertion order, so the most recently added lot of a category
// is drawn down first.
//
// Earlier passes may have mutated lots by the time a later pass detects a
// shortfall; there is no rollback. The fold driving the book treats that
// sell as failed and the caller decides whether to abort or skip.
type deductor struct {
	costs     *[]Cost
	remaining decimal.Decimal
	result    []Cost
}

func newDeductor(costs *[]Cost, paidAmount decimal.Decimal) *deductor {
	return &deductor{costs: costs, remaining: paidAmount}
}

// pass runs one category sweep, then drops lots consumed down to exactly
// zero.
func (d *deductor) pass(cat category) *deductor {
	if d.remaining.IsZero() {
		return d
	}
	lots := *d.costs
	for i := len(lots) - 1; i >= 0; i-- {
		if d.remaining.IsZero() {
			break
		}
		lot := &lots[i]
		if !lot.matches(cat) {
			continue
		}
		// Never request more than the lot holds. Both operands are
		// negative, so Max picks the one closer to zero.
		amount := decimal.Max(d.remaining, lot.paidAmount.Neg())
		deducted, ok := lot.maybeDeduct(amount)
		if !ok {
			continue
		}
		d.result = append(d.result, deducted)
		d.remaining = d.remaining.Sub(amount)
	}
	d.compact()
	return d
}

// compact removes exhausted lots, preserving insertion order.
func (d *deductor) compact() {
	kept := (*d.costs)[:0]
	for _, c := range *d.costs {
		if !c.paidAmount.IsZero() {
			kept = append(kept, c)
		}
	}
	*d.costs = kept
}

func (d *deductor) collect() []Cost {
	return d.result
}
