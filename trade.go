package cryptotax

import "github.com/shopspring/decimal"

// Direction tells whether a trade acquired or disposed of the tracked asset.
type Direction int

const (
	Buy Direction = iota
	Sell
)

func (d Direction) String() string {
	switch d {
	case Buy:
		return "Buy"
	case Sell:
		return "Sell"
	default:
		return "unknown"
	}
}

// Trade is one reconciled buy or sell of the tracked asset, produced by an
// upstream reader (see the revolut subpackage). PaidAmount is the signed
// quantity of the tracked asset (positive on buy, negative on sell);
// ExchangedAmount is the signed value of the other side of the trade.
// Immutable once constructed.
type Trade struct {
	Direction         Direction
	PaidCurrency      string
	PaidAmount        decimal.Decimal
	ExchangedCurrency string
	ExchangedAmount   decimal.Decimal
	Date              string
	IsVault           bool
}

// ToMoney classifies the exchanged side of the trade against the base
// currency: cash when the trade settled directly in base, otherwise a coupon
// dated at the trade itself.
func (t Trade) ToMoney(base string) Money {
	if t.ExchangedCurrency == base {
		return NewCash(t.ExchangedCurrency, t.ExchangedAmount)
	}
	return NewCoupon(t.ExchangedCurrency, t.ExchangedAmount, t.Date)
}
