package cryptotax

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a tagged value: either an amount of the base (reporting) currency
// ("cash"), or an amount of another asset ("coupon") whose base-currency
// value stays unresolved until that asset is itself disposed of for cash.
//
// Amounts are signed: negative means value paid out (a cost), positive means
// value received (income).
type Money struct {
	kind     moneyKind
	currency string
	amount   decimal.Decimal
	date     string // coupon only: date of the trade that created it
}

type moneyKind int

const (
	cashKind moneyKind = iota
	couponKind
)

// NewCash returns a Money denominated in the base currency.
func NewCash(currency string, amount decimal.Decimal) Money {
	return Money{kind: cashKind, currency: currency, amount: amount}
}

// NewCoupon returns a Money denominated in a non-base asset. A coupon always
// carries the date of the transaction that created it.
func NewCoupon(currency string, amount decimal.Decimal, date string) Money {
	return Money{kind: couponKind, currency: currency, amount: amount, date: date}
}

// IsCash reports whether m is denominated in the base currency.
func (m Money) IsCash() bool { return m.kind == cashKind }

// Currency returns the currency code of m.
func (m Money) Currency() string { return m.currency }

// Amount returns the signed scalar amount, regardless of kind.
func (m Money) Amount() decimal.Decimal { return m.amount }

// Date returns the origination date of a coupon, or "" for cash.
func (m Money) Date() string { return m.date }

// Equal reports whether two Money values are the same kind, currency, amount
// and (for coupons) date.
func (m Money) Equal(n Money) bool {
	return m.kind == n.kind && m.currency == n.currency &&
		m.amount.Equal(n.amount) && m.date == n.date
}

// Deduct subtracts amount from m and returns a new Money of the same kind
// (and, for a coupon, the same date) holding exactly the deducted slice.
func (m *Money) Deduct(amount decimal.Decimal) Money {
	m.amount = m.amount.Sub(amount)
	deducted := *m
	deducted.amount = amount
	return deducted
}

// NetIncome nets the income m against the given costs in the base currency.
// It reports ok only when m and every cost are cash; a mixed cash/coupon
// composition cannot be netted yet and is resolved at the coupon's own later
// disposal.
func (m Money) NetIncome(costs []Money) (decimal.Decimal, bool) {
	if !m.IsCash() {
		return decimal.Decimal{}, false
	}
	sum := m.amount
	for _, c := range costs {
		if !c.IsCash() {
			return decimal.Decimal{}, false
		}
		sum = sum.Add(c.amount)
	}
	return sum, true
}

// String returns the exact representation used in CSV exports: the bare
// amount for cash, "(amount currency date)" for a coupon.
func (m Money) String() string {
	if m.IsCash() {
		return m.amount.String()
	}
	return fmt.Sprintf("(%s %s %s)", m.amount, m.currency, m.date)
}

// moneyJSON is the stored form of a Money. The kind tag keeps cash and
// coupons apart even when a coupon has no date.
type moneyJSON struct {
	Kind     string          `json:"kind"`
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	j := moneyJSON{Kind: "cash", Currency: m.currency, Amount: m.amount}
	if m.kind == couponKind {
		j.Kind = "coupon"
		j.Date = m.date
	}
	return json.Marshal(j)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Money) UnmarshalJSON(data []byte) error {
	var j moneyJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	switch j.Kind {
	case "cash":
		*m = NewCash(j.Currency, j.Amount)
	case "coupon":
		*m = NewCoupon(j.Currency, j.Amount, j.Date)
	default:
		return fmt.Errorf("money: unknown kind %q", j.Kind)
	}
	return nil
}

// Display returns a human-readable form for reports. Cash is formatted with
// the currency's own conventions; coupons keep the exact form since their
// base-currency value is not yet known.
func (m Money) Display() string {
	if !m.IsCash() {
		return m.String()
	}
	cur := *money.New(0, m.currency).Currency()
	return cur.Formatter().Format(m.amount.Shift(int32(cur.Fraction)).IntPart())
}
