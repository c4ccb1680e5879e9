package cryptotax

import "github.com/shopspring/decimal"

// Cost is one ledger lot: a quantity of the tracked asset still accounted
// for, paired with the Money given up to acquire it. The ratio
// exchanged.Amount()/paidAmount is the lot's constant per-unit cost and is
// preserved across partial consumption.
type Cost struct {
	paidAmount decimal.Decimal
	exchanged  Money
	isVault    bool
}

func newCost(paidAmount decimal.Decimal, exchanged Money, isVault bool) Cost {
	return Cost{paidAmount: paidAmount, exchanged: exchanged, isVault: isVault}
}

// PaidAmount returns the remaining quantity of the tracked asset this lot
// accounts for.
func (c Cost) PaidAmount() decimal.Decimal { return c.paidAmount }

// Exchanged returns the Money given up to acquire the remaining quantity.
func (c Cost) Exchanged() Money { return c.exchanged }

// IsVault reports whether the lot belongs to the segregated vault
// sub-account.
func (c Cost) IsVault() bool { return c.isVault }

// Equal reports whether two lots hold the same quantity, value and vault
// flag.
func (c Cost) Equal(d Cost) bool {
	return c.paidAmount.Equal(d.paidAmount) && c.exchanged.Equal(d.exchanged) &&
		c.isVault == d.isVault
}

// maybeDeduct redeems delta (negative) units of the tracked asset from the
// lot. It reports ok=false when the lot holds less than requested, leaving
// the lot untouched; the caller then tries another lot. On success the lot
// shrinks and the consumed slice comes back as a new Cost, valued at the
// lot's per-unit cost. The value is computed multiply-then-divide so no
// precision is lost in an intermediate quotient.
func (c *Cost) maybeDeduct(delta decimal.Decimal) (Cost, bool) {
	if c.paidAmount.IsZero() || c.paidAmount.Add(delta).IsNegative() {
		return Cost{}, false
	}
	slice := c.exchanged.Amount().Mul(delta.Abs()).Div(c.paidAmount)
	deducted := c.exchanged.Deduct(slice)
	c.paidAmount = c.paidAmount.Add(delta)
	return newCost(delta.Neg(), deducted, c.isVault), true
}

// addCash merges a cash buy into the lot by plain addition of both fields.
// The weighted-average unit cost needs no explicit averaging step: the ratio
// is derived, not stored.
func (c *Cost) addCash(paidAmount, amount decimal.Decimal) {
	if !c.exchanged.IsCash() {
		return
	}
	c.exchanged.amount = c.exchanged.amount.Add(amount)
	c.paidAmount = c.paidAmount.Add(paidAmount)
}

// category is one (money-kind, vault-flag) filter of the deduction ordering.
type category struct {
	cash  bool
	vault bool
}

func (c Cost) matches(cat category) bool {
	return c.exchanged.IsCash() == cat.cash && c.isVault == cat.vault
}

// Deduction ordering: prefer costs of the same money-kind as the disposal's
// income, and always exhaust ordinary holdings before touching the vault.
var (
	cashIncomeOrder = [4]category{
		{cash: true, vault: false},
		{cash: false, vault: false},
		{cash: true, vault: true},
		{cash: false, vault: true},
	}
	couponIncomeOrder = [4]category{
		{cash: false, vault: false},
		{cash: true, vault: false},
		{cash: false, vault: true},
		{cash: true, vault: true},
	}
)

func incomeOrder(income Money) [4]category {
	if income.IsCash() {
		return cashIncomeOrder
	}
	return couponIncomeOrder
}
