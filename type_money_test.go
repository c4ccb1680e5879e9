package cryptotax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoney_Deduct(t *testing.T) {
	cash := NewCash("SEK", dec("-21000"))
	slice := cash.Deduct(dec("-105"))

	assert.True(t, slice.Equal(NewCash("SEK", dec("-105"))), "got %s", slice)
	assert.True(t, cash.Equal(NewCash("SEK", dec("-20895"))), "got %s", cash)

	coupon := NewCoupon("EOS", dec("-500"), "2021-02-03 10:30:29")
	slice = coupon.Deduct(dec("-125"))

	// The slice keeps the coupon's origination date.
	assert.True(t, slice.Equal(NewCoupon("EOS", dec("-125"), "2021-02-03 10:30:29")), "got %s", slice)
	assert.True(t, coupon.Equal(NewCoupon("EOS", dec("-375"), "2021-02-03 10:30:29")), "got %s", coupon)
}

func TestMoney_NetIncome(t *testing.T) {
	income := NewCash("SEK", dec("200.63"))

	net, ok := income.NetIncome([]Money{NewCash("SEK", dec("-105"))})
	assert.True(t, ok)
	assert.True(t, net.Equal(dec("95.63")), "got %s", net)

	// A coupon anywhere in the costs cannot be netted in the base currency.
	_, ok = income.NetIncome([]Money{
		NewCash("SEK", dec("-105")),
		NewCoupon("EOS", dec("-125"), "2021-02-03 10:30:29"),
	})
	assert.False(t, ok)

	// Neither can a coupon income.
	coupon := NewCoupon("BTC", dec("0.0000201"), "2022-07-06 06:02:13")
	_, ok = coupon.NetIncome([]Money{NewCash("SEK", dec("-105"))})
	assert.False(t, ok)

	// No costs at all still nets: the income stands alone.
	net, ok = income.NetIncome(nil)
	assert.True(t, ok)
	assert.True(t, net.Equal(dec("200.63")))
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "200.63", NewCash("SEK", dec("200.63")).String())
	assert.Equal(t, "(-0.000000505 BTC 2021-03-04 11:31:30)",
		NewCoupon("BTC", dec("-0.000000505"), "2021-03-04 11:31:30").String())
}
