package cryptotax

import "github.com/shopspring/decimal"

// dec parses an exact decimal literal, panicking on typos in the test data.
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func buy(currency, paidAmount, exchangedCurrency, exchangedAmount, date string, vault bool) Trade {
	return Trade{
		Direction:         Buy,
		PaidCurrency:      currency,
		PaidAmount:        dec(paidAmount),
		ExchangedCurrency: exchangedCurrency,
		ExchangedAmount:   dec(exchangedAmount),
		Date:              date,
		IsVault:           vault,
	}
}

func sell(currency, paidAmount, exchangedCurrency, exchangedAmount, date string) Trade {
	return Trade{
		Direction:         Sell,
		PaidCurrency:      currency,
		PaidAmount:        dec(paidAmount),
		ExchangedCurrency: exchangedCurrency,
		ExchangedAmount:   dec(exchangedAmount),
		Date:              date,
	}
}
