package revolut

import (
	"io"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/oskarw/cryptotax"
)

// Row types and products as they appear in the 2023 export.
const (
	typeExchange2023    = "EXCHANGE"
	typeCardPayment2023 = "CARD_PAYMENT"
	productSavings2023  = "Savings"
)

// Row2023 is one line of the 2023 export. Unlike 2022, each row carries its
// own fiat legs, so no pairing is needed, and holdings are split across
// Current and Savings products.
type Row2023 struct {
	Type              string
	Product           string
	StartedDate       string
	CompletedDate     string
	Description       string
	Amount            decimal.Decimal
	Currency          string
	FiatAmount        decimal.Decimal
	FiatAmountIncFees decimal.Decimal
	Fee               decimal.Decimal
	BaseCurrency      string
	State             string
	Balance           string
}

func parse2023(r io.Reader) ([]Row2023, error) {
	index, records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	var rows []Row2023
	for _, record := range records {
		amount, err := decField(index, record, "Amount")
		if err != nil {
			continue
		}
		fiatIncFees, err := decField(index, record, "Fiat amount (inc. fees)")
		if err != nil {
			continue
		}
		row := Row2023{
			Type:              field(index, record, "Type"),
			Product:           field(index, record, "Product"),
			StartedDate:       field(index, record, "Started Date"),
			CompletedDate:     field(index, record, "Completed Date"),
			Description:       field(index, record, "Description"),
			Amount:            amount,
			Currency:          field(index, record, "Currency"),
			FiatAmountIncFees: fiatIncFees,
			BaseCurrency:      field(index, record, "Base currency"),
			State:             field(index, record, "State"),
			Balance:           field(index, record, "Balance"),
		}
		if fiat, err := decField(index, record, "Fiat amount"); err == nil {
			row.FiatAmount = fiat
		}
		if fee, err := decField(index, record, "Fee"); err == nil {
			row.Fee = fee
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Trades2023 reads the 2023 export and maps every exchange and card payment
// to one trade. The file is grouped by product (Current, then Savings), so
// rows are re-sorted chronologically first; Savings rows become vault
// trades.
func Trades2023(r io.Reader) ([]cryptotax.Trade, error) {
	rows, err := parse2023(r)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CompletedDate < rows[j].CompletedDate
	})

	var trades []cryptotax.Trade
	for _, row := range rows {
		if row.Type != typeExchange2023 && row.Type != typeCardPayment2023 {
			continue
		}
		trades = append(trades, row.toTrade())
	}
	return trades, nil
}

func (row Row2023) toTrade() cryptotax.Trade {
	direction := cryptotax.Sell
	if row.Amount.IsPositive() {
		direction = cryptotax.Buy
	}
	return cryptotax.Trade{
		Direction:         direction,
		PaidCurrency:      row.Currency,
		PaidAmount:        row.Amount,
		ExchangedCurrency: row.BaseCurrency,
		ExchangedAmount:   row.FiatAmountIncFees.Neg(),
		Date:              row.StartedDate,
		IsVault:           row.Product == productSavings2023,
	}
}
