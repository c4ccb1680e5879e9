package revolut

import (
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/oskarw/cryptotax"
)

// Row types and states as they appear in the 2022 export.
const (
	typeExchange2022    = "Exchange"
	typeCardPayment2022 = "Card Payment"
	stateCompleted2022  = "Completed"
)

// Row2022 is one line of the 2022 transaction-history export. A currency
// exchange produces two rows, one per leg, that must be reconciled into a
// single trade.
type Row2022 struct {
	Type             string
	StartedDate      string
	CompletedDate    string
	Description      string
	Amount           decimal.Decimal
	Fee              decimal.Decimal
	Currency         string
	OriginalAmount   decimal.Decimal
	OriginalCurrency string
	SettledAmount    decimal.Decimal // empty on same-currency rows
	SettledCurrency  string
	State            string
	Balance          string
}

// parse2022 reads the export, dropping rows that do not parse (pending rows
// have empty numeric cells, and Revolut has been known to append junk).
func parse2022(r io.Reader) ([]Row2022, error) {
	index, records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	var rows []Row2022
	for _, record := range records {
		amount, err := decField(index, record, "Amount")
		if err != nil {
			continue
		}
		fee, err := decField(index, record, "Fee")
		if err != nil {
			continue
		}
		row := Row2022{
			Type:             field(index, record, "Type"),
			StartedDate:      field(index, record, "Started Date"),
			CompletedDate:    field(index, record, "Completed Date"),
			Description:      field(index, record, "Description"),
			Amount:           amount,
			Fee:              fee,
			Currency:         field(index, record, "Currency"),
			OriginalCurrency: field(index, record, "Original Currency"),
			SettledCurrency:  field(index, record, "Settled Currency"),
			State:            field(index, record, "State"),
			Balance:          field(index, record, "Balance"),
		}
		if orig, err := decField(index, record, "Original Amount"); err == nil {
			row.OriginalAmount = orig
		}
		if settled, err := decField(index, record, "Settled Amount"); err == nil {
			row.SettledAmount = settled
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadExchanges2022 returns the export's rows of type Exchange.
func ReadExchanges2022(r io.Reader) ([]Row2022, error) {
	rows, err := parse2022(r)
	if err != nil {
		return nil, err
	}
	var out []Row2022
	for _, row := range rows {
		if row.Type == typeExchange2022 {
			out = append(out, row)
		}
	}
	return out, nil
}

// ReadExchangesInCurrency2022 returns the completed rows relevant to the
// target currency: exchanges whose either leg involves it (the fiat leg only
// names it in the description, e.g. "Exchanged to ETH"), plus card payments
// settled in it.
func ReadExchangesInCurrency2022(r io.Reader, currency string) ([]Row2022, error) {
	rows, err := parse2022(r)
	if err != nil {
		return nil, err
	}
	var out []Row2022
	for _, row := range rows {
		relevantType := row.Type == typeExchange2022 ||
			(row.Type == typeCardPayment2022 && row.Currency == currency)
		if !relevantType || row.State != stateCompleted2022 {
			continue
		}
		if row.Currency == currency || strings.Contains(row.Description, currency) {
			out = append(out, row)
		}
	}
	return out, nil
}

// Trades2022 reconciles filtered rows into trades. The export is newest
// first, so the walk runs from the end: two consecutive Exchange rows are
// the two legs of one trade, card payments stand alone as sells.
func Trades2022(rows []Row2022, currency string) []cryptotax.Trade {
	var trades []cryptotax.Trade
	var pending *Row2022

	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		switch row.Type {
		case typeExchange2022:
			if pending == nil {
				pending = &row
				continue
			}
			var trade cryptotax.Trade
			pending.applyExchange(&trade, currency)
			row.applyExchange(&trade, currency)
			trades = append(trades, trade)
			pending = nil
		case typeCardPayment2022:
			trades = append(trades, row.cardPaymentTrade(currency))
		}
	}
	return trades
}

// applyExchange fills the leg of the trade this row describes. The crypto
// leg carries the row's own currency; the other leg only mentions the target
// currency in its description ("Exchanged to ETH" / "Exchanged from ETH").
// Fees are folded into the amounts.
func (row Row2022) applyExchange(trade *cryptotax.Trade, currency string) {
	if row.Currency == currency && row.Amount.IsPositive() {
		trade.Direction = cryptotax.Buy
		trade.PaidCurrency = currency
		trade.PaidAmount = row.Amount.Add(row.Fee)
		trade.Date = row.StartedDate
	}
	if row.Currency == currency && row.Amount.IsNegative() {
		trade.Direction = cryptotax.Sell
		trade.PaidCurrency = currency
		trade.PaidAmount = row.Amount.Add(row.Fee)
		trade.Date = row.StartedDate
	}
	if strings.Contains(row.Description, "Exchanged from") && strings.Contains(row.Description, currency) {
		trade.Direction = cryptotax.Sell
		trade.ExchangedCurrency = row.Currency
		trade.ExchangedAmount = row.Amount.Add(row.Fee)
	}
	if strings.Contains(row.Description, "Exchanged to") && strings.Contains(row.Description, currency) {
		trade.Direction = cryptotax.Buy
		trade.ExchangedCurrency = row.Currency
		trade.ExchangedAmount = row.Amount.Add(row.Fee)
	}
	if strings.Contains(row.Description, "Vault") {
		trade.IsVault = true
	}
}

// cardPaymentTrade maps a card payment to a standalone sell: the crypto
// spent on one side, the settled fiat value on the other.
func (row Row2022) cardPaymentTrade(currency string) cryptotax.Trade {
	return cryptotax.Trade{
		Direction:         cryptotax.Sell,
		PaidCurrency:      currency,
		PaidAmount:        row.Amount.Add(row.Fee),
		ExchangedCurrency: row.OriginalCurrency,
		ExchangedAmount:   row.OriginalAmount.Neg(),
		Date:              row.StartedDate,
	}
}

// EncodeRows2022 writes rows back out as semicolon-delimited CSV, used by
// the inspection commands.
func EncodeRows2022(w io.Writer, rows []Row2022) error {
	return encodeRows(w, rows)
}
