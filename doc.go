// Package cryptotax computes realized capital-gain/loss tax lines for
// disposals of a fungible crypto asset, using a weighted-average cost-basis
// method with segregated vault sub-accounts.
//
// The core model is:
//   - Money: a value either denominated in the base (reporting) currency
//     ("cash") or in another asset pending later valuation ("coupon").
//   - Cost: a partially-consumable ledger lot, pairing a quantity of the
//     tracked asset with the Money given up to acquire it.
//   - CostBook: the ordered lot ledger for one (asset, base currency) pair,
//     mutated by a chronological fold over buy and sell trades.
//   - TaxableTrade: the tax line produced by each sell, carrying its income,
//     the consumed costs, and, when everything resolves in the base
//     currency, a net gain or loss.
//
// Everything upstream (broker CSV parsing, row reconciliation) lives in the
// revolut subpackage, and everything downstream (report rendering, tax-form
// serialization, persistence) in the renderer, skatteverket and store
// subpackages. This package performs no I/O and no display rounding: amounts
// are exact decimals end to end.
package cryptotax
