// Package pricing holds the quote arithmetic. All amounts are rounded to two
// decimal places with half-up (away from zero) rounding — decimal.Round's
// behavior — at every stage: per line, for the subtotal, for the tax and for
// the grand total. Rounding at each stage, not just at the end, keeps newly
// computed values bit-identical to totals already persisted in the data file.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/mirandajandir7-prog/mitaller/internal/model"
)

// DefaultIGVRate is the Peruvian sales-tax rate applied when a quote
// requires a formal invoice.
var DefaultIGVRate = decimal.New(18, -2) // 0.18

const scale = 2

// LineTotal computes qty × unitPrice rounded to 2 decimals.
func LineTotal(qty, unitPrice decimal.Decimal) decimal.Decimal {
	return qty.Mul(unitPrice).Round(scale)
}

// Totals computes (subtotal, igv, total) for a set of quote items.
// The IGV is zero unless requireInvoice is set; a non-positive rate falls
// back to DefaultIGVRate.
func Totals(items []model.QuoteItem, requireInvoice bool, igvRate decimal.Decimal) (subtotal, igv, total decimal.Decimal) {
	if igvRate.LessThanOrEqual(decimal.Zero) {
		igvRate = DefaultIGVRate
	}

	subtotal = decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(LineTotal(it.Qty, it.UnitPrice))
	}
	subtotal = subtotal.Round(scale)

	if requireInvoice {
		igv = subtotal.Mul(igvRate).Round(scale)
	} else {
		igv = decimal.Zero.Round(scale)
	}

	total = subtotal.Add(igv).Round(scale)
	return subtotal, igv, total
}

// FillLineTotals returns a copy of items with each line's Total recomputed
// from its qty and unit price.
func FillLineTotals(items []model.QuoteItem) []model.QuoteItem {
	out := make([]model.QuoteItem, len(items))
	for i, it := range items {
		it.Total = LineTotal(it.Qty, it.UnitPrice)
		out[i] = it
	}
	return out
}
