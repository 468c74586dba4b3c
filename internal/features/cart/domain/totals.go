package domain

import "github.com/shopspring/decimal"

// TaxRate is the fixed sales tax rate (8.65%) applied to the subtotal.
var TaxRate = decimal.RequireFromString("0.0865")

// Totals is the derived order arithmetic. It is computed, never stored on
// its own: subtotal from the entries, shipping as an externally-selected
// flat fee, tax from the fixed rate, total as the sum.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives the totals for the given entries and shipping fee.
// Pure, never fails. An empty cart yields all zeros; in particular no
// shipping is charged when there is nothing to ship.
func ComputeTotals(entries []Entry, shippingFee decimal.Decimal) Totals {
	if len(entries) == 0 {
		return Totals{
			Subtotal: decimal.Zero,
			Shipping: decimal.Zero,
			Tax:      decimal.Zero,
			Total:    decimal.Zero,
		}
	}

	subtotal := decimal.Zero
	for _, e := range entries {
		subtotal = subtotal.Add(e.LineTotal())
	}

	tax := subtotal.Mul(TaxRate)

	return Totals{
		Subtotal: subtotal,
		Shipping: shippingFee,
		Tax:      tax,
		Total:    subtotal.Add(shippingFee).Add(tax),
	}
}
