package invoice

import (
	"github.com/librix/invoicing/internal/types"
	"github.com/shopspring/decimal"
)

// currencyScale maps currencies with a non default number of minor
// units. Everything absent rounds to two decimal places.
var currencyScale = map[string]int32{
	"JPY": 0,
	"KRW": 0,
	"BHD": 3,
	"KWD": 3,
	"OMR": 3,
	"TND": 3,
}

func scaleFor(currency string) int32 {
	if scale, ok := currencyScale[currency]; ok {
		return scale
	}
	return 2
}

// CalculateLineTotals recomputes the derived monetary fields of a line
// from its unit price, quantity and adjustments, rounded to the
// invoice currency's scale. Pure and idempotent: recomputing an
// already consistent line yields the same values.
func CalculateLineTotals(line *InvoiceLine, inv *Invoice) {
	scale := scaleFor(inv.CurrencyCode)

	subTotal := line.UnitPrice.Mul(line.Quantity).Round(scale)
	adjustmentsTotal := adjustmentsTotal(line.Adjustments, subTotal, scale)

	line.SubTotal = subTotal
	line.AdjustmentsTotal = adjustmentsTotal
	line.Total = subTotal.Add(adjustmentsTotal)
}

// RecalculateLineTotals recomputes the line totals in place and
// reports whether any stored value drifted from the computed one.
func RecalculateLineTotals(line *InvoiceLine, inv *Invoice) bool {
	existingSubTotal := line.SubTotal
	existingAdjustmentsTotal := line.AdjustmentsTotal
	existingTotal := line.Total

	CalculateLineTotals(line, inv)

	return !(existingSubTotal.Equal(line.SubTotal) &&
		existingAdjustmentsTotal.Equal(line.AdjustmentsTotal) &&
		existingTotal.Equal(line.Total))
}

// CalculateInvoiceTotals recomputes the invoice's aggregate totals
// from its lines and its own invoice level adjustments.
func CalculateInvoiceTotals(inv *Invoice, lines []*InvoiceLine) {
	scale := scaleFor(inv.CurrencyCode)

	subTotal := decimal.Zero
	linesAdjustments := decimal.Zero
	for _, line := range lines {
		subTotal = subTotal.Add(line.SubTotal)
		linesAdjustments = linesAdjustments.Add(line.AdjustmentsTotal)
	}

	invoiceAdjustments := adjustmentsTotal(inv.Adjustments, subTotal, scale)

	inv.SubTotal = subTotal
	inv.AdjustmentsTotal = linesAdjustments.Add(invoiceAdjustments)
	inv.Total = inv.SubTotal.Add(inv.AdjustmentsTotal)
}

func adjustmentsTotal(adjustments []Adjustment, subTotal decimal.Decimal, scale int32) decimal.Decimal {
	total := decimal.Zero
	for _, adj := range adjustments {
		total = total.Add(adj.apply(subTotal))
	}
	return total.Round(scale)
}

func (a Adjustment) apply(subTotal decimal.Decimal) decimal.Decimal {
	switch a.Type {
	case types.AdjustmentTypePercentage:
		return subTotal.Mul(a.Value).Div(decimal.NewFromInt(100))
	default:
		return a.Value
	}
}
