package invoice

import (
	"testing"

	"github.com/librix/invoicing/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateLineTotals(t *testing.T) {
	tests := []struct {
		name            string
		currency        string
		unitPrice       decimal.Decimal
		quantity        decimal.Decimal
		adjustments     []Adjustment
		wantSubTotal    decimal.Decimal
		wantAdjustments decimal.Decimal
		wantTotal       decimal.Decimal
	}{
		{
			name:            "price times quantity with amount adjustment",
			currency:        "USD",
			unitPrice:       decimal.NewFromInt(5),
			quantity:        decimal.NewFromInt(4),
			adjustments:     []Adjustment{{Type: types.AdjustmentTypeAmount, Value: decimal.NewFromInt(2)}},
			wantSubTotal:    decimal.NewFromInt(20),
			wantAdjustments: decimal.NewFromInt(2),
			wantTotal:       decimal.NewFromInt(22),
		},
		{
			name:            "percentage adjustment applies to sub total",
			currency:        "USD",
			unitPrice:       decimal.NewFromInt(50),
			quantity:        decimal.NewFromInt(2),
			adjustments:     []Adjustment{{Type: types.AdjustmentTypePercentage, Value: decimal.NewFromInt(10)}},
			wantSubTotal:    decimal.NewFromInt(100),
			wantAdjustments: decimal.NewFromInt(10),
			wantTotal:       decimal.NewFromInt(110),
		},
		{
			name:     "mixed adjustments sum before rounding",
			currency: "USD",
			// 3 * 3.33 = 9.99; 5% of 9.99 = 0.4995; plus 0.01 = 0.5095 -> 0.51
			unitPrice: decimal.NewFromFloat(3.33),
			quantity:  decimal.NewFromInt(3),
			adjustments: []Adjustment{
				{Type: types.AdjustmentTypePercentage, Value: decimal.NewFromInt(5)},
				{Type: types.AdjustmentTypeAmount, Value: decimal.NewFromFloat(0.01)},
			},
			wantSubTotal:    decimal.NewFromFloat(9.99),
			wantAdjustments: decimal.NewFromFloat(0.51),
			wantTotal:       decimal.NewFromFloat(10.50),
		},
		{
			name:            "zero decimal currency rounds to whole units",
			currency:        "JPY",
			unitPrice:       decimal.NewFromFloat(99.6),
			quantity:        decimal.NewFromInt(1),
			adjustments:     nil,
			wantSubTotal:    decimal.NewFromInt(100),
			wantAdjustments: decimal.Zero,
			wantTotal:       decimal.NewFromInt(100),
		},
		{
			name:            "three decimal currency keeps extra precision",
			currency:        "BHD",
			unitPrice:       decimal.NewFromFloat(1.2345),
			quantity:        decimal.NewFromInt(2),
			adjustments:     nil,
			wantSubTotal:    decimal.NewFromFloat(2.469),
			wantAdjustments: decimal.Zero,
			wantTotal:       decimal.NewFromFloat(2.469),
		},
		{
			name:            "no adjustments",
			currency:        "USD",
			unitPrice:       decimal.NewFromFloat(12.5),
			quantity:        decimal.NewFromInt(3),
			adjustments:     nil,
			wantSubTotal:    decimal.NewFromFloat(37.5),
			wantAdjustments: decimal.Zero,
			wantTotal:       decimal.NewFromFloat(37.5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Invoice{CurrencyCode: tt.currency}
			line := &InvoiceLine{
				UnitPrice:   tt.unitPrice,
				Quantity:    tt.quantity,
				Adjustments: tt.adjustments,
			}

			CalculateLineTotals(line, inv)

			assert.True(t, line.SubTotal.Equal(tt.wantSubTotal),
				"sub total: got %s want %s", line.SubTotal, tt.wantSubTotal)
			assert.True(t, line.AdjustmentsTotal.Equal(tt.wantAdjustments),
				"adjustments total: got %s want %s", line.AdjustmentsTotal, tt.wantAdjustments)
			assert.True(t, line.Total.Equal(tt.wantTotal),
				"total: got %s want %s", line.Total, tt.wantTotal)
			assert.True(t, line.Total.Equal(line.SubTotal.Add(line.AdjustmentsTotal)))
		})
	}
}

func TestCalculateLineTotalsIdempotent(t *testing.T) {
	inv := &Invoice{CurrencyCode: "USD"}
	line := &InvoiceLine{
		UnitPrice: decimal.NewFromFloat(19.99),
		Quantity:  decimal.NewFromInt(7),
		Adjustments: []Adjustment{
			{Type: types.AdjustmentTypePercentage, Value: decimal.NewFromFloat(7.5)},
		},
	}

	CalculateLineTotals(line, inv)
	first := *line
	CalculateLineTotals(line, inv)

	assert.True(t, line.SubTotal.Equal(first.SubTotal))
	assert.True(t, line.AdjustmentsTotal.Equal(first.AdjustmentsTotal))
	assert.True(t, line.Total.Equal(first.Total))
}

func TestRecalculateLineTotals(t *testing.T) {
	inv := &Invoice{CurrencyCode: "USD"}

	t.Run("reports drift on stale stored values", func(t *testing.T) {
		line := &InvoiceLine{
			UnitPrice: decimal.NewFromInt(6),
			Quantity:  decimal.NewFromInt(3),
			SubTotal:  decimal.NewFromInt(12),
			Total:     decimal.NewFromInt(12),
		}

		drifted := RecalculateLineTotals(line, inv)

		require.True(t, drifted)
		assert.True(t, line.SubTotal.Equal(decimal.NewFromInt(18)))
		assert.True(t, line.Total.Equal(decimal.NewFromInt(18)))
	})

	t.Run("no drift on consistent values", func(t *testing.T) {
		line := &InvoiceLine{
			UnitPrice: decimal.NewFromInt(6),
			Quantity:  decimal.NewFromInt(3),
			SubTotal:  decimal.NewFromInt(18),
			Total:     decimal.NewFromInt(18),
		}

		drifted := RecalculateLineTotals(line, inv)

		assert.False(t, drifted)
	})
}

func TestCalculateInvoiceTotals(t *testing.T) {
	inv := &Invoice{
		CurrencyCode: "USD",
		Adjustments: []Adjustment{
			{Type: types.AdjustmentTypePercentage, Value: decimal.NewFromInt(10)},
		},
	}
	lines := []*InvoiceLine{
		{SubTotal: decimal.NewFromInt(100), AdjustmentsTotal: decimal.NewFromInt(5)},
		{SubTotal: decimal.NewFromInt(50), AdjustmentsTotal: decimal.NewFromInt(-2)},
	}

	CalculateInvoiceTotals(inv, lines)

	// invoice level 10% applies to the 150 lines sub total
	assert.True(t, inv.SubTotal.Equal(decimal.NewFromInt(150)))
	assert.True(t, inv.AdjustmentsTotal.Equal(decimal.NewFromInt(18)))
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(168)))
}

func TestCalculateInvoiceTotalsNoLines(t *testing.T) {
	inv := &Invoice{CurrencyCode: "USD"}

	CalculateInvoiceTotals(inv, nil)

	assert.True(t, inv.SubTotal.IsZero())
	assert.True(t, inv.AdjustmentsTotal.IsZero())
	assert.True(t, inv.Total.IsZero())
}
