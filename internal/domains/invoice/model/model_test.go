package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"hotel/internal/domains/invoice/model"
)

func TestInvoice_Totals(t *testing.T) {
	tests := []struct {
		name         string
		lines        []string
		wantSubTotal string
		wantDiscount string
		wantTax      string
	}{
		{
			name:         "tax is rounded to cents",
			lines:        []string{"333.33"},
			wantSubTotal: "333.33",
			wantDiscount: "0",
			wantTax:      "33.33",
		},
		{
			name:         "negative lines are discounts",
			lines:        []string{"1000", "250.55", "-125.05"},
			wantSubTotal: "1250.55",
			wantDiscount: "125.05",
			wantTax:      "125.06",
		},
		{
			name:         "no lines",
			wantSubTotal: "0",
			wantDiscount: "0",
			wantTax:      "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := make([]model.InvoiceLine, len(tt.lines))
			for i, value := range tt.lines {
				lines[i].Amount = decimal.RequireFromString(value)
			}

			var invoice model.Invoice
			invoice.Totals(lines, decimal.NewFromFloat(0.10))

			assert.True(t, decimal.RequireFromString(tt.wantSubTotal).Equal(invoice.SubTotal), invoice.SubTotal.String())
			assert.True(t, decimal.RequireFromString(tt.wantDiscount).Equal(invoice.DiscountAmount), invoice.DiscountAmount.String())
			assert.True(t, decimal.RequireFromString(tt.wantTax).Equal(invoice.TaxAmount), invoice.TaxAmount.String())
		})
	}
}

func TestPromotion(t *testing.T) {
	day := func(value string) time.Time {
		d, _ := time.Parse(time.DateOnly, value)

		return d
	}

	promo := model.Promotion{
		Scope:     " Food ",
		Value:     decimal.NewFromInt(15),
		StartDate: day("2025-03-01"),
		EndDate:   day("2025-03-31"),
		IsActive:  true,
	}

	assert.True(t, promo.HasScope(model.ScopeFood))
	assert.False(t, promo.HasScope(model.ScopeBooking))
	assert.True(t, promo.ValidOn(day("2025-03-31")))
	assert.False(t, promo.ValidOn(day("2025-04-01")))
	assert.True(t, decimal.RequireFromString("18.75").Equal(promo.Discount(decimal.NewFromInt(125))))

	promo.IsActive = false
	assert.False(t, promo.ValidOn(day("2025-03-15")))
}

func TestSurchargeRule_FixedAmount(t *testing.T) {
	fixed := model.SurchargeRule{Amount: decimal.NewFromInt(50000)}
	percentage := model.SurchargeRule{Amount: decimal.NewFromInt(20), IsPercentage: true}

	assert.True(t, decimal.NewFromInt(50000).Equal(fixed.FixedAmount()))
	assert.True(t, percentage.FixedAmount().IsZero())
}
