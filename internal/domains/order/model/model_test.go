package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"hotel/internal/domains/order/model"
)

func TestOrder_ItemsTotal(t *testing.T) {
	items := []model.OrderItem{
		{Quantity: 2, UnitPrice: decimal.NewFromInt(50000), Status: model.ItemStatusPending},
		{Quantity: 1, UnitPrice: decimal.NewFromInt(25000), Status: model.ItemStatusServed},
		{Quantity: 3, UnitPrice: decimal.NewFromInt(40000), Status: model.ItemStatusVoided},
	}

	tests := []struct {
		name  string
		order model.Order
		items []model.OrderItem
		want  int64
	}{
		{name: "voided items are left out", order: model.Order{}, items: items, want: 125000},
		{name: "additional value is added", order: model.Order{AdditionalValue: decimal.NewFromInt(5000)}, items: items, want: 130000},
		{name: "no items", order: model.Order{AdditionalValue: decimal.NewFromInt(5000)}, want: 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.order.ItemsTotal(tt.items)

			assert.True(t, decimal.NewFromInt(tt.want).Equal(got), got.String())
		})
	}
}

func TestOrderItem_Removable(t *testing.T) {
	assert.True(t, model.OrderItem{Status: model.ItemStatusPending}.Removable())
	assert.True(t, model.OrderItem{Status: model.ItemStatusVoided}.Removable())
	assert.False(t, model.OrderItem{Status: model.ItemStatusServed}.Removable())
}

func TestOrder_IsClosed(t *testing.T) {
	assert.False(t, model.Order{Status: model.StatusInProgress}.IsClosed())
	assert.True(t, model.Order{Status: model.StatusCompleted}.IsClosed())
	assert.True(t, model.Order{Status: model.StatusCancelled}.IsClosed())
}
