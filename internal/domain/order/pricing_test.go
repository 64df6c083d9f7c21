package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestShippingCost(t *testing.T) {
	tests := []struct {
		country string
		want    string
	}{
		{"India", "0"},
		{"USA", "15"},
		{"UK", "10"},
		{"Germany", "0"},
		{"", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.country, func(t *testing.T) {
			assert.True(t, ShippingCost(tt.country).Equal(decimal.RequireFromString(tt.want)),
				"shipping for %q", tt.country)
		})
	}
}

func TestSubtotal(t *testing.T) {
	items := []Item{
		{ProductID: "p1", UnitPrice: decimal.RequireFromString("499.99"), Quantity: 2},
		{ProductID: "p2", UnitPrice: decimal.RequireFromString("120.50"), Quantity: 1},
	}
	assert.True(t, Subtotal(items).Equal(decimal.RequireFromString("1120.48")))
}

func TestSubtotal_Empty(t *testing.T) {
	assert.True(t, Subtotal(nil).IsZero())
}

func TestTotal_USAShipping(t *testing.T) {
	// cart = [{price: 500, quantity: 2}], country = USA
	// subtotal = 1000, shipping = 15, total = 1015.
	items := []Item{
		{ProductID: "p1", UnitPrice: decimal.NewFromInt(500), Quantity: 2},
	}

	assert.True(t, Subtotal(items).Equal(decimal.NewFromInt(1000)))
	assert.True(t, Total(items, "USA").Equal(decimal.NewFromInt(1015)))
}

func TestTotal_DomesticFreeShipping(t *testing.T) {
	items := []Item{
		{ProductID: "p1", UnitPrice: decimal.NewFromInt(500), Quantity: 2},
	}
	assert.True(t, Total(items, "India").Equal(decimal.NewFromInt(1000)))
}

func TestTotal_Rounding(t *testing.T) {
	items := []Item{
		{ProductID: "p1", UnitPrice: decimal.RequireFromString("33.335"), Quantity: 3},
	}
	// 100.005 + 10 rounds to 110.01 (half away from zero).
	assert.Equal(t, "110.01", Total(items, "UK").StringFixed(2))
}

func TestMinorToDecimal(t *testing.T) {
	assert.Equal(t, "1015.00", minorToDecimal(101500).StringFixed(2))
	assert.Equal(t, "0.01", minorToDecimal(1).StringFixed(2))
}
