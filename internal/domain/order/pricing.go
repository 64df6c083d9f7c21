package order

import "github.com/shopspring/decimal"

// shippingRates is the flat per-country shipping cost table. Countries not
// listed here ship free, same as the domestic default.
var shippingRates = map[string]decimal.Decimal{
	"India": decimal.Zero,
	"USA":   decimal.NewFromInt(15),
	"UK":    decimal.NewFromInt(10),
}

// ShippingCost returns the shipping cost for the destination country.
// Unknown countries default to zero.
func ShippingCost(country string) decimal.Decimal {
	if cost, ok := shippingRates[country]; ok {
		return cost
	}
	return decimal.Zero
}

// Subtotal returns the sum of unit price times quantity over the items.
func Subtotal(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

// Total returns subtotal plus shipping for the destination country, rounded
// to two decimal places. The result is fixed into the order at creation time
// and never recomputed.
func Total(items []Item, country string) decimal.Decimal {
	return Subtotal(items).Add(ShippingCost(country)).Round(2)
}

// minorToDecimal converts an amount in the currency's minor unit (paise)
// to a decimal major amount.
func minorToDecimal(n int64) decimal.Decimal {
	return decimal.NewFromInt(n).Shift(-2)
}
