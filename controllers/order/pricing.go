package orderControllers

import (
	"math"

	"github.com/sepnoty-tech/sepnoty-api/config"
	"github.com/sepnoty-tech/sepnoty-api/models"
)

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals prices an order: subtotal + flat shipping fee + tax as a
// fixed fraction of the subtotal.
func ComputeTotals(items []models.OrderItem, p config.Pricing) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	subtotal = round2(subtotal)
	tax := round2(subtotal * p.TaxRate)
	return Totals{
		Subtotal: subtotal,
		Shipping: p.ShippingFee,
		Tax:      tax,
		Total:    round2(subtotal + p.ShippingFee + tax),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
