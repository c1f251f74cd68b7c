// internal/services/pricing.go
package services

import (
	"math"

	"github.com/letmemugyou/backend/internal/models"
)

// Totals is the cart-wide money breakdown. Line totals are already rounded
// when the line is created or updated; totals are rounded here.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
	TaxRate  float64 `json:"tax_rate"`
}

// Round2 rounds to currency precision, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateTotals is a pure function of the cart contents and the tax rate
// in effect at the time of the call.
func CalculateTotals(lines []models.CartLine, taxRate float64) Totals {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.LineTotal
	}
	subtotal = Round2(subtotal)

	tax := Round2(subtotal * taxRate)
	total := Round2(subtotal + tax)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    total,
		TaxRate:  taxRate,
	}
}
