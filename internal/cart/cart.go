package cart

import (
	"errors"
	"math"

	"pos-service/internal/models"
)

// ErrInvalidSelection is returned when a variant selection violates the
// product's contract: a varianted product was added without naming a variant,
// an unknown variant was named, or a variant was named on a plain product.
var ErrInvalidSelection = errors.New("invalid variant selection")

// Cart accumulates selected items for one checkout session. Lines are keyed
// by (product id, variant name); at most one line exists per key.
//
// Cart is not safe for concurrent use; the owning session serializes access.
type Cart struct {
	lines []models.CartLine
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem adds one unit of the product to the cart. variantName must name one
// of the product's variants when it has any, and must be empty otherwise. The
// unit price is fixed at add time: the variant's price, or the base price for
// a plain product. Adding the same (product, variant) again increments the
// existing line instead of creating a second one.
func (c *Cart) AddItem(product models.Product, variantName string) error {
	var unitPrice int64

	if product.HasVariants() {
		variant, ok := product.VariantByName(variantName)
		if !ok {
			return ErrInvalidSelection
		}
		unitPrice = variant.Price
	} else {
		if variantName != "" {
			return ErrInvalidSelection
		}
		unitPrice = product.Price
	}

	for i := range c.lines {
		if c.lines[i].ProductID == product.ID && c.lines[i].VariantName == variantName {
			c.lines[i].Quantity++
			return nil
		}
	}

	c.lines = append(c.lines, models.CartLine{
		ProductID:   product.ID,
		ProductName: product.Name,
		VariantName: variantName,
		UnitPrice:   unitPrice,
		Quantity:    1,
	})
	return nil
}

// ChangeQuantity adjusts the matching line's quantity by delta, clamping at
// zero. A line reaching zero is removed. A missing line is a silent no-op so
// stale UI references (double-clicks on a removed row) stay harmless.
func (c *Cart) ChangeQuantity(productID, variantName string, delta int) {
	for i := range c.lines {
		if c.lines[i].ProductID != productID || c.lines[i].VariantName != variantName {
			continue
		}

		newQty := c.lines[i].Quantity + delta
		if newQty <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = newQty
		}
		return
	}
}

// Lines returns a copy of the current cart lines.
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear empties the cart. Called after a transaction is recorded.
func (c *Cart) Clear() {
	c.lines = nil
}

// Totals computes the pricing breakdown for the current lines.
func (c *Cart) Totals(cfg models.PricingConfig) models.Totals {
	return ComputeTotals(c.lines, cfg)
}

// ComputeTotals derives subtotal, tax, service charge and grand total from a
// set of lines and a pricing config. It is a pure function of its inputs.
// Tax and service both apply to the subtotal, never to each other, and each
// is rounded half-up to whole rupiah when materialized; the grand total is
// the sum of the already-rounded parts so the breakdown always adds up.
func ComputeTotals(lines []models.CartLine, cfg models.PricingConfig) models.Totals {
	var subtotal int64
	for _, line := range lines {
		subtotal += line.UnitPrice * int64(line.Quantity)
	}

	var tax, service int64
	if cfg.TaxEnabled {
		tax = roundHalfUp(float64(subtotal) * cfg.TaxPercentage / 100)
	}
	if cfg.ServiceEnabled {
		service = roundHalfUp(float64(subtotal) * cfg.ServicePercentage / 100)
	}

	return models.Totals{
		Subtotal:      subtotal,
		TaxAmount:     tax,
		ServiceAmount: service,
		GrandTotal:    subtotal + tax + service,
	}
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
