package cart

import (
	"testing"

	"pos-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	nasiGoreng = models.Product{ID: "1", Name: "Nasi Goreng Spesial", Price: 25000, Category: "food"}
	esTeh      = models.Product{ID: "4", Name: "Teh Manis Dingin", Price: 8000, Category: "drink"}
	kopi       = models.Product{
		ID: "3", Name: "Es Kopi Susu Gula Aren", Price: 18000, Category: "drink",
		Variants: []models.Variant{
			{Name: "Regular", Price: 18000, Stock: 40},
			{Name: "Large", Price: 22000, Stock: 25},
		},
	}
)

func TestAddItemMergesSameSelection(t *testing.T) {
	c := New()

	require.NoError(t, c.AddItem(kopi, "Large"))
	require.NoError(t, c.AddItem(kopi, "Large"))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, int64(22000), lines[0].UnitPrice)
	assert.Equal(t, int64(44000), c.Totals(models.PricingConfig{}).Subtotal)
}

func TestAddItemKeepsVariantsDistinct(t *testing.T) {
	c := New()

	require.NoError(t, c.AddItem(kopi, "Regular"))
	require.NoError(t, c.AddItem(kopi, "Large"))
	require.NoError(t, c.AddItem(nasiGoreng, ""))

	lines := c.Lines()
	require.Len(t, lines, 3)

	seen := map[string]bool{}
	for _, line := range lines {
		key := line.ProductID + "|" + line.VariantName
		assert.False(t, seen[key], "duplicate line for %s", key)
		seen[key] = true
	}
}

func TestAddItemInvalidSelection(t *testing.T) {
	c := New()

	// Varianted product without a selection.
	assert.ErrorIs(t, c.AddItem(kopi, ""), ErrInvalidSelection)
	// Varianted product with an unknown variant.
	assert.ErrorIs(t, c.AddItem(kopi, "Jumbo"), ErrInvalidSelection)
	// Plain product with a selection.
	assert.ErrorIs(t, c.AddItem(nasiGoreng, "Large"), ErrInvalidSelection)

	assert.True(t, c.IsEmpty())
}

func TestAddItemCapturesPriceAtAddTime(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(nasiGoreng, ""))

	// A later catalog price change must not affect the existing line.
	changed := nasiGoreng
	changed.Price = 99000
	require.NoError(t, c.AddItem(changed, ""))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, int64(25000), lines[0].UnitPrice)
}

func TestChangeQuantity(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(nasiGoreng, ""))
	require.NoError(t, c.AddItem(nasiGoreng, ""))

	c.ChangeQuantity(nasiGoreng.ID, "", -1)
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)

	// Reaching zero removes the line.
	c.ChangeQuantity(nasiGoreng.ID, "", -1)
	assert.True(t, c.IsEmpty())
}

func TestChangeQuantityClampsBelowZero(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(esTeh, ""))

	c.ChangeQuantity(esTeh.ID, "", -5)
	assert.True(t, c.IsEmpty())

	// And a further decrement on the removed line stays a no-op.
	c.ChangeQuantity(esTeh.ID, "", -1)
	assert.True(t, c.IsEmpty())
}

func TestChangeQuantityMissingLineIsNoOp(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(nasiGoreng, ""))

	c.ChangeQuantity("no-such-product", "", 3)
	c.ChangeQuantity(kopi.ID, "Large", 3)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestComputeTotalsReferenceScenario(t *testing.T) {
	// 2x Nasi Goreng @25000 + 1x Es Teh @8000, tax 11% on, service 5% off.
	lines := []models.CartLine{
		{ProductID: "1", UnitPrice: 25000, Quantity: 2},
		{ProductID: "4", UnitPrice: 8000, Quantity: 1},
	}
	cfg := models.PricingConfig{
		TaxPercentage:     11,
		ServicePercentage: 5,
		TaxEnabled:        true,
		ServiceEnabled:    false,
	}

	totals := ComputeTotals(lines, cfg)
	assert.Equal(t, int64(58000), totals.Subtotal)
	assert.Equal(t, int64(6380), totals.TaxAmount)
	assert.Equal(t, int64(0), totals.ServiceAmount)
	assert.Equal(t, int64(64380), totals.GrandTotal)
}

func TestComputeTotalsFlagCombinations(t *testing.T) {
	lines := []models.CartLine{{ProductID: "1", UnitPrice: 10000, Quantity: 1}}

	tests := []struct {
		name        string
		taxOn       bool
		serviceOn   bool
		wantTax     int64
		wantService int64
	}{
		{"both off", false, false, 0, 0},
		{"tax only", true, false, 1100, 0},
		{"service only", false, true, 0, 500},
		{"both on", true, true, 1100, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.PricingConfig{
				TaxPercentage:     11,
				ServicePercentage: 5,
				TaxEnabled:        tt.taxOn,
				ServiceEnabled:    tt.serviceOn,
			}
			totals := ComputeTotals(lines, cfg)
			assert.Equal(t, tt.wantTax, totals.TaxAmount)
			assert.Equal(t, tt.wantService, totals.ServiceAmount)
			assert.Equal(t, totals.Subtotal+totals.TaxAmount+totals.ServiceAmount, totals.GrandTotal)
		})
	}
}

func TestComputeTotalsDisabledRateIsIgnored(t *testing.T) {
	lines := []models.CartLine{{ProductID: "1", UnitPrice: 50000, Quantity: 1}}

	// A configured percentage contributes nothing while its flag is off.
	cfg := models.PricingConfig{TaxPercentage: 99, ServicePercentage: 99}
	totals := ComputeTotals(lines, cfg)
	assert.Equal(t, int64(0), totals.TaxAmount)
	assert.Equal(t, int64(0), totals.ServiceAmount)
	assert.Equal(t, int64(50000), totals.GrandTotal)
}

func TestComputeTotalsRoundsHalfUp(t *testing.T) {
	// 10% of 12345 = 1234.5, which rounds up to 1235.
	lines := []models.CartLine{{ProductID: "1", UnitPrice: 12345, Quantity: 1}}
	cfg := models.PricingConfig{TaxPercentage: 10, TaxEnabled: true}

	totals := ComputeTotals(lines, cfg)
	assert.Equal(t, int64(1235), totals.TaxAmount)
	assert.Equal(t, int64(13580), totals.GrandTotal)
}

func TestSubtotalIndependentOfAddOrder(t *testing.T) {
	a := New()
	require.NoError(t, a.AddItem(nasiGoreng, ""))
	require.NoError(t, a.AddItem(kopi, "Large"))
	require.NoError(t, a.AddItem(esTeh, ""))

	b := New()
	require.NoError(t, b.AddItem(esTeh, ""))
	require.NoError(t, b.AddItem(kopi, "Large"))
	require.NoError(t, b.AddItem(nasiGoreng, ""))

	cfg := models.PricingConfig{TaxPercentage: 11, TaxEnabled: true}
	assert.Equal(t, a.Totals(cfg), b.Totals(cfg))
}

func TestClear(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItem(nasiGoreng, ""))
	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.Totals(models.PricingConfig{}).GrandTotal)
}
