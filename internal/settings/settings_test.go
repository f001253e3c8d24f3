package settings

import (
	"testing"

	"pos-service/config"
	"pos-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return NewStore(
		config.PricingConfig{TaxPercentage: 11, ServicePercentage: 5, TaxEnabled: true},
		config.ReceiptConfig{StoreName: "WARUNG PINTAR AI", Address: "Jakarta"},
	)
}

func TestDefaults(t *testing.T) {
	s := newTestStore()

	pricing := s.Pricing()
	assert.Equal(t, 11.0, pricing.TaxPercentage)
	assert.True(t, pricing.TaxEnabled)
	assert.False(t, pricing.ServiceEnabled)

	receipt := s.Receipt()
	assert.Equal(t, "WARUNG PINTAR AI", receipt.StoreName)
	assert.True(t, receipt.ShowQRCode)

	assert.NotEmpty(t, s.PaymentMethods())
	assert.NotEmpty(t, s.Outlets())
}

func TestSetPricing(t *testing.T) {
	s := newTestStore()

	s.SetPricing(models.PricingConfig{TaxPercentage: 10, ServicePercentage: 2, ServiceEnabled: true})

	pricing := s.Pricing()
	assert.Equal(t, 10.0, pricing.TaxPercentage)
	assert.False(t, pricing.TaxEnabled)
	assert.True(t, pricing.ServiceEnabled)
}

func TestPaymentMethodLifecycle(t *testing.T) {
	s := newTestStore()

	require.NoError(t, s.AddPaymentMethod(models.PaymentMethod{
		ID: "pm-gopay", Name: "GoPay", Type: models.PaymentTypeEWallet, Active: true,
	}))
	assert.ErrorIs(t, s.AddPaymentMethod(models.PaymentMethod{ID: "pm-gopay", Name: "Dup"}), ErrDuplicateID)

	assert.True(t, s.IsActivePaymentMethod("GoPay"))

	s.SetPaymentMethodActive("pm-gopay", false)
	assert.False(t, s.IsActivePaymentMethod("GoPay"))

	// Unknown names and ids stay harmless.
	assert.False(t, s.IsActivePaymentMethod("Cek"))
	s.SetPaymentMethodActive("pm-missing", true)
}

func TestOutlets(t *testing.T) {
	s := newTestStore()

	require.NoError(t, s.AddOutlet(models.Outlet{ID: "outlet-2", Name: "Cabang Selatan"}))
	assert.ErrorIs(t, s.AddOutlet(models.Outlet{ID: "outlet-2", Name: "Dup"}), ErrDuplicateID)
	assert.Len(t, s.Outlets(), 2)
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := newTestStore()

	methods := s.PaymentMethods()
	methods[0].Active = !methods[0].Active

	fresh := s.PaymentMethods()
	assert.NotEqual(t, methods[0].Active, fresh[0].Active)
}
