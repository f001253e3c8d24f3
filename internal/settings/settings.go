package settings

import (
	"errors"
	"fmt"
	"sync"

	"pos-service/config"
	"pos-service/internal/models"
)

var ErrDuplicateID = errors.New("id already exists")

// Store holds the mutable shop configuration: pricing, receipt template,
// payment methods and outlets. Checkout and reporting read it; only the
// settings API writes it.
type Store struct {
	mu             sync.RWMutex
	pricing        models.PricingConfig
	receipt        models.ReceiptConfig
	paymentMethods []models.PaymentMethod
	outlets        []models.Outlet
}

// NewStore creates a settings store from the startup configuration, with the
// default payment methods and outlet a fresh shop gets.
func NewStore(pricing config.PricingConfig, receipt config.ReceiptConfig) *Store {
	return &Store{
		pricing: models.PricingConfig{
			TaxPercentage:     pricing.TaxPercentage,
			ServicePercentage: pricing.ServicePercentage,
			TaxEnabled:        pricing.TaxEnabled,
			ServiceEnabled:    pricing.ServiceEnabled,
		},
		receipt: models.ReceiptConfig{
			StoreName:       receipt.StoreName,
			HeaderText:      receipt.HeaderText,
			FooterText:      receipt.FooterText,
			QRCodeText:      receipt.QRCodeText,
			Address:         receipt.Address,
			Instagram:       receipt.Instagram,
			Website:         receipt.Website,
			ShowLogo:        true,
			ShowSocialMedia: true,
			ShowQRCode:      true,
		},
		paymentMethods: []models.PaymentMethod{
			{ID: "pm-cash", Name: "Cash", Type: models.PaymentTypeCash, Active: true},
			{ID: "pm-qris", Name: "QRIS", Type: models.PaymentTypeEWallet, Active: true},
			{ID: "pm-transfer", Name: "Bank Transfer", Type: models.PaymentTypeTransfer, Active: true},
			{ID: "pm-debit", Name: "Debit Card", Type: models.PaymentTypeCard, Active: false},
		},
		outlets: []models.Outlet{
			{
				ID:      "outlet-1",
				Name:    "Outlet Pusat",
				Address: receipt.Address,
				Phone:   "021-5551234",
				Email:   "pusat@warung.ai",
			},
		},
	}
}

// Pricing returns the current tax/service configuration.
func (s *Store) Pricing() models.PricingConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pricing
}

// SetPricing replaces the tax/service configuration.
func (s *Store) SetPricing(cfg models.PricingConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pricing = cfg
}

// Receipt returns the current receipt template.
func (s *Store) Receipt() models.ReceiptConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.receipt
}

// SetReceipt replaces the receipt template.
func (s *Store) SetReceipt(cfg models.ReceiptConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipt = cfg
}

// PaymentMethods returns a snapshot of the configured payment methods.
func (s *Store) PaymentMethods() []models.PaymentMethod {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.PaymentMethod, len(s.paymentMethods))
	copy(out, s.paymentMethods)
	return out
}

// AddPaymentMethod registers a new payment method.
func (s *Store) AddPaymentMethod(pm models.PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.paymentMethods {
		if existing.ID == pm.ID {
			return fmt.Errorf("payment method %s: %w", pm.ID, ErrDuplicateID)
		}
	}
	s.paymentMethods = append(s.paymentMethods, pm)
	return nil
}

// SetPaymentMethodActive toggles a payment method. Unknown ids are a no-op.
func (s *Store) SetPaymentMethodActive(id string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.paymentMethods {
		if s.paymentMethods[i].ID == id {
			s.paymentMethods[i].Active = active
			return
		}
	}
}

// IsActivePaymentMethod reports whether the named method exists and is active.
func (s *Store) IsActivePaymentMethod(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, pm := range s.paymentMethods {
		if pm.Name == name {
			return pm.Active
		}
	}
	return false
}

// Outlets returns a snapshot of the configured outlets.
func (s *Store) Outlets() []models.Outlet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Outlet, len(s.outlets))
	copy(out, s.outlets)
	return out
}

// AddOutlet registers a new outlet.
func (s *Store) AddOutlet(o models.Outlet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.outlets {
		if existing.ID == o.ID {
			return fmt.Errorf("outlet %s: %w", o.ID, ErrDuplicateID)
		}
	}
	s.outlets = append(s.outlets, o)
	return nil
}
