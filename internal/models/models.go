package models

import "time"

// All money amounts are whole rupiah (the smallest currency unit), stored as
// int64 so stored totals never accumulate floating-point drift.

// Variant is a priced, stocked sub-choice of a product (size, spice level).
type Variant struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Stock int    `json:"stock"`
}

// Product is a sellable catalog item. When Variants is non-empty the base
// Price and Stock are informational only; every sale references one variant.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Category  string    `json:"category"`
	ImageURL  string    `json:"image_url,omitempty"`
	Variants  []Variant `json:"variants,omitempty"`
	Stock     int       `json:"stock,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HasVariants reports whether sales of this product must pick a variant.
func (p Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// VariantByName returns the named variant, if the product has it.
func (p Product) VariantByName(name string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Category is a node in the (flat or parent/child) category taxonomy.
// Root categories have an empty ParentID.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

// CartLine is one distinct (product, variant) selection in a cart. UnitPrice
// is captured when the line is created and never re-read from the catalog.
type CartLine struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	VariantName string `json:"variant_name,omitempty"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

// Totals is the derived pricing breakdown of a set of cart lines.
type Totals struct {
	Subtotal      int64 `json:"subtotal"`
	TaxAmount     int64 `json:"tax_amount"`
	ServiceAmount int64 `json:"service_amount"`
	GrandTotal    int64 `json:"grand_total"`
}

// Transaction is an immutable record of a completed sale. The line slice is a
// snapshot; later catalog changes never alter historical transactions.
type Transaction struct {
	ID            string     `json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	Lines         []CartLine `json:"lines"`
	Subtotal      int64      `json:"subtotal"`
	TaxAmount     int64      `json:"tax_amount"`
	ServiceAmount int64      `json:"service_amount"`
	GrandTotal    int64      `json:"grand_total"`
	CustomerName  string     `json:"customer_name,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	AINote        string     `json:"ai_note,omitempty"`
}

// PricingConfig holds the tax and service-charge rates. Both percentages
// apply to the pre-tax subtotal independently, never compounding.
type PricingConfig struct {
	TaxPercentage     float64 `json:"tax_percentage"`
	ServicePercentage float64 `json:"service_percentage"`
	TaxEnabled        bool    `json:"tax_enabled"`
	ServiceEnabled    bool    `json:"service_enabled"`
}

// ReceiptConfig is the printable receipt template.
type ReceiptConfig struct {
	StoreName       string `json:"store_name"`
	HeaderText      string `json:"header_text"`
	FooterText      string `json:"footer_text"`
	QRCodeText      string `json:"qr_code_text"`
	Address         string `json:"address"`
	Instagram       string `json:"instagram"`
	Website         string `json:"website"`
	ShowLogo        bool   `json:"show_logo"`
	ShowSocialMedia bool   `json:"show_social_media"`
	ShowQRCode      bool   `json:"show_qr_code"`
	LogoURL         string `json:"logo_url,omitempty"`
}

// Payment method types
const (
	PaymentTypeCash     = "Cash"
	PaymentTypeEWallet  = "E-Wallet"
	PaymentTypeTransfer = "Transfer"
	PaymentTypeCard     = "Card"
)

// PaymentMethod is a configured way to settle a sale. Only active methods
// may be named on a transaction.
type PaymentMethod struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Active bool   `json:"active"`
}

// Outlet is a store branch.
type Outlet struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Customer is a registered shopper with an optional loyalty balance.
type Customer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email,omitempty"`
	Points int    `json:"points"`
}

// Supplier is an ingredient or goods supplier with its contact person.
type Supplier struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}
