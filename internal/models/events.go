package models

import "time"

// Event types
const (
	EventTypeSaleRecorded     = "SALE_RECORDED"
	EventTypeInsightGenerated = "INSIGHT_GENERATED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// SaleRecordedEvent is published when a checkout completes. Publishing is
// fire-and-forget: a broker failure never fails the sale.
type SaleRecordedEvent struct {
	BaseEvent
	TransactionID string         `json:"transaction_id"`
	GrandTotal    int64          `json:"grand_total"`
	PaymentMethod string         `json:"payment_method,omitempty"`
	Lines         []SaleLineData `json:"lines"`
}

// InsightGeneratedEvent is published when a new business insight is produced.
type InsightGeneratedEvent struct {
	BaseEvent
	Insight          string `json:"insight"`
	TransactionCount int    `json:"transaction_count"`
}

// SaleLineData represents line data in events
type SaleLineData struct {
	ProductID   string `json:"product_id"`
	VariantName string `json:"variant_name,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
}
