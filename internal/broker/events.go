package broker

import (
	"context"
	"fmt"

	"pos-service/internal/models"
)

// EventPublisher publishes POS domain events. All publishes are advisory:
// the register keeps working when the broker is down, so callers log publish
// errors and move on.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishSaleRecorded publishes a SaleRecorded event keyed by transaction id.
func (ep *EventPublisher) PublishSaleRecorded(ctx context.Context, event *models.SaleRecordedEvent) error {
	key := fmt.Sprintf("sale-%s", event.TransactionID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishInsightGenerated publishes an InsightGenerated event.
func (ep *EventPublisher) PublishInsightGenerated(ctx context.Context, event *models.InsightGeneratedEvent) error {
	return ep.producer.PublishEvent(ctx, "insight", event)
}
