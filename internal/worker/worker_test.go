package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"pos-service/config"
	"pos-service/internal/catalog"
	"pos-service/internal/ledger"
	"pos-service/internal/models"
	"pos-service/internal/service"
	"pos-service/internal/settings"

	"github.com/stretchr/testify/assert"
)

type countingNotes struct {
	insights int32
}

func (c *countingNotes) ReceiptNote(context.Context, []models.CartLine, int64) string {
	return "ok"
}

func (c *countingNotes) BusinessInsight(context.Context, []models.Transaction) string {
	atomic.AddInt32(&c.insights, 1)
	return "insight"
}

func TestInsightWorkerRefreshesPeriodically(t *testing.T) {
	notes := &countingNotes{}
	posService := service.NewPosService(
		catalog.NewSeededStore(),
		ledger.New(),
		settings.NewStore(config.PricingConfig{}, config.ReceiptConfig{}),
		notes,
		nil,
		nil,
		time.Second,
		time.Minute,
	)

	w := NewInsightWorker(posService, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()

	err := w.Start(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// One immediate refresh plus at least one tick.
	assert.GreaterOrEqual(t, atomic.LoadInt32(&notes.insights), int32(2))
}
