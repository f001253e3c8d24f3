package worker

import (
	"context"
	"log"
	"time"

	"pos-service/internal/service"
)

// InsightWorker periodically regenerates the business insight in the
// background so dashboard reads stay warm without waiting on the AI API.
type InsightWorker struct {
	posService *service.PosService
	interval   time.Duration
}

// NewInsightWorker creates a new insight worker
func NewInsightWorker(posService *service.PosService, interval time.Duration) *InsightWorker {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &InsightWorker{
		posService: posService,
		interval:   interval,
	}
}

// Start runs the worker until the context is cancelled. One refresh runs
// immediately so the first dashboard view already has an insight.
func (w *InsightWorker) Start(ctx context.Context) error {
	log.Printf("Starting insight worker: interval=%s", w.interval)

	w.posService.RefreshInsight(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Insight worker context cancelled, stopping...")
			return ctx.Err()
		case <-ticker.C:
			w.posService.RefreshInsight(ctx)
		}
	}
}
