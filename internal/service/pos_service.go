package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pos-service/internal/broker"
	"pos-service/internal/cart"
	"pos-service/internal/catalog"
	"pos-service/internal/ledger"
	"pos-service/internal/models"
	"pos-service/internal/report"
	"pos-service/internal/settings"
	"pos-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrUnknownPaymentMethod = errors.New("unknown or inactive payment method")
)

// NoteGenerator produces advisory natural-language strings. Implementations
// never return an error: on any failure they return a fallback string, and
// they honor the deadline on the passed context.
type NoteGenerator interface {
	ReceiptNote(ctx context.Context, lines []models.CartLine, grandTotal int64) string
	BusinessInsight(ctx context.Context, txs []models.Transaction) string
}

// InsightCache stores the latest generated business insight. A nil cache is
// valid and means every read regenerates.
type InsightCache interface {
	GetInsight(ctx context.Context) (string, error)
	SetInsight(ctx context.Context, insight string, ttl time.Duration) error
}

// PosService owns the session carts and orchestrates checkout against the
// catalog, settings, ledger, AI and broker collaborators.
type PosService struct {
	catalog   *catalog.Store
	ledger    *ledger.Ledger
	settings  *settings.Store
	notes     NoteGenerator
	cache     InsightCache           // may be nil
	publisher *broker.EventPublisher // may be nil
	logger    *zap.Logger

	noteTimeout time.Duration
	insightTTL  time.Duration

	mu    sync.Mutex
	carts map[string]*cart.Cart
}

// NewPosService creates a new POS service. cache and publisher may be nil
// when Redis/Kafka are not configured.
func NewPosService(
	catalogStore *catalog.Store,
	txLedger *ledger.Ledger,
	settingsStore *settings.Store,
	notes NoteGenerator,
	cache InsightCache,
	publisher *broker.EventPublisher,
	noteTimeout time.Duration,
	insightTTL time.Duration,
) *PosService {
	if noteTimeout <= 0 {
		noteTimeout = 5 * time.Second
	}

	return &PosService{
		catalog:     catalogStore,
		ledger:      txLedger,
		settings:    settingsStore,
		notes:       notes,
		cache:       cache,
		publisher:   publisher,
		logger:      util.NamedLogger("pos"),
		noteTimeout: noteTimeout,
		insightTTL:  insightTTL,
		carts:       make(map[string]*cart.Cart),
	}
}

// CartView is the cart state exposed to the presentation layer: the lines
// plus totals derived from the current pricing config.
type CartView struct {
	SessionID string            `json:"session_id"`
	Lines     []models.CartLine `json:"lines"`
	Totals    models.Totals     `json:"totals"`
}

// CheckoutRequest carries the optional checkout annotations.
type CheckoutRequest struct {
	CustomerName  string `json:"customer_name"`
	PaymentMethod string `json:"payment_method"`
}

// Cart returns the current cart view for a session.
func (s *PosService) Cart(sessionID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartViewLocked(sessionID)
}

// AddToCart adds one unit of a product (and variant, when the product has
// variants) to the session's cart.
func (s *PosService) AddToCart(sessionID, productID, variantName string) (CartView, error) {
	product, err := s.catalog.ProductByID(productID)
	if err != nil {
		return CartView{}, fmt.Errorf("failed to add to cart: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cartLocked(sessionID).AddItem(product, variantName); err != nil {
		return CartView{}, err
	}

	util.CartItemsAddedTotal.Inc()
	return s.cartViewLocked(sessionID), nil
}

// UpdateQuantity adjusts a cart line by delta. Missing lines are a no-op.
func (s *PosService) UpdateQuantity(sessionID, productID, variantName string, delta int) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cartLocked(sessionID).ChangeQuantity(productID, variantName, delta)
	return s.cartViewLocked(sessionID)
}

// ClearCart abandons the session's cart.
func (s *PosService) ClearCart(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartLocked(sessionID).Clear()
}

// Checkout finalizes the session's cart into an immutable transaction: it
// snapshots the lines, computes totals from the current pricing config,
// waits (bounded) for the AI receipt note, records the transaction at the
// head of the ledger and empties the cart. The AI call can only delay
// checkout up to the note timeout, never fail it.
func (s *PosService) Checkout(ctx context.Context, sessionID string, req CheckoutRequest) (models.Transaction, error) {
	ctx, span := util.StartSpan(ctx, "PosService.Checkout")
	defer span.End()

	start := time.Now()
	defer func() {
		util.CheckoutLatency.Observe(time.Since(start).Seconds())
	}()

	s.mu.Lock()
	sessionCart := s.cartLocked(sessionID)
	lines := sessionCart.Lines()
	s.mu.Unlock()

	if len(lines) == 0 {
		util.SalesFailedTotal.WithLabelValues("empty_cart").Inc()
		return models.Transaction{}, ErrEmptyCart
	}

	if req.PaymentMethod != "" && !s.settings.IsActivePaymentMethod(req.PaymentMethod) {
		util.SalesFailedTotal.WithLabelValues("unknown_payment_method").Inc()
		return models.Transaction{}, fmt.Errorf("%q: %w", req.PaymentMethod, ErrUnknownPaymentMethod)
	}

	totals := cart.ComputeTotals(lines, s.settings.Pricing())

	noteCtx, cancel := context.WithTimeout(ctx, s.noteTimeout)
	note := s.notes.ReceiptNote(noteCtx, lines, totals.GrandTotal)
	cancel()

	customer := req.CustomerName
	if customer == "" {
		customer = "Umum"
	}

	tx := models.Transaction{
		ID:            newReceiptID(),
		CreatedAt:     time.Now(),
		Lines:         lines,
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.TaxAmount,
		ServiceAmount: totals.ServiceAmount,
		GrandTotal:    totals.GrandTotal,
		CustomerName:  customer,
		PaymentMethod: req.PaymentMethod,
		AINote:        note,
	}

	s.ledger.Record(tx)

	s.mu.Lock()
	sessionCart.Clear()
	s.mu.Unlock()

	util.SalesRecordedTotal.Inc()
	util.RevenueRecordedTotal.Add(float64(tx.GrandTotal))
	s.logger.Info("Sale recorded",
		zap.String("transaction_id", tx.ID),
		zap.Int64("grand_total", tx.GrandTotal),
		zap.Int("lines", len(tx.Lines)))

	s.publishSaleRecorded(ctx, tx)

	return tx, nil
}

// Transactions returns the (optionally date-filtered) transaction log,
// newest first. Bounds are inclusive at calendar-day granularity.
func (s *PosService) Transactions(start, end *time.Time) []models.Transaction {
	return report.FilterByDate(s.ledger.List(), start, end)
}

// DailyRevenue returns the daily revenue series. Without an explicit date
// filter the series is truncated to the most recent seven day buckets.
func (s *PosService) DailyRevenue(start, end *time.Time) []report.DayRevenue {
	limit := 0
	if start == nil && end == nil {
		limit = report.DefaultSeriesDays
	}
	return report.DailySeries(s.Transactions(start, end), limit)
}

// Summary returns the headline stats over the (optionally filtered) log.
func (s *PosService) Summary(start, end *time.Time) report.Summary {
	return report.Summarize(s.Transactions(start, end))
}

// Insight returns the current business insight, serving from the cache when
// one is configured and fresh.
func (s *PosService) Insight(ctx context.Context) string {
	if s.cache != nil {
		cached, err := s.cache.GetInsight(ctx)
		if err != nil {
			s.logger.Warn("Insight cache read failed", zap.Error(err))
		} else if cached != "" {
			util.InsightCacheHitsTotal.Inc()
			return cached
		}
	}

	util.InsightCacheMissesTotal.Inc()
	return s.RefreshInsight(ctx)
}

// RefreshInsight regenerates the business insight from the full transaction
// log, stores it in the cache and announces it. Also called by the periodic
// insight worker.
func (s *PosService) RefreshInsight(ctx context.Context) string {
	txs := s.ledger.List()

	insightCtx, cancel := context.WithTimeout(ctx, s.noteTimeout)
	insight := s.notes.BusinessInsight(insightCtx, txs)
	cancel()

	if s.cache != nil {
		if err := s.cache.SetInsight(ctx, insight, s.insightTTL); err != nil {
			s.logger.Warn("Insight cache write failed", zap.Error(err))
		}
	}

	if s.publisher != nil {
		event := &models.InsightGeneratedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeInsightGenerated,
				Timestamp: time.Now(),
			},
			Insight:          insight,
			TransactionCount: len(txs),
		}
		if err := s.publisher.PublishInsightGenerated(ctx, event); err != nil {
			s.logger.Error("Failed to publish InsightGenerated event", zap.Error(err))
		}
	}

	return insight
}

func (s *PosService) publishSaleRecorded(ctx context.Context, tx models.Transaction) {
	if s.publisher == nil {
		return
	}

	lines := make([]models.SaleLineData, len(tx.Lines))
	for i, line := range tx.Lines {
		lines[i] = models.SaleLineData{
			ProductID:   line.ProductID,
			VariantName: line.VariantName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		}
	}

	event := &models.SaleRecordedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeSaleRecorded,
			Timestamp: time.Now(),
		},
		TransactionID: tx.ID,
		GrandTotal:    tx.GrandTotal,
		PaymentMethod: tx.PaymentMethod,
		Lines:         lines,
	}

	if err := s.publisher.PublishSaleRecorded(ctx, event); err != nil {
		s.logger.Error("Failed to publish SaleRecorded event",
			zap.String("transaction_id", tx.ID),
			zap.Error(err))
	}
}

// cartLocked returns the session's cart, creating it on first use.
// Caller must hold s.mu.
func (s *PosService) cartLocked(sessionID string) *cart.Cart {
	c, ok := s.carts[sessionID]
	if !ok {
		c = cart.New()
		s.carts[sessionID] = c
	}
	return c
}

func (s *PosService) cartViewLocked(sessionID string) CartView {
	c := s.cartLocked(sessionID)
	return CartView{
		SessionID: sessionID,
		Lines:     c.Lines(),
		Totals:    c.Totals(s.settings.Pricing()),
	}
}

func newReceiptID() string {
	return "INV-" + strings.ToUpper(uuid.New().String()[:8])
}
