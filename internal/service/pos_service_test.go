package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"pos-service/config"
	"pos-service/internal/cart"
	"pos-service/internal/catalog"
	"pos-service/internal/ledger"
	"pos-service/internal/models"
	"pos-service/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubNotes is a NoteGenerator that optionally blocks until the context is
// done, mimicking a slow AI backend with the client's fallback contract.
type stubNotes struct {
	note    string
	insight string
	block   bool

	receiptCalls int
	insightCalls int
}

func (s *stubNotes) ReceiptNote(ctx context.Context, _ []models.CartLine, _ int64) string {
	s.receiptCalls++
	if s.block {
		<-ctx.Done()
		return "fallback-note"
	}
	return s.note
}

func (s *stubNotes) BusinessInsight(ctx context.Context, _ []models.Transaction) string {
	s.insightCalls++
	if s.block {
		<-ctx.Done()
		return "fallback-insight"
	}
	return s.insight
}

type memoryCache struct {
	value string
}

func (m *memoryCache) GetInsight(_ context.Context) (string, error) { return m.value, nil }
func (m *memoryCache) SetInsight(_ context.Context, insight string, _ time.Duration) error {
	m.value = insight
	return nil
}

func newTestService(notes NoteGenerator, cache InsightCache) (*PosService, *ledger.Ledger) {
	l := ledger.New()
	s := NewPosService(
		catalog.NewSeededStore(),
		l,
		settings.NewStore(
			config.PricingConfig{TaxPercentage: 11, ServicePercentage: 5, TaxEnabled: true},
			config.ReceiptConfig{StoreName: "Test"},
		),
		notes,
		cache,
		nil, // no broker in tests
		200*time.Millisecond,
		time.Minute,
	)
	return s, l
}

func TestAddToCartAndView(t *testing.T) {
	s, _ := newTestService(&stubNotes{}, nil)

	view, err := s.AddToCart("pos-1", "1", "")
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, int64(25000), view.Totals.Subtotal)

	view, err = s.AddToCart("pos-1", "3", "Large")
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, int64(47000), view.Totals.Subtotal)

	// Tax 11% enabled on the settings used by the view.
	assert.Equal(t, int64(5170), view.Totals.TaxAmount)
	assert.Equal(t, int64(52170), view.Totals.GrandTotal)
}

func TestAddToCartErrors(t *testing.T) {
	s, _ := newTestService(&stubNotes{}, nil)

	_, err := s.AddToCart("pos-1", "missing", "")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	// Product 3 has variants; adding without one is an invalid selection.
	_, err = s.AddToCart("pos-1", "3", "")
	assert.ErrorIs(t, err, cart.ErrInvalidSelection)
}

func TestUpdateQuantityStaleReferenceIsNoOp(t *testing.T) {
	s, _ := newTestService(&stubNotes{}, nil)

	_, err := s.AddToCart("pos-1", "1", "")
	require.NoError(t, err)

	view := s.UpdateQuantity("pos-1", "never-added", "", -1)
	require.Len(t, view.Lines, 1)

	view = s.UpdateQuantity("pos-1", "1", "", -5)
	assert.Empty(t, view.Lines)
}

func TestSessionsAreIsolated(t *testing.T) {
	s, _ := newTestService(&stubNotes{}, nil)

	_, err := s.AddToCart("pos-1", "1", "")
	require.NoError(t, err)

	assert.Empty(t, s.Cart("pos-2").Lines)
	assert.Len(t, s.Cart("pos-1").Lines, 1)
}

func TestCheckout(t *testing.T) {
	notes := &stubNotes{note: "Selamat menikmati!"}
	s, l := newTestService(notes, nil)

	_, err := s.AddToCart("pos-1", "1", "")
	require.NoError(t, err)
	_, err = s.AddToCart("pos-1", "1", "")
	require.NoError(t, err)
	_, err = s.AddToCart("pos-1", "4", "")
	require.NoError(t, err)

	tx, err := s.Checkout(context.Background(), "pos-1", CheckoutRequest{PaymentMethod: "Cash"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(tx.ID, "INV-"))
	assert.Equal(t, int64(58000), tx.Subtotal)
	assert.Equal(t, int64(6380), tx.TaxAmount)
	assert.Equal(t, int64(0), tx.ServiceAmount)
	assert.Equal(t, int64(64380), tx.GrandTotal)
	assert.Equal(t, "Selamat menikmati!", tx.AINote)
	assert.Equal(t, "Umum", tx.CustomerName)
	assert.Equal(t, "Cash", tx.PaymentMethod)

	// Exactly one transaction, at the head of the log, and the cart is empty.
	txs := l.List()
	require.Len(t, txs, 1)
	assert.Equal(t, tx.ID, txs[0].ID)
	assert.Zero(t, s.Cart("pos-1").Totals.GrandTotal)
	assert.Empty(t, s.Cart("pos-1").Lines)

	// Receipt ids are unique per session.
	_, err = s.AddToCart("pos-1", "4", "")
	require.NoError(t, err)
	tx2, err := s.Checkout(context.Background(), "pos-1", CheckoutRequest{})
	require.NoError(t, err)
	assert.NotEqual(t, tx.ID, tx2.ID)
	assert.Equal(t, tx2.ID, l.List()[0].ID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	s, l := newTestService(&stubNotes{}, nil)

	_, err := s.Checkout(context.Background(), "pos-1", CheckoutRequest{})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, l.Len())
}

func TestCheckoutUnknownPaymentMethod(t *testing.T) {
	s, l := newTestService(&stubNotes{}, nil)

	_, err := s.AddToCart("pos-1", "1", "")
	require.NoError(t, err)

	_, err = s.Checkout(context.Background(), "pos-1", CheckoutRequest{PaymentMethod: "Cek Mundur"})
	assert.ErrorIs(t, err, ErrUnknownPaymentMethod)
	assert.Zero(t, l.Len())

	// Cart survives the rejection.
	assert.Len(t, s.Cart("pos-1").Lines, 1)
}

func TestCheckoutSnapshotIsImmutable(t *testing.T) {
	s, l := newTestService(&stubNotes{note: "ok"}, nil)

	_, err := s.AddToCart("pos-1", "1", "")
	require.NoError(t, err)
	_, err = s.Checkout(context.Background(), "pos-1", CheckoutRequest{})
	require.NoError(t, err)

	// New cart activity after checkout never touches the recorded sale.
	_, err = s.AddToCart("pos-1", "4", "")
	require.NoError(t, err)

	txs := l.List()
	require.Len(t, txs, 1)
	require.Len(t, txs[0].Lines, 1)
	assert.Equal(t, "1", txs[0].Lines[0].ProductID)
}

func TestCheckoutAILatencyIsBounded(t *testing.T) {
	s, l := newTestService(&stubNotes{block: true}, nil)

	_, err := s.AddToCart("pos-1", "1", "")
	require.NoError(t, err)

	start := time.Now()
	tx, err := s.Checkout(context.Background(), "pos-1", CheckoutRequest{})
	require.NoError(t, err)

	// The note timeout is 200ms; a hung AI backend must not hold the sale
	// much longer than that.
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, "fallback-note", tx.AINote)
	assert.Equal(t, 1, l.Len())
}

func TestReportsThroughService(t *testing.T) {
	s, l := newTestService(&stubNotes{note: "ok"}, nil)
	ledger.SeedDemo(l, 20)

	summary := s.Summary(nil, nil)
	assert.Equal(t, 20, summary.Count)
	assert.Positive(t, summary.Revenue)
	assert.Positive(t, summary.Average)

	series := s.DailyRevenue(nil, nil)
	assert.NotEmpty(t, series)
	assert.LessOrEqual(t, len(series), 7)

	// An explicit range disables the 7-day truncation and is inclusive.
	start := time.Now().AddDate(0, 0, -30)
	end := time.Now()
	filtered := s.Transactions(&start, &end)
	assert.Len(t, filtered, 20)
}

func TestInsightUsesCache(t *testing.T) {
	notes := &stubNotes{insight: "jual lebih banyak kopi"}
	cache := &memoryCache{}
	s, _ := newTestService(notes, cache)

	// First read misses and generates.
	got := s.Insight(context.Background())
	assert.Equal(t, "jual lebih banyak kopi", got)
	assert.Equal(t, 1, notes.insightCalls)
	assert.Equal(t, "jual lebih banyak kopi", cache.value)

	// Second read is served from the cache.
	got = s.Insight(context.Background())
	assert.Equal(t, "jual lebih banyak kopi", got)
	assert.Equal(t, 1, notes.insightCalls)
}

func TestRefreshInsightOverwritesCache(t *testing.T) {
	notes := &stubNotes{insight: "analisis baru"}
	cache := &memoryCache{value: "analisis lama"}
	s, _ := newTestService(notes, cache)

	got := s.RefreshInsight(context.Background())
	assert.Equal(t, "analisis baru", got)
	assert.Equal(t, "analisis baru", cache.value)
}
