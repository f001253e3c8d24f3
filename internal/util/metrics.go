package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SalesRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_sales_recorded_total",
		Help: "Total number of completed checkouts",
	})

	SalesFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_sales_failed_total",
		Help: "Total number of rejected checkouts",
	}, []string{"reason"})

	RevenueRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_revenue_recorded_rupiah_total",
		Help: "Total grand-total revenue recorded, in rupiah",
	})

	CartItemsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_cart_items_added_total",
		Help: "Total number of add-to-cart operations",
	})

	CheckoutLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pos_checkout_latency_seconds",
		Help:    "Latency of checkout completion, AI note wait included",
		Buckets: prometheus.DefBuckets,
	})

	AIRequestLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pos_ai_request_latency_seconds",
		Help:    "Latency of generative AI requests",
		Buckets: prometheus.DefBuckets,
	})

	AIFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_ai_fallbacks_total",
		Help: "Total number of AI calls that fell back to a canned string",
	}, []string{"kind"})

	InsightCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_insight_cache_hits_total",
		Help: "Total number of insight reads served from cache",
	})

	InsightCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_insight_cache_misses_total",
		Help: "Total number of insight reads that regenerated",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
