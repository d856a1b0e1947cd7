package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Storefront records what shoppers do with carts, recommendations and the
// loyalty/gift/table flows. A nil *Storefront is a valid no-op recorder.
type Storefront struct {
	cartMutations     *prometheus.CounterVec
	recommendDuration prometheus.Histogram
	recommendFallback prometheus.Counter
	redemptions       *prometheus.CounterVec
	giftCardsSent     *prometheus.CounterVec
	tableOrders       prometheus.Counter
	activeSessions    prometheus.Gauge
}

// NewStorefront registers the storefront metrics on the provided registerer.
func NewStorefront(reg prometheus.Registerer) *Storefront {
	if reg == nil {
		return &Storefront{}
	}
	s := &Storefront{
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Cart mutations by event type.",
		}, []string{"event"}),
		recommendDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time spent ranking recommendation candidates.",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
		}),
		recommendFallback: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recommendation_fallback_total",
			Help: "Recommendations served in catalog order because no signal matched.",
		}),
		redemptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loyalty_redemptions_total",
			Help: "Loyalty rewards redeemed.",
		}, []string{"reward"}),
		giftCardsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gift_cards_sent_total",
			Help: "Gift cards handed to the sender.",
		}, []string{"template"}),
		tableOrders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "table_orders_placed_total",
			Help: "Scan-at-table orders pushed into a cart.",
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_sessions",
			Help: "Storefront sessions currently held in memory.",
		}),
	}
	reg.MustRegister(
		s.cartMutations,
		s.recommendDuration,
		s.recommendFallback,
		s.redemptions,
		s.giftCardsSent,
		s.tableOrders,
		s.activeSessions,
	)
	return s
}

// IncCartMutation counts one effective cart mutation.
func (s *Storefront) IncCartMutation(event string) {
	if s == nil || s.cartMutations == nil {
		return
	}
	s.cartMutations.WithLabelValues(normalizeLabel(event)).Inc()
}

// ObserveRecommendation records a ranking pass and whether it fell back.
func (s *Storefront) ObserveRecommendation(duration time.Duration, fallback bool) {
	if s == nil || s.recommendDuration == nil {
		return
	}
	s.recommendDuration.Observe(duration.Seconds())
	if fallback {
		s.recommendFallback.Inc()
	}
}

func (s *Storefront) IncRedemption(reward string) {
	if s == nil || s.redemptions == nil {
		return
	}
	s.redemptions.WithLabelValues(normalizeLabel(reward)).Inc()
}

func (s *Storefront) IncGiftCardSent(template string) {
	if s == nil || s.giftCardsSent == nil {
		return
	}
	s.giftCardsSent.WithLabelValues(normalizeLabel(template)).Inc()
}

func (s *Storefront) IncTableOrder() {
	if s == nil || s.tableOrders == nil {
		return
	}
	s.tableOrders.Inc()
}

func (s *Storefront) SetSessions(n int) {
	if s == nil || s.activeSessions == nil {
		return
	}
	s.activeSessions.Set(float64(n))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
