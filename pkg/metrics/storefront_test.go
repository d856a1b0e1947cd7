package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStorefrontExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStorefront(reg)

	m.IncCartMutation("added")
	m.IncCartMutation("added")
	m.IncCartMutation("")
	m.ObserveRecommendation(250*time.Microsecond, true)
	m.ObserveRecommendation(100*time.Microsecond, false)
	m.IncRedemption("free-latte")
	m.IncGiftCardSent("birthday")
	m.IncTableOrder()
	m.SetSessions(4)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "cart_mutations_total", "event", "added"); err != nil {
		t.Fatalf("fetch cart mutations: %v", err)
	} else if got != 2 {
		t.Fatalf("expected added=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "cart_mutations_total", "event", "unknown"); err != nil {
		t.Fatalf("fetch unknown label: %v", err)
	} else if got != 1 {
		t.Fatalf("expected unknown=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "loyalty_redemptions_total", "reward", "free-latte"); err != nil || got != 1 {
		t.Fatalf("expected one redemption, got %f (%v)", got, err)
	}

	if got, err := fetchCounterValue(mfs, "gift_cards_sent_total", "template", "birthday"); err != nil || got != 1 {
		t.Fatalf("expected one gift card, got %f (%v)", got, err)
	}

	fallback := findMetricFamily(mfs, "recommendation_fallback_total")
	if fallback == nil || fallback.GetMetric()[0].GetCounter().GetValue() != 1 {
		t.Fatalf("expected one fallback")
	}

	hist := findMetricFamily(mfs, "recommendation_duration_seconds")
	if hist == nil || hist.GetMetric()[0].GetHistogram().GetSampleCount() != 2 {
		t.Fatalf("expected two recommendation observations")
	}

	sessions := findMetricFamily(mfs, "storefront_sessions")
	if sessions == nil || sessions.GetMetric()[0].GetGauge().GetValue() != 4 {
		t.Fatalf("expected sessions gauge of 4")
	}
}

func TestNilStorefrontIsNoop(t *testing.T) {
	var m *Storefront
	m.IncCartMutation("added")
	m.ObserveRecommendation(time.Millisecond, true)
	m.IncTableOrder()
	m.SetSessions(1)

	unregistered := NewStorefront(nil)
	unregistered.IncGiftCardSent("holiday")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
