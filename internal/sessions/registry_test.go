package sessions

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/cafe-companion/internal/catalog"
	"github.com/angelmondragon/cafe-companion/pkg/config"
	"github.com/angelmondragon/cafe-companion/pkg/logger"
	"github.com/angelmondragon/cafe-companion/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(reg prometheus.Registerer, logg *logger.Logger) *Registry {
	return NewRegistry(Deps{
		Loyalty: config.LoyaltyConfig{StartingPoints: 120, PointsPerDollar: decimal.NewFromInt(1), NewItemBonus: 5},
		Metrics: metrics.NewStorefront(reg),
		Logger:  logg,
	})
}

func gatherMetric(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestGetOrCreateReturnsSameSession(t *testing.T) {
	reg := prometheus.NewRegistry()
	registry := newTestRegistry(reg, logger.Nop())

	first := registry.GetOrCreate("abc")
	second := registry.GetOrCreate("abc")
	other := registry.GetOrCreate("xyz")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, registry.Len())
	assert.Equal(t, 120, first.Loyalty.Balance())

	_, ok := registry.Get("missing")
	assert.False(t, ok)

	mf := gatherMetric(t, reg, "storefront_sessions")
	require.NotNil(t, mf)
	assert.Equal(t, 2.0, mf.GetMetric()[0].GetGauge().GetValue())
}

func TestGetOrCreateConcurrent(t *testing.T) {
	registry := newTestRegistry(nil, nil)
	var wg sync.WaitGroup
	results := make([]*Session, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = registry.GetOrCreate("shared")
		}(i)
	}
	wg.Wait()
	for _, s := range results {
		assert.Same(t, results[0], s)
	}
	assert.Equal(t, 1, registry.Len())
}

func TestCartListenerRecordsMutations(t *testing.T) {
	reg := prometheus.NewRegistry()
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("info"), Output: &buf})
	registry := newTestRegistry(reg, logg)
	session := registry.GetOrCreate("s-1")

	latte, err := catalog.Default().Get("latte")
	require.NoError(t, err)
	line, err := session.Cart.AddItem(latte, 1, nil, "")
	require.NoError(t, err)
	session.Cart.UpdateQuantity(line.ID, 2)
	session.Cart.RemoveItem("unknown")

	mf := gatherMetric(t, reg, "cart_mutations_total")
	require.NotNil(t, mf)
	counts := map[string]float64{}
	for _, m := range mf.GetMetric() {
		counts[m.GetLabel()[0].GetValue()] = m.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"added": 1, "quantity_updated": 1}, counts)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &entry))
	assert.Equal(t, "cart.changed", entry["message"])
	assert.Equal(t, "s-1", entry["session_id"])
	assert.Equal(t, "quantity_updated", entry["event"])
	assert.Equal(t, "8.00", entry["total"])
}

func TestSessionPreferenceFoldsCart(t *testing.T) {
	registry := newTestRegistry(nil, nil)
	session := registry.GetOrCreate("p")
	assert.Equal(t, []string{"latte", "cappuccino"}, session.Preference().LastOrdered)

	mocha, err := catalog.Default().Get("mocha")
	require.NoError(t, err)
	_, err = session.Cart.AddItem(mocha, 1, map[string]string{"Milk": "Soy"}, "")
	require.NoError(t, err)

	pref := session.Preference()
	assert.Equal(t, []string{"latte", "cappuccino", "mocha"}, pref.LastOrdered)
	assert.Equal(t, []string{"Oat", "Soy"}, pref.MilkTypes)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newExpiringRegistry(reg prometheus.Registerer, clock *fakeClock, ttl time.Duration) *Registry {
	return NewRegistry(Deps{
		Loyalty: config.LoyaltyConfig{StartingPoints: 120, PointsPerDollar: decimal.NewFromInt(1), NewItemBonus: 5},
		Metrics: metrics.NewStorefront(reg),
		Logger:  logger.Nop(),
		IdleTTL: ttl,
		Now:     clock.Now,
	})
}

func TestSweepDropsIdleSessions(t *testing.T) {
	reg := prometheus.NewRegistry()
	clock := &fakeClock{now: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
	registry := newExpiringRegistry(reg, clock, time.Hour)

	registry.GetOrCreate("idle")
	registry.GetOrCreate("busy")

	clock.Advance(45 * time.Minute)
	_, ok := registry.Get("busy")
	require.True(t, ok)

	clock.Advance(30 * time.Minute)
	assert.Equal(t, 1, registry.Sweep())
	assert.Equal(t, 1, registry.Len())

	_, ok = registry.Get("idle")
	assert.False(t, ok)
	_, ok = registry.Get("busy")
	assert.True(t, ok)

	mf := gatherMetric(t, reg, "storefront_sessions")
	require.NotNil(t, mf)
	assert.Equal(t, 1.0, mf.GetMetric()[0].GetGauge().GetValue())

	clock.Advance(2 * time.Hour)
	assert.Equal(t, 1, registry.Sweep())
	assert.Zero(t, registry.Len())
}

func TestSweepWithoutTTLKeepsSessions(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
	registry := newExpiringRegistry(prometheus.NewRegistry(), clock, 0)
	registry.GetOrCreate("abc")

	clock.Advance(24 * time.Hour)
	assert.Zero(t, registry.Sweep())
	assert.Equal(t, 1, registry.Len())
}

func TestPeekDoesNotOpenSessions(t *testing.T) {
	registry := newTestRegistry(prometheus.NewRegistry(), logger.Nop())

	for i := 0; i < 100; i++ {
		s := registry.Peek("anon")
		require.NotNil(t, s)
		assert.Equal(t, 120, s.Loyalty.Balance())
		assert.Zero(t, s.Cart.Snapshot().ItemCount)
	}
	assert.Zero(t, registry.Len())

	opened := registry.GetOrCreate("anon")
	assert.Same(t, opened, registry.Peek("anon"))
}

func TestRunStopsWhenContextCanceled(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	registry := newExpiringRegistry(prometheus.NewRegistry(), clock, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- registry.Run(ctx, time.Millisecond) }()

	registry.GetOrCreate("abc")
	clock.Advance(time.Hour)
	require.Eventually(t, func() bool { return registry.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("run did not stop after cancel")
	}
}
