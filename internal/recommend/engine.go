package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/cafe-companion/internal/catalog"
	"github.com/angelmondragon/cafe-companion/pkg/config"
	"github.com/angelmondragon/cafe-companion/pkg/logger"
	"github.com/angelmondragon/cafe-companion/pkg/metrics"
)

// Engine applies the configured weights and panel size and records metrics
// around each ranking pass.
type Engine struct {
	weights Weights
	limit   int
	metrics *metrics.Storefront
	logg    *logger.Logger
	now     func() time.Time
}

// NewEngine builds an engine from configuration. Weights that would break the
// ranking guarantees are rejected.
func NewEngine(cfg config.RecommendConfig, m *metrics.Storefront, logg *logger.Logger) (*Engine, error) {
	weights := Weights{
		Purchase:   cfg.WeightPurchase,
		Category:   cfg.WeightCategory,
		Flavor:     cfg.WeightFlavor,
		Milk:       cfg.WeightMilk,
		OverlapCap: cfg.OverlapCap,
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("recommendation weights: %w", err)
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Engine{
		weights: weights,
		limit:   limit,
		metrics: m,
		logg:    logg,
		now:     time.Now,
	}, nil
}

// Weights returns the active weights.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Recommend ranks candidates for the "recommended for you" panel. A limit of
// zero or less uses the configured panel size.
func (e *Engine) Recommend(ctx context.Context, candidates []catalog.MenuItem, pref Preference, excludeID string, limit int) Ranking {
	if limit <= 0 {
		limit = e.limit
	}
	start := e.now()
	ranking := Rank(candidates, pref, Options{
		ExcludeID: excludeID,
		Limit:     limit,
		Weights:   e.weights,
	})
	e.metrics.ObserveRecommendation(e.now().Sub(start), ranking.Fallback)

	if e.logg != nil {
		ctx = e.logg.WithFields(ctx, map[string]any{
			"candidates": len(candidates),
			"returned":   len(ranking.Items),
			"exclude_id": excludeID,
			"fallback":   ranking.Fallback,
		})
		e.logg.Debug(ctx, "recommend.ranked")
	}
	return ranking
}
