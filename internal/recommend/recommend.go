package recommend

import (
	"fmt"
	"sort"

	"github.com/angelmondragon/cafe-companion/internal/catalog"
	"github.com/angelmondragon/cafe-companion/pkg/enums"
)

// DefaultLimit is the panel size when the caller does not ask for one.
const DefaultLimit = 3

// Weights are the per-signal contributions to a candidate's score.
// Flavor and Milk are per matching option value; their combined
// contribution is capped at OverlapCap.
type Weights struct {
	Purchase   float64 `json:"purchase"`
	Category   float64 `json:"category"`
	Flavor     float64 `json:"flavor"`
	Milk       float64 `json:"milk"`
	OverlapCap float64 `json:"overlap_cap"`
}

// DefaultWeights rank a previous purchase above a same-category match, and a
// same-category match above any flavor/milk overlap.
var DefaultWeights = Weights{
	Purchase:   10,
	Category:   5,
	Flavor:     1,
	Milk:       1,
	OverlapCap: 4,
}

// Validate checks the ordering guarantees: purchase > category + overlap
// cap, and category > overlap cap > 0.
func (w Weights) Validate() error {
	if w.Flavor <= 0 || w.Milk <= 0 || w.OverlapCap <= 0 {
		return fmt.Errorf("flavor, milk and overlap cap weights must be positive")
	}
	if w.Category <= w.OverlapCap {
		return fmt.Errorf("category weight %.2f must exceed overlap cap %.2f", w.Category, w.OverlapCap)
	}
	if w.Purchase <= w.Category+w.OverlapCap {
		return fmt.Errorf("purchase weight %.2f must exceed category weight plus overlap cap (%.2f)", w.Purchase, w.Category+w.OverlapCap)
	}
	return nil
}

// Options tune a single ranking pass.
type Options struct {
	ExcludeID string
	Limit     int
	Weights   Weights
}

// Scored is a candidate with its score.
type Scored struct {
	Item  catalog.MenuItem `json:"item"`
	Score float64          `json:"score"`
}

// Ranking is the outcome of a ranking pass. Fallback is set when no signal
// matched and the items are simply the first candidates in catalog order.
type Ranking struct {
	Items    []Scored `json:"items"`
	Fallback bool     `json:"fallback"`
}

// MenuItems strips the scores.
func (r Ranking) MenuItems() []catalog.MenuItem {
	out := make([]catalog.MenuItem, 0, len(r.Items))
	for _, s := range r.Items {
		out = append(out, s.Item)
	}
	return out
}

// Recommend returns up to opts.Limit candidates ranked against pref. It is
// pure and deterministic and never fails: empty candidates give an empty
// result, and missing preference fields count as empty sets.
func Recommend(candidates []catalog.MenuItem, pref Preference, opts Options) []catalog.MenuItem {
	return Rank(candidates, pref, opts).MenuItems()
}

// Rank is Recommend with the scores kept.
func Rank(candidates []catalog.MenuItem, pref Preference, opts Options) Ranking {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	weights := opts.Weights
	if weights.Validate() != nil {
		weights = DefaultWeights
	}

	recentCategory, hasRecent := recentCategory(candidates, pref)
	ordered := toSet(pref.LastOrdered)
	flavors := toSet(pref.Flavors)
	milks := toSet(pref.MilkTypes)

	scored := make([]Scored, 0, len(candidates))
	anySignal := false
	for _, item := range candidates {
		if opts.ExcludeID != "" && item.ID == opts.ExcludeID {
			continue
		}
		score := 0.0
		if _, ok := ordered[item.ID]; ok {
			score += weights.Purchase
		}
		flavorHits, milkHits := 0, 0
		for _, v := range item.OptionValues() {
			if _, ok := flavors[v]; ok {
				flavorHits++
			}
			if _, ok := milks[v]; ok {
				milkHits++
			}
		}
		overlap := weights.Flavor*float64(flavorHits) + weights.Milk*float64(milkHits)
		if overlap > weights.OverlapCap {
			overlap = weights.OverlapCap
		}
		score += overlap
		if hasRecent && item.Category == recentCategory {
			score += weights.Category
		}
		if score > 0 {
			anySignal = true
		}
		scored = append(scored, Scored{Item: item, Score: score})
	}

	if anySignal {
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Score > scored[j].Score
		})
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return Ranking{Items: scored, Fallback: !anySignal && len(scored) > 0}
}

// recentCategory resolves the category of the most recently ordered item
// against the full candidate list, before any exclusion.
func recentCategory(candidates []catalog.MenuItem, pref Preference) (enums.MenuCategory, bool) {
	id, ok := pref.mostRecent()
	if !ok {
		return "", false
	}
	for _, item := range candidates {
		if item.ID == id {
			return item.Category, true
		}
	}
	return "", false
}
