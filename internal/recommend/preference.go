package recommend

// Preference is a snapshot of what a shopper tends to order. The slices are
// treated as sets; LastOrdered keeps order with the most recent id last.
// Snapshots are never mutated in place, use Derive to build a new one.
type Preference struct {
	LastOrdered []string `json:"last_ordered"`
	Flavors     []string `json:"flavors"`
	MilkTypes   []string `json:"milk_types"`
}

// Selection is an item the shopper picked, with the options they chose.
type Selection struct {
	ItemID         string
	Customizations map[string]string
}

// option groups folded into the preference profile
const (
	groupFlavor = "Flavor"
	groupExtras = "Extras"
	groupMilk   = "Milk"
)

// MockPreference is the base profile every session starts from.
func MockPreference() Preference {
	return Preference{
		LastOrdered: []string{"latte", "cappuccino"},
		Flavors:     []string{"Vanilla", "Caramel"},
		MilkTypes:   []string{"Oat"},
	}
}

// Derive folds selections into a copy of base: item ids are appended to
// LastOrdered, Flavor and Extras choices to Flavors, Milk choices to
// MilkTypes. A reordered id moves to the end of LastOrdered so it stays the
// most recent; other duplicates keep their first position. base is left
// untouched.
func Derive(base Preference, selections []Selection) Preference {
	ordered := append([]string(nil), base.LastOrdered...)
	flavors := append([]string(nil), base.Flavors...)
	milks := append([]string(nil), base.MilkTypes...)

	for _, sel := range selections {
		if sel.ItemID != "" {
			ordered = append(ordered, sel.ItemID)
		}
		// fixed group order keeps the result deterministic
		for _, group := range []string{groupFlavor, groupExtras} {
			if v, ok := sel.Customizations[group]; ok && v != "" {
				flavors = append(flavors, v)
			}
		}
		if v, ok := sel.Customizations[groupMilk]; ok && v != "" {
			milks = append(milks, v)
		}
	}

	return Preference{
		LastOrdered: dedupeKeepLast(ordered),
		Flavors:     dedupe(flavors),
		MilkTypes:   dedupe(milks),
	}
}

// mostRecent returns the last ordered id, if any.
func (p Preference) mostRecent() (string, bool) {
	if len(p.LastOrdered) == 0 {
		return "", false
	}
	return p.LastOrdered[len(p.LastOrdered)-1], true
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func dedupeKeepLast(values []string) []string {
	last := make(map[string]int, len(values))
	for i, v := range values {
		last[v] = i
	}
	out := make([]string, 0, len(last))
	for i, v := range values {
		if last[v] == i {
			out = append(out, v)
		}
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
