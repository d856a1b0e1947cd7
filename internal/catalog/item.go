package catalog

import (
	"github.com/angelmondragon/cafe-companion/pkg/enums"
	"github.com/shopspring/decimal"
)

// OptionGroup is one customisation step for a drink, e.g. "Milk" with its
// allowed values in display order.
type OptionGroup struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// MenuItem is a read-only catalog record.
type MenuItem struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Price        decimal.Decimal    `json:"price"`
	Image        string             `json:"image,omitempty"`
	Category     enums.MenuCategory `json:"category"`
	Customizable bool               `json:"customizable"`
	Options      []OptionGroup      `json:"options,omitempty"`
}

// Option returns the group with the given name.
func (m MenuItem) Option(name string) (OptionGroup, bool) {
	for _, group := range m.Options {
		if group.Name == name {
			return group, true
		}
	}
	return OptionGroup{}, false
}

// OptionValues returns every distinct value offered across all groups, in
// group then value order.
func (m MenuItem) OptionValues() []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, group := range m.Options {
		for _, v := range group.Values {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
		}
	}
	return values
}

// Clone returns a deep copy so callers can never reach the catalog's slices.
func (m MenuItem) Clone() MenuItem {
	out := m
	if m.Options != nil {
		out.Options = make([]OptionGroup, len(m.Options))
		for i, group := range m.Options {
			out.Options[i] = OptionGroup{
				Name:   group.Name,
				Values: append([]string(nil), group.Values...),
			}
		}
	}
	return out
}
