package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/angelmondragon/cafe-companion/pkg/enums"
	pkgerrors "github.com/angelmondragon/cafe-companion/pkg/errors"
	"go.uber.org/multierr"
)

// ErrUnknownItem is returned when an id does not exist in the catalog.
var ErrUnknownItem = errors.New("menu item not found")

// Catalog is the immutable menu. Every accessor hands out copies.
type Catalog struct {
	items    []MenuItem
	byID     map[string]int
	featured []string
}

// New builds a catalog from the provided records. Ids must be unique and
// prices non-negative.
func New(items []MenuItem, featured ...string) (*Catalog, error) {
	c := &Catalog{
		items:    make([]MenuItem, 0, len(items)),
		byID:     make(map[string]int, len(items)),
		featured: append([]string(nil), featured...),
	}
	for _, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			return nil, fmt.Errorf("menu item %q has no id", item.Name)
		}
		if _, dup := c.byID[item.ID]; dup {
			return nil, fmt.Errorf("duplicate menu item id %q", item.ID)
		}
		if item.Price.IsNegative() {
			return nil, fmt.Errorf("menu item %q has a negative price", item.ID)
		}
		if !item.Category.IsValid() {
			return nil, fmt.Errorf("menu item %q has unknown category %q", item.ID, item.Category)
		}
		c.byID[item.ID] = len(c.items)
		c.items = append(c.items, item.Clone())
	}
	for _, id := range c.featured {
		if _, ok := c.byID[id]; !ok {
			return nil, fmt.Errorf("featured item %q is not on the menu", id)
		}
	}
	return c, nil
}

// List returns the whole menu in catalog order.
func (c *Catalog) List() []MenuItem {
	return c.filter(func(MenuItem) bool { return true })
}

// Get returns the item with the given id.
func (c *Catalog) Get(id string) (MenuItem, error) {
	idx, ok := c.byID[id]
	if !ok {
		return MenuItem{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, ErrUnknownItem, fmt.Sprintf("menu item %q not found", id))
	}
	return c.items[idx].Clone(), nil
}

// ByCategory returns the items of one category in catalog order.
func (c *Catalog) ByCategory(category enums.MenuCategory) []MenuItem {
	return c.filter(func(item MenuItem) bool { return item.Category == category })
}

// Customizable returns the items that can be customised, the candidate pool
// for recommendations.
func (c *Catalog) Customizable() []MenuItem {
	return c.filter(func(item MenuItem) bool { return item.Customizable })
}

// Featured returns the hand-picked items shown on the menu page.
func (c *Catalog) Featured() []MenuItem {
	out := make([]MenuItem, 0, len(c.featured))
	for _, id := range c.featured {
		out = append(out, c.items[c.byID[id]].Clone())
	}
	return out
}

func (c *Catalog) filter(keep func(MenuItem) bool) []MenuItem {
	out := make([]MenuItem, 0, len(c.items))
	for _, item := range c.items {
		if keep(item) {
			out = append(out, item.Clone())
		}
	}
	return out
}

// ValidateCustomizations checks that every chosen group belongs to the item
// and every value is allowed for its group. All problems are reported at
// once; details map group name to the reason.
func ValidateCustomizations(item MenuItem, chosen map[string]string) error {
	if len(chosen) == 0 {
		return nil
	}

	groups := make([]string, 0, len(chosen))
	for group := range chosen {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	var errs error
	details := map[string]string{}
	for _, name := range groups {
		value := chosen[name]
		group, ok := item.Option(name)
		if !ok {
			details[name] = "is not offered for this item"
			errs = multierr.Append(errs, fmt.Errorf("%s: option group %q not offered", item.ID, name))
			continue
		}
		if !contains(group.Values, value) {
			details[name] = fmt.Sprintf("must be one of %s", strings.Join(group.Values, ", "))
			errs = multierr.Append(errs, fmt.Errorf("%s: %q is not a valid %s", item.ID, value, name))
		}
	}
	if errs == nil {
		return nil
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid customizations").WithDetails(details)
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
