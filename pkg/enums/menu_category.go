package enums

import "fmt"

// MenuCategory groups drinks on the menu.
type MenuCategory string

const (
	MenuCategoryEspresso  MenuCategory = "Espresso"
	MenuCategoryMilkBased MenuCategory = "Milk-based"
	MenuCategoryCold      MenuCategory = "Cold"
)

var validMenuCategories = []MenuCategory{
	MenuCategoryEspresso,
	MenuCategoryMilkBased,
	MenuCategoryCold,
}

// String implements fmt.Stringer.
func (c MenuCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known MenuCategory.
func (c MenuCategory) IsValid() bool {
	for _, candidate := range validMenuCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseMenuCategory converts raw input into a MenuCategory.
func ParseMenuCategory(value string) (MenuCategory, error) {
	for _, candidate := range validMenuCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid menu category %q", value)
}
