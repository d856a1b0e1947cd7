package catalog

import (
	"github.com/angelmondragon/cafe-companion/pkg/enums"
	"github.com/shopspring/decimal"
)

var sizes = OptionGroup{Name: "Size", Values: []string{"Small", "Medium", "Large"}}

var milks = OptionGroup{Name: "Milk", Values: []string{"Whole", "Skim", "Almond", "Soy", "Oat"}}

// CoffeeMenu is the café's fixed drink list.
func CoffeeMenu() []MenuItem {
	return []MenuItem{
		{
			ID:           "espresso",
			Name:         "Espresso",
			Description:  "A concentrated coffee brewed by forcing hot water under pressure through finely-ground coffee beans.",
			Price:        decimal.RequireFromString("2.50"),
			Image:        "/images/esspresso.png",
			Category:     enums.MenuCategoryEspresso,
			Customizable: true,
			Options: []OptionGroup{
				{Name: "Size", Values: []string{"Single", "Double", "Triple"}},
				{Name: "Strength", Values: []string{"Regular", "Strong", "Extra Strong"}},
				{Name: "Temperature", Values: []string{"Hot", "Extra Hot"}},
			},
		},
		{
			ID:           "americano",
			Name:         "Americano",
			Description:  "Espresso diluted with hot water, similar in strength to coffee but with a different flavor.",
			Price:        decimal.RequireFromString("3.00"),
			Image:        "/images/americano.png",
			Category:     enums.MenuCategoryEspresso,
			Customizable: true,
			Options: []OptionGroup{
				sizes,
				{Name: "Strength", Values: []string{"Regular", "Strong", "Extra Strong"}},
			},
		},
		{
			ID:           "cappuccino",
			Name:         "Cappuccino",
			Description:  "Equal parts espresso, steamed milk, and milk foam.",
			Price:        decimal.RequireFromString("3.50"),
			Image:        "/images/cappucino.png",
			Category:     enums.MenuCategoryMilkBased,
			Customizable: true,
			Options: []OptionGroup{
				sizes,
				milks,
				{Name: "Extras", Values: []string{"Cinnamon", "Chocolate Powder", "Vanilla Syrup"}},
			},
		},
		{
			ID:           "latte",
			Name:         "Latte",
			Description:  "Espresso with steamed milk and a small layer of milk foam.",
			Price:        decimal.RequireFromString("4.00"),
			Image:        "/images/latte.png",
			Category:     enums.MenuCategoryMilkBased,
			Customizable: true,
			Options: []OptionGroup{
				sizes,
				milks,
				{Name: "Flavor", Values: []string{"None", "Vanilla", "Caramel", "Hazelnut", "Mocha"}},
			},
		},
		{
			ID:           "mocha",
			Name:         "Mocha",
			Description:  "A chocolate-flavored variant of a latte.",
			Price:        decimal.RequireFromString("4.50"),
			Image:        "/images/mocha.png",
			Category:     enums.MenuCategoryMilkBased,
			Customizable: true,
			Options: []OptionGroup{
				sizes,
				milks,
				{Name: "Chocolate", Values: []string{"Dark", "Milk", "White"}},
				{Name: "Whipped Cream", Values: []string{"Yes", "No"}},
			},
		},
		{
			ID:           "cold-brew",
			Name:         "Cold Brew",
			Description:  "Coffee brewed with cold water over a long period, resulting in a smooth, less acidic taste.",
			Price:        decimal.RequireFromString("4.00"),
			Image:        "/images/coldbrew.png",
			Category:     enums.MenuCategoryCold,
			Customizable: true,
			Options: []OptionGroup{
				sizes,
				{Name: "Sweetener", Values: []string{"None", "Sugar", "Honey", "Syrup"}},
				{Name: "Ice", Values: []string{"Regular", "Light", "Extra"}},
			},
		},
		{
			ID:           "iced-latte",
			Name:         "Iced Latte",
			Description:  "Espresso and milk served over ice.",
			Price:        decimal.RequireFromString("4.00"),
			Image:        "/images/iced-latte.png",
			Category:     enums.MenuCategoryCold,
			Customizable: true,
			Options: []OptionGroup{
				sizes,
				milks,
				{Name: "Flavor", Values: []string{"None", "Vanilla", "Caramel", "Hazelnut"}},
				{Name: "Ice", Values: []string{"Regular", "Light", "Extra"}},
			},
		},
		{
			ID:           "frappe",
			Name:         "Frappé",
			Description:  "A blended iced coffee drink with a frothy, creamy texture.",
			Price:        decimal.RequireFromString("5.00"),
			Image:        "/images/frappe.png",
			Category:     enums.MenuCategoryCold,
			Customizable: true,
			Options: []OptionGroup{
				sizes,
				{Name: "Flavor", Values: []string{"Coffee", "Mocha", "Caramel", "Vanilla"}},
				{Name: "Whipped Cream", Values: []string{"Yes", "No"}},
				{Name: "Drizzle", Values: []string{"None", "Caramel", "Chocolate", "Strawberry"}},
			},
		},
	}
}

// Default returns the café menu with its featured picks.
func Default() *Catalog {
	c, err := New(CoffeeMenu(), "cappuccino", "mocha", "cold-brew")
	if err != nil {
		panic(err)
	}
	return c
}
