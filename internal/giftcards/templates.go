package giftcards

import (
	"github.com/angelmondragon/cafe-companion/pkg/enums"
	"github.com/shopspring/decimal"
)

// Template is a gift card design.
type Template struct {
	ID          enums.GiftCardTemplate `json:"id"`
	Name        string                 `json:"name"`
	Image       string                 `json:"image"`
	Description string                 `json:"description"`
}

var templates = []Template{
	{
		ID:          enums.GiftCardTemplateBirthday,
		Name:        "Birthday",
		Image:       "/gift-cards/birthday.jpg",
		Description: "Perfect for celebrating birthdays with a coffee treat.",
	},
	{
		ID:          enums.GiftCardTemplateThankYou,
		Name:        "Thank You",
		Image:       "/gift-cards/thank-you.jpg",
		Description: "Show your appreciation with a coffee gift.",
	},
	{
		ID:          enums.GiftCardTemplateCongratulations,
		Name:        "Congratulations",
		Image:       "/gift-cards/congratulations.jpg",
		Description: "Celebrate achievements with a special coffee reward.",
	},
	{
		ID:          enums.GiftCardTemplateHoliday,
		Name:        "Holiday",
		Image:       "/gift-cards/holiday.jpg",
		Description: "Spread holiday cheer with the gift of coffee.",
	},
	{
		ID:          enums.GiftCardTemplateJustBecause,
		Name:        "Just Because",
		Image:       "/gift-cards/just-because.jpg",
		Description: "Sometimes coffee is the perfect gift for no reason at all.",
	},
	{
		ID:          enums.GiftCardTemplateCustom,
		Name:        "Custom Design",
		Image:       "/gift-cards/custom.jpg",
		Description: "Create your own personalized gift card design.",
	},
}

var presetAmounts = []int64{10, 25, 50, 100}

// Templates returns every design in display order.
func Templates() []Template {
	return append([]Template(nil), templates...)
}

// PresetAmounts are the one-tap amounts offered next to the free-form input.
func PresetAmounts() []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(presetAmounts))
	for _, amt := range presetAmounts {
		out = append(out, decimal.NewFromInt(amt))
	}
	return out
}

func templateByID(id enums.GiftCardTemplate) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
