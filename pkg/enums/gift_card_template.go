package enums

import "fmt"

// GiftCardTemplate identifies the artwork a gift card is sent with.
type GiftCardTemplate string

const (
	GiftCardTemplateBirthday        GiftCardTemplate = "birthday"
	GiftCardTemplateThankYou        GiftCardTemplate = "thank-you"
	GiftCardTemplateCongratulations GiftCardTemplate = "congratulations"
	GiftCardTemplateHoliday         GiftCardTemplate = "holiday"
	GiftCardTemplateJustBecause     GiftCardTemplate = "just-because"
	GiftCardTemplateCustom          GiftCardTemplate = "custom"
)

var validGiftCardTemplates = []GiftCardTemplate{
	GiftCardTemplateBirthday,
	GiftCardTemplateThankYou,
	GiftCardTemplateCongratulations,
	GiftCardTemplateHoliday,
	GiftCardTemplateJustBecause,
	GiftCardTemplateCustom,
}

// String implements fmt.Stringer.
func (c GiftCardTemplate) String() string {
	return string(c)
}

// IsValid reports whether the value is a known GiftCardTemplate.
func (c GiftCardTemplate) IsValid() bool {
	for _, candidate := range validGiftCardTemplates {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseGiftCardTemplate converts raw input into a GiftCardTemplate.
func ParseGiftCardTemplate(value string) (GiftCardTemplate, error) {
	for _, candidate := range validGiftCardTemplates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid gift card template %q", value)
}
