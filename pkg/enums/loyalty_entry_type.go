package enums

import "fmt"

// LoyaltyEntryType tells earned points apart from redeemed points in the history.
type LoyaltyEntryType string

const (
	LoyaltyEntryEarned   LoyaltyEntryType = "earned"
	LoyaltyEntryBonus    LoyaltyEntryType = "bonus"
	LoyaltyEntryRedeemed LoyaltyEntryType = "redeemed"
)

var validLoyaltyEntryTypes = []LoyaltyEntryType{
	LoyaltyEntryEarned,
	LoyaltyEntryBonus,
	LoyaltyEntryRedeemed,
}

// String implements fmt.Stringer.
func (c LoyaltyEntryType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known LoyaltyEntryType.
func (c LoyaltyEntryType) IsValid() bool {
	for _, candidate := range validLoyaltyEntryTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseLoyaltyEntryType converts raw input into a LoyaltyEntryType.
func ParseLoyaltyEntryType(value string) (LoyaltyEntryType, error) {
	for _, candidate := range validLoyaltyEntryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid loyalty entry type %q", value)
}
