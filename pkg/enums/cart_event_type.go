package enums

import "fmt"

// CartEventType names the mutation that triggered a cart notification.
type CartEventType string

const (
	CartEventAdded           CartEventType = "added"
	CartEventRemoved         CartEventType = "removed"
	CartEventQuantityUpdated CartEventType = "quantity_updated"
	CartEventCleared         CartEventType = "cleared"
)

var validCartEventTypes = []CartEventType{
	CartEventAdded,
	CartEventRemoved,
	CartEventQuantityUpdated,
	CartEventCleared,
}

// String implements fmt.Stringer.
func (c CartEventType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CartEventType.
func (c CartEventType) IsValid() bool {
	for _, candidate := range validCartEventTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCartEventType converts raw input into a CartEventType.
func ParseCartEventType(value string) (CartEventType, error) {
	for _, candidate := range validCartEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart event type %q", value)
}
