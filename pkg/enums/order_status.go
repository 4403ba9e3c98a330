package enums

import "fmt"

// OrderStatus tracks order fulfillment progress.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCompleted  OrderStatus = "Completed"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusCompleted,
}

var orderStatusSynonyms = map[string]OrderStatus{
	"pending":    OrderStatusPending,
	"processing": OrderStatusProcessing,
	"inprogress": OrderStatusProcessing,
	"completed":  OrderStatusCompleted,
	"complete":   OrderStatusCompleted,
	"done":       OrderStatusCompleted,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	if status, ok := orderStatusSynonyms[normalizeKey(value)]; ok {
		return status, nil
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
