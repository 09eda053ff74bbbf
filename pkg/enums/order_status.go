package enums

import "fmt"

// OrderStatus is persisted as a single character.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "P"
	OrderStatusCompleted OrderStatus = "C"
	OrderStatusRejected  OrderStatus = "R"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusCompleted,
	OrderStatusRejected,
}

// IsValid checks whether the given status matches the canonical enum.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Label returns the human readable status name.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPending:
		return "Pendiente"
	case OrderStatusCompleted:
		return "Completado"
	case OrderStatusRejected:
		return "Rechazado"
	default:
		return string(s)
	}
}

// ParseOrderStatus converts raw strings into OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

// OrderDecision is the seller's verdict on a pending order.
type OrderDecision string

const (
	OrderDecisionComplete OrderDecision = "complete"
	OrderDecisionReject   OrderDecision = "reject"
)

// Status maps a decision onto the order status it produces.
func (d OrderDecision) Status() (OrderStatus, error) {
	switch d {
	case OrderDecisionComplete:
		return OrderStatusCompleted, nil
	case OrderDecisionReject:
		return OrderStatusRejected, nil
	default:
		return "", fmt.Errorf("invalid order decision %q", d)
	}
}
