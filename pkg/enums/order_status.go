package enums

import "fmt"

type OrderStatus string

const (
	OrderPlaced    OrderStatus = "placed"
	OrderAccepted  OrderStatus = "accepted"
	OrderRejected  OrderStatus = "rejected"
	OrderPacked    OrderStatus = "packed"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderPlaced,
	OrderAccepted,
	OrderRejected,
	OrderPacked,
	OrderDelivered,
	OrderCancelled,
}

// Fulfilment moves forward only; rejected, delivered and cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPlaced:   {OrderAccepted, OrderRejected, OrderCancelled},
	OrderAccepted: {OrderPacked, OrderRejected, OrderCancelled},
	OrderPacked:   {OrderDelivered},
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) IsValid() bool {
	for _, v := range validOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderRejected, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the fulfilment flow allows moving
// from the current status to the target one.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Cancellable reports whether a customer may still cancel the order.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPlaced || s == OrderAccepted
}

func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(raw)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid order status %q", raw)
	}
	return status, nil
}
