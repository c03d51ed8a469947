package orders

import (
	"github.com/shopspring/decimal"
	"github.com/tajer/backend/internal/domain/shared"
)

const (
	EventTypeOrderCreated       = "orders.order.created"
	EventTypeOrderStatusChanged = "orders.order.status_changed"
	EventTypeOrderDelivered     = "orders.order.delivered"
	EventTypeOrderRefunded      = "orders.order.refunded"
)

// OrderCreatedEvent is emitted when an order is submitted
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber   string          `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Governorate   string          `json:"governorate"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	ItemCount     int             `json:"item_count"`
	Source        string          `json:"source"`
}

// NewOrderCreatedEvent creates an order created event
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, "Order", order.ID, order.PlatformID),
		OrderNumber:     order.OrderNumber,
		CustomerName:    order.Customer.Name,
		CustomerPhone:   order.Customer.Phone,
		Governorate:     order.Customer.Governorate.String(),
		TotalAmount:     order.TotalAmount,
		ItemCount:       len(order.Items),
		Source:          order.Source.String(),
	}
}

// OrderStatusChangedEvent is emitted on every status transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	FromStatus  string `json:"from_status"`
	ToStatus    string `json:"to_status"`
}

// NewOrderStatusChangedEvent creates a status changed event
func NewOrderStatusChangedEvent(order *Order, from, to Status) *OrderStatusChangedEvent {
	eventType := EventTypeOrderStatusChanged
	switch to {
	case StatusDelivered:
		eventType = EventTypeOrderDelivered
	case StatusRefunded:
		eventType = EventTypeOrderRefunded
	}
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Order", order.ID, order.PlatformID),
		OrderNumber:     order.OrderNumber,
		FromStatus:      from.String(),
		ToStatus:        to.String(),
	}
}
