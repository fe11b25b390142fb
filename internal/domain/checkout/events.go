package checkout

import "github.com/storefront/backend/internal/domain/shared"

// Event types
const (
	EventTypeOrderPlaced = "OrderPlaced"
	AggregateTypeOrder   = "Order"
)

// OrderPlacedEvent hands a freshly placed order to the confirmation view
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	Order Order `json:"order"`
}

// NewOrderPlacedEvent wraps a copy of order
func NewOrderPlacedEvent(order Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, order.OrderID, order.OrderDate),
		Order:           order.Copy(),
	}
}
