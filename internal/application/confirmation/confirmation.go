// Package confirmation renders the order confirmation page from the order
// handed off by checkout.
package confirmation

import (
	"context"
	"fmt"
	"sync"

	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DateLayout is how the order date is printed
const DateLayout = "January 2, 2006"

// ItemView is one printed order line
type ItemView struct {
	Name      string `json:"name"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Total     string `json:"total"`
}

// View is the confirmation page. Valid is false when there is no order to show.
type View struct {
	Valid          bool       `json:"valid"`
	OrderID        string     `json:"orderId,omitempty"`
	CustomerName   string     `json:"customerName,omitempty"`
	Email          string     `json:"email,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	AddressLines   []string   `json:"addressLines,omitempty"`
	ShippingMethod string     `json:"shippingMethod,omitempty"`
	Items          []ItemView `json:"items,omitempty"`
	Subtotal       string     `json:"subtotal,omitempty"`
	Shipping       string     `json:"shipping,omitempty"`
	Total          string     `json:"total,omitempty"`
	Payment        string     `json:"payment,omitempty"`
	CardHolder     string     `json:"cardHolder,omitempty"`
	OrderDate      string     `json:"orderDate,omitempty"`
}

var titleCaser = cases.Title(language.English)

// ShippingLabel renders a shipping method for display, e.g. "Express Shipping"
func ShippingLabel(m checkout.ShippingMethod) string {
	if m == "" {
		return ""
	}
	return titleCaser.String(string(m)) + " Shipping"
}

// Render projects order into the confirmation view. It never fails; a nil
// order yields an invalid view the caller renders as a fallback.
func Render(order *checkout.Order) View {
	if order == nil {
		return View{Valid: false}
	}

	items := make([]ItemView, len(order.Items))
	for i, l := range order.Items {
		items[i] = ItemView{
			Name:      l.Name,
			Image:     l.Image,
			Quantity:  l.Quantity,
			UnitPrice: l.Price.StringFixed(2),
			Total:     l.Total().StringFixed(2),
		}
	}

	return View{
		Valid:          true,
		OrderID:        order.OrderID,
		CustomerName:   fmt.Sprintf("%s %s", order.Contact.FirstName, order.Contact.LastName),
		Email:          order.Contact.Email,
		Phone:          order.Contact.Phone,
		AddressLines:   order.Address.Lines(),
		ShippingMethod: ShippingLabel(order.ShippingMethod),
		Items:          items,
		Subtotal:       order.Subtotal.StringFixed(2),
		Shipping:       order.ShippingCost.StringFixed(2),
		Total:          order.Total.StringFixed(2),
		Payment:        order.PaymentLast4,
		CardHolder:     order.CardHolder,
		OrderDate:      order.OrderDate.Format(DateLayout),
	}
}

// Inbox receives placed orders and keeps the latest one in memory.
// It is never persisted.
type Inbox struct {
	mu     sync.RWMutex
	latest *checkout.Order
	logger *zap.Logger
}

// NewInbox creates an empty Inbox
func NewInbox(logger *zap.Logger) *Inbox {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inbox{logger: logger.Named("confirmation")}
}

// EventTypes implements shared.EventHandler
func (i *Inbox) EventTypes() []string {
	return []string{checkout.EventTypeOrderPlaced}
}

// Handle implements shared.EventHandler
func (i *Inbox) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*checkout.OrderPlacedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", event, event.EventType())
	}
	order := placed.Order.Copy()

	i.mu.Lock()
	i.latest = &order
	i.mu.Unlock()

	i.logger.Debug("order received", zap.String("order_id", order.OrderID))
	return nil
}

// Latest returns a copy of the most recent order
func (i *Inbox) Latest() (*checkout.Order, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.latest == nil {
		return nil, false
	}
	order := i.latest.Copy()
	return &order, true
}

// View renders the latest order, or an invalid view when none was handed off
func (i *Inbox) View() View {
	order, _ := i.Latest()
	return Render(order)
}

var _ shared.EventHandler = (*Inbox)(nil)
