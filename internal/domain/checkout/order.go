package checkout

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Source says where the checkout items came from
type Source string

const (
	SourceCart   Source = "cart"
	SourceBuyNow Source = "buy_now"
)

// Order is the record produced by a placed checkout. It is handed off by value
// and never modified afterwards; Items is an owned copy.
type Order struct {
	OrderID        string              `json:"orderId"`
	Source         Source              `json:"source"`
	Items          []cart.Line         `json:"items"`
	Contact        ContactForm         `json:"contact"`
	Address        valueobject.Address `json:"address"`
	ShippingMethod ShippingMethod      `json:"shippingMethod"`
	ShippingCost   valueobject.Money   `json:"shippingCost"`
	Subtotal       valueobject.Money   `json:"subtotal"`
	Total          valueobject.Money   `json:"total"`
	PaymentLast4   string              `json:"paymentLast4"`
	CardHolder     string              `json:"cardHolder"`
	OrderDate      time.Time           `json:"orderDate"`
}

// Copy returns an order that shares no slices with o
func (o Order) Copy() Order {
	out := o
	out.Items = make([]cart.Line, len(o.Items))
	copy(out.Items, o.Items)
	return out
}

// ItemCount sums the item quantities
func (o Order) ItemCount() int {
	n := 0
	for _, l := range o.Items {
		n += l.Quantity
	}
	return n
}

// NewOrderID returns a fresh order identifier
func NewOrderID() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:16])
}

// Summary is the live order summary shown beside the forms
type Summary struct {
	ItemCount      int               `json:"itemCount"`
	ShippingMethod ShippingMethod    `json:"shippingMethod"`
	Subtotal       valueobject.Money `json:"subtotal"`
	Shipping       valueobject.Money `json:"shipping"`
	Total          valueobject.Money `json:"total"`
}

// Summarize computes subtotal, shipping and total for items
func Summarize(items []cart.Line, method ShippingMethod) Summary {
	subtotal := cart.Subtotal(items)
	shipping := method.Cost()
	count := 0
	for _, l := range items {
		count += l.Quantity
	}
	return Summary{
		ItemCount:      count,
		ShippingMethod: method,
		Subtotal:       subtotal,
		Shipping:       shipping,
		Total:          subtotal.MustAdd(shipping),
	}
}
