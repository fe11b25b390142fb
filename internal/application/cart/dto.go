package cart

import (
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// EstimatedShipping is the flat rate the cart page quotes before checkout
var EstimatedShipping = valueobject.USDAmount(decimal.NewFromInt(10))

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateQuantityRequest represents a request to set a line's quantity
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// LineResponse is a cart line with its computed total
type LineResponse struct {
	ProductID string            `json:"productId"`
	Name      string            `json:"name"`
	Price     decimal.Decimal   `json:"price"`
	Quantity  int               `json:"quantity"`
	Image     string            `json:"image"`
	Total     valueobject.Money `json:"total"`
}

// CartResponse is the cart page projection
type CartResponse struct {
	Items     []LineResponse    `json:"items"`
	ItemCount int               `json:"itemCount"`
	Subtotal  valueobject.Money `json:"subtotal"`
	Shipping  valueobject.Money `json:"shipping"`
	Total     valueobject.Money `json:"total"`
}

// MutationResponse pairs the mutation outcome with the resulting cart
type MutationResponse struct {
	Outcome cart.Outcome `json:"outcome"`
	Cart    CartResponse `json:"cart"`
}

// ToCartResponse projects c for display
func ToCartResponse(c cart.Cart) CartResponse {
	lines := c.Lines()
	items := make([]LineResponse, len(lines))
	for i, l := range lines {
		items[i] = LineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Image:     l.Image,
			Total:     l.Total(),
		}
	}

	subtotal := c.Subtotal()
	shipping := valueobject.Zero(valueobject.DefaultCurrency)
	if !c.IsEmpty() {
		shipping = EstimatedShipping
	}
	return CartResponse{
		Items:     items,
		ItemCount: c.ItemCount(),
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     subtotal.MustAdd(shipping),
	}
}
