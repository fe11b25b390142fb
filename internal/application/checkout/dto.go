package checkout

import (
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout"
)

// BuyNowRequest is a single product bought directly from its page
type BuyNowRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// BeginRequest opens a checkout. A nil BuyNow checks out the cart.
type BeginRequest struct {
	BuyNow *BuyNowRequest `json:"buyNow,omitempty"`
}

// RevisitRequest reopens an earlier stage
type RevisitRequest struct {
	Stage checkout.Stage `json:"stage" validate:"required,oneof=contact address payment"`
}

// AutofillRequest selects a saved card by number
type AutofillRequest struct {
	CardNumber string `json:"cardNumber" validate:"required"`
}

// ShippingPreviewRequest reprices the summary with another method
type ShippingPreviewRequest struct {
	ShippingMethod checkout.ShippingMethod `json:"shippingMethod" validate:"required"`
}

// StageStatus describes one tab of the checkout form
type StageStatus struct {
	Stage     checkout.Stage `json:"stage"`
	Completed bool           `json:"completed"`
	Reachable bool           `json:"reachable"`
}

// SessionResponse is the checkout page projection
type SessionResponse struct {
	ID       string           `json:"id"`
	Source   checkout.Source  `json:"source"`
	Stage    checkout.Stage   `json:"stage"`
	Stages   []StageStatus    `json:"stages"`
	Draft    checkout.Draft   `json:"draft"`
	Prefill  checkout.Prefill `json:"prefill"`
	Items    []cart.Line      `json:"items"`
	Summary  checkout.Summary `json:"summary"`
	Shipping []ShippingOption `json:"shippingOptions"`
}

// ShippingOption is one selectable delivery method with its price
type ShippingOption struct {
	Method checkout.ShippingMethod `json:"method"`
	Cost   string                  `json:"cost"`
}

// PlaceOrderResponse carries the placed order
type PlaceOrderResponse struct {
	Order checkout.Order `json:"order"`
}

func shippingOptions() []ShippingOption {
	methods := checkout.ShippingMethods()
	out := make([]ShippingOption, len(methods))
	for i, m := range methods {
		out[i] = ShippingOption{Method: m, Cost: m.Cost().StringFixed(2)}
	}
	return out
}

func toSessionResponse(p *checkout.Pipeline, items []cart.Line) *SessionResponse {
	stages := []checkout.Stage{checkout.StageContact, checkout.StageAddress, checkout.StagePayment}
	statuses := make([]StageStatus, len(stages))
	for i, s := range stages {
		statuses[i] = StageStatus{Stage: s, Completed: p.Completed(s), Reachable: p.Reachable(s)}
	}
	return &SessionResponse{
		ID:       p.ID(),
		Source:   p.Source(),
		Stage:    p.Stage(),
		Stages:   statuses,
		Draft:    p.Draft(),
		Prefill:  p.Prefill(),
		Items:    items,
		Summary:  p.Summary(items),
		Shipping: shippingOptions(),
	}
}
