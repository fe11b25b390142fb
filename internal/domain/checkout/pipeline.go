// Package checkout implements the three-stage checkout pipeline that turns a
// validated draft into an immutable Order.
package checkout

import (
	"fmt"
	"time"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

// Draft accumulates the validated stage data. It is never persisted. Payment
// data is consumed by placement and never retained.
type Draft struct {
	Contact *ContactForm `json:"contact,omitempty"`
	Address *AddressForm `json:"address,omitempty"`
}

// Pipeline is one checkout session. It moves Contact -> Address -> Payment -> Placed
// and closes once the order is placed.
type Pipeline struct {
	id       string
	source   Source
	buyNow   *cart.Line
	stage    Stage
	draft    Draft
	prefill  Prefill
	shipping ShippingMethod
}

// NewPipeline opens a checkout. A non-nil buyNow line makes it the sole item
// and leaves the persisted cart alone.
func NewPipeline(id string, buyNow *cart.Line, prefill Prefill) *Pipeline {
	p := &Pipeline{
		id:       id,
		source:   SourceCart,
		stage:    StageContact,
		prefill:  prefill,
		shipping: ShippingStandard,
	}
	if prefill.Address.ShippingMethod.IsValid() {
		p.shipping = prefill.Address.ShippingMethod
	}
	if buyNow != nil {
		line := *buyNow
		p.buyNow = &line
		p.source = SourceBuyNow
	}
	return p
}

// ID returns the checkout session id
func (p *Pipeline) ID() string { return p.id }

// Source reports where the items come from
func (p *Pipeline) Source() Source { return p.source }

// Stage returns the active stage
func (p *Pipeline) Stage() Stage { return p.stage }

// IsBuyNow reports whether this is a single-item buy-now checkout
func (p *Pipeline) IsBuyNow() bool { return p.buyNow != nil }

// BuyNowLine returns the buy-now item, if any
func (p *Pipeline) BuyNowLine() (cart.Line, bool) {
	if p.buyNow == nil {
		return cart.Line{}, false
	}
	return *p.buyNow, true
}

// Prefill returns the current form pre-fill values
func (p *Pipeline) Prefill() Prefill { return p.prefill }

// ShippingMethod is the method the live summary is priced with
func (p *Pipeline) ShippingMethod() ShippingMethod { return p.shipping }

// Draft returns a copy of the validated stage data
func (p *Pipeline) Draft() Draft {
	var d Draft
	if p.draft.Contact != nil {
		c := *p.draft.Contact
		d.Contact = &c
	}
	if p.draft.Address != nil {
		a := *p.draft.Address
		d.Address = &a
	}
	return d
}

// Completed reports whether a stage's data has been accepted
func (p *Pipeline) Completed(s Stage) bool {
	switch s {
	case StageContact:
		return p.draft.Contact != nil
	case StageAddress:
		return p.draft.Address != nil
	case StagePayment:
		return p.stage == StagePlaced
	}
	return false
}

// Reachable reports whether the stage can be opened, mirroring disabled tabs
func (p *Pipeline) Reachable(s Stage) bool {
	if p.stage.IsTerminal() {
		return false
	}
	switch s {
	case StageContact:
		return true
	case StageAddress:
		return p.draft.Contact != nil
	case StagePayment:
		return p.draft.Address != nil
	}
	return false
}

// SubmitContact validates and records the contact stage
func (p *Pipeline) SubmitContact(f ContactForm) error {
	if err := p.expect(StageContact); err != nil {
		return err
	}
	if err := shared.ValidateStruct(f); err != nil {
		return err
	}
	p.draft.Contact = &f
	p.stage = p.stage.Next()
	return nil
}

// SubmitAddress validates and records the address stage, fixing the shipping method
func (p *Pipeline) SubmitAddress(f AddressForm) error {
	if err := p.expect(StageAddress); err != nil {
		return err
	}
	if err := shared.ValidateStruct(f); err != nil {
		return err
	}
	if _, err := f.Address(); err != nil {
		return shared.NewFieldValidationError("street", "address", err.Error())
	}
	p.draft.Address = &f
	p.shipping = f.ShippingMethod
	p.stage = p.stage.Next()
	return nil
}

// SubmitPayment validates the payment stage and places the order for items.
// On success the draft is discarded and the pipeline is closed.
func (p *Pipeline) SubmitPayment(f PaymentForm, items []cart.Line, at time.Time, orderID string) (Order, error) {
	if err := p.expect(StagePayment); err != nil {
		return Order{}, err
	}
	if err := shared.ValidateStruct(f); err != nil {
		return Order{}, err
	}
	if len(items) == 0 {
		return Order{}, shared.ErrEmptyCheckout
	}
	if p.draft.Contact == nil || p.draft.Address == nil {
		return Order{}, shared.NewDomainError(shared.ErrInvalidState.Code, "checkout draft is incomplete")
	}

	addr, err := p.draft.Address.Address()
	if err != nil {
		return Order{}, fmt.Errorf("build shipping address: %w", err)
	}

	owned := make([]cart.Line, len(items))
	copy(owned, items)
	method := p.draft.Address.ShippingMethod
	summary := Summarize(owned, method)

	order := Order{
		OrderID:        orderID,
		Source:         p.source,
		Items:          owned,
		Contact:        *p.draft.Contact,
		Address:        addr,
		ShippingMethod: method,
		ShippingCost:   summary.Shipping,
		Subtotal:       summary.Subtotal,
		Total:          summary.Total,
		PaymentLast4:   f.MaskedCard(),
		CardHolder:     f.CardHolder,
		OrderDate:      at,
	}

	p.stage = StagePlaced
	p.draft = Draft{}
	p.prefill = Prefill{}
	return order, nil
}

// Revisit reopens an earlier stage whose prerequisites are complete.
// Data already accepted for later stages is kept; advancing re-validates.
func (p *Pipeline) Revisit(s Stage) error {
	if p.stage.IsTerminal() {
		return p.closedError()
	}
	if !s.IsValid() || s.IsTerminal() {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("cannot open stage %q", s))
	}
	if !p.Reachable(s) {
		return shared.NewDomainError(shared.ErrInvalidState.Code,
			fmt.Sprintf("stage %s is not available until the previous stage is complete", s))
	}
	p.stage = s
	return nil
}

// Autofill copies a saved card into the payment pre-fill without validating it
func (p *Pipeline) Autofill(m identity.PaymentMethod) error {
	if p.stage.IsTerminal() {
		return p.closedError()
	}
	p.prefill.Payment = PaymentFormFrom(m)
	return nil
}

// PreviewShipping reprices the live summary before the address stage is submitted
func (p *Pipeline) PreviewShipping(m ShippingMethod) error {
	if p.stage.IsTerminal() {
		return p.closedError()
	}
	if !m.IsValid() {
		return shared.NewFieldValidationError("shippingMethod", "oneof", "Must be one of: standard express overnight")
	}
	p.shipping = m
	p.prefill.Address.ShippingMethod = m
	return nil
}

// Summary prices items with the currently selected shipping method
func (p *Pipeline) Summary(items []cart.Line) Summary {
	return Summarize(items, p.shipping)
}

func (p *Pipeline) expect(s Stage) error {
	if p.stage.IsTerminal() {
		return p.closedError()
	}
	if p.stage != s {
		return shared.NewDomainError(shared.ErrInvalidState.Code,
			fmt.Sprintf("cannot submit %s while the %s stage is active", s, p.stage))
	}
	return nil
}

func (p *Pipeline) closedError() error {
	return shared.NewDomainError(shared.ErrInvalidState.Code, "checkout has already been placed")
}
