package handler

import (
	"github.com/gin-gonic/gin"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/application/confirmation"
	"github.com/storefront/backend/internal/domain/checkout"
)

// CheckoutHandler handles the three-stage checkout and the order
// confirmation page
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.CheckoutService
	inbox           *confirmation.Inbox
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkoutapp.CheckoutService, inbox *confirmation.Inbox) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		inbox:           inbox,
	}
}

// Begin godoc
// @Summary      Start a checkout
// @Description  Checks out the cart, or a single product when buyNow is set. Any open checkout is discarded.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body checkoutapp.BeginRequest false "Checkout source"
// @Success      201 {object} dto.Response{data=checkoutapp.SessionResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /checkout [post]
func (h *CheckoutHandler) Begin(c *gin.Context) {
	var req checkoutapp.BeginRequest
	if c.Request.ContentLength != 0 && !h.BindJSON(c, &req) {
		return
	}

	session, err := h.checkoutService.Begin(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, session)
}

// Session godoc
// @Summary      Get the open checkout
// @Tags         checkout
// @Produce      json
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /checkout [get]
func (h *CheckoutHandler) Session(c *gin.Context) {
	session, err := h.checkoutService.Session()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, session)
}

// Cancel godoc
// @Summary      Abandon the open checkout
// @Tags         checkout
// @Router       /checkout [delete]
func (h *CheckoutHandler) Cancel(c *gin.Context) {
	h.checkoutService.Cancel()
	h.NoContent(c)
}

// SubmitContact godoc
// @Summary      Submit the contact stage
// @Tags         checkout
// @Accept       json
// @Param        request body checkout.ContactForm true "Contact"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /checkout/contact [post]
func (h *CheckoutHandler) SubmitContact(c *gin.Context) {
	var form checkout.ContactForm
	if !h.BindJSON(c, &form) {
		return
	}
	h.respond(c)(h.checkoutService.SubmitContact(c.Request.Context(), form))
}

// SubmitAddress godoc
// @Summary      Submit the address stage
// @Tags         checkout
// @Accept       json
// @Param        request body checkout.AddressForm true "Address and shipping method"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /checkout/address [post]
func (h *CheckoutHandler) SubmitAddress(c *gin.Context) {
	var form checkout.AddressForm
	if !h.BindJSON(c, &form) {
		return
	}
	h.respond(c)(h.checkoutService.SubmitAddress(c.Request.Context(), form))
}

// Revisit godoc
// @Summary      Return to an earlier stage
// @Tags         checkout
// @Accept       json
// @Param        request body checkoutapp.RevisitRequest true "Stage"
// @Router       /checkout/revisit [post]
func (h *CheckoutHandler) Revisit(c *gin.Context) {
	var req checkoutapp.RevisitRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.respond(c)(h.checkoutService.Revisit(c.Request.Context(), req))
}

// PreviewShipping godoc
// @Summary      Reprice the summary with another shipping method
// @Tags         checkout
// @Accept       json
// @Param        request body checkoutapp.ShippingPreviewRequest true "Shipping method"
// @Router       /checkout/shipping [post]
func (h *CheckoutHandler) PreviewShipping(c *gin.Context) {
	var req checkoutapp.ShippingPreviewRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.respond(c)(h.checkoutService.PreviewShipping(c.Request.Context(), req))
}

// Autofill godoc
// @Summary      Fill the payment draft from a saved card
// @Tags         checkout
// @Accept       json
// @Param        request body checkoutapp.AutofillRequest true "Saved card number"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /checkout/autofill [post]
func (h *CheckoutHandler) Autofill(c *gin.Context) {
	var req checkoutapp.AutofillRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.respond(c)(h.checkoutService.Autofill(c.Request.Context(), req))
}

// Place godoc
// @Summary      Submit payment and place the order
// @Description  On success the cart is cleared for cart checkouts and the order becomes the latest confirmation
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        request body checkout.PaymentForm true "Card"
// @Success      201 {object} dto.Response{data=checkoutapp.PlaceOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /checkout/payment [post]
func (h *CheckoutHandler) Place(c *gin.Context) {
	var form checkout.PaymentForm
	if !h.BindJSON(c, &form) {
		return
	}

	placed, err := h.checkoutService.Place(c.Request.Context(), form)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, placed)
}

// Confirmation godoc
// @Summary      Get the order confirmation page
// @Description  Returns valid=false when no order has been placed
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.Response{data=confirmation.View}
// @Router       /orders/confirmation [get]
func (h *CheckoutHandler) Confirmation(c *gin.Context) {
	h.Success(c, h.inbox.View())
}

func (h *CheckoutHandler) respond(c *gin.Context) func(*checkoutapp.SessionResponse, error) {
	return func(resp *checkoutapp.SessionResponse, err error) {
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, resp)
	}
}
