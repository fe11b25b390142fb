package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/storefront/backend/internal/application/identity"
	"github.com/storefront/backend/internal/domain/identity"
)

// IdentityHandler handles the simulated session and profile endpoints
type IdentityHandler struct {
	BaseHandler
	identityService *identityapp.IdentityService
}

// NewIdentityHandler creates a new IdentityHandler
func NewIdentityHandler(identityService *identityapp.IdentityService) *IdentityHandler {
	return &IdentityHandler{
		identityService: identityService,
	}
}

// Session godoc
// @Summary      Get the current session
// @Tags         session
// @Produce      json
// @Success      200 {object} dto.Response{data=identityapp.SessionResponse}
// @Router       /session [get]
func (h *IdentityHandler) Session(c *gin.Context) {
	h.Success(c, h.identityService.Get())
}

// SignIn godoc
// @Summary      Sign in
// @Description  Credentials are validated for shape only. No password is checked.
// @Tags         session
// @Accept       json
// @Param        request body identity.SignInForm true "Credentials"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /session/signin [post]
func (h *IdentityHandler) SignIn(c *gin.Context) {
	var form identity.SignInForm
	if !h.BindJSON(c, &form) {
		return
	}
	h.respond(c)(h.identityService.SignIn(c.Request.Context(), form))
}

// SignUp godoc
// @Summary      Sign up
// @Tags         session
// @Accept       json
// @Param        request body identity.SignUpForm true "New account"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /session/signup [post]
func (h *IdentityHandler) SignUp(c *gin.Context) {
	var form identity.SignUpForm
	if !h.BindJSON(c, &form) {
		return
	}
	h.respond(c)(h.identityService.SignUp(c.Request.Context(), form))
}

// Logout godoc
// @Summary      Sign out
// @Tags         session
// @Router       /session [delete]
func (h *IdentityHandler) Logout(c *gin.Context) {
	if err := h.identityService.Logout(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.identityService.Get())
}

// UpdateProfile godoc
// @Summary      Edit profile fields
// @Description  Only the supplied fields change. Without a signed-in user nothing happens.
// @Tags         profile
// @Accept       json
// @Param        request body identity.ProfilePatch true "Changed fields"
// @Router       /profile [patch]
func (h *IdentityHandler) UpdateProfile(c *gin.Context) {
	var patch identity.ProfilePatch
	if !h.BindJSON(c, &patch) {
		return
	}
	h.respond(c)(h.identityService.UpdateProfile(c.Request.Context(), patch))
}

// UpdateAddress godoc
// @Summary      Replace the saved address
// @Tags         profile
// @Accept       json
// @Param        request body identityapp.AddressRequest true "Address"
// @Router       /profile/address [put]
func (h *IdentityHandler) UpdateAddress(c *gin.Context) {
	var req identityapp.AddressRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.respond(c)(h.identityService.UpdateAddress(c.Request.Context(), req))
}

// AddPaymentMethod godoc
// @Summary      Save a card
// @Description  A card with the same number replaces the saved one
// @Tags         profile
// @Accept       json
// @Param        request body identity.PaymentMethod true "Card"
// @Router       /profile/payment-methods [post]
func (h *IdentityHandler) AddPaymentMethod(c *gin.Context) {
	var method identity.PaymentMethod
	if !h.BindJSON(c, &method) {
		return
	}
	h.respond(c)(h.identityService.AddPaymentMethod(c.Request.Context(), method))
}

// RemovePaymentMethod godoc
// @Summary      Delete a saved card
// @Tags         profile
// @Param        cardNumber path string true "Full card number"
// @Router       /profile/payment-methods/{cardNumber} [delete]
func (h *IdentityHandler) RemovePaymentMethod(c *gin.Context) {
	h.respond(c)(h.identityService.RemovePaymentMethod(c.Request.Context(), c.Param("cardNumber")))
}

func (h *IdentityHandler) respond(c *gin.Context) func(*identityapp.SessionResponse, error) {
	return func(resp *identityapp.SessionResponse, err error) {
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, resp)
	}
}
