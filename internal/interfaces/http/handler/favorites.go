package handler

import (
	"github.com/gin-gonic/gin"
	favoritesapp "github.com/storefront/backend/internal/application/favorites"
)

// FavoritesHandler handles the wishlist endpoints
type FavoritesHandler struct {
	BaseHandler
	favoritesService *favoritesapp.FavoritesService
}

// NewFavoritesHandler creates a new FavoritesHandler
func NewFavoritesHandler(favoritesService *favoritesapp.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{
		favoritesService: favoritesService,
	}
}

// List godoc
// @Summary      List favorites
// @Tags         favorites
// @Produce      json
// @Success      200 {object} dto.Response{data=favoritesapp.FavoritesResponse}
// @Router       /favorites [get]
func (h *FavoritesHandler) List(c *gin.Context) {
	h.Success(c, h.favoritesService.List())
}

// Add godoc
// @Summary      Mark a product as favorite
// @Tags         favorites
// @Param        productId path string true "Product ID"
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /favorites/{productId} [put]
func (h *FavoritesHandler) Add(c *gin.Context) {
	result, err := h.favoritesService.Add(c.Request.Context(), c.Param("productId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Remove godoc
// @Summary      Unmark a favorite
// @Tags         favorites
// @Param        productId path string true "Product ID"
// @Router       /favorites/{productId} [delete]
func (h *FavoritesHandler) Remove(c *gin.Context) {
	result, err := h.favoritesService.Remove(c.Request.Context(), c.Param("productId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Toggle godoc
// @Summary      Flip a product's favorite flag
// @Tags         favorites
// @Param        productId path string true "Product ID"
// @Success      200 {object} dto.Response{data=favoritesapp.ToggleResponse}
// @Router       /favorites/{productId}/toggle [post]
func (h *FavoritesHandler) Toggle(c *gin.Context) {
	result, err := h.favoritesService.Toggle(c.Request.Context(), c.Param("productId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
