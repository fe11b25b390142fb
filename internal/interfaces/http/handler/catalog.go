package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// CatalogHandler handles product listing, search and browse endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// List godoc
// @Summary      List products
// @Description  Returns every product in catalog order with its current average rating
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=catalogapp.ListResponse}
// @Router       /products [get]
func (h *CatalogHandler) List(c *gin.Context) {
	h.Success(c, h.catalogService.List())
}

// Get godoc
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Categories godoc
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Router       /categories [get]
func (h *CatalogHandler) Categories(c *gin.Context) {
	h.Success(c, h.catalogService.Categories())
}

// Search godoc
// @Summary      Search products
// @Description  Case-insensitive substring match on name, description and category. An empty query returns no products.
// @Tags         catalog
// @Produce      json
// @Param        q query string false "Search text"
// @Router       /search [get]
func (h *CatalogHandler) Search(c *gin.Context) {
	h.Success(c, h.catalogService.Search(c.Query("q")))
}

// Browse godoc
// @Summary      Browse products
// @Description  Filters by category, subcategory and query, then sorts by price or rating
// @Tags         catalog
// @Produce      json
// @Param        category    query string false "Category ID"
// @Param        subcategory query string false "Subcategory ID"
// @Param        q           query string false "Search text"
// @Param        sort        query string false "price-asc, price-desc, rating-asc or rating-desc"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /browse [get]
func (h *CatalogHandler) Browse(c *gin.Context) {
	var filter catalogapp.BrowseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.catalogService.Browse(filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
