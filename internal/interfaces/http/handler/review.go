package handler

import (
	"github.com/gin-gonic/gin"
	reviewapp "github.com/storefront/backend/internal/application/review"
)

// ReviewHandler handles product review endpoints
type ReviewHandler struct {
	BaseHandler
	reviewService *reviewapp.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *reviewapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// List godoc
// @Summary      List a product's reviews
// @Tags         reviews
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=reviewapp.ReviewsResponse}
// @Router       /products/{id}/reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	h.Success(c, h.reviewService.Get(c.Param("id")))
}

// Submit godoc
// @Summary      Submit a review
// @Description  The review date defaults to today when omitted
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body reviewapp.SubmitReviewRequest true "Review"
// @Success      201 {object} dto.Response{data=review.Review}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/{id}/reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	var req reviewapp.SubmitReviewRequest
	if !h.BindJSON(c, &req) {
		return
	}

	created, err := h.reviewService.Submit(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}
