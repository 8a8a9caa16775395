package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bootcamp-backend/internal/domains/review/model"
	"bootcamp-backend/internal/domains/review/service"
	"bootcamp-backend/internal/shared/apperror"
	"bootcamp-backend/internal/shared/auth"
	"bootcamp-backend/internal/shared/middleware"
	"bootcamp-backend/internal/shared/response"
)

// =====================================================
// REVIEW HANDLER
// =====================================================

type ReviewHandler struct {
	reviewService service.ServiceInterface
}

func NewReviewHandler(reviewService service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

// getPrincipal returns the authenticated caller or writes a 401
func getPrincipal(c *gin.Context) (*auth.Principal, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Not authorized to access this route"))
	}
	return p, ok
}

// getID parses the :id path parameter
func getID(c *gin.Context, resource string) (uuid.UUID, bool) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		response.Error(c, apperror.NotFound("%s not found with id of %s", resource, raw))
		return uuid.Nil, false
	}
	return id, true
}

// =====================================================
// PUBLIC ENDPOINTS
// =====================================================

// ListReviews lists all reviews
// GET /api/v1/reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	h.list(c, nil)
}

// ListBootcampReviews lists reviews of one bootcamp
// GET /api/v1/bootcamps/:id/reviews
func (h *ReviewHandler) ListBootcampReviews(c *gin.Context) {
	bootcampID, ok := getID(c, "Bootcamp")
	if !ok {
		return
	}
	h.list(c, &bootcampID)
}

func (h *ReviewHandler) list(c *gin.Context, bootcampID *uuid.UUID) {
	result, err := h.reviewService.ListReviews(c.Request.Context(), bootcampID, c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetReview gets review by ID
// GET /api/v1/reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	reviewID, ok := getID(c, "Review")
	if !ok {
		return
	}

	review, err := h.reviewService.GetReview(c.Request.Context(), reviewID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, review)
}

// =====================================================
// USER ENDPOINTS
// =====================================================

// CreateReview creates new review
// POST /api/v1/bootcamps/:id/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	// Step 1: Get principal
	p, ok := getPrincipal(c)
	if !ok {
		return
	}

	// Step 2: Parse bootcamp ID
	bootcampID, ok := getID(c, "Bootcamp")
	if !ok {
		return
	}

	// Step 3: Bind request body
	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("%s", err.Error()))
		return
	}

	// Step 4: Call service
	review, err := h.reviewService.CreateReview(c.Request.Context(), p, bootcampID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Step 5: Return success
	response.Success(c, http.StatusCreated, review)
}

// UpdateReview updates user's review
// PUT /api/v1/reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}
	reviewID, ok := getID(c, "Review")
	if !ok {
		return
	}

	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("%s", err.Error()))
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), p, reviewID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, review)
}

// DeleteReview deletes user's review
// DELETE /api/v1/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	p, ok := getPrincipal(c)
	if !ok {
		return
	}
	reviewID, ok := getID(c, "Review")
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), p, reviewID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
