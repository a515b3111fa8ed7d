package handler

import (
	"github.com/gin-gonic/gin"

	engagementapp "github.com/plantstore/backend/internal/application/engagement"
	"github.com/plantstore/backend/internal/interfaces/http/dto"
	"github.com/plantstore/backend/internal/interfaces/http/middleware"
)

// ReviewHandler handles product review endpoints.
type ReviewHandler struct {
	BaseHandler
	reviewService *engagementapp.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *engagementapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func viewerFromContext(c *gin.Context) engagementapp.Viewer {
	viewer := engagementapp.Viewer{IsStaff: middleware.IsStaff(c)}
	if userID, ok := middleware.CurrentUserID(c); ok {
		viewer.UserID = &userID
	}
	return viewer
}

// ListByProduct handles GET /products/:slug/reviews. Non-staff viewers
// see approved reviews only; each review carries the caller's like state.
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	var filter engagementapp.ReviewListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.reviewService.ListByProduct(c.Request.Context(), c.Param("slug"), viewerFromContext(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(&h.BaseHandler, c, result)
}

// Create handles POST /products/:slug/reviews. One review per user per
// product; repeats are a conflict.
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}

	var req engagementapp.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.reviewService.Create(c.Request.Context(), userID, c.Param("slug"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

type updateReviewBody struct {
	Rating     int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Text       string `json:"text" binding:"omitempty,max=2000"`
	IsApproved *bool  `json:"is_approved"`
}

// Update handles PATCH /reviews/:id. Authors edit their own rating and
// text; setting is_approved is a staff-only moderation action.
func (h *ReviewHandler) Update(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}
	reviewID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}

	var body updateReviewBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BindError(c, err)
		return
	}

	if body.IsApproved != nil {
		if !middleware.IsStaff(c) {
			h.Error(c, dto.ErrCodeForbidden, "Only staff can moderate reviews")
			return
		}
		resp, err := h.reviewService.Moderate(c.Request.Context(), reviewID, *body.IsApproved)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, resp)
		return
	}

	if body.Rating == 0 {
		h.BadRequest(c, "rating is required")
		return
	}

	resp, err := h.reviewService.Update(c.Request.Context(), userID, reviewID, engagementapp.UpdateReviewRequest{
		Rating: body.Rating,
		Text:   body.Text,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /reviews/:id. Authors delete their own; staff
// delete any.
func (h *ReviewHandler) Delete(c *gin.Context) {
	if _, ok := middleware.CurrentUserID(c); !ok {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}
	reviewID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), viewerFromContext(c), reviewID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ToggleLike handles POST /reviews/:id/like.
func (h *ReviewHandler) ToggleLike(c *gin.Context) {
	userID, ok := requireUser(&h.BaseHandler, c)
	if !ok {
		return
	}
	reviewID, ok := uuidParam(&h.BaseHandler, c, "id")
	if !ok {
		return
	}

	resp, err := h.reviewService.ToggleLike(c.Request.Context(), userID, reviewID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
