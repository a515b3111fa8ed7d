package engagement

import (
	"time"

	"github.com/google/uuid"

	"github.com/plantstore/backend/internal/domain/engagement"
)

// CreateReviewRequest submits a review for a product
type CreateReviewRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Text   string `json:"text" binding:"omitempty,max=2000"`
}

// UpdateReviewRequest edits an existing review
type UpdateReviewRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Text   string `json:"text" binding:"omitempty,max=2000"`
}

// ReviewListFilter contains review listing parameters
type ReviewListFilter struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// ReviewResponse is the API representation of a review
type ReviewResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	UserID      uuid.UUID `json:"user_id"`
	Rating      int       `json:"rating"`
	Text        string    `json:"text,omitempty"`
	IsApproved  bool      `json:"is_approved"`
	LikesCount  int64     `json:"likes_count"`
	IsLikedByMe bool      `json:"is_liked_by_me"`
	CreatedAt   time.Time `json:"created_at"`
}

// LikeResponse reports the like state after a toggle
type LikeResponse struct {
	Liked bool `json:"liked"`
}

// ToReviewResponse converts a domain review without like annotations
func ToReviewResponse(review *engagement.Review) ReviewResponse {
	return ReviewResponse{
		ID:         review.ID,
		ProductID:  review.ProductID,
		UserID:     review.UserID,
		Rating:     review.Rating,
		Text:       review.Text,
		IsApproved: review.IsApproved,
		CreatedAt:  review.CreatedAt,
	}
}

// ToAnnotatedReviewResponse converts a review annotated with likes
func ToAnnotatedReviewResponse(review *engagement.ReviewWithLikes) ReviewResponse {
	resp := ToReviewResponse(&review.Review)
	resp.LikesCount = review.LikesCount
	resp.IsLikedByMe = review.IsLikedByMe
	return resp
}

// ToAnnotatedReviewResponses converts a slice of annotated reviews
func ToAnnotatedReviewResponses(reviews []engagement.ReviewWithLikes) []ReviewResponse {
	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = ToAnnotatedReviewResponse(&reviews[i])
	}
	return responses
}
