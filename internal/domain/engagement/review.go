package engagement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/plantstore/backend/internal/domain/shared"
)

// Review is a customer's rating of a product. A user reviews a product
// at most once. Reviews are hidden from customers until approved by a
// staff member.
type Review struct {
	shared.BaseAggregateRoot
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_product,priority:1"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_product,priority:2"`
	Rating     int       `gorm:"not null"`
	Text       string    `gorm:"type:text"`
	IsApproved bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// ReviewLike records that a user liked a review
type ReviewLike struct {
	ReviewID  uuid.UUID `gorm:"type:uuid;not null;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;primaryKey"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (ReviewLike) TableName() string {
	return "review_likes"
}

// NewReview creates a new, unapproved review
func NewReview(userID, productID uuid.UUID, rating int, text string) (*Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	review := &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		ProductID:         productID,
		Rating:            rating,
		Text:              strings.TrimSpace(text),
	}

	review.AddDomainEvent(NewReviewSubmittedEvent(review))

	return review, nil
}

// Update changes the rating and text. Editing sends the review back to
// moderation.
func (r *Review) Update(rating int, text string) error {
	if err := validateRating(rating); err != nil {
		return err
	}

	r.Rating = rating
	r.Text = strings.TrimSpace(text)
	r.IsApproved = false
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// Approve makes the review visible to customers
func (r *Review) Approve() {
	if r.IsApproved {
		return
	}
	r.IsApproved = true
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Reject hides the review from customers
func (r *Review) Reject() {
	if !r.IsApproved {
		return
	}
	r.IsApproved = false
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return shared.NewDomainError("INVALID_INPUT", "Rating must be between 1 and 5")
	}
	return nil
}
