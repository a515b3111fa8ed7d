package engagement

import (
	"context"

	"github.com/google/uuid"
	"github.com/plantstore/backend/internal/domain/shared"
)

// ReviewWithLikes is a review annotated with like information for a
// particular viewer
type ReviewWithLikes struct {
	Review
	LikesCount  int64
	IsLikedByMe bool
}

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	// FindByID finds a review by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)

	// FindByUserAndProduct finds a user's review of a product
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*Review, error)

	// FindByProduct lists reviews of a product annotated with like
	// counts. viewerID controls IsLikedByMe and may be nil for
	// anonymous callers. approvedOnly hides unmoderated reviews.
	FindByProduct(ctx context.Context, productID uuid.UUID, viewerID *uuid.UUID, approvedOnly bool, filter shared.Filter) ([]ReviewWithLikes, error)

	// CountByProduct counts reviews of a product
	CountByProduct(ctx context.Context, productID uuid.UUID, approvedOnly bool) (int64, error)

	// Save creates or updates a review
	Save(ctx context.Context, review *Review) error

	// Delete deletes a review and its likes
	Delete(ctx context.Context, id uuid.UUID) error

	// ToggleLike adds the user's like or removes it when it already
	// exists; it returns true when the review is liked afterwards
	ToggleLike(ctx context.Context, reviewID, userID uuid.UUID) (bool, error)
}
