package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plantstore/backend/internal/domain/engagement"
	"github.com/plantstore/backend/internal/domain/shared"
)

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by its ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.Review, error) {
	var review engagement.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// FindByUserAndProduct finds a user's review of a product
func (r *GormReviewRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*engagement.Review, error) {
	var review engagement.Review
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// FindByProduct lists reviews of a product annotated with like counts
// and whether the viewer liked each one
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, viewerID *uuid.UUID, approvedOnly bool, filter shared.Filter) ([]engagement.ReviewWithLikes, error) {
	likedExpr := "FALSE"
	args := []interface{}{}
	if viewerID != nil {
		likedExpr = "EXISTS (SELECT 1 FROM review_likes ml WHERE ml.review_id = reviews.id AND ml.user_id = ?)"
		args = append(args, *viewerID)
	}

	q := r.db.WithContext(ctx).Model(&engagement.Review{}).
		Select("reviews.*, "+
			"(SELECT COUNT(*) FROM review_likes rl WHERE rl.review_id = reviews.id) AS likes_count, "+
			likedExpr+" AS is_liked_by_me", args...).
		Where("reviews.product_id = ?", productID)

	if approvedOnly {
		q = q.Where("reviews.is_approved = ?", true)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		q = q.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ReviewSortFields, "created_at")
	q = q.Order("reviews." + orderBy + " " + ValidateSortOrder(filter.OrderDir))

	var reviews []engagement.ReviewWithLikes
	if err := q.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// CountByProduct counts reviews of a product
func (r *GormReviewRepository) CountByProduct(ctx context.Context, productID uuid.UUID, approvedOnly bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(&engagement.Review{}).
		Where("product_id = ?", productID)
	if approvedOnly {
		q = q.Where("is_approved = ?", true)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, review *engagement.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// Delete deletes a review and its likes
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&engagement.ReviewLike{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&engagement.Review{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// ToggleLike adds the user's like or removes it when it already
// exists; it returns true when the review is liked afterwards
func (r *GormReviewRepository) ToggleLike(ctx context.Context, reviewID, userID uuid.UUID) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).
			Delete(&engagement.ReviewLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		liked = true
		return tx.Create(&engagement.ReviewLike{
			ReviewID: reviewID,
			UserID:   userID,
		}).Error
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

// Ensure GormReviewRepository implements ReviewRepository
var _ engagement.ReviewRepository = (*GormReviewRepository)(nil)
