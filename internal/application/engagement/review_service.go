package engagement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plantstore/backend/internal/domain/catalog"
	"github.com/plantstore/backend/internal/domain/engagement"
	"github.com/plantstore/backend/internal/domain/shared"
)

// Viewer identifies who is reading or writing reviews. A nil UserID
// means an anonymous visitor.
type Viewer struct {
	UserID  *uuid.UUID
	IsStaff bool
}

// ReviewService handles product reviews, likes, and moderation
type ReviewService struct {
	reviewRepo  engagement.ReviewRepository
	productRepo catalog.ProductRepository
	eventBus    shared.EventPublisher
	logger      *zap.Logger
}

// NewReviewService creates a new review service
func NewReviewService(
	reviewRepo engagement.ReviewRepository,
	productRepo catalog.ProductRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// ListByProduct returns reviews of a product. Customers and anonymous
// visitors see approved reviews only; staff see everything.
func (s *ReviewService) ListByProduct(ctx context.Context, productSlug string, viewer Viewer, filter ReviewListFilter) (*shared.Paginated[ReviewResponse], error) {
	product, err := s.productRepo.FindBySlug(ctx, productSlug)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}

	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}

	approvedOnly := !viewer.IsStaff

	reviews, err := s.reviewRepo.FindByProduct(ctx, product.ID, viewer.UserID, approvedOnly, f)
	if err != nil {
		s.logger.Error("Failed to list reviews", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list reviews")
	}

	total, err := s.reviewRepo.CountByProduct(ctx, product.ID, approvedOnly)
	if err != nil {
		s.logger.Error("Failed to count reviews", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list reviews")
	}

	result := shared.NewPaginated(ToAnnotatedReviewResponses(reviews), total, f.Page, f.PageSize)
	return &result, nil
}

// Create submits a review for a product. Each user reviews a product
// at most once.
func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, productSlug string, req CreateReviewRequest) (*ReviewResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, productSlug)
	if err != nil || !product.IsActive {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}

	existing, err := s.reviewRepo.FindByUserAndProduct(ctx, userID, product.ID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to look up review", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to submit review")
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "You have already reviewed this product")
	}

	review, err := engagement.NewReview(userID, product.ID, req.Rating, req.Text)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		s.logger.Error("Failed to save review", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to submit review")
	}

	s.publishEvents(ctx, review)

	resp := ToReviewResponse(review)
	return &resp, nil
}

// Update edits the caller's review and sends it back to moderation
func (s *ReviewService) Update(ctx context.Context, userID, reviewID uuid.UUID, req UpdateReviewRequest) (*ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Review not found")
	}
	if review.UserID != userID {
		return nil, shared.ErrForbidden
	}

	if err := review.Update(req.Rating, req.Text); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		s.logger.Error("Failed to save review", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update review")
	}

	resp := ToReviewResponse(review)
	return &resp, nil
}

// Delete removes a review. Owners delete their own; staff delete any.
func (s *ReviewService) Delete(ctx context.Context, viewer Viewer, reviewID uuid.UUID) error {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return shared.NewDomainError("NOT_FOUND", "Review not found")
	}
	if !viewer.IsStaff && (viewer.UserID == nil || review.UserID != *viewer.UserID) {
		return shared.ErrForbidden
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		s.logger.Error("Failed to delete review", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete review")
	}
	return nil
}

// ToggleLike flips the caller's like on an approved review and reports
// the resulting state.
func (s *ReviewService) ToggleLike(ctx context.Context, userID, reviewID uuid.UUID) (*LikeResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Review not found")
	}
	if !review.IsApproved {
		return nil, shared.NewDomainError("NOT_FOUND", "Review not found")
	}

	liked, err := s.reviewRepo.ToggleLike(ctx, reviewID, userID)
	if err != nil {
		s.logger.Error("Failed to toggle review like", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to like review")
	}

	return &LikeResponse{Liked: liked}, nil
}

// Moderate approves or rejects a review (staff only, enforced at the
// transport layer).
func (s *ReviewService) Moderate(ctx context.Context, reviewID uuid.UUID, approve bool) (*ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Review not found")
	}

	if approve {
		review.Approve()
	} else {
		review.Reject()
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		s.logger.Error("Failed to save review", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to moderate review")
	}

	s.logger.Info("Review moderated",
		zap.String("review_id", reviewID.String()),
		zap.Bool("approved", approve))

	resp := ToReviewResponse(review)
	return &resp, nil
}

func (s *ReviewService) publishEvents(ctx context.Context, review *engagement.Review) {
	events := review.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish domain events", zap.Error(err))
	}
	review.ClearDomainEvents()
}
