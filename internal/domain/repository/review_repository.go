package repository

import (
	"context"
	"errors"

	"forge/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for review persistence.
var (
	// ErrReviewNotFound is returned when a review is not found.
	ErrReviewNotFound = errors.New("review not found")
	// ErrDuplicateReview is returned when the user has already reviewed the product.
	ErrDuplicateReview = errors.New("review already exists for this product and user")
)

// ReviewRepository defines product review persistence operations.
// A user may hold at most one review per product; CreateReview enforces this.
type ReviewRepository interface {
	// CreateReview persists a new review.
	// Returns ErrDuplicateReview when the (product, user) pair already has one.
	CreateReview(ctx context.Context, review *entity.Review) error

	// FindReviewByID retrieves a review by its unique ID.
	FindReviewByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// FindReviewByProductAndUser retrieves the review a user left on a product.
	FindReviewByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (*entity.Review, error)

	// ListReviewsByProduct retrieves reviews for a product, newest first.
	// When approvedOnly is set, unapproved reviews are excluded.
	ListReviewsByProduct(ctx context.Context, productID uuid.UUID, approvedOnly bool) ([]*entity.Review, error)

	// UpdateReview updates an existing review record.
	UpdateReview(ctx context.Context, review *entity.Review) error

	// DeleteReview removes a review by its ID.
	DeleteReview(ctx context.Context, id uuid.UUID) error
}
