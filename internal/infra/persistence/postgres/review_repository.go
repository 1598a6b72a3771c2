package postgres

import (
	"context"

	"forge/internal/domain/entity"
	"forge/internal/domain/repository"
	"forge/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// reviewRepository implements the repository.ReviewRepository interface using GORM.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// CreateReview persists a new review.
func (repo *reviewRepository) CreateReview(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateReview
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to create review")
	}

	review.CreatedAt = reviewM.CreatedAt
	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

// FindReviewByID retrieves a review by its unique ID.
func (repo *reviewRepository) FindReviewByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel
	err := repo.db.WithContext(ctx).Preload("User").First(&reviewM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review by id")
	}

	return toReviewDomain(&reviewM), nil
}

// FindReviewByProductAndUser retrieves the review a user left on a product.
func (repo *reviewRepository) FindReviewByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel
	err := repo.db.WithContext(ctx).
		Preload("User").
		First(&reviewM, "product_id = ? AND user_id = ?", productID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review by product and user")
	}

	return toReviewDomain(&reviewM), nil
}

// ListReviewsByProduct retrieves reviews for a product, newest first.
func (repo *reviewRepository) ListReviewsByProduct(ctx context.Context, productID uuid.UUID, approvedOnly bool) ([]*entity.Review, error) {
	query := repo.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID)
	if approvedOnly {
		query = query.Where("is_approved = ?", true)
	}

	var reviewMs []*model.ReviewModel
	if err := query.Order("created_at DESC").Find(&reviewMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list reviews by product")
	}

	reviews := make([]*entity.Review, 0, len(reviewMs))
	for _, reviewM := range reviewMs {
		reviews = append(reviews, toReviewDomain(reviewM))
	}

	return reviews, nil
}

// UpdateReview updates an existing review record.
func (repo *reviewRepository) UpdateReview(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	result := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Where("id = ?", review.ID).
		Select("*").
		Omit("id", "product_id", "user_id", "created_at", "User").
		Updates(reviewM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update review")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

// DeleteReview removes a review by its ID.
func (repo *reviewRepository) DeleteReview(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ReviewModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete review")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

// toReviewDomain maps a persistence model back to a pure domain entity.
// The author's display name and avatar are denormalized from the preloaded user.
func toReviewDomain(reviewM *model.ReviewModel) *entity.Review {
	review := &entity.Review{
		ID:                 reviewM.ID,
		ProductID:          reviewM.ProductID,
		UserID:             reviewM.UserID,
		Rating:             reviewM.Rating,
		Title:              reviewM.Title,
		Comment:            reviewM.Comment,
		IsVerifiedPurchase: reviewM.IsVerifiedPurchase,
		IsApproved:         reviewM.IsApproved,
		CreatedAt:          reviewM.CreatedAt,
		UpdatedAt:          reviewM.UpdatedAt,
	}
	if reviewM.User != nil {
		author := toUserDomain(reviewM.User)
		review.UserName = author.FullName()
		review.UserAvatar = author.ProfilePicture
	}

	return review
}

// fromReviewDomain maps a pure domain entity to a persistence model.
func fromReviewDomain(review *entity.Review) *model.ReviewModel {
	return &model.ReviewModel{
		ID:                 review.ID,
		ProductID:          review.ProductID,
		UserID:             review.UserID,
		Rating:             review.Rating,
		Title:              review.Title,
		Comment:            review.Comment,
		IsVerifiedPurchase: review.IsVerifiedPurchase,
		IsApproved:         review.IsApproved,
		CreatedAt:          review.CreatedAt,
		UpdatedAt:          review.UpdatedAt,
	}
}
