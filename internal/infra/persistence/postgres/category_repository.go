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

// categoryRepository implements the repository.CategoryRepository interface using GORM.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

// CreateCategory persists a new category.
func (repo *categoryRepository) CreateCategory(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)

	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateSlug
		}

		return errors.Wrap(err, "failed to create category")
	}

	category.CreatedAt = categoryM.CreatedAt
	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

// FindCategoryByID retrieves a category by its unique ID.
func (repo *categoryRepository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryM model.CategoryModel
	err := repo.db.WithContext(ctx).First(&categoryM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by id")
	}

	return toCategoryDomain(&categoryM), nil
}

// FindCategoryBySlug retrieves a category by its slug.
func (repo *categoryRepository) FindCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var categoryM model.CategoryModel
	err := repo.db.WithContext(ctx).First(&categoryM, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by slug")
	}

	return toCategoryDomain(&categoryM), nil
}

// ListCategories retrieves all categories ordered by name.
func (repo *categoryRepository) ListCategories(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	query := repo.db.WithContext(ctx).Model(&model.CategoryModel{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var categoryMs []*model.CategoryModel
	if err := query.Order("name ASC").Find(&categoryMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.Category, 0, len(categoryMs))
	for _, categoryM := range categoryMs {
		categories = append(categories, toCategoryDomain(categoryM))
	}

	return categories, nil
}

// UpdateCategory updates an existing category record.
func (repo *categoryRepository) UpdateCategory(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)

	result := repo.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("id = ?", category.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(categoryM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateSlug
		}

		return errors.Wrap(result.Error, "failed to update category")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

// DeleteCategory removes a category by its ID.
func (repo *categoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.CategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete category")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

func toCategoryDomain(categoryM *model.CategoryModel) *entity.Category {
	return &entity.Category{
		ID:          categoryM.ID,
		Name:        categoryM.Name,
		Slug:        categoryM.Slug,
		Description: categoryM.Description,
		Image:       categoryM.Image,
		IsActive:    categoryM.IsActive,
		CreatedAt:   categoryM.CreatedAt,
		UpdatedAt:   categoryM.UpdatedAt,
	}
}

func fromCategoryDomain(category *entity.Category) *model.CategoryModel {
	return &model.CategoryModel{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		Image:       category.Image,
		IsActive:    category.IsActive,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}
