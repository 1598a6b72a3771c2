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

// portfolioRepository implements the repository.PortfolioRepository interface using GORM.
type portfolioRepository struct {
	db *gorm.DB
}

// NewPortfolioRepository is the constructor for portfolioRepository.
func NewPortfolioRepository(db *gorm.DB) repository.PortfolioRepository {
	return &portfolioRepository{db: db}
}

// CreatePortfolioCategory persists a new showcase category.
func (repo *portfolioRepository) CreatePortfolioCategory(ctx context.Context, category *entity.PortfolioCategory) error {
	categoryM := fromPortfolioCategoryDomain(category)

	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateSlug
		}

		return errors.Wrap(err, "failed to create portfolio category")
	}

	category.CreatedAt = categoryM.CreatedAt

	return nil
}

// ListPortfolioCategories retrieves all showcase categories ordered by name.
func (repo *portfolioRepository) ListPortfolioCategories(ctx context.Context) ([]*entity.PortfolioCategory, error) {
	var categoryMs []*model.PortfolioCategoryModel
	err := repo.db.WithContext(ctx).Order("name ASC").Find(&categoryMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list portfolio categories")
	}

	categories := make([]*entity.PortfolioCategory, 0, len(categoryMs))
	for _, categoryM := range categoryMs {
		categories = append(categories, toPortfolioCategoryDomain(categoryM))
	}

	return categories, nil
}

// UpdatePortfolioCategory updates an existing showcase category.
func (repo *portfolioRepository) UpdatePortfolioCategory(ctx context.Context, category *entity.PortfolioCategory) error {
	categoryM := fromPortfolioCategoryDomain(category)

	result := repo.db.WithContext(ctx).
		Model(&model.PortfolioCategoryModel{}).
		Where("id = ?", category.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(categoryM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateSlug
		}

		return errors.Wrap(result.Error, "failed to update portfolio category")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPortfolioCategoryNotFound
	}

	return nil
}

// DeletePortfolioCategory removes a showcase category. Projects referencing it
// are detached first so they survive with a null category.
func (repo *portfolioRepository) DeletePortfolioCategory(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Model(&model.PortfolioProjectModel{}).
		Where("category_id = ?", id).
		Update("category_id", nil).Error
	if err != nil {
		return errors.Wrap(err, "failed to detach portfolio projects from category")
	}

	result := repo.db.WithContext(ctx).Delete(&model.PortfolioCategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete portfolio category")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPortfolioCategoryNotFound
	}

	return nil
}

// CreatePortfolioProject persists a new showcase project with its images.
func (repo *portfolioRepository) CreatePortfolioProject(ctx context.Context, project *entity.PortfolioProject) error {
	projectM := fromPortfolioProjectDomain(project)

	if err := repo.db.WithContext(ctx).Create(projectM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateSlug
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrPortfolioCategoryNotFound
		}

		return errors.Wrap(err, "failed to create portfolio project")
	}

	project.CreatedAt = projectM.CreatedAt
	project.UpdatedAt = projectM.UpdatedAt

	return nil
}

// FindPortfolioProjectByID retrieves a showcase project with its images.
func (repo *portfolioRepository) FindPortfolioProjectByID(ctx context.Context, id uuid.UUID) (*entity.PortfolioProject, error) {
	var projectM model.PortfolioProjectModel
	err := repo.preloaded(ctx).First(&projectM, "portfolio_projects.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPortfolioProjectNotFound
		}

		return nil, errors.Wrap(err, "failed to find portfolio project by id")
	}

	return toPortfolioProjectDomain(&projectM), nil
}

// FindPortfolioProjectBySlug retrieves a showcase project by its slug.
func (repo *portfolioRepository) FindPortfolioProjectBySlug(ctx context.Context, slug string) (*entity.PortfolioProject, error) {
	var projectM model.PortfolioProjectModel
	err := repo.preloaded(ctx).First(&projectM, "portfolio_projects.slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPortfolioProjectNotFound
		}

		return nil, errors.Wrap(err, "failed to find portfolio project by slug")
	}

	return toPortfolioProjectDomain(&projectM), nil
}

// ListPortfolioProjects retrieves showcase projects in display order.
func (repo *portfolioRepository) ListPortfolioProjects(ctx context.Context, categoryID *uuid.UUID, featuredOnly bool) ([]*entity.PortfolioProject, error) {
	query := repo.preloaded(ctx)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if featuredOnly {
		query = query.Where("is_featured = ?", true)
	}

	var projectMs []*model.PortfolioProjectModel
	if err := query.Order("display_order ASC, created_at DESC").Find(&projectMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list portfolio projects")
	}

	projects := make([]*entity.PortfolioProject, 0, len(projectMs))
	for _, projectM := range projectMs {
		projects = append(projects, toPortfolioProjectDomain(projectM))
	}

	return projects, nil
}

// UpdatePortfolioProject updates an existing showcase project.
func (repo *portfolioRepository) UpdatePortfolioProject(ctx context.Context, project *entity.PortfolioProject) error {
	projectM := fromPortfolioProjectDomain(project)

	result := repo.db.WithContext(ctx).
		Model(&model.PortfolioProjectModel{}).
		Where("id = ?", project.ID).
		Select("*").
		Omit("id", "created_at", "Images").
		Updates(projectM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateSlug
		}

		return errors.Wrap(result.Error, "failed to update portfolio project")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPortfolioProjectNotFound
	}

	return nil
}

// DeletePortfolioProject removes a showcase project by its ID. Images cascade.
func (repo *portfolioRepository) DeletePortfolioProject(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.PortfolioProjectModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete portfolio project")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPortfolioProjectNotFound
	}

	return nil
}

// AddProjectImage attaches an image to a showcase project.
func (repo *portfolioRepository) AddProjectImage(ctx context.Context, image *entity.PortfolioProjectImage) error {
	imageM := fromPortfolioProjectImageDomain(image)

	if err := repo.db.WithContext(ctx).Create(imageM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrPortfolioProjectNotFound
		}

		return errors.Wrap(err, "failed to add portfolio project image")
	}

	return nil
}

// ClearPrimaryProjectImage unsets the primary flag on every image of the project.
func (repo *portfolioRepository) ClearPrimaryProjectImage(ctx context.Context, projectID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Model(&model.PortfolioProjectImageModel{}).
		Where("project_id = ?", projectID).
		Update("is_primary", false).Error
	if err != nil {
		return errors.Wrap(err, "failed to clear primary portfolio project image")
	}

	return nil
}

// SetPrimaryProjectImage marks a single image of the project as primary.
func (repo *portfolioRepository) SetPrimaryProjectImage(ctx context.Context, projectID, imageID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PortfolioProjectImageModel{}).
		Where("id = ? AND project_id = ?", imageID, projectID).
		Update("is_primary", true)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set primary portfolio project image")
	}
	if result.RowsAffected == 0 {
		return repository.ErrImageNotFound
	}

	return nil
}

// RemoveProjectImage detaches an image from its project.
func (repo *portfolioRepository) RemoveProjectImage(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.PortfolioProjectImageModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to remove portfolio project image")
	}
	if result.RowsAffected == 0 {
		return repository.ErrImageNotFound
	}

	return nil
}

func (repo *portfolioRepository) preloaded(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Model(&model.PortfolioProjectModel{}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, is_primary DESC")
		})
}

func toPortfolioCategoryDomain(categoryM *model.PortfolioCategoryModel) *entity.PortfolioCategory {
	return &entity.PortfolioCategory{
		ID:          categoryM.ID,
		Name:        categoryM.Name,
		Slug:        categoryM.Slug,
		Description: categoryM.Description,
		CreatedAt:   categoryM.CreatedAt,
	}
}

func fromPortfolioCategoryDomain(category *entity.PortfolioCategory) *model.PortfolioCategoryModel {
	return &model.PortfolioCategoryModel{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
	}
}

func toPortfolioProjectDomain(projectM *model.PortfolioProjectModel) *entity.PortfolioProject {
	project := &entity.PortfolioProject{
		ID:             projectM.ID,
		Title:          projectM.Title,
		Slug:           projectM.Slug,
		CategoryID:     projectM.CategoryID,
		Description:    projectM.Description,
		ClientName:     projectM.ClientName,
		ClientLogo:     projectM.ClientLogo,
		Location:       projectM.Location,
		CompletionDate: projectM.CompletionDate,
		IsFeatured:     projectM.IsFeatured,
		Order:          projectM.Order,
		SEO: entity.SEOFields{
			MetaTitle:       projectM.MetaTitle,
			MetaDescription: projectM.MetaDescription,
			MetaKeywords:    projectM.MetaKeywords,
			FocusKeyword:    projectM.FocusKeyword,
		},
		CreatedAt: projectM.CreatedAt,
		UpdatedAt: projectM.UpdatedAt,
	}
	for _, imageM := range projectM.Images {
		project.Images = append(project.Images, toPortfolioProjectImageDomain(imageM))
	}

	return project
}

// fromPortfolioProjectDomain maps a pure domain entity to a persistence model.
// Images are managed through their own operations.
func fromPortfolioProjectDomain(project *entity.PortfolioProject) *model.PortfolioProjectModel {
	return &model.PortfolioProjectModel{
		ID:              project.ID,
		Title:           project.Title,
		Slug:            project.Slug,
		CategoryID:      project.CategoryID,
		Description:     project.Description,
		ClientName:      project.ClientName,
		ClientLogo:      project.ClientLogo,
		Location:        project.Location,
		CompletionDate:  project.CompletionDate,
		IsFeatured:      project.IsFeatured,
		Order:           project.Order,
		MetaTitle:       project.SEO.MetaTitle,
		MetaDescription: project.SEO.MetaDescription,
		MetaKeywords:    project.SEO.MetaKeywords,
		FocusKeyword:    project.SEO.FocusKeyword,
		CreatedAt:       project.CreatedAt,
		UpdatedAt:       project.UpdatedAt,
	}
}

func toPortfolioProjectImageDomain(imageM *model.PortfolioProjectImageModel) *entity.PortfolioProjectImage {
	return &entity.PortfolioProjectImage{
		ID:        imageM.ID,
		ProjectID: imageM.ProjectID,
		Image:     imageM.Image,
		AltText:   imageM.AltText,
		IsPrimary: imageM.IsPrimary,
		Order:     imageM.Order,
	}
}

func fromPortfolioProjectImageDomain(image *entity.PortfolioProjectImage) *model.PortfolioProjectImageModel {
	return &model.PortfolioProjectImageModel{
		ID:        image.ID,
		ProjectID: image.ProjectID,
		Image:     image.Image,
		AltText:   image.AltText,
		IsPrimary: image.IsPrimary,
		Order:     image.Order,
	}
}
