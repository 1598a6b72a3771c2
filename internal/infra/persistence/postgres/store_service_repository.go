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

// storeServiceRepository implements the repository.StoreServiceRepository interface using GORM.
type storeServiceRepository struct {
	db *gorm.DB
}

// NewStoreServiceRepository is the constructor for storeServiceRepository.
func NewStoreServiceRepository(db *gorm.DB) repository.StoreServiceRepository {
	return &storeServiceRepository{db: db}
}

// CreateService persists a new store service.
func (repo *storeServiceRepository) CreateService(ctx context.Context, service *entity.StoreService) error {
	serviceM := fromStoreServiceDomain(service)

	if err := repo.db.WithContext(ctx).Create(serviceM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateSlug
		}

		return errors.Wrap(err, "failed to create store service")
	}

	service.CreatedAt = serviceM.CreatedAt
	service.UpdatedAt = serviceM.UpdatedAt

	return nil
}

// FindServiceByID retrieves a store service with its gallery images.
func (repo *storeServiceRepository) FindServiceByID(ctx context.Context, id uuid.UUID) (*entity.StoreService, error) {
	var serviceM model.StoreServiceModel
	err := repo.preloaded(ctx).First(&serviceM, "store_services.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrServiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find store service by id")
	}

	return toStoreServiceDomain(&serviceM), nil
}

// FindServiceBySlug retrieves a store service by its slug.
func (repo *storeServiceRepository) FindServiceBySlug(ctx context.Context, slug string) (*entity.StoreService, error) {
	var serviceM model.StoreServiceModel
	err := repo.preloaded(ctx).First(&serviceM, "store_services.slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrServiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find store service by slug")
	}

	return toStoreServiceDomain(&serviceM), nil
}

// ListServices retrieves store services in display order.
func (repo *storeServiceRepository) ListServices(ctx context.Context, activeOnly bool) ([]*entity.StoreService, error) {
	query := repo.preloaded(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var serviceMs []*model.StoreServiceModel
	if err := query.Order("display_order ASC, title ASC").Find(&serviceMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list store services")
	}

	services := make([]*entity.StoreService, 0, len(serviceMs))
	for _, serviceM := range serviceMs {
		services = append(services, toStoreServiceDomain(serviceM))
	}

	return services, nil
}

// UpdateService updates an existing store service record.
func (repo *storeServiceRepository) UpdateService(ctx context.Context, service *entity.StoreService) error {
	serviceM := fromStoreServiceDomain(service)

	result := repo.db.WithContext(ctx).
		Model(&model.StoreServiceModel{}).
		Where("id = ?", service.ID).
		Select("*").
		Omit("id", "created_at", "Images").
		Updates(serviceM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateSlug
		}

		return errors.Wrap(result.Error, "failed to update store service")
	}
	if result.RowsAffected == 0 {
		return repository.ErrServiceNotFound
	}

	return nil
}

// DeleteService removes a store service by its ID.
func (repo *storeServiceRepository) DeleteService(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.StoreServiceModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete store service")
	}
	if result.RowsAffected == 0 {
		return repository.ErrServiceNotFound
	}

	return nil
}

// AddServiceImage attaches an image to a service.
func (repo *storeServiceRepository) AddServiceImage(ctx context.Context, image *entity.StoreServiceImage) error {
	imageM := fromStoreServiceImageDomain(image)

	if err := repo.db.WithContext(ctx).Create(imageM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrServiceNotFound
		}

		return errors.Wrap(err, "failed to add store service image")
	}

	image.CreatedAt = imageM.CreatedAt

	return nil
}

// ClearPrimaryServiceImage unsets the primary flag on every image of the service.
func (repo *storeServiceRepository) ClearPrimaryServiceImage(ctx context.Context, serviceID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Model(&model.StoreServiceImageModel{}).
		Where("service_id = ?", serviceID).
		Update("is_primary", false).Error
	if err != nil {
		return errors.Wrap(err, "failed to clear primary store service image")
	}

	return nil
}

// SetPrimaryServiceImage marks a single image of the service as primary.
func (repo *storeServiceRepository) SetPrimaryServiceImage(ctx context.Context, serviceID, imageID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.StoreServiceImageModel{}).
		Where("id = ? AND service_id = ?", imageID, serviceID).
		Update("is_primary", true)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set primary store service image")
	}
	if result.RowsAffected == 0 {
		return repository.ErrImageNotFound
	}

	return nil
}

// RemoveServiceImage detaches an image from its service.
func (repo *storeServiceRepository) RemoveServiceImage(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.StoreServiceImageModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to remove store service image")
	}
	if result.RowsAffected == 0 {
		return repository.ErrImageNotFound
	}

	return nil
}

func (repo *storeServiceRepository) preloaded(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Model(&model.StoreServiceModel{}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, is_primary DESC")
		})
}

func toStoreServiceDomain(serviceM *model.StoreServiceModel) *entity.StoreService {
	service := &entity.StoreService{
		ID:          serviceM.ID,
		Title:       serviceM.Title,
		Slug:        serviceM.Slug,
		Category:    serviceM.Category,
		Description: serviceM.Description,
		IconName:    serviceM.IconName,
		Image:       serviceM.Image,
		IsActive:    serviceM.IsActive,
		Order:       serviceM.Order,
		SEO: entity.SEOFields{
			MetaTitle:       serviceM.MetaTitle,
			MetaDescription: serviceM.MetaDescription,
			MetaKeywords:    serviceM.MetaKeywords,
			FocusKeyword:    serviceM.FocusKeyword,
		},
		CreatedAt: serviceM.CreatedAt,
		UpdatedAt: serviceM.UpdatedAt,
	}
	for _, imageM := range serviceM.Images {
		service.Images = append(service.Images, toStoreServiceImageDomain(imageM))
	}

	return service
}

func fromStoreServiceDomain(service *entity.StoreService) *model.StoreServiceModel {
	return &model.StoreServiceModel{
		ID:              service.ID,
		Title:           service.Title,
		Slug:            service.Slug,
		Category:        service.Category,
		Description:     service.Description,
		IconName:        service.IconName,
		Image:           service.Image,
		IsActive:        service.IsActive,
		Order:           service.Order,
		MetaTitle:       service.SEO.MetaTitle,
		MetaDescription: service.SEO.MetaDescription,
		MetaKeywords:    service.SEO.MetaKeywords,
		FocusKeyword:    service.SEO.FocusKeyword,
		CreatedAt:       service.CreatedAt,
		UpdatedAt:       service.UpdatedAt,
	}
}

func toStoreServiceImageDomain(imageM *model.StoreServiceImageModel) *entity.StoreServiceImage {
	return &entity.StoreServiceImage{
		ID:        imageM.ID,
		ServiceID: imageM.ServiceID,
		Image:     imageM.Image,
		AltText:   imageM.AltText,
		IsPrimary: imageM.IsPrimary,
		Order:     imageM.Order,
		CreatedAt: imageM.CreatedAt,
	}
}

func fromStoreServiceImageDomain(image *entity.StoreServiceImage) *model.StoreServiceImageModel {
	return &model.StoreServiceImageModel{
		ID:        image.ID,
		ServiceID: image.ServiceID,
		Image:     image.Image,
		AltText:   image.AltText,
		IsPrimary: image.IsPrimary,
		Order:     image.Order,
		CreatedAt: image.CreatedAt,
	}
}
