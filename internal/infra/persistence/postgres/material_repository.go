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

// materialRepository implements the repository.MaterialRepository interface using GORM.
type materialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository is the constructor for materialRepository.
func NewMaterialRepository(db *gorm.DB) repository.MaterialRepository {
	return &materialRepository{db: db}
}

// CreateMaterial persists a new material.
func (repo *materialRepository) CreateMaterial(ctx context.Context, material *entity.Material) error {
	materialM := fromMaterialDomain(material)

	if err := repo.db.WithContext(ctx).Create(materialM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrap(err, "material name already exists")
		}

		return errors.Wrap(err, "failed to create material")
	}

	material.CreatedAt = materialM.CreatedAt
	material.UpdatedAt = materialM.UpdatedAt

	return nil
}

// FindMaterialByID retrieves a material by its unique ID.
func (repo *materialRepository) FindMaterialByID(ctx context.Context, id uuid.UUID) (*entity.Material, error) {
	var materialM model.MaterialModel
	err := repo.db.WithContext(ctx).First(&materialM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMaterialNotFound
		}

		return nil, errors.Wrap(err, "failed to find material by id")
	}

	return toMaterialDomain(&materialM), nil
}

// ListMaterials retrieves all materials ordered by name.
func (repo *materialRepository) ListMaterials(ctx context.Context, activeOnly bool) ([]*entity.Material, error) {
	query := repo.db.WithContext(ctx).Model(&model.MaterialModel{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var materialMs []*model.MaterialModel
	if err := query.Order("name ASC").Find(&materialMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list materials")
	}

	materials := make([]*entity.Material, 0, len(materialMs))
	for _, materialM := range materialMs {
		materials = append(materials, toMaterialDomain(materialM))
	}

	return materials, nil
}

// UpdateMaterial updates an existing material record.
func (repo *materialRepository) UpdateMaterial(ctx context.Context, material *entity.Material) error {
	materialM := fromMaterialDomain(material)

	result := repo.db.WithContext(ctx).
		Model(&model.MaterialModel{}).
		Where("id = ?", material.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(materialM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return errors.Wrap(result.Error, "material name already exists")
		}

		return errors.Wrap(result.Error, "failed to update material")
	}
	if result.RowsAffected == 0 {
		return repository.ErrMaterialNotFound
	}

	return nil
}

// DeleteMaterial removes a material by its ID.
func (repo *materialRepository) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.MaterialModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete material")
	}
	if result.RowsAffected == 0 {
		return repository.ErrMaterialNotFound
	}

	return nil
}

func toMaterialDomain(materialM *model.MaterialModel) *entity.Material {
	return &entity.Material{
		ID:          materialM.ID,
		Name:        materialM.Name,
		Description: materialM.Description,
		Image:       materialM.Image,
		IsActive:    materialM.IsActive,
		CreatedAt:   materialM.CreatedAt,
		UpdatedAt:   materialM.UpdatedAt,
	}
}

func fromMaterialDomain(material *entity.Material) *model.MaterialModel {
	return &model.MaterialModel{
		ID:          material.ID,
		Name:        material.Name,
		Description: material.Description,
		Image:       material.Image,
		IsActive:    material.IsActive,
		CreatedAt:   material.CreatedAt,
		UpdatedAt:   material.UpdatedAt,
	}
}
