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

// productRepository implements the repository.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// CreateProduct persists a new product with its images, specifications and
// material links.
func (repo *productRepository) CreateProduct(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateSlug
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCategoryNotFound
		}

		return errors.Wrap(err, "failed to create product")
	}

	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// FindProductByID retrieves a product with its images, specifications,
// materials and reviews.
func (repo *productRepository) FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.preloaded(ctx).First(&productM, "products.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// FindProductBySlug retrieves a product by its slug.
func (repo *productRepository) FindProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var productM model.ProductModel
	err := repo.preloaded(ctx).First(&productM, "products.slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by slug")
	}

	return toProductDomain(&productM), nil
}

// ListProducts retrieves products matching the filter, newest first.
func (repo *productRepository) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := repo.preloaded(ctx)

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.ProductType != "" {
		query = query.Where("product_type = ?", string(filter.ProductType))
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var productMs []*model.ProductModel
	if err := query.Order("created_at DESC").Find(&productMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for _, productM := range productMs {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// UpdateProduct updates an existing product record and replaces its material links.
func (repo *productRepository) UpdateProduct(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Select("*").
		Omit("id", "created_at", "Category", "Materials", "Images", "Specifications", "Reviews").
		Updates(productM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateSlug
		}

		return errors.Wrap(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	// Materials go through the join table; Replace keeps it in sync with the entity.
	anchor := &model.ProductModel{ID: product.ID}
	materialMs := make([]*model.MaterialModel, 0, len(product.Materials))
	for _, material := range product.Materials {
		materialMs = append(materialMs, &model.MaterialModel{ID: material.ID})
	}
	err := repo.db.WithContext(ctx).Model(anchor).Association("Materials").Replace(materialMs)
	if err != nil {
		return errors.Wrap(err, "failed to replace product materials")
	}

	return nil
}

// DeleteProduct removes a product by its ID.
func (repo *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// AddImage attaches an image to a product.
func (repo *productRepository) AddImage(ctx context.Context, image *entity.ProductImage) error {
	imageM := fromProductImageDomain(image)

	if err := repo.db.WithContext(ctx).Create(imageM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to add product image")
	}

	image.CreatedAt = imageM.CreatedAt

	return nil
}

// FindImageByID retrieves a product image by its unique ID.
func (repo *productRepository) FindImageByID(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error) {
	var imageM model.ProductImageModel
	err := repo.db.WithContext(ctx).First(&imageM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrImageNotFound
		}

		return nil, errors.Wrap(err, "failed to find product image by id")
	}

	return toProductImageDomain(&imageM), nil
}

// ClearPrimaryImage unsets the primary flag on every image of the product.
func (repo *productRepository) ClearPrimaryImage(ctx context.Context, productID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Model(&model.ProductImageModel{}).
		Where("product_id = ?", productID).
		Update("is_primary", false).Error
	if err != nil {
		return errors.Wrap(err, "failed to clear primary product image")
	}

	return nil
}

// SetPrimaryImage marks a single image of the product as primary.
func (repo *productRepository) SetPrimaryImage(ctx context.Context, productID, imageID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductImageModel{}).
		Where("id = ? AND product_id = ?", imageID, productID).
		Update("is_primary", true)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set primary product image")
	}
	if result.RowsAffected == 0 {
		return repository.ErrImageNotFound
	}

	return nil
}

// SetImageOrder sets the sort position of one product image.
func (repo *productRepository) SetImageOrder(ctx context.Context, productID, imageID uuid.UUID, order int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductImageModel{}).
		Where("id = ? AND product_id = ?", imageID, productID).
		Update("display_order", order)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set product image order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrImageNotFound
	}

	return nil
}

// RemoveImage detaches an image from its product.
func (repo *productRepository) RemoveImage(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ProductImageModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to remove product image")
	}
	if result.RowsAffected == 0 {
		return repository.ErrImageNotFound
	}

	return nil
}

// ReplaceSpecifications swaps the full specification list of a product.
func (repo *productRepository) ReplaceSpecifications(ctx context.Context, productID uuid.UUID, specs []*entity.Specification) error {
	err := repo.db.WithContext(ctx).
		Delete(&model.SpecificationModel{}, "product_id = ?", productID).Error
	if err != nil {
		return errors.Wrap(err, "failed to clear product specifications")
	}

	if len(specs) == 0 {
		return nil
	}

	specMs := make([]*model.SpecificationModel, 0, len(specs))
	for _, spec := range specs {
		specMs = append(specMs, fromSpecificationDomain(spec))
	}
	if err := repo.db.WithContext(ctx).Create(specMs).Error; err != nil {
		return errors.Wrap(err, "failed to insert product specifications")
	}

	return nil
}

// preloaded returns a product query with every association the entity carries.
func (repo *productRepository) preloaded(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Preload("Category").
		Preload("Materials").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, is_primary DESC")
		}).
		Preload("Specifications", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Reviews")
}

// toProductDomain maps a persistence model back to a pure domain entity.
func toProductDomain(productM *model.ProductModel) *entity.Product {
	product := &entity.Product{
		ID:                productM.ID,
		Name:              productM.Name,
		Slug:              productM.Slug,
		CategoryID:        productM.CategoryID,
		Description:       productM.Description,
		ProductType:       entity.ProductType(productM.ProductType),
		BasePrice:         productM.BasePrice,
		IsPriceVisible:    productM.IsPriceVisible,
		Length:            productM.Length,
		Width:             productM.Width,
		Height:            productM.Height,
		Weight:            productM.Weight,
		IsCustomizable:    productM.IsCustomizable,
		CustomizationNote: productM.CustomizationNote,
		StockQuantity:     productM.StockQuantity,
		LowStockThreshold: productM.LowStockThreshold,
		IsActive:          productM.IsActive,
		IsFeatured:        productM.IsFeatured,
		SEO: entity.SEOFields{
			MetaTitle:       productM.MetaTitle,
			MetaDescription: productM.MetaDescription,
			MetaKeywords:    productM.MetaKeywords,
			FocusKeyword:    productM.FocusKeyword,
		},
		CreatedAt: productM.CreatedAt,
		UpdatedAt: productM.UpdatedAt,
	}
	if productM.Category != nil {
		product.CategoryName = productM.Category.Name
	}
	for _, materialM := range productM.Materials {
		product.Materials = append(product.Materials, toMaterialDomain(materialM))
	}
	for _, imageM := range productM.Images {
		product.Images = append(product.Images, toProductImageDomain(imageM))
	}
	for _, specM := range productM.Specifications {
		product.Specifications = append(product.Specifications, toSpecificationDomain(specM))
	}
	for _, reviewM := range productM.Reviews {
		product.Reviews = append(product.Reviews, toReviewDomain(reviewM))
	}

	return product
}

// fromProductDomain maps a pure domain entity to a persistence model.
// Images and specifications are managed through their own operations and are
// included only on create.
func fromProductDomain(product *entity.Product) *model.ProductModel {
	productM := &model.ProductModel{
		ID:                product.ID,
		Name:              product.Name,
		Slug:              product.Slug,
		CategoryID:        product.CategoryID,
		Description:       product.Description,
		ProductType:       string(product.ProductType),
		BasePrice:         product.BasePrice,
		IsPriceVisible:    product.IsPriceVisible,
		Length:            product.Length,
		Width:             product.Width,
		Height:            product.Height,
		Weight:            product.Weight,
		IsCustomizable:    product.IsCustomizable,
		CustomizationNote: product.CustomizationNote,
		StockQuantity:     product.StockQuantity,
		LowStockThreshold: product.LowStockThreshold,
		IsActive:          product.IsActive,
		IsFeatured:        product.IsFeatured,
		MetaTitle:         product.SEO.MetaTitle,
		MetaDescription:   product.SEO.MetaDescription,
		MetaKeywords:      product.SEO.MetaKeywords,
		FocusKeyword:      product.SEO.FocusKeyword,
		CreatedAt:         product.CreatedAt,
		UpdatedAt:         product.UpdatedAt,
	}
	for _, material := range product.Materials {
		productM.Materials = append(productM.Materials, &model.MaterialModel{ID: material.ID})
	}
	for _, image := range product.Images {
		productM.Images = append(productM.Images, fromProductImageDomain(image))
	}
	for _, spec := range product.Specifications {
		productM.Specifications = append(productM.Specifications, fromSpecificationDomain(spec))
	}

	return productM
}

func toProductImageDomain(imageM *model.ProductImageModel) *entity.ProductImage {
	return &entity.ProductImage{
		ID:        imageM.ID,
		ProductID: imageM.ProductID,
		Image:     imageM.Image,
		AltText:   imageM.AltText,
		IsPrimary: imageM.IsPrimary,
		Order:     imageM.Order,
		CreatedAt: imageM.CreatedAt,
	}
}

func fromProductImageDomain(image *entity.ProductImage) *model.ProductImageModel {
	return &model.ProductImageModel{
		ID:        image.ID,
		ProductID: image.ProductID,
		Image:     image.Image,
		AltText:   image.AltText,
		IsPrimary: image.IsPrimary,
		Order:     image.Order,
		CreatedAt: image.CreatedAt,
	}
}

func toSpecificationDomain(specM *model.SpecificationModel) *entity.Specification {
	return &entity.Specification{
		ID:        specM.ID,
		ProductID: specM.ProductID,
		Name:      specM.Name,
		Value:     specM.Value,
		Order:     specM.Order,
	}
}

func fromSpecificationDomain(spec *entity.Specification) *model.SpecificationModel {
	return &model.SpecificationModel{
		ID:        spec.ID,
		ProductID: spec.ProductID,
		Name:      spec.Name,
		Value:     spec.Value,
		Order:     spec.Order,
	}
}
