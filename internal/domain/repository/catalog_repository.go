package repository

import (
	"context"
	"errors"

	"forge/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for catalog persistence.
var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrMaterialNotFound is returned when a material is not found.
	ErrMaterialNotFound = errors.New("material not found")
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrImageNotFound is returned when a product or service image is not found.
	ErrImageNotFound = errors.New("image not found")
	// ErrServiceNotFound is returned when a store service is not found.
	ErrServiceNotFound = errors.New("store service not found")
	// ErrDuplicateSlug is returned when a slug is already taken within its table.
	ErrDuplicateSlug = errors.New("slug already exists")
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID  *uuid.UUID
	ProductType entity.ProductType // Zero value means all types.
	ActiveOnly  bool
	Featured    *bool
	Search      string // Matches name and description.
}

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	// CreateCategory persists a new category. Returns ErrDuplicateSlug on a slug clash.
	CreateCategory(ctx context.Context, category *entity.Category) error

	// FindCategoryByID retrieves a category by its unique ID.
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindCategoryBySlug retrieves a category by its slug.
	FindCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error)

	// ListCategories retrieves all categories ordered by name.
	ListCategories(ctx context.Context, activeOnly bool) ([]*entity.Category, error)

	// UpdateCategory updates an existing category record.
	UpdateCategory(ctx context.Context, category *entity.Category) error

	// DeleteCategory removes a category by its ID.
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// MaterialRepository defines material persistence operations.
type MaterialRepository interface {
	CreateMaterial(ctx context.Context, material *entity.Material) error
	FindMaterialByID(ctx context.Context, id uuid.UUID) (*entity.Material, error)
	ListMaterials(ctx context.Context, activeOnly bool) ([]*entity.Material, error)
	UpdateMaterial(ctx context.Context, material *entity.Material) error
	DeleteMaterial(ctx context.Context, id uuid.UUID) error
}

// ProductRepository defines product persistence operations, including the
// product's images and specifications.
type ProductRepository interface {
	// CreateProduct persists a new product. Returns ErrDuplicateSlug on a slug clash.
	CreateProduct(ctx context.Context, product *entity.Product) error

	// FindProductByID retrieves a product with its images, specifications and materials.
	FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindProductBySlug retrieves a product by its slug.
	FindProductBySlug(ctx context.Context, slug string) (*entity.Product, error)

	// ListProducts retrieves products matching the filter, newest first.
	ListProducts(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)

	// UpdateProduct updates an existing product record.
	UpdateProduct(ctx context.Context, product *entity.Product) error

	// DeleteProduct removes a product by its ID.
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// AddImage attaches an image to a product.
	AddImage(ctx context.Context, image *entity.ProductImage) error

	// FindImageByID retrieves a product image by its unique ID.
	FindImageByID(ctx context.Context, id uuid.UUID) (*entity.ProductImage, error)

	// ClearPrimaryImage unsets the primary flag on every image of the product.
	// Paired with SetPrimaryImage inside one transaction so at most one image
	// per product ever carries the flag.
	ClearPrimaryImage(ctx context.Context, productID uuid.UUID) error

	// SetPrimaryImage marks a single image of the product as primary.
	// Returns ErrImageNotFound when the image does not belong to the product.
	SetPrimaryImage(ctx context.Context, productID, imageID uuid.UUID) error

	// SetImageOrder sets the sort position of one product image.
	// Returns ErrImageNotFound when the image does not belong to the product.
	SetImageOrder(ctx context.Context, productID, imageID uuid.UUID, order int) error

	// RemoveImage detaches an image from its product.
	RemoveImage(ctx context.Context, id uuid.UUID) error

	// ReplaceSpecifications swaps the full specification list of a product.
	ReplaceSpecifications(ctx context.Context, productID uuid.UUID, specs []*entity.Specification) error
}

// StoreServiceRepository defines store service persistence operations.
type StoreServiceRepository interface {
	CreateService(ctx context.Context, service *entity.StoreService) error
	FindServiceByID(ctx context.Context, id uuid.UUID) (*entity.StoreService, error)
	FindServiceBySlug(ctx context.Context, slug string) (*entity.StoreService, error)
	ListServices(ctx context.Context, activeOnly bool) ([]*entity.StoreService, error)
	UpdateService(ctx context.Context, service *entity.StoreService) error
	DeleteService(ctx context.Context, id uuid.UUID) error

	// AddServiceImage attaches an image to a service.
	AddServiceImage(ctx context.Context, image *entity.StoreServiceImage) error

	// ClearPrimaryServiceImage unsets the primary flag on every image of the service.
	ClearPrimaryServiceImage(ctx context.Context, serviceID uuid.UUID) error

	// SetPrimaryServiceImage marks a single image of the service as primary.
	SetPrimaryServiceImage(ctx context.Context, serviceID, imageID uuid.UUID) error

	// RemoveServiceImage detaches an image from its service.
	RemoveServiceImage(ctx context.Context, id uuid.UUID) error
}
