package usecase

import (
	"context"

	"forge/internal/domain/entity"
	"forge/internal/domain/policy"
	"forge/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogUsecase defines the interface for catalog browsing and management.
// Read operations are public; mutations require a staff or admin actor.
type CatalogUsecase interface {
	// --- Categories ---

	ListCategories(ctx context.Context, activeOnly bool) ([]*entity.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error)
	CreateCategory(ctx context.Context, actor policy.Actor, input *CategoryInput) (*entity.Category, error)
	UpdateCategory(ctx context.Context, actor policy.Actor, id uuid.UUID, input *CategoryInput) (*entity.Category, error)
	DeleteCategory(ctx context.Context, actor policy.Actor, id uuid.UUID) error

	// --- Materials ---

	ListMaterials(ctx context.Context, activeOnly bool) ([]*entity.Material, error)
	CreateMaterial(ctx context.Context, actor policy.Actor, input *MaterialInput) (*entity.Material, error)
	UpdateMaterial(ctx context.Context, actor policy.Actor, id uuid.UUID, input *MaterialInput) (*entity.Material, error)
	DeleteMaterial(ctx context.Context, actor policy.Actor, id uuid.UUID) error

	// --- Products ---

	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	CreateProduct(ctx context.Context, actor policy.Actor, input *ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, actor policy.Actor, id uuid.UUID, input *ProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, actor policy.Actor, id uuid.UUID) error

	// AddProductImage attaches an uploaded image to a product. When the image
	// is flagged primary the flag is moved atomically from any image holding it.
	AddProductImage(ctx context.Context, actor policy.Actor, productID uuid.UUID, input *ImageInput) (*entity.ProductImage, error)

	// SetPrimaryProductImage moves the primary flag to the given image. At
	// most one image of the product holds the flag afterwards.
	SetPrimaryProductImage(ctx context.Context, actor policy.Actor, productID, imageID uuid.UUID) error

	RemoveProductImage(ctx context.Context, actor policy.Actor, productID, imageID uuid.UUID) error

	// ReorderProductImages rewrites gallery positions to match the given id
	// sequence. Every id must belong to the product.
	ReorderProductImages(ctx context.Context, actor policy.Actor, productID uuid.UUID, imageIDs []uuid.UUID) error

	// ReplaceSpecifications swaps the product's full specification table.
	ReplaceSpecifications(ctx context.Context, actor policy.Actor, productID uuid.UUID, inputs []*SpecificationInput) error

	// --- Store services ---

	ListServices(ctx context.Context, activeOnly bool) ([]*entity.StoreService, error)
	GetServiceBySlug(ctx context.Context, slug string) (*entity.StoreService, error)
	CreateService(ctx context.Context, actor policy.Actor, input *StoreServiceInput) (*entity.StoreService, error)
	UpdateService(ctx context.Context, actor policy.Actor, id uuid.UUID, input *StoreServiceInput) (*entity.StoreService, error)
	DeleteService(ctx context.Context, actor policy.Actor, id uuid.UUID) error
	AddServiceImage(ctx context.Context, actor policy.Actor, serviceID uuid.UUID, input *ImageInput) (*entity.StoreServiceImage, error)
	SetPrimaryServiceImage(ctx context.Context, actor policy.Actor, serviceID, imageID uuid.UUID) error

	// --- Reviews ---

	// ListProductReviews retrieves a product's reviews. Non-staff callers see
	// approved reviews only.
	ListProductReviews(ctx context.Context, actor policy.Actor, productID uuid.UUID) ([]*entity.Review, error)

	// CreateReview files a review on a product. A user may review each
	// product once; a second attempt fails with a conflict.
	CreateReview(ctx context.Context, actor policy.Actor, productID uuid.UUID, input *ReviewInput) (*entity.Review, error)

	// UpdateReview lets the author revise their review. An edited review
	// returns to the unapproved pool.
	UpdateReview(ctx context.Context, actor policy.Actor, reviewID uuid.UUID, input *ReviewInput) (*entity.Review, error)

	// ApproveReview publishes a pending review.
	ApproveReview(ctx context.Context, actor policy.Actor, reviewID uuid.UUID) error

	// DeleteReview removes a review. Owners may delete their own; staff any.
	DeleteReview(ctx context.Context, actor policy.Actor, reviewID uuid.UUID) error
}

// --- Input DTOs ---

// CategoryInput defines the data for creating or updating a category.
type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"` // Derived from Name when empty.
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// MaterialInput defines the data for creating or updating a material.
type MaterialInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// SEOInput carries optional SEO metadata for public pages.
type SEOInput struct {
	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
	MetaKeywords    string `json:"meta_keywords,omitempty"`
	FocusKeyword    string `json:"focus_keyword,omitempty"`
}

// ProductInput defines the data for creating or updating a product.
type ProductInput struct {
	Name           string             `json:"name"`
	Slug           string             `json:"slug,omitempty"` // Derived from Name when empty.
	CategoryID     uuid.UUID          `json:"category_id"`
	Description    string             `json:"description"`
	ProductType    entity.ProductType `json:"product_type"`
	BasePrice      decimal.Decimal    `json:"base_price"`
	IsPriceVisible *bool              `json:"is_price_visible,omitempty"`

	Length *decimal.Decimal `json:"length,omitempty"`
	Width  *decimal.Decimal `json:"width,omitempty"`
	Height *decimal.Decimal `json:"height,omitempty"`
	Weight *decimal.Decimal `json:"weight,omitempty"`

	IsCustomizable    *bool  `json:"is_customizable,omitempty"`
	CustomizationNote string `json:"customization_note,omitempty"`

	StockQuantity     *int `json:"stock_quantity,omitempty"`
	LowStockThreshold *int `json:"low_stock_threshold,omitempty"`

	IsActive   *bool `json:"is_active,omitempty"`
	IsFeatured *bool `json:"is_featured,omitempty"`

	MaterialIDs []uuid.UUID `json:"material_ids,omitempty"`

	SEO *SEOInput `json:"seo,omitempty"`
}

// ImageInput defines the data for attaching a gallery image.
type ImageInput struct {
	Image     string `json:"image"` // Storage reference from a prior upload.
	AltText   string `json:"alt_text,omitempty"`
	IsPrimary bool   `json:"is_primary"`
	Order     int    `json:"order"`
}

// SpecificationInput defines one technical attribute row.
type SpecificationInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Order int    `json:"order"`
}

// StoreServiceInput defines the data for creating or updating a store service.
type StoreServiceInput struct {
	Title       string    `json:"title"`
	Slug        string    `json:"slug,omitempty"` // Derived from Title when empty.
	Category    string    `json:"category"`
	Description string    `json:"description"`
	IconName    string    `json:"icon_name,omitempty"`
	Image       string    `json:"image,omitempty"`
	IsActive    *bool     `json:"is_active,omitempty"`
	Order       int       `json:"order"`
	SEO         *SEOInput `json:"seo,omitempty"`
}

// ReviewInput defines the data for filing a product review.
type ReviewInput struct {
	Rating  int    `json:"rating"` // 1..5.
	Title   string `json:"title"`
	Comment string `json:"comment"`
}
