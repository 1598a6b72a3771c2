package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductType distinguishes how an item in the catalog is sold.
type ProductType string

const (
	// ProductTypeStandard is an off-the-shelf product.
	ProductTypeStandard ProductType = "standard"
	// ProductTypeCustom is fabricated to customer specifications.
	ProductTypeCustom ProductType = "custom"
	// ProductTypeService is a bookable service.
	ProductTypeService ProductType = "service"
)

// IsValid checks if the ProductType is a valid value.
func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeStandard, ProductTypeCustom, ProductTypeService:
		return true
	default:
		return false
	}
}

// Product is an item available for purchase or quotation.
type Product struct {
	ID             uuid.UUID
	Name           string
	Slug           string // Unique URL slug, derived from the name when absent.
	CategoryID     uuid.UUID
	CategoryName   string // Denormalized for listings; loaded with the category.
	Description    string
	ProductType    ProductType
	BasePrice      decimal.Decimal
	IsPriceVisible bool // When false the storefront shows "Request Quote".

	// Optional physical dimensions, in meters and kilograms.
	Length *decimal.Decimal
	Width  *decimal.Decimal
	Height *decimal.Decimal
	Weight *decimal.Decimal

	IsCustomizable    bool
	CustomizationNote string

	StockQuantity     int
	LowStockThreshold int

	IsActive   bool
	IsFeatured bool

	SEO SEOFields

	CreatedAt time.Time
	UpdatedAt time.Time

	Materials      []*Material      // Many-to-many.
	Images         []*ProductImage  // Ordered by (order asc, primary first).
	Specifications []*Specification // Ordered by order.
	Reviews        []*Review        // Approved reviews, loaded on single-product reads.

	// Aggregate of approved reviews, computed on read. Zero when unreviewed.
	AverageRating float64
	ReviewCount   int
}

// SEOFields are shared metadata fields for public pages.
type SEOFields struct {
	MetaTitle       string
	MetaDescription string
	MetaKeywords    string
	FocusKeyword    string
}

// IsInStock reports whether any stock remains.
func (p *Product) IsInStock() bool {
	return p.StockQuantity > 0
}

// IsLowStock reports whether remaining stock is at or below the threshold.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity > 0 && p.StockQuantity <= p.LowStockThreshold
}

// PrimaryImage returns the image flagged primary, or nil when none is set.
func (p *Product) PrimaryImage() *ProductImage {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img
		}
	}

	return nil
}

// ApprovedAverageRating averages the ratings of approved reviews only.
// Unapproved reviews never influence the published average.
func (p *Product) ApprovedAverageRating() (avg float64, count int) {
	sum := 0
	for _, r := range p.Reviews {
		if !r.IsApproved {
			continue
		}
		sum += r.Rating
		count++
	}
	if count == 0 {
		return 0, 0
	}

	return float64(sum) / float64(count), count
}

// ProductImage is one of a product's gallery images.
type ProductImage struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Image     string // Storage reference.
	AltText   string
	IsPrimary bool // At most one per product. Maintained transactionally.
	Order     int
	CreatedAt time.Time
}

// Specification is a named technical attribute of a product.
// (product, name) is unique.
type Specification struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Name      string
	Value     string
	Order     int
}
