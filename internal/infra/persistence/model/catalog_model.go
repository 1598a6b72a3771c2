package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);unique;not null"`
	Slug        string    `gorm:"type:varchar(120);unique;not null"`
	Description string    `gorm:"type:text"`
	Image       string    `gorm:"type:varchar(500)"`
	IsActive    bool      `gorm:"not null;default:true;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// MaterialModel mirrors the 'materials' table.
type MaterialModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);unique;not null"`
	Description string    `gorm:"type:text"`
	Image       string    `gorm:"type:varchar(500)"`
	IsActive    bool      `gorm:"not null;default:true;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (MaterialModel) TableName() string {
	return "materials"
}

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name           string          `gorm:"type:varchar(200);not null"`
	Slug           string          `gorm:"type:varchar(220);unique;not null"`
	CategoryID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description    string          `gorm:"type:text"`
	ProductType    string          `gorm:"type:varchar(20);not null"`
	BasePrice      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IsPriceVisible bool            `gorm:"not null;default:true"`

	Length *decimal.Decimal `gorm:"type:numeric(8,2)"`
	Width  *decimal.Decimal `gorm:"type:numeric(8,2)"`
	Height *decimal.Decimal `gorm:"type:numeric(8,2)"`
	Weight *decimal.Decimal `gorm:"type:numeric(8,2)"`

	IsCustomizable    bool   `gorm:"not null;default:false"`
	CustomizationNote string `gorm:"type:text"`

	StockQuantity     int `gorm:"not null;default:0"`
	LowStockThreshold int `gorm:"not null;default:0"`

	IsActive   bool `gorm:"not null;default:true;index"`
	IsFeatured bool `gorm:"not null;default:false;index"`

	MetaTitle       string `gorm:"type:varchar(200)"`
	MetaDescription string `gorm:"type:text"`
	MetaKeywords    string `gorm:"type:varchar(500)"`
	FocusKeyword    string `gorm:"type:varchar(100)"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Category       *CategoryModel        `gorm:"foreignKey:CategoryID"`
	Materials      []*MaterialModel      `gorm:"many2many:product_materials"`
	Images         []*ProductImageModel  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Specifications []*SpecificationModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Reviews        []*ReviewModel        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// ProductImageModel mirrors the 'product_images' table.
type ProductImageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Image     string    `gorm:"type:varchar(500);not null"`
	AltText   string    `gorm:"type:varchar(200)"`
	IsPrimary bool      `gorm:"not null;default:false"`
	Order     int       `gorm:"column:display_order;not null;default:0"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductImageModel) TableName() string {
	return "product_images"
}

// SpecificationModel mirrors the 'specifications' table.
// (product_id, name) carries a unique index.
type SpecificationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_spec_product_name"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_spec_product_name"`
	Value     string    `gorm:"type:varchar(500);not null"`
	Order     int       `gorm:"column:display_order;not null;default:0"`
}

// TableName explicitly sets the table name for GORM.
func (SpecificationModel) TableName() string {
	return "specifications"
}

// ReviewModel mirrors the 'reviews' table.
// (product_id, user_id) carries a unique index.
type ReviewModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_review_product_user"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_review_product_user"`
	Rating             int       `gorm:"not null"`
	Title              string    `gorm:"type:varchar(200)"`
	Comment            string    `gorm:"type:text"`
	IsVerifiedPurchase bool      `gorm:"not null;default:false"`
	IsApproved         bool      `gorm:"not null;default:false;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	User *UserModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}

// StoreServiceModel mirrors the 'store_services' table.
type StoreServiceModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Slug        string    `gorm:"type:varchar(220);unique;not null"`
	Category    string    `gorm:"type:varchar(100)"`
	Description string    `gorm:"type:text"`
	IconName    string    `gorm:"type:varchar(100)"`
	Image       string    `gorm:"type:varchar(500)"`
	IsActive    bool      `gorm:"not null;default:true;index"`
	Order       int       `gorm:"column:display_order;not null;default:0"`

	MetaTitle       string `gorm:"type:varchar(200)"`
	MetaDescription string `gorm:"type:text"`
	MetaKeywords    string `gorm:"type:varchar(500)"`
	FocusKeyword    string `gorm:"type:varchar(100)"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Images []*StoreServiceImageModel `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (StoreServiceModel) TableName() string {
	return "store_services"
}

// StoreServiceImageModel mirrors the 'store_service_images' table.
type StoreServiceImageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null;index"`
	Image     string    `gorm:"type:varchar(500);not null"`
	AltText   string    `gorm:"type:varchar(200)"`
	IsPrimary bool      `gorm:"not null;default:false"`
	Order     int       `gorm:"column:display_order;not null;default:0"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (StoreServiceImageModel) TableName() string {
	return "store_service_images"
}
