package model

import (
	"time"

	"github.com/google/uuid"
)

// PortfolioCategoryModel mirrors the 'portfolio_categories' table.
type PortfolioCategoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);unique;not null"`
	Slug        string    `gorm:"type:varchar(120);unique;not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (PortfolioCategoryModel) TableName() string {
	return "portfolio_categories"
}

// PortfolioProjectModel mirrors the 'portfolio_projects' table. CategoryID is
// nullable so showcased projects survive category deletion.
type PortfolioProjectModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title          string     `gorm:"type:varchar(200);not null"`
	Slug           string     `gorm:"type:varchar(220);unique;not null"`
	CategoryID     *uuid.UUID `gorm:"type:uuid;index"`
	Description    string     `gorm:"type:text"`
	ClientName     string     `gorm:"type:varchar(150)"`
	ClientLogo     string     `gorm:"type:varchar(500)"`
	Location       string     `gorm:"type:varchar(200)"`
	CompletionDate *time.Time
	IsFeatured     bool `gorm:"not null;default:false;index"`
	Order          int  `gorm:"column:display_order;not null;default:0"`

	MetaTitle       string `gorm:"type:varchar(200)"`
	MetaDescription string `gorm:"type:text"`
	MetaKeywords    string `gorm:"type:varchar(500)"`
	FocusKeyword    string `gorm:"type:varchar(100)"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Images []*PortfolioProjectImageModel `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (PortfolioProjectModel) TableName() string {
	return "portfolio_projects"
}

// PortfolioProjectImageModel mirrors the 'portfolio_project_images' table.
type PortfolioProjectImageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	Image     string    `gorm:"type:varchar(500);not null"`
	AltText   string    `gorm:"type:varchar(200)"`
	IsPrimary bool      `gorm:"not null;default:false"`
	Order     int       `gorm:"column:display_order;not null;default:0"`
}

// TableName explicitly sets the table name for GORM.
func (PortfolioProjectImageModel) TableName() string {
	return "portfolio_project_images"
}
