package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationRequestModel mirrors the 'quotation_requests' table. Requests from
// guests keep user_id null and carry the guest contact columns instead.
type QuotationRequestModel struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	UserID     *uuid.UUID `gorm:"type:uuid;index"`
	GuestName  string     `gorm:"type:varchar(150)"`
	GuestEmail string     `gorm:"type:varchar(255)"`
	GuestPhone string     `gorm:"type:varchar(30)"`

	ProductID *uuid.UUID `gorm:"type:uuid;index"`
	ServiceID *uuid.UUID `gorm:"type:uuid;index"`
	QuoteType string     `gorm:"type:varchar(20);not null"`

	ProjectTitle           string `gorm:"type:varchar(200);not null"`
	ServiceType            string `gorm:"type:varchar(100)"`
	Description            string `gorm:"type:text"`
	Quantity               int    `gorm:"not null;default:1"`
	Urgency                string `gorm:"type:varchar(20);not null"`
	CustomDimensions       string `gorm:"type:text"`
	PreferredMaterials     string `gorm:"type:text"`
	AdditionalRequirements string `gorm:"type:text"`

	BudgetRangeMin *decimal.Decimal `gorm:"type:numeric(12,2)"`
	BudgetRangeMax *decimal.Decimal `gorm:"type:numeric(12,2)"`
	RequiredBy     *time.Time

	Status string `gorm:"type:varchar(20);not null;index"`

	QuotedPrice        *decimal.Decimal `gorm:"type:numeric(12,2)"`
	FinalAdjustedPrice *decimal.Decimal `gorm:"type:numeric(12,2)"`
	QuotedDeliveryTime string           `gorm:"type:varchar(100)"`
	AdminNotes         string           `gorm:"type:text"`
	QuoteValidUntil    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	QuotedAt  *time.Time

	Attachments []*QuotationAttachmentModel `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (QuotationRequestModel) TableName() string {
	return "quotation_requests"
}

// QuotationAttachmentModel mirrors the 'quotation_attachments' table.
type QuotationAttachmentModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	QuotationID uuid.UUID `gorm:"type:uuid;not null;index"`
	File        string    `gorm:"type:varchar(500);not null"`
	FileName    string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	UploadedAt  time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (QuotationAttachmentModel) TableName() string {
	return "quotation_attachments"
}

// ServiceBookingModel mirrors the 'service_bookings' table.
type ServiceBookingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`

	ServiceType string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`

	PreferredDate time.Time `gorm:"not null"`
	PreferredTime string    `gorm:"type:varchar(5);not null"`
	ConfirmedDate *time.Time
	ConfirmedTime string `gorm:"type:varchar(5)"`

	ServiceAddressID *uuid.UUID `gorm:"type:uuid"`

	Status     string `gorm:"type:varchar(20);not null;index"`
	AdminNotes string `gorm:"type:text"`

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// TableName explicitly sets the table name for GORM.
func (ServiceBookingModel) TableName() string {
	return "service_bookings"
}
