package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectModel mirrors the 'projects' table.
type ProjectModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Title       string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	ClientName  string          `gorm:"type:varchar(150)"`
	StartDate   time.Time       `gorm:"not null"`
	Deadline    time.Time       `gorm:"not null"`
	Status      string          `gorm:"type:varchar(20);not null;index"`
	TotalBudget decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	IsPrivate   bool            `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Assignments []*ProjectAssignmentModel `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ProjectModel) TableName() string {
	return "projects"
}

// ProjectAssignmentModel mirrors the 'project_assignments' table.
// (project_id, staff_id) carries a unique index.
type ProjectAssignmentModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_assignment_project_staff"`
	StaffID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_assignment_project_staff"`
	RoleInProject string    `gorm:"type:varchar(100)"`
	AssignedAt    time.Time `gorm:"not null"`

	AgreedPayment *decimal.Decimal `gorm:"type:numeric(12,2)"`

	PerformanceRating *int
	PerformanceNotes  string `gorm:"type:text"`

	Payments []*ProjectPaymentModel `gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ProjectAssignmentModel) TableName() string {
	return "project_assignments"
}

// ProjectPaymentModel mirrors the 'project_payments' table.
type ProjectPaymentModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AssignmentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentDate  time.Time       `gorm:"not null"`
	Description  string          `gorm:"type:varchar(255)"`
	IsConfirmed  bool            `gorm:"not null;default:false"`
}

// TableName explicitly sets the table name for GORM.
func (ProjectPaymentModel) TableName() string {
	return "project_payments"
}
