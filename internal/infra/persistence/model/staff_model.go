package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StaffProfileModel mirrors the 'staff_profiles' table. One row per user.
type StaffProfileModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;unique;not null"`
	StaffType   string    `gorm:"type:varchar(20);not null"`
	Designation string    `gorm:"type:varchar(100);not null"`
	JoiningDate *time.Time

	PhoneNumber           string `gorm:"type:varchar(30)"`
	EmergencyContact      string `gorm:"type:varchar(150)"`
	CitizenshipNumber     string `gorm:"type:varchar(50)"`
	PANNumber             string `gorm:"type:varchar(50)"`
	InsurancePolicyNumber string `gorm:"type:varchar(50)"`

	BaseSalary decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	CitizenshipFront string `gorm:"type:varchar(500)"`
	CitizenshipBack  string `gorm:"type:varchar(500)"`
	InsuranceDoc     string `gorm:"type:varchar(500)"`
	ContractDoc      string `gorm:"type:varchar(500)"`
	ProfilePicture   string `gorm:"type:varchar(500)"`

	IsActive  bool `gorm:"not null;default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User *UserModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (StaffProfileModel) TableName() string {
	return "staff_profiles"
}

// AttendanceModel mirrors the 'attendances' table.
// (staff_id, date) carries a unique index.
type AttendanceModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	StaffID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_staff_date"`
	Date     time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_staff_date"`
	ClockIn  string    `gorm:"type:varchar(5)"`
	ClockOut string    `gorm:"type:varchar(5)"`
	Status   string    `gorm:"type:varchar(20);not null"`
	Remark   string    `gorm:"type:varchar(255)"`
}

// TableName explicitly sets the table name for GORM.
func (AttendanceModel) TableName() string {
	return "attendances"
}

// PayrollModel mirrors the 'payrolls' table.
// (staff_id, month, year) carries a unique index.
type PayrollModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StaffID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_staff_period"`
	Month            int             `gorm:"not null;uniqueIndex:uq_payroll_staff_period"`
	Year             int             `gorm:"not null;uniqueIndex:uq_payroll_staff_period"`
	CalculatedSalary decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Bonus            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Deductions       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalPaid        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentDate      time.Time
	PaymentMethod    string `gorm:"type:varchar(50)"`
	IsPaid           bool   `gorm:"not null;default:false"`
}

// TableName explicitly sets the table name for GORM.
func (PayrollModel) TableName() string {
	return "payrolls"
}
