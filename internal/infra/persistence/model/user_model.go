// Package model contains the GORM persistence models mirroring the database
// tables. Models stay in the infra layer; repositories map them to and from
// the pure domain entities.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username       string    `gorm:"type:varchar(150);unique;not null"`
	Email          string    `gorm:"type:varchar(255);unique;not null"`
	FirstName      string    `gorm:"type:varchar(100)"`
	LastName       string    `gorm:"type:varchar(100)"`
	PhoneNumber    string    `gorm:"type:varchar(30)"`
	ProfilePicture string    `gorm:"type:varchar(500)"`
	PasswordHash   string    `gorm:"type:varchar(255);not null"`
	IsSuperuser    bool      `gorm:"not null;default:false"`
	IsStaff        bool      `gorm:"not null;default:false"`
	IsActive       bool      `gorm:"not null;default:true;index"`
	LastLogin      *time.Time
	DateJoined     time.Time `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Addresses []*AddressModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// AddressModel mirrors the 'addresses' table. UserID references users.id.
type AddressModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index"`
	StreetAddress     string    `gorm:"type:varchar(255);not null"`
	ApartmentAddress  string    `gorm:"type:varchar(255)"`
	City              string    `gorm:"type:varchar(100);not null"`
	State             string    `gorm:"type:varchar(100)"`
	Country           string    `gorm:"type:varchar(100);not null"`
	ZipCode           string    `gorm:"type:varchar(20)"`
	IsDefaultShipping bool      `gorm:"not null;default:false"`
	IsDefaultBilling  bool      `gorm:"not null;default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}
