// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AddressFlag identifies one of the two independent default-address scopes a
// user has. Within one user and one flag, at most one address carries it.
type AddressFlag string

const (
	// FlagDefaultShipping marks the user's default shipping address.
	FlagDefaultShipping AddressFlag = "is_default_shipping"
	// FlagDefaultBilling marks the user's default billing address.
	FlagDefaultBilling AddressFlag = "is_default_billing"
)

// IsValid checks if the AddressFlag is a valid value.
func (f AddressFlag) IsValid() bool {
	switch f {
	case FlagDefaultShipping, FlagDefaultBilling:
		return true
	default:
		return false
	}
}

// String returns the string representation of the AddressFlag.
func (f AddressFlag) String() string {
	return string(f)
}

// Address is a shipping or billing address owned by exactly one user.
type Address struct {
	ID                uuid.UUID // The unique identifier for the address.
	UserID            uuid.UUID // The owning account.
	StreetAddress     string
	ApartmentAddress  string
	City              string
	State             string
	Country           string
	ZipCode           string
	IsDefaultShipping bool // At most one per user. Maintained transactionally.
	IsDefaultBilling  bool // At most one per user. Maintained transactionally.
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasFlag reports whether the given default flag is set on this address.
func (a *Address) HasFlag(flag AddressFlag) bool {
	switch flag {
	case FlagDefaultShipping:
		return a.IsDefaultShipping
	case FlagDefaultBilling:
		return a.IsDefaultBilling
	default:
		return false
	}
}

// SetFlag sets or clears the given default flag on this address.
func (a *Address) SetFlag(flag AddressFlag, value bool) {
	switch flag {
	case FlagDefaultShipping:
		a.IsDefaultShipping = value
	case FlagDefaultBilling:
		a.IsDefaultBilling = value
	}
}
