// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core account entity. Privileges are stored as the two booleans
// IsSuperuser and IsStaff; the effective Role is always derived via Role().
type User struct {
	ID             uuid.UUID  // The unique identifier for the account.
	Username       string     // Unique login name.
	Email          string     // Unique contact email.
	FirstName      string     // Optional given name.
	LastName       string     // Optional family name.
	PhoneNumber    string     // Optional contact phone number.
	ProfilePicture string     // Storage reference to the profile image, empty for the default avatar.
	PasswordHash   string     // Bcrypt hash of the password. Never serialized outward.
	IsSuperuser    bool       // Grants the admin role.
	IsStaff        bool       // Grants the staff role unless IsSuperuser is set.
	IsActive       bool       // Soft-delete flag; deactivated accounts cannot log in.
	LastLogin      *time.Time // Set on each successful login.
	DateJoined     time.Time  // Timestamp of account creation.
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Addresses []*Address // Owned addresses, cascade-deleted with the account.
}

// Role derives the effective role from the stored privilege flags.
func (u *User) Role() Role {
	return RoleOf(u.IsSuperuser, u.IsStaff)
}

// FullName joins the name parts, falling back to the username.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Username
	}
}

// ApplyRole writes the privilege booleans that persist the given role.
func (u *User) ApplyRole(role Role) {
	u.IsSuperuser, u.IsStaff = role.Flags()
}
