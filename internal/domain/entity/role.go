// Package entity contains the core business objects of the project.
package entity

// Role represents the effective role of an account in the system.
// It is always derived from the two stored privilege booleans, never persisted
// on its own, so the two can never diverge.
type Role string

const (
	// RoleUser indicates a regular customer account.
	RoleUser Role = "user"
	// RoleStaff indicates a staff member without superuser rights.
	RoleStaff Role = "staff"
	// RoleAdmin indicates a superuser.
	RoleAdmin Role = "admin"
)

// RoleOf derives the effective role from the stored privilege flags.
// Superuser wins over staff.
func RoleOf(isSuperuser, isStaff bool) Role {
	switch {
	case isSuperuser:
		return RoleAdmin
	case isStaff:
		return RoleStaff
	default:
		return RoleUser
	}
}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}

// rank orders roles by privilege for downgrade checks.
func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 2
	case RoleStaff:
		return 1
	default:
		return 0
	}
}

// IsDowngradeFrom reports whether switching from current to r would reduce privileges.
func (r Role) IsDowngradeFrom(current Role) bool {
	return r.rank() < current.rank()
}

// Flags returns the privilege booleans that persist this role.
func (r Role) Flags() (isSuperuser, isStaff bool) {
	switch r {
	case RoleAdmin:
		return true, true
	case RoleStaff:
		return false, true
	default:
		return false, false
	}
}
