// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"forge/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateUser is returned when a username or email is already taken.
var ErrDuplicateUser = errors.New("username or email already registered")

// UserFilter narrows admin user listings.
type UserFilter struct {
	Role     entity.Role // Zero value means all roles.
	IsActive *bool
	Search   string // Matches username, email and names.
}

// UserStats aggregates account counts for the admin dashboard.
type UserStats struct {
	Total       int64
	Active      int64
	Staff       int64
	Admins      int64
	JoinedSince int64
}

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername retrieves a single user by their username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// List retrieves users matching the filter, newest first.
	List(ctx context.Context, filter UserFilter) ([]*entity.User, error)

	// Create persists a new user entity to the storage.
	// Returns ErrDuplicateUser when the username or email is taken.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// SetActive flips the active flag for every listed account and returns the
	// number of rows touched. Used by the bulk activate/deactivate actions.
	SetActive(ctx context.Context, ids []uuid.UUID, active bool) (int64, error)

	// SetRoleFlags persists the privilege booleans that encode a role.
	SetRoleFlags(ctx context.Context, id uuid.UUID, isSuperuser, isStaff bool) error

	// RecordLogin stamps the last login time.
	RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	// Stats counts accounts overall, by state and by role. JoinedSince counts
	// accounts whose date_joined is at or after the given time.
	Stats(ctx context.Context, joinedSince time.Time) (*UserStats, error)
}
