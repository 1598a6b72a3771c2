package usecase

import (
	"context"

	"forge/internal/domain/entity"
	"forge/internal/domain/policy"
	"forge/internal/domain/repository"

	"github.com/google/uuid"
)

// AdminAccountUsecase defines the administrative account-management surface.
// Every operation takes the acting principal so self-protection rules can be
// evaluated before anything touches storage.
type AdminAccountUsecase interface {
	// ListUsers retrieves accounts matching the filter.
	ListUsers(ctx context.Context, actor policy.Actor, filter repository.UserFilter) ([]*entity.User, error)

	// GetUser retrieves a single account.
	GetUser(ctx context.Context, actor policy.Actor, userID uuid.UUID) (*entity.User, error)

	// ChangeRole sets a user's role by rewriting their privilege flags.
	// Admins cannot reduce their own role.
	ChangeRole(ctx context.Context, actor policy.Actor, userID uuid.UUID, role entity.Role) (*entity.User, error)

	// UpdateUser edits another account's contact fields on their behalf.
	UpdateUser(ctx context.Context, actor policy.Actor, userID uuid.UUID, input *AdminUpdateUserInput) (*entity.User, error)

	// SetActive activates or deactivates a single account.
	SetActive(ctx context.Context, actor policy.Actor, userID uuid.UUID, active bool) error

	// BulkAction applies an action to a set of accounts in one transaction.
	// A batch containing the acting admin is refused outright. Returns the
	// number of accounts affected.
	BulkAction(ctx context.Context, actor policy.Actor, input *BulkActionInput) (int64, error)

	// UserStats reports aggregate account counts for the admin dashboard.
	UserStats(ctx context.Context, actor policy.Actor) (*UserStatsOutput, error)
}

// UserStatsOutput summarizes the account base. RecentRegistrations counts
// accounts joined in the last thirty days.
type UserStatsOutput struct {
	TotalUsers          int64 `json:"total_users"`
	ActiveUsers         int64 `json:"active_users"`
	StaffUsers          int64 `json:"staff_users"`
	AdminUsers          int64 `json:"admin_users"`
	RecentRegistrations int64 `json:"recent_registrations"`
}

// AdminUpdateUserInput defines the account fields an admin may edit for
// another user. Nil fields are left untouched.
type AdminUpdateUserInput struct {
	Email       *string `json:"email,omitempty"`
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// BulkActionKind names the supported bulk account actions.
type BulkActionKind string

const (
	// BulkActivate re-enables the listed accounts.
	BulkActivate BulkActionKind = "activate"
	// BulkDeactivate disables the listed accounts.
	BulkDeactivate BulkActionKind = "deactivate"
	// BulkDelete is an alias of BulkDeactivate. Accounts are never hard-deleted
	// through the bulk surface; clients asking to delete get a deactivation.
	BulkDelete BulkActionKind = "delete"
)

// IsValid checks if the BulkActionKind is a valid value.
func (k BulkActionKind) IsValid() bool {
	switch k {
	case BulkActivate, BulkDeactivate, BulkDelete:
		return true
	default:
		return false
	}
}

// BulkActionInput defines a bulk account action.
type BulkActionInput struct {
	Action  BulkActionKind `json:"action"`
	UserIDs []uuid.UUID    `json:"user_ids"`
}
