// Package policy evaluates access decisions for request actors. It is pure
// domain logic with no transport or persistence dependencies, so every rule
// can be tested in isolation and reused by any delivery layer.
package policy

import (
	"github.com/google/uuid"

	domainerrors "forge/internal/domain/errors"
	"forge/internal/domain/entity"
)

// Actor is the authenticated (or anonymous) principal a request acts as.
type Actor struct {
	ID              uuid.UUID
	IsSuperuser     bool
	IsStaff         bool
	IsAuthenticated bool
}

// Anonymous is the actor for unauthenticated requests.
func Anonymous() Actor {
	return Actor{}
}

// ActorFor builds an Actor from a user entity.
func ActorFor(user *entity.User) Actor {
	return Actor{
		ID:              user.ID,
		IsSuperuser:     user.IsSuperuser,
		IsStaff:         user.IsStaff,
		IsAuthenticated: true,
	}
}

// Role derives the actor's effective role from its privilege flags.
func (a Actor) Role() entity.Role {
	return entity.RoleOf(a.IsSuperuser, a.IsStaff)
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.IsAuthenticated && a.IsSuperuser
}

// IsStaffOrAdmin reports whether the actor holds at least the staff role.
func (a Actor) IsStaffOrAdmin() bool {
	return a.IsAuthenticated && (a.IsSuperuser || a.IsStaff)
}

// RequireAuthenticated fails with Unauthorized for anonymous actors.
func RequireAuthenticated(actor Actor) error {
	if !actor.IsAuthenticated {
		return domainerrors.ErrUnauthorized
	}

	return nil
}

// RequireStaff fails unless the actor is staff or admin.
func RequireStaff(actor Actor) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}
	if !actor.IsStaffOrAdmin() {
		return domainerrors.ErrForbidden
	}

	return nil
}

// RequireAdmin fails unless the actor is an admin.
func RequireAdmin(actor Actor) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return domainerrors.ErrForbidden
	}

	return nil
}

// RequireOwnerOrStaff fails unless the actor owns the resource or is staff.
// Ownership is checked first so owners never depend on role evaluation.
func RequireOwnerOrStaff(actor Actor, ownerID uuid.UUID) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}
	if actor.ID == ownerID || actor.IsStaffOrAdmin() {
		return nil
	}

	return domainerrors.ErrForbidden
}

// RequireOwner fails unless the actor is exactly the resource owner.
func RequireOwner(actor Actor, ownerID uuid.UUID) error {
	if err := RequireAuthenticated(actor); err != nil {
		return err
	}
	if actor.ID != ownerID {
		return domainerrors.ErrForbidden
	}

	return nil
}

// GuardRoleChange rejects an admin reducing their own role. The self check
// runs before any other consideration so an admin can never lock themselves
// out through a role edit, deliberately or by accident.
func GuardRoleChange(actor Actor, targetID uuid.UUID, next entity.Role) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	if !next.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails("unknown role: " + next.String())
	}
	if actor.ID == targetID && next.IsDowngradeFrom(actor.Role()) {
		return domainerrors.ErrSelfRoleDowngrade
	}

	return nil
}

// GuardBulkAction rejects bulk account operations that include the acting
// admin. The whole batch is refused; no partial application.
func GuardBulkAction(actor Actor, targetIDs []uuid.UUID) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	for _, id := range targetIDs {
		if id == actor.ID {
			return domainerrors.ErrSelfBulkAction
		}
	}

	return nil
}
