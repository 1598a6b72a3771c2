package impl

import (
	"context"
	"testing"
	"time"

	"forge/internal/domain/entity"
	domainerrors "forge/internal/domain/errors"
	"forge/internal/domain/policy"
	"forge/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminHarness struct {
	svc     usecase.AdminAccountUsecase
	factory *fakeRepoFactory
	tx      *fakeTxManager
}

func newAdminHarness() *adminHarness {
	factory := newFakeFactory()
	tx := &fakeTxManager{factory: factory}

	svc := NewAdminAccountService(AdminAccountServiceParams{
		TxManager: tx,
		UserRepo:  factory.users,
		Clock:     fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		Logger:    newDiscardLogger(),
	})

	return &adminHarness{svc: svc, factory: factory, tx: tx}
}

func (h *adminHarness) seedAccount(actor policy.Actor) *entity.User {
	user := &entity.User{
		ID:          actor.ID,
		Username:    actor.ID.String()[:8],
		Email:       actor.ID.String()[:8] + "@example.com",
		IsSuperuser: actor.IsSuperuser,
		IsStaff:     actor.IsStaff,
		IsActive:    true,
	}
	h.factory.users.users[user.ID] = user

	return user
}

func TestAdminAccountService_ChangeRole(t *testing.T) {
	t.Parallel()

	h := newAdminHarness()
	ctx := context.Background()
	admin := adminActor()
	h.seedAccount(admin)
	target := h.seedAccount(userActor())

	promoted, err := h.svc.ChangeRole(ctx, admin, target.ID, entity.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, promoted.Role())
	assert.True(t, target.IsStaff)
	assert.False(t, target.IsSuperuser)
}

func TestAdminAccountService_ChangeRole_SelfDowngradeBlocked(t *testing.T) {
	t.Parallel()

	h := newAdminHarness()
	ctx := context.Background()
	admin := adminActor()
	account := h.seedAccount(admin)

	for _, next := range []entity.Role{entity.RoleUser, entity.RoleStaff} {
		_, err := h.svc.ChangeRole(ctx, admin, admin.ID, next)
		assert.ErrorIs(t, err, domainerrors.ErrSelfRoleDowngrade)
	}

	// The guard ran before any storage access.
	assert.Zero(t, h.tx.executed)
	assert.True(t, account.IsSuperuser)

	// Restating the current role is not a downgrade.
	_, err := h.svc.ChangeRole(ctx, admin, admin.ID, entity.RoleAdmin)
	assert.NoError(t, err)
}

func TestAdminAccountService_ChangeRole_RequiresAdmin(t *testing.T) {
	t.Parallel()

	h := newAdminHarness()
	target := h.seedAccount(userActor())

	_, err := h.svc.ChangeRole(context.Background(), staffActor(), target.ID, entity.RoleStaff)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestAdminAccountService_SetActive(t *testing.T) {
	t.Parallel()

	h := newAdminHarness()
	ctx := context.Background()
	admin := adminActor()
	h.seedAccount(admin)
	target := h.seedAccount(userActor())

	require.NoError(t, h.svc.SetActive(ctx, admin, target.ID, false))
	assert.False(t, target.IsActive)

	err := h.svc.SetActive(ctx, admin, uuid.New(), false)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	// Admins cannot deactivate themselves.
	err = h.svc.SetActive(ctx, admin, admin.ID, false)
	assert.ErrorIs(t, err, domainerrors.ErrSelfBulkAction)

	// Re-activating themselves is harmless and allowed.
	assert.NoError(t, h.svc.SetActive(ctx, admin, admin.ID, true))
}

func TestAdminAccountService_BulkAction(t *testing.T) {
	t.Parallel()

	h := newAdminHarness()
	ctx := context.Background()
	admin := adminActor()
	h.seedAccount(admin)
	first := h.seedAccount(userActor())
	second := h.seedAccount(userActor())

	affected, err := h.svc.BulkAction(ctx, admin, &usecase.BulkActionInput{
		Action:  usecase.BulkDeactivate,
		UserIDs: []uuid.UUID{first.ID, second.ID},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)
	assert.False(t, first.IsActive)
	assert.False(t, second.IsActive)

	// Delete is honored as deactivation; nothing is removed.
	affected, err = h.svc.BulkAction(ctx, admin, &usecase.BulkActionInput{
		Action:  usecase.BulkDelete,
		UserIDs: []uuid.UUID{first.ID},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
	assert.Len(t, h.factory.users.users, 3)
}

func TestAdminAccountService_BulkActionIncludingSelf(t *testing.T) {
	t.Parallel()

	h := newAdminHarness()
	ctx := context.Background()
	admin := adminActor()
	h.seedAccount(admin)
	other := h.seedAccount(userActor())

	_, err := h.svc.BulkAction(ctx, admin, &usecase.BulkActionInput{
		Action:  usecase.BulkDeactivate,
		UserIDs: []uuid.UUID{other.ID, admin.ID},
	})
	assert.ErrorIs(t, err, domainerrors.ErrSelfBulkAction)

	// The whole batch was refused before the transaction ran.
	assert.Zero(t, h.tx.executed)
	assert.True(t, other.IsActive)
}

func TestAdminAccountService_BulkActionValidation(t *testing.T) {
	t.Parallel()

	h := newAdminHarness()
	ctx := context.Background()
	admin := adminActor()
	h.seedAccount(admin)

	_, err := h.svc.BulkAction(ctx, admin, &usecase.BulkActionInput{
		Action:  usecase.BulkActionKind("purge"),
		UserIDs: []uuid.UUID{uuid.New()},
	})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())

	_, err = h.svc.BulkAction(ctx, admin, &usecase.BulkActionInput{Action: usecase.BulkActivate})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}

func TestAdminAccountService_UpdateUser(t *testing.T) {
	t.Parallel()

	h := newAdminHarness()
	ctx := context.Background()
	admin := adminActor()
	h.seedAccount(admin)
	target := h.seedAccount(userActor())

	phone := "+977-1-5555555"
	updated, err := h.svc.UpdateUser(ctx, admin, target.ID, &usecase.AdminUpdateUserInput{PhoneNumber: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.PhoneNumber)
	assert.Equal(t, target.Email, updated.Email)

	_, err = h.svc.UpdateUser(ctx, staffActor(), target.ID, &usecase.AdminUpdateUserInput{})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = h.svc.UpdateUser(ctx, admin, uuid.New(), &usecase.AdminUpdateUserInput{})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAdminAccountService_UserStats(t *testing.T) {
	t.Parallel()

	h := newAdminHarness()
	ctx := context.Background()
	admin := adminActor()
	h.seedAccount(admin)
	h.seedAccount(staffActor())
	dormant := h.seedAccount(userActor())
	dormant.IsActive = false

	// The fixed clock reads 2025-06-01; only this account is a recent join.
	fresh := h.seedAccount(userActor())
	fresh.DateJoined = time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

	_, err := h.svc.UserStats(ctx, staffActor())
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	stats, err := h.svc.UserStats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.ActiveUsers)
	assert.Equal(t, int64(1), stats.StaffUsers)
	assert.Equal(t, int64(1), stats.AdminUsers)
	assert.Equal(t, int64(1), stats.RecentRegistrations)
}
