package impl

import (
	"context"
	"log/slog"

	deliverycontext "forge/internal/delivery/context"
	"forge/internal/domain/entity"
	domainerrors "forge/internal/domain/errors"
	"forge/internal/domain/policy"
	"forge/internal/domain/repository"
	"forge/internal/domain/service"
	"forge/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminAccountService implements the AdminAccountUsecase interface.
type adminAccountService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	clock     service.Clock
	logger    *slog.Logger
}

// AdminAccountServiceParams holds dependencies for adminAccountService, injected by Fx.
type AdminAccountServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Clock     service.Clock
	Logger    *slog.Logger
}

// NewAdminAccountService is the constructor for adminAccountService.
func NewAdminAccountService(params AdminAccountServiceParams) usecase.AdminAccountUsecase {
	return &adminAccountService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		clock:     params.Clock,
		logger:    params.Logger,
	}
}

func (srv *adminAccountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUsers retrieves accounts matching the filter.
func (srv *adminAccountService) ListUsers(ctx context.Context, actor policy.Actor, filter repository.UserFilter) ([]*entity.User, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}

	users, err := srv.userRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// GetUser retrieves a single account.
func (srv *adminAccountService) GetUser(ctx context.Context, actor policy.Actor, userID uuid.UUID) (*entity.User, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// ChangeRole sets a user's role by rewriting their privilege flags. The
// self-downgrade guard is evaluated before any storage access.
func (srv *adminAccountService) ChangeRole(ctx context.Context, actor policy.Actor, userID uuid.UUID, role entity.Role) (*entity.User, error) {
	srv.log(ctx).Info("Changing user role", "actorID", actor.ID, "userID", userID, "role", role)

	if err := policy.GuardRoleChange(actor, userID, role); err != nil {
		return nil, err
	}

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		found, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}

		found.ApplyRole(role)
		if err := userRepo.SetRoleFlags(ctx, found.ID, found.IsSuperuser, found.IsStaff); err != nil {
			return errors.Wrap(err, "failed to persist role flags")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUser edits another account's contact fields on their behalf.
func (srv *adminAccountService) UpdateUser(ctx context.Context, actor policy.Actor, userID uuid.UUID, input *usecase.AdminUpdateUserInput) (*entity.User, error) {
	srv.log(ctx).Info("Updating account", "actorID", actor.ID, "userID", userID)

	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		found, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}

		if input.Email != nil {
			found.Email = *input.Email
		}
		if input.FirstName != nil {
			found.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			found.LastName = *input.LastName
		}
		if input.PhoneNumber != nil {
			found.PhoneNumber = *input.PhoneNumber
		}

		if err := userRepo.Update(ctx, found); err != nil {
			if errors.Is(err, repository.ErrDuplicateUser) {
				return domainerrors.ErrUserAlreadyExists
			}

			return errors.Wrap(err, "failed to update user")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// SetActive activates or deactivates a single account.
func (srv *adminAccountService) SetActive(ctx context.Context, actor policy.Actor, userID uuid.UUID, active bool) error {
	srv.log(ctx).Info("Setting account active flag", "actorID", actor.ID, "userID", userID, "active", active)

	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}
	if !active && actor.ID == userID {
		return domainerrors.ErrSelfBulkAction.WrapMessage("cannot deactivate own account")
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		affected, err := repoFactory.UserRepo().SetActive(ctx, []uuid.UUID{userID}, active)
		if err != nil {
			return errors.Wrap(err, "failed to set active flag")
		}
		if affected == 0 {
			return domainerrors.ErrUserNotFound
		}

		return nil
	})
}

// BulkAction applies an action to a set of accounts in one transaction.
// Delete requests are honored as deactivation; nothing is hard-deleted here.
func (srv *adminAccountService) BulkAction(ctx context.Context, actor policy.Actor, input *usecase.BulkActionInput) (int64, error) {
	srv.log(ctx).Info("Bulk account action", "actorID", actor.ID, "action", input.Action, "count", len(input.UserIDs))

	if !input.Action.IsValid() {
		return 0, domainerrors.ErrValidationFailed.WithDetails("unknown bulk action: " + string(input.Action))
	}
	if len(input.UserIDs) == 0 {
		return 0, domainerrors.ErrValidationFailed.WithDetails("empty user id list")
	}
	if err := policy.GuardBulkAction(actor, input.UserIDs); err != nil {
		return 0, err
	}

	active := input.Action == usecase.BulkActivate

	var affected int64
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		n, err := repoFactory.UserRepo().SetActive(ctx, input.UserIDs, active)
		if err != nil {
			return errors.Wrap(err, "failed to apply bulk action")
		}
		affected = n

		return nil
	})
	if err != nil {
		return 0, err
	}

	return affected, nil
}

// UserStats reports aggregate account counts for the admin dashboard.
func (srv *adminAccountService) UserStats(ctx context.Context, actor policy.Actor) (*usecase.UserStatsOutput, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}

	since := srv.clock.Now().AddDate(0, 0, -30)
	stats, err := srv.userRepo.Stats(ctx, since)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	return &usecase.UserStatsOutput{
		TotalUsers:          stats.Total,
		ActiveUsers:         stats.Active,
		StaffUsers:          stats.Staff,
		AdminUsers:          stats.Admins,
		RecentRegistrations: stats.JoinedSince,
	}, nil
}
