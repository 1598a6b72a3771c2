// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "forge/internal/delivery/context"
	"forge/internal/domain/entity"
	domainerrors "forge/internal/domain/errors"
	"forge/internal/domain/repository"
	"forge/internal/domain/service"
	"forge/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	addressRepo  repository.AddressRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	clock        service.Clock
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	AddressRepo  repository.AddressRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Clock        service.Clock
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		addressRepo:  params.AddressRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		clock:        params.Clock,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new customer account.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	srv.log(ctx).Info("Registering user", "email", input.Email)

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	now := srv.clock.Now()
	user := &entity.User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PhoneNumber:  input.PhoneNumber,
		PasswordHash: hash,
		IsActive:     true,
		DateJoined:   now,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateUser) {
				return domainerrors.ErrUserAlreadyExists
			}

			return errors.Wrap(err, "failed to create user")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues a token pair.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	srv.log(ctx).Info("Login attempt", "email", email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	// Deactivated accounts fail the same way as bad passwords so that
	// account state is not probeable from the login endpoint.
	if !user.IsActive || !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	access, refresh, err := srv.tokenService.GenerateTokens(user.ID, user.Role().String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	now := srv.clock.Now()
	if err := srv.userRepo.RecordLogin(ctx, user.ID, now); err != nil {
		// A failed login stamp must not block the login itself.
		srv.log(ctx).Warn("Failed to record login time", "userID", user.ID, "error", err)
	}
	user.LastLogin = &now

	return &usecase.LoginOutput{
		User:   user,
		Tokens: &usecase.TokenPair{AccessToken: access, RefreshToken: refresh},
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair.
func (srv *accountService) RefreshToken(ctx context.Context, refreshToken string) (*usecase.TokenPair, error) {
	claims, err := srv.tokenService.ValidateToken(refreshToken)
	if err != nil || claims.Type != "refresh" {
		return nil, domainerrors.ErrTokenInvalid
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrTokenInvalid
		}

		return nil, errors.Wrap(err, "failed to find user")
	}
	if !user.IsActive {
		return nil, domainerrors.ErrTokenInvalid
	}

	access, refresh, err := srv.tokenService.GenerateTokens(user.ID, user.Role().String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	return &usecase.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// GetProfile retrieves the account of the given user.
func (srv *accountService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// UpdateProfile updates the caller's own profile fields.
func (srv *accountService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	srv.log(ctx).Info("Updating profile", "userID", userID)

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

		if input.FirstName != nil {
			found.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			found.LastName = *input.LastName
		}
		if input.PhoneNumber != nil {
			found.PhoneNumber = *input.PhoneNumber
		}
		if input.ProfilePicture != nil {
			found.ProfilePicture = *input.ProfilePicture
		}

		if err := userRepo.Update(ctx, found); err != nil {
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

// ChangePassword verifies the current password and sets a new one.
func (srv *accountService) ChangePassword(ctx context.Context, userID uuid.UUID, input *usecase.ChangePasswordInput) error {
	srv.log(ctx).Info("Changing password", "userID", userID)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}

		if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
			return domainerrors.ErrPasswordMismatch
		}

		hash, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
		}
		user.PasswordHash = hash

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update user")
		}

		return nil
	})
}

// ListAddresses retrieves the caller's addresses.
func (srv *accountService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	addresses, err := srv.addressRepo.FindAddressesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list addresses")
	}

	return addresses, nil
}

// CreateAddress adds an address to the caller's book. Requested default flags
// are moved atomically from whichever address currently holds them.
func (srv *accountService) CreateAddress(ctx context.Context, userID uuid.UUID, input *usecase.AddressInput) (*entity.Address, error) {
	srv.log(ctx).Info("Creating address", "userID", userID)

	now := srv.clock.Now()
	address := &entity.Address{
		ID:               uuid.New(),
		UserID:           userID,
		StreetAddress:    input.StreetAddress,
		ApartmentAddress: input.ApartmentAddress,
		City:             input.City,
		State:            input.State,
		Country:          input.Country,
		ZipCode:          input.ZipCode,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		if err := addressRepo.CreateAddress(ctx, address); err != nil {
			return errors.Wrap(err, "failed to create address")
		}

		for _, flag := range []entity.AddressFlag{entity.FlagDefaultShipping, entity.FlagDefaultBilling} {
			if !requestedFlag(input, flag) {
				continue
			}
			if err := moveDefaultFlag(ctx, addressRepo, userID, address.ID, flag); err != nil {
				return err
			}
			address.SetFlag(flag, true)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}

// UpdateAddress updates one of the caller's addresses.
func (srv *accountService) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, input *usecase.AddressInput) (*entity.Address, error) {
	srv.log(ctx).Info("Updating address", "userID", userID, "addressID", addressID)

	var address *entity.Address
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		found, err := findOwnedAddress(ctx, addressRepo, userID, addressID)
		if err != nil {
			return err
		}

		found.StreetAddress = input.StreetAddress
		found.ApartmentAddress = input.ApartmentAddress
		found.City = input.City
		found.State = input.State
		found.Country = input.Country
		found.ZipCode = input.ZipCode
		found.UpdatedAt = srv.clock.Now()

		if err := addressRepo.UpdateAddress(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update address")
		}

		for _, flag := range []entity.AddressFlag{entity.FlagDefaultShipping, entity.FlagDefaultBilling} {
			if !requestedFlag(input, flag) || found.HasFlag(flag) {
				continue
			}
			if err := moveDefaultFlag(ctx, addressRepo, userID, found.ID, flag); err != nil {
				return err
			}
			found.SetFlag(flag, true)
		}
		address = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}

// DeleteAddress removes one of the caller's addresses.
func (srv *accountService) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	srv.log(ctx).Info("Deleting address", "userID", userID, "addressID", addressID)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		if _, err := findOwnedAddress(ctx, addressRepo, userID, addressID); err != nil {
			return err
		}

		if err := addressRepo.DeleteAddress(ctx, addressID); err != nil {
			return errors.Wrap(err, "failed to delete address")
		}

		return nil
	})
}

// SetDefaultAddress moves a default flag to the given address.
func (srv *accountService) SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID, flag entity.AddressFlag) error {
	srv.log(ctx).Info("Setting default address", "userID", userID, "addressID", addressID, "flag", flag)

	if !flag.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails("unknown address flag: " + flag.String())
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return moveDefaultFlag(ctx, repoFactory.AddressRepo(), userID, addressID, flag)
	})
}

// moveDefaultFlag clears the flag across the user's addresses and sets it on
// the target, all inside the caller's transaction. The clear-then-set order
// keeps the at-most-one invariant even when the target already held the flag.
func moveDefaultFlag(ctx context.Context, addressRepo repository.AddressRepository, userID, addressID uuid.UUID, flag entity.AddressFlag) error {
	if err := addressRepo.ClearDefaultFlag(ctx, userID, flag); err != nil {
		return errors.Wrap(err, "failed to clear default flag")
	}
	if err := addressRepo.SetDefaultFlag(ctx, userID, addressID, flag); err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return domainerrors.ErrAddressNotFound
		}

		return errors.Wrap(err, "failed to set default flag")
	}

	return nil
}

// findOwnedAddress loads an address and verifies ownership. A foreign address
// reads as not found so address IDs are not probeable across accounts.
func findOwnedAddress(ctx context.Context, addressRepo repository.AddressRepository, userID, addressID uuid.UUID) (*entity.Address, error) {
	address, err := addressRepo.FindAddressByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, domainerrors.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find address")
	}
	if address.UserID != userID {
		return nil, domainerrors.ErrAddressNotFound
	}

	return address, nil
}

func requestedFlag(input *usecase.AddressInput, flag entity.AddressFlag) bool {
	switch flag {
	case entity.FlagDefaultShipping:
		return input.IsDefaultShipping
	case entity.FlagDefaultBilling:
		return input.IsDefaultBilling
	default:
		return false
	}
}
