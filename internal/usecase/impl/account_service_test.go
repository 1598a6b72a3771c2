package impl

import (
	"context"
	"testing"
	"time"

	"forge/internal/domain/entity"
	domainerrors "forge/internal/domain/errors"
	"forge/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountHarness struct {
	svc     usecase.AccountUsecase
	factory *fakeRepoFactory
	tx      *fakeTxManager
	tokens  *fakeTokenService
	clock   fixedClock
}

func newAccountHarness() *accountHarness {
	factory := newFakeFactory()
	tx := &fakeTxManager{factory: factory}
	tokens := newFakeTokenService()
	clock := fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	svc := NewAccountService(AccountServiceParams{
		TxManager:    tx,
		UserRepo:     factory.users,
		AddressRepo:  factory.addresses,
		Hasher:       fakeHasher{},
		TokenService: tokens,
		Clock:        clock,
		Logger:       newDiscardLogger(),
	})

	return &accountHarness{svc: svc, factory: factory, tx: tx, tokens: tokens, clock: clock}
}

func (h *accountHarness) seedUser(email, password string, active bool) *entity.User {
	user := &entity.User{
		ID:           uuid.New(),
		Username:     email,
		Email:        email,
		PasswordHash: "hashed:" + password,
		IsActive:     active,
	}
	h.factory.users.users[user.ID] = user

	return user
}

func (h *accountHarness) seedAddress(userID uuid.UUID, shipping bool) *entity.Address {
	address := &entity.Address{
		ID:                uuid.New(),
		UserID:            userID,
		StreetAddress:     "12 Mill Road",
		City:              "Kathmandu",
		Country:           "Nepal",
		IsDefaultShipping: shipping,
	}
	h.factory.addresses.addresses[address.ID] = address

	return address
}

func TestAccountService_Register(t *testing.T) {
	t.Parallel()

	h := newAccountHarness()
	ctx := context.Background()

	user, err := h.svc.Register(ctx, &usecase.RegisterInput{
		Username: "jdoe",
		Email:    "  JDoe@Example.COM ",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "jdoe@example.com", user.Email)
	assert.Equal(t, "hashed:secret123", user.PasswordHash)
	assert.True(t, user.IsActive)
	assert.Equal(t, entity.RoleUser, user.Role())

	_, err = h.svc.Register(ctx, &usecase.RegisterInput{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "other",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAccountService_Login(t *testing.T) {
	t.Parallel()

	h := newAccountHarness()
	ctx := context.Background()
	h.seedUser("a@example.com", "secret123", true)

	out, err := h.svc.Login(ctx, &usecase.LoginInput{Email: "A@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Tokens.AccessToken)
	assert.NotEmpty(t, out.Tokens.RefreshToken)
	require.NotNil(t, out.User.LastLogin)
	assert.True(t, out.User.LastLogin.Equal(h.clock.now))

	_, err = h.svc.Login(ctx, &usecase.LoginInput{Email: "a@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_LoginDeactivatedAccount(t *testing.T) {
	t.Parallel()

	h := newAccountHarness()
	ctx := context.Background()
	h.seedUser("gone@example.com", "secret123", false)

	// A deactivated account with the right password fails exactly like a
	// wrong password, so account state cannot be probed from the outside.
	_, err := h.svc.Login(ctx, &usecase.LoginInput{Email: "gone@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, unknownErr := h.svc.Login(ctx, &usecase.LoginInput{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_RefreshToken(t *testing.T) {
	t.Parallel()

	h := newAccountHarness()
	ctx := context.Background()
	user := h.seedUser("a@example.com", "secret123", true)

	access, refresh, err := h.tokens.GenerateTokens(user.ID, "user")
	require.NoError(t, err)

	pair, err := h.svc.RefreshToken(ctx, refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	// An access token is not accepted on the refresh path.
	_, err = h.svc.RefreshToken(ctx, access)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)

	user.IsActive = false
	_, err = h.svc.RefreshToken(ctx, refresh)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestAccountService_ChangePassword(t *testing.T) {
	t.Parallel()

	h := newAccountHarness()
	ctx := context.Background()
	user := h.seedUser("a@example.com", "old-secret", true)

	err := h.svc.ChangePassword(ctx, user.ID, &usecase.ChangePasswordInput{
		CurrentPassword: "wrong",
		NewPassword:     "new-secret",
	})
	assert.ErrorIs(t, err, domainerrors.ErrPasswordMismatch)

	err = h.svc.ChangePassword(ctx, user.ID, &usecase.ChangePasswordInput{
		CurrentPassword: "old-secret",
		NewPassword:     "new-secret",
	})
	require.NoError(t, err)

	_, err = h.svc.Login(ctx, &usecase.LoginInput{Email: "a@example.com", Password: "new-secret"})
	assert.NoError(t, err)
}

func TestAccountService_SetDefaultAddress_MovesFlag(t *testing.T) {
	t.Parallel()

	h := newAccountHarness()
	ctx := context.Background()
	user := h.seedUser("a@example.com", "secret123", true)

	first := h.seedAddress(user.ID, true)
	second := h.seedAddress(user.ID, false)
	second.IsDefaultBilling = true
	third := h.seedAddress(user.ID, false)

	err := h.svc.SetDefaultAddress(ctx, user.ID, third.ID, entity.FlagDefaultShipping)
	require.NoError(t, err)

	// The flag moved: exactly one shipping default remains, and the billing
	// default was untouched.
	assert.False(t, first.IsDefaultShipping)
	assert.False(t, second.IsDefaultShipping)
	assert.True(t, third.IsDefaultShipping)
	assert.True(t, second.IsDefaultBilling)
}

func TestAccountService_SetDefaultAddress_UnknownFlag(t *testing.T) {
	t.Parallel()

	h := newAccountHarness()
	user := h.seedUser("a@example.com", "secret123", true)
	address := h.seedAddress(user.ID, false)

	err := h.svc.SetDefaultAddress(context.Background(), user.ID, address.ID, entity.AddressFlag("nope"))
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	assert.Zero(t, h.tx.executed)
}

func TestAccountService_ForeignAddressReadsAsNotFound(t *testing.T) {
	t.Parallel()

	h := newAccountHarness()
	ctx := context.Background()
	owner := h.seedUser("owner@example.com", "secret123", true)
	intruder := h.seedUser("intruder@example.com", "secret123", true)
	address := h.seedAddress(owner.ID, false)

	_, err := h.svc.UpdateAddress(ctx, intruder.ID, address.ID, &usecase.AddressInput{StreetAddress: "changed"})
	assert.ErrorIs(t, err, domainerrors.ErrAddressNotFound)

	err = h.svc.DeleteAddress(ctx, intruder.ID, address.ID)
	assert.ErrorIs(t, err, domainerrors.ErrAddressNotFound)

	err = h.svc.SetDefaultAddress(ctx, intruder.ID, address.ID, entity.FlagDefaultShipping)
	assert.ErrorIs(t, err, domainerrors.ErrAddressNotFound)
	assert.Equal(t, "12 Mill Road", address.StreetAddress)
}

func TestAccountService_CreateAddressWithDefaultFlag(t *testing.T) {
	t.Parallel()

	h := newAccountHarness()
	ctx := context.Background()
	user := h.seedUser("a@example.com", "secret123", true)
	previous := h.seedAddress(user.ID, true)

	created, err := h.svc.CreateAddress(ctx, user.ID, &usecase.AddressInput{
		StreetAddress:     "7 New Street",
		City:              "Pokhara",
		Country:           "Nepal",
		IsDefaultShipping: true,
	})
	require.NoError(t, err)
	assert.True(t, created.IsDefaultShipping)
	assert.False(t, previous.IsDefaultShipping)
}
