// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"forge/internal/domain/entity"

	"github.com/google/uuid"
)

// AccountUsecase defines the interface for registration, authentication and
// self-service profile operations.
type AccountUsecase interface {
	// Register creates a new customer account and returns it.
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)

	// Login verifies credentials and returns the user with a token pair.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// RefreshToken exchanges a valid refresh token for a new token pair.
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)

	// GetProfile retrieves the account of the given user.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateProfile updates the caller's own profile fields.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)

	// ChangePassword verifies the current password and sets a new one.
	ChangePassword(ctx context.Context, userID uuid.UUID, input *ChangePasswordInput) error

	// ListAddresses retrieves the caller's addresses.
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error)

	// CreateAddress adds an address to the caller's book. When a default flag
	// is requested the flag is moved atomically from any address holding it.
	CreateAddress(ctx context.Context, userID uuid.UUID, input *AddressInput) (*entity.Address, error)

	// UpdateAddress updates one of the caller's addresses.
	UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, input *AddressInput) (*entity.Address, error)

	// DeleteAddress removes one of the caller's addresses.
	DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error

	// SetDefaultAddress moves a default flag to the given address. At most one
	// of the caller's addresses holds each flag afterwards.
	SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID, flag entity.AddressFlag) error
}

// --- Input DTOs ---

// RegisterInput defines the data required to create an account.
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

// LoginInput defines the credentials for authentication.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair carries a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginOutput carries the authenticated user and their tokens.
type LoginOutput struct {
	User   *entity.User `json:"user"`
	Tokens *TokenPair   `json:"tokens"`
}

// UpdateProfileInput defines the self-service editable profile fields.
type UpdateProfileInput struct {
	FirstName      *string `json:"first_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`
	PhoneNumber    *string `json:"phone_number,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

// ChangePasswordInput defines the data required to change a password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// AddressInput defines the data for creating or updating an address.
type AddressInput struct {
	StreetAddress     string `json:"street_address"`
	ApartmentAddress  string `json:"apartment_address"`
	City              string `json:"city"`
	State             string `json:"state"`
	Country           string `json:"country"`
	ZipCode           string `json:"zip_code"`
	IsDefaultShipping bool   `json:"is_default_shipping"`
	IsDefaultBilling  bool   `json:"is_default_billing"`
}
