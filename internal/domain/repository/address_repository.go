package repository

import (
	"context"
	"errors"

	"forge/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAddressNotFound is returned when an address is not found.
var ErrAddressNotFound = errors.New("address not found")

// AddressRepository defines the interface for address-related database operations.
type AddressRepository interface {
	// CreateAddress persists a new address for a user.
	CreateAddress(ctx context.Context, address *entity.Address) error

	// FindAddressByID retrieves an address by its unique ID.
	FindAddressByID(ctx context.Context, id uuid.UUID) (*entity.Address, error)

	// FindAddressesByUser retrieves all addresses belonging to a user.
	FindAddressesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error)

	// UpdateAddress updates an existing address record.
	UpdateAddress(ctx context.Context, address *entity.Address) error

	// DeleteAddress removes an address by its ID.
	DeleteAddress(ctx context.Context, id uuid.UUID) error

	// ClearDefaultFlag unsets the given default flag on every address the user
	// owns. Paired with SetDefaultFlag inside one transaction so at most one
	// address per user ever carries the flag.
	ClearDefaultFlag(ctx context.Context, userID uuid.UUID, flag entity.AddressFlag) error

	// SetDefaultFlag sets the given default flag on a single address owned by
	// the user. Returns ErrAddressNotFound when the address does not exist or
	// belongs to someone else.
	SetDefaultFlag(ctx context.Context, userID, addressID uuid.UUID, flag entity.AddressFlag) error
}
