package postgres

import (
	"context"

	"forge/internal/domain/entity"
	"forge/internal/domain/repository"
	"forge/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// addressRepository implements the repository.AddressRepository interface using GORM.
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{db: db}
}

// CreateAddress persists a new address for a user.
func (repo *addressRepository) CreateAddress(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)

	if err := repo.db.WithContext(ctx).Create(addressM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to create address")
	}

	address.CreatedAt = addressM.CreatedAt
	address.UpdatedAt = addressM.UpdatedAt

	return nil
}

// FindAddressByID retrieves an address by its unique ID.
func (repo *addressRepository) FindAddressByID(ctx context.Context, id uuid.UUID) (*entity.Address, error) {
	var addressM model.AddressModel
	err := repo.db.WithContext(ctx).First(&addressM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAddressNotFound
		}

		return nil, errors.Wrap(err, "failed to find address by id")
	}

	return toAddressDomain(&addressM), nil
}

// FindAddressesByUser retrieves all addresses belonging to a user.
func (repo *addressRepository) FindAddressesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	var addressMs []*model.AddressModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&addressMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find addresses by user")
	}

	addresses := make([]*entity.Address, 0, len(addressMs))
	for _, addressM := range addressMs {
		addresses = append(addresses, toAddressDomain(addressM))
	}

	return addresses, nil
}

// UpdateAddress updates an existing address record.
func (repo *addressRepository) UpdateAddress(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)

	// Select("*") keeps zero values (cleared fields, false flags) in the update.
	result := repo.db.WithContext(ctx).
		Model(&model.AddressModel{}).
		Where("id = ?", address.ID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(addressM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update address")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAddressNotFound
	}

	return nil
}

// DeleteAddress removes an address by its ID.
func (repo *addressRepository) DeleteAddress(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.AddressModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete address")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAddressNotFound
	}

	return nil
}

// ClearDefaultFlag unsets the given default flag on every address the user owns.
func (repo *addressRepository) ClearDefaultFlag(ctx context.Context, userID uuid.UUID, flag entity.AddressFlag) error {
	column, err := addressFlagColumn(flag)
	if err != nil {
		return err
	}

	err = repo.db.WithContext(ctx).
		Model(&model.AddressModel{}).
		Where("user_id = ?", userID).
		Update(column, false).Error
	if err != nil {
		return errors.Wrap(err, "failed to clear default address flag")
	}

	return nil
}

// SetDefaultFlag sets the given default flag on a single address owned by the user.
func (repo *addressRepository) SetDefaultFlag(ctx context.Context, userID, addressID uuid.UUID, flag entity.AddressFlag) error {
	column, err := addressFlagColumn(flag)
	if err != nil {
		return err
	}

	result := repo.db.WithContext(ctx).
		Model(&model.AddressModel{}).
		Where("id = ? AND user_id = ?", addressID, userID).
		Update(column, true)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set default address flag")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAddressNotFound
	}

	return nil
}

// addressFlagColumn resolves the column name for a default-address flag.
// The flag values double as column names; validate anyway so a bad value can
// never reach the SQL layer.
func addressFlagColumn(flag entity.AddressFlag) (string, error) {
	switch flag {
	case entity.FlagDefaultShipping:
		return "is_default_shipping", nil
	case entity.FlagDefaultBilling:
		return "is_default_billing", nil
	default:
		return "", errors.Errorf("unknown address flag: %s", flag)
	}
}

// toAddressDomain maps a persistence model back to a pure domain entity.
func toAddressDomain(addressM *model.AddressModel) *entity.Address {
	return &entity.Address{
		ID:                addressM.ID,
		UserID:            addressM.UserID,
		StreetAddress:     addressM.StreetAddress,
		ApartmentAddress:  addressM.ApartmentAddress,
		City:              addressM.City,
		State:             addressM.State,
		Country:           addressM.Country,
		ZipCode:           addressM.ZipCode,
		IsDefaultShipping: addressM.IsDefaultShipping,
		IsDefaultBilling:  addressM.IsDefaultBilling,
		CreatedAt:         addressM.CreatedAt,
		UpdatedAt:         addressM.UpdatedAt,
	}
}

// fromAddressDomain maps a pure domain entity to a persistence model.
func fromAddressDomain(address *entity.Address) *model.AddressModel {
	return &model.AddressModel{
		ID:                address.ID,
		UserID:            address.UserID,
		StreetAddress:     address.StreetAddress,
		ApartmentAddress:  address.ApartmentAddress,
		City:              address.City,
		State:             address.State,
		Country:           address.Country,
		ZipCode:           address.ZipCode,
		IsDefaultShipping: address.IsDefaultShipping,
		IsDefaultBilling:  address.IsDefaultBilling,
		CreatedAt:         address.CreatedAt,
		UpdatedAt:         address.UpdatedAt,
	}
}
