package postgres

import (
	"context"
	"time"

	"forge/internal/domain/entity"
	"forge/internal/domain/repository"
	"forge/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID, preloading their addresses.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Addresses").
		First(&userM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Addresses").
		First(&userM, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// FindByUsername retrieves a single user by their username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Addresses").
		First(&userM, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return toUserDomain(&userM), nil
}

// List retrieves users matching the filter, newest first.
func (repo *userRepository) List(ctx context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	query := repo.db.WithContext(ctx).Model(&model.UserModel{})

	switch filter.Role {
	case entity.RoleAdmin:
		query = query.Where("is_superuser = ?", true)
	case entity.RoleStaff:
		query = query.Where("is_staff = ? AND is_superuser = ?", true, false)
	case entity.RoleUser:
		query = query.Where("is_staff = ? AND is_superuser = ?", false, false)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"username ILIKE ? OR email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var userMs []*model.UserModel
	if err := query.Order("date_joined DESC").Find(&userMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(userMs))
	for _, userM := range userMs {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// Create persists a new user entity to the database.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateUser
		}

		return errors.Wrap(err, "failed to create user")
	}

	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user entity in the database.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	// Select("*") keeps zero values (cleared names, false flags) in the update.
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Select("*").
		Omit("id", "created_at", "date_joined", "Addresses").
		Updates(userM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateUser
		}

		return errors.Wrap(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// SetActive flips the active flag for every listed account.
func (repo *userRepository) SetActive(ctx context.Context, ids []uuid.UUID, active bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id IN ?", ids).
		Update("is_active", active)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to set users active flag")
	}

	return result.RowsAffected, nil
}

// SetRoleFlags persists the privilege booleans that encode a role.
func (repo *userRepository) SetRoleFlags(ctx context.Context, id uuid.UUID, isSuperuser, isStaff bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_superuser": isSuperuser,
			"is_staff":     isStaff,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set user role flags")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// RecordLogin stamps the last login time.
func (repo *userRepository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("last_login", at)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to record login")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// Stats counts accounts overall, by state and by role.
func (repo *userRepository) Stats(ctx context.Context, joinedSince time.Time) (*repository.UserStats, error) {
	var stats repository.UserStats

	counts := []struct {
		dest  *int64
		where func(db *gorm.DB) *gorm.DB
	}{
		{&stats.Total, func(db *gorm.DB) *gorm.DB { return db }},
		{&stats.Active, func(db *gorm.DB) *gorm.DB { return db.Where("is_active = ?", true) }},
		{&stats.Staff, func(db *gorm.DB) *gorm.DB { return db.Where("is_staff = ? AND is_superuser = ?", true, false) }},
		{&stats.Admins, func(db *gorm.DB) *gorm.DB { return db.Where("is_superuser = ?", true) }},
		{&stats.JoinedSince, func(db *gorm.DB) *gorm.DB { return db.Where("date_joined >= ?", joinedSince) }},
	}
	for _, c := range counts {
		query := c.where(repo.db.WithContext(ctx).Model(&model.UserModel{}))
		if err := query.Count(c.dest).Error; err != nil {
			return nil, errors.Wrap(err, "failed to count users")
		}
	}

	return &stats, nil
}

// toUserDomain maps a persistence model back to a pure domain entity.
func toUserDomain(userM *model.UserModel) *entity.User {
	user := &entity.User{
		ID:             userM.ID,
		Username:       userM.Username,
		Email:          userM.Email,
		FirstName:      userM.FirstName,
		LastName:       userM.LastName,
		PhoneNumber:    userM.PhoneNumber,
		ProfilePicture: userM.ProfilePicture,
		PasswordHash:   userM.PasswordHash,
		IsSuperuser:    userM.IsSuperuser,
		IsStaff:        userM.IsStaff,
		IsActive:       userM.IsActive,
		LastLogin:      userM.LastLogin,
		DateJoined:     userM.DateJoined,
		CreatedAt:      userM.CreatedAt,
		UpdatedAt:      userM.UpdatedAt,
	}
	for _, addressM := range userM.Addresses {
		user.Addresses = append(user.Addresses, toAddressDomain(addressM))
	}

	return user
}

// fromUserDomain maps a pure domain entity to a persistence model.
// Addresses are managed through their own repository, never through the user.
func fromUserDomain(user *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		PhoneNumber:    user.PhoneNumber,
		ProfilePicture: user.ProfilePicture,
		PasswordHash:   user.PasswordHash,
		IsSuperuser:    user.IsSuperuser,
		IsStaff:        user.IsStaff,
		IsActive:       user.IsActive,
		LastLogin:      user.LastLogin,
		DateJoined:     user.DateJoined,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}
