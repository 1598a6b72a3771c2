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

// bookingRepository implements the repository.BookingRepository interface using GORM.
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository is the constructor for bookingRepository.
func NewBookingRepository(db *gorm.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

// CreateBooking persists a new service booking.
func (repo *bookingRepository) CreateBooking(ctx context.Context, booking *entity.ServiceBooking) error {
	bookingM := fromBookingDomain(booking)

	if err := repo.db.WithContext(ctx).Create(bookingM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to create service booking")
	}

	booking.CreatedAt = bookingM.CreatedAt
	booking.UpdatedAt = bookingM.UpdatedAt

	return nil
}

// FindBookingByID retrieves a booking by its unique ID.
func (repo *bookingRepository) FindBookingByID(ctx context.Context, id uuid.UUID) (*entity.ServiceBooking, error) {
	var bookingM model.ServiceBookingModel
	err := repo.db.WithContext(ctx).First(&bookingM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookingNotFound
		}

		return nil, errors.Wrap(err, "failed to find service booking by id")
	}

	return toBookingDomain(&bookingM), nil
}

// ListBookings retrieves bookings matching the filter, newest first.
func (repo *bookingRepository) ListBookings(ctx context.Context, filter repository.BookingFilter) ([]*entity.ServiceBooking, error) {
	query := repo.db.WithContext(ctx).Model(&model.ServiceBookingModel{})

	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var bookingMs []*model.ServiceBookingModel
	if err := query.Order("created_at DESC").Find(&bookingMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list service bookings")
	}

	bookings := make([]*entity.ServiceBooking, 0, len(bookingMs))
	for _, bookingM := range bookingMs {
		bookings = append(bookings, toBookingDomain(bookingM))
	}

	return bookings, nil
}

// UpdateBooking updates an existing booking record, including its status.
func (repo *bookingRepository) UpdateBooking(ctx context.Context, booking *entity.ServiceBooking) error {
	bookingM := fromBookingDomain(booking)

	result := repo.db.WithContext(ctx).
		Model(&model.ServiceBookingModel{}).
		Where("id = ?", booking.ID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(bookingM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update service booking")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookingNotFound
	}

	return nil
}

// toBookingDomain maps a persistence model back to a pure domain entity.
func toBookingDomain(bookingM *model.ServiceBookingModel) *entity.ServiceBooking {
	return &entity.ServiceBooking{
		ID:               bookingM.ID,
		UserID:           bookingM.UserID,
		ProductID:        bookingM.ProductID,
		ServiceType:      bookingM.ServiceType,
		Description:      bookingM.Description,
		PreferredDate:    bookingM.PreferredDate,
		PreferredTime:    bookingM.PreferredTime,
		ConfirmedDate:    bookingM.ConfirmedDate,
		ConfirmedTime:    bookingM.ConfirmedTime,
		ServiceAddressID: bookingM.ServiceAddressID,
		Status:           entity.BookingStatus(bookingM.Status),
		AdminNotes:       bookingM.AdminNotes,
		CreatedAt:        bookingM.CreatedAt,
		UpdatedAt:        bookingM.UpdatedAt,
		CompletedAt:      bookingM.CompletedAt,
	}
}

// fromBookingDomain maps a pure domain entity to a persistence model.
func fromBookingDomain(booking *entity.ServiceBooking) *model.ServiceBookingModel {
	return &model.ServiceBookingModel{
		ID:               booking.ID,
		UserID:           booking.UserID,
		ProductID:        booking.ProductID,
		ServiceType:      booking.ServiceType,
		Description:      booking.Description,
		PreferredDate:    booking.PreferredDate,
		PreferredTime:    booking.PreferredTime,
		ConfirmedDate:    booking.ConfirmedDate,
		ConfirmedTime:    booking.ConfirmedTime,
		ServiceAddressID: booking.ServiceAddressID,
		Status:           string(booking.Status),
		AdminNotes:       booking.AdminNotes,
		CreatedAt:        booking.CreatedAt,
		UpdatedAt:        booking.UpdatedAt,
		CompletedAt:      booking.CompletedAt,
	}
}
