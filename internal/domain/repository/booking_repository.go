package repository

import (
	"context"
	"errors"

	"forge/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBookingNotFound is returned when a service booking is not found.
var ErrBookingNotFound = errors.New("service booking not found")

// BookingFilter narrows booking listings.
type BookingFilter struct {
	Status entity.BookingStatus // Zero value means all statuses.
	UserID *uuid.UUID           // Restrict to one owner's bookings.
}

// BookingRepository defines service booking persistence operations.
type BookingRepository interface {
	// CreateBooking persists a new service booking.
	CreateBooking(ctx context.Context, booking *entity.ServiceBooking) error

	// FindBookingByID retrieves a booking by its unique ID.
	FindBookingByID(ctx context.Context, id uuid.UUID) (*entity.ServiceBooking, error)

	// ListBookings retrieves bookings matching the filter, newest first.
	ListBookings(ctx context.Context, filter BookingFilter) ([]*entity.ServiceBooking, error)

	// UpdateBooking updates an existing booking record, including its status.
	UpdateBooking(ctx context.Context, booking *entity.ServiceBooking) error
}
