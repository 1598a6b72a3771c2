package usecase

import (
	"context"
	"time"

	"forge/internal/domain/entity"
	"forge/internal/domain/policy"

	"github.com/google/uuid"
)

// BookingUsecase defines the interface for the service booking workflow.
type BookingUsecase interface {
	// CreateBooking schedules a new service visit for the calling user.
	CreateBooking(ctx context.Context, actor policy.Actor, input *BookingInput) (*entity.ServiceBooking, error)

	// GetBooking retrieves a booking. Owners see their own; staff see all.
	GetBooking(ctx context.Context, actor policy.Actor, id uuid.UUID) (*entity.ServiceBooking, error)

	// ListBookings retrieves bookings. Regular users see only their own;
	// staff see all, optionally filtered by status.
	ListBookings(ctx context.Context, actor policy.Actor, status entity.BookingStatus) ([]*entity.ServiceBooking, error)

	// UpdateBooking lets the owner revise the booking while it is pending.
	UpdateBooking(ctx context.Context, actor policy.Actor, id uuid.UUID, input *BookingInput) (*entity.ServiceBooking, error)

	// CancelBooking is the owner-facing cancellation. Completed and already
	// cancelled bookings cannot be cancelled.
	CancelBooking(ctx context.Context, actor policy.Actor, id uuid.UUID) error

	// ChangeStatus moves the booking along its lifecycle on the
	// administrative path, stamping the completion time on entry to completed.
	ChangeStatus(ctx context.Context, actor policy.Actor, id uuid.UUID, input *BookingStatusInput) (*entity.ServiceBooking, error)

	// BookingQR renders a QR code encoding the booking reference, used on the
	// printed visit confirmation.
	BookingQR(ctx context.Context, actor policy.Actor, id uuid.UUID) ([]byte, error)
}

// --- Input DTOs ---

// BookingInput defines the data for scheduling or revising a service visit.
type BookingInput struct {
	ProductID        uuid.UUID  `json:"product_id"`
	ServiceType      string     `json:"service_type"`
	Description      string     `json:"description"`
	PreferredDate    time.Time  `json:"preferred_date"`
	PreferredTime    string     `json:"preferred_time"` // "HH:MM".
	ServiceAddressID *uuid.UUID `json:"service_address_id,omitempty"`
}

// BookingStatusInput defines an administrative status change, optionally
// confirming the visit schedule.
type BookingStatusInput struct {
	Status        entity.BookingStatus `json:"status"`
	ConfirmedDate *time.Time           `json:"confirmed_date,omitempty"`
	ConfirmedTime string               `json:"confirmed_time,omitempty"` // "HH:MM".
	AdminNotes    string               `json:"admin_notes,omitempty"`
}
