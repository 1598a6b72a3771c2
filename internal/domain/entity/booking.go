package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a service booking.
type BookingStatus string

const (
	// BookingPending is the initial state of every booking.
	BookingPending BookingStatus = "pending"
	// BookingConfirmed means staff confirmed a date and time.
	BookingConfirmed BookingStatus = "confirmed"
	// BookingInProgress means the crew is on site.
	BookingInProgress BookingStatus = "in_progress"
	// BookingCompleted is terminal; CompletedAt is stamped on entry.
	BookingCompleted BookingStatus = "completed"
	// BookingCancelled is terminal; reachable from pending or confirmed only.
	BookingCancelled BookingStatus = "cancelled"
)

// IsValid checks if the BookingStatus is a valid value.
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation of the BookingStatus.
func (s BookingStatus) String() string {
	return string(s)
}

// bookingTransitions lists the legal administrative status transitions.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:    {BookingConfirmed, BookingCancelled},
	BookingConfirmed:  {BookingInProgress, BookingCancelled},
	BookingInProgress: {BookingCompleted},
}

// ServiceBooking is a scheduled installation, maintenance or repair visit.
type ServiceBooking struct {
	ID        uuid.UUID
	UserID    uuid.UUID // Owning account.
	ProductID uuid.UUID // The product or service the visit concerns.

	ServiceType string // e.g. "Installation", "Maintenance", "Repair".
	Description string

	PreferredDate time.Time
	PreferredTime string // "HH:MM" wall-clock time.
	ConfirmedDate *time.Time
	ConfirmedTime string

	ServiceAddressID *uuid.UUID // Nullable; survives address deletion as null.

	Status     BookingStatus
	AdminNotes string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time // Stamped exactly once, on the transition into completed.
}

// OwnerEditable reports whether the owner may still edit descriptive and
// scheduling fields. Only pending bookings are owner-editable.
func (b *ServiceBooking) OwnerEditable() bool {
	return b.Status == BookingPending
}

// GuardOwnerEdit returns a typed transition error when the owner may no
// longer edit the booking.
func (b *ServiceBooking) GuardOwnerEdit() error {
	if !b.OwnerEditable() {
		return errBookingOwnerEdit(b.Status)
	}

	return nil
}

// CanCancel reports whether an owner-initiated cancellation is still allowed.
func (b *ServiceBooking) CanCancel() bool {
	return b.Status != BookingCompleted && b.Status != BookingCancelled
}

// Cancel performs the owner-initiated cancellation. It is the only status
// change the owner can trigger.
func (b *ServiceBooking) Cancel() error {
	if !b.CanCancel() {
		return errBookingCancel(b.Status)
	}
	b.Status = BookingCancelled

	return nil
}

// CanTransition reports whether the administrative state machine allows
// moving to next.
func (b *ServiceBooking) CanTransition(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}

	return false
}

// AdminTransition moves the booking to next on the administrative path and
// stamps CompletedAt on the first entry into completed.
func (b *ServiceBooking) AdminTransition(next BookingStatus, now time.Time) error {
	if next == b.Status {
		return nil
	}
	if !b.CanTransition(next) {
		return errBookingTransition(b.Status, next)
	}

	b.Status = next
	if next == BookingCompleted && b.CompletedAt == nil {
		stamped := now
		b.CompletedAt = &stamped
	}

	return nil
}
