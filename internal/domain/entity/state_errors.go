package entity

import "fmt"

// InvalidTransitionError reports a lifecycle mutation that the entity's state
// machine forbids. It always names the current state and the attempted
// operation so callers can surface both.
type InvalidTransitionError struct {
	Entity    string // "quotation" or "booking".
	Current   string // Current status.
	Attempted string // The rejected operation or target status.
}

// Error implements the error interface.
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s in status %q does not allow %s", e.Entity, e.Current, e.Attempted)
}

func errQuotationTransition(current, next QuotationStatus) error {
	return &InvalidTransitionError{
		Entity:    "quotation",
		Current:   current.String(),
		Attempted: "transition to " + next.String(),
	}
}

func errInvalidQuotationStatus(next QuotationStatus) error {
	return &InvalidTransitionError{
		Entity:    "quotation",
		Current:   next.String(),
		Attempted: "transition to unknown status",
	}
}

func errQuotationOwnerEdit(current QuotationStatus) error {
	return &InvalidTransitionError{
		Entity:    "quotation",
		Current:   current.String(),
		Attempted: "owner edit",
	}
}

func errBookingTransition(current, next BookingStatus) error {
	return &InvalidTransitionError{
		Entity:    "booking",
		Current:   current.String(),
		Attempted: "transition to " + next.String(),
	}
}

func errBookingOwnerEdit(current BookingStatus) error {
	return &InvalidTransitionError{
		Entity:    "booking",
		Current:   current.String(),
		Attempted: "owner edit",
	}
}

func errBookingCancel(current BookingStatus) error {
	return &InvalidTransitionError{
		Entity:    "booking",
		Current:   current.String(),
		Attempted: "cancel",
	}
}
