package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateBookingQR generates a QR code encoding a booking reference,
	// printed on the visit confirmation the customer receives.
	GenerateBookingQR(bookingID uuid.UUID) ([]byte, error)

	// ParseBookingQR parses QR code data and returns the booking ID.
	ParseBookingQR(qrData string) (uuid.UUID, error)
}
