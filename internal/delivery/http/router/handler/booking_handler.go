package handler

import (
	"log/slog"
	"net/http"

	"forge/internal/delivery/http/response"
	"forge/internal/domain/entity"
	"forge/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BookingHandler holds dependencies for the service booking workflow.
type BookingHandler struct {
	uc     usecase.BookingUsecase
	logger *slog.Logger
}

// NewBookingHandler is the constructor for BookingHandler, injected by Fx.
func NewBookingHandler(uc usecase.BookingUsecase, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateBooking schedules a new service visit for the calling user.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var input *usecase.BookingInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid booking input")
	}

	booking, err := h.uc.CreateBooking(c.Request().Context(), actorFrom(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, booking)
}

// GetBooking retrieves a single booking.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	booking, err := h.uc.GetBooking(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, booking)
}

// ListBookings retrieves the caller's bookings; staff see all, optionally
// filtered by status.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	status := entity.BookingStatus(c.QueryParam("status"))

	bookings, err := h.uc.ListBookings(c.Request().Context(), actorFrom(c), status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, bookings)
}

// UpdateBooking lets the owner revise a booking while it is pending.
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.BookingInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid booking input")
	}

	booking, err := h.uc.UpdateBooking(c.Request().Context(), actorFrom(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, booking)
}

// CancelBooking is the owner-facing cancellation.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.CancelBooking(c.Request().Context(), actorFrom(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "booking cancelled"})
}

// ChangeStatus moves a booking along its lifecycle on the staff path.
func (h *BookingHandler) ChangeStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.BookingStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid status input")
	}

	booking, err := h.uc.ChangeStatus(c.Request().Context(), actorFrom(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, booking)
}

// BookingQR renders the booking reference as a QR code PNG.
func (h *BookingHandler) BookingQR(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	png, err := h.uc.BookingQR(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
