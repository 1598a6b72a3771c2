package impl

import (
	"context"
	"testing"
	"time"

	"forge/internal/domain/entity"
	domainerrors "forge/internal/domain/errors"
	"forge/internal/domain/policy"
	"forge/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingHarness struct {
	svc     usecase.BookingUsecase
	factory *fakeRepoFactory
	clock   fixedClock
}

func newBookingHarness() *bookingHarness {
	factory := newFakeFactory()
	clock := fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	svc := NewBookingService(BookingServiceParams{
		TxManager:   &fakeTxManager{factory: factory},
		BookingRepo: factory.bookings,
		QRService:   fakeQRService{},
		Clock:       clock,
		Logger:      newDiscardLogger(),
	})

	return &bookingHarness{svc: svc, factory: factory, clock: clock}
}

func (h *bookingHarness) book(actor policy.Actor, t *testing.T) *entity.ServiceBooking {
	t.Helper()

	booking, err := h.svc.CreateBooking(context.Background(), actor, &usecase.BookingInput{
		ProductID:     uuid.New(),
		ServiceType:   "Installation",
		Description:   "Install sliding wardrobe doors.",
		PreferredDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		PreferredTime: "10:30",
	})
	require.NoError(t, err)

	return booking
}

func (h *bookingHarness) seedStatus(t *testing.T, owner policy.Actor, status entity.BookingStatus) *entity.ServiceBooking {
	t.Helper()

	booking := h.book(owner, t)
	booking.Status = status

	return booking
}

func TestBookingService_CreateBooking(t *testing.T) {
	t.Parallel()

	h := newBookingHarness()
	owner := userActor()

	booking := h.book(owner, t)
	assert.Equal(t, entity.BookingPending, booking.Status)
	assert.Equal(t, owner.ID, booking.UserID)
	assert.Nil(t, booking.CompletedAt)

	_, err := h.svc.CreateBooking(context.Background(), policy.Anonymous(), &usecase.BookingInput{})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestBookingService_ReadScoping(t *testing.T) {
	t.Parallel()

	h := newBookingHarness()
	ctx := context.Background()
	owner := userActor()
	booking := h.book(owner, t)

	got, err := h.svc.GetBooking(ctx, owner, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	_, err = h.svc.GetBooking(ctx, userActor(), booking.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = h.svc.GetBooking(ctx, staffActor(), booking.ID)
	assert.NoError(t, err)

	h.book(userActor(), t)
	mine, err := h.svc.ListBookings(ctx, owner, "")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := h.svc.ListBookings(ctx, staffActor(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBookingService_OwnerEditWindow(t *testing.T) {
	t.Parallel()

	h := newBookingHarness()
	ctx := context.Background()
	owner := userActor()
	booking := h.book(owner, t)

	revised, err := h.svc.UpdateBooking(ctx, owner, booking.ID, &usecase.BookingInput{
		ProductID:     booking.ProductID,
		ServiceType:   "Repair",
		Description:   "Door no longer closes.",
		PreferredDate: booking.PreferredDate,
		PreferredTime: "14:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Repair", revised.ServiceType)

	// Once confirmed, the booking is frozen for the owner.
	_, err = h.svc.ChangeStatus(ctx, staffActor(), booking.ID, &usecase.BookingStatusInput{Status: entity.BookingConfirmed})
	require.NoError(t, err)

	_, err = h.svc.UpdateBooking(ctx, owner, booking.ID, &usecase.BookingInput{ServiceType: "Too late"})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_STATE_TRANSITION", appErr.ErrorCode())
}

func TestBookingService_CancelMatrix(t *testing.T) {
	t.Parallel()

	h := newBookingHarness()
	ctx := context.Background()
	owner := userActor()

	for _, status := range []entity.BookingStatus{entity.BookingPending, entity.BookingConfirmed, entity.BookingInProgress} {
		booking := h.seedStatus(t, owner, status)
		require.NoError(t, h.svc.CancelBooking(ctx, owner, booking.ID), "cancel from %s", status)
		assert.Equal(t, entity.BookingCancelled, h.factory.bookings.bookings[booking.ID].Status)
	}

	for _, status := range []entity.BookingStatus{entity.BookingCompleted, entity.BookingCancelled} {
		booking := h.seedStatus(t, owner, status)
		err := h.svc.CancelBooking(ctx, owner, booking.ID)
		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr, "cancel from %s", status)
		assert.Equal(t, "INVALID_STATE_TRANSITION", appErr.ErrorCode())
	}

	// A stranger cannot cancel someone else's booking.
	booking := h.book(owner, t)
	assert.ErrorIs(t, h.svc.CancelBooking(ctx, userActor(), booking.ID), domainerrors.ErrForbidden)

	// Neither can staff on this path. Staff cancellations go through
	// ChangeStatus, which forbids cancelling in-progress work.
	inProgress := h.seedStatus(t, owner, entity.BookingInProgress)
	assert.ErrorIs(t, h.svc.CancelBooking(ctx, staffActor(), inProgress.ID), domainerrors.ErrForbidden)
	assert.ErrorIs(t, h.svc.CancelBooking(ctx, adminActor(), inProgress.ID), domainerrors.ErrForbidden)
	assert.Equal(t, entity.BookingInProgress, h.factory.bookings.bookings[inProgress.ID].Status)
}

func TestBookingService_ChangeStatus(t *testing.T) {
	t.Parallel()

	h := newBookingHarness()
	ctx := context.Background()
	staff := staffActor()
	booking := h.book(userActor(), t)

	// The administrative path cannot jump straight to completed.
	_, err := h.svc.ChangeStatus(ctx, staff, booking.ID, &usecase.BookingStatusInput{Status: entity.BookingCompleted})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_STATE_TRANSITION", appErr.ErrorCode())

	confirmedDate := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	confirmed, err := h.svc.ChangeStatus(ctx, staff, booking.ID, &usecase.BookingStatusInput{
		Status:        entity.BookingConfirmed,
		ConfirmedDate: &confirmedDate,
		ConfirmedTime: "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingConfirmed, confirmed.Status)
	assert.Equal(t, "09:00", confirmed.ConfirmedTime)

	_, err = h.svc.ChangeStatus(ctx, staff, booking.ID, &usecase.BookingStatusInput{Status: entity.BookingInProgress})
	require.NoError(t, err)

	completed, err := h.svc.ChangeStatus(ctx, staff, booking.ID, &usecase.BookingStatusInput{Status: entity.BookingCompleted})
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)
	assert.True(t, completed.CompletedAt.Equal(h.clock.now))

	// Regular users never drive the administrative path.
	_, err = h.svc.ChangeStatus(ctx, userActor(), booking.ID, &usecase.BookingStatusInput{Status: entity.BookingConfirmed})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = h.svc.ChangeStatus(ctx, staff, booking.ID, &usecase.BookingStatusInput{Status: "mislaid"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}

func TestBookingService_CompletedAtStampedOnce(t *testing.T) {
	t.Parallel()

	h := newBookingHarness()
	ctx := context.Background()
	staff := staffActor()
	booking := h.seedStatus(t, userActor(), entity.BookingInProgress)

	completed, err := h.svc.ChangeStatus(ctx, staff, booking.ID, &usecase.BookingStatusInput{Status: entity.BookingCompleted})
	require.NoError(t, err)
	firstStamp := *completed.CompletedAt

	// Restating completed is a no-op and keeps the original stamp.
	again, err := h.svc.ChangeStatus(ctx, staff, booking.ID, &usecase.BookingStatusInput{Status: entity.BookingCompleted})
	require.NoError(t, err)
	assert.True(t, again.CompletedAt.Equal(firstStamp))
}

func TestBookingService_BookingQR(t *testing.T) {
	t.Parallel()

	h := newBookingHarness()
	ctx := context.Background()
	owner := userActor()
	booking := h.book(owner, t)

	png, err := h.svc.BookingQR(ctx, owner, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("qr:"+booking.ID.String()), png)

	_, err = h.svc.BookingQR(ctx, userActor(), booking.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = h.svc.BookingQR(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrBookingNotFound)
}
