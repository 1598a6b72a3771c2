package impl

import (
	"context"
	"log/slog"

	deliverycontext "forge/internal/delivery/context"
	"forge/internal/domain/entity"
	domainerrors "forge/internal/domain/errors"
	"forge/internal/domain/policy"
	"forge/internal/domain/repository"
	"forge/internal/domain/service"
	"forge/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// bookingService implements the BookingUsecase interface.
type bookingService struct {
	txManager   repository.TransactionManager
	bookingRepo repository.BookingRepository
	qrService   service.QRCodeService
	clock       service.Clock
	logger      *slog.Logger
}

// BookingServiceParams holds dependencies for bookingService, injected by Fx.
type BookingServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	BookingRepo repository.BookingRepository
	QRService   service.QRCodeService
	Clock       service.Clock
	Logger      *slog.Logger
}

// NewBookingService is the constructor for bookingService.
func NewBookingService(params BookingServiceParams) usecase.BookingUsecase {
	return &bookingService{
		txManager:   params.TxManager,
		bookingRepo: params.BookingRepo,
		qrService:   params.QRService,
		clock:       params.Clock,
		logger:      params.Logger,
	}
}

func (srv *bookingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateBooking schedules a new service visit for the calling user.
func (srv *bookingService) CreateBooking(ctx context.Context, actor policy.Actor, input *usecase.BookingInput) (*entity.ServiceBooking, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	srv.log(ctx).Info("Creating booking", "userID", actor.ID, "serviceType", input.ServiceType)

	now := srv.clock.Now()
	booking := &entity.ServiceBooking{
		ID:               uuid.New(),
		UserID:           actor.ID,
		ProductID:        input.ProductID,
		ServiceType:      input.ServiceType,
		Description:      input.Description,
		PreferredDate:    input.PreferredDate,
		PreferredTime:    input.PreferredTime,
		ServiceAddressID: input.ServiceAddressID,
		Status:           entity.BookingPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return errors.Wrap(repoFactory.BookingRepo().CreateBooking(ctx, booking), "failed to create booking")
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// GetBooking retrieves a booking, enforcing ownership for non-staff actors.
func (srv *bookingService) GetBooking(ctx context.Context, actor policy.Actor, id uuid.UUID) (*entity.ServiceBooking, error) {
	booking, err := srv.findBooking(ctx, srv.bookingRepo, id)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireOwnerOrStaff(actor, booking.UserID); err != nil {
		return nil, err
	}

	return booking, nil
}

// ListBookings retrieves bookings visible to the actor.
func (srv *bookingService) ListBookings(ctx context.Context, actor policy.Actor, status entity.BookingStatus) ([]*entity.ServiceBooking, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if status != "" && !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown status: " + status.String())
	}

	filter := repository.BookingFilter{Status: status}
	if !actor.IsStaffOrAdmin() {
		userID := actor.ID
		filter.UserID = &userID
	}

	bookings, err := srv.bookingRepo.ListBookings(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list bookings")
	}

	return bookings, nil
}

// UpdateBooking lets the owner revise the booking while it is pending.
func (srv *bookingService) UpdateBooking(ctx context.Context, actor policy.Actor, id uuid.UUID, input *usecase.BookingInput) (*entity.ServiceBooking, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	var booking *entity.ServiceBooking
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		bookingRepo := repoFactory.BookingRepo()

		found, err := srv.findBooking(ctx, bookingRepo, id)
		if err != nil {
			return err
		}
		if err := policy.RequireOwner(actor, found.UserID); err != nil {
			return err
		}
		if err := found.GuardOwnerEdit(); err != nil {
			return srv.transitionError(err)
		}

		found.ProductID = input.ProductID
		found.ServiceType = input.ServiceType
		found.Description = input.Description
		found.PreferredDate = input.PreferredDate
		found.PreferredTime = input.PreferredTime
		found.ServiceAddressID = input.ServiceAddressID
		found.UpdatedAt = srv.clock.Now()

		if err := bookingRepo.UpdateBooking(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update booking")
		}
		booking = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// CancelBooking is the owner-facing cancellation. It is the only status
// change an owner can trigger; completed and cancelled bookings stay frozen.
func (srv *bookingService) CancelBooking(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return err
	}
	srv.log(ctx).Info("Cancelling booking", "bookingID", id, "actorID", actor.ID)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		bookingRepo := repoFactory.BookingRepo()

		found, err := srv.findBooking(ctx, bookingRepo, id)
		if err != nil {
			return err
		}
		// Staff cancellations go through ChangeStatus, which binds them to
		// the transition table. This path is owner only.
		if err := policy.RequireOwner(actor, found.UserID); err != nil {
			return err
		}
		if err := found.Cancel(); err != nil {
			return srv.transitionError(err)
		}
		found.UpdatedAt = srv.clock.Now()

		return errors.Wrap(bookingRepo.UpdateBooking(ctx, found), "failed to update booking")
	})
}

// ChangeStatus moves the booking along its lifecycle on the administrative
// path, stamping the completion time on first entry into completed.
func (srv *bookingService) ChangeStatus(ctx context.Context, actor policy.Actor, id uuid.UUID, input *usecase.BookingStatusInput) (*entity.ServiceBooking, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown status: " + input.Status.String())
	}
	srv.log(ctx).Info("Changing booking status", "bookingID", id, "next", input.Status)

	var booking *entity.ServiceBooking
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		bookingRepo := repoFactory.BookingRepo()

		found, err := srv.findBooking(ctx, bookingRepo, id)
		if err != nil {
			return err
		}

		if err := found.AdminTransition(input.Status, srv.clock.Now()); err != nil {
			return srv.transitionError(err)
		}
		if input.ConfirmedDate != nil {
			found.ConfirmedDate = input.ConfirmedDate
		}
		if input.ConfirmedTime != "" {
			found.ConfirmedTime = input.ConfirmedTime
		}
		if input.AdminNotes != "" {
			found.AdminNotes = input.AdminNotes
		}
		found.UpdatedAt = srv.clock.Now()

		if err := bookingRepo.UpdateBooking(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update booking")
		}
		booking = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// BookingQR renders a QR code encoding the booking reference.
func (srv *bookingService) BookingQR(ctx context.Context, actor policy.Actor, id uuid.UUID) ([]byte, error) {
	booking, err := srv.GetBooking(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateBookingQR(booking.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate booking QR")
	}

	return png, nil
}

// --- helpers ---

func (srv *bookingService) findBooking(ctx context.Context, bookingRepo repository.BookingRepository, id uuid.UUID) (*entity.ServiceBooking, error) {
	booking, err := bookingRepo.FindBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, domainerrors.ErrBookingNotFound
		}

		return nil, errors.Wrap(err, "failed to find booking")
	}

	return booking, nil
}

func (srv *bookingService) transitionError(err error) error {
	var transitionErr *entity.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return domainerrors.ErrInvalidStateTransition.WithDetails(transitionErr.Error())
	}

	return err
}
