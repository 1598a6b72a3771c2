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

// quotationService implements the QuotationUsecase interface.
type quotationService struct {
	txManager     repository.TransactionManager
	quotationRepo repository.QuotationRepository
	fileStorage   service.FileStorage
	clock         service.Clock
	logger        *slog.Logger
}

// QuotationServiceParams holds dependencies for quotationService, injected by Fx.
type QuotationServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	QuotationRepo repository.QuotationRepository
	FileStorage   service.FileStorage
	Clock         service.Clock
	Logger        *slog.Logger
}

// NewQuotationService is the constructor for quotationService.
func NewQuotationService(params QuotationServiceParams) usecase.QuotationUsecase {
	return &quotationService{
		txManager:     params.TxManager,
		quotationRepo: params.QuotationRepo,
		fileStorage:   params.FileStorage,
		clock:         params.Clock,
		logger:        params.Logger,
	}
}

func (srv *quotationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateQuotation files a new request for a registered user or a guest.
func (srv *quotationService) CreateQuotation(ctx context.Context, actor policy.Actor, input *usecase.QuotationInput) (*entity.QuotationRequest, error) {
	var requester entity.Requester
	if actor.IsAuthenticated {
		requester = entity.RegisteredRequester(actor.ID)
	} else {
		requester = entity.GuestRequester(input.GuestName, input.GuestEmail, input.GuestPhone)
	}
	if !requester.Valid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("guest requests require a name and email")
	}
	if input.Quantity < 1 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("quantity must be at least 1")
	}
	if input.Urgency != "" && !input.Urgency.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown urgency: " + string(input.Urgency))
	}
	if input.QuoteType != "" && !input.QuoteType.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown quote type: " + string(input.QuoteType))
	}
	srv.log(ctx).Info("Creating quotation request", "title", input.ProjectTitle, "registered", requester.IsRegistered())

	now := srv.clock.Now()
	quotation := &entity.QuotationRequest{
		ID:                     uuid.New(),
		Requester:              requester,
		ProductID:              input.ProductID,
		ServiceID:              input.ServiceID,
		QuoteType:              input.QuoteType,
		ProjectTitle:           input.ProjectTitle,
		ServiceType:            input.ServiceType,
		Description:            input.Description,
		Quantity:               input.Quantity,
		Urgency:                input.Urgency,
		CustomDimensions:       input.CustomDimensions,
		PreferredMaterials:     input.PreferredMaterials,
		AdditionalRequirements: input.AdditionalRequirements,
		BudgetRangeMin:         input.BudgetRangeMin,
		BudgetRangeMax:         input.BudgetRangeMax,
		RequiredBy:             input.RequiredBy,
		Status:                 entity.QuotationPending,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return errors.Wrap(repoFactory.QuotationRepo().CreateQuotation(ctx, quotation), "failed to create quotation")
	})
	if err != nil {
		return nil, err
	}

	return quotation, nil
}

// GetQuotation retrieves a request, enforcing ownership for non-staff actors.
func (srv *quotationService) GetQuotation(ctx context.Context, actor policy.Actor, id uuid.UUID) (*entity.QuotationRequest, error) {
	quotation, err := srv.findQuotation(ctx, srv.quotationRepo, id)
	if err != nil {
		return nil, err
	}
	if err := srv.guardRead(actor, quotation); err != nil {
		return nil, err
	}

	return quotation, nil
}

// ListQuotations retrieves requests visible to the actor.
func (srv *quotationService) ListQuotations(ctx context.Context, actor policy.Actor, status entity.QuotationStatus) ([]*entity.QuotationRequest, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if status != "" && !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown status: " + status.String())
	}

	filter := repository.QuotationFilter{Status: status}
	if !actor.IsStaffOrAdmin() {
		userID := actor.ID
		filter.UserID = &userID
	}

	quotations, err := srv.quotationRepo.ListQuotations(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list quotations")
	}

	return quotations, nil
}

// UpdateQuotation lets the owner revise descriptive fields while the request
// is still pending or reviewing.
func (srv *quotationService) UpdateQuotation(ctx context.Context, actor policy.Actor, id uuid.UUID, input *usecase.QuotationInput) (*entity.QuotationRequest, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	var quotation *entity.QuotationRequest
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		quotationRepo := repoFactory.QuotationRepo()

		found, err := srv.findQuotation(ctx, quotationRepo, id)
		if err != nil {
			return err
		}
		// Admins do not inherit ownership of personal resources. Staff
		// corrections go through the administrative endpoints instead.
		if !found.Requester.OwnedBy(actor.ID) {
			return domainerrors.ErrForbidden
		}
		if err := found.GuardOwnerEdit(); err != nil {
			return srv.transitionError(err)
		}

		found.ProjectTitle = input.ProjectTitle
		found.ServiceType = input.ServiceType
		found.Description = input.Description
		if input.Quantity >= 1 {
			found.Quantity = input.Quantity
		}
		if input.Urgency != "" {
			if !input.Urgency.IsValid() {
				return domainerrors.ErrValidationFailed.WithDetails("unknown urgency: " + string(input.Urgency))
			}
			found.Urgency = input.Urgency
		}
		found.CustomDimensions = input.CustomDimensions
		found.PreferredMaterials = input.PreferredMaterials
		found.AdditionalRequirements = input.AdditionalRequirements
		found.BudgetRangeMin = input.BudgetRangeMin
		found.BudgetRangeMax = input.BudgetRangeMax
		found.RequiredBy = input.RequiredBy
		found.UpdatedAt = srv.clock.Now()

		if err := quotationRepo.UpdateQuotation(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update quotation")
		}
		quotation = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return quotation, nil
}

// SubmitQuote writes quote details and moves the request to quoted. The
// quoted timestamp is stamped exactly once, on the first entry.
func (srv *quotationService) SubmitQuote(ctx context.Context, actor policy.Actor, id uuid.UUID, input *usecase.QuoteInput) (*entity.QuotationRequest, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}
	srv.log(ctx).Info("Submitting quote", "quotationID", id, "actorID", actor.ID)

	var quotation *entity.QuotationRequest
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		quotationRepo := repoFactory.QuotationRepo()

		found, err := srv.findQuotation(ctx, quotationRepo, id)
		if err != nil {
			return err
		}

		if err := found.AdminTransition(entity.QuotationQuoted, srv.clock.Now()); err != nil {
			return srv.transitionError(err)
		}

		price := input.QuotedPrice
		found.QuotedPrice = &price
		found.FinalAdjustedPrice = input.FinalAdjustedPrice
		found.QuotedDeliveryTime = input.QuotedDeliveryTime
		found.AdminNotes = input.AdminNotes
		found.QuoteValidUntil = input.QuoteValidUntil
		found.UpdatedAt = srv.clock.Now()

		if err := quotationRepo.UpdateQuotation(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update quotation")
		}
		quotation = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return quotation, nil
}

// ChangeStatus moves the request along its lifecycle on the administrative path.
func (srv *quotationService) ChangeStatus(ctx context.Context, actor policy.Actor, id uuid.UUID, next entity.QuotationStatus) (*entity.QuotationRequest, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}
	srv.log(ctx).Info("Changing quotation status", "quotationID", id, "next", next)

	var quotation *entity.QuotationRequest
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		quotationRepo := repoFactory.QuotationRepo()

		found, err := srv.findQuotation(ctx, quotationRepo, id)
		if err != nil {
			return err
		}

		if err := found.AdminTransition(next, srv.clock.Now()); err != nil {
			return srv.transitionError(err)
		}
		found.UpdatedAt = srv.clock.Now()

		if err := quotationRepo.UpdateQuotation(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update quotation")
		}
		quotation = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return quotation, nil
}

// RespondToQuote records the owner's decision on a quoted request.
func (srv *quotationService) RespondToQuote(ctx context.Context, actor policy.Actor, id uuid.UUID, accept bool) (*entity.QuotationRequest, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	next := entity.QuotationRejected
	if accept {
		next = entity.QuotationAccepted
	}

	var quotation *entity.QuotationRequest
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		quotationRepo := repoFactory.QuotationRepo()

		found, err := srv.findQuotation(ctx, quotationRepo, id)
		if err != nil {
			return err
		}
		if !found.Requester.OwnedBy(actor.ID) {
			return domainerrors.ErrForbidden
		}

		// The owner path uses the plain state machine: only quoted requests
		// can be answered, and there is no staff override.
		if err := found.Transition(next); err != nil {
			return srv.transitionError(err)
		}
		found.UpdatedAt = srv.clock.Now()

		if err := quotationRepo.UpdateQuotation(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update quotation")
		}
		quotation = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return quotation, nil
}

// AddAttachment stores an uploaded reference file and links it to the request.
func (srv *quotationService) AddAttachment(ctx context.Context, actor policy.Actor, id uuid.UUID, input *usecase.AttachmentInput) (*entity.QuotationAttachment, error) {
	var attachment *entity.QuotationAttachment
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		quotationRepo := repoFactory.QuotationRepo()

		found, err := srv.findQuotation(ctx, quotationRepo, id)
		if err != nil {
			return err
		}
		if err := srv.guardRead(actor, found); err != nil {
			return err
		}
		if err := found.GuardOwnerEdit(); err != nil && !actor.IsStaffOrAdmin() {
			return srv.transitionError(err)
		}

		stored, err := srv.fileStorage.Save(ctx, "quotations/"+id.String(), input.FileName, input.ContentType, input.Content)
		if err != nil {
			return errors.Wrap(err, "failed to store attachment")
		}

		attachment = &entity.QuotationAttachment{
			ID:          uuid.New(),
			QuotationID: id,
			File:        stored.Key,
			FileName:    input.FileName,
			Description: input.Description,
			UploadedAt:  srv.clock.Now(),
		}

		return errors.Wrap(quotationRepo.AddAttachment(ctx, attachment), "failed to link attachment")
	})
	if err != nil {
		return nil, err
	}

	return attachment, nil
}

// DeleteQuotation removes a request entirely. Owners may delete their own
// requests; admins may delete any.
func (srv *quotationService) DeleteQuotation(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return err
	}
	srv.log(ctx).Info("Deleting quotation", "quotationID", id, "actorID", actor.ID)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		quotationRepo := repoFactory.QuotationRepo()

		found, err := srv.findQuotation(ctx, quotationRepo, id)
		if err != nil {
			return err
		}
		if !found.Requester.OwnedBy(actor.ID) && !actor.IsAdmin() {
			return domainerrors.ErrForbidden
		}

		if err := quotationRepo.DeleteQuotation(ctx, id); err != nil {
			if errors.Is(err, repository.ErrQuotationNotFound) {
				return domainerrors.ErrQuotationNotFound
			}

			return errors.Wrap(err, "failed to delete quotation")
		}

		return nil
	})
}

// --- helpers ---

func (srv *quotationService) findQuotation(ctx context.Context, quotationRepo repository.QuotationRepository, id uuid.UUID) (*entity.QuotationRequest, error) {
	quotation, err := quotationRepo.FindQuotationByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrQuotationNotFound) {
			return nil, domainerrors.ErrQuotationNotFound
		}

		return nil, errors.Wrap(err, "failed to find quotation")
	}

	return quotation, nil
}

// guardRead allows staff and the owning user. Guest requests are only
// reachable through staff.
func (srv *quotationService) guardRead(actor policy.Actor, quotation *entity.QuotationRequest) error {
	if actor.IsStaffOrAdmin() {
		return nil
	}
	if err := policy.RequireAuthenticated(actor); err != nil {
		return err
	}
	if !quotation.Requester.OwnedBy(actor.ID) {
		return domainerrors.ErrForbidden
	}

	return nil
}

// transitionError maps a state machine rejection onto the API error taxonomy,
// carrying the current state and the rejected action as details.
func (srv *quotationService) transitionError(err error) error {
	var transitionErr *entity.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return domainerrors.ErrInvalidStateTransition.WithDetails(transitionErr.Error())
	}

	return err
}
