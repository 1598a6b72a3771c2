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

// quotationRepository implements the repository.QuotationRepository interface using GORM.
type quotationRepository struct {
	db *gorm.DB
}

// NewQuotationRepository is the constructor for quotationRepository.
func NewQuotationRepository(db *gorm.DB) repository.QuotationRepository {
	return &quotationRepository{db: db}
}

// CreateQuotation persists a new quotation request with its attachments.
func (repo *quotationRepository) CreateQuotation(ctx context.Context, quotation *entity.QuotationRequest) error {
	quotationM := fromQuotationDomain(quotation)

	if err := repo.db.WithContext(ctx).Create(quotationM).Error; err != nil {
		return errors.Wrap(err, "failed to create quotation request")
	}

	quotation.CreatedAt = quotationM.CreatedAt
	quotation.UpdatedAt = quotationM.UpdatedAt

	return nil
}

// FindQuotationByID retrieves a quotation request with its attachments.
func (repo *quotationRepository) FindQuotationByID(ctx context.Context, id uuid.UUID) (*entity.QuotationRequest, error) {
	var quotationM model.QuotationRequestModel
	err := repo.db.WithContext(ctx).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("uploaded_at ASC")
		}).
		First(&quotationM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrQuotationNotFound
		}

		return nil, errors.Wrap(err, "failed to find quotation request by id")
	}

	return toQuotationDomain(&quotationM), nil
}

// ListQuotations retrieves quotation requests matching the filter, newest first.
func (repo *quotationRepository) ListQuotations(ctx context.Context, filter repository.QuotationFilter) ([]*entity.QuotationRequest, error) {
	query := repo.db.WithContext(ctx).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("uploaded_at ASC")
		}).
		Model(&model.QuotationRequestModel{})

	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.QuoteType != "" {
		query = query.Where("quote_type = ?", string(filter.QuoteType))
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var quotationMs []*model.QuotationRequestModel
	if err := query.Order("created_at DESC").Find(&quotationMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list quotation requests")
	}

	quotations := make([]*entity.QuotationRequest, 0, len(quotationMs))
	for _, quotationM := range quotationMs {
		quotations = append(quotations, toQuotationDomain(quotationM))
	}

	return quotations, nil
}

// UpdateQuotation updates an existing quotation request record, including its
// status and quote fields.
func (repo *quotationRepository) UpdateQuotation(ctx context.Context, quotation *entity.QuotationRequest) error {
	quotationM := fromQuotationDomain(quotation)

	result := repo.db.WithContext(ctx).
		Model(&model.QuotationRequestModel{}).
		Where("id = ?", quotation.ID).
		Select("*").
		Omit("id", "created_at", "Attachments").
		Updates(quotationM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update quotation request")
	}
	if result.RowsAffected == 0 {
		return repository.ErrQuotationNotFound
	}

	return nil
}

// DeleteQuotation removes a quotation request by its ID. Attachments cascade.
func (repo *quotationRepository) DeleteQuotation(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.QuotationRequestModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete quotation request")
	}
	if result.RowsAffected == 0 {
		return repository.ErrQuotationNotFound
	}

	return nil
}

// AddAttachment attaches an uploaded file reference to a quotation request.
func (repo *quotationRepository) AddAttachment(ctx context.Context, attachment *entity.QuotationAttachment) error {
	attachmentM := fromQuotationAttachmentDomain(attachment)

	if err := repo.db.WithContext(ctx).Create(attachmentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrQuotationNotFound
		}

		return errors.Wrap(err, "failed to add quotation attachment")
	}

	return nil
}

// RemoveAttachment removes an attachment by its ID.
func (repo *quotationRepository) RemoveAttachment(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.QuotationAttachmentModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to remove quotation attachment")
	}
	if result.RowsAffected == 0 {
		return repository.ErrQuotationNotFound
	}

	return nil
}

// toQuotationDomain maps a persistence model back to a pure domain entity.
func toQuotationDomain(quotationM *model.QuotationRequestModel) *entity.QuotationRequest {
	quotation := &entity.QuotationRequest{
		ID: quotationM.ID,
		Requester: entity.Requester{
			UserID:     quotationM.UserID,
			GuestName:  quotationM.GuestName,
			GuestEmail: quotationM.GuestEmail,
			GuestPhone: quotationM.GuestPhone,
		},
		ProductID:              quotationM.ProductID,
		ServiceID:              quotationM.ServiceID,
		QuoteType:              entity.QuoteType(quotationM.QuoteType),
		ProjectTitle:           quotationM.ProjectTitle,
		ServiceType:            quotationM.ServiceType,
		Description:            quotationM.Description,
		Quantity:               quotationM.Quantity,
		Urgency:                entity.QuotationUrgency(quotationM.Urgency),
		CustomDimensions:       quotationM.CustomDimensions,
		PreferredMaterials:     quotationM.PreferredMaterials,
		AdditionalRequirements: quotationM.AdditionalRequirements,
		BudgetRangeMin:         quotationM.BudgetRangeMin,
		BudgetRangeMax:         quotationM.BudgetRangeMax,
		RequiredBy:             quotationM.RequiredBy,
		Status:                 entity.QuotationStatus(quotationM.Status),
		QuotedPrice:            quotationM.QuotedPrice,
		FinalAdjustedPrice:     quotationM.FinalAdjustedPrice,
		QuotedDeliveryTime:     quotationM.QuotedDeliveryTime,
		AdminNotes:             quotationM.AdminNotes,
		QuoteValidUntil:        quotationM.QuoteValidUntil,
		CreatedAt:              quotationM.CreatedAt,
		UpdatedAt:              quotationM.UpdatedAt,
		QuotedAt:               quotationM.QuotedAt,
	}
	for _, attachmentM := range quotationM.Attachments {
		quotation.Attachments = append(quotation.Attachments, toQuotationAttachmentDomain(attachmentM))
	}

	return quotation
}

// fromQuotationDomain maps a pure domain entity to a persistence model.
// Attachments are managed through AddAttachment and RemoveAttachment.
func fromQuotationDomain(quotation *entity.QuotationRequest) *model.QuotationRequestModel {
	return &model.QuotationRequestModel{
		ID:                     quotation.ID,
		UserID:                 quotation.Requester.UserID,
		GuestName:              quotation.Requester.GuestName,
		GuestEmail:             quotation.Requester.GuestEmail,
		GuestPhone:             quotation.Requester.GuestPhone,
		ProductID:              quotation.ProductID,
		ServiceID:              quotation.ServiceID,
		QuoteType:              string(quotation.QuoteType),
		ProjectTitle:           quotation.ProjectTitle,
		ServiceType:            quotation.ServiceType,
		Description:            quotation.Description,
		Quantity:               quotation.Quantity,
		Urgency:                string(quotation.Urgency),
		CustomDimensions:       quotation.CustomDimensions,
		PreferredMaterials:     quotation.PreferredMaterials,
		AdditionalRequirements: quotation.AdditionalRequirements,
		BudgetRangeMin:         quotation.BudgetRangeMin,
		BudgetRangeMax:         quotation.BudgetRangeMax,
		RequiredBy:             quotation.RequiredBy,
		Status:                 string(quotation.Status),
		QuotedPrice:            quotation.QuotedPrice,
		FinalAdjustedPrice:     quotation.FinalAdjustedPrice,
		QuotedDeliveryTime:     quotation.QuotedDeliveryTime,
		AdminNotes:             quotation.AdminNotes,
		QuoteValidUntil:        quotation.QuoteValidUntil,
		CreatedAt:              quotation.CreatedAt,
		UpdatedAt:              quotation.UpdatedAt,
		QuotedAt:               quotation.QuotedAt,
	}
}

func toQuotationAttachmentDomain(attachmentM *model.QuotationAttachmentModel) *entity.QuotationAttachment {
	return &entity.QuotationAttachment{
		ID:          attachmentM.ID,
		QuotationID: attachmentM.QuotationID,
		File:        attachmentM.File,
		FileName:    attachmentM.FileName,
		Description: attachmentM.Description,
		UploadedAt:  attachmentM.UploadedAt,
	}
}

func fromQuotationAttachmentDomain(attachment *entity.QuotationAttachment) *model.QuotationAttachmentModel {
	return &model.QuotationAttachmentModel{
		ID:          attachment.ID,
		QuotationID: attachment.QuotationID,
		File:        attachment.File,
		FileName:    attachment.FileName,
		Description: attachment.Description,
		UploadedAt:  attachment.UploadedAt,
	}
}
