package repository

import (
	"context"
	"errors"

	"forge/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrQuotationNotFound is returned when a quotation request is not found.
var ErrQuotationNotFound = errors.New("quotation request not found")

// QuotationFilter narrows quotation listings.
type QuotationFilter struct {
	Status    entity.QuotationStatus // Zero value means all statuses.
	QuoteType entity.QuoteType
	UserID    *uuid.UUID // Restrict to one requester's requests.
}

// QuotationRepository defines quotation request persistence operations.
type QuotationRepository interface {
	// CreateQuotation persists a new quotation request with its attachments.
	CreateQuotation(ctx context.Context, quotation *entity.QuotationRequest) error

	// FindQuotationByID retrieves a quotation request with its attachments.
	FindQuotationByID(ctx context.Context, id uuid.UUID) (*entity.QuotationRequest, error)

	// ListQuotations retrieves quotation requests matching the filter, newest first.
	ListQuotations(ctx context.Context, filter QuotationFilter) ([]*entity.QuotationRequest, error)

	// UpdateQuotation updates an existing quotation request record, including
	// its status and quote fields.
	UpdateQuotation(ctx context.Context, quotation *entity.QuotationRequest) error

	// DeleteQuotation removes a quotation request by its ID.
	DeleteQuotation(ctx context.Context, id uuid.UUID) error

	// AddAttachment attaches an uploaded file reference to a quotation request.
	AddAttachment(ctx context.Context, attachment *entity.QuotationAttachment) error

	// RemoveAttachment removes an attachment by its ID.
	RemoveAttachment(ctx context.Context, id uuid.UUID) error
}
