package usecase

import (
	"context"
	"io"
	"time"

	"forge/internal/domain/entity"
	"forge/internal/domain/policy"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationUsecase defines the interface for the quotation request workflow.
// Requests can be filed by registered users or guests; staff review them and
// issue quotes through the administrative operations.
type QuotationUsecase interface {
	// CreateQuotation files a new request. Authenticated actors own the
	// request; anonymous actors must supply guest contact details.
	CreateQuotation(ctx context.Context, actor policy.Actor, input *QuotationInput) (*entity.QuotationRequest, error)

	// GetQuotation retrieves a request. Owners see their own; staff see all.
	GetQuotation(ctx context.Context, actor policy.Actor, id uuid.UUID) (*entity.QuotationRequest, error)

	// ListQuotations retrieves requests. Regular users see only their own;
	// staff see all, optionally filtered by status.
	ListQuotations(ctx context.Context, actor policy.Actor, status entity.QuotationStatus) ([]*entity.QuotationRequest, error)

	// UpdateQuotation lets the owner revise descriptive fields while the
	// request is still pending or reviewing.
	UpdateQuotation(ctx context.Context, actor policy.Actor, id uuid.UUID, input *QuotationInput) (*entity.QuotationRequest, error)

	// SubmitQuote writes quote details and moves the request to quoted,
	// stamping the quoted time on the first entry.
	SubmitQuote(ctx context.Context, actor policy.Actor, id uuid.UUID, input *QuoteInput) (*entity.QuotationRequest, error)

	// ChangeStatus moves the request along its lifecycle on the
	// administrative path.
	ChangeStatus(ctx context.Context, actor policy.Actor, id uuid.UUID, next entity.QuotationStatus) (*entity.QuotationRequest, error)

	// RespondToQuote records the owner's decision on a quoted request:
	// accepted or rejected.
	RespondToQuote(ctx context.Context, actor policy.Actor, id uuid.UUID, accept bool) (*entity.QuotationRequest, error)

	// AddAttachment uploads a reference file onto the request. Allowed while
	// the owner may still edit it.
	AddAttachment(ctx context.Context, actor policy.Actor, id uuid.UUID, input *AttachmentInput) (*entity.QuotationAttachment, error)

	// DeleteQuotation removes a request entirely. Owner or admin.
	DeleteQuotation(ctx context.Context, actor policy.Actor, id uuid.UUID) error
}

// --- Input DTOs ---

// QuotationInput defines the data for filing or revising a quotation request.
type QuotationInput struct {
	// Guest contact details, required when the caller is anonymous.
	GuestName  string `json:"guest_name,omitempty"`
	GuestEmail string `json:"guest_email,omitempty"`
	GuestPhone string `json:"guest_phone,omitempty"`

	ProductID *uuid.UUID       `json:"product_id,omitempty"`
	ServiceID *uuid.UUID       `json:"service_id,omitempty"`
	QuoteType entity.QuoteType `json:"quote_type"`

	ProjectTitle           string                  `json:"project_title"`
	ServiceType            string                  `json:"service_type"`
	Description            string                  `json:"description"`
	Quantity               int                     `json:"quantity"`
	Urgency                entity.QuotationUrgency `json:"urgency"`
	CustomDimensions       string                  `json:"custom_dimensions,omitempty"`
	PreferredMaterials     string                  `json:"preferred_materials,omitempty"`
	AdditionalRequirements string                  `json:"additional_requirements,omitempty"`

	BudgetRangeMin *decimal.Decimal `json:"budget_range_min,omitempty"`
	BudgetRangeMax *decimal.Decimal `json:"budget_range_max,omitempty"`
	RequiredBy     *time.Time       `json:"required_by,omitempty"`
}

// QuoteInput defines the quote details staff attach to a request.
type QuoteInput struct {
	QuotedPrice        decimal.Decimal  `json:"quoted_price"`
	FinalAdjustedPrice *decimal.Decimal `json:"final_adjusted_price,omitempty"`
	QuotedDeliveryTime string           `json:"quoted_delivery_time"`
	AdminNotes         string           `json:"admin_notes,omitempty"`
	QuoteValidUntil    *time.Time       `json:"quote_valid_until,omitempty"`
}

// AttachmentInput defines an uploaded reference file.
type AttachmentInput struct {
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Description string    `json:"description,omitempty"`
	Content     io.Reader `json:"-"`
}
