package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationStatus is the lifecycle state of a quotation request.
type QuotationStatus string

const (
	// QuotationPending is the initial state of every request.
	QuotationPending QuotationStatus = "pending"
	// QuotationReviewing means staff have picked the request up.
	QuotationReviewing QuotationStatus = "reviewing"
	// QuotationQuoted means a quote has been sent to the requester.
	QuotationQuoted QuotationStatus = "quoted"
	// QuotationAccepted means the requester accepted the quote.
	QuotationAccepted QuotationStatus = "accepted"
	// QuotationRejected means the requester declined the quote. Terminal.
	QuotationRejected QuotationStatus = "rejected"
	// QuotationCompleted means the quoted work was fulfilled. Terminal.
	QuotationCompleted QuotationStatus = "completed"
	// QuotationExpired means the quote lapsed without a decision. Terminal.
	QuotationExpired QuotationStatus = "expired"
)

// IsValid checks if the QuotationStatus is a valid value.
func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationPending, QuotationReviewing, QuotationQuoted,
		QuotationAccepted, QuotationRejected, QuotationCompleted, QuotationExpired:
		return true
	default:
		return false
	}
}

// String returns the string representation of the QuotationStatus.
func (s QuotationStatus) String() string {
	return string(s)
}

// quotationTransitions lists the status transitions available to the
// requester. The administrative path is not bound by this table; see
// QuotationRequest.AdminTransition.
var quotationTransitions = map[QuotationStatus][]QuotationStatus{
	QuotationPending:   {QuotationReviewing},
	QuotationReviewing: {QuotationQuoted},
	QuotationQuoted:    {QuotationAccepted, QuotationRejected, QuotationExpired},
	QuotationAccepted:  {QuotationCompleted},
}

// QuotationUrgency expresses how urgently the requester needs the work.
type QuotationUrgency string

const (
	UrgencyLow    QuotationUrgency = "low"
	UrgencyMedium QuotationUrgency = "medium"
	UrgencyHigh   QuotationUrgency = "high"
	UrgencyUrgent QuotationUrgency = "urgent"
)

// IsValid checks if the QuotationUrgency is a valid value.
func (u QuotationUrgency) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyUrgent:
		return true
	default:
		return false
	}
}

// QuoteType distinguishes quick price checks from full production quotes.
type QuoteType string

const (
	QuoteTypeInstant    QuoteType = "instant"
	QuoteTypeProduction QuoteType = "production"
)

// IsValid checks if the QuoteType is a valid value.
func (t QuoteType) IsValid() bool {
	switch t {
	case QuoteTypeInstant, QuoteTypeProduction:
		return true
	default:
		return false
	}
}

// Requester identifies who filed a quotation request: either a registered
// account or a guest who supplied contact details. Exactly one mode holds.
type Requester struct {
	UserID     *uuid.UUID // Set for registered requesters.
	GuestName  string     // Guest contact fields, set only when UserID is nil.
	GuestEmail string
	GuestPhone string
}

// RegisteredRequester builds a Requester for a logged-in account.
func RegisteredRequester(userID uuid.UUID) Requester {
	return Requester{UserID: &userID}
}

// GuestRequester builds a Requester from guest contact details.
func GuestRequester(name, email, phone string) Requester {
	return Requester{GuestName: name, GuestEmail: email, GuestPhone: phone}
}

// IsRegistered reports whether the request belongs to a registered account.
func (r Requester) IsRegistered() bool {
	return r.UserID != nil
}

// Valid reports whether exactly one identity mode is populated.
func (r Requester) Valid() bool {
	if r.UserID != nil {
		return r.GuestName == "" && r.GuestEmail == "" && r.GuestPhone == ""
	}

	return r.GuestName != "" && r.GuestEmail != ""
}

// OwnedBy reports whether the given account owns this request. Guest requests
// are owned by nobody.
func (r Requester) OwnedBy(userID uuid.UUID) bool {
	return r.UserID != nil && *r.UserID == userID
}

// QuotationRequest is a customer's request for a price quote.
type QuotationRequest struct {
	ID        uuid.UUID
	Requester Requester

	ProductID *uuid.UUID // Optional reference to a catalog product.
	ServiceID *uuid.UUID // Optional reference to a store service.
	QuoteType QuoteType

	ProjectTitle           string
	ServiceType            string
	Description            string
	Quantity               int // >= 1.
	Urgency                QuotationUrgency
	CustomDimensions       string
	PreferredMaterials     string
	AdditionalRequirements string

	BudgetRangeMin *decimal.Decimal
	BudgetRangeMax *decimal.Decimal
	RequiredBy     *time.Time

	Status QuotationStatus

	// Quote details, writable only through the administrative path.
	QuotedPrice        *decimal.Decimal
	FinalAdjustedPrice *decimal.Decimal
	QuotedDeliveryTime string
	AdminNotes         string
	QuoteValidUntil    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	QuotedAt  *time.Time // Stamped exactly once, on the transition into quoted.

	Attachments []*QuotationAttachment
}

// OwnerEditable reports whether the requester may still edit descriptive fields.
func (q *QuotationRequest) OwnerEditable() bool {
	return q.Status == QuotationPending || q.Status == QuotationReviewing
}

// GuardOwnerEdit returns a typed transition error when the requester may no
// longer edit descriptive fields.
func (q *QuotationRequest) GuardOwnerEdit() error {
	if !q.OwnerEditable() {
		return errQuotationOwnerEdit(q.Status)
	}

	return nil
}

// CanTransition reports whether the regular state machine allows moving to next.
func (q *QuotationRequest) CanTransition(next QuotationStatus) bool {
	for _, allowed := range quotationTransitions[q.Status] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Transition moves the request to next on the requester path, enforcing the
// transition table. There is no staff override here.
func (q *QuotationRequest) Transition(next QuotationStatus) error {
	if !q.CanTransition(next) {
		return errQuotationTransition(q.Status, next)
	}
	q.Status = next

	return nil
}

// AdminTransition moves the request to next on the administrative path and
// stamps QuotedAt on the first entry into quoted. Staff may set any valid
// status regardless of the current one; only the requester path is bound to
// the transition table.
func (q *QuotationRequest) AdminTransition(next QuotationStatus, now time.Time) error {
	if !next.IsValid() {
		return errInvalidQuotationStatus(next)
	}
	if next == q.Status {
		return nil
	}

	q.Status = next
	if next == QuotationQuoted && q.QuotedAt == nil {
		stamped := now
		q.QuotedAt = &stamped
	}

	return nil
}
