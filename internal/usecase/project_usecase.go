package usecase

import (
	"context"
	"time"

	"forge/internal/domain/entity"
	"forge/internal/domain/policy"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectUsecase defines the interface for internal project tracking:
// client projects, staff assignments and payments. Admin-only, except that
// staff may view projects they are assigned to.
type ProjectUsecase interface {
	CreateProject(ctx context.Context, actor policy.Actor, input *ProjectInput) (*entity.Project, error)
	GetProject(ctx context.Context, actor policy.Actor, id uuid.UUID) (*entity.Project, error)
	ListProjects(ctx context.Context, actor policy.Actor, status entity.ProjectStatus) ([]*entity.Project, error)
	UpdateProject(ctx context.Context, actor policy.Actor, id uuid.UUID, input *ProjectInput) (*entity.Project, error)
	DeleteProject(ctx context.Context, actor policy.Actor, id uuid.UUID) error

	// AssignStaff places a staff member on a project. Assigning the same
	// staff member twice fails with a conflict.
	AssignStaff(ctx context.Context, actor policy.Actor, projectID uuid.UUID, input *AssignmentInput) (*entity.ProjectAssignment, error)

	// RemoveAssignment takes a staff member off a project.
	RemoveAssignment(ctx context.Context, actor policy.Actor, assignmentID uuid.UUID) error

	// RateAssignment records a post-completion performance rating (1..10).
	RateAssignment(ctx context.Context, actor policy.Actor, assignmentID uuid.UUID, input *RatingInput) (*entity.ProjectAssignment, error)

	// RecordPayment records a disbursement against an assignment.
	RecordPayment(ctx context.Context, actor policy.Actor, assignmentID uuid.UUID, input *PaymentInput) (*entity.ProjectPayment, error)

	// ConfirmPayment marks a recorded payment as disbursed.
	ConfirmPayment(ctx context.Context, actor policy.Actor, paymentID uuid.UUID) error

	// BudgetSummary reports money committed and disbursed against the
	// project budget. Visible to the same actors as GetProject.
	BudgetSummary(ctx context.Context, actor policy.Actor, projectID uuid.UUID) (*ProjectBudgetSummary, error)
}

// ProjectBudgetSummary aggregates assignment commitments and confirmed
// payments on one project.
type ProjectBudgetSummary struct {
	ProjectID   uuid.UUID       `json:"project_id"`
	TotalBudget decimal.Decimal `json:"total_budget"`
	AgreedTotal decimal.Decimal `json:"agreed_total"`
	PaidTotal   decimal.Decimal `json:"paid_total"`
	Remaining   decimal.Decimal `json:"remaining"`
}

// --- Input DTOs ---

// ProjectInput defines the data for creating or updating a project.
type ProjectInput struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	ClientName  string               `json:"client_name"`
	StartDate   time.Time            `json:"start_date"`
	Deadline    time.Time            `json:"deadline"`
	Status      entity.ProjectStatus `json:"status"`
	TotalBudget decimal.Decimal      `json:"total_budget"`
	IsPrivate   *bool                `json:"is_private,omitempty"`
}

// AssignmentInput defines the data for placing a staff member on a project.
type AssignmentInput struct {
	StaffID       uuid.UUID        `json:"staff_id"`
	RoleInProject string           `json:"role_in_project"`
	AgreedPayment *decimal.Decimal `json:"agreed_payment,omitempty"`
}

// RatingInput defines a post-completion performance rating.
type RatingInput struct {
	Rating int    `json:"rating"` // 1..10.
	Notes  string `json:"notes,omitempty"`
}

// PaymentInput defines a disbursement against an assignment.
type PaymentInput struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Description string          `json:"description,omitempty"`
}
