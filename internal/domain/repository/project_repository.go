package repository

import (
	"context"
	"errors"

	"forge/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for project persistence.
var (
	// ErrProjectNotFound is returned when a project is not found.
	ErrProjectNotFound = errors.New("project not found")
	// ErrAssignmentNotFound is returned when a project assignment is not found.
	ErrAssignmentNotFound = errors.New("project assignment not found")
	// ErrDuplicateAssignment is returned when the staff member is already on the project.
	ErrDuplicateAssignment = errors.New("staff member is already assigned to this project")
	// ErrPaymentNotFound is returned when a project payment is not found.
	ErrPaymentNotFound = errors.New("project payment not found")
)

// ProjectRepository defines persistence operations for internal projects,
// assignments and payments.
type ProjectRepository interface {
	// CreateProject persists a new project.
	CreateProject(ctx context.Context, project *entity.Project) error

	// FindProjectByID retrieves a project with its assignments and payments.
	FindProjectByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)

	// ListProjects retrieves projects, optionally filtered by status, newest first.
	ListProjects(ctx context.Context, status entity.ProjectStatus) ([]*entity.Project, error)

	// UpdateProject updates an existing project record.
	UpdateProject(ctx context.Context, project *entity.Project) error

	// DeleteProject removes a project by its ID.
	DeleteProject(ctx context.Context, id uuid.UUID) error

	// CreateAssignment places a staff member on a project.
	// Returns ErrDuplicateAssignment when they are already on it.
	CreateAssignment(ctx context.Context, assignment *entity.ProjectAssignment) error

	// FindAssignmentByID retrieves an assignment with its payments.
	FindAssignmentByID(ctx context.Context, id uuid.UUID) (*entity.ProjectAssignment, error)

	// ListAssignmentsByStaff retrieves every assignment of a staff member.
	ListAssignmentsByStaff(ctx context.Context, staffID uuid.UUID) ([]*entity.ProjectAssignment, error)

	// UpdateAssignment updates an existing assignment record.
	UpdateAssignment(ctx context.Context, assignment *entity.ProjectAssignment) error

	// RemoveAssignment takes a staff member off a project.
	RemoveAssignment(ctx context.Context, id uuid.UUID) error

	// CreatePayment records a disbursement against an assignment.
	CreatePayment(ctx context.Context, payment *entity.ProjectPayment) error

	// FindPaymentByID retrieves a payment record by its unique ID.
	FindPaymentByID(ctx context.Context, id uuid.UUID) (*entity.ProjectPayment, error)

	// UpdatePayment updates an existing payment record, typically to confirm it.
	UpdatePayment(ctx context.Context, payment *entity.ProjectPayment) error
}
