package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectStatus is the lifecycle state of an internal project.
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// IsValid checks if the ProjectStatus is a valid value.
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled:
		return true
	default:
		return false
	}
}

// Project is an internal client project staffed from the HR roster.
type Project struct {
	ID          uuid.UUID
	Title       string
	Description string
	ClientName  string
	StartDate   time.Time
	Deadline    time.Time
	Status      ProjectStatus
	TotalBudget decimal.Decimal
	IsPrivate   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Assignments []*ProjectAssignment
}

// ProjectAssignment places a staff member on a project.
type ProjectAssignment struct {
	ID            uuid.UUID
	ProjectID     uuid.UUID
	StaffID       uuid.UUID
	RoleInProject string
	AssignedAt    time.Time

	// Total agreed payment for the project; used for freelancers,
	// optionally as a bonus for full-time staff.
	AgreedPayment *decimal.Decimal

	PerformanceRating *int // 1..10, set after completion.
	PerformanceNotes  string

	Payments []*ProjectPayment
}

// ValidRating reports whether the performance rating is within 1..10.
func (a *ProjectAssignment) ValidRating() bool {
	return a.PerformanceRating == nil || (*a.PerformanceRating >= 1 && *a.PerformanceRating <= 10)
}

// PaidTotal sums the confirmed payments on this assignment.
func (a *ProjectAssignment) PaidTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range a.Payments {
		if p.IsConfirmed {
			total = total.Add(p.Amount)
		}
	}

	return total
}

// ProjectPayment is one disbursement against an assignment.
type ProjectPayment struct {
	ID           uuid.UUID
	AssignmentID uuid.UUID
	Amount       decimal.Decimal
	PaymentDate  time.Time
	Description  string // e.g. "Advance", "Phase 1 Completion".
	IsConfirmed  bool
}
