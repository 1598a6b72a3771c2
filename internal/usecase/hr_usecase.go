package usecase

import (
	"context"
	"time"

	"forge/internal/domain/entity"
	"forge/internal/domain/policy"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HRUsecase defines the interface for staff administration: profiles,
// attendance and payroll. The whole surface is admin-only except the
// self-service attendance operations, which staff use for themselves.
type HRUsecase interface {
	// --- Profiles ---

	CreateStaffProfile(ctx context.Context, actor policy.Actor, input *StaffProfileInput) (*entity.StaffProfile, error)
	GetStaffProfile(ctx context.Context, actor policy.Actor, id uuid.UUID) (*entity.StaffProfile, error)
	ListStaffProfiles(ctx context.Context, actor policy.Actor, activeOnly bool) ([]*entity.StaffProfile, error)
	UpdateStaffProfile(ctx context.Context, actor policy.Actor, id uuid.UUID, input *StaffProfileInput) (*entity.StaffProfile, error)

	// DeactivateStaffProfile soft-disables a profile; records are preserved.
	DeactivateStaffProfile(ctx context.Context, actor policy.Actor, id uuid.UUID) error

	// --- Attendance ---

	// ClockIn opens today's attendance record for the calling staff member.
	// A second clock-in on the same day fails with a conflict.
	ClockIn(ctx context.Context, actor policy.Actor) (*entity.Attendance, error)

	// ClockOut closes today's open attendance record.
	ClockOut(ctx context.Context, actor policy.Actor) (*entity.Attendance, error)

	// RecordAttendance lets an admin write an attendance row directly,
	// e.g. to mark absence or leave.
	RecordAttendance(ctx context.Context, actor policy.Actor, input *AttendanceInput) (*entity.Attendance, error)

	// ListAttendance retrieves a staff member's records within a date range.
	ListAttendance(ctx context.Context, actor policy.Actor, staffID uuid.UUID, from, to time.Time) ([]*entity.Attendance, error)

	// --- Payroll ---

	// GeneratePayroll computes and stores a month's pay for a staff member.
	GeneratePayroll(ctx context.Context, actor policy.Actor, input *PayrollInput) (*entity.Payroll, error)

	// MarkPayrollPaid records the disbursement of a payroll entry.
	MarkPayrollPaid(ctx context.Context, actor policy.Actor, payrollID uuid.UUID, paymentMethod string) (*entity.Payroll, error)

	// ListPayrolls retrieves a staff member's payroll history, newest first.
	ListPayrolls(ctx context.Context, actor policy.Actor, staffID uuid.UUID) ([]*entity.Payroll, error)
}

// --- Input DTOs ---

// StaffProfileInput defines the data for creating or updating a staff profile.
type StaffProfileInput struct {
	UserID      uuid.UUID        `json:"user_id"`
	StaffType   entity.StaffType `json:"staff_type"`
	Designation string           `json:"designation"`
	JoiningDate *time.Time       `json:"joining_date,omitempty"`

	PhoneNumber           string `json:"phone_number,omitempty"`
	EmergencyContact      string `json:"emergency_contact,omitempty"`
	CitizenshipNumber     string `json:"citizenship_number,omitempty"`
	PANNumber             string `json:"pan_number,omitempty"`
	InsurancePolicyNumber string `json:"insurance_policy_number,omitempty"`

	BaseSalary decimal.Decimal `json:"base_salary"`

	// Storage references from prior uploads.
	CitizenshipFront string `json:"citizenship_front,omitempty"`
	CitizenshipBack  string `json:"citizenship_back,omitempty"`
	InsuranceDoc     string `json:"insurance_doc,omitempty"`
	ContractDoc      string `json:"contract_doc,omitempty"`
	ProfilePicture   string `json:"profile_picture,omitempty"`
}

// AttendanceInput defines an administratively recorded attendance row.
type AttendanceInput struct {
	StaffID  uuid.UUID               `json:"staff_id"`
	Date     time.Time               `json:"date"`
	ClockIn  string                  `json:"clock_in,omitempty"`  // "HH:MM".
	ClockOut string                  `json:"clock_out,omitempty"` // "HH:MM".
	Status   entity.AttendanceStatus `json:"status"`
	Remark   string                  `json:"remark,omitempty"`
}

// PayrollInput defines the data for generating a month's payroll.
type PayrollInput struct {
	StaffID    uuid.UUID       `json:"staff_id"`
	Month      int             `json:"month"` // 1..12.
	Year       int             `json:"year"`
	Bonus      decimal.Decimal `json:"bonus"`
	Deductions decimal.Decimal `json:"deductions"`
}
