package repository

import (
	"context"
	"errors"
	"time"

	"forge/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for HR persistence.
var (
	// ErrStaffProfileNotFound is returned when a staff profile is not found.
	ErrStaffProfileNotFound = errors.New("staff profile not found")
	// ErrDuplicateStaffProfile is returned when the user already has a staff profile.
	ErrDuplicateStaffProfile = errors.New("staff profile already exists for this user")
	// ErrDuplicateAttendance is returned when the (staff, date) pair is already recorded.
	ErrDuplicateAttendance = errors.New("attendance already recorded for this staff member and date")
	// ErrAttendanceNotFound is returned when an attendance record is not found.
	ErrAttendanceNotFound = errors.New("attendance record not found")
	// ErrPayrollNotFound is returned when a payroll record is not found.
	ErrPayrollNotFound = errors.New("payroll record not found")
)

// StaffRepository defines persistence operations for staff profiles,
// attendance and payroll.
type StaffRepository interface {
	// CreateProfile persists a new staff profile.
	// Returns ErrDuplicateStaffProfile when the user already has one.
	CreateProfile(ctx context.Context, profile *entity.StaffProfile) error

	// FindProfileByID retrieves a staff profile by its unique ID.
	FindProfileByID(ctx context.Context, id uuid.UUID) (*entity.StaffProfile, error)

	// FindProfileByUserID retrieves the staff profile attached to a user account.
	FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*entity.StaffProfile, error)

	// ListProfiles retrieves staff profiles, optionally only active ones.
	ListProfiles(ctx context.Context, activeOnly bool) ([]*entity.StaffProfile, error)

	// UpdateProfile updates an existing staff profile record.
	UpdateProfile(ctx context.Context, profile *entity.StaffProfile) error

	// RecordAttendance persists one day's attendance.
	// Returns ErrDuplicateAttendance when the (staff, date) pair exists.
	RecordAttendance(ctx context.Context, attendance *entity.Attendance) error

	// UpdateAttendance updates an existing attendance record, typically to
	// set the clock-out time.
	UpdateAttendance(ctx context.Context, attendance *entity.Attendance) error

	// FindAttendance retrieves one staff member's record for one day.
	// Returns ErrAttendanceNotFound when no record exists for that date.
	FindAttendance(ctx context.Context, staffID uuid.UUID, date time.Time) (*entity.Attendance, error)

	// ListAttendanceByStaff retrieves a staff member's records within a date range.
	ListAttendanceByStaff(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]*entity.Attendance, error)

	// CreatePayroll persists a new payroll record.
	CreatePayroll(ctx context.Context, payroll *entity.Payroll) error

	// FindPayrollByID retrieves a payroll record by its unique ID.
	FindPayrollByID(ctx context.Context, id uuid.UUID) (*entity.Payroll, error)

	// ListPayrollsByStaff retrieves a staff member's payroll records, newest first.
	ListPayrollsByStaff(ctx context.Context, staffID uuid.UUID) ([]*entity.Payroll, error)

	// UpdatePayroll updates an existing payroll record.
	UpdatePayroll(ctx context.Context, payroll *entity.Payroll) error
}
