package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StaffType distinguishes employment arrangements.
type StaffType string

const (
	// StaffTypeFullTime is a salaried employee.
	StaffTypeFullTime StaffType = "full_time"
	// StaffTypeFreelancer is paid per project.
	StaffTypeFreelancer StaffType = "freelancer"
)

// IsValid checks if the StaffType is a valid value.
func (t StaffType) IsValid() bool {
	switch t {
	case StaffTypeFullTime, StaffTypeFreelancer:
		return true
	default:
		return false
	}
}

// StaffProfile holds HR data for a staff member. One-to-one with a User.
type StaffProfile struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	StaffType   StaffType
	Designation string
	JoiningDate *time.Time

	PhoneNumber           string
	EmergencyContact      string
	CitizenshipNumber     string
	PANNumber             string
	InsurancePolicyNumber string

	// Monthly salary for full-time staff, rate for freelancers.
	BaseSalary decimal.Decimal

	// Storage references to uploaded documents.
	CitizenshipFront string
	CitizenshipBack  string
	InsuranceDoc     string
	ContractDoc      string
	ProfilePicture   string

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AttendanceStatus is the daily attendance state of a staff member.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLeave   AttendanceStatus = "leave"
)

// IsValid checks if the AttendanceStatus is a valid value.
func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLeave:
		return true
	default:
		return false
	}
}

// Attendance is one staff member's record for one day.
// (staff, date) is unique.
type Attendance struct {
	ID       uuid.UUID
	StaffID  uuid.UUID
	Date     time.Time // Date only; the clock times carry the wall-clock part.
	ClockIn  string    // "HH:MM".
	ClockOut string    // "HH:MM", empty until clocked out.
	Status   AttendanceStatus
	Remark   string
}

// Payroll is one month's pay record for a staff member.
type Payroll struct {
	ID               uuid.UUID
	StaffID          uuid.UUID
	Month            int // 1..12.
	Year             int
	CalculatedSalary decimal.Decimal
	Bonus            decimal.Decimal
	Deductions       decimal.Decimal
	TotalPaid        decimal.Decimal
	PaymentDate      time.Time
	PaymentMethod    string
	IsPaid           bool
}

// ValidPeriod reports whether month and year form a sane pay period.
func (p *Payroll) ValidPeriod() bool {
	return p.Month >= 1 && p.Month <= 12 && p.Year > 0
}
