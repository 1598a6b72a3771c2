package postgres

import (
	"context"
	"time"

	"forge/internal/domain/entity"
	"forge/internal/domain/repository"
	"forge/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// staffRepository implements the repository.StaffRepository interface using GORM.
type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository is the constructor for staffRepository.
func NewStaffRepository(db *gorm.DB) repository.StaffRepository {
	return &staffRepository{db: db}
}

// CreateProfile persists a new staff profile.
func (repo *staffRepository) CreateProfile(ctx context.Context, profile *entity.StaffProfile) error {
	profileM := fromStaffProfileDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateStaffProfile
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to create staff profile")
	}

	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// FindProfileByID retrieves a staff profile by its unique ID.
func (repo *staffRepository) FindProfileByID(ctx context.Context, id uuid.UUID) (*entity.StaffProfile, error) {
	var profileM model.StaffProfileModel
	err := repo.db.WithContext(ctx).First(&profileM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStaffProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find staff profile by id")
	}

	return toStaffProfileDomain(&profileM), nil
}

// FindProfileByUserID retrieves the staff profile attached to a user account.
func (repo *staffRepository) FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*entity.StaffProfile, error) {
	var profileM model.StaffProfileModel
	err := repo.db.WithContext(ctx).First(&profileM, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStaffProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find staff profile by user id")
	}

	return toStaffProfileDomain(&profileM), nil
}

// ListProfiles retrieves staff profiles, optionally only active ones.
func (repo *staffRepository) ListProfiles(ctx context.Context, activeOnly bool) ([]*entity.StaffProfile, error) {
	query := repo.db.WithContext(ctx).Model(&model.StaffProfileModel{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var profileMs []*model.StaffProfileModel
	if err := query.Order("created_at DESC").Find(&profileMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list staff profiles")
	}

	profiles := make([]*entity.StaffProfile, 0, len(profileMs))
	for _, profileM := range profileMs {
		profiles = append(profiles, toStaffProfileDomain(profileM))
	}

	return profiles, nil
}

// UpdateProfile updates an existing staff profile record.
func (repo *staffRepository) UpdateProfile(ctx context.Context, profile *entity.StaffProfile) error {
	profileM := fromStaffProfileDomain(profile)

	result := repo.db.WithContext(ctx).
		Model(&model.StaffProfileModel{}).
		Where("id = ?", profile.ID).
		Select("*").
		Omit("id", "user_id", "created_at", "User").
		Updates(profileM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update staff profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStaffProfileNotFound
	}

	return nil
}

// RecordAttendance persists one day's attendance.
func (repo *staffRepository) RecordAttendance(ctx context.Context, attendance *entity.Attendance) error {
	attendanceM := fromAttendanceDomain(attendance)

	if err := repo.db.WithContext(ctx).Create(attendanceM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateAttendance
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrStaffProfileNotFound
		}

		return errors.Wrap(err, "failed to record attendance")
	}

	return nil
}

// UpdateAttendance updates an existing attendance record.
func (repo *staffRepository) UpdateAttendance(ctx context.Context, attendance *entity.Attendance) error {
	attendanceM := fromAttendanceDomain(attendance)

	result := repo.db.WithContext(ctx).
		Model(&model.AttendanceModel{}).
		Where("id = ?", attendance.ID).
		Select("*").
		Omit("id", "staff_id", "date").
		Updates(attendanceM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update attendance")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAttendanceNotFound
	}

	return nil
}

// FindAttendance retrieves one staff member's record for one day.
func (repo *staffRepository) FindAttendance(ctx context.Context, staffID uuid.UUID, date time.Time) (*entity.Attendance, error) {
	var attendanceM model.AttendanceModel
	err := repo.db.WithContext(ctx).
		First(&attendanceM, "staff_id = ? AND date = ?", staffID, date).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAttendanceNotFound
		}

		return nil, errors.Wrap(err, "failed to find attendance")
	}

	return toAttendanceDomain(&attendanceM), nil
}

// ListAttendanceByStaff retrieves a staff member's records within a date range.
func (repo *staffRepository) ListAttendanceByStaff(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]*entity.Attendance, error) {
	var attendanceMs []*model.AttendanceModel
	err := repo.db.WithContext(ctx).
		Where("staff_id = ? AND date >= ? AND date <= ?", staffID, from, to).
		Order("date ASC").
		Find(&attendanceMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list attendance by staff")
	}

	attendances := make([]*entity.Attendance, 0, len(attendanceMs))
	for _, attendanceM := range attendanceMs {
		attendances = append(attendances, toAttendanceDomain(attendanceM))
	}

	return attendances, nil
}

// CreatePayroll persists a new payroll record.
func (repo *staffRepository) CreatePayroll(ctx context.Context, payroll *entity.Payroll) error {
	payrollM := fromPayrollDomain(payroll)

	if err := repo.db.WithContext(ctx).Create(payrollM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrStaffProfileNotFound
		}

		return errors.Wrap(err, "failed to create payroll")
	}

	return nil
}

// FindPayrollByID retrieves a payroll record by its unique ID.
func (repo *staffRepository) FindPayrollByID(ctx context.Context, id uuid.UUID) (*entity.Payroll, error) {
	var payrollM model.PayrollModel
	err := repo.db.WithContext(ctx).First(&payrollM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPayrollNotFound
		}

		return nil, errors.Wrap(err, "failed to find payroll by id")
	}

	return toPayrollDomain(&payrollM), nil
}

// ListPayrollsByStaff retrieves a staff member's payroll records, newest first.
func (repo *staffRepository) ListPayrollsByStaff(ctx context.Context, staffID uuid.UUID) ([]*entity.Payroll, error) {
	var payrollMs []*model.PayrollModel
	err := repo.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Order("year DESC, month DESC").
		Find(&payrollMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list payrolls by staff")
	}

	payrolls := make([]*entity.Payroll, 0, len(payrollMs))
	for _, payrollM := range payrollMs {
		payrolls = append(payrolls, toPayrollDomain(payrollM))
	}

	return payrolls, nil
}

// UpdatePayroll updates an existing payroll record.
func (repo *staffRepository) UpdatePayroll(ctx context.Context, payroll *entity.Payroll) error {
	payrollM := fromPayrollDomain(payroll)

	result := repo.db.WithContext(ctx).
		Model(&model.PayrollModel{}).
		Where("id = ?", payroll.ID).
		Select("*").
		Omit("id", "staff_id", "month", "year").
		Updates(payrollM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update payroll")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPayrollNotFound
	}

	return nil
}

func toStaffProfileDomain(profileM *model.StaffProfileModel) *entity.StaffProfile {
	return &entity.StaffProfile{
		ID:                    profileM.ID,
		UserID:                profileM.UserID,
		StaffType:             entity.StaffType(profileM.StaffType),
		Designation:           profileM.Designation,
		JoiningDate:           profileM.JoiningDate,
		PhoneNumber:           profileM.PhoneNumber,
		EmergencyContact:      profileM.EmergencyContact,
		CitizenshipNumber:     profileM.CitizenshipNumber,
		PANNumber:             profileM.PANNumber,
		InsurancePolicyNumber: profileM.InsurancePolicyNumber,
		BaseSalary:            profileM.BaseSalary,
		CitizenshipFront:      profileM.CitizenshipFront,
		CitizenshipBack:       profileM.CitizenshipBack,
		InsuranceDoc:          profileM.InsuranceDoc,
		ContractDoc:           profileM.ContractDoc,
		ProfilePicture:        profileM.ProfilePicture,
		IsActive:              profileM.IsActive,
		CreatedAt:             profileM.CreatedAt,
		UpdatedAt:             profileM.UpdatedAt,
	}
}

func fromStaffProfileDomain(profile *entity.StaffProfile) *model.StaffProfileModel {
	return &model.StaffProfileModel{
		ID:                    profile.ID,
		UserID:                profile.UserID,
		StaffType:             string(profile.StaffType),
		Designation:           profile.Designation,
		JoiningDate:           profile.JoiningDate,
		PhoneNumber:           profile.PhoneNumber,
		EmergencyContact:      profile.EmergencyContact,
		CitizenshipNumber:     profile.CitizenshipNumber,
		PANNumber:             profile.PANNumber,
		InsurancePolicyNumber: profile.InsurancePolicyNumber,
		BaseSalary:            profile.BaseSalary,
		CitizenshipFront:      profile.CitizenshipFront,
		CitizenshipBack:       profile.CitizenshipBack,
		InsuranceDoc:          profile.InsuranceDoc,
		ContractDoc:           profile.ContractDoc,
		ProfilePicture:        profile.ProfilePicture,
		IsActive:              profile.IsActive,
		CreatedAt:             profile.CreatedAt,
		UpdatedAt:             profile.UpdatedAt,
	}
}

func toAttendanceDomain(attendanceM *model.AttendanceModel) *entity.Attendance {
	return &entity.Attendance{
		ID:       attendanceM.ID,
		StaffID:  attendanceM.StaffID,
		Date:     attendanceM.Date,
		ClockIn:  attendanceM.ClockIn,
		ClockOut: attendanceM.ClockOut,
		Status:   entity.AttendanceStatus(attendanceM.Status),
		Remark:   attendanceM.Remark,
	}
}

func fromAttendanceDomain(attendance *entity.Attendance) *model.AttendanceModel {
	return &model.AttendanceModel{
		ID:       attendance.ID,
		StaffID:  attendance.StaffID,
		Date:     attendance.Date,
		ClockIn:  attendance.ClockIn,
		ClockOut: attendance.ClockOut,
		Status:   string(attendance.Status),
		Remark:   attendance.Remark,
	}
}

func toPayrollDomain(payrollM *model.PayrollModel) *entity.Payroll {
	return &entity.Payroll{
		ID:               payrollM.ID,
		StaffID:          payrollM.StaffID,
		Month:            payrollM.Month,
		Year:             payrollM.Year,
		CalculatedSalary: payrollM.CalculatedSalary,
		Bonus:            payrollM.Bonus,
		Deductions:       payrollM.Deductions,
		TotalPaid:        payrollM.TotalPaid,
		PaymentDate:      payrollM.PaymentDate,
		PaymentMethod:    payrollM.PaymentMethod,
		IsPaid:           payrollM.IsPaid,
	}
}

func fromPayrollDomain(payroll *entity.Payroll) *model.PayrollModel {
	return &model.PayrollModel{
		ID:               payroll.ID,
		StaffID:          payroll.StaffID,
		Month:            payroll.Month,
		Year:             payroll.Year,
		CalculatedSalary: payroll.CalculatedSalary,
		Bonus:            payroll.Bonus,
		Deductions:       payroll.Deductions,
		TotalPaid:        payroll.TotalPaid,
		PaymentDate:      payroll.PaymentDate,
		PaymentMethod:    payroll.PaymentMethod,
		IsPaid:           payroll.IsPaid,
	}
}
