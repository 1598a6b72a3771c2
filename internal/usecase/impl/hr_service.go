package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "forge/internal/delivery/context"
	"forge/internal/domain/entity"
	domainerrors "forge/internal/domain/errors"
	"forge/internal/domain/policy"
	"forge/internal/domain/repository"
	"forge/internal/domain/service"
	"forge/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// hrService implements the HRUsecase interface.
type hrService struct {
	txManager repository.TransactionManager
	staffRepo repository.StaffRepository
	clock     service.Clock
	logger    *slog.Logger
}

// HRServiceParams holds dependencies for hrService, injected by Fx.
type HRServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	StaffRepo repository.StaffRepository
	Clock     service.Clock
	Logger    *slog.Logger
}

// NewHRService is the constructor for hrService.
func NewHRService(params HRServiceParams) usecase.HRUsecase {
	return &hrService{
		txManager: params.TxManager,
		staffRepo: params.StaffRepo,
		clock:     params.Clock,
		logger:    params.Logger,
	}
}

func (srv *hrService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// --- Profiles ---

func (srv *hrService) CreateStaffProfile(ctx context.Context, actor policy.Actor, input *usecase.StaffProfileInput) (*entity.StaffProfile, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if !input.StaffType.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown staff type: " + string(input.StaffType))
	}
	srv.log(ctx).Info("Creating staff profile", "userID", input.UserID)

	now := srv.clock.Now()
	profile := &entity.StaffProfile{
		ID:                    uuid.New(),
		UserID:                input.UserID,
		StaffType:             input.StaffType,
		Designation:           input.Designation,
		JoiningDate:           input.JoiningDate,
		PhoneNumber:           input.PhoneNumber,
		EmergencyContact:      input.EmergencyContact,
		CitizenshipNumber:     input.CitizenshipNumber,
		PANNumber:             input.PANNumber,
		InsurancePolicyNumber: input.InsurancePolicyNumber,
		BaseSalary:            input.BaseSalary,
		CitizenshipFront:      input.CitizenshipFront,
		CitizenshipBack:       input.CitizenshipBack,
		InsuranceDoc:          input.InsuranceDoc,
		ContractDoc:           input.ContractDoc,
		ProfilePicture:        input.ProfilePicture,
		IsActive:              true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		// The profile owner must exist and becomes staff on profile creation.
		user, err := userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}

		if err := repoFactory.StaffRepo().CreateProfile(ctx, profile); err != nil {
			if errors.Is(err, repository.ErrDuplicateStaffProfile) {
				return domainerrors.ErrConflict.WithDetails("staff profile already exists for this user")
			}

			return errors.Wrap(err, "failed to create staff profile")
		}

		if !user.IsStaff {
			if err := userRepo.SetRoleFlags(ctx, user.ID, user.IsSuperuser, true); err != nil {
				return errors.Wrap(err, "failed to grant staff role")
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (srv *hrService) GetStaffProfile(ctx context.Context, actor policy.Actor, id uuid.UUID) (*entity.StaffProfile, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}

	profile, err := srv.findProfile(ctx, srv.staffRepo, id)
	if err != nil {
		return nil, err
	}

	// Staff may read only their own profile; admins read any.
	if !actor.IsAdmin() && profile.UserID != actor.ID {
		return nil, domainerrors.ErrForbidden
	}

	return profile, nil
}

func (srv *hrService) ListStaffProfiles(ctx context.Context, actor policy.Actor, activeOnly bool) ([]*entity.StaffProfile, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}

	profiles, err := srv.staffRepo.ListProfiles(ctx, activeOnly)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list staff profiles")
	}

	return profiles, nil
}

func (srv *hrService) UpdateStaffProfile(ctx context.Context, actor policy.Actor, id uuid.UUID, input *usecase.StaffProfileInput) (*entity.StaffProfile, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}

	var profile *entity.StaffProfile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		staffRepo := repoFactory.StaffRepo()

		found, err := srv.findProfile(ctx, staffRepo, id)
		if err != nil {
			return err
		}

		if input.StaffType != "" {
			if !input.StaffType.IsValid() {
				return domainerrors.ErrValidationFailed.WithDetails("unknown staff type: " + string(input.StaffType))
			}
			found.StaffType = input.StaffType
		}
		found.Designation = input.Designation
		if input.JoiningDate != nil {
			found.JoiningDate = input.JoiningDate
		}
		found.PhoneNumber = input.PhoneNumber
		found.EmergencyContact = input.EmergencyContact
		found.CitizenshipNumber = input.CitizenshipNumber
		found.PANNumber = input.PANNumber
		found.InsurancePolicyNumber = input.InsurancePolicyNumber
		if !input.BaseSalary.IsZero() {
			found.BaseSalary = input.BaseSalary
		}
		if input.CitizenshipFront != "" {
			found.CitizenshipFront = input.CitizenshipFront
		}
		if input.CitizenshipBack != "" {
			found.CitizenshipBack = input.CitizenshipBack
		}
		if input.InsuranceDoc != "" {
			found.InsuranceDoc = input.InsuranceDoc
		}
		if input.ContractDoc != "" {
			found.ContractDoc = input.ContractDoc
		}
		if input.ProfilePicture != "" {
			found.ProfilePicture = input.ProfilePicture
		}
		found.UpdatedAt = srv.clock.Now()

		if err := staffRepo.UpdateProfile(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update staff profile")
		}
		profile = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// DeactivateStaffProfile soft-disables a profile; HR history is preserved.
func (srv *hrService) DeactivateStaffProfile(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}
	srv.log(ctx).Info("Deactivating staff profile", "profileID", id)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		staffRepo := repoFactory.StaffRepo()

		found, err := srv.findProfile(ctx, staffRepo, id)
		if err != nil {
			return err
		}

		found.IsActive = false
		found.UpdatedAt = srv.clock.Now()

		return errors.Wrap(staffRepo.UpdateProfile(ctx, found), "failed to deactivate staff profile")
	})
}

// --- Attendance ---

// ClockIn opens today's attendance record for the calling staff member.
func (srv *hrService) ClockIn(ctx context.Context, actor policy.Actor) (*entity.Attendance, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}

	now := srv.clock.Now()

	var attendance *entity.Attendance
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		staffRepo := repoFactory.StaffRepo()

		profile, err := staffRepo.FindProfileByUserID(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, repository.ErrStaffProfileNotFound) {
				return domainerrors.ErrStaffProfileNotFound
			}

			return errors.Wrap(err, "failed to find staff profile")
		}

		attendance = &entity.Attendance{
			ID:      uuid.New(),
			StaffID: profile.ID,
			Date:    truncateToDay(now),
			ClockIn: now.Format("15:04"),
			Status:  entity.AttendancePresent,
		}

		if err := staffRepo.RecordAttendance(ctx, attendance); err != nil {
			if errors.Is(err, repository.ErrDuplicateAttendance) {
				return domainerrors.ErrDuplicateAttendance
			}

			return errors.Wrap(err, "failed to record attendance")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return attendance, nil
}

// ClockOut closes today's open attendance record.
func (srv *hrService) ClockOut(ctx context.Context, actor policy.Actor) (*entity.Attendance, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}

	now := srv.clock.Now()

	var attendance *entity.Attendance
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		staffRepo := repoFactory.StaffRepo()

		profile, err := staffRepo.FindProfileByUserID(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, repository.ErrStaffProfileNotFound) {
				return domainerrors.ErrStaffProfileNotFound
			}

			return errors.Wrap(err, "failed to find staff profile")
		}

		found, err := staffRepo.FindAttendance(ctx, profile.ID, truncateToDay(now))
		if err != nil {
			if errors.Is(err, repository.ErrAttendanceNotFound) {
				return domainerrors.ErrNotFound.WithDetails("no clock-in recorded for today")
			}

			return errors.Wrap(err, "failed to find attendance")
		}

		found.ClockOut = now.Format("15:04")

		if err := staffRepo.UpdateAttendance(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update attendance")
		}
		attendance = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return attendance, nil
}

// RecordAttendance lets an admin write an attendance row directly.
func (srv *hrService) RecordAttendance(ctx context.Context, actor policy.Actor, input *usecase.AttendanceInput) (*entity.Attendance, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown attendance status: " + string(input.Status))
	}

	attendance := &entity.Attendance{
		ID:       uuid.New(),
		StaffID:  input.StaffID,
		Date:     truncateToDay(input.Date),
		ClockIn:  input.ClockIn,
		ClockOut: input.ClockOut,
		Status:   input.Status,
		Remark:   input.Remark,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.StaffRepo().RecordAttendance(ctx, attendance); err != nil {
			if errors.Is(err, repository.ErrDuplicateAttendance) {
				return domainerrors.ErrDuplicateAttendance
			}

			return errors.Wrap(err, "failed to record attendance")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return attendance, nil
}

// ListAttendance retrieves a staff member's records within a date range.
func (srv *hrService) ListAttendance(ctx context.Context, actor policy.Actor, staffID uuid.UUID, from, to time.Time) ([]*entity.Attendance, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		profile, err := srv.staffRepo.FindProfileByUserID(ctx, actor.ID)
		if err != nil || profile.ID != staffID {
			return nil, domainerrors.ErrForbidden
		}
	}

	records, err := srv.staffRepo.ListAttendanceByStaff(ctx, staffID, truncateToDay(from), truncateToDay(to))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list attendance")
	}

	return records, nil
}

// --- Payroll ---

// GeneratePayroll computes and stores a month's pay for a staff member.
func (srv *hrService) GeneratePayroll(ctx context.Context, actor policy.Actor, input *usecase.PayrollInput) (*entity.Payroll, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}

	payroll := &entity.Payroll{
		ID:         uuid.New(),
		StaffID:    input.StaffID,
		Month:      input.Month,
		Year:       input.Year,
		Bonus:      input.Bonus,
		Deductions: input.Deductions,
	}
	if !payroll.ValidPeriod() {
		return nil, domainerrors.ErrInvalidPayrollPeriod
	}
	srv.log(ctx).Info("Generating payroll", "staffID", input.StaffID, "month", input.Month, "year", input.Year)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		staffRepo := repoFactory.StaffRepo()

		profile, err := srv.findProfile(ctx, staffRepo, input.StaffID)
		if err != nil {
			return err
		}

		payroll.CalculatedSalary = profile.BaseSalary
		payroll.TotalPaid = profile.BaseSalary.Add(input.Bonus).Sub(input.Deductions)

		return errors.Wrap(staffRepo.CreatePayroll(ctx, payroll), "failed to create payroll")
	})
	if err != nil {
		return nil, err
	}

	return payroll, nil
}

// MarkPayrollPaid records the disbursement of a payroll entry.
func (srv *hrService) MarkPayrollPaid(ctx context.Context, actor policy.Actor, payrollID uuid.UUID, paymentMethod string) (*entity.Payroll, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}

	var payroll *entity.Payroll
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		staffRepo := repoFactory.StaffRepo()

		found, err := staffRepo.FindPayrollByID(ctx, payrollID)
		if err != nil {
			if errors.Is(err, repository.ErrPayrollNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to find payroll")
		}

		found.IsPaid = true
		found.PaymentMethod = paymentMethod
		found.PaymentDate = srv.clock.Now()

		if err := staffRepo.UpdatePayroll(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update payroll")
		}
		payroll = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return payroll, nil
}

// ListPayrolls retrieves a staff member's payroll history.
func (srv *hrService) ListPayrolls(ctx context.Context, actor policy.Actor, staffID uuid.UUID) ([]*entity.Payroll, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		profile, err := srv.staffRepo.FindProfileByUserID(ctx, actor.ID)
		if err != nil || profile.ID != staffID {
			return nil, domainerrors.ErrForbidden
		}
	}

	payrolls, err := srv.staffRepo.ListPayrollsByStaff(ctx, staffID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list payrolls")
	}

	return payrolls, nil
}

// --- helpers ---

func (srv *hrService) findProfile(ctx context.Context, staffRepo repository.StaffRepository, id uuid.UUID) (*entity.StaffProfile, error) {
	profile, err := staffRepo.FindProfileByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStaffProfileNotFound) {
			return nil, domainerrors.ErrStaffProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find staff profile")
	}

	return profile, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
