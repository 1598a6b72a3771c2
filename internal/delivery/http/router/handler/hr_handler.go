package handler

import (
	"log/slog"
	"net/http"
	"time"

	"forge/internal/delivery/http/response"
	domainerrors "forge/internal/domain/errors"
	"forge/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HRHandler holds dependencies for staff administration: profiles,
// attendance and payroll.
type HRHandler struct {
	uc     usecase.HRUsecase
	logger *slog.Logger
}

// NewHRHandler is the constructor for HRHandler, injected by Fx.
func NewHRHandler(uc usecase.HRUsecase, logger *slog.Logger) *HRHandler {
	return &HRHandler{
		uc:     uc,
		logger: logger,
	}
}

// --- Profiles ---

// CreateStaffProfile creates an HR profile for an existing user account.
func (h *HRHandler) CreateStaffProfile(c echo.Context) error {
	var input *usecase.StaffProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid staff profile input")
	}

	profile, err := h.uc.CreateStaffProfile(c.Request().Context(), actorFrom(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, profile)
}

// GetStaffProfile retrieves a single staff profile.
func (h *HRHandler) GetStaffProfile(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	profile, err := h.uc.GetStaffProfile(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// ListStaffProfiles retrieves the staff roster.
func (h *HRHandler) ListStaffProfiles(c echo.Context) error {
	profiles, err := h.uc.ListStaffProfiles(c.Request().Context(), actorFrom(c), !boolQuery(c, "all"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profiles)
}

// UpdateStaffProfile updates a staff profile.
func (h *HRHandler) UpdateStaffProfile(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.StaffProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid staff profile input")
	}

	profile, err := h.uc.UpdateStaffProfile(c.Request().Context(), actorFrom(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile)
}

// DeactivateStaffProfile soft-disables a profile; records are preserved.
func (h *HRHandler) DeactivateStaffProfile(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeactivateStaffProfile(c.Request().Context(), actorFrom(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "staff profile deactivated"})
}

// --- Attendance ---

// ClockIn opens today's attendance record for the calling staff member.
func (h *HRHandler) ClockIn(c echo.Context) error {
	attendance, err := h.uc.ClockIn(c.Request().Context(), actorFrom(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, attendance)
}

// ClockOut closes today's open attendance record.
func (h *HRHandler) ClockOut(c echo.Context) error {
	attendance, err := h.uc.ClockOut(c.Request().Context(), actorFrom(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, attendance)
}

// RecordAttendance lets an admin write an attendance row directly.
func (h *HRHandler) RecordAttendance(c echo.Context) error {
	var input *usecase.AttendanceInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid attendance input")
	}

	attendance, err := h.uc.RecordAttendance(c.Request().Context(), actorFrom(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, attendance)
}

// ListAttendance retrieves a staff member's records within a date range. The
// range arrives as from/to query parameters in YYYY-MM-DD form.
func (h *HRHandler) ListAttendance(c echo.Context) error {
	staffID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	from, err := time.Parse(time.DateOnly, c.QueryParam("from"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("from must be a YYYY-MM-DD date")
	}
	to, err := time.Parse(time.DateOnly, c.QueryParam("to"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("to must be a YYYY-MM-DD date")
	}

	attendances, err := h.uc.ListAttendance(c.Request().Context(), actorFrom(c), staffID, from, to)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, attendances)
}

// --- Payroll ---

// GeneratePayroll computes and stores a month's pay for a staff member.
func (h *HRHandler) GeneratePayroll(c echo.Context) error {
	var input *usecase.PayrollInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid payroll input")
	}

	payroll, err := h.uc.GeneratePayroll(c.Request().Context(), actorFrom(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, payroll)
}

type payrollPaidRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
}

// MarkPayrollPaid records the disbursement of a payroll entry.
func (h *HRHandler) MarkPayrollPaid(c echo.Context) error {
	payrollID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req payrollPaidRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "invalid payment input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	payroll, err := h.uc.MarkPayrollPaid(c.Request().Context(), actorFrom(c), payrollID, req.PaymentMethod)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, payroll)
}

// ListPayrolls retrieves a staff member's payroll history.
func (h *HRHandler) ListPayrolls(c echo.Context) error {
	staffID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	payrolls, err := h.uc.ListPayrolls(c.Request().Context(), actorFrom(c), staffID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, payrolls)
}
