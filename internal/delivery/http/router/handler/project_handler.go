package handler

import (
	"log/slog"
	"net/http"

	"forge/internal/delivery/http/response"
	"forge/internal/domain/entity"
	"forge/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProjectHandler holds dependencies for internal project tracking.
type ProjectHandler struct {
	uc     usecase.ProjectUsecase
	logger *slog.Logger
}

// NewProjectHandler is the constructor for ProjectHandler, injected by Fx.
func NewProjectHandler(uc usecase.ProjectUsecase, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateProject handles the project creation.
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var input *usecase.ProjectInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid project input")
	}

	project, err := h.uc.CreateProject(c.Request().Context(), actorFrom(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, project)
}

// GetProject retrieves a project with its assignments and payments.
func (h *ProjectHandler) GetProject(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	project, err := h.uc.GetProject(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, project)
}

// BudgetSummary reports committed and disbursed totals for a project.
func (h *ProjectHandler) BudgetSummary(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	summary, err := h.uc.BudgetSummary(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary)
}

// ListProjects retrieves projects, optionally filtered by status.
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	status := entity.ProjectStatus(c.QueryParam("status"))

	projects, err := h.uc.ListProjects(c.Request().Context(), actorFrom(c), status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, projects)
}

// UpdateProject handles the project update.
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.ProjectInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid project input")
	}

	project, err := h.uc.UpdateProject(c.Request().Context(), actorFrom(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, project)
}

// DeleteProject handles the project removal.
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProject(c.Request().Context(), actorFrom(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "project deleted"})
}

// AssignStaff places a staff member on a project.
func (h *ProjectHandler) AssignStaff(c echo.Context) error {
	projectID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.AssignmentInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid assignment input")
	}

	assignment, err := h.uc.AssignStaff(c.Request().Context(), actorFrom(c), projectID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, assignment)
}

// RemoveAssignment takes a staff member off a project.
func (h *ProjectHandler) RemoveAssignment(c echo.Context) error {
	assignmentID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveAssignment(c.Request().Context(), actorFrom(c), assignmentID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "assignment removed"})
}

// RateAssignment records a post-completion performance rating.
func (h *ProjectHandler) RateAssignment(c echo.Context) error {
	assignmentID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.RatingInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid rating input")
	}

	assignment, err := h.uc.RateAssignment(c.Request().Context(), actorFrom(c), assignmentID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, assignment)
}

// RecordPayment records a disbursement against an assignment.
func (h *ProjectHandler) RecordPayment(c echo.Context) error {
	assignmentID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.PaymentInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid payment input")
	}

	payment, err := h.uc.RecordPayment(c.Request().Context(), actorFrom(c), assignmentID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, payment)
}

// ConfirmPayment marks a recorded payment as disbursed.
func (h *ProjectHandler) ConfirmPayment(c echo.Context) error {
	paymentID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.ConfirmPayment(c.Request().Context(), actorFrom(c), paymentID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "payment confirmed"})
}
