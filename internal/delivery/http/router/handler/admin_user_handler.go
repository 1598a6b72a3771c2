package handler

import (
	"log/slog"
	"net/http"

	"forge/internal/delivery/http/response"
	"forge/internal/domain/entity"
	"forge/internal/domain/repository"
	"forge/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminUserHandler holds dependencies for administrative account handlers.
type AdminUserHandler struct {
	uc     usecase.AdminAccountUsecase
	logger *slog.Logger
}

// NewAdminUserHandler is the constructor for AdminUserHandler, injected by Fx.
func NewAdminUserHandler(uc usecase.AdminAccountUsecase, logger *slog.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListUsers handles the filtered account listing.
func (h *AdminUserHandler) ListUsers(c echo.Context) error {
	filter := repository.UserFilter{
		Role:   entity.Role(c.QueryParam("role")),
		Search: c.QueryParam("search"),
	}
	if active := c.QueryParam("active"); active != "" {
		isActive := active == "true"
		filter.IsActive = &isActive
	}

	users, err := h.uc.ListUsers(c.Request().Context(), actorFrom(c), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users)
}

// GetUser handles the single account lookup.
func (h *AdminUserHandler) GetUser(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.uc.GetUser(c.Request().Context(), actorFrom(c), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user)
}

// UpdateUser edits another account's contact fields.
func (h *AdminUserHandler) UpdateUser(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.AdminUpdateUserInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid user input")
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), actorFrom(c), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user)
}

type roleChangeRequest struct {
	Role string `json:"role" validate:"required,oneof=user staff admin"`
}

// ChangeRole handles setting an account's role.
func (h *AdminUserHandler) ChangeRole(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req roleChangeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "invalid role input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.ChangeRole(c.Request().Context(), actorFrom(c), userID, entity.Role(req.Role))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user)
}

type activeRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// SetActive handles activating or deactivating an account.
func (h *AdminUserHandler) SetActive(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req activeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "invalid active input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.SetActive(c.Request().Context(), actorFrom(c), userID, *req.Active); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "account updated"})
}

// BulkAction applies one action to a set of accounts.
func (h *AdminUserHandler) BulkAction(c echo.Context) error {
	var input *usecase.BulkActionInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid bulk action input")
	}

	affected, err := h.uc.BulkAction(c.Request().Context(), actorFrom(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"affected": affected})
}

// UserStats reports aggregate account counts.
func (h *AdminUserHandler) UserStats(c echo.Context) error {
	stats, err := h.uc.UserStats(c.Request().Context(), actorFrom(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats)
}
