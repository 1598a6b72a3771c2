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

// AccountHandler holds dependencies for registration, authentication and
// self-service account handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the account registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var input *usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid registration input")
	}

	user, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, user)
}

// Login handles the login request.
func (h *AccountHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshToken handles the token refresh request.
func (h *AccountHandler) RefreshToken(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "invalid refresh token input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	tokens, err := h.uc.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokens)
}

// GetProfile handles the request for the caller's own account.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	user, err := h.uc.GetProfile(c.Request().Context(), actorFrom(c).ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user)
}

// UpdateProfile handles self-service profile edits.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	var input *usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid profile input")
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), actorFrom(c).ID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user)
}

// ChangePassword handles the password change request.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	var input *usecase.ChangePasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid password input")
	}

	if err := h.uc.ChangePassword(c.Request().Context(), actorFrom(c).ID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "password changed"})
}

// ListAddresses handles the request for the caller's address book.
func (h *AccountHandler) ListAddresses(c echo.Context) error {
	addresses, err := h.uc.ListAddresses(c.Request().Context(), actorFrom(c).ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, addresses)
}

// CreateAddress handles adding an address to the caller's book.
func (h *AccountHandler) CreateAddress(c echo.Context) error {
	var input *usecase.AddressInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid address input")
	}

	address, err := h.uc.CreateAddress(c.Request().Context(), actorFrom(c).ID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, address)
}

// UpdateAddress handles editing one of the caller's addresses.
func (h *AccountHandler) UpdateAddress(c echo.Context) error {
	addressID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.AddressInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid address input")
	}

	address, err := h.uc.UpdateAddress(c.Request().Context(), actorFrom(c).ID, addressID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, address)
}

// DeleteAddress handles removing one of the caller's addresses.
func (h *AccountHandler) DeleteAddress(c echo.Context) error {
	addressID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteAddress(c.Request().Context(), actorFrom(c).ID, addressID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "address deleted"})
}

type defaultAddressRequest struct {
	Flag string `json:"flag" validate:"required,oneof=shipping billing"`
}

// SetDefaultAddress moves a default flag onto the given address.
func (h *AccountHandler) SetDefaultAddress(c echo.Context) error {
	addressID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req defaultAddressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "invalid default address input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	flag := entity.FlagDefaultShipping
	if req.Flag == "billing" {
		flag = entity.FlagDefaultBilling
	}

	if err := h.uc.SetDefaultAddress(c.Request().Context(), actorFrom(c).ID, addressID, flag); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "default address updated"})
}
