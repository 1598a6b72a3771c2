// Package response renders the unified API envelope. Every body carries a
// meta block with the request ID so clients can correlate reports with logs.
package response

import (
	"net/http"

	deliverycontext "forge/internal/delivery/context"
	domainerrors "forge/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// Success writes a success envelope with the given payload.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, domainerrors.SuccessResponse{
		Data: data,
		Meta: meta(c),
	})
}

// Error writes an error envelope.
func Error(c echo.Context, statusCode int, errorCode, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, domainerrors.ErrorResponse{
		Error: &domainerrors.ErrorInfo{
			Code:    errorCode,
			Message: message,
		},
		Meta: meta(c),
	})
}

// AppError writes an error envelope from an application error.
func AppError(c echo.Context, appErr domainerrors.AppError) error {
	return c.JSON(appErr.HTTPCode(), domainerrors.ErrorResponse{
		Error: domainerrors.NewErrorInfo(appErr),
		Meta:  meta(c),
	})
}

// BindingError is the 400 response for payloads Echo could not bind.
func BindingError(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, "INVALID_INPUT", message)
}

// Unauthorized is the 401 response used by the authentication middleware.
func Unauthorized(c echo.Context, message string) error {
	return Error(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// Forbidden is the 403 response used by the role middleware.
func Forbidden(c echo.Context, message string) error {
	return Error(c, http.StatusForbidden, "FORBIDDEN", message)
}

func meta(c echo.Context) *domainerrors.MetaInfo {
	return &domainerrors.MetaInfo{RequestID: deliverycontext.GetRequestID(c)}
}
