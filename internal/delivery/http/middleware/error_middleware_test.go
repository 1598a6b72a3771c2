package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "forge/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func handleError(err error) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/things", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m := NewErrorMiddleware(slog.Default())
	m.HandleHTTPError(err, c)

	return rec
}

func TestHandleHTTPError_AppError(t *testing.T) {
	rec := handleError(domainerrors.ErrBookingNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "BOOKING_NOT_FOUND")
	assert.Contains(t, rec.Body.String(), "request_id")
}

func TestHandleHTTPError_WrappedAppError(t *testing.T) {
	err := errors.Wrap(domainerrors.ErrForbidden, "while listing projects")

	rec := handleError(err)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "FORBIDDEN")
}

func TestHandleHTTPError_EchoHTTPError(t *testing.T) {
	rec := handleError(echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "HTTP_ERROR")
}

func TestHandleHTTPError_UnknownErrorIsMasked(t *testing.T) {
	rec := handleError(errors.New("connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
