// Package validator adapts go-playground/validator to Echo's Validator
// interface so handlers can validate bound request payloads.
package validator

import (
	domainerrors "forge/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type echoValidator struct {
	validate *validator.Validate
}

// New builds the Echo validator used by the HTTP server.
func New() echo.Validator {
	return &echoValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate runs struct validation and converts failures into the
// application error the error handler knows how to render.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return errors.Wrap(err, "failed to validate request")
		}

		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
