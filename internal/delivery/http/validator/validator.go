// Package validator adapts go-playground/validator to echo's Validator hook.
package validator

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// echoValidator validates bound request DTOs against their struct tags.
type echoValidator struct {
	validate *validator.Validate
}

// New builds the validator installed on the echo server.
func New() echo.Validator {
	return &echoValidator{validate: validator.New()}
}

// Validate implements echo.Validator. A tag failure becomes a 400 HTTPError
// carrying the field-level detail; the error middleware renders it.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
