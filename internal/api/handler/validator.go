package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/cadmin/cadmin-api/internal/core/domain"
	"github.com/cadmin/cadmin-api/internal/pkg/validation"
)

// echoValidator wraps the shared validator so Echo can call c.Validate(req).
// Failures come back as *domain.ValidationError.
type echoValidator struct {
	v *validation.Validator
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validation.New()}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	return ev.v.Struct(i)
}

// bind decodes the request into dst. Malformed bodies and unparsable query
// parameters are reported as validation errors on the given field.
func bind(c echo.Context, dst any, field string) error {
	if err := c.Bind(dst); err != nil {
		return domain.NewValidationError(field, field+" is malformed")
	}
	return nil
}
