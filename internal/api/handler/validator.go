package handler

import (
	"github.com/driveway/rental-system/internal/forms"
)

// echoValidator lets Echo call c.Validate(req) with the shared form rules.
type echoValidator struct {
	v *forms.Validator
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: forms.NewValidator()}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	return ev.v.Struct(i)
}
