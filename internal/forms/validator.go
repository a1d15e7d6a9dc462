// Package forms holds the input forms shared by the HTTP API and the console
// view-models, plus the validator that renders their failures as messages.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/driveway/rental-system/internal/core/domain"
)

// Validator wraps go-playground/validator with the custom tags used by the forms.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("caryear", func(fl validator.FieldLevel) bool {
		y := fl.Field().Int()
		return y >= 1900 && y <= int64(time.Now().Year()+2)
	})
	return &Validator{v: v}
}

var defaultValidator = NewValidator()

// Validate checks f against the default validator.
func Validate(f any) error {
	return defaultValidator.Struct(f)
}

// Struct validates i and joins every field failure into one ErrValidation.
func (fv *Validator) Struct(i any) error {
	if err := fv.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s item(s)", field, fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, strings.ToLower(fe.Param()))
	case "eq":
		return field + " must be accepted"
	case "caryear":
		return fmt.Sprintf("%s must be between 1900 and %d", field, time.Now().Year()+2)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
