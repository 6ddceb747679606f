package services

import (
	"errors"
	"reflect"
	"strings"

	"sporton/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report violations under their JSON names so callers can map them back to form fields.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
	return v
}

// validateStruct runs the struct tags of s and collects violations into into.
// Errors other than field violations are returned as is.
func validateStruct(s any, prefix string, into *apperrors.ValidationError) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	for _, e := range fieldErrs {
		into.Add(prefix+e.Field(), e.Tag())
	}
	return nil
}

// checkStruct validates s on its own and returns a *ValidationError, or nil.
func checkStruct(s any) error {
	violations := &apperrors.ValidationError{}
	if err := validateStruct(s, "", violations); err != nil {
		return err
	}
	if violations.Empty() {
		return nil
	}
	return violations
}
