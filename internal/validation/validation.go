package validation

import (
	"fmt"
	"reflect"

	"github.com/deppfellow/go-courses/internal/errs"
	"github.com/go-playground/validator/v10"
)

// validateStruct calls v.Validate() and converts a failure into a 400.
func validateStruct(v Validatable) error {
	if err := v.Validate(); err != nil {
		return errs.ValidationError(extractValidationErrors(err))
	}
	return nil
}

// extractValidationErrors converts validator and custom errors into field
// errors, in the order the rules failed.
func extractValidationErrors(err error) []errs.FieldError {
	if custom, ok := err.(CustomValidationErrors); ok {
		return toFieldErrors(custom)
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []errs.FieldError{{Field: "value", Error: err.Error()}}
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fe.Field(),
			Error: Message(fe),
		})
	}
	return fieldErrors
}

func toFieldErrors(custom CustomValidationErrors) []errs.FieldError {
	fieldErrors := make([]errs.FieldError, 0, len(custom))
	for _, ce := range custom {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: ce.Field,
			Error: ce.Message,
		})
	}
	return fieldErrors
}

// Message renders a single rule violation, e.g.
// `"name" length must be at least 3 characters long`.
func Message(fe validator.FieldError) string {
	field := fmt.Sprintf("%q", fe.Field())
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return field + " is required"

	case "notempty":
		return field + " is not allowed to be empty"

	case "min":
		if isString {
			return fmt.Sprintf("%s length must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())

	case "max":
		if isString {
			return fmt.Sprintf("%s length must be less than or equal to %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())

	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s failed on the '%s=%s' rule", field, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
	}
}
