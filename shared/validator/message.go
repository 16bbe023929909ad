package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"

	"workshop/shared/failure"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be less than or equal to {param}",
		"min":      "{field} must be greater than or equal to {param}",
		"email":    "{field} must be a valid email address",
		"plate":    "{field} must be a valid Kenyan registration plate, e.g. KDK 123A",
		"msisdn":   "{field} must be a valid Kenyan mobile number, e.g. 0712345678 or +254712345678",
	}
)

// fieldErrors maps every violation to a field-level message, so the caller can
// surface all offending fields at once instead of only the first.
func fieldErrors(err error) []failure.FieldError {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return nil
	}

	fields := make([]failure.FieldError, 0, len(valErrors))

	for _, valErr := range valErrors {
		field := valErr.Field()
		param := valErr.Param()

		errStr := messages[valErr.Tag()]
		if errStr == "" {
			errStr = valErr.Error()
		} else {
			errStr = strings.ReplaceAll(errStr, "{field}", field)
			errStr = strings.ReplaceAll(errStr, "{param}", param)
		}

		fields = append(fields, failure.FieldError{Field: field, Message: errStr})
	}

	return fields
}
