package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"

	val "github.com/go-playground/validator/v10"

	"workshop/shared/failure"
)

var validate *val.Validate

var (
	// Kenyan plate: leading K, two uppercase letters, optional space, three digits, one uppercase letter.
	plateRegex = regexp.MustCompile(`^K[A-Z]{2} ?[0-9]{3}[A-Z]$`)
	// Kenyan mobile number: +254 or leading 0 followed by 9 digits.
	msisdnRegex = regexp.MustCompile(`^(\+254|0)[0-9]{9}$`)
)

// normalizer lets a request type canonicalize its fields (case, whitespace)
// after decoding and before validation, so user input like a lowercase plate
// is not rejected on case alone.
type normalizer interface {
	Normalize()
}

func registerPlateValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	return plateRegex.MatchString(value)
}

func registerMsisdnValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	return msisdnRegex.MatchString(value)
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	// Report violations under the json field name the form submitted.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	if err := validate.RegisterValidation("plate", registerPlateValidation); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("msisdn", registerMsisdnValidation); err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, normalizes it
// when it implements Normalize, and then performs validation on the struct
// using the validator package. If the struct is invalid according to the
// validation rules, an error carrying every field violation is returned.
// Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if n, ok := any(data).(normalizer); ok {
		n.Normalize()
	}

	err := validate.Struct(data)

	if err != nil {
		fields := fieldErrors(err)
		if len(fields) > 0 {
			return failure.Validation(fields) //nolint:wrapcheck
		}

		return failure.BadRequestFromString(err.Error()) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		fields := fieldErrors(err)
		if len(fields) > 0 {
			return failure.BadRequestFromString(fields[0].Message) //nolint:wrapcheck
		}

		return failure.BadRequestFromString(err.Error()) //nolint:wrapcheck
	}

	return nil
}
