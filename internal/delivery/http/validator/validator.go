// Package validator wires go-playground/validator into echo's Validator hook
// and translates failures into field-level details for the response envelope.
package validator

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// passwordSpecials are the only special characters the password policy accepts.
const passwordSpecials = "@$!%*?&"

var nameRegexp = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RequestValidator adapts go-playground/validator to echo's Validator interface.
type RequestValidator struct {
	validate *validator.Validate
}

// New constructs a RequestValidator with the custom rules registered.
func New() *RequestValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Letters and spaces only, for display names.
	_ = validate.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
		return nameRegexp.MatchString(fl.Field().String())
	})

	// Signup password policy: upper, lower, digit and one of the allowed
	// special characters. Length is enforced separately via min=8.
	_ = validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return isStrongPassword(fl.Field().String())
	})

	return &RequestValidator{validate: validate}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// FieldErrors converts a validation error into field-level details.
// Returns nil if err is not a validator error.
func FieldErrors(err error) []FieldError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	fields := make([]FieldError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, FieldError{
			Field:   strings.ToLower(fieldErr.Field()),
			Message: messageFor(fieldErr),
		})
	}

	return fields
}

func messageFor(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fieldErr.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fieldErr.Field() + " must be at least " + fieldErr.Param() + " characters"
	case "max":
		return fieldErr.Field() + " must be less than " + fieldErr.Param() + " characters"
	case "alphaspace":
		return "Name can only contain letters and spaces"
	case "password":
		return "Password must contain at least 1 uppercase letter, 1 lowercase letter, 1 number, and 1 special character"
	case "gt":
		return fieldErr.Field() + " must be positive"
	case "oneof":
		return fieldErr.Field() + " must be one of: " + fieldErr.Param()
	default:
		return fieldErr.Field() + " is invalid"
	}
}

func isStrongPassword(password string) bool {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasDigit && hasSpecial
}
