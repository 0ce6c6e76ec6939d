package val

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const (
	// ValidationFailedMessage is the default error message for validation failures.
	ValidationFailedMessage = "validation failed"
)

// ValidationFieldError represents a single field validation error.
type ValidationFieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
	Code    string `json:"code,omitempty"`
}

// ValidationError is a collection of validation errors that implements error.
type ValidationError struct {
	Errors []ValidationFieldError `json:"errors"`
}

// Error implements the error interface.
func (ve *ValidationError) Error() string {
	if ve == nil || len(ve.Errors) == 0 {
		return ValidationFailedMessage
	}

	messages := make([]string, 0, len(ve.Errors))
	for _, err := range ve.Errors {
		if err.Field != "" {
			messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
		} else {
			messages = append(messages, err.Message)
		}
	}

	return strings.Join(messages, "; ")
}

// Add adds a validation error.
func (ve *ValidationError) Add(field, message string, value any) {
	if ve == nil {
		return
	}

	ve.Errors = append(ve.Errors, ValidationFieldError{
		Field:   field,
		Message: message,
		Value:   value,
	})
}

// AddWithCode adds a validation error with a code.
func (ve *ValidationError) AddWithCode(field, message, code string, value any) {
	if ve == nil {
		return
	}

	ve.Errors = append(ve.Errors, ValidationFieldError{
		Field:   field,
		Message: message,
		Value:   value,
		Code:    code,
	})
}

// HasErrors returns true if there are validation errors.
func (ve *ValidationError) HasErrors() bool {
	return ve != nil && len(ve.Errors) > 0
}

// Count returns the number of validation errors.
func (ve *ValidationError) Count() int {
	if ve == nil {
		return 0
	}

	return len(ve.Errors)
}

// MarshalJSON implements json.Marshaler for custom JSON serialization.
func (ve *ValidationError) MarshalJSON() ([]byte, error) {
	if ve == nil {
		return json.Marshal(map[string]any{
			"error":            ValidationFailedMessage,
			"validationErrors": []ValidationFieldError{},
		})
	}

	return json.Marshal(map[string]any{
		"error":            ValidationFailedMessage,
		"validationErrors": ve.Errors,
	})
}

// NewValidationError creates a new ValidationError instance.
func NewValidationError() *ValidationError {
	return &ValidationError{}
}

// Unwrap returns nil since ValidationError doesn't wrap another error.
func (ve *ValidationError) Unwrap() error {
	return nil
}

// As attempts to convert the target error to *ValidationError.
func (ve *ValidationError) As(target any) bool {
	if t, ok := target.(**ValidationError); ok {
		*t = ve

		return true
	}

	return false
}

// GetFieldErrors returns all errors for a specific field.
func (ve *ValidationError) GetFieldErrors(field string) []ValidationFieldError {
	if ve == nil {
		return nil
	}

	var fieldErrors []ValidationFieldError

	for _, err := range ve.Errors {
		if err.Field == field {
			fieldErrors = append(fieldErrors, err)
		}
	}

	return fieldErrors
}

// HasFieldError checks if a specific field has validation errors.
func (ve *ValidationError) HasFieldError(field string) bool {
	return len(ve.GetFieldErrors(field)) > 0
}

// Merge combines errors from another ValidationError.
func (ve *ValidationError) Merge(other *ValidationError) {
	if ve == nil || other == nil {
		return
	}

	ve.Errors = append(ve.Errors, other.Errors...)
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError

	return errors.As(err, &ve)
}

// Common validation error codes.
const (
	ErrCodeRequired  = "REQUIRED"
	ErrCodeMinValue  = "MIN_VALUE"
	ErrCodeMaxValue  = "MAX_VALUE"
	ErrCodeInvalid   = "INVALID"
	ErrCodeCondition = "CONDITION"
)

var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

// getValidator returns a singleton go-playground/validator instance, using
// json/field names (via GetFieldName) in reported errors instead of Go field names.
func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New()
		validatorInstance.RegisterTagNameFunc(GetFieldName)
	})

	return validatorInstance
}

// Validate runs go-playground/validator's `validate` struct tags against v and
// returns the accumulated field errors, or nil if v satisfies every tag.
func Validate(v any) *ValidationError {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		ve := NewValidationError()
		ve.Add("", err.Error(), nil)

		return ve
	}

	ve := NewValidationError()
	for _, fe := range fieldErrs {
		ve.AddWithCode(fe.Field(), formatValidationMessage(fe), errorCode(fe), fe.Value())
	}

	return ve
}

// formatValidationMessage turns a validator.FieldError into a human-readable message.
func formatValidationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed validation on '" + fe.Tag() + "'"
	}
}

// errorCode maps a validator tag to one of this package's error codes.
func errorCode(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return ErrCodeRequired
	case "gt", "gte":
		return ErrCodeMinValue
	case "lt", "lte":
		return ErrCodeMaxValue
	default:
		return ErrCodeInvalid
	}
}
