package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/reportcard-service/internal/errors"
	"github.com/go-playground/validator/v10"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Record specific errors
	ErrStudentNotFound = errors.New("student not found")
	ErrNoRecords       = errors.New("no records for the selected term and session")

	// Export and report errors
	ErrInvalidFormat  = errors.New("unsupported document format")
	ErrInvalidTerm    = errors.New("invalid term")
	ErrInvalidSession = errors.New("invalid academic session")

	// Form errors
	ErrFormNotFound = errors.New("form not found or expired")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrNoRecords) ||
		errors.Is(err, ErrFormNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrInvalidTerm) ||
		errors.Is(err, ErrInvalidSession) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var fe validator.ValidationErrors
	return errors.As(err, &fe)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

// toValidationErrors normalizes struct tag failures into field errors.
func toValidationErrors(err error) error {
	if err == nil {
		return nil
	}
	var existing apperrors.ValidationErrors
	if errors.As(err, &existing) {
		return existing
	}
	if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
		return ve
	}
	return fmt.Errorf("%w: %v", ErrValidationFailed, err)
}
