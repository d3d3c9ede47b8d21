package validator

import apperrors "github.com/SAP-F-2025/reportcard-service/internal/errors"

type (
	ValidationError  = apperrors.ValidationError
	ValidationErrors = apperrors.ValidationErrors
)

// ToValidationErrors flattens struct-tag failures into field errors.
func ToValidationErrors(err error) ValidationErrors {
	return apperrors.ToValidationErrors(err)
}
