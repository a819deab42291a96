package utils

import (
	"github.com/go-playground/validator/v10"

	pkgerrors "tomato-backend/pkg/errors"
)

var validate = validator.New()

// ValidateStruct validates a struct using its `validate` tags and converts
// failures into the application validation error type
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return pkgerrors.NewValidationError(err.Error()).WithCause(err)
	}
	return nil
}
