// Package validator provides unified configuration validation and error conversion
package validator

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/shroudlabs/go-shroud-data/errcode"
)

// Module code 10 (common), business code 1 (validation failed)
var errValidationFailed = errcode.New(10, 1, "common", "validation failed")

// Validatable anything that can validate itself
type Validatable interface {
	Validate() error
}

// ValidateConfig runs a config's Validate and converts ozzo-validation errors
// into a LayeredError carrying the per-field messages
func ValidateConfig(cfg Validatable) error {
	err := cfg.Validate()
	if err == nil {
		return nil
	}

	if validationErrs, ok := err.(validation.Errors); ok {
		return ConvertValidationError(validationErrs)
	}

	return err
}

// ConvertValidationError converts ozzo-validation errors into a LayeredError
func ConvertValidationError(validationErrs validation.Errors) error {
	fields := make(map[string]string)
	for field, fieldErr := range validationErrs {
		if fieldErr != nil {
			fields[field] = fieldErr.Error()
		}
	}

	return errValidationFailed.WithData("fields", fields)
}
