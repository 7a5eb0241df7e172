// Package validation provides configuration validation helpers shared
// across the library.
package validation

import (
	"time"

	ttperrors "github.com/Lau0120/tiny-thread-pool/pkg/common/errors"
)

// NonNegative validates that an integer value is zero or positive.
func NonNegative(module, field string, value int) error {
	if value < 0 {
		return ttperrors.NewValidationError(module, field, value, "cannot be negative").
			WithHint("use 0 to take the default")
	}
	return nil
}

// Positive validates that an integer value is strictly positive.
func Positive(module, field string, value int) error {
	if value <= 0 {
		return ttperrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// PositiveDuration validates that a duration is strictly positive.
func PositiveDuration(module, field string, value time.Duration) error {
	if value <= 0 {
		return ttperrors.NewValidationError(module, field, value, "must be positive").
			WithHint("provide a duration greater than 0")
	}
	return nil
}

// NotEmpty validates that a string value is not empty.
func NotEmpty(module, field, value string) error {
	if value == "" {
		return ttperrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}
