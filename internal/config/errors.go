package config

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch matches every *TypeError.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrValidationFailed matches every *ValidationError.
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError reports a workload setting that decodes but is not
// acceptable: an unknown key, a negative count, a level nobody knows.
type ValidationError struct {
	Path    string
	Message string
	Value   any
	Code    ValidationErrorCode
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// ValidationErrorCode classifies a ValidationError.
type ValidationErrorCode uint8

const (
	ErrCodeUnknownSetting ValidationErrorCode = iota
	ErrCodeTypeMismatch
	ErrCodeOutOfRange
	ErrCodeInvalidEnum
)

var validationCodeNames = [...]string{
	ErrCodeUnknownSetting: "unknown_setting",
	ErrCodeTypeMismatch:   "type_mismatch",
	ErrCodeOutOfRange:     "out_of_range",
	ErrCodeInvalidEnum:    "invalid_enum",
}

func (c ValidationErrorCode) String() string {
	if int(c) < len(validationCodeNames) {
		return validationCodeNames[c]
	}
	return "unknown"
}

// TypeError reports a setting whose value has the wrong Go type after
// loading, e.g. a string where ops expects an integer.
type TypeError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}
