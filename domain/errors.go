package domain

import (
	"errors"
	"fmt"
)

// DomainError represents errors in the domain layer
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e DomainError) Unwrap() error {
	return e.Cause
}

// Domain error codes
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeEmptyDataset      = "EMPTY_DATASET"
	ErrCodeFileNotFound      = "FILE_NOT_FOUND"
	ErrCodeInsufficientData  = "INSUFFICIENT_DATA"
	ErrCodeExternalService   = "EXTERNAL_SERVICE"
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeOutputError       = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewEmptyDatasetError creates an error for inputs that contain no rows at all.
// An empty record sequence is an input error, not a zero-row dataset.
func NewEmptyDatasetError(message string) error {
	return NewDomainError(ErrCodeEmptyDataset, message, nil)
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewInsufficientDataError creates an error for analysis steps whose minimum
// row/column requirements are not met. Always recoverable: callers convert it
// into an inline message stub, never a report failure.
func NewInsufficientDataError(message string) error {
	return NewDomainError(ErrCodeInsufficientData, message, nil)
}

// NewExternalServiceError creates an error for LLM collaborator failures
func NewExternalServiceError(message string, cause error) error {
	return NewDomainError(ErrCodeExternalService, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewUnsupportedFormatError creates an unsupported format error
func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", format), nil)
}

// IsInsufficientData reports whether err is an InsufficientData domain error.
func IsInsufficientData(err error) bool {
	var de DomainError
	return errors.As(err, &de) && de.Code == ErrCodeInsufficientData
}
