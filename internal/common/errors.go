package common

import (
	"errors"
	"fmt"
)

// Error codes for pipeline failures.
const (
	CodeInvalidImage        = "INVALID_IMAGE"
	CodePreprocessingFailed = "PREPROCESSING_FAILED"
	CodeNoProviderAvailable = "NO_PROVIDER_AVAILABLE"
	CodeOCRExtractionFailed = "OCR_EXTRACTION_FAILED"
	CodeConfigError         = "CONFIG_ERROR"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func InvalidImageError(message string, cause error) *AppError {
	return NewAppError(CodeInvalidImage, message, cause)
}

func PreprocessingError(message string, cause error) *AppError {
	return NewAppError(CodePreprocessingFailed, message, cause)
}

func NoProviderError(message string) *AppError {
	return NewAppError(CodeNoProviderAvailable, message, nil)
}

func ExtractionError(message string, cause error) *AppError {
	return NewAppError(CodeOCRExtractionFailed, message, cause)
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// HasCode reports whether err is (or wraps) an AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
