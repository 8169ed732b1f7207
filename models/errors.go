package models

import "fmt"

// Error codes used in exported artifacts and internal error handling.
const (
	ErrCodeParseFailure  = "PARSE_FAILURE"
	ErrCodeConfigInvalid = "CONFIG_INVALID"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// Extraction statuses. A run with no matching container is a reportable
// zero-record outcome, not an error.
const (
	StatusOK          = "ok"
	StatusNoContainer = "no_container_matched"
)

// ErrorDetail is the structured error shape in exported artifacts.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SiftError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type SiftError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *SiftError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *SiftError) Unwrap() error {
	return e.Err
}

// NewSiftError creates a new SiftError.
func NewSiftError(code, message string, err error) *SiftError {
	return &SiftError{Code: code, Message: message, Err: err}
}

// ToDetail converts an internal error to an artifact-facing ErrorDetail.
func (e *SiftError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}
