package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	ErrCodeFetchFailed       = "FETCH_FAILED"
	ErrCodeExtraction        = "EXTRACTION_FAILED"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInternal          = "INTERNAL_ERROR"

	// LLM-related error codes for /humanize, /critique and batches.
	ErrCodeLLMNotConfigured = "LLM_NOT_CONFIGURED"
	ErrCodeLLMFailure       = "LLM_FAILURE"
	ErrCodeLLMAuthFailure   = "LLM_AUTH_FAILURE"
	ErrCodeLLMRateLimited   = "LLM_RATE_LIMITED"
	ErrCodeLLMEmpty         = "LLM_EMPTY"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ServiceError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type ServiceError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(code, message string, err error) *ServiceError {
	return &ServiceError{Code: code, Message: message, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *ServiceError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}
