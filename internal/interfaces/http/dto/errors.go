package dto

import (
	"net/http"

	"github.com/erp/bizid/internal/domain/shared"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeNotFound is used when no route or resource matches
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
	// ErrCodeRateLimited is used when a client exceeds its request quota
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// Identifier error codes
const (
	// ErrCodeInvalidACN is used when an ACN is outside 0..999999999
	ErrCodeInvalidACN = "ERR_INVALID_ACN"
	// ErrCodeInvalidACNBase is used when an ACN base is outside 0..99999999
	ErrCodeInvalidACNBase = "ERR_INVALID_ACN_BASE"
	// ErrCodeInvalidABN is used when an ABN is outside 0..99999999999
	ErrCodeInvalidABN = "ERR_INVALID_ABN"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,
	ErrCodeNotFound: http.StatusNotFound,

	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:     http.StatusTooManyRequests,

	ErrCodeInvalidACN:     http.StatusBadRequest,
	ErrCodeInvalidACNBase: http.StatusBadRequest,
	ErrCodeInvalidABN:     http.StatusBadRequest,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	shared.CodeInvalidInput:   ErrCodeInvalidInput,
	shared.CodeInvalidState:   ErrCodeInvalidState,
	shared.CodeInvalidACN:     ErrCodeInvalidACN,
	shared.CodeInvalidACNBase: ErrCodeInvalidACNBase,
	shared.CodeInvalidABN:     ErrCodeInvalidABN,
	"VALIDATION_ERROR":        ErrCodeValidation,
	"BAD_REQUEST":             ErrCodeBadRequest,
	"INTERNAL_ERROR":          ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes that are already in API format, or unknown, are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
