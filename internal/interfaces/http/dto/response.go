package dto

import "github.com/erp/bizid/internal/domain/registration"

// Response represents a standard API response
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail describes a single field that failed validation
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta describes the size of a returned batch
type Meta struct {
	Count        int `json:"count"`
	MaxBatchSize int `json:"max_batch_size"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewSuccessResponseWithMeta creates a success response with batch meta
func NewSuccessResponseWithMeta(data any, count, maxBatchSize int) Response {
	return Response{
		Success: true,
		Data:    data,
		Meta: &Meta{
			Count:        count,
			MaxBatchSize: maxBatchSize,
		},
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithRequestID creates an error response carrying the request ID
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	resp := NewErrorResponse(code, message)
	resp.Error.RequestID = requestID
	return resp
}

// NewValidationErrorResponse creates a validation error response with per-field details
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	resp := NewErrorResponseWithRequestID(ErrCodeValidation, message, requestID)
	resp.Error.Details = details
	return resp
}

// CountRequest holds the batch size query parameter
type CountRequest struct {
	Count int `form:"count,default=1" binding:"min=1"`
}

// DeriveABNRequest is the body of an ABN derivation request. The ACN may be
// sent as a JSON number or as its digit string ("004085616").
type DeriveABNRequest struct {
	ACN *registration.ACN `json:"acn" binding:"required"`
}
