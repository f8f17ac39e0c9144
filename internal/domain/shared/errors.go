package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Domain error codes. The HTTP layer maps each onto an ERR_* code and status.
const (
	CodeInvalidInput   = "INVALID_INPUT"
	CodeInvalidState   = "INVALID_STATE"
	CodeInvalidACN     = "INVALID_ACN"
	CodeInvalidACNBase = "INVALID_ACN_BASE"
	CodeInvalidABN     = "INVALID_ABN"
)
