package shared

import "fmt"

// Error codes surfaced by the outsourcing query service
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeUpstreamQuery = "UPSTREAM_QUERY_ERROR"
	CodeDataIntegrity = "DATA_INTEGRITY"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
	cause   error
}

// FieldError describes one rejected input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a DomainError with the same code
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error with the given message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewFieldValidationError creates a validation error listing the rejected fields
func NewFieldValidationError(message string, fields []FieldError) *DomainError {
	err := NewDomainError(CodeValidation, message)
	err.Fields = fields
	return err
}

// NewNotFoundError creates a not found error with a formatted message
func NewNotFoundError(format string, args ...any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf(format, args...))
}

// NewDataIntegrityError creates a data integrity error with a formatted message
func NewDataIntegrityError(format string, args ...any) *DomainError {
	return NewDomainError(CodeDataIntegrity, fmt.Sprintf(format, args...))
}

// NewUpstreamQueryError wraps a query engine failure. The message is the
// underlying error text so callers see what the engine reported.
func NewUpstreamQueryError(err error) *DomainError {
	return &DomainError{
		Code:    CodeUpstreamQuery,
		Message: err.Error(),
		cause:   err,
	}
}

// Sentinel errors for errors.Is comparisons by code
var (
	ErrValidation    = NewDomainError(CodeValidation, "Validation failed")
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrUpstreamQuery = NewDomainError(CodeUpstreamQuery, "Query execution failed")
	ErrDataIntegrity = NewDomainError(CodeDataIntegrity, "Data integrity violation")
)
