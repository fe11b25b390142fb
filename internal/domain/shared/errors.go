package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped copies compare equal to the sentinels.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState      = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrValidation        = NewDomainError("VALIDATION_ERROR", "Validation failed")
	ErrInsufficientStock = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrEmptyCheckout     = NewDomainError("EMPTY_CHECKOUT", "There are no items to check out")
	ErrNoActiveCheckout  = NewDomainError("NO_ACTIVE_CHECKOUT", "No checkout is in progress")
	ErrNotAuthenticated  = NewDomainError("NOT_AUTHENTICATED", "No user is signed in")
)

// CodeOf returns the domain error code carried by err, or an empty string.
func CodeOf(err error) string {
	if ve, ok := AsValidationError(err); ok {
		return ve.Code()
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
