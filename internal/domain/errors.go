package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeNoContent     = "NO_CONTENT"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

var (
	ErrMissingRequiredField = NewDomainError(ErrCodeValidation, "missing required field")

	ErrKnowledgeNotFound = NewDomainError(ErrCodeNotFound, "knowledge record not found")
	ErrObjectNotFound    = NewDomainError(ErrCodeNotFound, "object not found in storage")

	// ErrNoContentExtracted marks a record whose PDF yielded no text at all.
	// It is fatal to that record's processing attempt.
	ErrNoContentExtracted = NewDomainError(ErrCodeNoContent, "no text content extracted from PDF")

	ErrStorageOperationFail = NewDomainError(ErrCodeInternalError, "storage operation failed")
)
