package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

const (
	CodeValidation   = "VALIDATION_FAILED"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeIntegrity    = "INTEGRITY_FAILED"
	CodeGateway      = "GATEWAY_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// New constructs a DomainError with an explicit status.
func New(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

func NewValidation(message string) *DomainError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

func NewUnauthorized(message string) *DomainError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewNotFound(message string) *DomainError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func NewConflict(message string) *DomainError {
	return New(CodeConflict, message, http.StatusBadRequest)
}

func NewIntegrity(message string) *DomainError {
	return New(CodeIntegrity, message, http.StatusBadRequest)
}

func NewGateway(message string, err error) *DomainError {
	return &DomainError{
		Code:       CodeGateway,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInternal(err error) *DomainError {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "Something went wrong",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFound("Resource not found")
	}
	return NewInternal(err)
}
