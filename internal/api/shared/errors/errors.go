package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/feral-file/ff-registry/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeForbidden        ErrorCode = "forbidden"
	ErrCodeConflict         ErrorCode = "conflict"
	ErrCodePaymentRequired  ErrorCode = "payment_required"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

func newAPIError(code ErrorCode, message string, details ...string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeBadRequest, message, details...)
}

func NewNotFoundError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeNotFound, message, details...)
}

func NewValidationError(details ...string) *APIError {
	return newAPIError(ErrCodeValidationFailed, "Validation failed", details...)
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeUnauthorized, message, details...)
}

func NewForbiddenError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeForbidden, message, details...)
}

func NewConflictError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeConflict, message, details...)
}

func NewPaymentRequiredError(message string, details ...string) *APIError {
	return newAPIError(ErrCodePaymentRequired, message, details...)
}

func NewInternalError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeInternalError, message, details...)
}

// domainErrors maps each rejected-operation sentinel to its HTTP status and error constructor
var domainErrors = []struct {
	err    error
	status int
	build  func(message string, details ...string) *APIError
}{
	{domain.ErrDuplicateAsset, http.StatusConflict, NewConflictError},
	{domain.ErrNotForSale, http.StatusConflict, NewConflictError},
	{domain.ErrUnknownAsset, http.StatusNotFound, NewNotFoundError},
	{domain.ErrNotOwner, http.StatusForbidden, NewForbiddenError},
	{domain.ErrUnauthorized, http.StatusForbidden, NewForbiddenError},
	{domain.ErrInsufficientPayment, http.StatusPaymentRequired, NewPaymentRequiredError},
	{domain.ErrInvalidPrice, http.StatusUnprocessableEntity, validationError},
	{domain.ErrInvalidRecipient, http.StatusUnprocessableEntity, validationError},
	{domain.ErrInvalidAssetID, http.StatusUnprocessableEntity, validationError},
	{domain.ErrInvalidName, http.StatusUnprocessableEntity, validationError},
	{domain.ErrInvalidExchange, http.StatusUnprocessableEntity, validationError},
	{domain.ErrInvalidIdentity, http.StatusUnprocessableEntity, validationError},
}

func validationError(message string, _ ...string) *APIError {
	return NewValidationError(message)
}

// FromDomainError converts an error returned by the registry to an HTTP status and API error.
// The second return value is false for errors that are not rejected operations; those
// should be reported as internal errors.
func FromDomainError(err error) (int, *APIError, bool) {
	for _, e := range domainErrors {
		if stderrors.Is(err, e.err) {
			return e.status, e.build(e.err.Error()), true
		}
	}
	return http.StatusInternalServerError, NewInternalError("Internal server error"), false
}
