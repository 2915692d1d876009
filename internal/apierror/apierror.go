// Package apierror holds the errors the API reports to callers. Each error
// carries a stable code and the HTTP status it is rendered with.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a stable, machine readable error identifier.
type Code string

const (
	CodeValidation                Code = "VALIDATION_ERROR"
	CodeIdentityNotFound          Code = "IDENTITY_NOT_FOUND"
	CodeIdentityMismatch          Code = "IDENTITY_MISMATCH"
	CodeAlreadyRegistered         Code = "ALREADY_REGISTERED"
	CodeInvalidOrExpiredCode      Code = "INVALID_OR_EXPIRED_CODE"
	CodeIdentifierOwnedByOther    Code = "IDENTIFIER_OWNED_BY_OTHER"
	CodeInvalidCredentials        Code = "INVALID_CREDENTIALS"
	CodeEmailNotVerified          Code = "EMAIL_NOT_VERIFIED"
	CodeDuplicateCredential       Code = "DUPLICATE_CREDENTIAL"
	CodeNotFound                  Code = "NOT_FOUND"
	CodeNotificationFailed        Code = "NOTIFICATION_FAILED"
	CodeMissingAuthorizationToken Code = "MISSING_AUTHORIZATION_TOKEN"
	CodeInvalidAuthorizationToken Code = "INVALID_AUTHORIZATION_TOKEN"
	CodeInternal                  Code = "INTERNAL_ERROR"
)

// APIError is an error that is safe to show to the caller.
type APIError struct {
	Code    Code
	Status  int
	Message string
	// Err is the underlying cause. It is never rendered.
	Err error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// As returns the APIError in err's chain, if any.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Code == code
}

func NewErrValidation(message string) *APIError {
	return &APIError{Code: CodeValidation, Status: http.StatusBadRequest, Message: message}
}

func NewErrIdentityNotFound(naturalID string) *APIError {
	return &APIError{
		Code:    CodeIdentityNotFound,
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("no registry record found for identifier %s", naturalID),
	}
}

// NewErrIdentityMismatch is reported when the registry email differs from the
// submitted one. status is 400 during registration and 403 for an
// authenticated account claiming someone else's record.
func NewErrIdentityMismatch(status int) *APIError {
	return &APIError{
		Code:    CodeIdentityMismatch,
		Status:  status,
		Message: "email does not match the email registered for this identifier",
	}
}

func NewErrAlreadyRegistered(email string) *APIError {
	return &APIError{
		Code:    CodeAlreadyRegistered,
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("email %s is already registered", email),
	}
}

func NewErrInvalidOrExpiredCode() *APIError {
	return &APIError{
		Code:    CodeInvalidOrExpiredCode,
		Status:  http.StatusBadRequest,
		Message: "verification code is invalid, expired or already used",
	}
}

func NewErrIdentifierOwnedByOther() *APIError {
	return &APIError{
		Code:    CodeIdentifierOwnedByOther,
		Status:  http.StatusForbidden,
		Message: "identifier is bound to a different account",
	}
}

func NewErrInvalidCredentials() *APIError {
	return &APIError{Code: CodeInvalidCredentials, Status: http.StatusUnauthorized, Message: "invalid credentials"}
}

func NewErrEmailNotVerified() *APIError {
	return &APIError{Code: CodeEmailNotVerified, Status: http.StatusUnauthorized, Message: "email is not verified"}
}

func NewErrDuplicateCredential(number string) *APIError {
	return &APIError{
		Code:    CodeDuplicateCredential,
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("credential %s already exists", number),
	}
}

func NewErrNotFound(what string) *APIError {
	return &APIError{Code: CodeNotFound, Status: http.StatusNotFound, Message: fmt.Sprintf("%s not found", what)}
}

func NewErrNotificationFailed(err error) *APIError {
	return &APIError{
		Code:    CodeNotificationFailed,
		Status:  http.StatusInternalServerError,
		Message: "failed to deliver verification code",
		Err:     err,
	}
}

func NewErrMissingAuthorizationToken() *APIError {
	return &APIError{
		Code:    CodeMissingAuthorizationToken,
		Status:  http.StatusUnauthorized,
		Message: "authorization token is missing",
	}
}

func NewErrInvalidAuthorizationToken() *APIError {
	return &APIError{
		Code:    CodeInvalidAuthorizationToken,
		Status:  http.StatusUnauthorized,
		Message: "authorization token is invalid or expired",
	}
}

func NewErrInternalServerError(err error) *APIError {
	return &APIError{
		Code:    CodeInternal,
		Status:  http.StatusInternalServerError,
		Message: "internal server error",
		Err:     err,
	}
}
