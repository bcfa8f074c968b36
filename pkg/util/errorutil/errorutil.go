package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for the closed set of failures the service reports.
const (
	CodeInvalidInput   = "INVALID_INPUT"
	CodeAuthentication = "AUTHENTICATION_FAILED"
	CodeAuthorization  = "AUTHORIZATION_FAILED"
	CodeNotFound       = "RESOURCE_NOT_FOUND"
	CodeConflict       = "RESOURCE_CONFLICT"
	CodeInternal       = "INTERNAL_ERROR"
)

// Sentinels usable with errors.Is; matching is by Code only.
var (
	ErrInvalidInput   = &DomainError{Code: CodeInvalidInput, HTTPStatus: http.StatusBadRequest}
	ErrAuthentication = &DomainError{Code: CodeAuthentication, HTTPStatus: http.StatusUnauthorized}
	ErrAuthorization  = &DomainError{Code: CodeAuthorization, HTTPStatus: http.StatusForbidden}
	ErrNotFound       = &DomainError{Code: CodeNotFound, HTTPStatus: http.StatusNotFound}
	ErrConflict       = &DomainError{Code: CodeConflict, HTTPStatus: http.StatusConflict}
	ErrInternal       = &DomainError{Code: CodeInternal, HTTPStatus: http.StatusInternalServerError}
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
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

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// Body is the JSON representation sent to clients.
type Body struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// Body returns the client-facing payload; wrapped causes are never included.
func (e *DomainError) Body() Body {
	return Body{Message: e.Message, StatusCode: e.HTTPStatus}
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func withDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}

// NewInvalidInput reports a 400. An empty message uses "Invalid Inputs".
func NewInvalidInput(message string) error {
	return NewDomainError(CodeInvalidInput, withDefault(message, "Invalid Inputs"), http.StatusBadRequest, nil)
}

// NewUnauthorized reports a failed or missing authentication (401).
func NewUnauthorized(message string) error {
	return NewDomainError(CodeAuthentication, withDefault(message, "Invalid Credentials"), http.StatusUnauthorized, nil)
}

// NewForbidden reports a principal lacking the required role (403).
func NewForbidden(message string) error {
	return NewDomainError(CodeAuthorization, withDefault(message, "You're not Authorized to view this page"), http.StatusForbidden, nil)
}

// NewNotFound reports a missing resource (404).
func NewNotFound(message string) error {
	return NewDomainError(CodeNotFound, withDefault(message, "Resource not Found"), http.StatusNotFound, nil)
}

// NewConflict reports a write that clashes with stored state (409).
func NewConflict(message string) error {
	return NewDomainError(CodeConflict, withDefault(message, "Resource Conflict Error"), http.StatusConflict, nil)
}

// NewInternalError hides err behind a fixed message. err is kept for logging only.
func NewInternalError(message string, err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    withDefault(message, "Internal Server Error"),
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
	return NewInternalError("", err).(*DomainError)
}

// StatusCode returns the HTTP status associated with err.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return ToDomainError(err).HTTPStatus
}
