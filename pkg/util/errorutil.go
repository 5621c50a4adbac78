package util

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a DomainError. The HTTP status is derived from the
// kind alone.
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindInvalidUsername ErrorKind = "invalid_username"
	KindUnauthorized    ErrorKind = "unauthorized"
	KindAccountInactive ErrorKind = "account_inactive"
	KindForbidden       ErrorKind = "forbidden"
	KindNotFound        ErrorKind = "not_found"
	KindConflict        ErrorKind = "conflict"
	KindSchemaMismatch  ErrorKind = "schema_mismatch"
	KindInternal        ErrorKind = "internal"
)

var kindStatus = map[ErrorKind]int{
	KindValidation:      http.StatusBadRequest,
	KindInvalidUsername: http.StatusUnauthorized,
	KindUnauthorized:    http.StatusUnauthorized,
	KindAccountInactive: http.StatusForbidden,
	KindForbidden:       http.StatusForbidden,
	KindNotFound:        http.StatusNotFound,
	KindConflict:        http.StatusConflict,
	KindSchemaMismatch:  http.StatusInternalServerError,
	KindInternal:        http.StatusInternalServerError,
}

// HTTPStatus returns the response status for k.
func (k ErrorKind) HTTPStatus() int {
	if status, ok := kindStatus[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error codes surfaced to clients.
const (
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeTeamRequired      = "TEAM_REQUIRED"
	CodeUsernameImmutable = "USERNAME_IMMUTABLE"
	CodeInvalidUsername   = "INVALID_USERNAME"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeAccountInactive   = "ACCOUNT_INACTIVE"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeUsernameExists    = "USERNAME_EXISTS"
	CodeTeamNotFound      = "TEAM_NOT_FOUND"
	CodeSchemaMismatch    = "SCHEMA_MISMATCH"
	CodeInternal          = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Details map[string]any
	Err     error
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

// Is matches on Code so sentinel-style comparisons work with errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// HTTPStatus returns the status implied by the error kind.
func (e *DomainError) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

// NewDomainError constructs a DomainError.
func NewDomainError(kind ErrorKind, code, message string, details map[string]any) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(KindValidation, CodeValidationFailed, message, details)
}

func NewTeamRequired(role string) error {
	return NewDomainError(KindValidation, CodeTeamRequired,
		"Team ID is required for Agent and Supervisor roles",
		map[string]any{"role": role})
}

func NewUsernameImmutable() error {
	return NewDomainError(KindValidation, CodeUsernameImmutable, "Username cannot be changed", nil)
}

func NewInvalidUsername() error {
	return NewDomainError(KindInvalidUsername, CodeInvalidUsername, "Invalid username", nil)
}

func NewAccountInactive() error {
	return NewDomainError(KindAccountInactive, CodeAccountInactive, "User account is inactive", nil)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Kind:    KindNotFound,
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Details: details,
	}
}

func NewUsernameExists(username string) error {
	return NewDomainError(KindConflict, CodeUsernameExists,
		fmt.Sprintf("Username %q already exists", username),
		map[string]any{"username": username})
}

func NewTeamNotFound(teamID int64) error {
	return NewDomainError(KindConflict, CodeTeamNotFound,
		fmt.Sprintf("Team ID %d does not exist", teamID),
		map[string]any{"teamId": teamID})
}

func NewUnauthorized(message string) error {
	return NewDomainError(KindUnauthorized, CodeUnauthorized, message, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(KindForbidden, CodeForbidden, message, nil)
}

func NewSchemaMismatch(err error) error {
	return &DomainError{
		Kind:    KindSchemaMismatch,
		Code:    CodeSchemaMismatch,
		Message: "database schema mismatch; run migrations against the configured database",
		Err:     err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Kind:    KindInternal,
		Code:    CodeInternal,
		Message: "internal server error",
		Err:     err,
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
	return &DomainError{
		Kind:    KindInternal,
		Code:    CodeInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// MapError converts generic errors to DomainError, preserving nil.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}
