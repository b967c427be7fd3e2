// Package errors provides structured error types for scope.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
)

// Code represents a unique error code.
type Code string

// Error codes for scope.
const (
	// Request errors
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeInvalidPrefix Code = "INVALID_PREFIX"

	// Authentication errors
	CodeAuthenticationFailed Code = "AUTHENTICATION_FAILED"
	CodeUnauthenticated      Code = "UNAUTHENTICATED"
	CodeInvalidToken         Code = "INVALID_TOKEN"

	// Storage outcomes
	CodeNotFound Code = "NOT_FOUND"
	CodeConflict Code = "CONFLICT"
	CodeInternal Code = "INTERNAL"

	// Config errors
	CodeConfigInvalid Code = "CONFIG_INVALID"
	CodeConfigMissing Code = "CONFIG_MISSING"
)

// Category groups error codes for HTTP status mapping.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryBadRequest
	CategoryUnauthorized
	CategoryNotFound
	CategoryConflict
	CategoryInternal
)

// codeCategories maps error codes to their categories.
var codeCategories = map[Code]Category{
	CodeValidation:           CategoryBadRequest,
	CodeInvalidPrefix:        CategoryBadRequest,
	CodeAuthenticationFailed: CategoryUnauthorized,
	CodeUnauthenticated:      CategoryUnauthorized,
	CodeInvalidToken:         CategoryUnauthorized,
	CodeNotFound:             CategoryNotFound,
	CodeConflict:             CategoryConflict,
	CodeInternal:             CategoryInternal,
	CodeConfigInvalid:        CategoryBadRequest,
	CodeConfigMissing:        CategoryBadRequest,
}

// HTTPStatus returns the HTTP status code for a category.
func (c Category) HTTPStatus() int {
	switch c {
	case CategoryBadRequest:
		return 400
	case CategoryUnauthorized:
		return 401
	case CategoryNotFound:
		return 404
	case CategoryConflict:
		return 409
	default:
		return 500
	}
}

// ScopeError is the structured error type for scope.
//
// What is the short, client-facing error string. Why is an optional
// human-readable message. Cause is the underlying failure; its message is
// only disclosed to clients for internal errors.
type ScopeError struct {
	Code  Code   `json:"code"`
	What  string `json:"what"`
	Why   string `json:"why,omitempty"`
	Cause error  `json:"-"`
}

// Error implements the error interface.
func (e *ScopeError) Error() string {
	var b strings.Builder
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString(": ")
		b.WriteString(e.Why)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *ScopeError) Unwrap() error {
	return e.Cause
}

// UserMessage returns a user-friendly message for CLI output.
func (e *ScopeError) UserMessage() string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString("\n\nWhy: ")
		b.WriteString(e.Why)
	}
	return b.String()
}

// Category returns the error category for HTTP status mapping.
func (e *ScopeError) Category() Category {
	if cat, ok := codeCategories[e.Code]; ok {
		return cat
	}
	return CategoryUnknown
}

// HTTPStatus returns the appropriate HTTP status code for this error.
func (e *ScopeError) HTTPStatus() int {
	return e.Category().HTTPStatus()
}

// Details returns the cause message disclosed to API clients.
// Only internal errors carry details.
func (e *ScopeError) Details() string {
	if e.Cause == nil || e.Category() != CategoryInternal {
		return ""
	}
	return e.Cause.Error()
}

// MarshalJSON implements json.Marshaler.
func (e *ScopeError) MarshalJSON() ([]byte, error) {
	type alias ScopeError
	aux := struct {
		*alias
		CauseMsg string `json:"cause,omitempty"`
	}{
		alias: (*alias)(e),
	}
	if e.Cause != nil {
		aux.CauseMsg = e.Cause.Error()
	}
	return json.Marshal(aux)
}

// Is reports whether target is a ScopeError with the same code.
func (e *ScopeError) Is(target error) bool {
	t, ok := target.(*ScopeError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error with the given cause.
func (e *ScopeError) WithCause(err error) *ScopeError {
	return &ScopeError{
		Code:  e.Code,
		What:  e.What,
		Why:   e.Why,
		Cause: err,
	}
}

// --- Error constructors ---

// ErrValidation returns an error for missing required fields.
func ErrValidation(what string) *ScopeError {
	return &ScopeError{
		Code: CodeValidation,
		What: what,
	}
}

// ErrMissingFields builds the standard "X, Y and Z are required" validation
// error for an entity.
func ErrMissingFields(entity string, fields ...string) *ScopeError {
	var list string
	switch len(fields) {
	case 0:
		list = "fields"
	case 1:
		list = fields[0]
	default:
		list = strings.Join(fields[:len(fields)-1], ", ") + " and " + fields[len(fields)-1]
	}
	what := list + " are required"
	if len(fields) == 1 {
		what = list + " is required"
	}
	if entity != "" {
		what = entity + " " + what
	}
	return ErrValidation(what)
}

// ErrInvalidPrefix returns an error for an unknown identifier prefix.
func ErrInvalidPrefix(prefix string) *ScopeError {
	return &ScopeError{
		Code: CodeInvalidPrefix,
		What: "Invalid prefix",
		Why:  fmt.Sprintf("prefix %q is not one of P, T, S, R, M", prefix),
	}
}

// ErrAuthenticationFailed returns an error for bad login credentials.
func ErrAuthenticationFailed() *ScopeError {
	return &ScopeError{
		Code: CodeAuthenticationFailed,
		What: "Authentication failed",
		Why:  "Invalid username or password",
	}
}

// ErrUnauthenticated returns an error for a request without a bearer token.
func ErrUnauthenticated() *ScopeError {
	return &ScopeError{
		Code: CodeUnauthenticated,
		What: "Access denied",
		Why:  "No token provided",
	}
}

// ErrInvalidToken returns an error for a token that failed verification.
// Expired and forged tokens are reported identically.
func ErrInvalidToken(cause error) *ScopeError {
	return &ScopeError{
		Code:  CodeInvalidToken,
		What:  "Access denied",
		Why:   "Invalid or expired token",
		Cause: cause,
	}
}

// ErrNotFound returns an error when an entity doesn't exist.
func ErrNotFound(entity string) *ScopeError {
	return &ScopeError{
		Code: CodeNotFound,
		What: entity + " not found",
	}
}

// ErrConflict returns an error when an entity id is already taken.
func ErrConflict(entity string) *ScopeError {
	return &ScopeError{
		Code: CodeConflict,
		What: entity + " with this ID already exists",
	}
}

// ErrInternal returns an error for any other storage or unexpected failure.
func ErrInternal(what string, cause error) *ScopeError {
	return &ScopeError{
		Code:  CodeInternal,
		What:  what,
		Cause: cause,
	}
}

// ErrConfigInvalid returns an error for invalid configuration.
func ErrConfigInvalid(field, reason string) *ScopeError {
	return &ScopeError{
		Code: CodeConfigInvalid,
		What: fmt.Sprintf("invalid configuration: %s", field),
		Why:  reason,
	}
}

// ErrConfigMissing returns an error for missing configuration.
func ErrConfigMissing(field string) *ScopeError {
	return &ScopeError{
		Code: CodeConfigMissing,
		What: fmt.Sprintf("missing required configuration: %s", field),
		Why:  "This field is required but not set in the config file or environment",
	}
}

// AsScopeError attempts to convert an error to a ScopeError.
// Returns nil if the error is not a ScopeError.
func AsScopeError(err error) *ScopeError {
	var scopeErr *ScopeError
	if stderrors.As(err, &scopeErr) {
		return scopeErr
	}
	return nil
}

// Wrap wraps a generic error into an internal ScopeError.
func Wrap(err error, what string) *ScopeError {
	return &ScopeError{
		Code:  CodeInternal,
		What:  what,
		Cause: err,
	}
}
