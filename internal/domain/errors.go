package domain

import "fmt"

// AppError is the base domain error type. Every failure a handler can return
// is built from the closed set of constructors below; raw internal error text
// is never serialized to clients.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Standard domain error constructors.

func ErrNotFound(entity, id string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s %s not found", entity, id), Status: 404}
}

// ErrConflict marks a state conflict (double booking, duplicate registration).
// The API contract maps state conflicts to 400, not 409.
func ErrConflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Status: 400}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: "VALIDATION_FAILED", Message: msg, Status: 400}
}

// ErrAuthRequired is returned when no user could be resolved from the session.
func ErrAuthRequired(msg string) *AppError {
	return &AppError{Code: "AUTH_REQUIRED", Message: msg, Status: 401}
}

func ErrForbidden(msg string) *AppError {
	return &AppError{Code: "FORBIDDEN", Message: msg, Status: 403}
}

func ErrAccountLocked(msg string) *AppError {
	return &AppError{Code: "ACCOUNT_LOCKED", Message: msg, Status: 429}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: msg, Status: 500, Cause: cause}
}
