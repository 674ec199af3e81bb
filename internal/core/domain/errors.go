package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong password";
	// callers must not be able to tell which.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserNotFound = errors.New("user not found")

	// Token verification failures. Both surface to clients as 403 with the
	// reason as message.
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenMissing   = errors.New("authorization token is not supplied")
)

// MissingFieldError reports a required input field that was not supplied.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return e.Field + " is not supplied"
}

// ConflictError reports a uniqueness violation on a single field. The store
// determines the field with discrete existence checks, never by inspecting
// driver error text.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return e.Field + " already exists"
}

// AccessDeniedError is the rejected outcome of the authorization chain.
type AccessDeniedError struct {
	Status int
	Reason string
}

func (e *AccessDeniedError) Error() string {
	return e.Reason
}

// Unwrap lets callers match the token sentinels behind a denial.
func (e *AccessDeniedError) Unwrap() error {
	switch e.Reason {
	case ErrTokenMalformed.Error():
		return ErrTokenMalformed
	case ErrTokenExpired.Error():
		return ErrTokenExpired
	case ErrTokenMissing.Error():
		return ErrTokenMissing
	}
	return nil
}

// Denied builds a 403 denial from a reason.
func Denied(reason string) *AccessDeniedError {
	return &AccessDeniedError{Status: http.StatusForbidden, Reason: reason}
}

// DeniedErr builds a 403 denial carrying err's message as the reason.
func DeniedErr(err error) *AccessDeniedError {
	return &AccessDeniedError{Status: http.StatusForbidden, Reason: fmt.Sprintf("%v", err)}
}
